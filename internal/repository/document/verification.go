package document

import (
	"context"
	"time"

	"kindnessconnect-backend/internal/docstore"
	"kindnessconnect-backend/internal/domain"
	"kindnessconnect-backend/internal/repository"
)

type verificationRecord struct {
	ID               string     `json:"id" firestore:"id"`
	RequesterUID     string     `json:"requester_uid" firestore:"requester_uid"`
	UserName         string     `json:"user_name" firestore:"user_name"`
	DealID           string     `json:"deal_id" firestore:"deal_id"`
	ProofDescription string     `json:"proof_description" firestore:"proof_description"`
	ProofDocumentURL string     `json:"proof_document_url" firestore:"proof_document_url"`
	Status           string     `json:"status" firestore:"status"`
	CreatedAt        *time.Time `json:"created_at,omitempty" firestore:"created_at,omitempty"`
}

func (r verificationRecord) toDomain(id string) domain.VerificationRequest {
	v := domain.VerificationRequest{
		ID:               r.ID,
		RequesterUID:     r.RequesterUID,
		UserName:         r.UserName,
		DealID:           r.DealID,
		ProofDescription: r.ProofDescription,
		ProofDocumentURL: r.ProofDocumentURL,
		Status:           domain.VerificationStatus(r.Status),
	}
	if v.ID == "" {
		v.ID = id
	}
	if r.CreatedAt != nil {
		v.CreatedAt = *r.CreatedAt
	}
	return v
}

type verificationRepository struct {
	client docstore.Client
}

func NewVerificationRepository(client docstore.Client) repository.VerificationRepository {
	return &verificationRepository{client: client}
}

func (r *verificationRepository) Create(ctx context.Context, v *domain.VerificationRequest) error {
	created := v.CreatedAt
	rec := verificationRecord{
		ID:               v.ID,
		RequesterUID:     v.RequesterUID,
		UserName:         v.UserName,
		DealID:           v.DealID,
		ProofDescription: v.ProofDescription,
		ProofDocumentURL: v.ProofDocumentURL,
		Status:           string(v.Status),
		CreatedAt:        &created,
	}
	return translate("create verification request", r.client.Create(ctx, verificationsCollection, v.ID, rec))
}

func (r *verificationRepository) GetByID(ctx context.Context, id string) (*domain.VerificationRequest, error) {
	doc, err := r.client.Get(ctx, verificationsCollection, id)
	if err != nil {
		return nil, translate("get verification request", err)
	}
	var rec verificationRecord
	if err := doc.DataTo(&rec); err != nil {
		return nil, domain.Upstream("decode verification request", err)
	}
	v := rec.toDomain(doc.ID())
	return &v, nil
}

func (r *verificationRepository) List(ctx context.Context) ([]domain.VerificationRequest, error) {
	docs, err := r.client.Query(ctx, verificationsCollection, docstore.Query{})
	if err != nil {
		return nil, translate("list verification requests", err)
	}
	out := make([]domain.VerificationRequest, 0, len(docs))
	for _, doc := range docs {
		var rec verificationRecord
		if err := doc.DataTo(&rec); err != nil {
			return nil, domain.Upstream("decode verification request", err)
		}
		out = append(out, rec.toDomain(doc.ID()))
	}
	return out, nil
}

func (r *verificationRepository) Update(ctx context.Context, id string, patch domain.VerificationPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	return translate("update verification request", r.client.Update(ctx, verificationsCollection, id, patch.Fields()))
}
