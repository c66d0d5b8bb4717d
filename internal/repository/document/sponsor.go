package document

import (
	"context"
	"time"

	"kindnessconnect-backend/internal/docstore"
	"kindnessconnect-backend/internal/domain"
	"kindnessconnect-backend/internal/repository"
)

type sponsorRecord struct {
	ID              string     `json:"id" firestore:"id"`
	SponsorName     string     `json:"sponsor_name" firestore:"sponsor_name"`
	ContactEmail    string     `json:"contact_email" firestore:"contact_email"`
	DealID          string     `json:"deal_id" firestore:"deal_id"`
	PrimaryColorHex string     `json:"primary_color_hex" firestore:"primary_color_hex"`
	LightBgHex      string     `json:"light_bg_hex" firestore:"light_bg_hex"`
	WebsiteURL      string     `json:"website_url,omitempty" firestore:"website_url,omitempty"`
	LogoURL         string     `json:"logo_url" firestore:"logo_url"`
	Status          string     `json:"status" firestore:"status"`
	IsActiveTheme   bool       `json:"is_active_theme" firestore:"is_active_theme"`
	CreatedAt       *time.Time `json:"created_at,omitempty" firestore:"created_at,omitempty"`
}

func (r sponsorRecord) toDomain(id string) domain.Sponsor {
	s := domain.Sponsor{
		ID:              r.ID,
		SponsorName:     r.SponsorName,
		ContactEmail:    r.ContactEmail,
		DealID:          r.DealID,
		PrimaryColorHex: r.PrimaryColorHex,
		LightBgHex:      r.LightBgHex,
		WebsiteURL:      r.WebsiteURL,
		LogoURL:         r.LogoURL,
		Status:          domain.SponsorStatus(r.Status),
		IsActiveTheme:   r.IsActiveTheme,
	}
	if s.ID == "" {
		s.ID = id
	}
	if r.CreatedAt != nil {
		s.CreatedAt = *r.CreatedAt
	}
	return s
}

type sponsorRepository struct {
	client docstore.Client
}

func NewSponsorRepository(client docstore.Client) repository.SponsorRepository {
	return &sponsorRepository{client: client}
}

func (r *sponsorRepository) Create(ctx context.Context, s *domain.Sponsor) error {
	created := s.CreatedAt
	rec := sponsorRecord{
		ID:              s.ID,
		SponsorName:     s.SponsorName,
		ContactEmail:    s.ContactEmail,
		DealID:          s.DealID,
		PrimaryColorHex: s.PrimaryColorHex,
		LightBgHex:      s.LightBgHex,
		WebsiteURL:      s.WebsiteURL,
		LogoURL:         s.LogoURL,
		Status:          string(s.Status),
		IsActiveTheme:   s.IsActiveTheme,
		CreatedAt:       &created,
	}
	return translate("create sponsor", r.client.Create(ctx, sponsorsCollection, s.ID, rec))
}

func (r *sponsorRepository) GetByID(ctx context.Context, id string) (*domain.Sponsor, error) {
	doc, err := r.client.Get(ctx, sponsorsCollection, id)
	if err != nil {
		return nil, translate("get sponsor", err)
	}
	var rec sponsorRecord
	if err := doc.DataTo(&rec); err != nil {
		return nil, domain.Upstream("decode sponsor", err)
	}
	s := rec.toDomain(doc.ID())
	return &s, nil
}

func (r *sponsorRepository) List(ctx context.Context) ([]domain.Sponsor, error) {
	return r.query(ctx, docstore.Query{})
}

func (r *sponsorRepository) ListActive(ctx context.Context) ([]domain.Sponsor, error) {
	return r.query(ctx, docstore.Where("is_active_theme", true))
}

func (r *sponsorRepository) query(ctx context.Context, q docstore.Query) ([]domain.Sponsor, error) {
	docs, err := r.client.Query(ctx, sponsorsCollection, q)
	if err != nil {
		return nil, translate("list sponsors", err)
	}
	sponsors := make([]domain.Sponsor, 0, len(docs))
	for _, doc := range docs {
		var rec sponsorRecord
		if err := doc.DataTo(&rec); err != nil {
			return nil, domain.Upstream("decode sponsor", err)
		}
		sponsors = append(sponsors, rec.toDomain(doc.ID()))
	}
	return sponsors, nil
}

func (r *sponsorRepository) Update(ctx context.Context, id string, patch domain.SponsorPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	return translate("update sponsor", r.client.Update(ctx, sponsorsCollection, id, patch.Fields()))
}

func (r *sponsorRepository) SetActiveTheme(ctx context.Context, id string, active bool) error {
	return translate("set active theme", r.client.Update(ctx, sponsorsCollection, id, map[string]any{
		"is_active_theme": active,
	}))
}
