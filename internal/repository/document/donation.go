package document

import (
	"context"
	"time"

	"kindnessconnect-backend/internal/docstore"
	"kindnessconnect-backend/internal/domain"
	"kindnessconnect-backend/internal/logger"
	"kindnessconnect-backend/internal/repository"
)

type donationRecord struct {
	ID            string     `json:"id" firestore:"id"`
	RequestID     string     `json:"request_id" firestore:"request_id"`
	DonorUID      string     `json:"donor_uid" firestore:"donor_uid"`
	Amount        float64    `json:"amount" firestore:"amount"`
	PaymentMethod string     `json:"payment_method" firestore:"payment_method"`
	RequestTitle  string     `json:"request_title" firestore:"request_title"`
	// Timestamp is a native timestamp, or a string on documents written by older clients.
	Timestamp any `json:"timestamp,omitempty" firestore:"timestamp,omitempty"`
}

// legacyTimestampLayouts are the string forms older clients stored, with and without a zone.
var legacyTimestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// parseTimestamp accepts any stored timestamp form. Unparseable values decode as the zero time.
func parseTimestamp(v any) time.Time {
	switch ts := v.(type) {
	case time.Time:
		return ts.UTC()
	case *time.Time:
		if ts != nil {
			return ts.UTC()
		}
	case string:
		for _, layout := range legacyTimestampLayouts {
			if t, err := time.Parse(layout, ts); err == nil {
				return t.UTC()
			}
		}
		logger.Debug("Unparseable donation timestamp", "value", ts)
	}
	return time.Time{}
}

func (r donationRecord) toDomain(id string) domain.Donation {
	d := domain.Donation{
		ID:            r.ID,
		RequestID:     r.RequestID,
		DonorUID:      r.DonorUID,
		Amount:        r.Amount,
		PaymentMethod: r.PaymentMethod,
		RequestTitle:  r.RequestTitle,
		Timestamp:     parseTimestamp(r.Timestamp),
	}
	if d.ID == "" {
		d.ID = id
	}
	return d
}

type donationRepository struct {
	client docstore.Client
}

func NewDonationRepository(client docstore.Client) repository.DonationRepository {
	return &donationRepository{client: client}
}

func (r *donationRepository) Create(ctx context.Context, d *domain.Donation) error {
	rec := donationRecord{
		ID:            d.ID,
		RequestID:     d.RequestID,
		DonorUID:      d.DonorUID,
		Amount:        d.Amount,
		PaymentMethod: d.PaymentMethod,
		RequestTitle:  d.RequestTitle,
		Timestamp:     d.Timestamp,
	}
	return translate("create donation", r.client.Create(ctx, donationsCollection, d.ID, rec))
}

func (r *donationRepository) GetByID(ctx context.Context, id string) (*domain.Donation, error) {
	doc, err := r.client.Get(ctx, donationsCollection, id)
	if err != nil {
		return nil, translate("get donation", err)
	}
	var rec donationRecord
	if err := doc.DataTo(&rec); err != nil {
		return nil, domain.Upstream("decode donation", err)
	}
	d := rec.toDomain(doc.ID())
	return &d, nil
}

func (r *donationRepository) List(ctx context.Context) ([]domain.Donation, error) {
	return r.query(ctx, docstore.Query{})
}

func (r *donationRepository) ListByDonor(ctx context.Context, donorUID string) ([]domain.Donation, error) {
	return r.query(ctx, docstore.Where("donor_uid", donorUID))
}

func (r *donationRepository) ListByCampaign(ctx context.Context, campaignID string) ([]domain.Donation, error) {
	return r.query(ctx, docstore.Where("request_id", campaignID))
}

func (r *donationRepository) query(ctx context.Context, q docstore.Query) ([]domain.Donation, error) {
	docs, err := r.client.Query(ctx, donationsCollection, q)
	if err != nil {
		return nil, translate("list donations", err)
	}
	donations := make([]domain.Donation, 0, len(docs))
	for _, doc := range docs {
		var rec donationRecord
		if err := doc.DataTo(&rec); err != nil {
			return nil, domain.Upstream("decode donation", err)
		}
		donations = append(donations, rec.toDomain(doc.ID()))
	}
	return donations, nil
}
