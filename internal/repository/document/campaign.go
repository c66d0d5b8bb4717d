package document

import (
	"context"
	"time"

	"kindnessconnect-backend/internal/docstore"
	"kindnessconnect-backend/internal/domain"
	"kindnessconnect-backend/internal/logger"
	"kindnessconnect-backend/internal/repository"
)

const collectedAmountField = "collected_amount"

type campaignRecord struct {
	ID               string     `json:"id" firestore:"id"`
	RequesterUID     string     `json:"requester_uid" firestore:"requester_uid"`
	Title            string     `json:"title" firestore:"title"`
	Category         string     `json:"category" firestore:"category"`
	Story            string     `json:"story" firestore:"story"`
	GoalAmount       float64    `json:"goal_amount" firestore:"goal_amount"`
	CollectedAmount  float64    `json:"collected_amount" firestore:"collected_amount"`
	Deadline         string     `json:"deadline" firestore:"deadline"`
	ImageURL         string     `json:"image_url" firestore:"image_url"`
	GalleryURLs      []string   `json:"gallery_urls" firestore:"gallery_urls"`
	Status           string     `json:"status" firestore:"status"`
	BankAccountNo    string     `json:"bank_account_no" firestore:"bank_account_no"`
	BankName         string     `json:"bank_name" firestore:"bank_name"`
	ShowNamePublicly *bool      `json:"show_name_publicly,omitempty" firestore:"show_name_publicly,omitempty"`
	CreatedAt        *time.Time `json:"created_at,omitempty" firestore:"created_at,omitempty"`
}

func newCampaignRecord(c *domain.Campaign) campaignRecord {
	show := c.ShowNamePublicly
	created := c.CreatedAt
	gallery := c.GalleryURLs
	if gallery == nil {
		gallery = []string{}
	}
	return campaignRecord{
		ID:               c.ID,
		RequesterUID:     c.RequesterUID,
		Title:            c.Title,
		Category:         c.Category,
		Story:            c.Story,
		GoalAmount:       c.GoalAmount,
		CollectedAmount:  c.CollectedAmount,
		Deadline:         c.Deadline,
		ImageURL:         c.ImageURL,
		GalleryURLs:      gallery,
		Status:           string(c.Status),
		BankAccountNo:    c.BankAccountNo,
		BankName:         c.BankName,
		ShowNamePublicly: &show,
		CreatedAt:        &created,
	}
}

func (r campaignRecord) toDomain(id string) domain.Campaign {
	c := domain.Campaign{
		ID:               r.ID,
		RequesterUID:     r.RequesterUID,
		Title:            r.Title,
		Category:         r.Category,
		Story:            r.Story,
		GoalAmount:       r.GoalAmount,
		CollectedAmount:  r.CollectedAmount,
		Deadline:         r.Deadline,
		ImageURL:         r.ImageURL,
		GalleryURLs:      r.GalleryURLs,
		Status:           domain.CampaignStatus(r.Status),
		BankAccountNo:    r.BankAccountNo,
		BankName:         r.BankName,
		ShowNamePublicly: true,
	}
	if c.ID == "" {
		c.ID = id
	}
	if c.GalleryURLs == nil {
		c.GalleryURLs = []string{}
	}
	if c.Status == "" {
		c.Status = domain.CampaignStatusPending
	}
	if r.ShowNamePublicly != nil {
		c.ShowNamePublicly = *r.ShowNamePublicly
	}
	if r.CreatedAt != nil {
		c.CreatedAt = *r.CreatedAt
	}
	return c
}

type campaignRepository struct {
	client docstore.Client
}

func NewCampaignRepository(client docstore.Client) repository.CampaignRepository {
	return &campaignRepository{client: client}
}

func (r *campaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	logger.EnterMethod("campaignRepository.Create", "campaignID", c.ID, "owner", c.RequesterUID)
	if err := r.client.Create(ctx, campaignsCollection, c.ID, newCampaignRecord(c)); err != nil {
		err = translate("create campaign", err)
		logger.ExitMethodWithError("campaignRepository.Create", err, "campaignID", c.ID)
		return err
	}
	logger.ExitMethod("campaignRepository.Create", "campaignID", c.ID)
	return nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	doc, err := r.client.Get(ctx, campaignsCollection, id)
	if err != nil {
		return nil, translate("get campaign", err)
	}
	var rec campaignRecord
	if err := doc.DataTo(&rec); err != nil {
		return nil, domain.Upstream("decode campaign", err)
	}
	c := rec.toDomain(doc.ID())
	return &c, nil
}

func (r *campaignRepository) List(ctx context.Context) ([]domain.Campaign, error) {
	return r.query(ctx, docstore.Query{})
}

func (r *campaignRepository) ListByOwner(ctx context.Context, ownerUID string) ([]domain.Campaign, error) {
	return r.query(ctx, docstore.Where("requester_uid", ownerUID))
}

func (r *campaignRepository) query(ctx context.Context, q docstore.Query) ([]domain.Campaign, error) {
	docs, err := r.client.Query(ctx, campaignsCollection, q)
	if err != nil {
		return nil, translate("list campaigns", err)
	}
	campaigns := make([]domain.Campaign, 0, len(docs))
	for _, doc := range docs {
		var rec campaignRecord
		if err := doc.DataTo(&rec); err != nil {
			return nil, domain.Upstream("decode campaign", err)
		}
		campaigns = append(campaigns, rec.toDomain(doc.ID()))
	}
	return campaigns, nil
}

func (r *campaignRepository) UpdateStatus(ctx context.Context, id string, status domain.CampaignStatus) error {
	return translate("update campaign status", r.client.Update(ctx, campaignsCollection, id, map[string]any{
		"status": string(status),
	}))
}

// IncrementCollected is a single-document atomic add; it never reads the current total.
func (r *campaignRepository) IncrementCollected(ctx context.Context, id string, amount float64) error {
	return translate("increment collected amount", r.client.Increment(ctx, campaignsCollection, id, collectedAmountField, amount))
}
