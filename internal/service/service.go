package service

import (
	"context"

	"kindnessconnect-backend/internal/domain"
)

// CleanupWarning reports a secondary step that failed after the primary operation
// succeeded. The primary result stands.
type CleanupWarning struct {
	Op     string `json:"op"`
	Target string `json:"target"`
	Error  string `json:"error"`
}

func warn(op, target string, err error) CleanupWarning {
	return CleanupWarning{Op: op, Target: target, Error: err.Error()}
}

type UserService interface {
	// RegisterProfile is idempotent: an existing profile is returned unchanged.
	RegisterProfile(ctx context.Context, uid string, in domain.ProfileInput) (*domain.User, error)
	GetProfile(ctx context.Context, uid string) (*domain.User, error)
	ListAll(ctx context.Context, adminUID string) ([]domain.User, error)
	Verify(ctx context.Context, adminUID, targetUID string) (*domain.User, error)
	DeleteAccount(ctx context.Context, adminUID, targetUID string) ([]CleanupWarning, error)
}

type CampaignService interface {
	CreateCampaign(ctx context.Context, ownerUID string, in domain.CampaignInput, cover domain.Upload, gallery []domain.Upload) (*domain.CampaignView, error)
	ListCampaigns(ctx context.Context) ([]domain.CampaignView, error)
	GetCampaign(ctx context.Context, id string) (*domain.CampaignView, error)
	ListCampaignsByOwner(ctx context.Context, ownerUID string) ([]domain.Campaign, error)
	SetStatus(ctx context.Context, adminUID, id string, status domain.CampaignStatus) ([]CleanupWarning, error)
}

type DonationService interface {
	RecordDonation(ctx context.Context, in domain.DonationInput) (*domain.Donation, error)
	ListDonationsByDonor(ctx context.Context, donorUID string) ([]domain.Donation, error)
	ListAllDonations(ctx context.Context, adminUID string) ([]domain.DonationView, error)
}

type ChatService interface {
	// InitiateChat opens the room as actingUID, who must be the donor or the campaign owner.
	InitiateChat(ctx context.Context, actingUID, campaignID, donorUID string) (*domain.ChatSession, error)
}

type SponsorService interface {
	ListDeals() []domain.SponsorDeal
	Submit(ctx context.Context, in domain.SponsorInput, logo domain.Upload) (*domain.Sponsor, error)
	ListAll(ctx context.Context, adminUID string) ([]domain.Sponsor, error)
	// GetActiveTheme returns nil when no sponsor theme is active.
	GetActiveTheme(ctx context.Context) (*domain.Sponsor, error)
	Update(ctx context.Context, adminUID, id string, patch domain.SponsorPatch) (*domain.Sponsor, []CleanupWarning, error)
	GenerateTheme(ctx context.Context, logo []byte) (domain.Theme, error)
}

type VerificationService interface {
	ListDeals() []domain.VerificationDeal
	Submit(ctx context.Context, requesterUID, dealID string, proof domain.VerificationProof) (*domain.VerificationRequest, error)
	ListAll(ctx context.Context, adminUID string) ([]domain.VerificationRequest, error)
	Update(ctx context.Context, adminUID, id string, patch domain.VerificationPatch) (*domain.VerificationRequest, []CleanupWarning, error)
}

type StoryService interface {
	GenerateStory(ctx context.Context, in domain.StoryInput) (string, error)
}

type EmailService interface {
	SendCampaignStatusNotification(ctx context.Context, email, name, title string, status domain.CampaignStatus) error
	SendVerificationApprovedNotification(ctx context.Context, email, name string) error
}

// TextGenerator is one story provider.
type TextGenerator interface {
	Name() string
	Generate(ctx context.Context, prompt domain.StoryPrompt) (string, error)
}

// ThemeGenerator derives a color theme from logo bytes. It always returns a theme;
// failures degrade to domain.DefaultTheme.
type ThemeGenerator interface {
	GenerateTheme(ctx context.Context, logo []byte) domain.Theme
}

// IdentityRemover deletes the login credential behind a uid.
type IdentityRemover interface {
	DeleteIdentity(ctx context.Context, uid string) error
}
