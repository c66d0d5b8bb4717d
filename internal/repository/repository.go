package repository

import (
	"context"

	"kindnessconnect-backend/internal/domain"
)

type UserRepository interface {
	// Create inserts a profile and fails with domain.ErrAlreadyExists when the uid is taken.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, uid string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	SetVerified(ctx context.Context, uid string, verified bool) error
	Delete(ctx context.Context, uid string) error
}

type CampaignRepository interface {
	Create(ctx context.Context, campaign *domain.Campaign) error
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)
	List(ctx context.Context) ([]domain.Campaign, error)
	ListByOwner(ctx context.Context, ownerUID string) ([]domain.Campaign, error)
	UpdateStatus(ctx context.Context, id string, status domain.CampaignStatus) error
	IncrementCollected(ctx context.Context, id string, amount float64) error
}

type DonationRepository interface {
	// Create is conditional on the donation id; a replay returns domain.ErrAlreadyExists.
	Create(ctx context.Context, donation *domain.Donation) error
	GetByID(ctx context.Context, id string) (*domain.Donation, error)
	List(ctx context.Context) ([]domain.Donation, error)
	ListByDonor(ctx context.Context, donorUID string) ([]domain.Donation, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]domain.Donation, error)
}

type SponsorRepository interface {
	Create(ctx context.Context, sponsor *domain.Sponsor) error
	GetByID(ctx context.Context, id string) (*domain.Sponsor, error)
	List(ctx context.Context) ([]domain.Sponsor, error)
	ListActive(ctx context.Context) ([]domain.Sponsor, error)
	Update(ctx context.Context, id string, patch domain.SponsorPatch) error
	SetActiveTheme(ctx context.Context, id string, active bool) error
}

type VerificationRepository interface {
	Create(ctx context.Context, req *domain.VerificationRequest) error
	GetByID(ctx context.Context, id string) (*domain.VerificationRequest, error)
	List(ctx context.Context) ([]domain.VerificationRequest, error)
	Update(ctx context.Context, id string, patch domain.VerificationPatch) error
}

type ChatRepository interface {
	// CreateIfAbsent reports whether the room was created by this call.
	CreateIfAbsent(ctx context.Context, room *domain.ChatRoom) (bool, error)
}
