package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"kindnessconnect-backend/internal/domain"
	"kindnessconnect-backend/internal/logger"
	"kindnessconnect-backend/internal/repository"
)

// donationKeyNamespace scopes idempotency keys so equal keys from different donors never collide.
var donationKeyNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("kindnessconnect:donations"))

// DonationID derives the stored donation id from the donor and their idempotency key.
func DonationID(donorUID, idempotencyKey string) string {
	return uuid.NewSHA1(donationKeyNamespace, []byte(donorUID+":"+idempotencyKey)).String()
}

type donationService struct {
	donationRepo repository.DonationRepository
	campaignRepo repository.CampaignRepository
	userRepo     repository.UserRepository
}

func NewDonationService(
	donationRepo repository.DonationRepository,
	campaignRepo repository.CampaignRepository,
	userRepo repository.UserRepository,
) DonationService {
	return &donationService{
		donationRepo: donationRepo,
		campaignRepo: campaignRepo,
		userRepo:     userRepo,
	}
}

// RecordDonation appends a donation and then atomically increments the campaign's
// collected amount. The two writes are not transactional: if the increment fails the
// donation stays recorded and the error is returned. A replay with the same
// idempotency key returns the stored donation without counting it again; reusing a key
// for a different donation is a conflict.
func (s *donationService) RecordDonation(ctx context.Context, in domain.DonationInput) (*domain.Donation, error) {
	logger.EnterMethod("donationService.RecordDonation", "campaignID", in.RequestID, "donor", in.DonorUID, "amount", in.Amount)

	if in.Amount <= 0 || math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) {
		return nil, domain.Invalid("amount must be a positive number")
	}

	campaign, err := s.campaignRepo.GetByID(ctx, in.RequestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("donation request " + in.RequestID)
		}
		return nil, err
	}

	title := campaign.Title
	if title == "" {
		title = domain.MissingCampaignTitle
	}

	id := uuid.NewString()
	if in.IdempotencyKey != "" {
		id = DonationID(in.DonorUID, in.IdempotencyKey)
	}
	donation := &domain.Donation{
		ID:            id,
		RequestID:     in.RequestID,
		DonorUID:      in.DonorUID,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		RequestTitle:  title,
		Timestamp:     time.Now().UTC(),
	}

	if err := s.donationRepo.Create(ctx, donation); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) && in.IdempotencyKey != "" {
			return s.replay(ctx, id, in)
		}
		logger.ExitMethodWithError("donationService.RecordDonation", err, "campaignID", in.RequestID)
		return nil, err
	}

	if err := s.campaignRepo.IncrementCollected(ctx, in.RequestID, in.Amount); err != nil {
		logger.Error("Donation recorded but collected amount not incremented",
			"donationID", id, "campaignID", in.RequestID, "amount", in.Amount, "error", err)
		return nil, err
	}

	logger.ExitMethod("donationService.RecordDonation", "donationID", id)
	return donation, nil
}

// replay resolves a donation whose id already exists. The stored record is returned only
// when it describes the same donation.
func (s *donationService) replay(ctx context.Context, id string, in domain.DonationInput) (*domain.Donation, error) {
	stored, err := s.donationRepo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("donationService.RecordDonation", err, "donationID", id)
		return nil, err
	}
	if stored.RequestID != in.RequestID || stored.DonorUID != in.DonorUID || stored.Amount != in.Amount {
		logger.Warn("Idempotency key reused for a different donation",
			"donationID", id, "campaignID", in.RequestID, "storedCampaignID", stored.RequestID)
		return nil, fmt.Errorf("%w: idempotency key was already used for a different donation", domain.ErrAlreadyExists)
	}
	logger.Info("Donation replay ignored", "donationID", id, "campaignID", in.RequestID)
	return stored, nil
}

// ListDonationsByDonor returns the donor's donations followed by those recorded under
// the legacy test donor id.
func (s *donationService) ListDonationsByDonor(ctx context.Context, donorUID string) ([]domain.Donation, error) {
	donations, err := s.donationRepo.ListByDonor(ctx, donorUID)
	if err != nil {
		return nil, err
	}
	if donorUID != domain.LegacyTestDonorUID {
		legacy, err := s.donationRepo.ListByDonor(ctx, domain.LegacyTestDonorUID)
		if err != nil {
			return nil, err
		}
		donations = append(donations, legacy...)
	}

	for i := range donations {
		if donations[i].RequestTitle == "" {
			donations[i].RequestTitle = domain.UnknownCampaignTitle
		}
	}
	return donations, nil
}

func (s *donationService) ListAllDonations(ctx context.Context, adminUID string) ([]domain.DonationView, error) {
	if err := requireAdmin(ctx, s.userRepo, adminUID); err != nil {
		return nil, err
	}

	donations, err := s.donationRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	cache := newUserCache(s.userRepo)
	views := make([]domain.DonationView, 0, len(donations))
	for _, d := range donations {
		donor, err := cache.get(ctx, d.DonorUID)
		if err != nil {
			return nil, err
		}
		if d.RequestTitle == "" {
			d.RequestTitle = domain.UnknownCampaignTitle
		}
		views = append(views, domain.DonationView{
			Donation:  d,
			DonorName: domain.ResolveDisplayName(donor, true),
		})
	}
	return views, nil
}
