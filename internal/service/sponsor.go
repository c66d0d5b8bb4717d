package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"kindnessconnect-backend/internal/domain"
	"kindnessconnect-backend/internal/logger"
	"kindnessconnect-backend/internal/repository"
	"kindnessconnect-backend/internal/storage"
)

type sponsorService struct {
	sponsorRepo repository.SponsorRepository
	userRepo    repository.UserRepository
	storage     storage.StorageInterface
	themes      ThemeGenerator
}

func NewSponsorService(
	sponsorRepo repository.SponsorRepository,
	userRepo repository.UserRepository,
	storage storage.StorageInterface,
	themes ThemeGenerator,
) SponsorService {
	return &sponsorService{
		sponsorRepo: sponsorRepo,
		userRepo:    userRepo,
		storage:     storage,
		themes:      themes,
	}
}

func (s *sponsorService) ListDeals() []domain.SponsorDeal {
	deals := make([]domain.SponsorDeal, len(domain.SponsorDeals))
	copy(deals, domain.SponsorDeals)
	return deals
}

func (s *sponsorService) Submit(ctx context.Context, in domain.SponsorInput, logo domain.Upload) (*domain.Sponsor, error) {
	logger.EnterMethod("sponsorService.Submit", "sponsor", in.SponsorName, "deal", in.DealID)

	if strings.TrimSpace(in.SponsorName) == "" || strings.TrimSpace(in.ContactEmail) == "" || in.DealID == "" {
		return nil, domain.Invalid("sponsor_name, contact_email and deal_id are required")
	}
	if logo.Empty() {
		return nil, domain.Invalid("a logo file is required")
	}

	logoURL, err := uploadFile(ctx, s.storage, "sponsors", logo)
	if err != nil {
		logger.ExitMethodWithError("sponsorService.Submit", err, "sponsor", in.SponsorName)
		return nil, err
	}

	primary, light := in.PrimaryColorHex, in.LightBgHex
	if primary == "" {
		primary = domain.DefaultTheme.PrimaryColorHex
	}
	if light == "" {
		light = domain.DefaultTheme.LightBgHex
	}

	sponsor := &domain.Sponsor{
		ID:              uuid.NewString(),
		SponsorName:     in.SponsorName,
		ContactEmail:    in.ContactEmail,
		DealID:          in.DealID,
		PrimaryColorHex: primary,
		LightBgHex:      light,
		WebsiteURL:      in.WebsiteURL,
		LogoURL:         logoURL,
		Status:          domain.SponsorStatusPending,
		IsActiveTheme:   false,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.sponsorRepo.Create(ctx, sponsor); err != nil {
		logger.ExitMethodWithError("sponsorService.Submit", err, "sponsor", in.SponsorName)
		return nil, err
	}

	logger.ExitMethod("sponsorService.Submit", "sponsorID", sponsor.ID)
	return sponsor, nil
}

func (s *sponsorService) ListAll(ctx context.Context, adminUID string) ([]domain.Sponsor, error) {
	if err := requireAdmin(ctx, s.userRepo, adminUID); err != nil {
		return nil, err
	}
	return s.sponsorRepo.List(ctx)
}

func (s *sponsorService) GetActiveTheme(ctx context.Context) (*domain.Sponsor, error) {
	active, err := s.sponsorRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, nil
	}
	if len(active) > 1 {
		logger.Warn("More than one active sponsor theme", "count", len(active))
	}
	return &active[0], nil
}

// Update applies an admin patch. Activating a theme first clears the flag on every other
// active sponsor; a failure there is reported as a warning and the activation proceeds.
func (s *sponsorService) Update(ctx context.Context, adminUID, id string, patch domain.SponsorPatch) (*domain.Sponsor, []CleanupWarning, error) {
	logger.EnterMethod("sponsorService.Update", "admin", adminUID, "sponsorID", id)
	if err := requireAdmin(ctx, s.userRepo, adminUID); err != nil {
		return nil, nil, err
	}
	if patch.Status != nil {
		switch *patch.Status {
		case domain.SponsorStatusPending, domain.SponsorStatusApproved, domain.SponsorStatusRejected:
		default:
			return nil, nil, domain.Invalid("unknown sponsor status " + string(*patch.Status))
		}
	}

	current, err := s.getSponsor(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if patch.IsEmpty() {
		return current, nil, nil
	}

	var warnings []CleanupWarning
	if patch.Activates() {
		warnings = s.deactivateOthers(ctx, id)
	}

	if err := s.sponsorRepo.Update(ctx, id, patch); err != nil {
		logger.ExitMethodWithError("sponsorService.Update", err, "sponsorID", id)
		return nil, warnings, err
	}

	updated, err := s.getSponsor(ctx, id)
	if err != nil {
		return nil, warnings, err
	}
	logger.ExitMethod("sponsorService.Update", "sponsorID", id, "warnings", len(warnings))
	return updated, warnings, nil
}

func (s *sponsorService) deactivateOthers(ctx context.Context, keepID string) []CleanupWarning {
	active, err := s.sponsorRepo.ListActive(ctx)
	if err != nil {
		logger.Warn("Failed to list active sponsors before activation", "error", err)
		return []CleanupWarning{warn("list active sponsors", keepID, err)}
	}

	var warnings []CleanupWarning
	for _, other := range active {
		if other.ID == keepID {
			continue
		}
		if err := s.sponsorRepo.SetActiveTheme(ctx, other.ID, false); err != nil {
			logger.Warn("Failed to deactivate previous sponsor theme", "sponsorID", other.ID, "error", err)
			warnings = append(warnings, warn("deactivate sponsor theme", other.ID, err))
		}
	}
	return warnings
}

func (s *sponsorService) getSponsor(ctx context.Context, id string) (*domain.Sponsor, error) {
	sponsor, err := s.sponsorRepo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("sponsor " + id)
	}
	return sponsor, err
}

func (s *sponsorService) GenerateTheme(ctx context.Context, logo []byte) (domain.Theme, error) {
	if len(logo) == 0 {
		return domain.Theme{}, domain.Invalid("logo file is empty")
	}
	if s.themes == nil {
		return domain.DefaultTheme, nil
	}
	return s.themes.GenerateTheme(ctx, logo), nil
}
