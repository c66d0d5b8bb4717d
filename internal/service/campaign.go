package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"kindnessconnect-backend/internal/domain"
	"kindnessconnect-backend/internal/logger"
	"kindnessconnect-backend/internal/repository"
	"kindnessconnect-backend/internal/storage"
)

type campaignService struct {
	campaignRepo repository.CampaignRepository
	userRepo     repository.UserRepository
	storage      storage.StorageInterface
	emailSvc     EmailService
}

func NewCampaignService(
	campaignRepo repository.CampaignRepository,
	userRepo repository.UserRepository,
	storage storage.StorageInterface,
	emailSvc EmailService,
) CampaignService {
	return &campaignService{
		campaignRepo: campaignRepo,
		userRepo:     userRepo,
		storage:      storage,
		emailSvc:     emailSvc,
	}
}

// userCache memoizes user lookups for the duration of one call. Absent users are cached as nil.
type userCache struct {
	repo  repository.UserRepository
	users map[string]*domain.User
}

func newUserCache(repo repository.UserRepository) *userCache {
	return &userCache{repo: repo, users: make(map[string]*domain.User)}
}

func (c *userCache) get(ctx context.Context, uid string) (*domain.User, error) {
	if u, ok := c.users[uid]; ok {
		return u, nil
	}
	u, err := c.repo.GetByID(ctx, uid)
	if errors.Is(err, domain.ErrNotFound) {
		u, err = nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.users[uid] = u
	return u, nil
}

func (s *campaignService) enrich(ctx context.Context, cache *userCache, c domain.Campaign) (domain.CampaignView, error) {
	owner, err := cache.get(ctx, c.RequesterUID)
	if err != nil {
		return domain.CampaignView{}, err
	}
	view := domain.CampaignView{
		Campaign:      c,
		RequesterName: domain.ResolveDisplayName(owner, c.ShowNamePublicly),
	}
	if owner != nil {
		view.RequesterVerified = owner.IsVerified
	}
	return view, nil
}

func (s *campaignService) CreateCampaign(ctx context.Context, ownerUID string, in domain.CampaignInput, cover domain.Upload, gallery []domain.Upload) (*domain.CampaignView, error) {
	logger.EnterMethod("campaignService.CreateCampaign", "owner", ownerUID, "galleryCount", len(gallery))

	if in.GoalAmount <= 0 || math.IsNaN(in.GoalAmount) || math.IsInf(in.GoalAmount, 0) {
		return nil, domain.Invalid("goal_amount must be a positive number")
	}
	if cover.Empty() {
		return nil, domain.Invalid("a cover image is required")
	}

	imageURL, err := uploadFile(ctx, s.storage, "campaigns", cover)
	if err != nil {
		logger.ExitMethodWithError("campaignService.CreateCampaign", err, "owner", ownerUID)
		return nil, err
	}
	galleryURLs := make([]string, 0, len(gallery))
	for _, g := range gallery {
		if g.Empty() {
			continue
		}
		url, err := uploadFile(ctx, s.storage, "campaigns/gallery", g)
		if err != nil {
			logger.ExitMethodWithError("campaignService.CreateCampaign", err, "owner", ownerUID)
			return nil, err
		}
		galleryURLs = append(galleryURLs, url)
	}

	c := &domain.Campaign{
		ID:               uuid.NewString(),
		RequesterUID:     ownerUID,
		Title:            in.Title,
		Category:         in.Category,
		Story:            in.Story,
		GoalAmount:       in.GoalAmount,
		CollectedAmount:  0,
		Deadline:         in.Deadline,
		ImageURL:         imageURL,
		GalleryURLs:      galleryURLs,
		Status:           domain.CampaignStatusPending,
		BankAccountNo:    in.BankAccountNo,
		BankName:         in.BankName,
		ShowNamePublicly: in.ShowNamePublicly,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.campaignRepo.Create(ctx, c); err != nil {
		logger.ExitMethodWithError("campaignService.CreateCampaign", err, "owner", ownerUID)
		return nil, err
	}

	view, err := s.enrich(ctx, newUserCache(s.userRepo), *c)
	if err != nil {
		return nil, err
	}
	logger.ExitMethod("campaignService.CreateCampaign", "campaignID", c.ID)
	return &view, nil
}

func (s *campaignService) ListCampaigns(ctx context.Context) ([]domain.CampaignView, error) {
	campaigns, err := s.campaignRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	cache := newUserCache(s.userRepo)
	views := make([]domain.CampaignView, 0, len(campaigns))
	for _, c := range campaigns {
		view, err := s.enrich(ctx, cache, c)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *campaignService) GetCampaign(ctx context.Context, id string) (*domain.CampaignView, error) {
	c, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("campaign " + id)
		}
		return nil, err
	}
	view, err := s.enrich(ctx, newUserCache(s.userRepo), *c)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *campaignService) ListCampaignsByOwner(ctx context.Context, ownerUID string) ([]domain.Campaign, error) {
	return s.campaignRepo.ListByOwner(ctx, ownerUID)
}

func (s *campaignService) SetStatus(ctx context.Context, adminUID, id string, status domain.CampaignStatus) ([]CleanupWarning, error) {
	logger.EnterMethod("campaignService.SetStatus", "admin", adminUID, "campaignID", id, "status", status)
	if err := requireAdmin(ctx, s.userRepo, adminUID); err != nil {
		return nil, err
	}
	if status != domain.CampaignStatusVerified && status != domain.CampaignStatusRejected {
		return nil, domain.Invalid("status must be verified or rejected")
	}

	c, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("campaign " + id)
		}
		return nil, err
	}
	if err := s.campaignRepo.UpdateStatus(ctx, id, status); err != nil {
		logger.ExitMethodWithError("campaignService.SetStatus", err, "campaignID", id)
		return nil, err
	}

	var warnings []CleanupWarning
	if w := s.notifyOwner(ctx, c, status); w != nil {
		warnings = append(warnings, *w)
	}

	logger.ExitMethod("campaignService.SetStatus", "campaignID", id, "status", status)
	return warnings, nil
}

func (s *campaignService) notifyOwner(ctx context.Context, c *domain.Campaign, status domain.CampaignStatus) *CleanupWarning {
	if s.emailSvc == nil {
		return nil
	}
	owner, err := s.userRepo.GetByID(ctx, c.RequesterUID)
	if err != nil || owner.Email == "" {
		return nil
	}
	if err := s.emailSvc.SendCampaignStatusNotification(ctx, owner.Email, owner.FullName, c.Title, status); err != nil {
		logger.Warn("Campaign status email failed", "campaignID", c.ID, "error", err)
		w := warn("notify campaign owner", c.RequesterUID, err)
		return &w
	}
	return nil
}
