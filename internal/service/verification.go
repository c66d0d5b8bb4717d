package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"kindnessconnect-backend/internal/domain"
	"kindnessconnect-backend/internal/logger"
	"kindnessconnect-backend/internal/repository"
	"kindnessconnect-backend/internal/storage"
)

type verificationService struct {
	verificationRepo repository.VerificationRepository
	userRepo         repository.UserRepository
	storage          storage.StorageInterface
	emailSvc         EmailService
}

func NewVerificationService(
	verificationRepo repository.VerificationRepository,
	userRepo repository.UserRepository,
	storage storage.StorageInterface,
	emailSvc EmailService,
) VerificationService {
	return &verificationService{
		verificationRepo: verificationRepo,
		userRepo:         userRepo,
		storage:          storage,
		emailSvc:         emailSvc,
	}
}

func (s *verificationService) ListDeals() []domain.VerificationDeal {
	deals := make([]domain.VerificationDeal, len(domain.VerificationDeals))
	copy(deals, domain.VerificationDeals)
	return deals
}

func (s *verificationService) Submit(ctx context.Context, requesterUID, dealID string, proof domain.VerificationProof) (*domain.VerificationRequest, error) {
	logger.EnterMethod("verificationService.Submit", "requester", requesterUID, "deal", dealID)
	if dealID == "" {
		return nil, domain.Invalid("deal_id is required")
	}

	user, err := s.userRepo.GetByID(ctx, requesterUID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("requester user " + requesterUID)
		}
		return nil, err
	}

	var documentURL string
	if !proof.Document.Empty() {
		documentURL, err = uploadFile(ctx, s.storage, "verification", proof.Document)
		if err != nil {
			logger.ExitMethodWithError("verificationService.Submit", err, "requester", requesterUID)
			return nil, err
		}
	}

	name := user.FullName
	if name == "" {
		name = domain.UnknownUserName
	}
	req := &domain.VerificationRequest{
		ID:               uuid.NewString(),
		RequesterUID:     requesterUID,
		UserName:         name,
		DealID:           dealID,
		ProofDescription: proof.Description,
		ProofDocumentURL: documentURL,
		Status:           domain.VerificationStatusPending,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.verificationRepo.Create(ctx, req); err != nil {
		logger.ExitMethodWithError("verificationService.Submit", err, "requester", requesterUID)
		return nil, err
	}

	logger.ExitMethod("verificationService.Submit", "requestID", req.ID)
	return req, nil
}

func (s *verificationService) ListAll(ctx context.Context, adminUID string) ([]domain.VerificationRequest, error) {
	if err := requireAdmin(ctx, s.userRepo, adminUID); err != nil {
		return nil, err
	}
	return s.verificationRepo.List(ctx)
}

// Update applies an admin decision. Approval marks the requester verified before the
// request status is persisted, on every approval; rejection touches only the request.
func (s *verificationService) Update(ctx context.Context, adminUID, id string, patch domain.VerificationPatch) (*domain.VerificationRequest, []CleanupWarning, error) {
	logger.EnterMethod("verificationService.Update", "admin", adminUID, "requestID", id)
	if err := requireAdmin(ctx, s.userRepo, adminUID); err != nil {
		return nil, nil, err
	}
	if patch.Status != nil {
		switch *patch.Status {
		case domain.VerificationStatusPending, domain.VerificationStatusApproved, domain.VerificationStatusRejected:
		default:
			return nil, nil, domain.Invalid("unknown verification status " + string(*patch.Status))
		}
	}

	req, err := s.verificationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.NotFound("verification request " + id)
		}
		return nil, nil, err
	}
	if patch.IsEmpty() {
		return req, nil, nil
	}

	approving := *patch.Status == domain.VerificationStatusApproved
	if approving {
		if err := s.userRepo.SetVerified(ctx, req.RequesterUID, true); err != nil {
			logger.ExitMethodWithError("verificationService.Update", err, "requester", req.RequesterUID)
			return nil, nil, err
		}
	}

	if err := s.verificationRepo.Update(ctx, id, patch); err != nil {
		logger.ExitMethodWithError("verificationService.Update", err, "requestID", id)
		return nil, nil, err
	}
	req.Status = *patch.Status

	var warnings []CleanupWarning
	if approving {
		if w := s.notifyApproved(ctx, req.RequesterUID); w != nil {
			warnings = append(warnings, *w)
		}
	}

	logger.ExitMethod("verificationService.Update", "requestID", id, "status", req.Status)
	return req, warnings, nil
}

func (s *verificationService) notifyApproved(ctx context.Context, uid string) *CleanupWarning {
	if s.emailSvc == nil {
		return nil
	}
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil || user.Email == "" {
		return nil
	}
	if err := s.emailSvc.SendVerificationApprovedNotification(ctx, user.Email, user.FullName); err != nil {
		logger.Warn("Verification approval email failed", "uid", uid, "error", err)
		w := warn("notify verified user", uid, err)
		return &w
	}
	return nil
}
