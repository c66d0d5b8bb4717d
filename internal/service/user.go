package service

import (
	"context"
	"errors"
	"time"

	"kindnessconnect-backend/internal/domain"
	"kindnessconnect-backend/internal/logger"
	"kindnessconnect-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
	identity IdentityRemover
}

func NewUserService(userRepo repository.UserRepository, identity IdentityRemover) UserService {
	return &userService{userRepo: userRepo, identity: identity}
}

func (s *userService) RegisterProfile(ctx context.Context, uid string, in domain.ProfileInput) (*domain.User, error) {
	logger.EnterMethod("userService.RegisterProfile", "uid", uid)

	existing, err := s.userRepo.GetByID(ctx, uid)
	if err == nil {
		logger.ExitMethod("userService.RegisterProfile", "uid", uid, "created", false)
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		logger.ExitMethodWithError("userService.RegisterProfile", err, "uid", uid)
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = domain.RoleDonor
	}
	user := &domain.User{
		UID:             uid,
		Email:           in.Email,
		FullName:        in.FullName,
		Role:            role,
		PhoneNumber:     in.PhoneNumber,
		ProfileImageURL: in.ProfileImageURL,
		IsVerified:      false,
		IsActive:        true,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent signup for the same uid.
		if errors.Is(err, domain.ErrAlreadyExists) {
			return s.userRepo.GetByID(ctx, uid)
		}
		logger.ExitMethodWithError("userService.RegisterProfile", err, "uid", uid)
		return nil, err
	}

	logger.ExitMethod("userService.RegisterProfile", "uid", uid, "created", true)
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, uid string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, uid)
}

func (s *userService) ListAll(ctx context.Context, adminUID string) ([]domain.User, error) {
	if err := requireAdmin(ctx, s.userRepo, adminUID); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx)
}

func (s *userService) Verify(ctx context.Context, adminUID, targetUID string) (*domain.User, error) {
	logger.EnterMethod("userService.Verify", "admin", adminUID, "target", targetUID)
	if err := requireAdmin(ctx, s.userRepo, adminUID); err != nil {
		return nil, err
	}

	target, err := s.userRepo.GetByID(ctx, targetUID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("user " + targetUID)
		}
		return nil, err
	}
	if err := s.userRepo.SetVerified(ctx, targetUID, true); err != nil {
		logger.ExitMethodWithError("userService.Verify", err, "target", targetUID)
		return nil, err
	}
	target.IsVerified = true

	logger.ExitMethod("userService.Verify", "target", targetUID)
	return target, nil
}

func (s *userService) DeleteAccount(ctx context.Context, adminUID, targetUID string) ([]CleanupWarning, error) {
	logger.EnterMethod("userService.DeleteAccount", "admin", adminUID, "target", targetUID)
	if err := requireAdmin(ctx, s.userRepo, adminUID); err != nil {
		return nil, err
	}

	if err := s.userRepo.Delete(ctx, targetUID); err != nil {
		logger.ExitMethodWithError("userService.DeleteAccount", err, "target", targetUID)
		return nil, err
	}

	var warnings []CleanupWarning
	if s.identity != nil {
		if err := s.identity.DeleteIdentity(ctx, targetUID); err != nil {
			logger.Warn("Identity credential removal failed", "uid", targetUID, "error", err)
			warnings = append(warnings, warn("delete identity", targetUID, err))
		}
	}

	logger.ExitMethod("userService.DeleteAccount", "target", targetUID, "warnings", len(warnings))
	return warnings, nil
}
