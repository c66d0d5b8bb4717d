package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"kindnessconnect-backend/internal/domain"
	"kindnessconnect-backend/internal/logger"
	"kindnessconnect-backend/internal/repository"
	"kindnessconnect-backend/internal/storage"
)

// RequireRole loads the acting user and checks its role. An absent profile and a role
// mismatch are both ErrForbidden. It never mutates anything.
func RequireRole(ctx context.Context, users repository.UserRepository, uid string, role domain.Role) (*domain.User, error) {
	if uid == "" {
		return nil, domain.ErrForbidden
	}
	u, err := users.GetByID(ctx, uid)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Warn("Role check failed: no profile", "uid", uid, "required", role)
		return nil, domain.ErrForbidden
	}
	if err != nil {
		return nil, err
	}
	if u.Role != role {
		logger.Warn("Role check failed", "uid", uid, "role", u.Role, "required", role)
		return nil, domain.ErrForbidden
	}
	return u, nil
}

// requireAdmin is RequireRole for the admin role.
func requireAdmin(ctx context.Context, users repository.UserRepository, uid string) error {
	_, err := RequireRole(ctx, users, uid, domain.RoleAdmin)
	return err
}

// uploadFile stores an upload under prefix/<uuid><ext> and returns its public URL.
func uploadFile(ctx context.Context, store storage.StorageInterface, prefix string, up domain.Upload) (string, error) {
	if up.Empty() {
		return "", domain.Invalid(fmt.Sprintf("%s file is empty", prefix))
	}
	contentType := up.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := prefix + "/" + uuid.NewString() + strings.ToLower(path.Ext(up.Filename))

	logger.ExternalServiceCall("storage", "Upload", "key", key, "size", len(up.Data))
	url, err := store.Upload(ctx, key, contentType, up.Data)
	logger.ExternalServiceResult("storage", "Upload", err, "key", key)
	if err != nil {
		return "", domain.Upstream("upload "+prefix, err)
	}
	return url, nil
}
