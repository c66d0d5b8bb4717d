package security

import (
	"context"
	"fmt"

	"kindnessconnect-backend/internal/domain"
)

var (
	ErrInvalidToken = fmt.Errorf("%w: invalid token", domain.ErrUnauthenticated)
	ErrExpiredToken = fmt.Errorf("%w: token has expired", domain.ErrUnauthenticated)
	ErrMissingToken = fmt.Errorf("%w: missing bearer token", domain.ErrUnauthenticated)
)

// IdentityVerifier resolves bearer credentials issued by the identity provider and removes
// credentials on account deletion.
type IdentityVerifier interface {
	// VerifyToken returns the uid the token was issued to.
	VerifyToken(ctx context.Context, bearer string) (string, error)
	DeleteIdentity(ctx context.Context, uid string) error
}
