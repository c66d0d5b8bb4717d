package security

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"

	"kindnessconnect-backend/internal/domain"
	"kindnessconnect-backend/internal/logger"
)

// firebaseAuth is the subset of *auth.Client the verifier needs.
type firebaseAuth interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	DeleteUser(ctx context.Context, uid string) error
}

// FirebaseVerifier checks Firebase Auth ID tokens.
type FirebaseVerifier struct {
	client firebaseAuth
}

func NewFirebaseVerifier(client *auth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) VerifyToken(ctx context.Context, bearer string) (string, error) {
	if bearer == "" {
		return "", ErrMissingToken
	}
	token, err := v.client.VerifyIDToken(ctx, bearer)
	if err != nil {
		logger.Debug("Firebase token rejected", "error", err)
		if auth.IsIDTokenExpired(err) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}
	if token.UID == "" {
		return "", ErrInvalidToken
	}
	return token.UID, nil
}

// DeleteIdentity removes the Firebase Auth user. A user that no longer exists counts as removed.
func (v *FirebaseVerifier) DeleteIdentity(ctx context.Context, uid string) error {
	logger.ExternalServiceCall("firebase-auth", "DeleteUser", "uid", uid)
	err := v.client.DeleteUser(ctx, uid)
	if err != nil && auth.IsUserNotFound(err) {
		err = nil
	}
	logger.ExternalServiceResult("firebase-auth", "DeleteUser", err, "uid", uid)
	if err != nil {
		return domain.Upstream("delete identity", fmt.Errorf("firebase auth: %w", err))
	}
	return nil
}
