package document

import (
	"context"
	"time"

	"kindnessconnect-backend/internal/docstore"
	"kindnessconnect-backend/internal/domain"
	"kindnessconnect-backend/internal/logger"
	"kindnessconnect-backend/internal/repository"
)

// userRecord is the stored shape. Older documents may lack is_active, role or created_at.
type userRecord struct {
	UID             string     `json:"uid" firestore:"uid"`
	Email           string     `json:"email" firestore:"email"`
	FullName        string     `json:"full_name" firestore:"full_name"`
	Role            string     `json:"role,omitempty" firestore:"role,omitempty"`
	PhoneNumber     string     `json:"phone_number,omitempty" firestore:"phone_number,omitempty"`
	ProfileImageURL string     `json:"profile_image_url,omitempty" firestore:"profile_image_url,omitempty"`
	IsVerified      bool       `json:"is_verified" firestore:"is_verified"`
	IsActive        *bool      `json:"is_active,omitempty" firestore:"is_active,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty" firestore:"created_at,omitempty"`
}

func newUserRecord(u *domain.User) userRecord {
	active := u.IsActive
	created := u.CreatedAt
	return userRecord{
		UID:             u.UID,
		Email:           u.Email,
		FullName:        u.FullName,
		Role:            string(u.Role),
		PhoneNumber:     u.PhoneNumber,
		ProfileImageURL: u.ProfileImageURL,
		IsVerified:      u.IsVerified,
		IsActive:        &active,
		CreatedAt:       &created,
	}
}

func (r userRecord) toDomain(id string) domain.User {
	u := domain.User{
		UID:             r.UID,
		Email:           r.Email,
		FullName:        r.FullName,
		Role:            domain.Role(r.Role),
		PhoneNumber:     r.PhoneNumber,
		ProfileImageURL: r.ProfileImageURL,
		IsVerified:      r.IsVerified,
		IsActive:        true,
		CreatedAt:       time.Now().UTC(),
	}
	if u.UID == "" {
		u.UID = id
	}
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	if r.IsActive != nil {
		u.IsActive = *r.IsActive
	}
	if r.CreatedAt != nil {
		u.CreatedAt = *r.CreatedAt
	}
	return u
}

type userRepository struct {
	client docstore.Client
}

func NewUserRepository(client docstore.Client) repository.UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	logger.EnterMethod("userRepository.Create", "uid", u.UID)
	err := r.client.Create(ctx, usersCollection, u.UID, newUserRecord(u))
	if err != nil {
		err = translate("create user", err)
		logger.ExitMethod("userRepository.Create", "uid", u.UID, "error", err)
		return err
	}
	logger.ExitMethod("userRepository.Create", "uid", u.UID)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, uid string) (*domain.User, error) {
	doc, err := r.client.Get(ctx, usersCollection, uid)
	if err != nil {
		return nil, translate("get user", err)
	}
	var rec userRecord
	if err := doc.DataTo(&rec); err != nil {
		return nil, domain.Upstream("decode user", err)
	}
	u := rec.toDomain(doc.ID())
	return &u, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	docs, err := r.client.Query(ctx, usersCollection, docstore.Query{})
	if err != nil {
		return nil, translate("list users", err)
	}
	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		var rec userRecord
		if err := doc.DataTo(&rec); err != nil {
			return nil, domain.Upstream("decode user", err)
		}
		users = append(users, rec.toDomain(doc.ID()))
	}
	return users, nil
}

func (r *userRepository) SetVerified(ctx context.Context, uid string, verified bool) error {
	return translate("verify user", r.client.Update(ctx, usersCollection, uid, map[string]any{
		"is_verified": verified,
	}))
}

func (r *userRepository) Delete(ctx context.Context, uid string) error {
	return translate("delete user", r.client.Delete(ctx, usersCollection, uid))
}
