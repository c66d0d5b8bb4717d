package domain

import "time"

type Role string

const (
	RoleDonor Role = "donor"
	RoleAdmin Role = "admin"
	// RoleUser is what records without a stored role resolve to.
	RoleUser Role = "user"
)

// AnonymousName replaces the owner's name on campaigns that hide it.
const AnonymousName = "Anonymous Donor"

// UnknownName is shown when the owner record has no usable name.
const UnknownName = "Unknown"

type User struct {
	UID             string    `json:"uid" firestore:"uid"`
	Email           string    `json:"email" firestore:"email"`
	FullName        string    `json:"full_name" firestore:"full_name"`
	Role            Role      `json:"role" firestore:"role"`
	PhoneNumber     string    `json:"phone_number,omitempty" firestore:"phone_number,omitempty"`
	ProfileImageURL string    `json:"profile_image_url,omitempty" firestore:"profile_image_url,omitempty"`
	IsVerified      bool      `json:"is_verified" firestore:"is_verified"`
	IsActive        bool      `json:"is_active" firestore:"is_active"`
	CreatedAt       time.Time `json:"created_at" firestore:"created_at"`
}

// ProfileInput carries the self-service fields of a new profile.
type ProfileInput struct {
	Email           string `json:"email"`
	FullName        string `json:"full_name"`
	Role            Role   `json:"role"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}

// ResolveDisplayName is the single privacy rule applied on every read path that shows a
// campaign owner or a donor.
func ResolveDisplayName(u *User, isPublic bool) string {
	if !isPublic {
		return AnonymousName
	}
	if u == nil || u.FullName == "" {
		return UnknownName
	}
	return u.FullName
}
