package domain

import "time"

type SponsorStatus string

const (
	SponsorStatusPending  SponsorStatus = "pending"
	SponsorStatusApproved SponsorStatus = "approved"
	SponsorStatusRejected SponsorStatus = "rejected"
)

// Sponsor drives the site-wide color theme while IsActiveTheme is set. At most one
// sponsor carries the flag.
type Sponsor struct {
	ID              string        `json:"id" firestore:"id"`
	SponsorName     string        `json:"sponsor_name" firestore:"sponsor_name"`
	ContactEmail    string        `json:"contact_email" firestore:"contact_email"`
	DealID          string        `json:"deal_id" firestore:"deal_id"`
	PrimaryColorHex string        `json:"primary_color_hex" firestore:"primary_color_hex"`
	LightBgHex      string        `json:"light_bg_hex" firestore:"light_bg_hex"`
	WebsiteURL      string        `json:"website_url,omitempty" firestore:"website_url,omitempty"`
	LogoURL         string        `json:"logo_url" firestore:"logo_url"`
	Status          SponsorStatus `json:"status" firestore:"status"`
	IsActiveTheme   bool          `json:"is_active_theme" firestore:"is_active_theme"`
	CreatedAt       time.Time     `json:"created_at" firestore:"created_at"`
}

type SponsorInput struct {
	SponsorName     string
	ContactEmail    string
	DealID          string
	PrimaryColorHex string
	LightBgHex      string
	WebsiteURL      string
}

// SponsorPatch is an admin update; nil fields are left untouched.
type SponsorPatch struct {
	Status          *SponsorStatus `json:"status,omitempty"`
	IsActiveTheme   *bool          `json:"is_active_theme,omitempty"`
	PrimaryColorHex *string        `json:"primary_color_hex,omitempty"`
	LightBgHex      *string        `json:"light_bg_hex,omitempty"`
	WebsiteURL      *string        `json:"website_url,omitempty"`
	ContactEmail    *string        `json:"contact_email,omitempty"`
}

func (p SponsorPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Fields returns the stored document keys the patch sets.
func (p SponsorPatch) Fields() map[string]any {
	fields := make(map[string]any)
	if p.Status != nil {
		fields["status"] = string(*p.Status)
	}
	if p.IsActiveTheme != nil {
		fields["is_active_theme"] = *p.IsActiveTheme
	}
	if p.PrimaryColorHex != nil {
		fields["primary_color_hex"] = *p.PrimaryColorHex
	}
	if p.LightBgHex != nil {
		fields["light_bg_hex"] = *p.LightBgHex
	}
	if p.WebsiteURL != nil {
		fields["website_url"] = *p.WebsiteURL
	}
	if p.ContactEmail != nil {
		fields["contact_email"] = *p.ContactEmail
	}
	return fields
}

// Activates reports whether applying the patch turns the sponsor's theme on.
func (p SponsorPatch) Activates() bool {
	return p.IsActiveTheme != nil && *p.IsActiveTheme
}

// Theme is a primary / light background color pair in #rrggbb form.
type Theme struct {
	PrimaryColorHex string `json:"primary_color_hex"`
	LightBgHex      string `json:"light_bg_hex"`
}

// DefaultTheme is used whenever no palette can be derived from a logo.
var DefaultTheme = Theme{PrimaryColorHex: "#1D4ED8", LightBgHex: "#EFF6FF"}
