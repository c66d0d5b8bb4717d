package domain

import "time"

// LegacyTestDonorUID is the placeholder donor id older clients wrote donations under.
// Its donations are appended to every donor listing.
const LegacyTestDonorUID = "web_donor_test"

const (
	UnknownCampaignTitle = "Unknown Campaign"
	MissingCampaignTitle = "Unknown Campaign Title - Data Error"
)

// Donation is append-only. RequestTitle is the campaign title at donation time.
type Donation struct {
	ID            string    `json:"id" firestore:"id"`
	RequestID     string    `json:"request_id" firestore:"request_id"`
	DonorUID      string    `json:"donor_uid" firestore:"donor_uid"`
	Amount        float64   `json:"amount" firestore:"amount"`
	PaymentMethod string    `json:"payment_method" firestore:"payment_method"`
	RequestTitle  string    `json:"request_title" firestore:"request_title"`
	Timestamp     time.Time `json:"timestamp" firestore:"timestamp"`
}

// DonationView adds the donor's current display name for admin listings.
type DonationView struct {
	Donation
	DonorName string `json:"donor_name"`
}

// DonationInput is one logical donation request. IdempotencyKey, when set, is combined
// with the donor into the donation id so a retried request cannot record the donation twice.
type DonationInput struct {
	IdempotencyKey string  `json:"-"`
	RequestID      string  `json:"request_id"`
	DonorUID       string  `json:"donor_uid"`
	Amount         float64 `json:"amount"`
	PaymentMethod  string  `json:"payment_method"`
}

// LedgerDrift is reported when a campaign's collected amount differs from the sum of
// its donations.
type LedgerDrift struct {
	CampaignID     string  `json:"campaign_id"`
	Collected      float64 `json:"collected"`
	DonationsTotal float64 `json:"donations_total"`
	DonationCount  int     `json:"donation_count"`
}
