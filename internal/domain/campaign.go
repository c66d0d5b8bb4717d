package domain

import "time"

type CampaignStatus string

const (
	CampaignStatusPending  CampaignStatus = "pending"
	CampaignStatusVerified CampaignStatus = "verified"
	CampaignStatusRejected CampaignStatus = "rejected"
)

// Campaign is a stored donation request. CollectedAmount only ever moves through atomic
// increments issued by RecordDonation.
type Campaign struct {
	ID               string         `json:"id" firestore:"id"`
	RequesterUID     string         `json:"requester_uid" firestore:"requester_uid"`
	Title            string         `json:"title" firestore:"title"`
	Category         string         `json:"category" firestore:"category"`
	Story            string         `json:"story" firestore:"story"`
	GoalAmount       float64        `json:"goal_amount" firestore:"goal_amount"`
	CollectedAmount  float64        `json:"collected_amount" firestore:"collected_amount"`
	Deadline         string         `json:"deadline" firestore:"deadline"`
	ImageURL         string         `json:"image_url" firestore:"image_url"`
	GalleryURLs      []string       `json:"gallery_urls" firestore:"gallery_urls"`
	Status           CampaignStatus `json:"status" firestore:"status"`
	BankAccountNo    string         `json:"bank_account_no" firestore:"bank_account_no"`
	BankName         string         `json:"bank_name" firestore:"bank_name"`
	ShowNamePublicly bool           `json:"show_name_publicly" firestore:"show_name_publicly"`
	CreatedAt        time.Time      `json:"created_at" firestore:"created_at"`
}

// CampaignView is a campaign joined with its owner's current name and verification flag.
type CampaignView struct {
	Campaign
	RequesterName     string `json:"requester_name"`
	RequesterVerified bool   `json:"requester_verified"`
}

// CampaignInput holds the submitted fields of a new campaign.
type CampaignInput struct {
	Title            string
	Category         string
	Story            string
	GoalAmount       float64
	Deadline         string
	BankAccountNo    string
	BankName         string
	ShowNamePublicly bool
}

// Upload is an in-memory file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (u Upload) Empty() bool {
	return len(u.Data) == 0
}
