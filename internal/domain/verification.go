package domain

import "time"

type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"
)

// UnknownUserName is stored when the requester profile has no name.
const UnknownUserName = "Unknown User"

type VerificationRequest struct {
	ID               string             `json:"id" firestore:"id"`
	RequesterUID     string             `json:"requester_uid" firestore:"requester_uid"`
	UserName         string             `json:"user_name" firestore:"user_name"`
	DealID           string             `json:"deal_id" firestore:"deal_id"`
	ProofDescription string             `json:"proof_description" firestore:"proof_description"`
	ProofDocumentURL string             `json:"proof_document_url" firestore:"proof_document_url"`
	Status           VerificationStatus `json:"status" firestore:"status"`
	CreatedAt        time.Time          `json:"created_at" firestore:"created_at"`
}

// VerificationProof is what a requester submits alongside the chosen deal.
type VerificationProof struct {
	Description string
	Document    Upload
}

type VerificationPatch struct {
	Status *VerificationStatus `json:"status,omitempty"`
}

func (p VerificationPatch) IsEmpty() bool {
	return p.Status == nil
}

func (p VerificationPatch) Fields() map[string]any {
	fields := make(map[string]any)
	if p.Status != nil {
		fields["status"] = string(*p.Status)
	}
	return fields
}
