package document

import (
	"errors"

	"kindnessconnect-backend/internal/docstore"
	"kindnessconnect-backend/internal/domain"
	"kindnessconnect-backend/internal/repository"
)

const (
	usersCollection         = "users"
	campaignsCollection     = "donation_requests"
	donationsCollection     = "donations"
	sponsorsCollection      = "sponsors"
	verificationsCollection = "verification_requests"
	chatsCollection         = "chats"
)

type Store struct {
	client docstore.Client
	repository.UserRepository
	repository.CampaignRepository
	repository.DonationRepository
	repository.SponsorRepository
	repository.VerificationRepository
	repository.ChatRepository
}

func NewStore(client docstore.Client) *Store {
	return &Store{
		client:                 client,
		UserRepository:         NewUserRepository(client),
		CampaignRepository:     NewCampaignRepository(client),
		DonationRepository:     NewDonationRepository(client),
		SponsorRepository:      NewSponsorRepository(client),
		VerificationRepository: NewVerificationRepository(client),
		ChatRepository:         NewChatRepository(client),
	}
}

func (s *Store) Close() error {
	return s.client.Close()
}

// translate maps docstore errors to domain errors. Anything unrecognized is an upstream failure.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, docstore.ErrNotFound):
		return domain.ErrNotFound
	case errors.Is(err, docstore.ErrAlreadyExists):
		return domain.ErrAlreadyExists
	}
	return domain.Upstream(op, err)
}
