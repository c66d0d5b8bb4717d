package service

import (
	"context"
	"errors"
	"time"

	"kindnessconnect-backend/internal/domain"
	"kindnessconnect-backend/internal/logger"
	"kindnessconnect-backend/internal/repository"
)

type chatService struct {
	chatRepo     repository.ChatRepository
	campaignRepo repository.CampaignRepository
}

func NewChatService(chatRepo repository.ChatRepository, campaignRepo repository.CampaignRepository) ChatService {
	return &chatService{chatRepo: chatRepo, campaignRepo: campaignRepo}
}

// InitiateChat allocates the room between the campaign owner and a donor. Repeated calls,
// from either side, resolve to the same room. The caller must be one of the two participants.
func (s *chatService) InitiateChat(ctx context.Context, actingUID, campaignID, donorUID string) (*domain.ChatSession, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("campaign " + campaignID)
		}
		return nil, err
	}
	if actingUID != donorUID && actingUID != campaign.RequesterUID {
		return nil, domain.Forbidden("only the donor or the campaign owner can open this chat")
	}

	room := &domain.ChatRoom{
		ID:           domain.ChatRoomID(campaignID, campaign.RequesterUID, donorUID),
		RequestID:    campaignID,
		RequesterUID: campaign.RequesterUID,
		DonorUID:     donorUID,
		Participants: domain.ChatParticipants(campaign.RequesterUID, donorUID),
		CreatedAt:    time.Now().UTC(),
	}
	created, err := s.chatRepo.CreateIfAbsent(ctx, room)
	if err != nil {
		return nil, err
	}
	logger.Debug("Chat room resolved", "chatID", room.ID, "created", created)

	return &domain.ChatSession{ChatID: room.ID, RequesterUID: campaign.RequesterUID}, nil
}
