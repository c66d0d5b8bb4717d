package document

import (
	"context"
	"errors"

	"kindnessconnect-backend/internal/docstore"
	"kindnessconnect-backend/internal/domain"
	"kindnessconnect-backend/internal/repository"
)

type chatRepository struct {
	client docstore.Client
}

func NewChatRepository(client docstore.Client) repository.ChatRepository {
	return &chatRepository{client: client}
}

func (r *chatRepository) CreateIfAbsent(ctx context.Context, room *domain.ChatRoom) (bool, error) {
	err := r.client.Create(ctx, chatsCollection, room.ID, room)
	if errors.Is(err, docstore.ErrAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, translate("create chat room", err)
	}
	return true, nil
}
