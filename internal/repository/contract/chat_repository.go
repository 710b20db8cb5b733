package contract

import (
	"context"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error

	// Delete removes the chat; messages and votes go with it through the
	// storage-level cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error)

	// FindByUser returns the user's chats newest first.
	FindByUser(ctx context.Context, userId uuid.UUID) ([]*entity.Chat, error)

	UpdateVisibility(ctx context.Context, id uuid.UUID, visibility entity.ChatVisibility) error

	UpdateTitle(ctx context.Context, id uuid.UUID, title string) error
}
