package contract

import (
	"context"
	"time"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	// CreateMany bulk-inserts messages and returns the inserted count.
	CreateMany(ctx context.Context, messages []*entity.Message) (int64, error)

	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error)

	// FindByChat returns the chat's messages in created_at ascending order;
	// conversation replay depends on that ordering.
	FindByChat(ctx context.Context, chatId uuid.UUID) ([]*entity.Message, error)

	// DeleteByChatAfter removes messages newer than the cutoff within one
	// chat and returns the deleted count. Votes referencing those messages
	// must be deleted first, in the same transaction (see chat service).
	DeleteByChatAfter(ctx context.Context, chatId uuid.UUID, timestamp time.Time) (int64, error)
}
