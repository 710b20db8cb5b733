package contract

import (
	"context"
	"time"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type VoteRepository interface {
	// Upsert creates the vote or overwrites IsUpvoted for the existing
	// (chat, message) pair; exactly one row per pair survives.
	Upsert(ctx context.Context, vote *entity.Vote) error

	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Vote, error)

	// DeleteByChatAfter removes votes whose message is newer than the cutoff
	// within one chat.
	DeleteByChatAfter(ctx context.Context, chatId uuid.UUID, timestamp time.Time) error
}
