package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type SaveChatRequest struct {
	Id         uuid.UUID `json:"id" validate:"required"`
	Title      string    `json:"title" validate:"required"`
	Visibility string    `json:"visibility" validate:"omitempty,oneof=private public"`
}

type SaveChatResponse struct {
	Id uuid.UUID `json:"id"`
}

type ChatResponse struct {
	Id         uuid.UUID `json:"id"`
	UserId     uuid.UUID `json:"user_id"`
	Title      string    `json:"title"`
	Visibility string    `json:"visibility"`
	CreatedAt  time.Time `json:"created_at"`
}

type MessageItem struct {
	Id      uuid.UUID       `json:"id" validate:"required"`
	Role    string          `json:"role" validate:"required"`
	Content json.RawMessage `json:"content" validate:"required"`
	// CreatedAt is optional; the server assigns one when absent.
	CreatedAt time.Time `json:"created_at"`
}

type SaveMessagesRequest struct {
	ChatId   uuid.UUID     `json:"chat_id" validate:"required"`
	Messages []MessageItem `json:"messages" validate:"required,min=1,dive"`
}

type MessageResponse struct {
	Id        uuid.UUID       `json:"id"`
	ChatId    uuid.UUID       `json:"chat_id"`
	Role      string          `json:"role"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
}

type VoteMessageRequest struct {
	ChatId    uuid.UUID `json:"chat_id" validate:"required"`
	MessageId uuid.UUID `json:"message_id" validate:"required"`
	Type      string    `json:"type" validate:"required,oneof=up down"`
}

type VoteResponse struct {
	ChatId    uuid.UUID `json:"chat_id"`
	MessageId uuid.UUID `json:"message_id"`
	IsUpvoted bool      `json:"is_upvoted"`
}

type UpdateVisibilityRequest struct {
	ChatId     uuid.UUID `json:"chat_id" validate:"required"`
	Visibility string    `json:"visibility" validate:"required,oneof=private public"`
}

// GenerateTitleMessage is the queue payload asking the title worker to name
// a chat from its opening message.
type GenerateTitleMessage struct {
	ChatId uuid.UUID `json:"chat_id"`
}

type DeleteTrailingMessagesRequest struct {
	ChatId    uuid.UUID `json:"chat_id" validate:"required"`
	Timestamp time.Time `json:"timestamp" validate:"required"`
}
