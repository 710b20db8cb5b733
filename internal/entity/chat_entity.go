package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ChatVisibility string

const (
	ChatVisibilityPrivate ChatVisibility = "private"
	ChatVisibilityPublic  ChatVisibility = "public"
)

func (v ChatVisibility) Valid() bool {
	return v == ChatVisibilityPrivate || v == ChatVisibilityPublic
}

type Chat struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	Title      string
	Visibility ChatVisibility
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Message content is an opaque structured payload; the backend stores and
// replays it without interpreting the shape.
type Message struct {
	Id        uuid.UUID
	ChatId    uuid.UUID
	Role      string
	Content   json.RawMessage
	CreatedAt time.Time
}

type Vote struct {
	ChatId    uuid.UUID
	MessageId uuid.UUID
	IsUpvoted bool
}
