package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentKind string

const (
	DocumentKindText DocumentKind = "text"
	DocumentKindCode DocumentKind = "code"
)

func (k DocumentKind) Valid() bool {
	return k == DocumentKindText || k == DocumentKindCode
}

// Document is one version of an artifact; versions share Id and are
// distinguished by CreatedAt. The latest CreatedAt is the current version.
type Document struct {
	Id        uuid.UUID
	CreatedAt time.Time
	Title     string
	Content   *string
	Kind      DocumentKind
	UserId    uuid.UUID
}

type Suggestion struct {
	Id                uuid.UUID
	DocumentId        uuid.UUID
	DocumentCreatedAt time.Time
	OriginalText      string
	SuggestedText     string
	Description       *string
	IsResolved        bool
	UserId            uuid.UUID
	CreatedAt         time.Time
}
