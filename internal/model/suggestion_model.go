package model

import (
	"time"

	"github.com/google/uuid"
)

// Suggestion references a document version via (DocumentId, DocumentCreatedAt).
// There is no foreign key for that pair; version truncation must delete
// suggestions first (see document repository).
type Suggestion struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId        uuid.UUID `gorm:"type:uuid;not null;index"`
	DocumentCreatedAt time.Time `gorm:"not null"`
	OriginalText      string    `gorm:"type:text;not null"`
	SuggestedText     string    `gorm:"type:text;not null"`
	Description       *string   `gorm:"type:text"`
	IsResolved        bool      `gorm:"not null;default:false"`
	UserId            uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
}

func (Suggestion) TableName() string {
	return "suggestions"
}
