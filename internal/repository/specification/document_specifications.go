package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByDocument scopes suggestions to one document id (any version).
type ByDocument struct {
	DocumentID uuid.UUID
}

func (s ByDocument) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

// VersionsAfter keeps document versions strictly newer than the cutoff for
// one document id.
type VersionsAfter struct {
	DocumentID uuid.UUID
	Timestamp  time.Time
}

func (s VersionsAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ? AND created_at > ?", s.DocumentID, s.Timestamp)
}
