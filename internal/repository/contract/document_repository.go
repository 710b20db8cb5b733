package contract

import (
	"context"
	"time"

	"ai-chat-be/internal/entity"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	// Create inserts a new document version; saving an existing id again
	// creates another version rather than mutating in place.
	Create(ctx context.Context, doc *entity.Document) error

	// FindVersions returns every version of the document, oldest first.
	FindVersions(ctx context.Context, id uuid.UUID) ([]*entity.Document, error)

	// FindLatest returns the current version, or (nil, nil) when absent.
	FindLatest(ctx context.Context, id uuid.UUID) (*entity.Document, error)

	// DeleteVersionsAfter removes versions newer than the cutoff and returns
	// the deleted count. Dependent suggestions must be deleted first, in the
	// same transaction (see document service).
	DeleteVersionsAfter(ctx context.Context, id uuid.UUID, timestamp time.Time) (int64, error)
}
