package contract

import (
	"context"
	"time"

	"ai-chat-be/internal/entity"

	"github.com/google/uuid"
)

type SuggestionRepository interface {
	CreateMany(ctx context.Context, suggestions []*entity.Suggestion) (int64, error)

	// FindByDocument returns the document's suggestions newest first.
	FindByDocument(ctx context.Context, documentId uuid.UUID) ([]*entity.Suggestion, error)

	// DeleteByDocumentAfter removes suggestions referencing document versions
	// newer than the cutoff.
	DeleteByDocumentAfter(ctx context.Context, documentId uuid.UUID, timestamp time.Time) error
}
