package dto

import (
	"time"

	"github.com/google/uuid"
)

type SaveDocumentRequest struct {
	Id      uuid.UUID `json:"id" validate:"required"`
	Title   string    `json:"title" validate:"required"`
	Kind    string    `json:"kind" validate:"required,oneof=text code"`
	Content *string   `json:"content"`
}

type SaveDocumentResponse struct {
	Id        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type DocumentResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind"`
	Content   *string   `json:"content"`
	UserId    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type SuggestionItem struct {
	Id                uuid.UUID `json:"id" validate:"required"`
	OriginalText      string    `json:"original_text" validate:"required"`
	SuggestedText     string    `json:"suggested_text" validate:"required"`
	Description       *string   `json:"description"`
	DocumentCreatedAt time.Time `json:"document_created_at" validate:"required"`
}

type SaveSuggestionsRequest struct {
	DocumentId  uuid.UUID        `json:"document_id" validate:"required"`
	Suggestions []SuggestionItem `json:"suggestions" validate:"required,min=1,dive"`
}

type SuggestionResponse struct {
	Id                uuid.UUID `json:"id"`
	DocumentId        uuid.UUID `json:"document_id"`
	DocumentCreatedAt time.Time `json:"document_created_at"`
	OriginalText      string    `json:"original_text"`
	SuggestedText     string    `json:"suggested_text"`
	Description       *string   `json:"description"`
	IsResolved        bool      `json:"is_resolved"`
	CreatedAt         time.Time `json:"created_at"`
}

type DeleteDocumentVersionsRequest struct {
	Id        uuid.UUID `json:"id" validate:"required"`
	Timestamp time.Time `json:"timestamp" validate:"required"`
}

// UpdateDocumentRequest drives the streaming document rewrite. Description
// carries the user's instruction for how to change the document.
type UpdateDocumentRequest struct {
	Id          uuid.UUID `json:"id" validate:"required"`
	Description string    `json:"description" validate:"required"`
}

type UpdateDocumentResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Persisted bool      `json:"persisted"`
}
