package service

import (
	"context"
	"fmt"
	"time"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/apperror"
	"ai-chat-be/internal/repository/unitofwork"

	"ai-chat-be/pkg/events"
	pktNats "ai-chat-be/pkg/nats"

	"github.com/google/uuid"
)

type IDocumentService interface {
	SaveDocument(ctx context.Context, userId uuid.UUID, req *dto.SaveDocumentRequest) (*dto.SaveDocumentResponse, error)
	GetDocumentVersions(ctx context.Context, userId uuid.UUID, id uuid.UUID) ([]*dto.DocumentResponse, error)
	GetLatestDocument(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.DocumentResponse, error)
	SaveSuggestions(ctx context.Context, userId uuid.UUID, req *dto.SaveSuggestionsRequest) (int64, error)
	GetSuggestions(ctx context.Context, userId uuid.UUID, documentId uuid.UUID) ([]*dto.SuggestionResponse, error)
	DeleteDocumentVersionsAfter(ctx context.Context, userId uuid.UUID, req *dto.DeleteDocumentVersionsRequest) (int64, error)
}

type documentService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewDocumentService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) IDocumentService {
	return &documentService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

// SaveDocument appends a new version under the shared document id; earlier
// versions stay untouched.
func (s *documentService) SaveDocument(ctx context.Context, userId uuid.UUID, req *dto.SaveDocumentRequest) (*dto.SaveDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	latest, err := uow.DocumentRepository().FindLatest(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	if latest != nil && latest.UserId != userId {
		return nil, apperror.New(apperror.KindForbidden, "document belongs to another user")
	}

	doc := &entity.Document{
		Id:        req.Id,
		CreatedAt: time.Now(),
		Title:     req.Title,
		Content:   req.Content,
		Kind:      entity.DocumentKind(req.Kind),
		UserId:    userId,
	}

	if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: "DOCUMENT_SAVED",
			Data: map[string]interface{}{
				"document_id": doc.Id,
				"user_id":     userId,
				"title":       doc.Title,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			fmt.Printf("[WARN] Failed to publish DOCUMENT_SAVED event: %v\n", err)
		}
	}

	return &dto.SaveDocumentResponse{Id: doc.Id, CreatedAt: doc.CreatedAt}, nil
}

func (s *documentService) GetDocumentVersions(ctx context.Context, userId uuid.UUID, id uuid.UUID) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	docs, err := uow.DocumentRepository().FindVersions(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, apperror.NotFound("document not found")
	}
	if docs[0].UserId != userId {
		return nil, apperror.New(apperror.KindForbidden, "document belongs to another user")
	}

	res := make([]*dto.DocumentResponse, len(docs))
	for i, d := range docs {
		res[i] = toDocumentResponse(d)
	}
	return res, nil
}

func (s *documentService) GetLatestDocument(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindLatest(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NotFound("document not found")
	}
	if doc.UserId != userId {
		return nil, apperror.New(apperror.KindForbidden, "document belongs to another user")
	}

	return toDocumentResponse(doc), nil
}

func (s *documentService) SaveSuggestions(ctx context.Context, userId uuid.UUID, req *dto.SaveSuggestionsRequest) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	suggestions := make([]*entity.Suggestion, len(req.Suggestions))
	for i, item := range req.Suggestions {
		suggestions[i] = &entity.Suggestion{
			Id:                item.Id,
			DocumentId:        req.DocumentId,
			DocumentCreatedAt: item.DocumentCreatedAt,
			OriginalText:      item.OriginalText,
			SuggestedText:     item.SuggestedText,
			Description:       item.Description,
			IsResolved:        false,
			UserId:            userId,
			CreatedAt:         time.Now(),
		}
	}

	return uow.SuggestionRepository().CreateMany(ctx, suggestions)
}

func (s *documentService) GetSuggestions(ctx context.Context, userId uuid.UUID, documentId uuid.UUID) ([]*dto.SuggestionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	suggestions, err := uow.SuggestionRepository().FindByDocument(ctx, documentId)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SuggestionResponse, len(suggestions))
	for i, sg := range suggestions {
		res[i] = &dto.SuggestionResponse{
			Id:                sg.Id,
			DocumentId:        sg.DocumentId,
			DocumentCreatedAt: sg.DocumentCreatedAt,
			OriginalText:      sg.OriginalText,
			SuggestedText:     sg.SuggestedText,
			Description:       sg.Description,
			IsResolved:        sg.IsResolved,
			CreatedAt:         sg.CreatedAt,
		}
	}
	return res, nil
}

// DeleteDocumentVersionsAfter drops every version newer than the cutoff.
// Suggestions referencing those versions are removed first inside the same
// transaction; there is no storage-level cascade between the two tables.
func (s *documentService) DeleteDocumentVersionsAfter(ctx context.Context, userId uuid.UUID, req *dto.DeleteDocumentVersionsRequest) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	latest, err := uow.DocumentRepository().FindLatest(ctx, req.Id)
	if err != nil {
		return 0, err
	}
	if latest == nil {
		return 0, apperror.NotFound("document not found")
	}
	if latest.UserId != userId {
		return 0, apperror.New(apperror.KindForbidden, "document belongs to another user")
	}

	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback()

	if err := uow.SuggestionRepository().DeleteByDocumentAfter(ctx, req.Id, req.Timestamp); err != nil {
		return 0, err
	}

	deleted, err := uow.DocumentRepository().DeleteVersionsAfter(ctx, req.Id, req.Timestamp)
	if err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, err
	}

	return deleted, nil
}

func toDocumentResponse(d *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:        d.Id,
		Title:     d.Title,
		Kind:      string(d.Kind),
		Content:   d.Content,
		UserId:    d.UserId,
		CreatedAt: d.CreatedAt,
	}
}
