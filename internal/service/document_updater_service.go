package service

import (
	"context"
	"fmt"
	"time"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/apperror"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/pkg/llm"
	"ai-chat-be/pkg/stream"

	"github.com/google/uuid"
)

// IDocumentUpdaterService rewrites a document with the model while streaming
// progress to the caller, then persists the result as a new version.
type IDocumentUpdaterService interface {
	UpdateDocument(ctx context.Context, userId uuid.UUID, req *dto.UpdateDocumentRequest, w stream.DataStreamWriter) (*dto.UpdateDocumentResponse, error)
}

type documentUpdaterService struct {
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewDocumentUpdaterService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
) IDocumentUpdaterService {
	return &documentUpdaterService{
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
		logger:      log,
	}
}

func updateTextPrompt(currentContent string) string {
	return fmt.Sprintf("Improve the following contents of the document based on the given prompt.\n\n%s", currentContent)
}

func updateCodePrompt(currentContent string) string {
	return fmt.Sprintf("Improve the following code snippet based on the given prompt.\n\n%s", currentContent)
}

// UpdateDocument drives the rewrite as a strict event sequence: clear, then
// deltas matching the document kind, then finish. Text documents stream
// append-only fragments; code documents stream full-replacement snapshots so
// the client never renders half a program. A failed delta write means the
// client is gone, so generation stops and nothing is persisted.
func (s *documentUpdaterService) UpdateDocument(ctx context.Context, userId uuid.UUID, req *dto.UpdateDocumentRequest, w stream.DataStreamWriter) (*dto.UpdateDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindLatest(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NotFound("document not found")
	}

	currentContent := ""
	if doc.Content != nil {
		currentContent = *doc.Content
	}

	if err := w.WriteEvent(stream.Event{Type: stream.EventClear}); err != nil {
		return nil, apperror.Wrap(apperror.KindStorage, "stream closed before update started", err)
	}

	draft := ""
	var writeErr error
	switch doc.Kind {
	case entity.DocumentKindCode:
		err = s.llmProvider.StreamCode(ctx, updateCodePrompt(currentContent), req.Description, func(snapshot string) error {
			if werr := w.WriteEvent(stream.Event{Type: stream.EventCodeDelta, Content: snapshot}); werr != nil {
				writeErr = werr
				return werr
			}
			draft = snapshot
			return nil
		})
	default:
		err = s.llmProvider.StreamText(ctx, updateTextPrompt(currentContent), req.Description, func(delta string) error {
			if werr := w.WriteEvent(stream.Event{Type: stream.EventTextDelta, Content: delta}); werr != nil {
				writeErr = werr
				return werr
			}
			draft += delta
			return nil
		})
	}
	if writeErr != nil {
		return nil, apperror.Wrap(apperror.KindStorage, "stream closed mid-update", writeErr)
	}
	if err != nil {
		return nil, apperror.Wrap(apperror.KindUpstreamModel, "document generation failed", err)
	}

	if err := w.WriteEvent(stream.Event{Type: stream.EventFinish}); err != nil {
		return nil, apperror.Wrap(apperror.KindStorage, "stream closed before update finished", err)
	}

	res := &dto.UpdateDocumentResponse{
		Id:      doc.Id,
		Title:   doc.Title,
		Kind:    string(doc.Kind),
		Message: "The document has been updated successfully.",
	}

	// Anonymous sessions still get the full stream; the result is just never
	// written back.
	if userId == uuid.Nil {
		s.logger.Info("DocumentUpdater", "Skipping persistence for anonymous session", map[string]interface{}{
			"document_id": doc.Id,
		})
		res.Persisted = false
		return res, nil
	}

	newVersion := &entity.Document{
		Id:        doc.Id,
		CreatedAt: time.Now(),
		Title:     doc.Title,
		Content:   &draft,
		Kind:      doc.Kind,
		UserId:    userId,
	}
	if err := uow.DocumentRepository().Create(ctx, newVersion); err != nil {
		return nil, err
	}

	res.Persisted = true
	return res, nil
}
