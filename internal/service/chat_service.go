package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/apperror"
	"ai-chat-be/internal/repository/memory"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"

	"ai-chat-be/pkg/events"
	pktNats "ai-chat-be/pkg/nats"

	"github.com/google/uuid"
)

type IChatService interface {
	SaveChat(ctx context.Context, userId uuid.UUID, req *dto.SaveChatRequest) (*dto.SaveChatResponse, error)
	DeleteChat(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	GetChat(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ChatResponse, error)
	History(ctx context.Context, userId uuid.UUID) ([]*dto.ChatResponse, error)
	SaveMessages(ctx context.Context, userId uuid.UUID, req *dto.SaveMessagesRequest) (int64, error)
	GetMessages(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) ([]*dto.MessageResponse, error)
	VoteMessage(ctx context.Context, userId uuid.UUID, req *dto.VoteMessageRequest) error
	GetVotes(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) ([]*dto.VoteResponse, error)
	UpdateVisibility(ctx context.Context, userId uuid.UUID, req *dto.UpdateVisibilityRequest) error
	DeleteTrailingMessages(ctx context.Context, userId uuid.UUID, req *dto.DeleteTrailingMessagesRequest) (int64, error)
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	historyCache     *memory.HistoryCache
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	historyCache *memory.HistoryCache,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		historyCache:     historyCache,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

// loadOwnedChat fetches the chat and enforces that userId owns it. Missing
// chats and foreign chats fail differently so callers can map statuses.
func (s *chatService) loadOwnedChat(ctx context.Context, uow unitofwork.UnitOfWork, userId, chatId uuid.UUID) (*entity.Chat, error) {
	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: chatId})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, apperror.NotFound("chat not found")
	}
	if chat.UserId != userId {
		return nil, apperror.New(apperror.KindForbidden, "chat belongs to another user")
	}
	return chat, nil
}

func (s *chatService) SaveChat(ctx context.Context, userId uuid.UUID, req *dto.SaveChatRequest) (*dto.SaveChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	visibility := entity.ChatVisibility(req.Visibility)
	if req.Visibility == "" {
		visibility = entity.ChatVisibilityPrivate
	}

	chat := &entity.Chat{
		Id:         req.Id,
		UserId:     userId,
		Title:      req.Title,
		Visibility: visibility,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := uow.ChatRepository().Create(ctx, chat); err != nil {
		return nil, err
	}

	s.historyCache.Invalidate(userId)

	return &dto.SaveChatResponse{Id: chat.Id}, nil
}

func (s *chatService) DeleteChat(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.loadOwnedChat(ctx, uow, userId, id); err != nil {
		return err
	}

	// Messages and votes ride on the storage-level cascade.
	if err := uow.ChatRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.historyCache.Invalidate(userId)

	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: "CHAT_DELETED",
			Data: map[string]interface{}{
				"chat_id": id,
				"user_id": userId,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			fmt.Printf("[WARN] Failed to publish CHAT_DELETED event: %v\n", err)
		}
	}

	return nil
}

// GetChat returns the chat when the caller owns it or it is public. An
// anonymous caller passes uuid.Nil and only reaches public chats.
func (s *chatService) GetChat(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, apperror.NotFound("chat not found")
	}
	if chat.Visibility != entity.ChatVisibilityPublic && chat.UserId != userId {
		return nil, apperror.New(apperror.KindForbidden, "chat is private")
	}

	return toChatResponse(chat), nil
}

func (s *chatService) History(ctx context.Context, userId uuid.UUID) ([]*dto.ChatResponse, error) {
	if chats, ok := s.historyCache.Get(userId); ok {
		return toChatResponses(chats), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	chats, err := uow.ChatRepository().FindByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	s.historyCache.Set(userId, chats)
	return toChatResponses(chats), nil
}

func (s *chatService) SaveMessages(ctx context.Context, userId uuid.UUID, req *dto.SaveMessagesRequest) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := s.loadOwnedChat(ctx, uow, userId, req.ChatId)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	msgs := make([]*entity.Message, len(req.Messages))
	for i, m := range req.Messages {
		createdAt := m.CreatedAt
		if createdAt.IsZero() {
			// Replay order is created_at ASC; identical timestamps inside one
			// batch would make it nondeterministic.
			createdAt = now.Add(time.Duration(i) * time.Microsecond)
		}
		msgs[i] = &entity.Message{
			Id:        m.Id,
			ChatId:    req.ChatId,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: createdAt,
		}
	}

	count, err := uow.MessageRepository().CreateMany(ctx, msgs)
	if err != nil {
		return 0, err
	}

	// Placeholder titles get replaced asynchronously once the opening
	// message exists; see the title worker.
	if chat.Title == "New Chat" && s.publisherService != nil {
		payload, merr := json.Marshal(dto.GenerateTitleMessage{ChatId: chat.Id})
		if merr == nil {
			if perr := s.publisherService.Publish(ctx, payload); perr != nil {
				fmt.Printf("[WARN] Failed to enqueue title generation for chat %s: %v\n", chat.Id, perr)
			}
		}
	}

	return count, nil
}

func (s *chatService) GetMessages(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: chatId})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, apperror.NotFound("chat not found")
	}
	if chat.Visibility != entity.ChatVisibilityPublic && chat.UserId != userId {
		return nil, apperror.New(apperror.KindForbidden, "chat is private")
	}

	messages, err := uow.MessageRepository().FindByChat(ctx, chatId)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.MessageResponse, len(messages))
	for i, m := range messages {
		res[i] = &dto.MessageResponse{
			Id:        m.Id,
			ChatId:    m.ChatId,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		}
	}
	return res, nil
}

func (s *chatService) VoteMessage(ctx context.Context, userId uuid.UUID, req *dto.VoteMessageRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.loadOwnedChat(ctx, uow, userId, req.ChatId); err != nil {
		return err
	}

	message, err := uow.MessageRepository().FindOne(ctx,
		specification.ByID{ID: req.MessageId},
		specification.ByChat{ChatID: req.ChatId},
	)
	if err != nil {
		return err
	}
	if message == nil {
		return apperror.NotFound("message not found")
	}

	// Re-voting flips the stored direction; one row per (chat, message).
	return uow.VoteRepository().Upsert(ctx, &entity.Vote{
		ChatId:    req.ChatId,
		MessageId: req.MessageId,
		IsUpvoted: req.Type == "up",
	})
}

func (s *chatService) GetVotes(ctx context.Context, userId uuid.UUID, chatId uuid.UUID) ([]*dto.VoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: chatId})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, apperror.NotFound("chat not found")
	}
	if chat.Visibility != entity.ChatVisibilityPublic && chat.UserId != userId {
		return nil, apperror.New(apperror.KindForbidden, "chat is private")
	}

	votes, err := uow.VoteRepository().FindAll(ctx, specification.ByChat{ChatID: chatId})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.VoteResponse, len(votes))
	for i, v := range votes {
		res[i] = &dto.VoteResponse{
			ChatId:    v.ChatId,
			MessageId: v.MessageId,
			IsUpvoted: v.IsUpvoted,
		}
	}
	return res, nil
}

func (s *chatService) UpdateVisibility(ctx context.Context, userId uuid.UUID, req *dto.UpdateVisibilityRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.loadOwnedChat(ctx, uow, userId, req.ChatId); err != nil {
		return err
	}

	if err := uow.ChatRepository().UpdateVisibility(ctx, req.ChatId, entity.ChatVisibility(req.Visibility)); err != nil {
		return err
	}

	s.historyCache.Invalidate(userId)
	return nil
}

// DeleteTrailingMessages removes every message in the chat newer than the
// cutoff, along with the votes that point at them. Votes go first inside one
// transaction so a failure cannot strand them against deleted messages.
func (s *chatService) DeleteTrailingMessages(ctx context.Context, userId uuid.UUID, req *dto.DeleteTrailingMessagesRequest) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.loadOwnedChat(ctx, uow, userId, req.ChatId); err != nil {
		return 0, err
	}

	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback()

	if err := uow.VoteRepository().DeleteByChatAfter(ctx, req.ChatId, req.Timestamp); err != nil {
		return 0, err
	}

	deleted, err := uow.MessageRepository().DeleteByChatAfter(ctx, req.ChatId, req.Timestamp)
	if err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, err
	}

	return deleted, nil
}

func toChatResponse(chat *entity.Chat) *dto.ChatResponse {
	return &dto.ChatResponse{
		Id:         chat.Id,
		UserId:     chat.UserId,
		Title:      chat.Title,
		Visibility: string(chat.Visibility),
		CreatedAt:  chat.CreatedAt,
	}
}

func toChatResponses(chats []*entity.Chat) []*dto.ChatResponse {
	res := make([]*dto.ChatResponse, len(chats))
	for i, c := range chats {
		res[i] = toChatResponse(c)
	}
	return res
}
