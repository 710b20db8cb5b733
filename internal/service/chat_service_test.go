package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/apperror"
	"ai-chat-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePublisher captures queue payloads published by the chat service.
type fakePublisher struct {
	payloads [][]byte
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func newChatService(uow *fakeUnitOfWork, publisher IPublisherService) IChatService {
	return NewChatService(&fakeFactory{uow: uow}, memory.NewHistoryCache(), publisher, nil)
}

func seedChat(uow *fakeUnitOfWork, userId uuid.UUID, title string, visibility entity.ChatVisibility) *entity.Chat {
	chat := &entity.Chat{
		Id:         uuid.New(),
		UserId:     userId,
		Title:      title,
		Visibility: visibility,
		CreatedAt:  time.Now().Add(-time.Hour),
		UpdatedAt:  time.Now().Add(-time.Hour),
	}
	uow.chats.chats = append(uow.chats.chats, chat)
	return chat
}

func seedMessage(uow *fakeUnitOfWork, chatId uuid.UUID, role string, createdAt time.Time) *entity.Message {
	msg := &entity.Message{
		Id:        uuid.New(),
		ChatId:    chatId,
		Role:      role,
		Content:   json.RawMessage(`{"text":"hi"}`),
		CreatedAt: createdAt,
	}
	uow.messages.messages = append(uow.messages.messages, msg)
	return msg
}

func TestSaveChatDefaultsToPrivate(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := newChatService(uow, nil)
	userId := uuid.New()

	res, err := svc.SaveChat(context.Background(), userId, &dto.SaveChatRequest{
		Id:    uuid.New(),
		Title: "New Chat",
	})
	require.NoError(t, err)

	require.Len(t, uow.chats.chats, 1)
	assert.Equal(t, res.Id, uow.chats.chats[0].Id)
	assert.Equal(t, entity.ChatVisibilityPrivate, uow.chats.chats[0].Visibility)
}

func TestGetChatVisibilityRules(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := newChatService(uow, nil)
	owner := uuid.New()

	private := seedChat(uow, owner, "Private", entity.ChatVisibilityPrivate)
	public := seedChat(uow, owner, "Public", entity.ChatVisibilityPublic)

	// Owner reads both.
	_, err := svc.GetChat(context.Background(), owner, private.Id)
	assert.NoError(t, err)
	_, err = svc.GetChat(context.Background(), owner, public.Id)
	assert.NoError(t, err)

	// A stranger only reads the public one.
	stranger := uuid.New()
	_, err = svc.GetChat(context.Background(), stranger, private.Id)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
	_, err = svc.GetChat(context.Background(), stranger, public.Id)
	assert.NoError(t, err)

	// Anonymous callers carry the zero id and get the same treatment.
	_, err = svc.GetChat(context.Background(), uuid.Nil, private.Id)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
	_, err = svc.GetChat(context.Background(), uuid.Nil, public.Id)
	assert.NoError(t, err)

	_, err = svc.GetChat(context.Background(), owner, uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestSaveMessagesEnqueuesTitleGenerationOnce(t *testing.T) {
	uow := newFakeUnitOfWork()
	publisher := &fakePublisher{}
	svc := newChatService(uow, publisher)
	userId := uuid.New()

	placeholder := seedChat(uow, userId, "New Chat", entity.ChatVisibilityPrivate)
	named := seedChat(uow, userId, "Weekend plans", entity.ChatVisibilityPrivate)

	count, err := svc.SaveMessages(context.Background(), userId, &dto.SaveMessagesRequest{
		ChatId: placeholder.Id,
		Messages: []dto.MessageItem{
			{Id: uuid.New(), Role: "user", Content: json.RawMessage(`{"text":"hello"}`)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Only the placeholder title triggers the worker.
	_, err = svc.SaveMessages(context.Background(), userId, &dto.SaveMessagesRequest{
		ChatId: named.Id,
		Messages: []dto.MessageItem{
			{Id: uuid.New(), Role: "user", Content: json.RawMessage(`{"text":"hello"}`)},
		},
	})
	require.NoError(t, err)

	require.Len(t, publisher.payloads, 1)
	var queued dto.GenerateTitleMessage
	require.NoError(t, json.Unmarshal(publisher.payloads[0], &queued))
	assert.Equal(t, placeholder.Id, queued.ChatId)
}

func TestSaveMessagesAssignsDistinctTimestamps(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := newChatService(uow, nil)
	userId := uuid.New()

	chat := seedChat(uow, userId, "Chat", entity.ChatVisibilityPrivate)

	_, err := svc.SaveMessages(context.Background(), userId, &dto.SaveMessagesRequest{
		ChatId: chat.Id,
		Messages: []dto.MessageItem{
			{Id: uuid.New(), Role: "user", Content: json.RawMessage(`{"text":"a"}`)},
			{Id: uuid.New(), Role: "assistant", Content: json.RawMessage(`{"text":"b"}`)},
			{Id: uuid.New(), Role: "user", Content: json.RawMessage(`{"text":"c"}`)},
		},
	})
	require.NoError(t, err)

	// created_at ascending replay order must stay deterministic inside one
	// batch, so the timestamps have to be strictly increasing.
	require.Len(t, uow.messages.messages, 3)
	for i := 1; i < len(uow.messages.messages); i++ {
		assert.True(t, uow.messages.messages[i].CreatedAt.After(uow.messages.messages[i-1].CreatedAt))
	}
}

func TestSaveMessagesKeepsCallerTimestamps(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := newChatService(uow, nil)
	userId := uuid.New()

	chat := seedChat(uow, userId, "Chat", entity.ChatVisibilityPrivate)
	supplied := time.Now().Add(-time.Hour).Truncate(time.Millisecond)

	_, err := svc.SaveMessages(context.Background(), userId, &dto.SaveMessagesRequest{
		ChatId: chat.Id,
		Messages: []dto.MessageItem{
			{Id: uuid.New(), Role: "user", Content: json.RawMessage(`{"text":"a"}`), CreatedAt: supplied},
		},
	})
	require.NoError(t, err)

	require.Len(t, uow.messages.messages, 1)
	assert.True(t, supplied.Equal(uow.messages.messages[0].CreatedAt))
}

func TestSaveMessagesRejectsForeignChat(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := newChatService(uow, nil)

	chat := seedChat(uow, uuid.New(), "Theirs", entity.ChatVisibilityPrivate)

	_, err := svc.SaveMessages(context.Background(), uuid.New(), &dto.SaveMessagesRequest{
		ChatId: chat.Id,
		Messages: []dto.MessageItem{
			{Id: uuid.New(), Role: "user", Content: json.RawMessage(`{}`)},
		},
	})
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}

func TestVoteMessageUpsertFlips(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := newChatService(uow, nil)
	userId := uuid.New()

	chat := seedChat(uow, userId, "Chat", entity.ChatVisibilityPrivate)
	msg := seedMessage(uow, chat.Id, "assistant", time.Now())

	err := svc.VoteMessage(context.Background(), userId, &dto.VoteMessageRequest{
		ChatId:    chat.Id,
		MessageId: msg.Id,
		Type:      "up",
	})
	require.NoError(t, err)
	require.Len(t, uow.votes.votes, 1)
	assert.True(t, uow.votes.votes[0].IsUpvoted)

	// Re-voting flips the row in place instead of adding a second one.
	err = svc.VoteMessage(context.Background(), userId, &dto.VoteMessageRequest{
		ChatId:    chat.Id,
		MessageId: msg.Id,
		Type:      "down",
	})
	require.NoError(t, err)
	require.Len(t, uow.votes.votes, 1)
	assert.False(t, uow.votes.votes[0].IsUpvoted)
}

func TestVoteMessageUnknownMessage(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := newChatService(uow, nil)
	userId := uuid.New()

	chat := seedChat(uow, userId, "Chat", entity.ChatVisibilityPrivate)

	err := svc.VoteMessage(context.Background(), userId, &dto.VoteMessageRequest{
		ChatId:    chat.Id,
		MessageId: uuid.New(),
		Type:      "up",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestDeleteTrailingMessagesRunsInOneTransaction(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := newChatService(uow, nil)
	userId := uuid.New()

	chat := seedChat(uow, userId, "Chat", entity.ChatVisibilityPrivate)
	cutoff := time.Now()
	seedMessage(uow, chat.Id, "user", cutoff.Add(-time.Minute))
	seedMessage(uow, chat.Id, "assistant", cutoff.Add(time.Minute))
	seedMessage(uow, chat.Id, "user", cutoff.Add(2*time.Minute))

	deleted, err := svc.DeleteTrailingMessages(context.Background(), userId, &dto.DeleteTrailingMessagesRequest{
		ChatId:    chat.Id,
		Timestamp: cutoff,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.Len(t, uow.messages.messages, 1)

	assert.Equal(t, 1, uow.begun)
	assert.Equal(t, 1, uow.committed)
}

func TestHistoryServedFromCacheUntilInvalidated(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := newChatService(uow, nil)
	userId := uuid.New()

	seedChat(uow, userId, "First", entity.ChatVisibilityPrivate)

	chats, err := svc.History(context.Background(), userId)
	require.NoError(t, err)
	require.Len(t, chats, 1)

	// A second chat added behind the cache's back stays invisible until a
	// write path invalidates the entry.
	seedChat(uow, userId, "Second", entity.ChatVisibilityPrivate)
	chats, err = svc.History(context.Background(), userId)
	require.NoError(t, err)
	assert.Len(t, chats, 1)

	_, err = svc.SaveChat(context.Background(), userId, &dto.SaveChatRequest{
		Id:    uuid.New(),
		Title: "Third",
	})
	require.NoError(t, err)

	chats, err = svc.History(context.Background(), userId)
	require.NoError(t, err)
	assert.Len(t, chats, 3)
}

func TestUpdateVisibilityRequiresOwnership(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := newChatService(uow, nil)
	owner := uuid.New()

	chat := seedChat(uow, owner, "Chat", entity.ChatVisibilityPrivate)

	err := svc.UpdateVisibility(context.Background(), uuid.New(), &dto.UpdateVisibilityRequest{
		ChatId:     chat.Id,
		Visibility: "public",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))

	err = svc.UpdateVisibility(context.Background(), owner, &dto.UpdateVisibilityRequest{
		ChatId:     chat.Id,
		Visibility: "public",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ChatVisibilityPublic, chat.Visibility)
}

func TestDeleteChatRequiresOwnership(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := newChatService(uow, nil)
	owner := uuid.New()

	chat := seedChat(uow, owner, "Chat", entity.ChatVisibilityPrivate)

	err := svc.DeleteChat(context.Background(), uuid.New(), chat.Id)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
	assert.Len(t, uow.chats.chats, 1)

	err = svc.DeleteChat(context.Background(), owner, chat.Id)
	require.NoError(t, err)
	assert.Empty(t, uow.chats.chats)
}
