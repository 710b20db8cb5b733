package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/memory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titleMessage(t *testing.T, chatId uuid.UUID) *message.Message {
	t.Helper()
	payload, err := json.Marshal(dto.GenerateTitleMessage{ChatId: chatId})
	require.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), payload)
}

func newTitleWorker(uow *fakeUnitOfWork, provider *fakeLLM) *titleService {
	return NewTitleService(nil, "GENERATE_CHAT_TITLE", &fakeFactory{uow: uow}, provider, memory.NewHistoryCache()).(*titleService)
}

func TestTitleWorkerRenamesPlaceholderChat(t *testing.T) {
	uow := newFakeUnitOfWork()
	chat := seedChat(uow, uuid.New(), "New Chat", entity.ChatVisibilityPrivate)
	seedMessage(uow, chat.Id, "user", time.Now())

	worker := newTitleWorker(uow, &fakeLLM{generated: "Saying hello"})

	msg := titleMessage(t, chat.Id)
	worker.processMessage(context.Background(), msg)

	assert.Equal(t, "Saying hello", chat.Title)
	assertAcked(t, msg)
}

func TestTitleWorkerTruncatesLongTitles(t *testing.T) {
	uow := newFakeUnitOfWork()
	chat := seedChat(uow, uuid.New(), "New Chat", entity.ChatVisibilityPrivate)
	seedMessage(uow, chat.Id, "user", time.Now())

	worker := newTitleWorker(uow, &fakeLLM{generated: strings.Repeat("a", 200)})

	msg := titleMessage(t, chat.Id)
	worker.processMessage(context.Background(), msg)

	assert.Len(t, chat.Title, 80)
	assertAcked(t, msg)
}

func TestTitleWorkerTruncatesOnRuneBoundary(t *testing.T) {
	uow := newFakeUnitOfWork()
	chat := seedChat(uow, uuid.New(), "New Chat", entity.ChatVisibilityPrivate)
	seedMessage(uow, chat.Id, "user", time.Now())

	worker := newTitleWorker(uow, &fakeLLM{generated: strings.Repeat("é", 100)})

	msg := titleMessage(t, chat.Id)
	worker.processMessage(context.Background(), msg)

	// Truncation must never split a multibyte character.
	assert.True(t, utf8.ValidString(chat.Title))
	assert.Equal(t, 80, utf8.RuneCountInString(chat.Title))
	assertAcked(t, msg)
}

func TestTitleWorkerSkipsRenamedChat(t *testing.T) {
	uow := newFakeUnitOfWork()
	chat := seedChat(uow, uuid.New(), "Already named", entity.ChatVisibilityPrivate)
	seedMessage(uow, chat.Id, "user", time.Now())

	worker := newTitleWorker(uow, &fakeLLM{generated: "Something else"})

	msg := titleMessage(t, chat.Id)
	worker.processMessage(context.Background(), msg)

	assert.Equal(t, "Already named", chat.Title)
	assertAcked(t, msg)
}

func TestTitleWorkerAcksMissingChat(t *testing.T) {
	uow := newFakeUnitOfWork()
	worker := newTitleWorker(uow, &fakeLLM{})

	// The chat may have been deleted between enqueue and processing; retrying
	// would never succeed.
	msg := titleMessage(t, uuid.New())
	worker.processMessage(context.Background(), msg)

	assertAcked(t, msg)
}

func TestTitleWorkerNacksModelFailure(t *testing.T) {
	uow := newFakeUnitOfWork()
	chat := seedChat(uow, uuid.New(), "New Chat", entity.ChatVisibilityPrivate)
	seedMessage(uow, chat.Id, "user", time.Now())

	worker := newTitleWorker(uow, &fakeLLM{generateErr: assert.AnError})

	msg := titleMessage(t, chat.Id)
	worker.processMessage(context.Background(), msg)

	assert.Equal(t, "New Chat", chat.Title)
	assertNacked(t, msg)
}

func assertAcked(t *testing.T, msg *message.Message) {
	t.Helper()
	select {
	case <-msg.Acked():
	default:
		t.Fatal("expected message to be acked")
	}
}

func assertNacked(t *testing.T, msg *message.Message) {
	t.Helper()
	select {
	case <-msg.Nacked():
	default:
		t.Fatal("expected message to be nacked")
	}
}
