package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/repository/memory"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/pkg/llm"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// ITitleService consumes title-generation requests queued when a chat is
// created with a placeholder name, and replaces the name with a model-written
// summary of the opening message.
type ITitleService interface {
	Consume(ctx context.Context) error
}

type titleService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	llmProvider  llm.LLMProvider
	historyCache *memory.HistoryCache
}

func NewTitleService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	historyCache *memory.HistoryCache,
) ITitleService {
	return &titleService{
		pubSub:       pubSub,
		topicName:    topicName,
		uowFactory:   uowFactory,
		llmProvider:  llmProvider,
		historyCache: historyCache,
	}
}

const titlePrompt = `Generate a short title based on the first message a user begins a conversation with.
Ensure it is not more than 80 characters long.
The title should be a summary of the user's message.
Do not use quotes or colons.

Message: %s`

func (ts *titleService) Consume(ctx context.Context) error {
	messages, err := ts.pubSub.Subscribe(ctx, ts.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ts.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (ts *titleService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.GenerateTitleMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal title message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := ts.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: payload.ChatId})
	if err != nil {
		log.Printf("[ERROR] Failed to get chat %s: %v", payload.ChatId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if chat == nil {
		log.Printf("[WARN] Chat not found for titling: %s", payload.ChatId)
		msg.Ack() // Chat deleted? Ack.
		return
	}
	if chat.Title != "New Chat" {
		// Renamed in the meantime, nothing to do.
		msg.Ack()
		return
	}

	chatMessages, err := uow.MessageRepository().FindByChat(ctx, payload.ChatId)
	if err != nil {
		log.Printf("[ERROR] Failed to get messages for chat %s: %v", payload.ChatId, err)
		msg.Nack()
		return
	}

	firstUserMessage := ""
	for _, m := range chatMessages {
		if m.Role == "user" {
			firstUserMessage = string(m.Content)
			break
		}
	}
	if firstUserMessage == "" {
		// Enqueued on message save, so this should not happen; the next save
		// re-enqueues anyway.
		log.Printf("[WARN] No user message yet for chat %s", payload.ChatId)
		msg.Ack()
		return
	}

	title, err := ts.llmProvider.Generate(ctx, fmt.Sprintf(titlePrompt, firstUserMessage), llm.WithTemperature(0.3))
	if err != nil {
		log.Printf("[ERROR] Title generation failed for chat %s: %v", payload.ChatId, err)
		msg.Nack()
		return
	}
	// Cut on rune boundaries; byte slicing could split a multibyte character.
	if runes := []rune(title); len(runes) > 80 {
		title = string(runes[:80])
	}

	if err := uow.ChatRepository().UpdateTitle(ctx, payload.ChatId, title); err != nil {
		log.Printf("[ERROR] Failed to update title for chat %s: %v", payload.ChatId, err)
		msg.Nack()
		return
	}

	ts.historyCache.Invalidate(chat.UserId)
	msg.Ack()
}
