package service

import (
	"context"
	"strings"

	"ai-chat-be/internal/pkg/logger"
	internalWS "ai-chat-be/internal/websocket"
	"ai-chat-be/pkg/events"
	pktNats "ai-chat-be/pkg/nats"

	"github.com/google/uuid"
)

// SyncDelivery pushes real-time updates to connected devices. Implemented by
// the websocket hub.
type SyncDelivery interface {
	Send(userID uuid.UUID, msg internalWS.SyncMessage)
}

// SyncService relays domain events from the bus to the owner's other devices
// so open tabs drop deleted chats and pick up fresh document versions without
// polling.
type SyncService struct {
	subscriber *pktNats.Subscriber
	delivery   SyncDelivery
	logger     logger.ILogger
}

func NewSyncService(sub *pktNats.Subscriber, delivery SyncDelivery, log logger.ILogger) *SyncService {
	return &SyncService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *SyncService) Start() {
	err := s.subscriber.Subscribe("events.>", "sync-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("SyncService", "Failed to start sync subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("SyncService", "Sync service started, listening to events.>", nil)
}

func (s *SyncService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	// Only state-changing events matter to other devices; logins and
	// registrations stay on the bus for whoever else wants them.
	var msgType string
	switch typeCode {
	case "CHAT_DELETED":
		msgType = "chat_deleted"
	case "DOCUMENT_SAVED":
		msgType = "document_saved"
	default:
		return nil
	}

	payload := event.Payload()
	userIDRaw, ok := payload["user_id"].(string)
	if !ok {
		s.logger.Warn("SyncService", "Event missing user_id", map[string]interface{}{"type": typeCode})
		return nil
	}
	userID, err := uuid.Parse(userIDRaw)
	if err != nil {
		s.logger.Warn("SyncService", "Event carries malformed user_id", map[string]interface{}{"type": typeCode, "user_id": userIDRaw})
		return nil
	}

	if s.delivery != nil {
		s.delivery.Send(userID, internalWS.SyncMessage{
			Type: msgType,
			Data: payload,
		})
	}
	return nil
}
