package implementation

import (
	"context"
	"errors"
	"time"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/mapper"
	"ai-chat-be/internal/model"
	"ai-chat-be/internal/repository/contract"
	"ai-chat-be/internal/repository/dberr"
	"ai-chat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewMessageRepository(db *gorm.DB) contract.MessageRepository {
	return &MessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *MessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MessageRepositoryImpl) CreateMany(ctx context.Context, messages []*entity.Message) (int64, error) {
	if len(messages) == 0 {
		return 0, nil
	}
	models := r.mapper.MessagesToModels(messages)
	result := r.db.WithContext(ctx).Create(&models)
	if result.Error != nil {
		return 0, dberr.Translate("saveMessages", result.Error)
	}
	for i, m := range models {
		*messages[i] = *r.mapper.MessageToEntity(m)
	}
	return result.RowsAffected, nil
}

func (r *MessageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error) {
	var modelMessage model.Message
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelMessage).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, dberr.Translate("getMessageById", err)
	}

	return r.mapper.MessageToEntity(&modelMessage), nil
}

// FindByChat keeps created_at ascending order; conversation replay breaks
// without it.
func (r *MessageRepositoryImpl) FindByChat(ctx context.Context, chatId uuid.UUID) ([]*entity.Message, error) {
	var models []*model.Message
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatId).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, dberr.Translate("getMessagesByChatId", err)
	}
	return r.mapper.MessagesToEntities(models), nil
}

func (r *MessageRepositoryImpl) DeleteByChatAfter(ctx context.Context, chatId uuid.UUID, timestamp time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("chat_id = ? AND created_at > ?", chatId, timestamp).
		Delete(&model.Message{})
	if result.Error != nil {
		return 0, dberr.Translate("deleteMessagesByChatIdAfterTimestamp", result.Error)
	}
	return result.RowsAffected, nil
}
