package implementation

import (
	"context"
	"errors"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/mapper"
	"ai-chat-be/internal/model"
	"ai-chat-be/internal/repository/contract"
	"ai-chat-be/internal/repository/dberr"
	"ai-chat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatRepository(db *gorm.DB) contract.ChatRepository {
	return &ChatRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatRepositoryImpl) Create(ctx context.Context, chat *entity.Chat) error {
	modelChat := r.mapper.ToModel(chat)
	if err := r.db.WithContext(ctx).Create(modelChat).Error; err != nil {
		return dberr.Translate("saveChat", err)
	}
	*chat = *r.mapper.ToEntity(modelChat)
	return nil
}

func (r *ChatRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Chat{}).Error; err != nil {
		return dberr.Translate("deleteChatById", err)
	}
	return nil
}

func (r *ChatRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error) {
	var modelChat model.Chat
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelChat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, dberr.Translate("getChatById", err)
	}

	return r.mapper.ToEntity(&modelChat), nil
}

func (r *ChatRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error) {
	var modelChats []*model.Chat
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelChats).Error; err != nil {
		return nil, dberr.Translate("getChats", err)
	}

	return r.mapper.ToEntities(modelChats), nil
}

func (r *ChatRepositoryImpl) FindByUser(ctx context.Context, userId uuid.UUID) ([]*entity.Chat, error) {
	return r.FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}

func (r *ChatRepositoryImpl) UpdateVisibility(ctx context.Context, id uuid.UUID, visibility entity.ChatVisibility) error {
	result := r.db.WithContext(ctx).Model(&model.Chat{}).
		Where("id = ?", id).
		Update("visibility", string(visibility))
	if result.Error != nil {
		return dberr.Translate("updateChatVisibilityById", result.Error)
	}
	if result.RowsAffected == 0 {
		return dberr.Translate("updateChatVisibilityById", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *ChatRepositoryImpl) UpdateTitle(ctx context.Context, id uuid.UUID, title string) error {
	result := r.db.WithContext(ctx).Model(&model.Chat{}).
		Where("id = ?", id).
		Update("title", title)
	if result.Error != nil {
		return dberr.Translate("updateChatTitleById", result.Error)
	}
	if result.RowsAffected == 0 {
		return dberr.Translate("updateChatTitleById", gorm.ErrRecordNotFound)
	}
	return nil
}
