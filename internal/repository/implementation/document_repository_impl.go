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

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
}

func NewDocumentRepository(db *gorm.DB) contract.DocumentRepository {
	return &DocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
	}
}

func (r *DocumentRepositoryImpl) Create(ctx context.Context, doc *entity.Document) error {
	modelDoc := r.mapper.ToModel(doc)
	if err := r.db.WithContext(ctx).Create(modelDoc).Error; err != nil {
		return dberr.Translate("saveDocument", err)
	}
	*doc = *r.mapper.ToEntity(modelDoc)
	return nil
}

func (r *DocumentRepositoryImpl) FindVersions(ctx context.Context, id uuid.UUID) ([]*entity.Document, error) {
	var models []*model.Document
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, dberr.Translate("getDocumentsById", err)
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentRepositoryImpl) FindLatest(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	var modelDoc model.Document
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Order("created_at DESC").
		First(&modelDoc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, dberr.Translate("getDocumentById", err)
	}
	return r.mapper.ToEntity(&modelDoc), nil
}

func (r *DocumentRepositoryImpl) DeleteVersionsAfter(ctx context.Context, id uuid.UUID, timestamp time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND created_at > ?", id, timestamp).
		Delete(&model.Document{})
	if result.Error != nil {
		return 0, dberr.Translate("deleteDocumentsByIdAfterTimestamp", result.Error)
	}
	return result.RowsAffected, nil
}
