package implementation

import (
	"context"
	"time"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/mapper"
	"ai-chat-be/internal/model"
	"ai-chat-be/internal/repository/contract"
	"ai-chat-be/internal/repository/dberr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SuggestionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
}

func NewSuggestionRepository(db *gorm.DB) contract.SuggestionRepository {
	return &SuggestionRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
	}
}

func (r *SuggestionRepositoryImpl) CreateMany(ctx context.Context, suggestions []*entity.Suggestion) (int64, error) {
	if len(suggestions) == 0 {
		return 0, nil
	}
	models := r.mapper.SuggestionsToModels(suggestions)
	result := r.db.WithContext(ctx).Create(&models)
	if result.Error != nil {
		return 0, dberr.Translate("saveSuggestions", result.Error)
	}
	for i, m := range models {
		*suggestions[i] = *r.mapper.SuggestionToEntity(m)
	}
	return result.RowsAffected, nil
}

func (r *SuggestionRepositoryImpl) FindByDocument(ctx context.Context, documentId uuid.UUID) ([]*entity.Suggestion, error) {
	var models []*model.Suggestion
	err := r.db.WithContext(ctx).
		Where("document_id = ?", documentId).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, dberr.Translate("getSuggestionsByDocumentId", err)
	}
	return r.mapper.SuggestionsToEntities(models), nil
}

func (r *SuggestionRepositoryImpl) DeleteByDocumentAfter(ctx context.Context, documentId uuid.UUID, timestamp time.Time) error {
	err := r.db.WithContext(ctx).
		Where("document_id = ? AND document_created_at > ?", documentId, timestamp).
		Delete(&model.Suggestion{}).Error
	if err != nil {
		return dberr.Translate("deleteDocumentsByIdAfterTimestamp", err)
	}
	return nil
}
