package mapper

import (
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	return &entity.Document{
		Id:        d.Id,
		CreatedAt: d.CreatedAt,
		Title:     d.Title,
		Content:   d.Content,
		Kind:      entity.DocumentKind(d.Kind),
		UserId:    d.UserId,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}
	return &model.Document{
		Id:        d.Id,
		CreatedAt: d.CreatedAt,
		Title:     d.Title,
		Content:   d.Content,
		Kind:      string(d.Kind),
		UserId:    d.UserId,
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}

func (m *DocumentMapper) SuggestionToEntity(s *model.Suggestion) *entity.Suggestion {
	if s == nil {
		return nil
	}
	return &entity.Suggestion{
		Id:                s.Id,
		DocumentId:        s.DocumentId,
		DocumentCreatedAt: s.DocumentCreatedAt,
		OriginalText:      s.OriginalText,
		SuggestedText:     s.SuggestedText,
		Description:       s.Description,
		IsResolved:        s.IsResolved,
		UserId:            s.UserId,
		CreatedAt:         s.CreatedAt,
	}
}

func (m *DocumentMapper) SuggestionToModel(s *entity.Suggestion) *model.Suggestion {
	if s == nil {
		return nil
	}
	return &model.Suggestion{
		Id:                s.Id,
		DocumentId:        s.DocumentId,
		DocumentCreatedAt: s.DocumentCreatedAt,
		OriginalText:      s.OriginalText,
		SuggestedText:     s.SuggestedText,
		Description:       s.Description,
		IsResolved:        s.IsResolved,
		UserId:            s.UserId,
		CreatedAt:         s.CreatedAt,
	}
}

func (m *DocumentMapper) SuggestionsToEntities(suggestions []*model.Suggestion) []*entity.Suggestion {
	entities := make([]*entity.Suggestion, len(suggestions))
	for i, s := range suggestions {
		entities[i] = m.SuggestionToEntity(s)
	}
	return entities
}

func (m *DocumentMapper) SuggestionsToModels(suggestions []*entity.Suggestion) []*model.Suggestion {
	models := make([]*model.Suggestion, len(suggestions))
	for i, s := range suggestions {
		models[i] = m.SuggestionToModel(s)
	}
	return models
}
