package mapper

import (
	"encoding/json"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ToEntity(c *model.Chat) *entity.Chat {
	if c == nil {
		return nil
	}
	return &entity.Chat{
		Id:         c.Id,
		UserId:     c.UserId,
		Title:      c.Title,
		Visibility: entity.ChatVisibility(c.Visibility),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func (m *ChatMapper) ToModel(c *entity.Chat) *model.Chat {
	if c == nil {
		return nil
	}
	return &model.Chat{
		Id:         c.Id,
		UserId:     c.UserId,
		Title:      c.Title,
		Visibility: string(c.Visibility),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func (m *ChatMapper) ToEntities(chats []*model.Chat) []*entity.Chat {
	entities := make([]*entity.Chat, len(chats))
	for i, c := range chats {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *ChatMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	return &entity.Message{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		Role:      msg.Role,
		Content:   json.RawMessage(msg.Content),
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	return &model.Message{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		Role:      msg.Role,
		Content:   datatypes.JSON(msg.Content),
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) MessagesToEntities(msgs []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.MessageToEntity(msg)
	}
	return entities
}

func (m *ChatMapper) MessagesToModels(msgs []*entity.Message) []*model.Message {
	models := make([]*model.Message, len(msgs))
	for i, msg := range msgs {
		models[i] = m.MessageToModel(msg)
	}
	return models
}

func (m *ChatMapper) VoteToEntity(v *model.Vote) *entity.Vote {
	if v == nil {
		return nil
	}
	return &entity.Vote{
		ChatId:    v.ChatId,
		MessageId: v.MessageId,
		IsUpvoted: v.IsUpvoted,
	}
}

func (m *ChatMapper) VotesToEntities(votes []*model.Vote) []*entity.Vote {
	entities := make([]*entity.Vote, len(votes))
	for i, v := range votes {
		entities[i] = m.VoteToEntity(v)
	}
	return entities
}
