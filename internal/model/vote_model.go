package model

import (
	"github.com/google/uuid"
)

// Vote is keyed by (chat, message); repeated votes overwrite IsUpvoted.
type Vote struct {
	ChatId    uuid.UUID `gorm:"type:uuid;primaryKey"`
	MessageId uuid.UUID `gorm:"type:uuid;primaryKey"`
	IsUpvoted bool      `gorm:"not null"`

	Chat    Chat    `gorm:"foreignKey:ChatId;constraint:OnDelete:CASCADE"`
	Message Message `gorm:"foreignKey:MessageId;constraint:OnDelete:CASCADE"`
}

func (Vote) TableName() string {
	return "votes"
}
