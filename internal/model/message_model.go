package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Message struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Role      string         `gorm:"type:varchar(50);not null"`
	Content   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`

	// Deleting a chat must take its messages with it.
	Chat Chat `gorm:"foreignKey:ChatId;constraint:OnDelete:CASCADE"`
}

func (Message) TableName() string {
	return "messages"
}
