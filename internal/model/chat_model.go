package model

import (
	"time"

	"github.com/google/uuid"
)

type Chat struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;index"`
	Title      string    `gorm:"type:text;not null"`
	Visibility string    `gorm:"type:varchar(10);not null;default:'private'"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`

	User User `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

func (Chat) TableName() string {
	return "chats"
}
