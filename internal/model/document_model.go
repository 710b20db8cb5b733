package model

import (
	"time"

	"github.com/google/uuid"
)

// Document rows sharing an Id are successive versions of one artifact;
// (Id, CreatedAt) is the identity of a single version.
type Document struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"primaryKey;autoCreateTime"`
	Title     string    `gorm:"type:text;not null"`
	Content   *string   `gorm:"type:text"`
	Kind      string    `gorm:"type:varchar(10);not null;default:'text'"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`

	User User `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

func (Document) TableName() string {
	return "documents"
}
