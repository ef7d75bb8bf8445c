package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"articlegen-be/internal/entity"
)

type Article struct {
	Id               uuid.UUID                                   `gorm:"type:uuid;primaryKey"`
	UserId           uuid.UUID                                   `gorm:"type:uuid;not null;index"`
	Title            string                                      `gorm:"not null;default:'Untitled article'"`
	Status           string                                      `gorm:"not null;default:draft"`
	Settings         datatypes.JSONType[entity.ArticleSettings]  `gorm:"type:jsonb"`
	GeneratedContent *string                                     `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

func (Article) TableName() string {
	return "articles"
}
