package entity

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;index"`
	Type      string
	Title     string
	Body      string
	Read      bool `gorm:"default:false"`
	CreatedAt time.Time
}
