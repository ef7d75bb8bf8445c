package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	AuthProviderLocal  = "local"
	AuthProviderGoogle = "google"
)

type User struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	FullName     string
	PasswordHash *string // nil for OAuth-only accounts
	Provider     string  `gorm:"default:local"`
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
