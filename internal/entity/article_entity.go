package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ArticleStatusDraft     = "draft"
	ArticleStatusCompleted = "completed"
)

// ArticleSettings are the generation parameters chosen by the user.
// All three dimensions are required for drafting; CustomPrompt is optional
// free text appended verbatim to the drafting instruction.
type ArticleSettings struct {
	Length       string `json:"length,omitempty"`
	Tone         string `json:"tone,omitempty"`
	Angle        string `json:"angle,omitempty"`
	CustomPrompt string `json:"custom_prompt,omitempty"`
}

type Article struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	Title            string
	Status           string
	Settings         ArticleSettings
	GeneratedContent *string
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}
