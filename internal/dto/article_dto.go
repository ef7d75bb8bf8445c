package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateArticleResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateArticleTitleRequest struct {
	Id    uuid.UUID
	Title string `json:"title" validate:"required"`
}

type ArticleSettingsPayload struct {
	Length       string `json:"length" validate:"required"`
	Tone         string `json:"tone" validate:"required"`
	Angle        string `json:"angle" validate:"required"`
	CustomPrompt string `json:"custom_prompt"`
}

type ShowArticleResponse struct {
	Id               uuid.UUID               `json:"id"`
	Title            string                  `json:"title"`
	Status           string                  `json:"status"`
	Settings         *ArticleSettingsPayload `json:"settings,omitempty"`
	GeneratedContent *string                 `json:"generated_content,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        *time.Time              `json:"updated_at"`
}

type ListArticlesResponse struct {
	Articles []*ShowArticleResponse `json:"articles"`
	Total    int64                  `json:"total"`
}
