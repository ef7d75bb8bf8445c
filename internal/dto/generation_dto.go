package dto

import "github.com/google/uuid"

type ExtractKeyPointsRequest struct {
	ArticleId uuid.UUID
}

type ExtractKeyPointsResponse struct {
	ThreadId  uuid.UUID `json:"thread_id"`
	KeyPoints string    `json:"key_points"`
	Status    string    `json:"status"`
}

type GenerateArticleRequest struct {
	ArticleId uuid.UUID
	KeyPoints string                 `json:"key_points" validate:"required"`
	Settings  ArticleSettingsPayload `json:"settings" validate:"required"`
}

type GenerateArticleResponse struct {
	ThreadId uuid.UUID `json:"thread_id"`
	Content  string    `json:"content"`
	Status   string    `json:"status"`
}

type RunStatusResponse struct {
	ThreadId uuid.UUID `json:"thread_id"`
	State    string    `json:"state"`
	Step     int       `json:"step"`
	Error    string    `json:"error,omitempty"`
}
