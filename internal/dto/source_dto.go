package dto

import "github.com/google/uuid"

type AddSourceRequest struct {
	ArticleId uuid.UUID
	Filename  string
	MimeType  string
	Kind      string
	Bytes     []byte
}

type AddSourceResponse struct {
	EntryId uuid.UUID `json:"entry_id"`
	Created bool      `json:"created"`
	Url     string    `json:"url"`
}

// PublicFile is the client-facing rendering of an indexed source entry.
type PublicFile struct {
	Id     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Type   string    `json:"type"` // file extension
	Status string    `json:"status"`
	Url    *string   `json:"url"`
	Kind   string    `json:"kind,omitempty"`
}

type ListSourcesResponse struct {
	Page       []*PublicFile `json:"page"`
	IsDone     bool          `json:"is_done"`
	NextCursor int64         `json:"next_cursor"`
}

type SearchSourcesRequest struct {
	ArticleId uuid.UUID
	Query     string `json:"query" validate:"required"`
}

type SearchSourcesResponse struct {
	Answer string `json:"answer"`
}
