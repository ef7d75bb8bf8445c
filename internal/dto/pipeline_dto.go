package dto

import "github.com/google/uuid"

// PublishEmbedSourceMessage is the payload enqueued after a source entry is
// registered in the index and before it is embedded.
type PublishEmbedSourceMessage struct {
	EntryId   uuid.UUID `json:"entry_id"`
	UserId    uuid.UUID `json:"user_id"`
	ArticleId uuid.UUID `json:"article_id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
}
