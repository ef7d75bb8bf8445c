package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	SourceStatusPending = "pending"
	SourceStatusReady   = "ready"
	SourceStatusError   = "error"
)

const (
	SourceKindPdf             = "pdf"
	SourceKindLink            = "link"
	SourceKindVideoTranscript = "video-transcript"
	SourceKindText            = "text"
)

// SourceMetadata is opaque to the index itself; it carries what the
// ingestion layer needs to render and clean up an entry later.
type SourceMetadata struct {
	OwnerId    string `json:"owner_id,omitempty"`
	StorageRef string `json:"storage_ref,omitempty"`
	Filename   string `json:"filename,omitempty"`
	Kind       string `json:"kind,omitempty"`
}

// SourceEntry is one ingested document's indexed representation.
// Never mutated after reaching "ready" except by a superseding re-ingestion
// with a different content hash.
type SourceEntry struct {
	Id          uuid.UUID
	NamespaceId uuid.UUID
	Key         string
	Title       string
	ContentHash string
	Status      string
	Kind        string
	Metadata    SourceMetadata
	Position    int64 // monotonic insertion order within the table
	CreatedAt   time.Time
}
