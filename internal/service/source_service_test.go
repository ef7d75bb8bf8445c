package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"articlegen-be/internal/dto"
	"articlegen-be/pkg/apperror"
)

func TestGuessMimeType(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		want     string
	}{
		{
			name:     "known extension wins",
			filename: "report.pdf",
			data:     []byte("%PDF-1.7 ..."),
			want:     "application/pdf",
		},
		{
			name:     "magic bytes when extension is unknown",
			filename: "mystery.bin2xyz",
			data:     []byte("%PDF-1.7 some pdf body here"),
			want:     "application/pdf",
		},
		{
			name:     "generic fallback",
			filename: "file",
			data:     []byte{0x01, 0x02, 0x03},
			want:     "application/octet-stream",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := guessMimeType(tt.filename, tt.data)
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestIngestRequiresIdentity(t *testing.T) {
	s := &sourceService{}

	_, err := s.Ingest(context.Background(), uuid.Nil, &dto.AddSourceRequest{
		ArticleId: uuid.New(),
		Filename:  "a.txt",
		Bytes:     []byte("x"),
	})

	assert.True(t, apperror.Is(err, apperror.CodeUnauthenticated))
}
