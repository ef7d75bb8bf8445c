package utils

import (
	"strings"
	"testing"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		chunkSize  int
		overlap    int
		wantChunks int
	}{
		{
			name:       "short text returns single chunk",
			text:       "hello world",
			chunkSize:  100,
			overlap:    10,
			wantChunks: 1,
		},
		{
			name:       "exact size returns single chunk",
			text:       strings.Repeat("a", 100),
			chunkSize:  100,
			overlap:    10,
			wantChunks: 1,
		},
		{
			name:       "long text splits with overlap",
			text:       strings.Repeat("a", 250),
			chunkSize:  100,
			overlap:    20,
			wantChunks: 3,
		},
		{
			name:       "overlap larger than chunk falls back to full steps",
			text:       strings.Repeat("a", 300),
			chunkSize:  100,
			overlap:    100,
			wantChunks: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := SplitText(tt.text, tt.chunkSize, tt.overlap)
			if len(chunks) != tt.wantChunks {
				t.Errorf("SplitText() returned %d chunks, want %d", len(chunks), tt.wantChunks)
			}
			for i, c := range chunks {
				if len([]rune(c)) > tt.chunkSize {
					t.Errorf("chunk %d is %d runes, exceeds chunkSize %d", i, len([]rune(c)), tt.chunkSize)
				}
			}
		})
	}
}

func TestSplitTextOverlapPreservesBoundary(t *testing.T) {
	text := strings.Repeat("x", 80) + strings.Repeat("y", 80)
	chunks := SplitText(text, 100, 20)

	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}

	// The tail of chunk 0 must reappear at the head of chunk 1.
	first := []rune(chunks[0])
	tail := string(first[len(first)-20:])
	if !strings.HasPrefix(chunks[1], tail) {
		t.Errorf("chunk 1 does not start with the 20-rune overlap of chunk 0")
	}
}

func TestSplitTextDeterministic(t *testing.T) {
	text := strings.Repeat("The quick brown fox. ", 200)
	a := SplitText(text, 150, 30)
	b := SplitText(text, 150, 30)

	if len(a) != len(b) {
		t.Fatalf("runs disagree on chunk count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("chunk %d differs between identical runs", i)
		}
	}
}

func TestSplitTextMultiByte(t *testing.T) {
	// Rune-based splitting must never cut a multi-byte character in half.
	text := strings.Repeat("héllo wörld ", 50)
	chunks := SplitText(text, 64, 8)

	for _, c := range chunks {
		if strings.ContainsRune(c, '�') {
			t.Errorf("chunk contains replacement character, multi-byte rune was split")
		}
	}
}
