package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextSnippet_Precedence(t *testing.T) {
	tests := []struct {
		name string
		hit  Hit
		want string
	}{
		{
			name: "text field snippet wins",
			hit: Hit{Highlights: []Highlight{
				{Field: "title", Snippet: "ignored"},
				{Field: "text", Snippet: "the <mark>match</mark>"},
			}},
			want: "the <mark>match</mark>",
		},
		{
			name: "empty text snippet is skipped",
			hit: Hit{Highlights: []Highlight{
				{Field: "text", Snippet: ""},
				{Field: "text", Snippet: "second entry"},
			}},
			want: "second entry",
		},
		{
			name: "no highlights",
			hit:  Hit{Document: Document{Text: "raw"}},
			want: "",
		},
		{
			name: "non-text fields only",
			hit:  Hit{Highlights: []Highlight{{Field: "title", Snippet: "x"}}},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.hit.TextSnippet())
		})
	}
}

func TestEngineLabel(t *testing.T) {
	assert.Equal(t, "JSONL search", EngineJSONL.Label())
	assert.Equal(t, "Typesense", EngineTypesense.Label())
}
