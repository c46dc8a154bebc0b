// Package api is the HTTP client for the document snippet search backend.
//
// The backend exposes three search endpoints with two envelope shapes
// ({hits: [...]} vs {results: [...]}) and two hit shapes (a record
// wrapped in a "document" field vs the flat record itself). All of them
// are normalized at the fetch boundary into the single Hit contract
// below; nothing past this package sees the inconsistency.
package api

import (
	"encoding/json"
)

// Document identifies a matched region of a source PDF.
type Document struct {
	// File is the backend's file identifier (e.g. "manualA.pdf").
	File string `json:"file"`

	// Page is the 1-based page number within the file.
	Page int `json:"page"`

	// Text is the full matched paragraph text.
	Text string `json:"text"`

	// BBox locates the match on the page. Opaque to this client: it is
	// carried verbatim and re-serialized into the highlight URL.
	BBox json.RawMessage `json:"bbox,omitempty"`
}

// Highlight is a backend-produced snippet for one field of a hit.
type Highlight struct {
	Field string `json:"field"`

	// Snippet is pre-rendered excerpt text, possibly containing
	// <mark> markup from the backend.
	Snippet string `json:"snippet"`
}

// Hit is one backend-returned match record.
type Hit struct {
	Document   Document    `json:"document"`
	Highlights []Highlight `json:"highlights,omitempty"`
}

// TextSnippet returns the snippet for the text field, or empty when the
// hit carries none. Snippet precedence for rendering: this value when
// non-empty, otherwise Document.Text.
func (h Hit) TextSnippet() string {
	for _, hl := range h.Highlights {
		if hl.Field == "text" && hl.Snippet != "" {
			return hl.Snippet
		}
	}
	return ""
}

// Engine selects the free-text search endpoint.
type Engine string

const (
	// EngineJSONL searches via GET /search_jsonl.
	EngineJSONL Engine = "jsonl"
	// EngineTypesense searches via POST /submit.
	EngineTypesense Engine = "typesense"
)

// Label returns the method label shown alongside results.
func (e Engine) Label() string {
	switch e {
	case EngineTypesense:
		return "Typesense"
	default:
		return "JSONL search"
	}
}

// rawHit decodes both backend hit shapes: nested ({document, highlights})
// and flat (the document fields at the top level).
type rawHit struct {
	Document   *Document       `json:"document"`
	Highlights []Highlight     `json:"highlights"`
	File       string          `json:"file"`
	Page       int             `json:"page"`
	Text       string          `json:"text"`
	BBox       json.RawMessage `json:"bbox"`
}

// normalize converts a raw backend record into the canonical Hit.
// A flat record is treated as its own document.
func (r rawHit) normalize() Hit {
	if r.Document != nil {
		return Hit{Document: *r.Document, Highlights: r.Highlights}
	}
	return Hit{
		Document: Document{
			File: r.File,
			Page: r.Page,
			Text: r.Text,
			BBox: r.BBox,
		},
		Highlights: r.Highlights,
	}
}

// envelope decodes all response envelopes the backend uses. /search_jsonl
// answers {hits, found} or {error}; /submit and /preset_jsonl answer
// {results}. The divergence is a known backend API inconsistency; both
// field names feed the same normalized slice.
type envelope struct {
	Hits    []rawHit `json:"hits"`
	Results []rawHit `json:"results"`
	Found   int      `json:"found"`
	Error   string   `json:"error"`
}

// hitList returns whichever hit list the envelope carried, normalized.
func (e envelope) hitList() []Hit {
	raw := e.Hits
	if raw == nil {
		raw = e.Results
	}
	hits := make([]Hit, 0, len(raw))
	for _, r := range raw {
		hits = append(hits, r.normalize())
	}
	return hits
}

// indexResponse is the /jsonl_index envelope.
type indexResponse struct {
	Files []string `json:"files"`
	Error string   `json:"error"`
}
