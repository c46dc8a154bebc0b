package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchBackend(t *testing.T, hits int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var list []interface{}
		for i := 0; i < hits; i++ {
			list = append(list, map[string]interface{}{
				"document": map[string]interface{}{
					"file": "manualA.pdf",
					"page": i + 1,
					"text": "valve seat",
					"bbox": []float64{1, 2, 3, 4},
				},
				"highlights": []map[string]string{
					{"field": "text", "snippet": "the <mark>valve</mark> seat"},
				},
			})
		}
		switch r.URL.Path {
		case "/search_jsonl":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"hits": list, "found": hits})
		case "/preset_jsonl":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"results": list})
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestSearchCmd_TextOutput(t *testing.T) {
	srv := searchBackend(t, 3)
	defer srv.Close()

	out, err := execute(t, "search", "valve", "--base-url", srv.URL)
	require.NoError(t, err)

	assert.Contains(t, out, "[JSONL search] page 1")
	assert.Contains(t, out, "1. manualA.pdf p.1")
	assert.Contains(t, out, "the valve seat")
	assert.NotContains(t, out, "<mark>")
	assert.NotContains(t, out, "more results", "partial page is the end of the list")
}

func TestSearchCmd_FullPageHintsNextPage(t *testing.T) {
	srv := searchBackend(t, 5)
	defer srv.Close()

	out, err := execute(t, "search", "valve", "--base-url", srv.URL, "--per-page", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "more results: --page 2")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	srv := searchBackend(t, 2)
	defer srv.Close()

	out, err := execute(t, "search", "valve", "--base-url", srv.URL, "--format", "json")
	require.NoError(t, err)

	var hits []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &hits))
	assert.Len(t, hits, 2)
}

func TestSearchCmd_PresetMode(t *testing.T) {
	srv := searchBackend(t, 2)
	defer srv.Close()

	out, err := execute(t, "search", "--preset", "manualA.jsonl", "--base-url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "[Preset: manualA] page 1")
}

func TestSearchCmd_NoResults(t *testing.T) {
	srv := searchBackend(t, 0)
	defer srv.Close()

	out, err := execute(t, "search", "zzz", "--base-url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "No results.")
}

func TestSearchCmd_BackendErrorVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "jsonl file unreadable"})
	}))
	defer srv.Close()

	_, err := execute(t, "search", "valve", "--base-url", srv.URL)
	require.Error(t, err)
	assert.Equal(t, "jsonl file unreadable", err.Error())
}

func TestSearchCmd_RequiresQueryOrPreset(t *testing.T) {
	_, err := execute(t, "search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query or --preset")
}

func TestOpenCmd_PrintsViewerURL(t *testing.T) {
	out, err := execute(t, "open", "manualA.pdf", "14",
		"--bbox", "[72.5,140,380,162]", "--text", "torque", "--print")
	require.NoError(t, err)

	assert.Contains(t, out, "/highlight?")
	assert.Contains(t, out, "manualA.pdf")
	assert.Contains(t, out, "page=14")
}

func TestOpenCmd_RejectsBadArgs(t *testing.T) {
	_, err := execute(t, "open", "manualA.pdf", "zero")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page must be a positive number")

	_, err = execute(t, "open", "manualA.pdf", "3", "--bbox", "not-json", "--print")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--bbox must be a JSON array")
}
