package ui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagemark/pagemark/internal/api"
	"github.com/pagemark/pagemark/internal/config"
	"github.com/pagemark/pagemark/internal/errors"
	"github.com/pagemark/pagemark/internal/viewer"
)

func newTestModel(t *testing.T) *BrowseModel {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	cfg := config.NewConfig()
	cfg.Viewer.AutoOpen = false

	client := api.NewClient("http://localhost:5000")
	return NewBrowseModel(cfg, client, viewer.NewOpener(""))
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testHits(n int) []api.Hit {
	hits := make([]api.Hit, n)
	for i := range hits {
		hits[i] = api.Hit{
			Document: api.Document{File: fmt.Sprintf("manual%d.pdf", i), Page: i + 1, Text: "paragraph"},
			Highlights: []api.Highlight{
				{Field: "text", Snippet: "the <mark>match</mark>"},
			},
		}
	}
	return hits
}

func TestBrowse_SubmitStartsFetch(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("turbine")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd, "submit should issue a fetch")
	assert.True(t, m.state.Loading)
	assert.Contains(t, m.View(), "searching")
}

func TestBrowse_EmptySubmitShowsSplashWithoutFetch(t *testing.T) {
	m := newTestModel(t)

	m.input.SetValue("   ")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd, "blank query must not reach the backend")
	assert.False(t, m.state.Loading)
	assert.Contains(t, m.View(), "▒", "idle pane should be showing")
}

func TestBrowse_FullPageRendersResultsAndMethodLabel(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("turbine")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m.Update(pageMsg{page: 1, hits: testHits(10)})

	view := m.View()
	assert.Contains(t, view, "[JSONL search]")
	assert.Contains(t, view, "manual0.pdf p.1")
	assert.Contains(t, view, "load more")
	assert.False(t, m.state.Loading)
}

func TestBrowse_PartialPageHidesLoadMore(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("turbine")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m.Update(pageMsg{page: 1, hits: testHits(3)})

	assert.NotContains(t, m.View(), "load more")

	_, cmd := m.Update(keyRunes("n"))
	assert.Nil(t, cmd)
}

func TestBrowse_EmptyFirstPageShowsPlaceholder(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("zzz")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m.Update(pageMsg{page: 1, hits: nil})

	view := m.View()
	assert.Contains(t, view, "No results.")
	assert.NotContains(t, view, "▒", "placeholder replaces the idle pane")
}

func TestBrowse_FetchFailureShowsBackendMessage(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("turbine")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(pageMsg{page: 1, hits: testHits(10)})

	m.Update(keyRunes("n"))
	m.Update(pageErrMsg{err: errors.BackendError("jsonl file unreadable")})

	view := m.View()
	assert.Contains(t, view, "jsonl file unreadable")
	assert.NotContains(t, view, "manual0.pdf", "failure replaces the list")

	_, cmd := m.Update(keyRunes("n"))
	assert.Nil(t, cmd, "load more stays off after a failure")
}

func TestBrowse_LoadMoreGuardWhileLoading(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("turbine")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(pageMsg{page: 1, hits: testHits(10)})

	_, cmd := m.Update(keyRunes("n"))
	require.NotNil(t, cmd)
	require.True(t, m.state.Loading)

	_, cmd = m.Update(keyRunes("n"))
	assert.Nil(t, cmd, "second trigger is dropped while the fetch is in flight")
}

func TestBrowse_CursorMovesAndOpensDeepLink(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("turbine")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(pageMsg{page: 1, hits: testHits(3)})

	m.Update(keyRunes("j"))
	assert.Equal(t, 1, m.cursor)

	// Auto-open is off: selecting shows the link instead of launching.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "/highlight?")
	assert.Contains(t, m.View(), "manual1.pdf")
}

func TestBrowse_ScrollNearEndTriggersLoadMore(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("turbine")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(pageMsg{page: 1, hits: testHits(10)})

	var cmd tea.Cmd
	for i := 0; i < 9; i++ {
		_, cmd = m.Update(keyRunes("j"))
		if cmd != nil {
			break
		}
	}
	require.NotNil(t, cmd, "moving toward the end should pull the next page")
	assert.True(t, m.state.Loading)
}

func TestBrowse_ResetRestoresIdlePane(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("turbine")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(pageMsg{page: 1, hits: testHits(10)})
	require.NotEmpty(t, m.state.Hits)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Empty(t, m.state.Hits)
	assert.Equal(t, 0, m.cursor)
	assert.Contains(t, m.View(), "▒", "reset brings the idle pane back")
	assert.Equal(t, 0, m.cache.Len(), "reset flushes cached pages")
}

func TestBrowse_PresetPickerSelectsAndFetches(t *testing.T) {
	m := newTestModel(t)
	m.Update(presetsMsg{files: []string{"manualA.jsonl", "manualB.jsonl"}})

	m.Update(tea.KeyMsg{Type: tea.KeyEsc}) // leave the input
	m.Update(keyRunes("p"))
	assert.Contains(t, m.View(), "manualA")

	m.Update(keyRunes("j"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, "manualB.jsonl", m.state.PresetFile)
	assert.True(t, m.state.Loading)
}

func TestBrowse_PresetDirectoryFailureIsNonFatal(t *testing.T) {
	m := newTestModel(t)

	m.Update(presetsErrMsg{err: errors.BackendError("index offline")})

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m.Update(keyRunes("p"))
	assert.Contains(t, m.View(), "No presets available.")
}

func TestBrowse_PageLoadedFromCacheSkipsBackend(t *testing.T) {
	m := newTestModel(t)
	m.cache.Put("search", "turbine", 1, m.state.PerPage, testHits(2))

	m.input.SetValue("turbine")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	// Submit purges the cache, so this fetch would hit the backend.
	assert.Equal(t, 0, m.cache.Len())
}
