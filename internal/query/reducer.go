// Package query holds the search session state machine.
//
// Pagination and mode state live in one immutable State value advanced
// by a single reducer (Update) per user action. The reducer never does
// I/O: it returns a Fetch effect describing the one request to issue,
// and the caller (TUI event loop or CLI) executes it and feeds the
// outcome back as a PageLoaded or PageFailed action. This removes the
// ordering bugs that ad-hoc shared pagination variables invite.
package query

import (
	"strings"

	"github.com/pagemark/pagemark/internal/api"
	"github.com/pagemark/pagemark/internal/errors"
)

// Mode is the active search mode. Free-text search and preset browsing
// are mutually exclusive; switching always resets the session.
type Mode int

const (
	// ModeSearch is free-text search through the configured engine.
	ModeSearch Mode = iota
	// ModePreset browses a named preset document set.
	ModePreset
)

// String returns the mode name used in cache keys and logs.
func (m Mode) String() string {
	if m == ModePreset {
		return "preset"
	}
	return "search"
}

// State is the complete search session state. Values are updated only
// by Update; callers treat State as immutable.
type State struct {
	Mode       Mode
	Query      string
	PresetFile string

	// Page is the last requested page, 1-based.
	Page int
	// PerPage is the page size. Constant for the session: the has-more
	// heuristic (full page == more pages) depends on it.
	PerPage int

	// Loading is true while a fetch is outstanding. Any trigger action
	// arriving while Loading is dropped, not queued.
	Loading bool
	// HasMore is true iff the last fetched page was exactly full.
	HasMore bool
	// Failed is true after a fetch failure; load-more stays disabled
	// until the next reset.
	Failed bool

	// Hits is the accumulated result list across fetched pages.
	Hits []api.Hit

	// MethodLabel names the search method. Shown once per session,
	// set by the first successful page-1 load.
	MethodLabel string
	// ErrorText is the user-facing failure message, set by PageFailed.
	ErrorText string
	// NoResults is true when page 1 returned zero hits.
	NoResults bool

	// engineLabel is the method label for free-text mode.
	engineLabel string
}

// NewState returns the initial session state.
func NewState(perPage int, engineLabel string) State {
	return State{
		Mode:        ModeSearch,
		Page:        1,
		PerPage:     perPage,
		engineLabel: engineLabel,
	}
}

// Fetch describes the single request the caller must issue. A nil Fetch
// means the action produced no request.
type Fetch struct {
	Mode    Mode
	Query   string // free-text query (ModeSearch)
	File    string // preset file (ModePreset)
	Page    int
	PerPage int
}

// Action is a user event or fetch completion fed to Update.
type Action interface{ isAction() }

// Submit starts a new free-text search. An empty or whitespace query
// resets the session without issuing a request.
type Submit struct{ Query string }

// SelectPreset switches to preset mode and loads the named file.
// An empty file resets the session without issuing a request.
type SelectPreset struct{ File string }

// LoadMore requests the next page in the active mode.
type LoadMore struct{}

// PageLoaded reports a successful fetch.
type PageLoaded struct {
	Page int
	Hits []api.Hit
}

// PageFailed reports a failed fetch.
type PageFailed struct{ Err error }

// Reset clears the session back to its initial state.
type Reset struct{}

func (Submit) isAction()       {}
func (SelectPreset) isAction() {}
func (LoadMore) isAction()     {}
func (PageLoaded) isAction()   {}
func (PageFailed) isAction()   {}
func (Reset) isAction()        {}

// Update advances the session state by one action and returns the fetch
// to issue, if any. Trigger actions (Submit, SelectPreset, LoadMore)
// are silent no-ops while a fetch is outstanding.
func Update(s State, a Action) (State, *Fetch) {
	switch a := a.(type) {
	case Submit:
		if s.Loading {
			return s, nil
		}
		q := strings.TrimSpace(a.Query)
		s = reset(s)
		if q == "" {
			return s, nil
		}
		s.Mode = ModeSearch
		s.Query = q
		s.Loading = true
		return s, &Fetch{Mode: ModeSearch, Query: q, Page: 1, PerPage: s.PerPage}

	case SelectPreset:
		if s.Loading {
			return s, nil
		}
		s = reset(s)
		if a.File == "" {
			return s, nil
		}
		s.Mode = ModePreset
		s.PresetFile = a.File
		s.Loading = true
		return s, &Fetch{Mode: ModePreset, File: a.File, Page: 1, PerPage: s.PerPage}

	case LoadMore:
		if s.Loading || s.Failed || !s.HasMore {
			return s, nil
		}
		s.Page++
		s.Loading = true
		f := &Fetch{Mode: s.Mode, Page: s.Page, PerPage: s.PerPage}
		if s.Mode == ModePreset {
			f.File = s.PresetFile
		} else {
			f.Query = s.Query
		}
		return s, f

	case PageLoaded:
		s.Loading = false
		if len(a.Hits) == 0 {
			s.HasMore = false
			if a.Page == 1 {
				s.NoResults = true
			}
			return s, nil
		}
		if a.Page == 1 {
			s.MethodLabel = s.methodLabel()
		}
		s.Hits = append(s.Hits, a.Hits...)
		s.HasMore = len(a.Hits) == s.PerPage
		return s, nil

	case PageFailed:
		s.Loading = false
		s.Failed = true
		s.HasMore = false
		s.Hits = nil
		s.ErrorText = errors.UserText(a.Err)
		return s, nil

	case Reset:
		if s.Loading {
			return s, nil
		}
		return reset(s), nil
	}

	return s, nil
}

// reset returns the initial state, keeping session constants.
func reset(s State) State {
	return NewState(s.PerPage, s.engineLabel)
}

// methodLabel names the method for the active mode.
func (s State) methodLabel() string {
	if s.Mode == ModePreset {
		return "Preset: " + strings.TrimSuffix(s.PresetFile, ".jsonl")
	}
	return s.engineLabel
}
