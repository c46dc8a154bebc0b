package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pagemark/pagemark/internal/api"
	"github.com/pagemark/pagemark/internal/config"
	"github.com/pagemark/pagemark/internal/query"
	"github.com/pagemark/pagemark/internal/viewer"
)

// Messages fed back into the event loop by async work.
type pageMsg struct {
	page int
	hits []api.Hit
}
type pageErrMsg struct{ err error }
type presetsMsg struct{ files []string }
type presetsErrMsg struct{ err error }
type openDoneMsg struct {
	doc api.Document
	err error
}

// BrowseModel is the interactive search view. All session state lives
// in query.State and is advanced exclusively through the reducer; the
// model adds presentation state (cursor, picker, sizes) on top.
type BrowseModel struct {
	client   *api.Client
	cache    *api.PageCache
	opener   *viewer.Opener
	autoOpen bool

	state query.State

	input  textinput.Model
	spin   spinner.Model
	styles Styles

	width  int
	height int

	// cursor is the single active result; at most one entry is
	// highlighted at any time.
	cursor int

	presets      []string
	pickerOpen   bool
	pickerCursor int

	status   string
	quitting bool
}

// NewBrowseModel builds the browse view from the loaded configuration.
func NewBrowseModel(cfg *config.Config, client *api.Client, opener *viewer.Opener) *BrowseModel {
	ti := textinput.New()
	ti.Placeholder = "search documents"
	ti.Prompt = "› "
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	styles := GetStyles(DetectNoColor())
	sp.Style = styles.Active

	return &BrowseModel{
		client:   client,
		cache:    api.NewPageCache(cfg.Search.CacheSize),
		opener:   opener,
		autoOpen: cfg.Viewer.AutoOpen,
		state:    query.NewState(cfg.Search.PerPage, client.Engine().Label()),
		input:    ti,
		spin:     sp,
		styles:   styles,
		width:    80,
		height:   24,
	}
}

// Init implements tea.Model. The preset directory is fetched up front,
// best effort: a failure is logged and the picker stays empty.
func (m *BrowseModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick, m.loadPresetsCmd())
}

// Update implements tea.Model.
func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 6
		return m, nil

	case pageMsg:
		m.state, _ = query.Update(m.state, query.PageLoaded{Page: msg.page, Hits: msg.hits})
		return m, nil

	case pageErrMsg:
		m.state, _ = query.Update(m.state, query.PageFailed{Err: msg.err})
		return m, nil

	case presetsMsg:
		m.presets = msg.files
		return m, nil

	case presetsErrMsg:
		// Preset browsing is an optional convenience; search still works.
		slog.Warn("preset_directory_unavailable", slog.String("error", msg.err.Error()))
		return m, nil

	case openDoneMsg:
		if msg.err != nil {
			m.status = m.styles.Error.Render(msg.err.Error())
		} else {
			m.status = m.styles.Label.Render(
				fmt.Sprintf("opened %s p.%d in viewer", msg.doc.File, msg.doc.Page))
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *BrowseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.pickerOpen {
		return m.handlePickerKey(msg)
	}

	if m.input.Focused() {
		switch msg.String() {
		case "enter":
			m.input.Blur()
			return m, m.dispatch(query.Submit{Query: m.input.Value()})
		case "esc", "tab":
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "/", "i", "tab":
		m.input.Focus()
		return m, textinput.Blink
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.state.Hits)-1 {
			m.cursor++
		}
		// Nearing the end of the list pulls the next page in.
		if m.cursor >= len(m.state.Hits)-2 {
			return m, m.dispatch(query.LoadMore{})
		}
		return m, nil
	case "n", "pgdown":
		return m, m.dispatch(query.LoadMore{})
	case "enter", "o":
		return m, m.openSelected()
	case "p":
		m.pickerOpen = true
		m.pickerCursor = 0
		return m, nil
	case "esc", "r":
		m.input.SetValue("")
		m.input.Focus()
		return m, m.dispatch(query.Reset{})
	}

	return m, nil
}

func (m *BrowseModel) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "p", "q":
		m.pickerOpen = false
		return m, nil
	case "up", "k":
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
		return m, nil
	case "down", "j":
		if m.pickerCursor < len(m.presets)-1 {
			m.pickerCursor++
		}
		return m, nil
	case "enter":
		m.pickerOpen = false
		if len(m.presets) == 0 {
			return m, nil
		}
		file := m.presets[m.pickerCursor]
		m.input.SetValue("")
		return m, m.dispatch(query.SelectPreset{File: file})
	}
	return m, nil
}

// dispatch runs one action through the reducer and issues the resulting
// fetch. Session-starting actions flush the page cache and presentation
// state before the reducer applies them.
func (m *BrowseModel) dispatch(a query.Action) tea.Cmd {
	starting := false
	switch a.(type) {
	case query.Submit, query.SelectPreset, query.Reset:
		starting = !m.state.Loading
	}

	next, fetch := query.Update(m.state, a)
	m.state = next

	if starting {
		m.cache.Purge()
		m.cursor = 0
		m.status = ""
	}
	if fetch == nil {
		return nil
	}
	return m.fetchCmd(*fetch)
}

// fetchCmd runs one page fetch off the event loop. Cached pages short
// circuit the request entirely.
func (m *BrowseModel) fetchCmd(f query.Fetch) tea.Cmd {
	client := m.client
	cache := m.cache
	return func() tea.Msg {
		key := f.Query
		if f.Mode == query.ModePreset {
			key = f.File
		}
		if hits, ok := cache.Get(f.Mode.String(), key, f.Page, f.PerPage); ok {
			return pageMsg{page: f.Page, hits: hits}
		}

		var (
			hits []api.Hit
			err  error
		)
		if f.Mode == query.ModePreset {
			hits, err = client.PresetSearch(context.Background(), f.File, f.Page, f.PerPage)
		} else {
			hits, err = client.Search(context.Background(), f.Query, f.Page, f.PerPage)
		}
		if err != nil {
			return pageErrMsg{err: err}
		}

		cache.Put(f.Mode.String(), key, f.Page, f.PerPage, hits)
		return pageMsg{page: f.Page, hits: hits}
	}
}

func (m *BrowseModel) loadPresetsCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		files, err := client.ListPresets(context.Background())
		if err != nil {
			return presetsErrMsg{err: err}
		}
		return presetsMsg{files: files}
	}
}

// openSelected hands the active result to the viewer. With auto-open
// disabled the deep link is shown instead, ready to copy.
func (m *BrowseModel) openSelected() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.state.Hits) {
		return nil
	}
	doc := m.state.Hits[m.cursor].Document
	url := viewer.HighlightURL(m.client.BaseURL(), doc)

	if !m.autoOpen {
		m.status = m.styles.Label.Render(url)
		return nil
	}

	opener := m.opener
	return func() tea.Msg {
		return openDoneMsg{doc: doc, err: opener.Open(url)}
	}
}

// View implements tea.Model.
func (m *BrowseModel) View() string {
	if m.quitting {
		return ""
	}

	header := m.styles.Header.Render("pagemark") +
		m.styles.Dim.Render("  "+m.client.BaseURL())
	inputLine := m.input.View()

	var body string
	switch {
	case m.pickerOpen:
		body = m.viewPicker()
	case m.state.Loading && len(m.state.Hits) == 0:
		body = m.spin.View() + m.styles.Label.Render(" searching…")
	case m.state.ErrorText != "":
		body = m.styles.Error.Render(m.state.ErrorText)
	case m.state.NoResults:
		body = m.styles.Dim.Render("No results.")
	case len(m.state.Hits) == 0:
		body = Splash(m.width-4, m.bodyHeight(), m.styles)
	default:
		body = m.viewResults()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		inputLine,
		"",
		body,
		"",
		m.viewStatusBar(),
	)
}

// bodyHeight is the space left for the result list or splash pane.
func (m *BrowseModel) bodyHeight() int {
	h := m.height - 6
	if h < 4 {
		h = 4
	}
	return h
}

func (m *BrowseModel) viewResults() string {
	var sections []string

	if m.state.MethodLabel != "" {
		sections = append(sections, m.styles.Badge.Render("["+m.state.MethodLabel+"]"))
	}

	// Each entry takes two lines; scroll the window to keep the cursor
	// visible.
	visible := m.bodyHeight() / 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(m.state.Hits) {
		end = len(m.state.Hits)
	}

	for i := start; i < end; i++ {
		sections = append(sections, renderHit(m.state.Hits[i], i == m.cursor, m.width, m.styles))
	}

	switch {
	case m.state.Loading:
		sections = append(sections, m.spin.View()+m.styles.Label.Render(" loading more…"))
	case m.state.HasMore:
		sections = append(sections, m.styles.Dim.Render("n  load more"))
	}

	return strings.Join(sections, "\n")
}

func (m *BrowseModel) viewPicker() string {
	if len(m.presets) == 0 {
		return m.styles.Dim.Render("No presets available.")
	}

	var lines []string
	lines = append(lines, m.styles.Header.Render("Presets"))
	for i, f := range m.presets {
		name := strings.TrimSuffix(f, ".jsonl")
		if i == m.pickerCursor {
			lines = append(lines, m.styles.Selected.Render("▸ "+name))
		} else {
			lines = append(lines, m.styles.Label.Render("  "+name))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *BrowseModel) viewStatusBar() string {
	if m.status != "" {
		return m.status
	}
	if m.input.Focused() {
		return m.styles.Dim.Render("enter search  │  esc list  │  ctrl+c quit")
	}
	return m.styles.Dim.Render("/ search  │  p presets  │  enter open  │  esc reset  │  q quit")
}

// RunBrowse starts the interactive browse view and blocks until it
// exits.
func RunBrowse(cfg *config.Config) error {
	client := api.NewClient(cfg.Backend.BaseURL,
		api.WithEngine(api.Engine(cfg.Backend.Engine)),
		api.WithTimeout(cfg.TimeoutDuration()))

	m := NewBrowseModel(cfg, client, viewer.NewOpener(cfg.Viewer.Command))
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

var _ tea.Model = (*BrowseModel)(nil)
