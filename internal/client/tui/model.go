package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/notify"
	"github.com/dmitrijs2005/userdir/internal/client/render"
	"github.com/dmitrijs2005/userdir/internal/client/userdetail"
	"github.com/dmitrijs2005/userdir/internal/client/userlist"
)

// statusFadeDelay is how long a notice stays in the status bar.
const statusFadeDelay = 3 * time.Second

type mode int

const (
	modeList mode = iota
	modeSearch
	modeConfirm
	modeDetail
)

// pageMsg is sent when a page fetch returns.
type pageMsg struct {
	err error
}

// deleteMsg is sent when a confirmed delete returns.
type deleteMsg struct {
	err error
}

// detailMsg is sent when a user fetch for the detail view returns.
type detailMsg struct {
	err error
}

// statusFadeMsg clears the status bar unless a newer notice replaced the
// one it was scheduled for.
type statusFadeMsg struct {
	seq int
}

// Model implements tea.Model over a list controller and a detail editor.
type Model struct {
	ctx     context.Context
	list    *userlist.Controller
	detail  *userdetail.Editor
	notices *notify.Recorder

	renderer render.Renderer
	keys     KeyMap
	help     help.Model
	search   textinput.Model
	fade     time.Duration

	mode     mode
	cursor   int
	deleting bool

	status    notify.Notice
	statusSeq int

	width  int
	height int
}

type Option func(*Model)

func WithKeyMap(k KeyMap) Option {
	return func(m *Model) { m.keys = k }
}

// WithFadeDelay changes how long notices stay visible.
func WithFadeDelay(d time.Duration) Option {
	return func(m *Model) { m.fade = d }
}

// New builds the model. notices must be the notifier the controller and
// editor were built with; the model shows whatever they report.
func New(ctx context.Context, list *userlist.Controller, detail *userdetail.Editor, notices *notify.Recorder, opts ...Option) Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search first name, last name or email"
	search.CharLimit = 128
	search.Cursor.SetMode(cursor.CursorStatic)

	m := Model{
		ctx:      ctx,
		list:     list,
		detail:   detail,
		notices:  notices,
		renderer: render.New(0),
		keys:     DefaultKeyMap,
		help:     help.New(),
		search:   search,
		fade:     statusFadeDelay,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init loads the first page.
func (model Model) Init() tea.Cmd {
	return model.fetchPage(func(ctx context.Context) error {
		return model.list.LoadPage(ctx, 1)
	})
}

// Update implements tea.Model. Keyboard input is routed by mode; fetch
// and delete results arrive as messages from the commands that ran them.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.renderer.Width = message.Width
		model.help.Width = message.Width

	case pageMsg:
		// A newer fetch owns the screen.
		if errors.Is(message.err, userlist.ErrSuperseded) {
			return model, nil
		}
		if message.err == nil {
			model.cursor = 0
		}
		model.clampCursor()
		return model, model.flushNotices()

	case deleteMsg:
		model.deleting = false
		model.mode = modeList
		model.clampCursor()
		return model, model.flushNotices()

	case detailMsg:
		if message.err == nil {
			model.mode = modeDetail
		}
		return model, model.flushNotices()

	case statusFadeMsg:
		if message.seq == model.statusSeq {
			model.status = notify.Notice{}
		}

	case tea.KeyMsg:
		switch model.mode {
		case modeSearch:
			return model.handleSearchKeys(message)
		case modeConfirm:
			return model.handleConfirmKeys(message)
		case modeDetail:
			return model.handleDetailKeys(message)
		default:
			return model.handleListKeys(message)
		}
	}
	return model, nil
}

func (model Model) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := model.list.State()

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Next):
		if state.HasNext {
			return model, model.fetchPage(model.list.NextPage)
		}

	case key.Matches(message, model.keys.Prev):
		if state.HasPrev {
			return model, model.fetchPage(model.list.PrevPage)
		}

	case key.Matches(message, model.keys.Reload):
		return model, model.fetchPage(model.list.Reload)

	case key.Matches(message, model.keys.Up):
		model.cursor--
		model.clampCursor()

	case key.Matches(message, model.keys.Down):
		model.cursor++
		model.clampCursor()

	case key.Matches(message, model.keys.Search):
		model.mode = modeSearch
		model.search.SetValue(state.Search)
		model.search.CursorEnd()
		return model, model.search.Focus()

	case key.Matches(message, model.keys.ClearSearch):
		model.list.SetSearch("")
		model.search.Reset()
		model.cursor = 0

	case key.Matches(message, model.keys.SortField):
		model.list.SetSortField(state.SortField.Next())
		model.cursor = 0

	case key.Matches(message, model.keys.SortOrder):
		model.list.ToggleSortOrder()
		model.cursor = 0

	case key.Matches(message, model.keys.View):
		model.list.ToggleViewMode()

	case key.Matches(message, model.keys.Open):
		if u, ok := model.selected(state); ok {
			return model, model.openDetail(u.ID)
		}

	case key.Matches(message, model.keys.Delete):
		if u, ok := model.selected(state); ok {
			if err := model.list.RequestDelete(u.ID); err == nil {
				model.mode = modeConfirm
			}
		}

	default:
		for i, binding := range model.keys.Columns {
			if key.Matches(message, binding) {
				model.list.ToggleColumn(models.Columns[i])
				break
			}
		}
	}
	return model, nil
}

// handleSearchKeys edits the query live: every keystroke re-filters the
// current page.
func (model Model) handleSearchKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit

	case key.Matches(message, model.keys.ClearSearch):
		model.search.Reset()
		model.search.Blur()
		model.list.SetSearch("")
		model.mode = modeList
		model.cursor = 0
		return model, nil

	case key.Matches(message, model.keys.Accept):
		model.search.Blur()
		model.mode = modeList
		return model, nil
	}

	var cmd tea.Cmd
	model.search, cmd = model.search.Update(message)
	model.list.SetSearch(model.search.Value())
	model.cursor = 0
	return model, cmd
}

func (model Model) handleConfirmKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit

	case model.deleting:
		return model, nil

	case key.Matches(message, model.keys.Confirm):
		model.deleting = true
		ctx, list := model.ctx, model.list
		return model, func() tea.Msg {
			return deleteMsg{err: list.ConfirmDelete(ctx)}
		}

	case key.Matches(message, model.keys.Cancel):
		_ = model.list.CancelDelete()
		model.mode = modeList
	}
	return model, nil
}

func (model Model) handleDetailKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(message, model.keys.Back):
		model.mode = modeList
	}
	return model, nil
}

func (model Model) fetchPage(fetch func(context.Context) error) tea.Cmd {
	ctx := model.ctx
	return func() tea.Msg {
		return pageMsg{err: fetch(ctx)}
	}
}

func (model Model) openDetail(id int) tea.Cmd {
	ctx, detail := model.ctx, model.detail
	return func() tea.Msg {
		return detailMsg{err: detail.Open(ctx, id)}
	}
}

// flushNotices moves the latest pending notice into the status bar and
// schedules its fade.
func (model *Model) flushNotices() tea.Cmd {
	pending := model.notices.Drain()
	if len(pending) == 0 {
		return nil
	}
	model.status = pending[len(pending)-1]
	model.statusSeq++
	seq := model.statusSeq
	return tea.Tick(model.fade, func(time.Time) tea.Msg {
		return statusFadeMsg{seq: seq}
	})
}

func (model Model) selected(state userlist.Snapshot) (models.User, bool) {
	if model.cursor < 0 || model.cursor >= len(state.Visible) {
		return models.User{}, false
	}
	return state.Visible[model.cursor], true
}

func (model *Model) clampCursor() {
	n := len(model.list.State().Visible)
	if model.cursor >= n {
		model.cursor = n - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
}
