// Package notify delivers short user-facing notices (the status line of the
// front ends) from the controllers that produce them.
package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Notice texts.
const (
	MsgLoadFailed       = "Failed to load users."
	MsgDeleted          = "User deleted successfully!"
	MsgUnexpectedDelete = "Unexpected response from the server."
	MsgDeleteFailed     = "Failed to delete user."
	MsgFetchFailed      = "Failed to fetch user details."
	MsgUpdated          = "User updated successfully!"
	MsgUpdateFailed     = "Failed to update user."
)

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

type Notice struct {
	Level   Level
	Message string
	At      time.Time
}

// Notifier must be safe for concurrent use.
type Notifier interface {
	Notify(level Level, msg string)
}

// Success and Failure are shorthands used by the controllers.
func Success(n Notifier, msg string) { n.Notify(LevelSuccess, msg) }

func Failure(n Notifier, msg string) { n.Notify(LevelError, msg) }

// Discard drops every notice.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Level, string) {}

// Recorder keeps notices until drained.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
	now     func() time.Time
}

func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

func (r *Recorder) Notify(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, Notice{Level: level, Message: msg, At: r.now()})
}

// Drain returns the pending notices in arrival order and forgets them.
func (r *Recorder) Drain() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.notices
	r.notices = nil
	return out
}

// Messages returns the pending texts without draining.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.notices))
	for _, n := range r.notices {
		out = append(out, n.Message)
	}
	return out
}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Writer prints one notice per line, colored by level.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Notify(level Level, msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintln(w.w, Style(level).Render(msg))
}

// Style returns the lipgloss style for a level.
func Style(level Level) lipgloss.Style {
	switch level {
	case LevelSuccess:
		return successStyle
	case LevelError:
		return errorStyle
	default:
		return lipgloss.NewStyle()
	}
}
