// Package render turns list and detail state into terminal text. It is
// shared by the line-oriented REPL and the full-screen TUI; neither owns any
// layout of its own.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/userlist"
)

const (
	EmptyMessage   = "No users found."
	ConfirmDelete  = "Are you sure you want to delete this user?"
	LoadingMessage = "Loading..."

	// NoCursor disables row highlighting.
	NoCursor = -1

	actionsHeader = "Actions"
	actionsCell   = "view · delete"

	cardWidth = 30
	cardGap   = 2

	defaultWidth = 100
)

// Renderer is cheap to copy. A zero Width means defaultWidth.
type Renderer struct {
	Theme Theme
	Width int
}

func New(width int) Renderer {
	return Renderer{Theme: DefaultTheme, Width: width}
}

func (r Renderer) width() int {
	if r.Width <= 0 {
		return defaultWidth
	}
	return r.Width
}

// Users renders the projection of s in its view mode, highlighting the row
// or card at cursor (an index into s.Visible).
func (r Renderer) Users(s userlist.Snapshot, cursor int) string {
	if s.Loading && !s.Loaded {
		return r.faint().Render(LoadingMessage)
	}
	if len(s.Visible) == 0 {
		return r.faint().Render(EmptyMessage)
	}
	if s.ViewMode == models.ViewGrid {
		return r.Grid(s.Visible, s.Columns, cursor)
	}
	return r.Table(s.Visible, s.Columns, cursor)
}

// Table renders users as rows with the visible columns plus the actions
// column, which is always present. The first column is the id.
func (r Renderer) Table(users []models.User, cols models.ColumnSet, cursor int) string {
	visible := cols.Visible()

	headers := make([]string, 0, len(visible)+2)
	headers = append(headers, "ID")
	for _, c := range visible {
		headers = append(headers, c.Label())
	}
	headers = append(headers, actionsHeader)

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		row := make([]string, 0, len(headers))
		row = append(row, fmt.Sprint(u.ID))
		for _, c := range visible {
			row = append(row, c.Value(u))
		}
		row = append(row, actionsCell)
		rows = append(rows, row)
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(r.Theme.HeaderForeground).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Foreground(r.Theme.NormalText).Padding(0, 1)
	selectedStyle := cellStyle.
		Background(r.Theme.SelectedBackground).
		Foreground(r.Theme.SelectedForeground)
	actionStyle := cellStyle.Foreground(r.Theme.FaintText)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(r.Theme.BorderColor)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == cursor:
				return selectedStyle
			case col == len(headers)-1:
				return actionStyle
			default:
				return cellStyle
			}
		})

	return ansiTruncateLines(t.String(), r.width())
}

// Grid renders users as cards laid out left to right.
func (r Renderer) Grid(users []models.User, cols models.ColumnSet, cursor int) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(r.Theme.BorderColor).
		Width(cardWidth).
		Padding(0, 1)
	selected := border.BorderForeground(r.Theme.Accent)

	perRow := (r.width() + cardGap) / (cardWidth + 2 + cardGap)
	if perRow < 1 {
		perRow = 1
	}

	cards := make([]string, 0, len(users))
	for i, u := range users {
		style := border
		if i == cursor {
			style = selected
		}
		cards = append(cards, style.Render(r.card(u, cols)))
	}

	var rows []string
	gap := strings.Repeat(" ", cardGap)
	for start := 0; start < len(cards); start += perRow {
		end := min(start+perRow, len(cards))
		line := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				line = append(line, gap)
			}
			line = append(line, cards[i])
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (r Renderer) card(u models.User, cols models.ColumnSet) string {
	name := lipgloss.NewStyle().Bold(true).Foreground(r.Theme.HeaderForeground)
	faint := r.faint()

	var lines []string
	var names []string
	if cols[models.ColumnFirstName] {
		names = append(names, u.FirstName)
	}
	if cols[models.ColumnLastName] {
		names = append(names, u.LastName)
	}
	if len(names) > 0 {
		lines = append(lines, name.Render(ansi.Truncate(strings.Join(names, " "), cardWidth-2, "…")))
	}
	if cols[models.ColumnEmail] {
		lines = append(lines, ansi.Truncate(u.Email, cardWidth-2, "…"))
	}
	if cols[models.ColumnAvatar] {
		lines = append(lines, faint.Render(ansi.Truncate(u.AvatarURL, cardWidth-2, "…")))
	}
	lines = append(lines, faint.Render(fmt.Sprintf("#%d  %s", u.ID, actionsCell)))
	return strings.Join(lines, "\n")
}

// Pager renders "Page x of y" between the prev/next affordances, dimming
// the ones that are disabled.
func (r Renderer) Pager(s userlist.Snapshot) string {
	if !s.Loaded {
		return ""
	}
	on := lipgloss.NewStyle().Foreground(r.Theme.Accent)
	off := r.faint()

	prev, next := off.Render("‹ Prev"), off.Render("Next ›")
	if s.HasPrev {
		prev = on.Render("‹ Prev")
	}
	if s.HasNext {
		next = on.Render("Next ›")
	}
	return prev + "  " + PageLabel(s.Page, s.TotalPages) + "  " + next
}

func PageLabel(page, total int) string {
	return fmt.Sprintf("Page %d of %d", page, total)
}

// Summary describes the active view settings in one line.
func (r Renderer) Summary(s userlist.Snapshot) string {
	parts := []string{fmt.Sprintf("sort: %s (%s)", s.SortField.Label(), s.SortOrder)}
	if strings.TrimSpace(s.Search) != "" {
		parts = append(parts, fmt.Sprintf("search: %q", s.Search))
	}
	parts = append(parts, "view: "+string(s.ViewMode))
	if hidden := len(models.Columns) - len(s.Columns.Visible()); hidden > 0 {
		parts = append(parts, fmt.Sprintf("hidden columns: %d", hidden))
	}
	return r.faint().Render(strings.Join(parts, " · "))
}

// Columns lists every toggleable column with its visibility.
func (r Renderer) Columns(cols models.ColumnSet) string {
	var b strings.Builder
	for i, c := range models.Columns {
		mark := "[ ]"
		if cols[c] {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "%d %s %s\n", i+1, mark, c.Label())
	}
	return strings.TrimRight(b.String(), "\n")
}

// Detail renders one user. When form is non-nil the edit form is shown
// next to the stored values.
func (r Renderer) Detail(u models.User, form *models.UserPatch) string {
	label := lipgloss.NewStyle().Width(12).Foreground(r.Theme.FaintText)
	title := lipgloss.NewStyle().Bold(true).Foreground(r.Theme.HeaderForeground)

	lines := []string{title.Render(fmt.Sprintf("%s (#%d)", u.FullName(), u.ID))}
	field := func(name, value, edited string) {
		line := label.Render(name) + value
		if form != nil && edited != value {
			line += lipgloss.NewStyle().Foreground(r.Theme.Accent).Render("  → " + edited)
		}
		lines = append(lines, line)
	}

	var f models.UserPatch
	if form != nil {
		f = *form
	}
	field(models.ColumnFirstName.Label(), u.FirstName, f.FirstName)
	field(models.ColumnLastName.Label(), u.LastName, f.LastName)
	field(models.ColumnEmail.Label(), u.Email, f.Email)
	field(models.ColumnAvatar.Label(), u.AvatarURL, f.AvatarURL)

	if form != nil {
		lines = append(lines, r.faint().Render("editing: changes are saved together"))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(r.Theme.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// DeletePrompt renders the confirmation question for u.
func (r Renderer) DeletePrompt(u models.User) string {
	q := lipgloss.NewStyle().Bold(true).Foreground(r.Theme.Danger).Render(ConfirmDelete)
	return q + "\n" + u.String()
}

func (r Renderer) faint() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(r.Theme.FaintText)
}

func ansiTruncateLines(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, width, "")
	}
	return strings.Join(lines, "\n")
}
