package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/userdir/internal/client/notify"
	"github.com/dmitrijs2005/userdir/internal/client/render"
	"github.com/dmitrijs2005/userdir/internal/client/userlist"
)

const title = "User Directory"

// View implements tea.Model.
func (model Model) View() string {
	state := model.list.State()
	theme := model.renderer.Theme

	sections := []string{
		lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).Render(title) +
			"  " + model.renderer.Summary(state),
	}

	if model.mode == modeDetail {
		if u, ok := model.detail.User(); ok {
			sections = append(sections, model.renderer.Detail(u, nil))
		}
		sections = append(sections, model.help.ShortHelpView(
			[]key.Binding{model.keys.Back, model.keys.Quit}))
		return strings.Join(sections, "\n\n")
	}

	sections = append(sections, model.renderer.Users(state, model.cursor))

	if model.mode == modeConfirm {
		if u, ok := model.list.User(state.Delete.ID); ok {
			prompt := model.renderer.DeletePrompt(u)
			if state.Delete.Phase == userlist.DeleteDeleting {
				prompt += "\n" + render.LoadingMessage
			} else {
				prompt += "\n" + model.help.ShortHelpView([]key.Binding{model.keys.Confirm, model.keys.Cancel})
			}
			sections = append(sections, prompt)
		}
	}

	if model.mode == modeSearch {
		sections = append(sections, model.search.View())
	}

	pager := model.renderer.Pager(state)
	if state.Loading && state.Loaded {
		pager += "  " + render.LoadingMessage
	}
	sections = append(sections, pager)

	if model.status.Message != "" {
		sections = append(sections, notify.Style(model.status.Level).Render(model.status.Message))
	}

	sections = append(sections, model.help.View(model.keys))
	return strings.Join(sections, "\n\n")
}
