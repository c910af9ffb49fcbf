package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/render"
	"github.com/dmitrijs2005/userdir/internal/client/userlist"
)

// List prints the current page, loading the first one when nothing has
// been loaded yet.
func (a *App) List(ctx context.Context) error {
	if !a.deps.List.State().Loaded {
		return a.loadAndShow(ctx, 1)
	}
	a.show()
	return nil
}

func (a *App) Next(ctx context.Context) error {
	if !a.deps.List.HasNext() {
		a.println("Already on the last page.")
		return userlist.ErrPageOutOfRange
	}
	return a.afterLoad(a.deps.List.NextPage(ctx))
}

func (a *App) Prev(ctx context.Context) error {
	if !a.deps.List.HasPrev() {
		a.println("Already on the first page.")
		return userlist.ErrPageOutOfRange
	}
	return a.afterLoad(a.deps.List.PrevPage(ctx))
}

// Page jumps to page arg. Pages past the last known one are rejected
// without a request.
func (a *App) Page(ctx context.Context, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		a.println("Invalid page number:", arg)
		return err
	}
	return a.loadAndShow(ctx, n)
}

func (a *App) Reload(ctx context.Context) error {
	return a.afterLoad(a.deps.List.Reload(ctx))
}

// Search filters the current page. An empty query clears the filter.
func (a *App) Search(ctx context.Context, query string) error {
	a.deps.List.SetSearch(query)
	a.show()
	return nil
}

// Sort sets the sort field and, optionally, the order.
func (a *App) Sort(ctx context.Context, args []string) error {
	field, err := models.ParseSortField(args[0])
	if err != nil {
		a.println("Unknown sort field:", args[0], "(use first_name, last_name or email)")
		return err
	}
	var order models.SortOrder
	if len(args) > 1 {
		if order, err = models.ParseSortOrder(args[1]); err != nil {
			a.println("Unknown sort order:", args[1], "(use asc or desc)")
			return err
		}
	}

	a.deps.List.SetSortField(field)
	if order != "" {
		a.deps.List.SetSortOrder(order)
	}
	a.show()
	return nil
}

func (a *App) Order(ctx context.Context) error {
	a.deps.List.ToggleSortOrder()
	a.show()
	return nil
}

func (a *App) Columns(ctx context.Context) error {
	a.println(a.renderer.Columns(a.deps.List.State().Columns))
	return nil
}

func (a *App) Toggle(ctx context.Context, column string) error {
	col, err := models.ParseColumn(column)
	if err != nil {
		a.println("Unknown column:", column, "(use avatar, first_name, last_name or email)")
		return err
	}
	state := "hidden"
	if a.deps.List.ToggleColumn(col) {
		state = "shown"
	}
	a.println(fmt.Sprintf("%s column %s.", col.Label(), state))
	a.show()
	return nil
}

// View switches the layout; without an argument it toggles between list
// and grid.
func (a *App) View(ctx context.Context, mode string) error {
	if mode == "" {
		a.deps.List.ToggleViewMode()
	} else {
		m, err := models.ParseViewMode(mode)
		if err != nil {
			a.println("Unknown view:", mode, "(use list or grid)")
			return err
		}
		a.deps.List.SetViewMode(m)
	}
	a.show()
	return nil
}

func (a *App) loadAndShow(ctx context.Context, n int) error {
	return a.afterLoad(a.deps.List.LoadPage(ctx, n))
}

// afterLoad prints the list after a successful fetch. Fetch failures are
// already reported through the notifier.
func (a *App) afterLoad(err error) error {
	switch {
	case err == nil:
		a.show()
	case errors.Is(err, userlist.ErrPageOutOfRange):
		s := a.deps.List.State()
		if s.Loaded {
			a.println(fmt.Sprintf("No such page. Pages run from 1 to %d.", s.TotalPages))
		} else {
			a.println("No such page.")
		}
	}
	return err
}

func (a *App) show() {
	s := a.deps.List.State()
	a.renderer.Width = terminalWidth()

	var b strings.Builder
	b.WriteString(a.renderer.Users(s, render.NoCursor))
	if pager := a.renderer.Pager(s); pager != "" {
		b.WriteString("\n" + pager)
	}
	b.WriteString("\n" + a.renderer.Summary(s))
	a.println(b.String())
}
