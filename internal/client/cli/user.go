package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/render"
	"github.com/dmitrijs2005/userdir/internal/client/services"
	"github.com/dmitrijs2005/userdir/internal/client/userlist"
)

// editFields is the order edit prompts for values.
var editFields = []models.Column{
	models.ColumnFirstName,
	models.ColumnLastName,
	models.ColumnEmail,
	models.ColumnAvatar,
}

func (a *App) parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		a.println("Invalid user id:", arg)
		if err == nil {
			err = fmt.Errorf("invalid user id %d", id)
		}
		return 0, err
	}
	return id, nil
}

// Show fetches one user and prints it.
func (a *App) Show(ctx context.Context, arg string) error {
	id, err := a.parseID(arg)
	if err != nil {
		return err
	}
	if err := a.deps.Detail.Open(ctx, id); err != nil {
		return err
	}
	u, _ := a.deps.Detail.User()
	a.println(a.renderer.Detail(u, nil))
	return nil
}

// Edit opens a user and prompts for each editable field; an empty answer
// keeps the current value. The four values are saved together. A failed
// save can be retried with the same values.
func (a *App) Edit(ctx context.Context, arg string) error {
	id, err := a.parseID(arg)
	if err != nil {
		return err
	}
	if err := a.deps.Detail.Open(ctx, id); err != nil {
		return err
	}
	if err := a.deps.Detail.Begin(); err != nil {
		return err
	}
	u, _ := a.deps.Detail.User()
	a.println(a.renderer.Detail(u, nil))

	for _, field := range editFields {
		current := field.Value(u)
		value, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s]", field.Label(), current), a.out)
		if err != nil {
			a.deps.Detail.Discard()
			return err
		}
		if value == "" {
			continue
		}
		if err := a.deps.Detail.Set(field, value); err != nil {
			a.deps.Detail.Discard()
			return err
		}
	}

	form := a.deps.Detail.Form()
	a.println(a.renderer.Detail(u, &form))

	ok, err := confirm(a.reader, "Save changes?", a.out)
	if err != nil || !ok {
		a.deps.Detail.Discard()
		a.println("Changes discarded.")
		return err
	}

	for {
		updated, err := a.deps.Detail.Save(ctx)
		if err == nil {
			a.deps.List.Replace(updated)
			a.println(a.renderer.Detail(updated, nil))
			return nil
		}
		if errors.Is(err, context.Canceled) {
			a.deps.Detail.Discard()
			return err
		}
		retry, rerr := confirm(a.reader, "Retry?", a.out)
		if rerr != nil || !retry {
			a.deps.Detail.Discard()
			a.println("Changes discarded.")
			return err
		}
	}
}

// Delete asks for confirmation and deletes a user from the current page.
// The outcome is reported through the notifier.
func (a *App) Delete(ctx context.Context, arg string) error {
	id, err := a.parseID(arg)
	if err != nil {
		return err
	}
	if err := a.deps.List.RequestDelete(id); err != nil {
		if errors.Is(err, userlist.ErrUnknownUser) {
			a.println(fmt.Sprintf("User %d is not on the current page.", id))
		}
		return err
	}

	u, _ := a.deps.List.User(id)
	a.println(u.String())
	ok, err := confirm(a.reader, render.ConfirmDelete, a.out)
	if err != nil || !ok {
		_ = a.deps.List.CancelDelete()
		return err
	}

	if err := a.deps.List.ConfirmDelete(ctx); err != nil {
		return err
	}
	a.show()
	return nil
}

// Avatar saves the avatar of a user into the download directory. Users on
// the current page are not fetched again.
func (a *App) Avatar(ctx context.Context, arg string) error {
	id, err := a.parseID(arg)
	if err != nil {
		return err
	}

	u, ok := a.deps.List.User(id)
	if !ok {
		if u, err = a.deps.Users.GetUser(ctx, id); err != nil {
			a.println("Failed to fetch user details.")
			return err
		}
	}

	path, err := a.deps.Avatars.Download(ctx, u)
	switch {
	case err == nil:
		a.println("Avatar saved to", path)
	case errors.Is(err, services.ErrNoAvatar):
		a.println(fmt.Sprintf("%s has no avatar.", u.FullName()))
	case errors.Is(err, context.Canceled):
	default:
		a.deps.Logger.Warn(ctx, "avatar download failed", "id", id, "error", err)
		a.println("Failed to download avatar.")
	}
	return err
}

