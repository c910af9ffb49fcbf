package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/userdir/internal/client/services"
	"github.com/dmitrijs2005/userdir/internal/common"
)

// Login prompts for credentials and, once authenticated, shows the first
// page of users.
func (a *App) Login(ctx context.Context) error {
	if err := a.login(ctx); err != nil {
		return err
	}
	return a.loadAndShow(ctx, 1)
}

// Authenticate makes sure a session exists before a front end starts: a
// persisted session is resumed, otherwise the user is asked to log in once.
func (a *App) Authenticate(ctx context.Context) error {
	if a.restore(ctx) {
		return nil
	}
	return a.login(ctx)
}

func (a *App) restore(ctx context.Context) bool {
	restored, err := a.deps.Auth.Restore(ctx)
	if err != nil {
		a.deps.Logger.Warn(ctx, "restoring session failed", "error", err)
	}
	return restored
}

// login prompts the user for credentials and tries to authenticate.
//
// Form problems are printed one per line and nothing is sent. A rejected or
// failed login prints "Invalid email or password".
//
// The password is wiped before returning.
func (a *App) login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.deps.Auth.Login(ctx, email, password); err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			for _, f := range verr.Fields {
				a.println(f.Message)
			}
		case errors.Is(err, context.Canceled):
		default:
			a.deps.Logger.Info(ctx, "login failed", "error", err)
			a.println(services.LoginFailedMessage)
		}
		return err
	}

	a.println("Logged in as", a.deps.Session.Email())
	return nil
}

// Logout forgets the session locally and in the session store.
func (a *App) Logout(ctx context.Context) error {
	if err := a.deps.Auth.Logout(ctx); err != nil {
		a.deps.Logger.Warn(ctx, "logout failed", "error", err)
		a.println("Logout failed:", err)
		return err
	}
	a.deps.Detail.Discard()
	a.println("Logged out.")
	return nil
}
