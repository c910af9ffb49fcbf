// Package services contains application services for the userdir client.
// They sit between the front ends and the transport client and translate
// transport failures into the user-facing failure taxonomy.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userdir/internal/client/client"
	"github.com/dmitrijs2005/userdir/internal/client/session"
	"github.com/dmitrijs2005/userdir/internal/common"
	"github.com/dmitrijs2005/userdir/internal/logging"
)

// LoginFailedMessage is shown for any rejected or failed login.
const LoginFailedMessage = "Invalid email or password"

// loginError always reads as LoginFailedMessage; the cause stays reachable
// through errors.Is and errors.As.
type loginError struct {
	cause error
}

func (e *loginError) Error() string { return LoginFailedMessage }

func (e *loginError) Unwrap() []error { return []error{common.ErrAuthFailure, e.cause} }

// AuthService defines authentication operations for the front ends.
//
// Contract:
//   - Login: validate the form, authenticate, start (and persist) the session.
//   - Logout: forget the session locally and in the store.
//   - Restore: resume a persisted session, reporting whether one was found.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (bool, error)
}

type authService struct {
	client  client.Client
	session *session.Session
	store   session.Store
	logger  logging.Logger
}

// NewAuthService wires an AuthService. store may be nil, in which case the
// session lives only for the process.
func NewAuthService(c client.Client, s *session.Session, store session.Store, l logging.Logger) AuthService {
	if l == nil {
		l = logging.Discard()
	}
	return &authService{client: c, session: s, store: store, logger: l}
}

// Login returns a *ValidationError for a malformed form, or an error
// matching common.ErrAuthFailure when the service rejects it.
func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	if err := validateCredentials(email, password); err != nil {
		return err
	}

	token, err := a.client.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		a.logger.Warn(ctx, "login failed", "email", email, "error", err)
		return &loginError{cause: err}
	}

	st := a.session.Start(email, token)
	a.logger.Info(ctx, "logged in", "email", email)

	if a.store != nil {
		if err := a.store.Save(ctx, st); err != nil {
			// the login itself succeeded; only persistence is lost
			a.logger.Warn(ctx, "saving session failed", "error", err)
		}
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.session.Clear()
	if a.store == nil {
		return nil
	}
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear saved session: %w", err)
	}
	return nil
}

func (a *authService) Restore(ctx context.Context) (bool, error) {
	if a.store == nil {
		return false, nil
	}
	st, err := a.store.Load(ctx)
	if errors.Is(err, session.ErrNoSession) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load saved session: %w", err)
	}
	a.session.Resume(st)
	a.logger.Debug(ctx, "session restored", "email", st.Email)
	return true, nil
}
