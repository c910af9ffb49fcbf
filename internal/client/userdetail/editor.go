// Package userdetail holds the state of the single-user view: the fetched
// record and an optional edit form over its four editable attributes.
package userdetail

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/notify"
	"github.com/dmitrijs2005/userdir/internal/logging"
)

var (
	ErrNotOpen    = errors.New("no user is open")
	ErrNotEditing = errors.New("not in edit mode")
	ErrSaving     = errors.New("a save is already in progress")
)

// Service is the part of services.UserService the detail view needs.
type Service interface {
	GetUser(ctx context.Context, id int) (models.User, error)
	UpdateUser(ctx context.Context, id int, patch models.UserPatch) (models.User, error)
}

// Editor is safe for concurrent use.
type Editor struct {
	svc      Service
	notifier notify.Notifier
	logger   logging.Logger

	mu      sync.Mutex
	user    models.User
	open    bool
	editing bool
	saving  bool
	form    models.UserPatch
}

type Option func(*Editor)

func WithNotifier(n notify.Notifier) Option {
	return func(e *Editor) { e.notifier = n }
}

func WithLogger(l logging.Logger) Option {
	return func(e *Editor) { e.logger = l }
}

func New(svc Service, opts ...Option) *Editor {
	e := &Editor{svc: svc, notifier: notify.Discard, logger: logging.Discard()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Open fetches user id and shows it read-only. On failure the previously
// open user, if any, stays.
func (e *Editor) Open(ctx context.Context, id int) error {
	u, err := e.svc.GetUser(ctx, id)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			e.logger.Warn(ctx, "fetching user failed", "id", id, "error", err)
			notify.Failure(e.notifier, notify.MsgFetchFailed)
		}
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.user = u
	e.open = true
	e.editing = false
	e.form = models.UserPatch{}
	return nil
}

// Begin enters edit mode with the form prefilled from the open user.
func (e *Editor) Begin() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.open {
		return ErrNotOpen
	}
	if !e.editing {
		e.editing = true
		e.form = models.PatchOf(e.user)
	}
	return nil
}

// Set changes one form field.
func (e *Editor) Set(field models.Column, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editing {
		return ErrNotEditing
	}
	switch field {
	case models.ColumnFirstName:
		e.form.FirstName = value
	case models.ColumnLastName:
		e.form.LastName = value
	case models.ColumnEmail:
		e.form.Email = value
	case models.ColumnAvatar:
		e.form.AvatarURL = value
	default:
		return fmt.Errorf("%w: %q", models.ErrUnknownColumn, field)
	}
	return nil
}

func (e *Editor) Form() models.UserPatch {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form
}

// Save sends the form. On success the open user takes all four form values
// at once and edit mode ends. On failure edit mode and the form stay so the
// user can retry.
func (e *Editor) Save(ctx context.Context) (models.User, error) {
	e.mu.Lock()
	if !e.editing {
		e.mu.Unlock()
		return models.User{}, ErrNotEditing
	}
	if e.saving {
		e.mu.Unlock()
		return models.User{}, ErrSaving
	}
	e.saving = true
	id, form := e.user.ID, e.form
	e.mu.Unlock()

	_, err := e.svc.UpdateUser(ctx, id, form)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.saving = false

	if err != nil {
		if !errors.Is(err, context.Canceled) {
			e.logger.Warn(ctx, "updating user failed", "id", id, "error", err)
			notify.Failure(e.notifier, notify.MsgUpdateFailed)
		}
		return models.User{}, err
	}

	e.user = form.Apply(e.user)
	e.editing = false
	notify.Success(e.notifier, notify.MsgUpdated)
	return e.user, nil
}

// Discard leaves edit mode without saving.
func (e *Editor) Discard() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editing = false
	e.form = models.UserPatch{}
}

// User returns the open user.
func (e *Editor) User() (models.User, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.user, e.open
}

func (e *Editor) Editing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editing
}
