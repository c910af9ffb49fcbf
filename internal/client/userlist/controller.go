package userlist

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/userdir/internal/client/client"
	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/notify"
	"github.com/dmitrijs2005/userdir/internal/logging"
)

// Service is the part of services.UserService the list needs.
type Service interface {
	ListUsers(ctx context.Context, page int) (models.Page, error)
	DeleteUser(ctx context.Context, id int) error
}

type DeletePhase int

const (
	DeleteIdle DeletePhase = iota
	DeletePending
	DeleteDeleting
)

func (p DeletePhase) String() string {
	switch p {
	case DeletePending:
		return "pending"
	case DeleteDeleting:
		return "deleting"
	default:
		return "idle"
	}
}

// DeleteState is the delete workflow position. ID is meaningful only
// outside DeleteIdle.
type DeleteState struct {
	Phase DeletePhase
	ID    int
}

// Snapshot is a consistent copy of the controller state. Callers own it.
type Snapshot struct {
	// Page is 0 until the first page has loaded.
	Page       int
	TotalPages int
	Loaded     bool
	Loading    bool

	// Items is the authoritative list in server order.
	Items []models.User
	// Visible is Items filtered and sorted by the view settings.
	Visible []models.User

	Search    string
	SortField models.SortField
	SortOrder models.SortOrder
	Columns   models.ColumnSet
	ViewMode  models.ViewMode

	Delete  DeleteState
	HasPrev bool
	HasNext bool
}

// Controller is safe for concurrent use.
type Controller struct {
	svc       Service
	notifier  notify.Notifier
	logger    logging.Logger
	projector Projector

	mu         sync.Mutex
	page       models.Page
	loaded     bool
	loading    bool
	generation uint64

	search    string
	sortField models.SortField
	sortOrder models.SortOrder
	columns   models.ColumnSet
	viewMode  models.ViewMode

	del DeleteState
}

type Option func(*Controller)

func WithNotifier(n notify.Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithLocale sets the collation locale of the projection (BCP 47, e.g. "de").
func WithLocale(locale string) Option {
	return func(c *Controller) { c.projector = Projector{Locale: locale} }
}

// New returns a controller with default view settings: sorted by first name
// ascending, every column visible, list layout, nothing loaded.
func New(svc Service, opts ...Option) *Controller {
	c := &Controller{
		svc:       svc,
		notifier:  notify.Discard,
		logger:    logging.Discard(),
		sortField: models.SortByFirstName,
		sortOrder: models.Asc,
		columns:   models.AllColumns(),
		viewMode:  models.ViewList,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadPage fetches page n and makes it the authoritative list. On failure
// the previous page stays and a notice is sent. When another LoadPage
// starts before this one returns, this result is dropped and ErrSuperseded
// is returned.
func (c *Controller) LoadPage(ctx context.Context, n int) error {
	c.mu.Lock()
	if n < 1 || (c.loaded && n > c.page.TotalPages) {
		c.mu.Unlock()
		return ErrPageOutOfRange
	}
	c.generation++
	gen := c.generation
	c.loading = true
	c.mu.Unlock()

	c.logger.Debug(ctx, "loading page", "page", n)
	p, err := c.svc.ListUsers(ctx, n)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug(ctx, "dropping superseded page", "page", n)
		return ErrSuperseded
	}
	c.loading = false

	if err != nil {
		if !errors.Is(err, context.Canceled) {
			c.logger.Warn(ctx, "page load failed", "page", n, "error", err)
			notify.Failure(c.notifier, notify.MsgLoadFailed)
		}
		return err
	}

	p.Number = n
	if p.TotalPages < 1 {
		p.TotalPages = 1
	}
	p.Items = cloneUsers(p.Items)
	c.page = p
	c.loaded = true
	return nil
}

// NextPage loads the page after the current one.
func (c *Controller) NextPage(ctx context.Context) error {
	c.mu.Lock()
	ok, n := c.hasNextLocked(), c.page.Number+1
	c.mu.Unlock()
	if !ok {
		return ErrPageOutOfRange
	}
	return c.LoadPage(ctx, n)
}

// PrevPage loads the page before the current one.
func (c *Controller) PrevPage(ctx context.Context) error {
	c.mu.Lock()
	ok, n := c.hasPrevLocked(), c.page.Number-1
	c.mu.Unlock()
	if !ok {
		return ErrPageOutOfRange
	}
	return c.LoadPage(ctx, n)
}

// Reload fetches the current page again, or the first page when nothing
// has loaded yet.
func (c *Controller) Reload(ctx context.Context) error {
	c.mu.Lock()
	n := c.page.Number
	c.mu.Unlock()
	if n < 1 {
		n = 1
	}
	return c.LoadPage(ctx, n)
}

func (c *Controller) HasPrev() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasPrevLocked()
}

func (c *Controller) HasNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasNextLocked()
}

func (c *Controller) hasPrevLocked() bool { return c.loaded && c.page.Number > 1 }

func (c *Controller) hasNextLocked() bool { return c.loaded && c.page.Number < c.page.TotalPages }

// ClampPage brings n into the range of pages known to exist.
func (c *Controller) ClampPage(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded && n > c.page.TotalPages {
		n = c.page.TotalPages
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (c *Controller) SetSearch(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = q
}

func (c *Controller) SetSortField(f models.SortField) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortField = f
}

func (c *Controller) SetSortOrder(o models.SortOrder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortOrder = o
}

// ToggleSortOrder flips the order and returns the new one.
func (c *Controller) ToggleSortOrder() models.SortOrder {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortOrder = c.sortOrder.Toggle()
	return c.sortOrder
}

// ToggleColumn flips the visibility of col and reports whether it is now
// visible. Unknown columns are ignored.
func (c *Controller) ToggleColumn(col models.Column) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !col.Valid() {
		return false
	}
	c.columns[col] = !c.columns[col]
	return c.columns[col]
}

func (c *Controller) SetViewMode(m models.ViewMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewMode = m
}

func (c *Controller) ToggleViewMode() models.ViewMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewMode = c.viewMode.Toggle()
	return c.viewMode
}

// User returns the user with id from the current page.
func (c *Controller) User(id int) (models.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, u := range c.page.Items {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// Replace swaps in u for the item with the same id on the current page. It
// reports false when that id is not loaded.
func (c *Controller) Replace(u models.User) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.page.Items {
		if c.page.Items[i].ID == u.ID {
			c.page.Items[i] = u
			return true
		}
	}
	return false
}

// RequestDelete selects id for deletion, replacing any earlier selection.
func (c *Controller) RequestDelete(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.del.Phase == DeleteDeleting {
		return ErrDeleteInProgress
	}
	if !c.containsLocked(id) {
		return ErrUnknownUser
	}
	c.del = DeleteState{Phase: DeletePending, ID: id}
	return nil
}

// CancelDelete drops a pending selection. It is a no-op when idle.
func (c *Controller) CancelDelete() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.del.Phase == DeleteDeleting {
		return ErrDeleteInProgress
	}
	c.del = DeleteState{}
	return nil
}

// ConfirmDelete deletes the pending user. On success the user is removed
// from the current page without a refetch. The workflow returns to idle
// whatever the outcome.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	switch c.del.Phase {
	case DeleteIdle:
		c.mu.Unlock()
		return ErrNoPendingDelete
	case DeleteDeleting:
		c.mu.Unlock()
		return ErrDeleteInProgress
	}
	id := c.del.ID
	c.del.Phase = DeleteDeleting
	c.mu.Unlock()

	c.logger.Debug(ctx, "deleting user", "id", id)
	err := c.svc.DeleteUser(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.del = DeleteState{}

	switch {
	case err == nil:
		c.removeLocked(id)
		notify.Success(c.notifier, notify.MsgDeleted)
	case errors.Is(err, context.Canceled):
	case errors.Is(err, client.ErrUnexpectedStatus):
		c.logger.Warn(ctx, "delete returned unexpected status", "id", id, "error", err)
		notify.Failure(c.notifier, notify.MsgUnexpectedDelete)
	default:
		c.logger.Warn(ctx, "delete failed", "id", id, "error", err)
		notify.Failure(c.notifier, notify.MsgDeleteFailed)
	}
	return err
}

func (c *Controller) DeleteState() DeleteState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.del
}

// State returns a snapshot including the current projection.
func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := cloneUsers(c.page.Items)
	return Snapshot{
		Page:       c.page.Number,
		TotalPages: c.page.TotalPages,
		Loaded:     c.loaded,
		Loading:    c.loading,
		Items:      items,
		Visible:    c.projector.Project(items, c.search, c.sortField, c.sortOrder),
		Search:     c.search,
		SortField:  c.sortField,
		SortOrder:  c.sortOrder,
		Columns:    c.columns.Clone(),
		ViewMode:   c.viewMode,
		Delete:     c.del,
		HasPrev:    c.hasPrevLocked(),
		HasNext:    c.hasNextLocked(),
	}
}

func (c *Controller) containsLocked(id int) bool {
	for _, u := range c.page.Items {
		if u.ID == id {
			return true
		}
	}
	return false
}

func (c *Controller) removeLocked(id int) {
	items := make([]models.User, 0, len(c.page.Items))
	for _, u := range c.page.Items {
		if u.ID != id {
			items = append(items, u)
		}
	}
	c.page.Items = items
}

func cloneUsers(in []models.User) []models.User {
	if in == nil {
		return []models.User{}
	}
	out := make([]models.User, len(in))
	copy(out, in)
	return out
}
