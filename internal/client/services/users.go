package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/userdir/internal/client/client"
	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/common"
)

// UserService exposes directory operations with failures already classified:
// every returned error matches one of common.ErrFetchFailure,
// common.ErrUpdateFailure or common.ErrDeleteFailure, joined with the cause.
// Cancellation is passed through unwrapped.
type UserService interface {
	ListUsers(ctx context.Context, page int) (models.Page, error)
	GetUser(ctx context.Context, id int) (models.User, error)
	UpdateUser(ctx context.Context, id int, patch models.UserPatch) (models.User, error)
	DeleteUser(ctx context.Context, id int) error
}

type userService struct {
	client client.Client
}

func NewUserService(c client.Client) UserService {
	return &userService{client: c}
}

func (s *userService) ListUsers(ctx context.Context, page int) (models.Page, error) {
	p, err := s.client.ListUsers(ctx, page)
	if err != nil {
		return models.Page{}, classify(common.ErrFetchFailure, err)
	}
	return p, nil
}

func (s *userService) GetUser(ctx context.Context, id int) (models.User, error) {
	u, err := s.client.GetUser(ctx, id)
	if err != nil {
		return models.User{}, classify(common.ErrFetchFailure, err)
	}
	return u, nil
}

func (s *userService) UpdateUser(ctx context.Context, id int, patch models.UserPatch) (models.User, error) {
	u, err := s.client.UpdateUser(ctx, id, patch)
	if err != nil {
		return models.User{}, classify(common.ErrUpdateFailure, err)
	}
	return u, nil
}

func (s *userService) DeleteUser(ctx context.Context, id int) error {
	if err := s.client.DeleteUser(ctx, id); err != nil {
		return classify(common.ErrDeleteFailure, err)
	}
	return nil
}

func classify(kind, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return errors.Join(kind, err)
}
