package client

import (
	"context"

	"github.com/dmitrijs2005/userdir/internal/client/models"
)

// Client is the contract of the remote directory service.
type Client interface {
	Login(ctx context.Context, email string, password []byte) (string, error)
	ListUsers(ctx context.Context, page int) (models.Page, error)
	GetUser(ctx context.Context, id int) (models.User, error)
	UpdateUser(ctx context.Context, id int, patch models.UserPatch) (models.User, error)
	DeleteUser(ctx context.Context, id int) error
}
