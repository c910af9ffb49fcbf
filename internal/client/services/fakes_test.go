package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/session"
)

// fakeClient implements client.Client for unit tests.
type fakeClient struct {
	mu sync.Mutex

	LoginToken string
	LoginErr   error
	LoginCalls int

	Page    models.Page
	ListErr error

	User   models.User
	GetErr error

	UpdateRet models.User
	UpdateErr error
	LastPatch models.UserPatch

	DeleteErr    error
	LastDeleteID int
}

func (f *fakeClient) Login(ctx context.Context, email string, password []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls++
	return f.LoginToken, f.LoginErr
}

func (f *fakeClient) ListUsers(ctx context.Context, page int) (models.Page, error) {
	return f.Page, f.ListErr
}

func (f *fakeClient) GetUser(ctx context.Context, id int) (models.User, error) {
	return f.User, f.GetErr
}

func (f *fakeClient) UpdateUser(ctx context.Context, id int, patch models.UserPatch) (models.User, error) {
	f.LastPatch = patch
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) DeleteUser(ctx context.Context, id int) error {
	f.LastDeleteID = id
	return f.DeleteErr
}

// memStore implements session.Store in memory.
type memStore struct {
	saved    *session.State
	SaveErr  error
	LoadErr  error
	ClearErr error
}

func (m *memStore) Save(ctx context.Context, s session.State) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.saved = &s
	return nil
}

func (m *memStore) Load(ctx context.Context) (session.State, error) {
	if m.LoadErr != nil {
		return session.State{}, m.LoadErr
	}
	if m.saved == nil {
		return session.State{}, session.ErrNoSession
	}
	return *m.saved, nil
}

func (m *memStore) Clear(ctx context.Context) error {
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.saved = nil
	return nil
}
