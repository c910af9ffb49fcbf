package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/dmitrijs2005/userdir/internal/client/directorytest"
	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/session"
	"github.com/dmitrijs2005/userdir/internal/common"
)

func newTestClient(t *testing.T, srv *directorytest.Server, opts ...Option) *HTTPClient {
	t.Helper()
	c, err := NewHTTPClient(srv.URL, append([]Option{WithAPIKey(common.DefaultAPIKey)}, opts...)...)
	require.NoError(t, err)
	return c
}

func TestNewHTTPClient_RejectsBadURL(t *testing.T) {
	_, err := NewHTTPClient("ftp://example.com")
	require.Error(t, err)

	_, err = NewHTTPClient("://nope")
	require.Error(t, err)
}

func TestLogin(t *testing.T) {
	srv := directorytest.New()
	defer srv.Close()
	c := newTestClient(t, srv)

	token, err := c.Login(context.Background(), directorytest.Email, []byte(directorytest.Password))
	require.NoError(t, err)
	assert.Equal(t, directorytest.Token, token)

	h := srv.LastHeader()
	assert.Equal(t, common.DefaultAPIKey, h.Get(common.APIKeyHeaderName))
	assert.NotEmpty(t, h.Get(common.RequestIDHeaderName))
	assert.Equal(t, "application/json", h.Get("Content-Type"))
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := directorytest.New()
	defer srv.Close()
	c := newTestClient(t, srv)

	_, err := c.Login(context.Background(), directorytest.Email, []byte("wrong"))
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "user not found")
}

func TestLogin_EmptyToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c, err := NewHTTPClient(ts.URL)
	require.NoError(t, err)
	_, err = c.Login(context.Background(), "a@b.c", []byte("secret"))
	require.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestListUsers(t *testing.T) {
	srv := directorytest.New(directorytest.Seed(8)...)
	defer srv.Close()
	c := newTestClient(t, srv)

	p, err := c.ListUsers(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Number)
	assert.Equal(t, 2, p.TotalPages)
	assert.Equal(t, 8, p.Total)
	assert.Equal(t, directorytest.DefaultPerPage, p.PerPage)

	want := []models.User{
		{ID: 7, FirstName: "First7", LastName: "Last7", Email: "user7@example.com", AvatarURL: "https://example.com/img/7.jpg"},
		{ID: 8, FirstName: "First8", LastName: "Last8", Email: "user8@example.com", AvatarURL: "https://example.com/img/8.jpg"},
	}
	if diff := cmp.Diff(want, p.Items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestListUsers_EmptyDirectoryHasOnePage(t *testing.T) {
	srv := directorytest.New()
	defer srv.Close()
	c := newTestClient(t, srv)

	p, err := c.ListUsers(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, p.TotalPages)
	assert.Empty(t, p.Items)
}

func TestListUsers_InvalidPage(t *testing.T) {
	srv := directorytest.New()
	defer srv.Close()
	c := newTestClient(t, srv)

	_, err := c.ListUsers(context.Background(), 0)
	require.Error(t, err)
	assert.Equal(t, 0, srv.Calls("GET /users"))
}

func TestListUsers_ServerError(t *testing.T) {
	srv := directorytest.New(directorytest.Seed(3)...)
	defer srv.Close()
	srv.Fail("GET /users", http.StatusInternalServerError)
	c := newTestClient(t, srv)

	_, err := c.ListUsers(context.Background(), 1)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestGetUser(t *testing.T) {
	srv := directorytest.New(directorytest.Seed(3)...)
	defer srv.Close()
	c := newTestClient(t, srv)

	u, err := c.GetUser(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, u.ID)
	assert.Equal(t, "First2", u.FirstName)

	_, err = c.GetUser(context.Background(), 99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUser(t *testing.T) {
	srv := directorytest.New(directorytest.Seed(2)...)
	defer srv.Close()
	c := newTestClient(t, srv)

	patch := models.UserPatch{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", AvatarURL: "https://example.com/ada.png"}
	u, err := c.UpdateUser(context.Background(), 1, patch)
	require.NoError(t, err)
	assert.Equal(t, patch.Apply(models.User{ID: 1}), u)

	stored, ok := srv.User(1)
	require.True(t, ok)
	assert.Equal(t, "Ada", stored.FirstName)
}

func TestUpdateUser_AcceptsEmptyBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer ts.Close()

	c, err := NewHTTPClient(ts.URL)
	require.NoError(t, err)

	patch := models.UserPatch{FirstName: "A", LastName: "B", Email: "a@b.c"}
	u, err := c.UpdateUser(context.Background(), 5, patch)
	require.NoError(t, err)
	assert.Equal(t, 5, u.ID)
	assert.Equal(t, "A", u.FirstName)
}

func TestDeleteUser(t *testing.T) {
	srv := directorytest.New(directorytest.Seed(2)...)
	defer srv.Close()
	c := newTestClient(t, srv)

	require.NoError(t, c.DeleteUser(context.Background(), 2))
	_, ok := srv.User(2)
	assert.False(t, ok)
}

func TestDeleteUser_Non204IsUnexpected(t *testing.T) {
	srv := directorytest.New(directorytest.Seed(2)...)
	defer srv.Close()
	srv.Fail("DELETE /users/{id}", http.StatusOK)
	c := newTestClient(t, srv)

	err := c.DeleteUser(context.Background(), 2)
	require.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestDeleteUser_ClientErrorIsRejected(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusMethodNotAllowed, http.StatusConflict, http.StatusUnprocessableEntity} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			srv := directorytest.New(directorytest.Seed(2)...)
			defer srv.Close()
			srv.Fail("DELETE /users/{id}", status)
			c := newTestClient(t, srv)

			err := c.DeleteUser(context.Background(), 2)
			require.ErrorIs(t, err, ErrRejected)
			assert.False(t, errors.Is(err, ErrUnexpectedStatus))
			_, ok := srv.User(2)
			assert.True(t, ok)
		})
	}
}

func TestBearerTokenFromSession(t *testing.T) {
	srv := directorytest.New(directorytest.Seed(1)...)
	defer srv.Close()

	s := session.New()
	c := newTestClient(t, srv, WithSession(s))

	_, err := c.ListUsers(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, srv.LastHeader().Get(common.AuthorizationHeaderName))

	s.Start("a@b.c", "tok")
	_, err = c.ListUsers(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", srv.LastHeader().Get(common.AuthorizationHeaderName))
}

func TestRequestIDIsUnique(t *testing.T) {
	srv := directorytest.New(directorytest.Seed(1)...)
	defer srv.Close()
	c := newTestClient(t, srv)

	_, err := c.GetUser(context.Background(), 1)
	require.NoError(t, err)
	first := srv.LastHeader().Get(common.RequestIDHeaderName)

	_, err = c.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.NotEqual(t, first, srv.LastHeader().Get(common.RequestIDHeaderName))
}

func TestTimeoutIsUnavailable(t *testing.T) {
	srv := directorytest.New(directorytest.Seed(1)...)
	defer srv.Close()
	_ = srv.Hold("GET /users/{id}")

	c := newTestClient(t, srv, WithTimeout(50*time.Millisecond))
	_, err := c.GetUser(context.Background(), 1)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestCanceledContextIsNotUnavailable(t *testing.T) {
	srv := directorytest.New(directorytest.Seed(1)...)
	defer srv.Close()
	c := newTestClient(t, srv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.GetUser(ctx, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestMapStatus(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrRejected},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusInternalServerError, ErrUnavailable},
		{http.StatusBadGateway, ErrUnavailable},
		{http.StatusConflict, ErrRejected},
		{http.StatusTooManyRequests, ErrRejected},
		{http.StatusMultipleChoices, ErrUnexpectedStatus},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := mapStatus(tt.status, "boom")
			require.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "boom")
		})
	}
}

func TestSpansPerCall(t *testing.T) {
	srv := directorytest.New(directorytest.Seed(1)...)
	defer srv.Close()

	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	c := newTestClient(t, srv, WithTracerProvider(tp))

	_, err := c.GetUser(context.Background(), 1)
	require.NoError(t, err)
	_, err = c.GetUser(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFound)

	spans := rec.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "directory.get_user", spans[0].Name())
	assert.Equal(t, "Unset", spans[0].Status().Code.String())
	assert.Equal(t, "Error", spans[1].Status().Code.String())
}
