package userdetail

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/notify"
	"github.com/dmitrijs2005/userdir/internal/common"
)

type fakeService struct {
	user      models.User
	getErr    error
	updateErr error
	lastID    int
	lastPatch models.UserPatch
	updates   int
}

func (f *fakeService) GetUser(ctx context.Context, id int) (models.User, error) {
	if f.getErr != nil {
		return models.User{}, f.getErr
	}
	return f.user, nil
}

func (f *fakeService) UpdateUser(ctx context.Context, id int, patch models.UserPatch) (models.User, error) {
	f.updates++
	f.lastID, f.lastPatch = id, patch
	if f.updateErr != nil {
		return models.User{}, f.updateErr
	}
	return patch.Apply(models.User{ID: id}), nil
}

var janet = models.User{ID: 2, FirstName: "Janet", LastName: "Weaver", Email: "janet.weaver@reqres.in", AvatarURL: "https://reqres.in/img/faces/2-image.jpg"}

func openEditor(t *testing.T, svc *fakeService) (*Editor, *notify.Recorder) {
	t.Helper()
	rec := notify.NewRecorder()
	e := New(svc, WithNotifier(rec))
	require.NoError(t, e.Open(context.Background(), janet.ID))
	return e, rec
}

func TestOpen(t *testing.T) {
	e, rec := openEditor(t, &fakeService{user: janet})
	u, ok := e.User()
	require.True(t, ok)
	assert.Equal(t, janet, u)
	assert.False(t, e.Editing())
	assert.Empty(t, rec.Messages())
}

func TestOpen_Failure(t *testing.T) {
	rec := notify.NewRecorder()
	e := New(&fakeService{getErr: common.ErrFetchFailure}, WithNotifier(rec))

	require.ErrorIs(t, e.Open(context.Background(), 9), common.ErrFetchFailure)
	_, ok := e.User()
	assert.False(t, ok)
	assert.Equal(t, []string{notify.MsgFetchFailed}, rec.Messages())
	require.ErrorIs(t, e.Begin(), ErrNotOpen)
}

func TestEditFlow_Success(t *testing.T) {
	svc := &fakeService{user: janet}
	e, rec := openEditor(t, svc)

	require.ErrorIs(t, e.Set(models.ColumnEmail, "x"), ErrNotEditing)
	require.NoError(t, e.Begin())
	assert.Equal(t, models.PatchOf(janet), e.Form())

	require.NoError(t, e.Set(models.ColumnFirstName, "Jan"))
	require.NoError(t, e.Set(models.ColumnAvatar, "https://example.com/new.png"))

	u, err := e.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Jan", u.FirstName)
	assert.Equal(t, "Weaver", u.LastName)
	assert.Equal(t, "https://example.com/new.png", u.AvatarURL)
	assert.Equal(t, janet.ID, svc.lastID)
	assert.False(t, e.Editing())

	got, _ := e.User()
	assert.Equal(t, u, got)
	assert.Equal(t, []string{notify.MsgUpdated}, rec.Messages())
}

func TestEditFlow_FailureKeepsEditMode(t *testing.T) {
	svc := &fakeService{user: janet, updateErr: errors.Join(common.ErrUpdateFailure, errors.New("boom"))}
	e, rec := openEditor(t, svc)

	require.NoError(t, e.Begin())
	require.NoError(t, e.Set(models.ColumnLastName, "Smith"))

	_, err := e.Save(context.Background())
	require.ErrorIs(t, err, common.ErrUpdateFailure)
	assert.True(t, e.Editing())
	assert.Equal(t, "Smith", e.Form().LastName)

	u, _ := e.User()
	assert.Equal(t, janet, u)
	assert.Equal(t, []string{notify.MsgUpdateFailed}, rec.Messages())

	// retry without re-entering data
	svc.updateErr = nil
	u, err = e.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Smith", u.LastName)
	assert.Equal(t, 2, svc.updates)
}

func TestDiscard(t *testing.T) {
	svc := &fakeService{user: janet}
	e, _ := openEditor(t, svc)

	require.NoError(t, e.Begin())
	require.NoError(t, e.Set(models.ColumnFirstName, "Nope"))
	e.Discard()

	assert.False(t, e.Editing())
	u, _ := e.User()
	assert.Equal(t, janet, u)
	_, err := e.Save(context.Background())
	require.ErrorIs(t, err, ErrNotEditing)
	assert.Zero(t, svc.updates)
}

func TestSet_UnknownField(t *testing.T) {
	e, _ := openEditor(t, &fakeService{user: janet})
	require.NoError(t, e.Begin())
	require.ErrorIs(t, e.Set(models.Column("phone"), "1"), models.ErrUnknownColumn)
}
