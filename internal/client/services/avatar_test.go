package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/common"
)

func TestAvatarDownload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.jpg" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer ts.Close()

	dir := filepath.Join(t.TempDir(), "avatars")
	svc := NewAvatarService(dir, ts.Client())

	p, err := svc.Download(context.Background(), models.User{ID: 7, AvatarURL: ts.URL + "/faces/7-image.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "avatar-7.jpg", filepath.Base(p))
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(b))

	p, err = svc.Download(context.Background(), models.User{ID: 8, AvatarURL: ts.URL + "/faces/8"})
	require.NoError(t, err)
	assert.Equal(t, "avatar-8.png", filepath.Base(p))

	_, err = svc.Download(context.Background(), models.User{ID: 9, AvatarURL: ts.URL + "/missing.jpg"})
	require.ErrorIs(t, err, common.ErrFetchFailure)

	_, err = svc.Download(context.Background(), models.User{ID: 10})
	require.ErrorIs(t, err, ErrNoAvatar)
}

func TestAvatarExt(t *testing.T) {
	assert.Equal(t, ".jpeg", avatarExt("https://x/a.JPEG", ""))
	assert.Equal(t, ".webp", avatarExt("https://x/a", "image/webp; charset=binary"))
	assert.Equal(t, ".img", avatarExt("https://x/a", "application/octet-stream"))
	assert.Equal(t, ".img", avatarExt("::", ""))
}
