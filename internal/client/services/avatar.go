package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/common"
	"github.com/dmitrijs2005/userdir/internal/filex"
	"github.com/dmitrijs2005/userdir/internal/netx"
)

// maxAvatarSize caps a single avatar download.
const maxAvatarSize = 5 << 20

var ErrNoAvatar = errors.New("user has no avatar")

// AvatarService saves user avatars to a local directory.
type AvatarService interface {
	// Download stores the avatar of u and returns the file path.
	Download(ctx context.Context, u models.User) (string, error)
}

type avatarService struct {
	dir  string
	http *http.Client
}

// NewAvatarService saves into dir, which is created on first use.
func NewAvatarService(dir string, c *http.Client) AvatarService {
	return &avatarService{dir: dir, http: c}
}

func (a *avatarService) Download(ctx context.Context, u models.User) (string, error) {
	if strings.TrimSpace(u.AvatarURL) == "" {
		return "", ErrNoAvatar
	}

	var buf bytes.Buffer
	ct, err := netx.Download(ctx, a.http, u.AvatarURL, &buf, maxAvatarSize)
	if err != nil {
		return "", classify(common.ErrFetchFailure, err)
	}

	dir, err := filex.EnsureDir(a.dir)
	if err != nil {
		return "", err
	}

	name := "avatar-" + strconv.Itoa(u.ID) + avatarExt(u.AvatarURL, ct)
	p, err := filex.WriteFile(dir, name, func(w io.Writer) error {
		_, err := w.Write(buf.Bytes())
		return err
	})
	if err != nil {
		return "", fmt.Errorf("save avatar: %w", err)
	}
	return p, nil
}

// avatarExt picks the file extension from the URL path, then from the
// content type, and falls back to ".img".
func avatarExt(rawURL, contentType string) string {
	if u, err := url.Parse(rawURL); err == nil {
		switch ext := strings.ToLower(path.Ext(u.Path)); ext {
		case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg":
			return ext
		}
	}
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mt {
		case "image/jpeg":
			return ".jpg"
		case "image/png":
			return ".png"
		case "image/gif":
			return ".gif"
		case "image/webp":
			return ".webp"
		}
	}
	return ".img"
}
