package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/userdir/internal/client/client"
	"github.com/dmitrijs2005/userdir/internal/client/config"
	"github.com/dmitrijs2005/userdir/internal/client/notify"
	sessionrepo "github.com/dmitrijs2005/userdir/internal/client/repositories/session"
	"github.com/dmitrijs2005/userdir/internal/client/services"
	"github.com/dmitrijs2005/userdir/internal/client/session"
	"github.com/dmitrijs2005/userdir/internal/client/userdetail"
	"github.com/dmitrijs2005/userdir/internal/client/userlist"
	"github.com/dmitrijs2005/userdir/internal/filex"
	"github.com/dmitrijs2005/userdir/internal/logging"
)

// Deps is everything a front end needs. Both the REPL and the TUI are built
// from the same Deps.
type Deps struct {
	Config  *config.Config
	Logger  logging.Logger
	Session *session.Session

	Auth    services.AuthService
	Users   services.UserService
	Avatars services.AvatarService

	List   *userlist.Controller
	Detail *userdetail.Editor
}

// Wire builds Deps from cfg. Notices from the controllers go to n. The
// returned cleanup closes the session store, if one was opened.
func Wire(ctx context.Context, cfg *config.Config, logger logging.Logger, n notify.Notifier) (*Deps, func(), error) {
	cleanup := func() {}

	var store session.Store
	if cfg.SessionDB != "" {
		if _, err := filex.EnsureDir(filepath.Dir(cfg.SessionDB)); err != nil {
			return nil, cleanup, err
		}
		s, err := sessionrepo.Open(ctx, cfg.SessionDB)
		if err != nil {
			return nil, cleanup, err
		}
		store = s
		cleanup = func() {
			if err := s.Close(); err != nil {
				logger.Warn(ctx, "closing session db", "error", err)
			}
		}
	}

	sess := session.New()
	httpClient := &http.Client{Timeout: cfg.RequestTimeout.Duration}

	api, err := client.NewHTTPClient(cfg.BaseURL,
		client.WithHTTPClient(httpClient),
		client.WithSession(sess),
		client.WithAPIKey(cfg.APIKey),
		client.WithLogger(logger),
	)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}

	users := services.NewUserService(api)

	return &Deps{
		Config:  cfg,
		Logger:  logger,
		Session: sess,
		Auth:    services.NewAuthService(api, sess, store, logger),
		Users:   users,
		Avatars: services.NewAvatarService(cfg.DownloadDir, httpClient),
		List: userlist.New(users,
			userlist.WithNotifier(n),
			userlist.WithLogger(logger),
			userlist.WithLocale(cfg.Locale),
		),
		Detail: userdetail.New(users,
			userdetail.WithNotifier(n),
			userdetail.WithLogger(logger),
		),
	}, cleanup, nil
}

// OpenLogger builds the logger described by cfg. Logs go to cfg.LogFile
// when set, otherwise to fallback; a nil fallback discards them.
func OpenLogger(cfg *config.Config, fallback io.Writer) (logging.Logger, func() error, error) {
	opts := logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}
	noop := func() error { return nil }

	if cfg.LogFile == "" {
		if fallback == nil {
			return logging.Discard(), noop, nil
		}
		l, err := logging.New(fallback, opts)
		if err != nil {
			return nil, noop, err
		}
		return l, noop, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, noop, fmt.Errorf("open log file: %w", err)
	}
	l, err := logging.New(f, opts)
	if err != nil {
		f.Close()
		return nil, noop, err
	}
	return l, f.Close, nil
}
