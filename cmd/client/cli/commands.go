package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/userdir/internal/buildinfo"
	"github.com/dmitrijs2005/userdir/internal/client/cli"
	"github.com/dmitrijs2005/userdir/internal/client/config"
	"github.com/dmitrijs2005/userdir/internal/client/notify"
	"github.com/dmitrijs2005/userdir/internal/client/tui"
	"github.com/dmitrijs2005/userdir/internal/platform/otel"
)

const serviceName = "udir"

const shutdownTimeout = 5 * time.Second

var errNotLoggedIn = errors.New("not logged in")

// newRootCmd builds `udir`, which runs the REPL. Configuration flags are
// persistent so every subcommand accepts them.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "udir",
		Short:         "Browse and manage a remote user directory",
		Long:          "udir logs in to a user directory service and lets you page, search, sort, edit and delete its users.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, done, err := setup(cmd, os.Stderr, notify.NewWriter(os.Stdout))
			if err != nil {
				return err
			}
			defer done()

			cli.NewApp(deps).Run(cmd.Context())
			return nil
		},
	}
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(newTUICmd(), newVersionCmd())
	return root
}

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse the directory in a full-screen terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			notices := notify.NewRecorder()

			// Log lines would corrupt the screen; only a log file gets them.
			deps, done, err := setup(cmd, nil, notices)
			if err != nil {
				return err
			}
			defer done()

			if err := cli.NewApp(deps).Authenticate(ctx); err != nil {
				return errNotLoggedIn
			}
			return tui.Run(ctx, tui.New(ctx, deps.List, deps.Detail, notices))
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), serviceName, buildinfo.String())
			return err
		},
	}
}

// setup loads the configuration and builds everything a front end needs.
// The returned func releases it all.
func setup(cmd *cobra.Command, logOut io.Writer, n notify.Notifier) (*cli.Deps, func(), error) {
	ctx := cmd.Context()

	cfg, err := config.LoadConfig(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	logger, closeLog, err := cli.OpenLogger(cfg, logOut)
	if err != nil {
		return nil, nil, err
	}

	shutdown, err := otel.Setup(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		closeLog()
		return nil, nil, fmt.Errorf("tracing: %w", err)
	}

	deps, cleanup, err := cli.Wire(ctx, cfg, logger, n)
	if err != nil {
		_ = shutdown(context.Background())
		closeLog()
		return nil, nil, err
	}
	logger.Debug(ctx, "starting", "version", buildinfo.Version, "base_url", cfg.BaseURL)

	return deps, func() {
		cleanup()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			logger.Warn(sctx, "tracing shutdown", "error", err)
		}
		closeLog()
	}, nil
}
