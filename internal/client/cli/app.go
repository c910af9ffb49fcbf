package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/userdir/internal/client/render"
)

type App struct {
	deps     *Deps
	renderer render.Renderer
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp returns a REPL over deps reading os.Stdin and writing os.Stdout.
func NewApp(deps *Deps) *App {
	return &App{
		deps:     deps,
		renderer: render.New(terminalWidth()),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
}

// Run restores a saved session (or asks for a login), shows the first page
// and runs the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "userdir CLI (type 'help' for commands)")

	if a.restore(ctx) {
		fmt.Fprintf(a.out, "Welcome back, %s\n", a.deps.Session.Email())
		_ = a.List(ctx)
	} else {
		_ = a.Login(ctx)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.deps.Session.Active()
}

// getStatus renders the prompt status, e.g. "(eve@reqres.in · page 1/2)".
func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	s := a.deps.List.State()
	if !s.Loaded {
		return fmt.Sprintf("(%s)", a.deps.Session.Email())
	}
	return fmt.Sprintf("(%s · page %d/%d)", a.deps.Session.Email(), s.Page, s.TotalPages)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
