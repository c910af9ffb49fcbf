package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) record(name string, args ...string) error {
	f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) List(ctx context.Context) error   { return f.record("list") }
func (f *fakeExec) Next(ctx context.Context) error   { return f.record("next") }
func (f *fakeExec) Prev(ctx context.Context) error   { return f.record("prev") }
func (f *fakeExec) Reload(ctx context.Context) error { return f.record("reload") }
func (f *fakeExec) Page(ctx context.Context, arg string) error {
	return f.record("page", arg)
}
func (f *fakeExec) Search(ctx context.Context, q string) error {
	return f.record("search", fmt.Sprintf("%q", q))
}
func (f *fakeExec) Sort(ctx context.Context, args []string) error {
	return f.record("sort", args...)
}
func (f *fakeExec) Order(ctx context.Context) error   { return f.record("order") }
func (f *fakeExec) Columns(ctx context.Context) error { return f.record("columns") }
func (f *fakeExec) Toggle(ctx context.Context, col string) error {
	return f.record("toggle", col)
}
func (f *fakeExec) View(ctx context.Context, mode string) error {
	return f.record("view", mode)
}
func (f *fakeExec) Show(ctx context.Context, id string) error   { return f.record("show", id) }
func (f *fakeExec) Edit(ctx context.Context, id string) error   { return f.record("edit", id) }
func (f *fakeExec) Delete(ctx context.Context, id string) error { return f.record("delete", id) }
func (f *fakeExec) Avatar(ctx context.Context, id string) error { return f.record("avatar", id) }

// capturePrintln collects everything the REPL prints.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func runScript(exec execIface, lines ...string) {
	reader := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "status" }, reader)
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{}
	runScript(exec,
		"help",
		"login",
		"help",
		"l",
		"n",
		"p",
		"page 3",
		"reload",
		"search  Ann  Lee ",
		"sort email desc",
		"order",
		"columns",
		"toggle avatar",
		"view",
		"view grid",
		"show 7",
		"edit 7",
		"delete 7",
		"avatar 7",
		"logout",
		"exit",
	)

	want := []string{
		"login", "list", "next", "prev", "page 3", "reload", `search "Ann  Lee"`,
		"sort email desc", "order", "columns", "toggle avatar", "view", "view grid",
		"show 7", "edit 7", "delete 7", "avatar 7", "logout",
	}
	require.Equal(t, want, exec.calls)
}

func TestRunREPL_LoggedOutOnlyAllowsLogin(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{}
	runScript(exec, "list", "delete 1", "foobar", "help", "quit")

	require.Empty(t, exec.calls)
	joined := strings.Join(*out, "")
	require.Contains(t, joined, "Please log in first.")
	require.Contains(t, joined, "Unknown command: foobar")
	require.Contains(t, joined, helpLoggedOut)
	require.Contains(t, joined, "Bye!")
}

func TestRunREPL_UsageErrors(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{loggedIn: true}
	runScript(exec, "page", "sort", "toggle", "show", "delete 1 2", "view a b", "exit")

	require.Empty(t, exec.calls)
	joined := strings.Join(*out, "")
	for _, usage := range []string{
		"Usage: page N",
		"Usage: sort <field> [asc|desc]",
		"Usage: toggle <column>",
		"Usage: show <id>",
		"Usage: delete <id>",
		"Usage: view [list|grid]",
	} {
		require.Contains(t, joined, usage)
	}
}

func TestRunREPL_PromptShowsStatusAndStopsAtEOF(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{loggedIn: true}
	runScript(exec, "", "list")

	require.Equal(t, []string{"list"}, exec.calls)
	require.Equal(t, "udir status> \n", (*out)[0])
}

func TestRunREPL_StopsWhenContextDone(t *testing.T) {
	capturePrintln(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec := &fakeExec{loggedIn: true}
	reader := bufio.NewReader(strings.NewReader("list\n"))
	runREPL(ctx, exec, func() string { return "" }, reader)

	require.Empty(t, exec.calls)
}
