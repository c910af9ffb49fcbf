package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	List(ctx context.Context) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Page(ctx context.Context, arg string) error
	Reload(ctx context.Context) error

	Search(ctx context.Context, query string) error
	Sort(ctx context.Context, args []string) error
	Order(ctx context.Context) error
	Columns(ctx context.Context) error
	Toggle(ctx context.Context, column string) error
	View(ctx context.Context, mode string) error

	Show(ctx context.Context, id string) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Avatar(ctx context.Context, id string) error
}

const (
	helpLoggedOut = "Available commands: login, exit"
	helpLoggedIn  = `Available commands:
  (l)ist                 show the current page
  (n)ext, (p)rev         move between pages
  page N                 jump to page N
  reload                 fetch the current page again
  search [text]          filter the page (no text clears)
  sort <field> [order]   sort by first_name, last_name or email; asc or desc
  order                  flip the sort order
  columns                list columns and their visibility
  toggle <column>        show or hide avatar, first_name, last_name or email
  view [list|grid]       switch the layout
  show <id>              show one user
  edit <id>              edit one user
  delete <id>            delete one user
  avatar <id>            save the avatar into the download directory
  logout, exit`
)

// runREPL starts a simple read–eval–print loop for the userdir CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Commands that prompt for more input (login, edit, delete) read from the
// same reader, so scripted input works line by line.
//
// Errors returned by command handlers are ignored here; handlers report
// their own failures.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		status := statusFn()
		if status != "" {
			status = " " + status
		}
		printlnFn(fmt.Sprintf("udir%s> ", status))

		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])
		args := parts[1:]
		rest := strings.TrimSpace(line[len(parts[0]):])

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		case "login":
			_ = a.Login(ctx)
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !a.isLoggedIn() {
			if isCommand(cmd) {
				printlnFn("Please log in first.")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "logout":
			_ = a.Logout(ctx)
		case "l", "list":
			_ = a.List(ctx)
		case "n", "next":
			_ = a.Next(ctx)
		case "p", "prev":
			_ = a.Prev(ctx)
		case "page":
			if len(args) != 1 {
				printlnFn("Usage: page N")
				continue
			}
			_ = a.Page(ctx, args[0])
		case "reload":
			_ = a.Reload(ctx)
		case "search":
			_ = a.Search(ctx, rest)
		case "sort":
			if len(args) < 1 || len(args) > 2 {
				printlnFn("Usage: sort <field> [asc|desc]")
				continue
			}
			_ = a.Sort(ctx, args)
		case "order":
			_ = a.Order(ctx)
		case "columns":
			_ = a.Columns(ctx)
		case "toggle":
			if len(args) != 1 {
				printlnFn("Usage: toggle <column>")
				continue
			}
			_ = a.Toggle(ctx, args[0])
		case "view":
			if len(args) > 1 {
				printlnFn("Usage: view [list|grid]")
				continue
			}
			_ = a.View(ctx, strings.Join(args, ""))
		case "show", "edit", "delete", "avatar":
			if len(args) != 1 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			switch cmd {
			case "show":
				_ = a.Show(ctx, args[0])
			case "edit":
				_ = a.Edit(ctx, args[0])
			case "delete":
				_ = a.Delete(ctx, args[0])
			case "avatar":
				_ = a.Avatar(ctx, args[0])
			}
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

var commands = map[string]bool{
	"logout": true, "l": true, "list": true, "n": true, "next": true, "p": true, "prev": true,
	"page": true, "reload": true, "search": true, "sort": true, "order": true, "columns": true,
	"toggle": true, "view": true, "show": true, "edit": true, "delete": true, "avatar": true,
}

func isCommand(cmd string) bool {
	return commands[cmd]
}
