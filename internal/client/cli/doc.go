// Package cli provides the interactive userdir command-line client.
//
// It wires configuration, the optional session store, the directory API
// client and the list/detail controllers, then runs a read–eval–print loop
// over them. Typical flow: restore or prompt for a login, show the first
// page, and execute user commands until exit.
//
// Key features:
//   - Login / Logout (session optionally kept between runs)
//   - Page through users (next, prev, page N, reload)
//   - Search, sort, column toggles and list/grid layout, all local
//   - Show / Edit a user, Delete with confirmation
//   - Download a user's avatar
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, Wire and runREPL for details.
package cli
