// Package tui is the full-screen front end of the directory client. It
// drives the same userlist.Controller and userdetail.Editor as the REPL and
// renders through package render; it holds no list state of its own beyond
// the cursor and the input mode.
package tui
