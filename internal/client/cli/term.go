package cli

import (
	"os"

	"golang.org/x/term"
)

const fallbackWidth = 100

// terminalWidth is a test seam for the stdout width.
var terminalWidth = func() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallbackWidth
	}
	return w
}
