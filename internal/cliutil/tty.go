// Package cliutil holds helpers shared by the command line tools.
package cliutil

import "golang.org/x/term"

func IsTty(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// IsTerminal reports whether v is a file attached to a terminal. Values
// without a file descriptor, such as in-memory buffers, never are.
func IsTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return IsTty(f.Fd())
}
