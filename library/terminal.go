package library

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// PasswordReader prints prompt and returns the password the user typed.
type PasswordReader func(prompt string) (string, error)

// TerminalPasswordReader reads passwords without echo from the terminal fd.
// It reports false when fd is not a terminal (piped input, tests), in which
// case the console keeps reading passwords as ordinary lines.
func TerminalPasswordReader(fd int, out io.Writer) (PasswordReader, bool) {
	if !term.IsTerminal(fd) {
		return nil, false
	}
	return func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		bytePassword, err := term.ReadPassword(fd)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		fmt.Fprintln(out) // echo was off, so the newline never printed
		return strings.TrimRight(string(bytePassword), "\r\n"), nil
	}, true
}
