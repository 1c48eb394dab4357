package cli

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

const interactivePrompt = "Enter your message (Ctrl+D to send):"

// stdinIsTerminal is swapped in tests.
var stdinIsTerminal = isTerminal

// readMessage joins args when present; otherwise it reads stdin to EOF,
// prompting first when stdin is a terminal.
func readMessage(args []string, in io.Reader, out io.Writer) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if stdinIsTerminal(in) {
		fmt.Fprintln(out, interactivePrompt)
	}
	b, err := io.ReadAll(in)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
