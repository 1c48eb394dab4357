package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/petasbytes/claude-wrapper/memory"
)

const (
	resumeCount   = 2
	previewLength = 100
)

// printResume shows the tail of the stored conversation without contacting the API.
func printResume(w io.Writer, msgs []memory.Message) {
	if len(msgs) == 0 {
		fmt.Fprintln(w, "No previous conversation found")
		return
	}
	fmt.Fprintln(w, "Resuming previous conversation...")

	// Styles degrade to plain text when w is not a terminal.
	r := lipgloss.NewRenderer(w)
	you := r.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	claude := r.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))

	for _, m := range msgs[max(0, len(msgs)-resumeCount):] {
		label := claude.Render("Claude")
		if m.Role == memory.RoleUser {
			label = you.Render("You")
		}
		fmt.Fprintf(w, "%s: %s\n", label, preview(m.Content, previewLength))
	}
}

// preview returns the first n runes of s, marked with "..." when cut.
func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
