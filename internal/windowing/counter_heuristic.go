package windowing

import (
	"unicode/utf8"

	"github.com/petasbytes/claude-wrapper/memory"
)

// TokenCounter estimates input-token cost for messages.
type TokenCounter interface {
	CountMessage(m memory.Message) int
}

// HeuristicCounter is the default deterministic estimator: rune count of the
// content plus a fixed per-message overhead.
type HeuristicCounter struct{}

// Fixed per-message overhead for deterministic counts; changing this requires updating the guard test.
const messageOverhead = 4

func (HeuristicCounter) CountMessage(m memory.Message) int {
	return utf8.RuneCountInString(m.Content) + messageOverhead
}
