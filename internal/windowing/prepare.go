// Package windowing selects the slice of the conversation log sent with each
// request.
package windowing

import "github.com/petasbytes/claude-wrapper/memory"

// DefaultSize is the number of trailing messages sent when no size is configured.
const DefaultSize = 10

// Stats summarizes the result of window preparation.
//
// Fields:
// - Size: the window size used.
// - Included: messages in the window.
// - Skipped: older messages kept on disk but not sent.
// - EstimatedTokens: counter estimate for the included messages.
type Stats struct {
	Size            int
	Included        int
	Skipped         int
	EstimatedTokens int
}

// Tail returns the trailing size messages of msgs (oldest→newest) as a
// subslice, so the newest message is always last. size <= 0 uses DefaultSize.
// A nil counter skips estimation.
func Tail(msgs []memory.Message, size int, c TokenCounter) ([]memory.Message, Stats) {
	if size <= 0 {
		size = DefaultSize
	}
	if len(msgs) == 0 {
		return nil, Stats{Size: size}
	}

	start := 0
	if len(msgs) > size {
		start = len(msgs) - size
	}
	window := msgs[start:]

	stats := Stats{
		Size:     size,
		Included: len(window),
		Skipped:  start,
	}
	if c != nil {
		for _, m := range window {
			stats.EstimatedTokens += c.CountMessage(m)
		}
	}
	vlogf("size=%d included=%d skipped=%d est=%d", stats.Size, stats.Included, stats.Skipped, stats.EstimatedTokens)
	return window, stats
}
