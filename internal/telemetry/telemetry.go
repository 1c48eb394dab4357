// Package telemetry writes optional JSONL events describing each chat turn.
//
// Events never carry message text; only sizes, counts and timings.
package telemetry

import (
	"encoding/json"
	"io"
	"log/slog"
	"maps"
	"path/filepath"
	"time"

	"github.com/petasbytes/claude-wrapper/internal/fsops"
)

// EventsFile is the JSONL file name inside the emitter directory.
const EventsFile = "events.jsonl"

// Emitter appends events to Dir/events.jsonl when Enabled.
// A nil *Emitter is valid and emits nothing.
type Emitter struct {
	Dir     string
	Enabled bool
	Logger  *slog.Logger
}

// New returns an emitter writing under dir.
func New(dir string, enabled bool, logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Emitter{Dir: dir, Enabled: enabled, Logger: logger}
}

// Path returns the events file path.
func (e *Emitter) Path() string { return filepath.Join(e.Dir, EventsFile) }

// Emit writes a single JSON line augmented with RFC3339Nano time and the event name.
// Failures are logged and otherwise ignored.
func (e *Emitter) Emit(name string, fields map[string]any) {
	if e == nil || !e.Enabled {
		return
	}

	// Shallow copy so callers' maps aren't mutated.
	m := make(map[string]any, len(fields)+2)
	maps.Copy(m, fields)
	m["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	m["event"] = name

	b, err := json.Marshal(m)
	if err != nil {
		e.logf("telemetry: marshal", err)
		return
	}
	if err := fsops.AppendLine(e.Path(), b); err != nil {
		e.logf("telemetry: append", err)
	}
}

func (e *Emitter) logf(msg string, err error) {
	if e.Logger != nil {
		e.Logger.Warn(msg, "event_file", e.Path(), "error", err)
	}
}
