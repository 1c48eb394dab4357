package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/petasbytes/claude-wrapper/internal/metrics"
	"github.com/petasbytes/claude-wrapper/internal/telemetry"
	"github.com/petasbytes/claude-wrapper/internal/windowing"
	"github.com/petasbytes/claude-wrapper/memory"
)

// Options configures a Runner.
type Options struct {
	Model      anthropic.Model
	MaxTokens  int64
	WindowSize int

	// Out receives streamed text fragments as they arrive. Nil discards them.
	Out       io.Writer
	Telemetry *telemetry.Emitter
	Logger    *slog.Logger
}

type Runner struct {
	Client *anthropic.Client

	opts    Options
	counter windowing.TokenCounter
}

// Result is the outcome of a successful turn.
type Result struct {
	// Log is the input log plus the new user and assistant messages.
	Log []memory.Message
	// Text is the assistant reply.
	Text   string
	Window windowing.Stats
}

func New(client *anthropic.Client, opts Options) *Runner {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{Client: client, opts: opts, counter: windowing.HeuristicCounter{}}
}

// Send appends text as a user turn, sends the trailing window and appends the reply.
// With stream set, fragments are written to Options.Out as they arrive.
func (r *Runner) Send(ctx context.Context, log []memory.Message, text string, stream bool) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyMessage
	}
	ctx, turnID := telemetry.EnsureTurnID(ctx)
	r.opts.Telemetry.EmitLocalFeatures(ctx, text)

	updated := make([]memory.Message, len(log), len(log)+2)
	copy(updated, log)
	updated = append(updated, memory.UserMessage(text))

	window, stats := windowing.Tail(updated, r.opts.WindowSize, r.counter)
	r.opts.Telemetry.Emit("window_prepared", map[string]any{
		"turn_id":          turnID,
		"model":            string(r.opts.Model),
		"window_size":      stats.Size,
		"included":         stats.Included,
		"skipped":          stats.Skipped,
		"estimated_tokens": stats.EstimatedTokens,
	})
	r.opts.Logger.Debug("sending chat request",
		"turn_id", turnID, "model", r.opts.Model, "max_tokens", r.opts.MaxTokens,
		"window", stats.Included, "history", len(updated), "stream", stream)

	params := anthropic.MessageNewParams{
		Model:     r.opts.Model,
		MaxTokens: r.opts.MaxTokens,
		Messages:  toParams(window),
	}

	start := time.Now()
	var (
		reply string
		err   *RemoteCallError
	)
	if stream {
		reply, err = r.stream(ctx, params)
	} else {
		reply, err = r.complete(ctx, params)
	}
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		r.opts.Telemetry.Emit("chat_failed", map[string]any{
			"turn_id":     turnID,
			"duration_ms": elapsed,
			"stream":      stream,
			"status_code": err.StatusCode,
			"error_class": err.class(),
		})
		r.opts.Logger.Debug("chat request failed", "turn_id", turnID, "error", err)
		return Result{}, err
	}

	updated = append(updated, memory.AssistantMessage(reply))
	r.opts.Telemetry.Emit("chat_completed", map[string]any{
		"turn_id":     turnID,
		"duration_ms": elapsed,
		"stream":      stream,
		"assistant":   metrics.CountFeatures(reply).Fields(),
	})
	return Result{Log: updated, Text: reply, Window: stats}, nil
}

// complete makes a single blocking call and returns the first content block's text.
func (r *Runner) complete(ctx context.Context, params anthropic.MessageNewParams) (string, *RemoteCallError) {
	msg, err := r.Client.Messages.New(ctx, params)
	if err != nil {
		return "", remoteError(err)
	}
	if len(msg.Content) == 0 {
		return "", malformed("no content blocks")
	}
	tb, ok := msg.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", malformed(fmt.Sprintf("first content block is %q, not text", msg.Content[0].Type))
	}
	if tb.Text == "" {
		return "", malformed("empty text reply")
	}
	return tb.Text, nil
}

// stream consumes the event stream, forwarding each text delta of the first
// content block to Out immediately. The reply only counts once message_stop
// arrives.
func (r *Runner) stream(ctx context.Context, params anthropic.MessageNewParams) (string, *RemoteCallError) {
	s := r.Client.Messages.NewStreaming(ctx, params)
	defer s.Close()

	var (
		sb      strings.Builder
		started bool
		stopped bool
	)
	for s.Next() {
		switch ev := s.Current().AsAny().(type) {
		case anthropic.ContentBlockStartEvent:
			if ev.Index != 0 {
				continue
			}
			if ev.ContentBlock.Type != "text" {
				return "", malformed(fmt.Sprintf("first content block is %q, not text", ev.ContentBlock.Type))
			}
			started = true
		case anthropic.ContentBlockDeltaEvent:
			if ev.Index != 0 {
				continue
			}
			delta, ok := ev.Delta.AsAny().(anthropic.TextDelta)
			if !ok {
				continue
			}
			if _, err := io.WriteString(r.opts.Out, delta.Text); err != nil {
				r.opts.Logger.Warn("write stream fragment", "error", err)
			}
			sb.WriteString(delta.Text)
		case anthropic.MessageStopEvent:
			stopped = true
		}
	}
	if err := s.Err(); err != nil {
		return "", remoteError(err)
	}
	switch {
	case !stopped:
		return "", malformed("stream ended before message_stop")
	case !started:
		return "", malformed("no content blocks")
	case sb.Len() == 0:
		return "", malformed("empty text reply")
	}
	return sb.String(), nil
}

func toParams(msgs []memory.Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(msgs))
	for _, m := range msgs {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == memory.RoleAssistant {
			out = append(out, anthropic.NewAssistantMessage(block))
		} else {
			out = append(out, anthropic.NewUserMessage(block))
		}
	}
	return out
}
