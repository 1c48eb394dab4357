// Package cli wires flags, configuration, the session store and the chat
// runner into the claude command.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"

	"github.com/petasbytes/claude-wrapper/internal/config"
	"github.com/petasbytes/claude-wrapper/internal/logging"
	"github.com/petasbytes/claude-wrapper/internal/provider"
	"github.com/petasbytes/claude-wrapper/internal/runner"
	"github.com/petasbytes/claude-wrapper/internal/telemetry"
	"github.com/petasbytes/claude-wrapper/internal/windowing"
	"github.com/petasbytes/claude-wrapper/memory"
)

// Version is printed by --version.
const Version = "Claude CLI Wrapper v1.0.0"

// Env is the process surface the command runs against.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string

	// ClientOptions are applied after the defaults when building the API client.
	ClientOptions []option.RequestOption
}

// Run executes the command with args and returns the process exit code.
func Run(ctx context.Context, args []string, env Env) int {
	env = env.withDefaults()
	cmd := NewRootCommand(env)
	// cobra falls back to os.Args when given nil.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type rootOptions struct {
	clear  bool
	resume bool
	stream bool
}

// NewRootCommand builds the claude command.
func NewRootCommand(env Env) *cobra.Command {
	env = env.withDefaults()
	var opts rootOptions

	cmd := &cobra.Command{
		Use:           "claude [options] [message]",
		Short:         "Send a message to Claude and keep the conversation on disk",
		Long:          longHelp,
		Example:       examples,
		Version:       "1.0.0",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), env, opts, args)
		},
	}
	cmd.SetVersionTemplate(Version + "\n")
	cmd.SetIn(env.Stdin)
	cmd.SetOut(env.Stdout)
	cmd.SetErr(env.Stderr)

	f := cmd.Flags()
	f.BoolVar(&opts.stream, "stream", false, "Enable streaming mode")
	f.BoolVar(&opts.resume, "continue", false, "Resume previous conversation")
	f.BoolVar(&opts.resume, "resume", false, "Alias for --continue")
	f.BoolVar(&opts.clear, "clear", false, "Clear conversation history")
	return cmd
}

func run(ctx context.Context, env Env, opts rootOptions, args []string) error {
	cfg, err := config.Load(env.Getenv)
	if err != nil {
		return err
	}
	logger := logging.New(env.Stderr, cfg.LogLevel)
	if cfg.LogLevel <= slog.LevelDebug {
		windowing.SetVerbose(env.Stderr)
		defer windowing.SetVerbose(nil)
	}
	store := memory.NewStore(cfg.SessionDir,
		memory.WithMaxMessages(cfg.MaxStoredMessages),
		memory.WithLogger(logger),
	)

	switch {
	case opts.clear:
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(env.Stdout, "Session cleared")
		return nil
	case opts.resume:
		printResume(env.Stdout, store.Load())
		return nil
	}
	return chat(ctx, env, cfg, store, logger, args, opts.stream)
}

func chat(ctx context.Context, env Env, cfg config.Config, store *memory.Store, logger *slog.Logger, args []string, stream bool) error {
	apiKey, err := cfg.Credential()
	if err != nil {
		return err
	}
	history := store.Load()

	message, err := readMessage(args, env.Stdin, env.Stdout)
	if err != nil {
		return fmt.Errorf("read message: %w", err)
	}
	if strings.TrimSpace(message) == "" {
		logger.Debug("empty message; nothing to send")
		return nil
	}

	client := provider.NewAnthropicClient(apiKey, env.ClientOptions...)
	r := runner.New(client, runner.Options{
		Model:      anthropic.Model(cfg.Model),
		MaxTokens:  cfg.MaxTokens,
		WindowSize: cfg.WindowSize,
		Out:        env.Stdout,
		Telemetry:  telemetry.New(cfg.ArtifactsDir, cfg.ObserveJSON, logger),
		Logger:     logger,
	})

	res, err := r.Send(ctx, history, message, stream)
	if err != nil {
		return err
	}
	// Streamed text is already on screen; finish its line.
	if stream {
		fmt.Fprintln(env.Stdout)
	} else {
		fmt.Fprintln(env.Stdout, res.Text)
	}
	return store.Save(res.Log)
}

func (e Env) withDefaults() Env {
	if e.Stdin == nil {
		e.Stdin = strings.NewReader("")
	}
	if e.Stdout == nil {
		e.Stdout = io.Discard
	}
	if e.Stderr == nil {
		e.Stderr = io.Discard
	}
	if e.Getenv == nil {
		e.Getenv = func(string) string { return "" }
	}
	return e
}

const longHelp = `Claude CLI Wrapper

Sends a message to the Anthropic Messages API and keeps the conversation in
<CLAUDE_SESSION_DIR>/current_session.json. Only the most recent messages are
sent with each request; the full history stays on disk.

The message is taken from the arguments, from piped standard input, or from
an interactive prompt (finish with Ctrl+D). Use -- before a message that
starts with a dash.

Environment Variables:
  CLAUDE_API_KEY               Your Anthropic API key (fallback: ANTHROPIC_API_KEY)
  CLAUDE_MODEL                 Model to use (default: ` + config.DefaultModel + `)
  MAX_TOKENS                   Maximum output tokens (default: 4096)
  CLAUDE_SESSION_DIR           Session directory (default: ` + config.DefaultSessionDir + `)
  CLAUDE_CONTEXT_MESSAGES      Messages sent per request (default: 10)
  CLAUDE_SESSION_MAX_MESSAGES  Cap on stored messages (default: 0, unbounded)
  CLAUDE_OBSERVE_JSON          Set to 1 to write JSONL turn events
  CLAUDE_ARTIFACTS_DIR         Directory for events.jsonl
  CLAUDE_LOG_LEVEL             debug, info, warn or error (default: warn)`

const examples = `  claude "Hello, Claude!"
  echo "What is Go?" | claude
  claude --stream "Write a long story"
  claude --continue`
