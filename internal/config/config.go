// Package config resolves process configuration from environment variables.
//
// Values are read once at startup into a Config that is passed explicitly to
// the session store and the chat runner; nothing below cmd/ reads the
// environment on its own.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvAPIKey           = "CLAUDE_API_KEY"
	EnvAPIKeyFallback   = "ANTHROPIC_API_KEY"
	EnvModel            = "CLAUDE_MODEL"
	EnvMaxTokens        = "MAX_TOKENS"
	EnvSessionDir       = "CLAUDE_SESSION_DIR"
	EnvContextMessages  = "CLAUDE_CONTEXT_MESSAGES"
	EnvSessionMaxStored = "CLAUDE_SESSION_MAX_MESSAGES"
	EnvObserveJSON      = "CLAUDE_OBSERVE_JSON"
	EnvArtifactsDir     = "CLAUDE_ARTIFACTS_DIR"
	EnvLogLevel         = "CLAUDE_LOG_LEVEL"
)

// Defaults.
const (
	DefaultModel      = "claude-3-sonnet-20240229"
	DefaultMaxTokens  = 4096
	DefaultSessionDir = "/app/sessions"
	DefaultWindowSize = 10
)

// ErrCredentialMissing is returned by Credential when neither API key
// variable is set.
var ErrCredentialMissing = errors.New("no API key found; set " + EnvAPIKey + " or " + EnvAPIKeyFallback)

// Error reports an environment variable holding an unusable value.
type Error struct {
	Var   string
	Value string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Var, e.Value, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Config is the resolved configuration for one invocation.
type Config struct {
	APIKey     string
	Model      string
	MaxTokens  int64
	SessionDir string

	// WindowSize is the number of trailing messages sent per request.
	WindowSize int
	// MaxStoredMessages caps the persisted log; 0 keeps everything.
	MaxStoredMessages int

	ObserveJSON  bool
	ArtifactsDir string
	LogLevel     slog.Level
}

// Load builds a Config from getenv (usually os.Getenv).
// A missing API key is not an error here; see Credential.
func Load(getenv func(string) string) (Config, error) {
	cfg := Config{
		APIKey:     firstNonEmpty(getenv(EnvAPIKey), getenv(EnvAPIKeyFallback)),
		Model:      firstNonEmpty(getenv(EnvModel), DefaultModel),
		SessionDir: firstNonEmpty(getenv(EnvSessionDir), DefaultSessionDir),
		LogLevel:   slog.LevelWarn,
	}

	maxTokens, err := intVar(getenv, EnvMaxTokens, DefaultMaxTokens, 1)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxTokens = int64(maxTokens)

	if cfg.WindowSize, err = intVar(getenv, EnvContextMessages, DefaultWindowSize, 1); err != nil {
		return Config{}, err
	}
	if cfg.MaxStoredMessages, err = intVar(getenv, EnvSessionMaxStored, 0, 0); err != nil {
		return Config{}, err
	}

	cfg.ObserveJSON = getenv(EnvObserveJSON) == "1"
	cfg.ArtifactsDir = firstNonEmpty(getenv(EnvArtifactsDir), filepath.Join(cfg.SessionDir, ".telemetry"))

	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, &Error{Var: EnvLogLevel, Value: v, Err: err}
		}
	}
	return cfg, nil
}

// Credential returns the resolved API key or ErrCredentialMissing.
func (c Config) Credential() (string, error) {
	if c.APIKey == "" {
		return "", ErrCredentialMissing
	}
	return c.APIKey, nil
}

func intVar(getenv func(string) string, name string, def, lowest int) (int, error) {
	v := strings.TrimSpace(getenv(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &Error{Var: name, Value: v, Err: err}
	}
	if n < lowest {
		return 0, &Error{Var: name, Value: v, Err: fmt.Errorf("must be >= %d", lowest)}
	}
	return n, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
