package config_test

import (
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/petasbytes/claude-wrapper/internal/config"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(envFrom(nil))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Model != config.DefaultModel || cfg.MaxTokens != 4096 || cfg.SessionDir != "/app/sessions" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.WindowSize != 10 || cfg.MaxStoredMessages != 0 || cfg.ObserveJSON {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.LogLevel != slog.LevelWarn {
		t.Fatalf("log level: got %v want warn", cfg.LogLevel)
	}
	if cfg.ArtifactsDir != filepath.Join("/app/sessions", ".telemetry") {
		t.Fatalf("artifacts dir: %s", cfg.ArtifactsDir)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := config.Load(envFrom(map[string]string{
		config.EnvModel:            "claude-sonnet-4-0",
		config.EnvMaxTokens:        "512",
		config.EnvSessionDir:       "/tmp/s",
		config.EnvContextMessages:  "4",
		config.EnvSessionMaxStored: "100",
		config.EnvObserveJSON:      "1",
		config.EnvArtifactsDir:     "/tmp/a",
		config.EnvLogLevel:         "debug",
	}))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := config.Config{
		Model:             "claude-sonnet-4-0",
		MaxTokens:         512,
		SessionDir:        "/tmp/s",
		WindowSize:        4,
		MaxStoredMessages: 100,
		ObserveJSON:       true,
		ArtifactsDir:      "/tmp/a",
		LogLevel:          slog.LevelDebug,
	}
	if cfg != want {
		t.Fatalf("got %+v want %+v", cfg, want)
	}
}

func TestCredential_PrimaryThenFallback(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"primary_only", map[string]string{config.EnvAPIKey: "p"}, "p"},
		{"fallback_only", map[string]string{config.EnvAPIKeyFallback: "f"}, "f"},
		{"primary_wins", map[string]string{config.EnvAPIKey: "p", config.EnvAPIKeyFallback: "f"}, "p"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Load(envFrom(tt.env))
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			got, err := cfg.Credential()
			if err != nil || got != tt.want {
				t.Fatalf("got %q,%v want %q", got, err, tt.want)
			}
		})
	}
}

func TestCredential_Missing(t *testing.T) {
	cfg, err := config.Load(envFrom(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := cfg.Credential(); !errors.Is(err, config.ErrCredentialMissing) {
		t.Fatalf("expected ErrCredentialMissing, got %v", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		bad  string
	}{
		{"max_tokens_not_int", map[string]string{config.EnvMaxTokens: "lots"}, config.EnvMaxTokens},
		{"max_tokens_zero", map[string]string{config.EnvMaxTokens: "0"}, config.EnvMaxTokens},
		{"window_zero", map[string]string{config.EnvContextMessages: "0"}, config.EnvContextMessages},
		{"cap_negative", map[string]string{config.EnvSessionMaxStored: "-1"}, config.EnvSessionMaxStored},
		{"level_unknown", map[string]string{config.EnvLogLevel: "loud"}, config.EnvLogLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(envFrom(tt.env))
			var ce *config.Error
			if !errors.As(err, &ce) {
				t.Fatalf("expected *config.Error, got %T: %v", err, err)
			}
			if ce.Var != tt.bad {
				t.Fatalf("var: got %s want %s", ce.Var, tt.bad)
			}
		})
	}
}
