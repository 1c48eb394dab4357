package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/petasbytes/claude-wrapper/internal/fsops"
)

// SessionFileName is the file the store reads and writes inside its directory.
const SessionFileName = "current_session.json"

// Role identifies the speaker of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is a role the Messages API accepts.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message is one persisted chat turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserMessage returns a user turn with the given content.
func UserMessage(content string) Message { return Message{Role: RoleUser, Content: content} }

// AssistantMessage returns an assistant turn with the given content.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// Store loads and saves a single conversation log file.
// It takes no locks; concurrent processes sharing a file race on Save.
type Store struct {
	path        string
	maxMessages int
	logger      *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithMaxMessages keeps only the newest n messages on Save. n <= 0 disables the cap.
func WithMaxMessages(n int) StoreOption {
	return func(s *Store) { s.maxMessages = n }
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore returns a store for dir/current_session.json.
func NewStore(dir string, opts ...StoreOption) *Store {
	s := &Store{
		path:   filepath.Join(dir, SessionFileName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Path returns the session file path.
func (s *Store) Path() string { return s.path }

// Load returns the persisted log. It never fails: a missing, unreadable or
// malformed file yields an empty log.
func (s *Store) Load() []Message {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("session unreadable; starting empty", "path", s.path, "error", err)
		}
		return []Message{}
	}
	msgs, err := decode(b)
	if err != nil {
		s.logger.Debug("session malformed; starting empty", "path", s.path, "error", err)
		return []Message{}
	}
	return msgs
}

// Save writes msgs as the whole session document.
func (s *Store) Save(msgs []Message) error {
	if msgs == nil {
		msgs = []Message{}
	}
	if s.maxMessages > 0 && len(msgs) > s.maxMessages {
		msgs = msgs[len(msgs)-s.maxMessages:]
	}
	b, err := json.MarshalIndent(msgs, "", " ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := fsops.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear resets the persisted log to empty.
func (s *Store) Clear() error {
	return s.Save(nil)
}

func decode(b []byte) ([]Message, error) {
	var msgs []Message
	if err := json.Unmarshal(b, &msgs); err != nil {
		return nil, err
	}
	if msgs == nil {
		// "null" is valid JSON but not a log.
		return nil, errors.New("session document is not an array")
	}
	for i, m := range msgs {
		if !m.Role.Valid() {
			return nil, fmt.Errorf("message %d: unknown role %q", i, m.Role)
		}
	}
	return msgs, nil
}
