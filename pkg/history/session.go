package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jbdamask/tinker/pkg/llm"
)

// SessionEvent is one line in the session's JSONL transcript. Events
// chain through ParentUUID so the file preserves dialogue order even if
// it is later merged or filtered.
type SessionEvent struct {
	Type       string      `json:"type"`
	UUID       string      `json:"uuid"`
	ParentUUID string      `json:"parentUuid,omitempty"`
	SessionID  string      `json:"sessionId"`
	Timestamp  string      `json:"timestamp"`
	CWD        string      `json:"cwd"`
	Message    llm.Message `json:"message"`
}

// Session appends conversation messages to a per-session JSONL file
// under ~/.tinker/projects/<sanitized cwd>/. Transcripts are opt-in;
// nothing is written unless a Session is attached to the agent.
type Session struct {
	SessionID string
	FilePath  string

	cwd        string
	parentUUID string
}

func NewSession(cwd string) (*Session, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home dir: %w", err)
	}

	sessionID := uuid.New().String()

	sanitized := strings.ReplaceAll(cwd, string(os.PathSeparator), "-")
	if !strings.HasPrefix(sanitized, "-") {
		sanitized = "-" + sanitized
	}

	projectDir := filepath.Join(homeDir, ".tinker", "projects", sanitized)
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create project dir: %w", err)
	}

	return &Session{
		SessionID: sessionID,
		FilePath:  filepath.Join(projectDir, sessionID+".jsonl"),
		cwd:       cwd,
	}, nil
}

// Append writes one message as a JSONL event. Failures are returned so
// the caller can warn, but the conversation itself is never blocked on
// transcript I/O.
func (s *Session) Append(msg llm.Message) error {
	event := SessionEvent{
		Type:       string(msg.Role),
		UUID:       uuid.New().String(),
		ParentUUID: s.parentUUID,
		SessionID:  s.SessionID,
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
		CWD:        s.cwd,
		Message:    msg,
	}

	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal session event: %w", err)
	}

	f, err := os.OpenFile(s.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open session file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to write session event: %w", err)
	}

	s.parentUUID = event.UUID
	return nil
}
