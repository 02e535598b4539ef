package history

import (
	"bufio"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jbdamask/tinker/pkg/llm"
)

func TestSessionAppendWritesJSONL(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	session, err := NewSession("/some/project")
	require.NoError(t, err)
	require.NotEmpty(t, session.SessionID)

	msgs := []llm.Message{
		{Role: llm.RoleUser, Content: "what is 2+2?"},
		{Role: llm.RoleAssistant, Content: "I'll help you with that. Let me use the appropriate tools."},
		{Role: llm.RoleTool, Content: "4", Name: "calculator", ToolCallID: "call_1"},
		{Role: llm.RoleAssistant, Content: "2+2 is 4."},
	}
	for _, msg := range msgs {
		require.NoError(t, session.Append(msg))
	}

	f, err := os.Open(session.FilePath)
	require.NoError(t, err)
	defer f.Close()

	var events []SessionEvent
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var event SessionEvent
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &event))
		events = append(events, event)
	}
	require.NoError(t, scanner.Err())
	require.Len(t, events, 4)

	// Events chain through parent UUIDs in append order.
	require.Empty(t, events[0].ParentUUID)
	for i := 1; i < len(events); i++ {
		require.Equal(t, events[i-1].UUID, events[i].ParentUUID)
	}

	for i, event := range events {
		require.Equal(t, session.SessionID, event.SessionID)
		require.Equal(t, "/some/project", event.CWD)
		require.Equal(t, msgs[i], event.Message)
		require.Equal(t, string(msgs[i].Role), event.Type)
	}
}

func TestSessionFilePathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	session, err := NewSession("/a/b/c")
	require.NoError(t, err)
	require.Contains(t, session.FilePath, home)
	require.Contains(t, session.FilePath, "-a-b-c")
}
