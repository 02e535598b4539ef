package llm

import "context"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one entry in the conversation log. Name and ToolCallID are
// set only on tool-role messages; a tool message must carry both so the
// backend can correlate the result with the call that produced it.
type Message struct {
	Role       Role   `json:"role"`
	Content    string `json:"content"`
	Name       string `json:"name,omitempty"`
	ToolCallID string `json:"tool_call_id,omitempty"`
}

// ToolCall is a tool invocation requested by the backend. Arguments is
// the raw serialized JSON payload; parsing it is the agent loop's job,
// not the client's.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Response is a normalized backend reply. The turn is a final answer iff
// ToolCalls is empty. FinishReason is diagnostic only and never drives
// control flow.
type Response struct {
	Content      string     `json:"content"`
	ToolCalls    []ToolCall `json:"tool_calls,omitempty"`
	FinishReason string     `json:"finish_reason,omitempty"`
}

// ToolDefinition describes a tool to the backend. Parameters is a JSON
// Schema object: {type: "object", properties: {...}, required: [...]}.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Client issues one blocking request per Generate call. Transport and
// API errors are returned as-is; callers treat them as fatal to the
// current run.
type Client interface {
	Generate(ctx context.Context, messages []Message, tools []ToolDefinition) (*Response, error)
}
