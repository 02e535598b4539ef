package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MockClient replays a scripted queue of responses. Used by tests and by
// the REPL when no real API key is configured.
type MockClient struct {
	mu        sync.Mutex
	responses []*Response
	// Requests records what each Generate call saw, in order.
	Requests []MockRequest
}

type MockRequest struct {
	Messages []Message
	Tools    []ToolDefinition
}

func NewMockClient(responses ...*Response) *MockClient {
	return &MockClient{responses: responses}
}

// Enqueue appends a canned response to the script.
func (m *MockClient) Enqueue(resp *Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// EnqueueToolCall is a shorthand for scripting a single tool invocation
// with a generated call ID.
func (m *MockClient) EnqueueToolCall(name string, arguments string) string {
	id := "call_" + uuid.New().String()[:8]
	m.Enqueue(&Response{
		ToolCalls:    []ToolCall{{ID: id, Name: name, Arguments: arguments}},
		FinishReason: "tool_calls",
	})
	return id
}

func (m *MockClient) Generate(ctx context.Context, messages []Message, tools []ToolDefinition) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msgs := make([]Message, len(messages))
	copy(msgs, messages)
	defs := make([]ToolDefinition, len(tools))
	copy(defs, tools)
	m.Requests = append(m.Requests, MockRequest{Messages: msgs, Tools: defs})

	if len(m.responses) == 0 {
		return &Response{Content: "I am a mock agent.", FinishReason: "stop"}, nil
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	if resp == nil {
		return nil, fmt.Errorf("mock client: scripted failure")
	}
	return resp, nil
}
