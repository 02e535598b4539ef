package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"
)

func TestToOpenAIMessagesCarriesToolFields(t *testing.T) {
	msgs := []Message{
		{Role: RoleSystem, Content: "be helpful"},
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "working on it"},
		{Role: RoleTool, Content: "42", Name: "calculator", ToolCallID: "call_1"},
	}

	out := toOpenAIMessages(msgs)
	require.Len(t, out, 4)

	require.Equal(t, "system", out[0].Role)
	require.Equal(t, "be helpful", out[0].Content)
	require.Empty(t, out[0].Name)
	require.Empty(t, out[0].ToolCallID)

	require.Equal(t, "tool", out[3].Role)
	require.Equal(t, "42", out[3].Content)
	require.Equal(t, "calculator", out[3].Name)
	require.Equal(t, "call_1", out[3].ToolCallID)
}

func TestToOpenAIToolsWrapsFunctionDefinitions(t *testing.T) {
	defs := []ToolDefinition{{
		Name:        "calculator",
		Description: "does math",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{"expression": map[string]any{"type": "string"}},
			"required":   []string{"expression"},
		},
	}}

	out := toOpenAITools(defs)
	require.Len(t, out, 1)
	require.Equal(t, openai.ToolTypeFunction, out[0].Type)
	require.Equal(t, "calculator", out[0].Function.Name)
	require.Equal(t, "does math", out[0].Function.Description)
}

func TestFromOpenAIChoiceNormalizesContent(t *testing.T) {
	choice := openai.ChatCompletionChoice{
		Message: openai.ChatCompletionMessage{
			Role: "assistant",
			ToolCalls: []openai.ToolCall{{
				ID:   "call_9",
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      "file_operations",
					Arguments: `{"action":"list","filename":"."}`,
				},
			}},
		},
		FinishReason: openai.FinishReasonToolCalls,
	}

	resp := fromOpenAIChoice(choice)
	require.Equal(t, "", resp.Content)
	require.Equal(t, "tool_calls", resp.FinishReason)
	require.Len(t, resp.ToolCalls, 1)
	require.Equal(t, "call_9", resp.ToolCalls[0].ID)
	require.Equal(t, "file_operations", resp.ToolCalls[0].Name)
	// Raw arguments pass through unparsed.
	require.JSONEq(t, `{"action":"list","filename":"."}`, resp.ToolCalls[0].Arguments)
}

func TestOpenAIClientGenerate(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{
				"index": 0,
				"message": {
					"role": "assistant",
					"content": null,
					"tool_calls": [{
						"id": "call_abc",
						"type": "function",
						"function": {"name": "calculator", "arguments": "{\"expression\":\"1+1\"}"}
					}]
				},
				"finish_reason": "tool_calls"
			}]
		}`))
	}))
	defer srv.Close()

	client := NewOpenAIClientWithBaseURL("test-key", "gpt-4", 0.7, 1000, srv.URL)

	resp, err := client.Generate(context.Background(), []Message{
		{Role: RoleSystem, Content: "sys"},
		{Role: RoleUser, Content: "add"},
	}, []ToolDefinition{{
		Name:        "calculator",
		Description: "does math",
		Parameters:  map[string]any{"type": "object", "properties": map[string]any{}},
	}})
	require.NoError(t, err)

	require.Equal(t, "", resp.Content)
	require.Len(t, resp.ToolCalls, 1)
	require.Equal(t, "call_abc", resp.ToolCalls[0].ID)
	require.Equal(t, "calculator", resp.ToolCalls[0].Name)
	require.Equal(t, "tool_calls", resp.FinishReason)

	require.Equal(t, "gpt-4", gotBody["model"])
	require.Equal(t, "auto", gotBody["tool_choice"])
	tools, ok := gotBody["tools"].([]any)
	require.True(t, ok)
	require.Len(t, tools, 1)
}

func TestOpenAIClientGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "bad key", "type": "invalid_request_error"}}`))
	}))
	defer srv.Close()

	client := NewOpenAIClientWithBaseURL("bad", "gpt-4", 0.7, 1000, srv.URL)

	_, err := client.Generate(context.Background(), []Message{{Role: RoleUser, Content: "x"}}, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "LLM API error")
}

func TestMockClientReplaysScript(t *testing.T) {
	mock := NewMockClient(
		&Response{Content: "first"},
		&Response{Content: "second"},
	)

	resp, err := mock.Generate(context.Background(), []Message{{Role: RoleUser, Content: "a"}}, nil)
	require.NoError(t, err)
	require.Equal(t, "first", resp.Content)

	resp, err = mock.Generate(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Equal(t, "second", resp.Content)

	// Script exhausted: the mock falls back to a fixed reply.
	resp, err = mock.Generate(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Equal(t, "I am a mock agent.", resp.Content)

	require.Len(t, mock.Requests, 3)
	require.Equal(t, "a", mock.Requests[0].Messages[0].Content)
}
