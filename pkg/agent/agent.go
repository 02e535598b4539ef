package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jbdamask/tinker/pkg/config"
	"github.com/jbdamask/tinker/pkg/history"
	"github.com/jbdamask/tinker/pkg/llm"
	"github.com/jbdamask/tinker/pkg/tools"
)

// toolUsePlaceholder replaces the model's own free text whenever a
// response carries tool calls. Intentional: the model gets to explain
// itself in the final answer, not mid-dispatch.
const toolUsePlaceholder = "I'll help you with that. Let me use the appropriate tools."

// exhaustedMessage is the terminal reply when the iteration budget runs
// out before the model produces a final answer. Not an error.
const exhaustedMessage = "Sorry, I couldn't complete the task within the allowed iterations."

// Agent orchestrates the conversation loop: query the backend, dispatch
// requested tool calls, feed results back, repeat. The registry and
// client are stateless across runs; each Run owns its own conversation.
type Agent struct {
	cfg     *config.Config
	client  llm.Client
	tools   *tools.Registry
	session *history.Session

	// OnWarn receives non-fatal problems (e.g. transcript write
	// failures). Nil means they are silently dropped.
	OnWarn func(msg string)
}

// conversation is the working set for one Run call. Messages are
// append-only; completed is terminal once set.
type conversation struct {
	messages    []llm.Message
	iterations  int
	completed   bool
	finalAnswer string
}

func New(cfg *config.Config) (*Agent, error) {
	registry, err := buildRegistry(cfg)
	if err != nil {
		return nil, err
	}

	var client llm.Client
	if cfg.APIKey == "mock" {
		client = llm.NewMockClient()
	} else {
		client = llm.NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.Temperature, cfg.MaxTokens)
	}

	a := &Agent{cfg: cfg, client: client, tools: registry}

	if cfg.SaveTranscript {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		session, err := history.NewSession(cwd)
		if err != nil {
			return nil, err
		}
		a.session = session
	}

	return a, nil
}

// buildRegistry registers every tool whose enabled flag is set. Order is
// fixed so the schema catalog is stable across runs.
func buildRegistry(cfg *config.Config) (*tools.Registry, error) {
	registry := tools.NewRegistry()

	if cfg.Tools["calculator"] {
		registry.Register(&tools.CalculatorTool{})
	}
	if cfg.Tools["file_operations"] {
		fileTool, err := tools.NewFileTool(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		registry.Register(fileTool)
	}
	if cfg.Tools["web_search"] {
		registry.Register(tools.NewWebSearchTool())
	}
	if cfg.Tools["web_fetch"] {
		registry.Register(tools.NewWebFetchTool())
	}

	return registry, nil
}

// Tools exposes the registry for callers that present tool information
// to the user (e.g. the REPL help output).
func (a *Agent) Tools() *tools.Registry {
	return a.tools
}

// Run executes one agent invocation: append the user message to prior
// history, then loop between backend queries and tool dispatch until the
// model answers in plain text or the iteration budget is exhausted.
// Only a backend failure aborts the run; every tool-level failure is
// converted into conversation content and the loop continues.
func (a *Agent) Run(ctx context.Context, userText string, prior []llm.Message) (string, error) {
	conv := &conversation{}
	conv.messages = append(conv.messages, prior...)

	// Exactly one system message, always at position 0. Callers may
	// hand in history that already starts with one.
	if len(conv.messages) == 0 || conv.messages[0].Role != llm.RoleSystem {
		sys := llm.Message{Role: llm.RoleSystem, Content: systemPrompt(a.tools.Names())}
		conv.messages = append([]llm.Message{sys}, conv.messages...)
	}

	a.append(conv, llm.Message{Role: llm.RoleUser, Content: userText})

	for !conv.completed && conv.iterations < a.cfg.MaxIterations {
		conv.iterations++

		resp, err := a.client.Generate(ctx, conv.messages, a.tools.Definitions())
		if err != nil {
			return "", err
		}

		if len(resp.ToolCalls) == 0 {
			conv.completed = true
			conv.finalAnswer = resp.Content
			a.append(conv, llm.Message{Role: llm.RoleAssistant, Content: resp.Content})
			continue
		}

		a.handleToolCalls(ctx, conv, resp.ToolCalls)
	}

	if conv.completed {
		return conv.finalAnswer, nil
	}
	return exhaustedMessage, nil
}

// handleToolCalls resolves each requested invocation into a tool message,
// in request order. A failure in one invocation never aborts the rest.
func (a *Agent) handleToolCalls(ctx context.Context, conv *conversation, calls []llm.ToolCall) {
	a.append(conv, llm.Message{Role: llm.RoleAssistant, Content: toolUsePlaceholder})

	for _, call := range calls {
		var args map[string]any
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			a.append(conv, toolMessage(call, fmt.Sprintf("Error executing tool: %v", err)))
			continue
		}
		a.append(conv, toolMessage(call, a.safeDispatch(ctx, call.Name, args)))
	}
}

// safeDispatch turns the registry's Result into tool-message content and
// recovers any panic a misbehaving tool lets escape. Tools are required
// to report failure as a Result, but one broken tool must not take the
// loop down with it.
func (a *Agent) safeDispatch(ctx context.Context, name string, args map[string]any) (content string) {
	defer func() {
		if r := recover(); r != nil {
			content = fmt.Sprintf("Error executing tool: %v", r)
		}
	}()

	result := a.tools.Dispatch(ctx, name, args)
	if result.Success {
		return fmt.Sprintf("%v", result.Value)
	}
	return "Error: " + result.Error
}

func toolMessage(call llm.ToolCall, content string) llm.Message {
	return llm.Message{
		Role:       llm.RoleTool,
		Content:    content,
		Name:       call.Name,
		ToolCallID: call.ID,
	}
}

// append adds a message to the conversation and mirrors it to the
// transcript when one is attached. Transcript failures are warnings;
// they never interrupt the run.
func (a *Agent) append(conv *conversation, msg llm.Message) {
	conv.messages = append(conv.messages, msg)
	if a.session != nil {
		if err := a.session.Append(msg); err != nil {
			a.warnf("failed to log message: %v", err)
		}
	}
}

func (a *Agent) warnf(format string, args ...any) {
	if a.OnWarn != nil {
		a.OnWarn(fmt.Sprintf(format, args...))
	}
}
