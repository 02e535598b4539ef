package tools

import (
	"context"
	"fmt"

	"github.com/jbdamask/tinker/pkg/llm"
)

// Result is the outcome of one tool execution. Exactly one of Value and
// Error is meaningful, gated by Success.
type Result struct {
	Success bool
	Value   any
	Error   string
}

func Ok(value any) Result {
	return Result{Success: true, Value: value}
}

func Errorf(format string, args ...any) Result {
	return Result{Success: false, Error: fmt.Sprintf(format, args...)}
}

// Tool is a registered capability. Execute must never panic and never
// report failure through anything other than a failing Result; each tool
// owns its error boundary.
type Tool interface {
	Definition() llm.ToolDefinition
	Execute(ctx context.Context, args map[string]any) Result
}

// Registry maps tool names to implementations. Built once at startup;
// there is no runtime enable/disable.
type Registry struct {
	tools map[string]Tool
	order []string
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool under its declared name. Re-registering a name
// replaces the implementation but keeps its original position.
func (r *Registry) Register(t Tool) {
	name := t.Definition().Name
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = t
}

// Definitions returns the schema catalog in registration order.
func (r *Registry) Definitions() []llm.ToolDefinition {
	defs := make([]llm.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Definition())
	}
	return defs
}

// Dispatch executes the named tool. An unknown name is a failing Result,
// not an error.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) Result {
	t, ok := r.tools[name]
	if !ok {
		return Errorf("Tool '%s' not found", name)
	}
	return t.Execute(ctx, args)
}

// Names returns registered tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

func (r *Registry) Has(name string) bool {
	_, ok := r.tools[name]
	return ok
}
