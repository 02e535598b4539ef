package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jbdamask/tinker/pkg/llm"
)

// FileTool reads, writes and lists plain text files inside a single root
// directory. Paths are verified to stay inside the root before any
// filesystem access; subdirectories are never created on a tool's behalf.
type FileTool struct {
	root string
}

// NewFileTool creates the root directory if it does not exist. The root
// is resolved to an absolute path once so containment checks are stable
// regardless of the process working directory.
func NewFileTool(root string) (*FileTool, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileTool{root: abs}, nil
}

func (t *FileTool) Definition() llm.ToolDefinition {
	return llm.ToolDefinition{
		Name:        "file_operations",
		Description: "Read and write files",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"action": map[string]any{
					"type":        "string",
					"enum":        []string{"read", "write", "list"},
					"description": "Action to perform: read, write, or list files",
				},
				"filename": map[string]any{
					"type":        "string",
					"description": "Name of the file to operate on",
				},
				"content": map[string]any{
					"type":        "string",
					"description": "Content to write (required for write action)",
				},
			},
			"required": []string{"action", "filename"},
		},
	}
}

func (t *FileTool) Execute(ctx context.Context, args map[string]any) Result {
	action, ok := args["action"].(string)
	if !ok {
		return Errorf("File operation error: 'action' argument is required")
	}
	filename, ok := args["filename"].(string)
	if !ok {
		return Errorf("File operation error: 'filename' argument is required")
	}

	if action == "list" {
		return t.list()
	}

	path, ok := t.resolve(filename)
	if !ok {
		return Errorf("Access denied: File outside allowed directory")
	}

	switch action {
	case "read":
		return t.read(path, filename)
	case "write":
		content, hasContent := args["content"].(string)
		if !hasContent {
			return Errorf("Content is required for write operation")
		}
		return t.write(path, filename, content)
	default:
		return Errorf("Unknown action: %s", action)
	}
}

// resolve maps filename into the root and reports whether the cleaned
// result is still inside it. Absolute paths and traversal segments fail
// here, before anything touches the filesystem.
func (t *FileTool) resolve(filename string) (string, bool) {
	if filepath.IsAbs(filename) {
		return "", false
	}
	path := filepath.Join(t.root, filename)
	rel, err := filepath.Rel(t.root, path)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return path, true
}

func (t *FileTool) read(path, filename string) Result {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return Errorf("File does not exist: %s", filename)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return Errorf("Error reading file: %v", err)
	}
	return Ok(string(content))
}

func (t *FileTool) write(path, filename, content string) Result {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return Errorf("Error writing file: %v", err)
	}
	return Ok(fmt.Sprintf("Successfully wrote to %s", filename))
}

func (t *FileTool) list() Result {
	entries, err := os.ReadDir(t.root)
	if err != nil {
		return Errorf("Error listing files: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	return Ok(names)
}
