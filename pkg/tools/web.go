package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"github.com/jbdamask/tinker/pkg/llm"
)

// WebSearchTool queries the Brave Search API. Disabled by default in the
// tool configuration; it needs BRAVE_API_KEY to do anything useful.
type WebSearchTool struct {
	apiKey  string
	client  *http.Client
	baseURL string
}

func NewWebSearchTool() *WebSearchTool {
	return &WebSearchTool{
		apiKey:  os.Getenv("BRAVE_API_KEY"),
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://api.search.brave.com/res/v1/web/search",
	}
}

func (t *WebSearchTool) Definition() llm.ToolDefinition {
	return llm.ToolDefinition{
		Name:        "web_search",
		Description: "Search the web for information",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The search query",
				},
			},
			"required": []string{"query"},
		},
	}
}

type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
		} `json:"results"`
	} `json:"web"`
}

func (t *WebSearchTool) Execute(ctx context.Context, args map[string]any) Result {
	query, ok := args["query"].(string)
	if !ok || query == "" {
		return Errorf("Search error: 'query' argument is required")
	}
	if t.apiKey == "" {
		return Errorf("Search error: BRAVE_API_KEY not set")
	}

	u, err := url.Parse(t.baseURL)
	if err != nil {
		return Errorf("Search error: %v", err)
	}
	q := u.Query()
	q.Set("q", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Errorf("Search error: %v", err)
	}
	req.Header.Set("X-Subscription-Token", t.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return Errorf("Search request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Errorf("Search API error: status %d", resp.StatusCode)
	}

	var result braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Errorf("Failed to decode search results: %v", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Search results for '%s':\n\n", query))
	for i, r := range result.Web.Results {
		if i >= 5 {
			break
		}
		sb.WriteString(fmt.Sprintf("%d. %s\n   %s\n   %s\n\n", i+1, r.Title, r.URL, r.Description))
	}
	return Ok(sb.String())
}

// WebFetchTool fetches a URL and returns its content as markdown.
type WebFetchTool struct {
	client *http.Client
}

const fetchOutputCap = 50000

func NewWebFetchTool() *WebFetchTool {
	return &WebFetchTool{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (t *WebFetchTool) Definition() llm.ToolDefinition {
	return llm.ToolDefinition{
		Name:        "web_fetch",
		Description: "Fetch content from a URL and return it as markdown",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"url": map[string]any{
					"type":        "string",
					"description": "The URL to fetch",
				},
			},
			"required": []string{"url"},
		},
	}
}

func (t *WebFetchTool) Execute(ctx context.Context, args map[string]any) Result {
	urlStr, ok := args["url"].(string)
	if !ok || urlStr == "" {
		return Errorf("Fetch error: 'url' argument is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return Errorf("Fetch error: invalid URL: %v", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return Errorf("Fetch request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Errorf("Fetch error: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2*1024*1024))
	if err != nil {
		return Errorf("Fetch error: %v", err)
	}

	content := string(body)
	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		converter := md.NewConverter("", true, nil)
		markdown, err := converter.ConvertString(content)
		if err == nil {
			content = markdown
		}
	}

	if len(content) > fetchOutputCap {
		content = content[:fetchOutputCap] + "\n...[content truncated]..."
	}
	return Ok(content)
}
