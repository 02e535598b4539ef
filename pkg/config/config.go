package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Default tool enablement. web_search and web_fetch require extra setup
// and ship disabled.
var defaultTools = map[string]bool{
	"calculator":      true,
	"file_operations": true,
	"web_search":      false,
	"web_fetch":       false,
}

// Config is built once at startup and passed by reference into the
// client, registry and agent constructors. No package-level state.
type Config struct {
	APIKey         string
	Model          string
	Temperature    float32
	MaxTokens      int
	MaxIterations  int
	DataDir        string
	SaveTranscript bool
	Tools          map[string]bool
}

// Load reads .env (if present) and the environment. The only hard
// requirement is OPENAI_API_KEY; everything else has a default.
func Load() (*Config, error) {
	// Missing .env is fine; explicit environment always wins anyway.
	_ = godotenv.Load()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	cfg := &Config{
		APIKey:         apiKey,
		Model:          envString("TINKER_MODEL", "gpt-4"),
		Temperature:    envFloat("TINKER_TEMPERATURE", 0.7),
		MaxTokens:      envInt("TINKER_MAX_TOKENS", 1000),
		MaxIterations:  envInt("TINKER_MAX_ITERATIONS", 10),
		DataDir:        envString("TINKER_DATA_DIR", "./data"),
		SaveTranscript: envBool("TINKER_SAVE_TRANSCRIPT", false),
		Tools:          make(map[string]bool, len(defaultTools)),
	}

	for name, enabled := range defaultTools {
		key := "TINKER_TOOL_" + strings.ToUpper(name)
		cfg.Tools[name] = envBool(key, enabled)
	}

	return cfg, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float32) float32 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return fallback
	}
	return float32(f)
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
