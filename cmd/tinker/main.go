package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.design/x/clipboard"

	"github.com/jbdamask/tinker/pkg/agent"
	"github.com/jbdamask/tinker/pkg/config"
	"github.com/jbdamask/tinker/pkg/llm"
	"github.com/jbdamask/tinker/pkg/ui"
)

func main() {
	term := ui.New()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing agent: %v\n", err)
		fmt.Fprintln(os.Stderr, "Make sure you have set the OPENAI_API_KEY environment variable")
		os.Exit(1)
	}

	ag, err := agent.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing agent: %v\n", err)
		os.Exit(1)
	}
	ag.OnWarn = func(msg string) {
		term.Info("Warning: " + msg)
	}

	term.DrawBanner(cfg.Model, cfg.DataDir, ag.Tools().Names())

	// History carried across REPL turns: user/assistant pairs only.
	// Tool traffic lives inside a single Run and is not replayed.
	var history []llm.Message
	var lastAnswer string

	ctx := context.Background()

	for {
		input := term.Prompt("> ")

		switch strings.ToLower(input) {
		case "":
			continue
		case "quit", "exit":
			term.Print("Goodbye!")
			return
		case "help":
			printHelp(term)
			continue
		case "clear":
			history = nil
			term.Info("Conversation history cleared")
			continue
		case "copy":
			copyLastAnswer(term, lastAnswer)
			continue
		}

		answer, err := ag.Run(ctx, input, history)
		if err != nil {
			term.Error(err.Error())
			continue
		}

		term.Answer(answer)
		lastAnswer = answer

		history = append(history,
			llm.Message{Role: llm.RoleUser, Content: input},
			llm.Message{Role: llm.RoleAssistant, Content: answer},
		)
	}
}

func copyLastAnswer(term *ui.UI, answer string) {
	if answer == "" {
		term.Info("Nothing to copy yet")
		return
	}
	if err := clipboard.Init(); err != nil {
		term.Error(fmt.Sprintf("clipboard unavailable: %v", err))
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(answer))
	term.Info("Copied last answer to clipboard")
}

func printHelp(term *ui.UI) {
	term.Print(`Available commands:
  quit/exit - Stop the agent
  clear     - Clear conversation history
  copy      - Copy the last answer to the clipboard
  help      - Show this help message

Available tools:
  calculator      - Perform mathematical calculations
                    Example: "Calculate 25 * 4 + sqrt(16)"
  file_operations - Read, write, and list files in the data directory
                    Example: "Write 'Hello World' to a file called greeting.txt"
                    Example: "Read the contents of greeting.txt"
                    Example: "List all files"
  web_search      - Search the web (requires BRAVE_API_KEY, disabled by default)
  web_fetch       - Fetch a URL as markdown (disabled by default)`)
}
