package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	agentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D97757")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F56"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D7D7D"))
)

type UI struct{}

func New() *UI {
	return &UI{}
}

func (u *UI) Print(msg string) {
	fmt.Println(msg)
}

// Answer prints the agent's reply with a styled prefix.
func (u *UI) Answer(msg string) {
	fmt.Println(agentStyle.Render("Agent:") + " " + msg)
}

func (u *UI) Error(msg string) {
	fmt.Println(errorStyle.Render("Error: " + msg))
}

func (u *UI) Info(msg string) {
	fmt.Println(dimStyle.Render(msg))
}

// Input handling

type inputModel struct {
	textInput textinput.Model
	output    string
	canceled  bool
}

func initialInputModel(prompt string) inputModel {
	ti := textinput.New()
	ti.Placeholder = "Type your message..."
	ti.Focus()
	ti.CharLimit = 0
	ti.Width = 80
	ti.Prompt = prompt

	return inputModel{textInput: ti}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			m.output = m.textInput.Value()
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.canceled = true
			return m, tea.Quit
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	return fmt.Sprintf("%s\n", m.textInput.View())
}

// Prompt reads one line of input. Ctrl+C and Esc map to "exit" so the
// REPL sees them as a quit command.
func (u *UI) Prompt(prompt string) string {
	p := tea.NewProgram(initialInputModel(prompt))
	m, err := p.Run()
	if err != nil {
		fmt.Printf("Input error: %v\n", err)
		return ""
	}

	if model, ok := m.(inputModel); ok {
		if model.canceled {
			return "exit"
		}
		return strings.TrimSpace(model.output)
	}
	return ""
}
