package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DrawBanner prints the startup box with the active model and the file
// tool's sandbox directory.
func (u *UI) DrawBanner(modelName, dataDir string, toolNames []string) {
	borderColor := lipgloss.Color("#D97757")
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2).
		Width(60)

	titleStyle := lipgloss.NewStyle().
		Foreground(borderColor).
		Bold(true)

	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7D7D7D"))

	tools := "None"
	if len(toolNames) > 0 {
		tools = strings.Join(toolNames, ", ")
	}

	content := titleStyle.Render("Tinker") + "\n" +
		infoStyle.Render(fmt.Sprintf("Model: %s", modelName)) + "\n" +
		infoStyle.Render(fmt.Sprintf("Data dir: %s", dataDir)) + "\n" +
		infoStyle.Render(fmt.Sprintf("Tools: %s", tools))

	fmt.Println(borderStyle.Render(content))
	fmt.Println(infoStyle.Render("Type 'quit' or 'exit' to stop, 'help' for commands."))
}
