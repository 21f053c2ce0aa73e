package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/polisim/polisim/internal/config"
	"github.com/polisim/polisim/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: polisim-tui <config-file>")
		os.Exit(1)
	}
	configPath := os.Args[1]

	parser := config.NewInputParser()
	input, err := parser.LoadFromFile(configPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	inputs, err := input.Build()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		tui.NewModel(inputs),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
