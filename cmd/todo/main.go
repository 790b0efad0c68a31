package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/app"
	"todo/internal/cli"
	"todo/internal/config"
	"todo/internal/ui"
)

func main() {
	tui := func(ctrl *app.Controller, cfg config.Config) error {
		return ui.Run(ctrl, cfg, tea.WithAltScreen())
	}
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr, tui))
}
