package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/catalyst/internal/logger"
	"github.com/existflow/catalyst/internal/tracker"
	"github.com/existflow/catalyst/internal/tui"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse tickets interactively",
	Long: `Open a terminal browser over the store: projects on the left, their
tickets on the right. Tickets can be added, moved through statuses and
deleted.`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	database, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
		logger.Info("Database closed")
	}()

	logger.Info("Launching TUI")
	m := tui.NewModel(cmd.Context(), tracker.New(database.Queries()))
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", logger.F("error", err))
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	logger.Info("TUI exited normally")
	return nil
}
