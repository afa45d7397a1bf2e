package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naka-gawa/devfolio/internal/config"
	"github.com/naka-gawa/devfolio/internal/domain"
	"github.com/naka-gawa/devfolio/internal/links"
	"github.com/naka-gawa/devfolio/internal/logging"
	"github.com/naka-gawa/devfolio/internal/ui"
	"github.com/naka-gawa/devfolio/internal/viewstate"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Opens the interactive portfolio screen",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		// The screen owns the terminal, so logs only go to a file.
		logger := zap.NewNop()
		if path, _ := cmd.Flags().GetString("log-file"); path != "" {
			logger = logging.NewFile(path)
		}
		defer logger.Sync() //nolint:errcheck

		aggregator, err := newAggregator(cfg, logger)
		if err != nil {
			return err
		}

		// The holder pushes every transition to the program, so the
		// refreshing indicator shows up as soon as a refresh starts.
		var program *tea.Program
		holder := viewstate.New(aggregator.Fetch,
			viewstate.WithLogger[*domain.AggregateView](logger),
			viewstate.WithOnChange(ui.Forward(func(msg tea.Msg) { program.Send(msg) })),
		)
		defer holder.Close()

		model := ui.NewModel(cmd.Context(), holder, links.NewLauncher(nil, logger), config.DefaultAccount)
		program = tea.NewProgram(model, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run the screen: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().String("log-file", "", "Write logs to this file")
}
