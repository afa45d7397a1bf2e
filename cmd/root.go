// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naka-gawa/devfolio/internal/config"
	"github.com/naka-gawa/devfolio/internal/gateway"
	"github.com/naka-gawa/devfolio/internal/logging"
	"github.com/naka-gawa/devfolio/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:   "devfolio",
	Short: "A developer portfolio built from a public GitHub profile.",
	Long: `devfolio shows a developer's public GitHub profile: avatar, follower and
repository counts, total stars, the most starred repositories and links to
social profiles. It only reads public data.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("source", "", "Remote source: rest or graphql (overrides DEVFOLIO_SOURCE)")
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Parse()
	if err != nil {
		return nil, err
	}
	if source, _ := cmd.Flags().GetString("source"); source != "" {
		cfg.Source = source
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the logger selected by the verbose flag.
func newLogger(cmd *cobra.Command) *zap.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return logging.New(verbose)
}

// newAggregator wires the gateway and the aggregator for cfg.
func newAggregator(cfg *config.Config, logger *zap.Logger) (*usecase.Aggregator, error) {
	source, err := gateway.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	return usecase.NewAggregator(source, usecase.Options{
		Account:         config.DefaultAccount,
		PerPage:         cfg.PerPage,
		TopN:            cfg.TopN,
		ProjectsPerPage: cfg.ProjectsPerPage,
	}, logger), nil
}
