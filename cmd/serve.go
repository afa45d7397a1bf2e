package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naka-gawa/devfolio/internal/domain"
	"github.com/naka-gawa/devfolio/internal/links"
	"github.com/naka-gawa/devfolio/internal/server"
	"github.com/naka-gawa/devfolio/internal/viewstate"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the portfolio view state over HTTP",
	Long: `Loads the portfolio once and serves its view state as JSON.
POST /v1/view/refresh re-runs the fetch while the previous state stays readable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cmd).With(zap.String("service", "devfolio"))
		defer logger.Sync() //nolint:errcheck

		aggregator, err := newAggregator(cfg, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		holder := viewstate.New(aggregator.Fetch, viewstate.WithLogger[*domain.AggregateView](logger))
		defer holder.Close()
		go holder.Load(ctx)

		addr, _ := cmd.Flags().GetString("addr")
		return server.New(holder, links.NewLauncher(nil, logger), logger).Run(ctx, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Address to listen on")
}
