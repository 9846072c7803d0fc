package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/graduate-roster/internal/server"
)

var (
	serveAddr  string
	serveLimit int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the roster over HTTP",
	Long: `Serve the roster over HTTP until interrupted.

Endpoints:
  GET  /api/graduates?limit=N   First N records in feed order
  GET  /graduates               Grouped roster in the visitor's language
  POST /locale                  Remember the visitor's language (cookie)
  GET  /metrics                 Prometheus metrics

The feed is fetched anew for every request.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := appConfig.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		limit := appConfig.Server.APILimit
		if serveLimit > 0 {
			limit = serveLimit
		}

		cat, err := loadCatalog(appConfig)
		if err != nil {
			return err
		}

		m, reg := newMetrics()
		handler := server.New(newPipeline(appConfig, "", m), cat, server.Options{
			APILimit: limit,
			Detector: detector(appConfig),
			Logger:   logger,
			Gatherer: reg,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if appConfig.Feed.URL == "" {
			logger.Warn("Feed URL is not set; roster endpoints will fail until it is configured")
		}
		logger.Info("Starting server", zap.String("addr", addr), zap.Int("api_limit", limit))

		return server.ListenAndServe(ctx, addr, handler.Routes(), appConfig.Server.ShutdownTimeout, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: server.addr)")
	serveCmd.Flags().IntVar(&serveLimit, "limit", 0, "Default record count of /api/graduates (default: server.api_limit)")
}
