package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/va2ai/bvaapi2/internal/pipeline"
	"github.com/va2ai/bvaapi2/internal/transport/httpapi"
)

var servePort int

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Start the JSON API server.

Endpoints:
  POST /search        search decisions with filters, sorting and facets
  GET  /case          fetch one decision's structured record
  GET  /case/text     fetch one decision's raw text
  POST /batch/search  run several bounded searches
  GET  /analyze/text  keyword and readability analysis
  GET  /health        liveness probe
  GET  /metrics       prometheus metrics

Example:
  bvaapi serve --port 8001`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	p, err := pipeline.New(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return httpapi.NewServer(p, cfg.Server, log).Start(ctx)
}
