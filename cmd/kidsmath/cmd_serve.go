package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"kidsmath/internal/logging"
	"kidsmath/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var flagAddr string

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the worksheet API over HTTP",
	Long: `Endpoints:
  GET  /v1/health      liveness
  POST /v1/worksheets  generate a worksheet (JSON body: worksheet settings)
  POST /v1/evaluate    evaluate {"expression": "..."}
  GET  /metrics        Prometheus metrics`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if flagAddr != "" {
		cfg.Server.Addr = flagAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, categoryLogger(logging.CategoryServer)).ListenAndServe(ctx)
}
