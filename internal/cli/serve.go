package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/mgpai22/srtcheck/internal/api"
	"github.com/mgpai22/srtcheck/internal/config"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the overlap check over HTTP",
	Long: `Start an HTTP server exposing the overlap check.

  POST /v1/analyze   SRT text (text/plain) or {"content": "..."} (application/json)
  GET  /health
  GET  /

Examples:
  srtcheck serve
  srtcheck serve --port 9090
  srtcheck serve --host 0.0.0.0 --port 8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "", "Server host (overrides config)")
	serveCmd.Flags().Int("port", 0, "Server port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	host, _ := cmd.Flags().GetString("host")
	port, _ := cmd.Flags().GetInt("port")

	if err := applyServeOverrides(appConfig, host, port); err != nil {
		return err
	}

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	server := api.NewServer(appConfig, logger, Version)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "srtcheck listening on %s\n", appConfig.Address())

	var runErr error
	select {
	case <-stop:
		logger.Infow("Shutting down server")
	case runErr = <-serverErr:
		logger.Errorw("Server stopped", "error", runErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	return runErr
}

// flag values win over config; zero values keep the configured ones
func applyServeOverrides(cfg *config.Config, host string, port int) error {
	if port < 0 || port > 65535 {
		return fmt.Errorf("invalid port: %d", port)
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	return nil
}
