/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the withdrawal desk server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load configuration (viper: YAML file + WDESK_* env)
  3. Build the ledger client for the configured backend
  4. Wire workflow, writer, handler, router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides config when set)
  -config  Directory holding withdrawal-desk.yaml (default: .)

LEDGER BACKENDS:
  memory | sqlite | xlsx | sheets - see config package. The sheets
  backend is production: rows land on the shared spreadsheet.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the ledger client if it holds resources
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Configuration keys
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/warp/withdrawal-desk/api"
	"github.com/warp/withdrawal-desk/config"
	"github.com/warp/withdrawal-desk/ledger"
	"github.com/warp/withdrawal-desk/ledger/sheets"
	"github.com/warp/withdrawal-desk/ledger/sqlite"
	"github.com/warp/withdrawal-desk/ledger/xlsx"
	"github.com/warp/withdrawal-desk/withdraw"
)

func main() {
	// Flags
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	configPath := flag.String("config", ".", "directory holding withdrawal-desk.yaml")
	flag.Parse()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if *port != 0 {
		cfg.ServerPort = *port
	}

	// Ledger client
	client, closer, err := buildLedgerClient(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.LedgerBackend).Msg("failed to initialize ledger client")
	}
	if closer != nil {
		defer closer.Close()
	}

	// Workflow
	workflow := withdraw.NewWorkflow(
		cfg.BookCatalog(),
		cfg.MethodCatalog(),
		cfg.PageSize,
		withdraw.NewWriter(client),
	)

	// Handler + router
	handler := api.NewHandler(workflow, log)
	router := api.NewRouter(handler)

	// Sweep abandoned exchanges in the background.
	sweepDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := handler.Sessions.Sweep(); n > 0 {
					log.Info().Int("removed", n).Msg("swept abandoned sessions")
				}
			case <-sweepDone:
				return
			}
		}
	}()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Int("port", cfg.ServerPort).
			Str("backend", cfg.LedgerBackend).
			Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	close(sweepDone)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// buildLedgerClient constructs the client for the configured backend. The
// returned closer is non-nil for backends holding resources.
func buildLedgerClient(ctx context.Context, cfg config.Config) (withdraw.LedgerClient, io.Closer, error) {
	switch cfg.LedgerBackend {
	case config.BackendMemory:
		return ledger.NewMemory(), nil, nil
	case config.BackendSQLite:
		client, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return client, client, nil
	case config.BackendXLSX:
		return xlsx.New(cfg.XLSXPath, cfg.Worksheet), nil, nil
	case config.BackendSheets:
		client, err := sheets.New(ctx, cfg.SheetsCredentialsFile, cfg.SpreadsheetKey, cfg.Worksheet)
		if err != nil {
			return nil, nil, err
		}
		return client, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown ledger backend %q", cfg.LedgerBackend)
	}
}
