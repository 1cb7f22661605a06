// ABOUTME: Cobra command that runs the HTTP API.
// ABOUTME: Serves the journal over chi until SIGINT or SIGTERM, then shuts down gracefully.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/2389-research/birdlog/internal/httpserver"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the journal over HTTP",
	Long: `Run a JSON API for sightings plus a GeoJSON marker feed.

Routes:
  GET    /healthz
  GET    /api/birds[?q=query]
  POST   /api/birds
  GET    /api/birds/{id}
  PUT    /api/birds/{id}
  DELETE /api/birds/{id}
  GET    /api/map
  GET    /api/near?lat=..&lng=..&radius=..`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Address to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := globalConfig.GetListen()
	if serveListen != "" {
		addr = serveListen
	}

	srv := httpserver.New(addr, httpserver.Deps{
		Birds:      globalStore,
		Logger:     globalLogger,
		DefaultLoc: globalConfig.DefaultLocation(),
		Version:    version,
		StartTime:  time.Now(),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Serving %s on %s\n", globalStore.Path(), addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
