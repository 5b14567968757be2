package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-textlens/config"
	"go-textlens/cronjobs"
	"go-textlens/nlp"
	"go-textlens/routes"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

// run returns instead of exiting so the deferred backend close and
// scheduler stop always happen.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Backend init failure is fatal, requests never see a missing model
	analyzer, err := nlp.InitAnalyzer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize NLP backend %q: %v", cfg.Provider, err)
	}
	defer nlp.CloseAnalyzer()

	if cfg.ProbeEnabled() {
		scheduler, err := cronjobs.InitCronJobs(cfg.ProbeSchedule, analyzer)
		if err != nil {
			log.Printf("Failed to schedule NLP probe: %v", err)
			return 1
		}
		defer scheduler.Stop()
	}

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: routes.SetupRouter(analyzer),
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("NLP API running at http://localhost:%d/", cfg.Port)
	if err := serve(srv, sigChan); err != nil {
		log.Printf("Failed to start server: %v", err)
		return 1
	}
	return 0
}

// serve runs srv until it fails or stop fires, then shuts it down gracefully.
func serve(srv *http.Server, stop <-chan os.Signal) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-stop:
		log.Println("Shutdown signal received, stopping...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	return nil
}
