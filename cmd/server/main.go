package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/specdoc/internal/api"
	"github.com/dgallion1/specdoc/internal/compose"
	"github.com/dgallion1/specdoc/internal/config"
	"github.com/dgallion1/specdoc/internal/flow"
	"github.com/dgallion1/specdoc/internal/pipeline"
	"github.com/dgallion1/specdoc/internal/render"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Diagram agent is optional; without a URL the builder degrades to
	// placeholder paragraphs.
	var agent flow.Agent
	var httpAgent *flow.HTTPAgent
	if cfg.DiagramAgentURL != "" {
		httpAgent = flow.NewHTTPAgent(cfg.DiagramAgentURL, cfg.DiagramAgentAPIKey, cfg.DiagramTimeout)
		agent = flow.WithRetry(httpAgent, cfg.DiagramMaxRetries)
	}

	builder := compose.NewBuilder(agent, log, compose.Options{
		Title:       cfg.DocumentTitle,
		Attribution: cfg.Attribution,
	})
	newDoc := pipeline.DocumentFactory(func() pipeline.Document { return render.NewDocument() })

	orch := pipeline.NewOrchestrator(cfg, builder, newDoc, log)
	orch.Start(ctx)

	srv := api.NewServer(orch, builder, newDoc, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if httpAgent != nil {
			httpAgent.Close()
		}
	}()

	log.Info("starting specdoc", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
