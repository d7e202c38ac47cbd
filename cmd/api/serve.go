package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"propertymasters_backend/internal/server"
	"propertymasters_backend/pkg/config"
	"propertymasters_backend/pkg/cron"
	"propertymasters_backend/pkg/email"
	"propertymasters_backend/pkg/features"
	"propertymasters_backend/pkg/seed"
	"propertymasters_backend/pkg/store"
)

func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	st, err := store.Open(cfg.Store, store.Options{})
	if err != nil {
		return fmt.Errorf("could not open store: %w", err)
	}
	defer st.Close()

	if cfg.Store.Seed {
		if err := seed.SeedProperties(ctx, st); err != nil {
			return fmt.Errorf("could not seed properties: %w", err)
		}
	}

	emailService, err := email.NewFromConfig(ctx, cfg.Email)
	if err != nil {
		return fmt.Errorf("could not initialize email service: %w", err)
	}

	retryCron, err := cron.InitNotificationRetryCron(cfg.Email.RetrySchedule, emailService, cfg.Email.Timeout*10)
	if err != nil {
		return fmt.Errorf("could not initialize notification retry: %w", err)
	}

	app := server.New(server.Deps{
		Store:          st,
		Notifier:       emailService,
		EmailTransport: emailService.TransportName(),
		Features:       features.FromConfig(cfg.Features),
		CORSOrigins:    cfg.Server.CORSOrigins,
		AccessLog:      true,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server is running on port %s", cfg.Server.Port)
		errCh <- app.Listen(":" + cfg.Server.Port)
	}()

	select {
	case err := <-errCh:
		cron.Stop(context.Background(), retryCron)
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	cron.Stop(shutdownCtx, retryCron)

	if n := emailService.Outbox().Len(); n > 0 {
		log.Printf("[WARN] %d undelivered notifications lost on shutdown", n)
	}
	return nil
}
