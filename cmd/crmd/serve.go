package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/crmbase/crmdesk/internal/config"
	"github.com/crmbase/crmdesk/internal/events"
	"github.com/crmbase/crmdesk/internal/export"
	"github.com/crmbase/crmdesk/internal/server"
	"github.com/crmbase/crmdesk/internal/store"
	"github.com/crmbase/crmdesk/internal/store/memory"
	"github.com/crmbase/crmdesk/internal/store/postgres"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the CRM HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		slog.SetDefault(logger)

		// Load configuration.
		cfg, err := config.LoadServer()
		if err != nil {
			return err
		}

		// Pick a store. Without a database URL the daemon runs on the
		// in-memory store with demo data, which is enough for local
		// development and the front-end demo.
		var st store.Store
		if cfg.DatabaseURL != "" {
			pg, err := postgres.New(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			st = pg
			logger.Info("using postgres store")
		} else {
			mem := memory.New()
			if err := mem.SeedDemo(cmd.Context()); err != nil {
				return err
			}
			st = mem
			logger.Info("using in-memory store with demo data (CRMDESK_DATABASE_URL not set)")
		}

		// Create event publisher.
		var publisher events.Publisher
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				st.Close()
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			publisher = &events.NoopPublisher{}
			logger.Info("events disabled (CRMDESK_NATS_URL not set)")
		}

		crmServer := server.NewCRMServer(st, publisher, server.Credentials{
			Email:    cfg.DemoEmail,
			Password: cfg.DemoPassword,
		})

		httpServer := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: crmServer.NewHTTPHandler(),
		}

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		// Start export scheduler if any destinations are configured.
		var scheduler *export.Scheduler
		if cfg.ExportInterval > 0 {
			var dests []export.Destination

			if cfg.ExportPath != "" {
				dests = append(dests, export.NewFileDestination(cfg.ExportPath))
				logger.Info("export file destination enabled", "path", cfg.ExportPath)
			}

			if cfg.ExportS3Bucket != "" {
				s3Dest, err := export.NewS3Destination(
					context.Background(),
					cfg.ExportS3Bucket,
					cfg.ExportS3Key,
					cfg.ExportS3Region,
					cfg.ExportS3Endpoint,
				)
				if err != nil {
					logger.Error("failed to create S3 export destination", "err", err)
				} else {
					dests = append(dests, s3Dest)
					logger.Info("export S3 destination enabled", "bucket", cfg.ExportS3Bucket, "key", cfg.ExportS3Key)
				}
			}

			if len(dests) > 0 {
				scheduler = export.NewScheduler(st, dests, cfg.ExportInterval, logger)
				scheduler.Start()
				logger.Info("export scheduler started", "interval", cfg.ExportInterval)
			}
		}

		// Tail the event bus so operators can follow writes in the daemon log.
		var tailCancel func()
		if cfg.NATSURL != "" {
			sub, err := events.NewNATSSubscriber(cfg.NATSURL)
			if err != nil {
				logger.Error("failed to create event subscriber", "err", err)
			} else {
				ch, cancel, err := sub.Subscribe("crm.>")
				if err != nil {
					logger.Error("failed to subscribe to events", "err", err)
					sub.Close()
				} else {
					tailCancel = func() {
						cancel()
						sub.Close()
					}
					go func() {
						for payload := range ch {
							logger.Info("event", "payload", string(payload))
						}
					}()
					logger.Info("event tail started", "topic", "crm.>")
				}
			}
		}

		logger.Info("crm server started", "http_addr", cfg.HTTPAddr, "demo_email", cfg.DemoEmail)

		// Wait for SIGINT or SIGTERM.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		if tailCancel != nil {
			tailCancel()
			logger.Info("event tail stopped")
		}

		if scheduler != nil {
			scheduler.Stop()
			logger.Info("export scheduler stopped")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		if err := publisher.Close(); err != nil {
			logger.Error("error closing publisher", "err", err)
		}
		if err := st.Close(); err != nil {
			logger.Error("error closing store", "err", err)
		}

		logger.Info("shutdown complete")
		return nil
	},
}
