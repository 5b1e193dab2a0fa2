package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-review/internal/alerting"
	"github.com/jonathan/resume-review/internal/config"
	"github.com/jonathan/resume-review/internal/db"
	"github.com/jonathan/resume-review/internal/delivery"
	"github.com/jonathan/resume-review/pkg/events"
)

var workerConfigPath string

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the delivery worker loop",
	Long:  `Poll for due report deliveries on an interval, sending emails with bounded retries, and expose Prometheus metrics.`,
	RunE:  runWorker,
}

func init() {
	workerCmd.Flags().StringVar(&workerConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(workerCmd)
}

func runWorker(_ *cobra.Command, _ []string) error {
	cfg := &config.Config{}
	if workerConfigPath != "" {
		loaded, err := config.LoadConfig(workerConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	sink := events.NewSlogSink(os.Stdout)
	alerts := alerting.NewService(sink, 0)
	mailer := &delivery.SMTPMailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		From:     cfg.SMTPFrom,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
	}
	worker := delivery.NewWorker(database, mailer, sink, alerts, delivery.WorkerConfig{
		MaxAttempts: cfg.MaxAttempts,
		RetryDelay:  time.Duration(cfg.RetryDelayMinutes) * time.Minute,
		BatchSize:   cfg.BatchSize,
		SendTimeout: time.Duration(cfg.SendTimeoutSeconds) * time.Second,
	})

	metricsServer := &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: promhttp.Handler(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Metrics listening on %s", cfg.MetricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("metrics server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return metricsServer.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		interval := time.Duration(cfg.PollIntervalMinutes) * time.Minute
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Printf("Delivery worker polling every %s", interval)
		for {
			stats, err := worker.ProcessDue(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				log.Printf("ProcessDue error: %v", err)
			} else if stats.Sent > 0 || stats.Failed > 0 {
				log.Printf("Delivery batch complete: sent=%d failed=%d", stats.Sent, stats.Failed)
			}

			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	})

	return g.Wait()
}
