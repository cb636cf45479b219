// The worker polls active users' time reminders on a fixed interval and
// publishes triggered reminders to the event bus for the notification
// pipeline.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nexttoyou/nexttoyou/internal/app"
	"github.com/nexttoyou/nexttoyou/internal/reminders/application/queries"
	"github.com/nexttoyou/nexttoyou/internal/reminders/application/subscribers"
	"github.com/nexttoyou/nexttoyou/internal/reminders/domain"
	"github.com/nexttoyou/nexttoyou/pkg/config"
	"github.com/nexttoyou/nexttoyou/pkg/observability"
)

func main() {
	logger := observability.LoggerFromEnv()
	slog.SetDefault(logger)

	logger.Info("starting nexttoyou reminder worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	metrics := observability.NewInMemoryMetrics()
	startNotificationConsumer(ctx, container, logger)
	startHealthServer(cfg.WorkerHealthAddr, logger)

	pollTicker := time.NewTicker(cfg.ReminderPollInterval)
	defer pollTicker.Stop()
	statsTicker := time.NewTicker(cfg.WorkerStatsInterval)
	defer statsTicker.Stop()

	logger.Info("worker running",
		"poll_interval", cfg.ReminderPollInterval.String(),
	)

	for {
		select {
		case <-ctx.Done():
			logger.Info("worker shutting down")
			return

		case <-pollTicker.C:
			pollOnce(ctx, container, metrics, logger)

		case <-statsTicker.C:
			logger.Info("worker stats",
				"polls", metrics.GetCounter(observability.MetricReminderPolls),
				"reminders_published", metrics.GetCounter(observability.MetricRemindersTriggered),
				"errors", metrics.GetCounter(observability.MetricReminderErrors),
			)
		}
	}
}

func pollOnce(ctx context.Context, container *app.Container, metrics observability.Metrics, logger *slog.Logger) {
	metrics.Counter(observability.MetricReminderPolls, 1)
	now := time.Now()

	userIDs, err := container.TaskRepo.ActiveUserIDs(ctx)
	if err != nil {
		metrics.Counter(observability.MetricReminderErrors, 1)
		logger.Error("failed to list active users", "error", err)
		return
	}

	for _, userID := range userIDs {
		events, err := container.DueTimeRemindersHandler.Handle(ctx, queries.DueTimeRemindersQuery{
			UserID: userID,
			Now:    now,
		})
		if err != nil {
			metrics.Counter(observability.MetricReminderErrors, 1)
			logger.Error("failed to evaluate time reminders",
				"user_id", userID,
				"error", err,
			)
			continue
		}

		for _, event := range events {
			if err := publishReminder(ctx, container, event); err != nil {
				metrics.Counter(observability.MetricReminderErrors, 1)
				logger.Error("failed to publish reminder",
					"task_id", event.TaskID,
					"error", err,
				)
				continue
			}
			metrics.Counter(observability.MetricRemindersTriggered, 1)
			metrics.Counter(observability.MetricEventsPublished, 1)
		}
	}
}

func publishReminder(ctx context.Context, container *app.Container, event domain.ReminderEvent) error {
	triggered := domain.NewReminderTriggered(event)
	payload, err := json.Marshal(triggered)
	if err != nil {
		return fmt.Errorf("marshal reminder event: %w", err)
	}
	return container.EventPublisher.Publish(ctx, triggered.RoutingKey(), payload)
}

// startNotificationConsumer registers the notification subscriber on the
// event bus and starts the consume loop. On the in-process bus dispatch is
// synchronous with Publish; with RabbitMQ the loop reads the notifier queue.
func startNotificationConsumer(ctx context.Context, container *app.Container, logger *slog.Logger) {
	consumer, err := container.NewReminderConsumer()
	if err != nil {
		logger.Warn("event consumer unavailable, notifications disabled", "error", err)
		return
	}
	consumer.RegisterConsumer(subscribers.NewNotificationSubscriber(logger))

	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("event consumer stopped", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		if err := consumer.Close(); err != nil {
			logger.Warn("error closing event consumer", "error", err)
		}
	}()
}

func startHealthServer(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	go func() {
		logger.Info("health server listening", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("health server stopped", "error", err)
		}
	}()
}
