package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/frahmantamala/finance-tracker/api"
	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/core/events"
	"github.com/frahmantamala/finance-tracker/internal/core/events/broker"
	"github.com/frahmantamala/finance-tracker/internal/transport/rest"
)

const shutdownTimeout = 30 * time.Second

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := startHTTPServer(); err != nil {
			fmt.Fprintf(os.Stderr, "server: %v\n", err)
			os.Exit(1)
		}
	},
}

// newEventBus returns the bus with its subscribers attached and a cleanup
// func that drains in-flight handlers before closing the broker connection.
func newEventBus(cfg internal.EventsConfig, log *slog.Logger) (*events.EventBus, func()) {
	bus := events.NewEventBus(log)
	bus.Subscribe(events.AllEvents, events.LogSubscriber(log))

	if cfg.AMQPURL == "" {
		return bus, bus.Wait
	}

	forwarder, err := broker.Dial(cfg.AMQPURL, cfg.Exchange, log)
	if err != nil {
		log.Warn("event forwarding disabled", "error", err)
		return bus, bus.Wait
	}
	bus.Subscribe(events.AllEvents, forwarder.Handle)
	log.Info("forwarding events", "exchange", cfg.Exchange)

	return bus, func() {
		bus.Wait()
		if err := forwarder.Close(); err != nil {
			log.Warn("failed to close broker connection", "error", err)
		}
	}
}

func startHTTPServer() error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	db, sqlDB, err := openDatabase(cfg.Database)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := api.Load(ctx); err != nil {
		log.Warn("openapi document is invalid", "error", err)
	}

	bus, drainEvents := newEventBus(cfg.Events, log)
	defer drainEvents()

	router := rest.NewRouter(rest.Dependencies{
		DB:             db,
		SQLX:           sqlDB,
		Security:       cfg.Security,
		AllowedOrigins: cfg.Server.Origins(),
		Events:         bus,
		Logger:         log,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting HTTP server", "address", server.Addr, "driver", cfg.Database.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
