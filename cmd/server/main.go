package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/bq-cafe/pos-api/internal/config"
	"github.com/bq-cafe/pos-api/internal/database"
	"github.com/bq-cafe/pos-api/internal/events"
	"github.com/bq-cafe/pos-api/internal/logger"
	"github.com/bq-cafe/pos-api/internal/router"
	"github.com/bq-cafe/pos-api/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	lg := logger.Setup(cfg)

	if err := run(cfg, lg); err != nil {
		lg.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, lg zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}
	lg.Info().Msg("connected to database")

	if cfg.AutoMigrate {
		if err := database.Migrate(cfg.DatabaseURL); err != nil {
			return err
		}
		lg.Info().Msg("migrations applied")
	}

	hub := ws.NewHub()
	publishers := events.Fanout{hub}

	switch cfg.Events.Driver {
	case config.EventsDriverAMQP:
		p, err := events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.AMQPExchange)
		if err != nil {
			return err
		}
		defer p.Close() //nolint:errcheck
		publishers = append(publishers, p)
		lg.Info().Str("exchange", cfg.Events.AMQPExchange).Msg("publishing events to amqp")
	case config.EventsDriverKafka:
		p := events.NewKafkaPublisher(cfg.Events.KafkaBrokers, cfg.Events.KafkaTopic)
		defer p.Close() //nolint:errcheck
		publishers = append(publishers, p)
		lg.Info().Str("topic", cfg.Events.KafkaTopic).Msg("publishing events to kafka")
	}

	r := router.New(cfg, database.New(pool), pool, hub, publishers, lg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		lg.Info().Str("addr", srv.Addr).Str("timezone", cfg.Timezone).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		lg.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
