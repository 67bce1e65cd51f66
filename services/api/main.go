package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/bantaybaha/floodwatch/services/api/config"
	"github.com/bantaybaha/floodwatch/services/api/db"
	httpserver "github.com/bantaybaha/floodwatch/services/api/http"
	"github.com/bantaybaha/floodwatch/services/api/notify"
	"github.com/bantaybaha/floodwatch/services/api/retention"
	"github.com/bantaybaha/floodwatch/services/api/service"
)

// sampleStore is what main needs from either store implementation.
type sampleStore interface {
	service.SampleStore
	retention.Deleter
	Close()
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("config error")
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	} else {
		logger.WithField("level", cfg.Log.Level).Warn("unknown log level, using info")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := openStore(ctx, *cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("db connection error")
	}
	defer store.Close()

	var publisher notify.Publisher = notify.Nop{}
	if cfg.Redis.Addr != "" {
		pub, client, err := notify.NewRedis(ctx, notify.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Channel:  cfg.Redis.Channel,
		})
		if err != nil {
			logger.WithError(err).Fatal("redis connection error")
		}
		defer client.Close()
		publisher = pub
		logger.WithField("channel", pub.Channel()).Info("publishing samples to redis")
	}

	svc := service.New(store, service.Options{
		Classifier:      cfg.Classifier(),
		Normalizer:      cfg.Normalizer(),
		FreshnessMaxAge: cfg.Freshness.MaxAge,
		DefaultWindow:   cfg.Query.DefaultWindow,
		MaxWindow:       cfg.Query.MaxWindow,
		Publisher:       publisher,
		Logger:          logger,
	})

	retention.NewCleaner(store, retention.Policy{
		MaxAge:    cfg.Retention.MaxAge,
		Interval:  cfg.Retention.Interval,
		BatchSize: cfg.Retention.BatchSize,
	}, logger).Start(ctx)

	srv := httpserver.New(*cfg, svc, logger)
	if err := srv.Run(ctx); err != nil {
		logger.WithError(err).Fatal("server error")
	}
}

func openStore(ctx context.Context, cfg config.Config, logger *logrus.Logger) (sampleStore, error) {
	if cfg.Database.Driver == config.DriverMemory {
		logger.Warn("using in-memory sample store, data is lost on restart")
		return db.NewMemoryStore(nil), nil
	}

	store, err := db.New(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
