package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bantaybaha/floodwatch/services/api/waterlevel"
	"github.com/bantaybaha/floodwatch/services/sensorsim/internal/client"
	"github.com/bantaybaha/floodwatch/services/sensorsim/internal/config"
	"github.com/bantaybaha/floodwatch/services/sensorsim/internal/gauge"
)

type pusher interface {
	Push(ctx context.Context, r gauge.Reading) (client.Ack, error)
}

type simulator struct {
	cfg        config.Config
	source     gauge.Source
	push       pusher
	classifier waterlevel.Classifier
	log        *logrus.Logger
	last       *gauge.Pushed
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if err := run(log); err != nil {
		log.WithError(err).Fatal("sensorsim failed")
	}
}

func run(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	source, err := openSource(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sim := &simulator{
		cfg:        cfg,
		source:     source,
		push:       client.New(&http.Client{Timeout: cfg.RequestTimeout}, cfg.IngestURL, cfg.APIKey),
		classifier: waterlevel.DefaultClassifier(),
		log:        log,
	}
	log.WithFields(logrus.Fields{
		"ingest_url": cfg.IngestURL,
		"interval":   cfg.Interval.String(),
		"dry_run":    cfg.DryRun,
	}).Info("sensor simulator started")

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()
	for {
		sim.step(ctx, time.Now().UTC())
		select {
		case <-ctx.Done():
			log.Info("sensor simulator stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func openSource(cfg config.Config) (gauge.Source, error) {
	if cfg.CSVPath == "" {
		return gauge.NewRandomWalk(cfg.StartCM, cfg.StepCM, cfg.MaxCM, cfg.Seed), nil
	}
	f, err := os.Open(cfg.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("open replay file: %w", err)
	}
	defer f.Close()
	return gauge.LoadCSV(f)
}

// step takes one reading and pushes it when it is worth sending. It reports
// whether a push was made.
func (s *simulator) step(ctx context.Context, now time.Time) bool {
	raw := s.source.Next()
	if raw == nil {
		s.log.Warn("sensor returned no usable value, reading dropped")
		return false
	}
	cm := *raw
	if !gauge.ShouldPush(cm, now, s.last, s.cfg.MinInterval, s.cfg.ValueEpsilon) {
		s.log.WithField("water_level_cm", cm).Debug("reading unchanged, skipped")
		return false
	}

	reading := gauge.BuildReading(cm, s.classifier)
	entry := s.log.WithFields(logrus.Fields{
		"water_level_cm": reading.CM,
		"feet":           reading.Feet,
		"threshold":      reading.Threshold,
	})
	if s.cfg.DryRun {
		entry.Info("dry-run: would push reading")
		s.last = &gauge.Pushed{CM: cm, TS: now}
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()
	ack, err := s.push.Push(ctx, reading)
	if err != nil {
		entry.WithError(err).Error("push failed")
		return false
	}
	s.last = &gauge.Pushed{CM: cm, TS: now}
	entry.WithField("sample_id", ack.ID).Info("reading pushed")
	return true
}
