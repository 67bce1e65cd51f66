package service

import (
	"context"
	"fmt"
	"time"

	apierrors "github.com/bantaybaha/floodwatch/services/api/errors"
)

// LatestResult is the newest reading and its freshness.
type LatestResult struct {
	Reading   Reading
	Freshness Freshness
}

// Latest returns the sample with the highest id.
func (s *Service) Latest(ctx context.Context) (LatestResult, error) {
	sample, err := s.store.LatestSample(ctx)
	if err != nil {
		s.log.WithError(err).Error("failed to load latest sample")
		return LatestResult{}, apierrors.NewUnavailableError("water level data unavailable", err)
	}
	if sample == nil {
		return LatestResult{}, apierrors.NewNotFoundError("No water level data found", nil)
	}

	reading := s.ToReading(*sample)
	return LatestResult{Reading: reading, Freshness: s.freshness(reading.RecordedAt)}, nil
}

// WindowResult holds the readings of a time window, oldest first.
type WindowResult struct {
	Readings []Reading
	// Current is the latest sample overall, which may lie outside the window.
	// It is nil when the store is empty or cannot be read.
	Current   *Reading
	Freshness *Freshness
	Duration  time.Duration
	From      time.Time
	To        time.Time
}

// ResolveWindow applies the default to a zero duration and checks the bounds.
func (s *Service) ResolveWindow(d time.Duration) (time.Duration, error) {
	if d == 0 {
		return s.defWindow, nil
	}
	if d < 0 {
		return 0, apierrors.NewValidationError("window must be positive", nil)
	}
	if d > s.maxWindow {
		return 0, apierrors.NewValidationError(fmt.Sprintf("window must not exceed %s", s.maxWindow), nil)
	}
	return d, nil
}

// Window returns every reading recorded within d of now together with the
// latest sample. A store failure yields an empty result and is only logged.
func (s *Service) Window(ctx context.Context, d time.Duration) (WindowResult, error) {
	d, err := s.ResolveWindow(d)
	if err != nil {
		return WindowResult{}, err
	}

	to := s.now().UTC()
	from := to.Add(-d)
	res := WindowResult{Readings: make([]Reading, 0), Duration: d, From: from, To: to}

	samples, err := s.store.SamplesBetween(ctx, from, to)
	if err != nil {
		s.log.WithError(err).WithField("window", d.String()).Error("failed to load samples for window")
		return res, nil
	}

	for _, sm := range samples {
		res.Readings = append(res.Readings, s.ToReading(sm))
	}

	latest, err := s.store.LatestSample(ctx)
	if err != nil {
		s.log.WithError(err).Error("failed to load latest sample for window")
		return res, nil
	}
	if latest != nil {
		current := s.ToReading(*latest)
		f := s.freshness(current.RecordedAt)
		res.Current = &current
		res.Freshness = &f
	}
	return res, nil
}
