package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/bantaybaha/floodwatch/services/api/db"
	apierrors "github.com/bantaybaha/floodwatch/services/api/errors"
	"github.com/bantaybaha/floodwatch/services/api/notify"
	"github.com/bantaybaha/floodwatch/services/api/waterlevel"
)

// IngestRequest holds the values a sensor submits.
type IngestRequest struct {
	CM        float64
	Feet      float64
	Threshold string
}

// Reported echoes the caller's own feet and label values.
type Reported struct {
	Feet      float64          `json:"feet"`
	Threshold waterlevel.Level `json:"threshold"`
}

// IngestResult is the accepted sample and what the caller claimed about it.
type IngestResult struct {
	Reading  Reading
	Reported Reported
}

// Ingest validates and appends one sample. Nothing is stored when validation fails.
func (s *Service) Ingest(ctx context.Context, req IngestRequest) (IngestResult, error) {
	if !waterlevel.ValidReading(req.CM) {
		return IngestResult{}, apierrors.NewValidationError("cm must be a finite, non-negative number", nil)
	}
	if !finite(req.Feet) {
		return IngestResult{}, apierrors.NewValidationError("ft must be a finite number", nil)
	}

	reported := Reported{Feet: req.Feet, Threshold: waterlevel.ParseLevel(req.Threshold)}
	sample, err := s.store.InsertSample(ctx, db.NewSample{
		ReadingCM:         req.CM,
		ReportedFeet:      req.Feet,
		ReportedThreshold: string(reported.Threshold),
	})
	if err != nil {
		s.log.WithError(err).WithField("water_level_cm", req.CM).Error("failed to store sample")
		return IngestResult{}, apierrors.NewDatabaseError("failed to store sample", err)
	}

	reading := s.ToReading(sample)
	entry := s.log.WithFields(logrus.Fields{
		"sample_id":      reading.ID,
		"water_level_cm": reading.CM,
		"threshold":      reading.Threshold,
	})
	if reported.Threshold != reading.Threshold {
		entry.WithField("reported_threshold", reported.Threshold).Warn("reported threshold disagrees with derived threshold")
	}
	entry.Debug("sample stored")

	s.publish(ctx, reading)
	return IngestResult{Reading: reading, Reported: reported}, nil
}

func (s *Service) publish(ctx context.Context, r Reading) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	ev := notify.Event{
		ID:           r.ID,
		WaterLevelCM: r.CM,
		Threshold:    string(r.Threshold),
		RecordedAt:   r.RecordedAt,
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.log.WithError(err).WithField("sample_id", r.ID).Warn("failed to publish sample event")
	}
}
