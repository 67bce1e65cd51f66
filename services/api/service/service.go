// Package service implements ingestion and the read queries over stored samples.
package service

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bantaybaha/floodwatch/services/api/db"
	apierrors "github.com/bantaybaha/floodwatch/services/api/errors"
	"github.com/bantaybaha/floodwatch/services/api/notify"
	"github.com/bantaybaha/floodwatch/services/api/waterlevel"
)

const (
	DefaultWindow    = 24 * time.Hour
	DefaultMaxWindow = 7 * 24 * time.Hour
	publishTimeout   = 2 * time.Second
)

// SampleStore is the persistence the service needs. Both db.Store and
// db.MemoryStore satisfy it.
type SampleStore interface {
	InsertSample(ctx context.Context, in db.NewSample) (db.Sample, error)
	LatestSample(ctx context.Context) (*db.Sample, error)
	SamplesBetween(ctx context.Context, from, to time.Time) ([]db.Sample, error)
	Ping(ctx context.Context) error
}

// Options configures a Service. Zero values fall back to defaults.
type Options struct {
	Classifier      waterlevel.Classifier
	Normalizer      waterlevel.Normalizer
	FreshnessMaxAge time.Duration
	DefaultWindow   time.Duration
	MaxWindow       time.Duration
	Publisher       notify.Publisher
	Logger          *logrus.Logger
	Now             func() time.Time
}

// Service answers ingestion and read requests.
type Service struct {
	store      SampleStore
	classifier waterlevel.Classifier
	normalizer waterlevel.Normalizer
	maxAge     time.Duration
	defWindow  time.Duration
	maxWindow  time.Duration
	publisher  notify.Publisher
	log        *logrus.Logger
	now        func() time.Time
}

// New builds a Service over store.
func New(store SampleStore, opts Options) *Service {
	s := &Service{
		store:      store,
		classifier: opts.Classifier,
		normalizer: opts.Normalizer,
		maxAge:     opts.FreshnessMaxAge,
		defWindow:  opts.DefaultWindow,
		maxWindow:  opts.MaxWindow,
		publisher:  opts.Publisher,
		log:        opts.Logger,
		now:        opts.Now,
	}
	if s.classifier == (waterlevel.Classifier{}) {
		s.classifier = waterlevel.DefaultClassifier()
	}
	if s.maxAge <= 0 {
		s.maxAge = waterlevel.DefaultFreshness
	}
	if s.defWindow <= 0 {
		s.defWindow = DefaultWindow
	}
	if s.maxWindow <= 0 {
		s.maxWindow = DefaultMaxWindow
	}
	if s.publisher == nil {
		s.publisher = notify.Nop{}
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Reading is the served view of a sample. Feet and threshold are always
// derived from the centimeter value.
type Reading struct {
	ID         int64            `json:"id"`
	CM         float64          `json:"water_level_cm"`
	Meters     float64          `json:"water_level_meters"`
	Feet       float64          `json:"water_level_feet"`
	Display    string           `json:"water_level_display"`
	Threshold  waterlevel.Level `json:"threshold"`
	Timestamp  string           `json:"timestamp"`
	RecordedAt time.Time        `json:"-"`
}

// Freshness tells a client whether the reading is recent enough to trust.
type Freshness struct {
	Fresh         bool  `json:"fresh"`
	AgeSeconds    int64 `json:"age_seconds"`
	MaxAgeSeconds int64 `json:"max_age_seconds"`
}

// ToReading renders a stored sample.
func (s *Service) ToReading(sm db.Sample) Reading {
	return Reading{
		ID:         sm.ID,
		CM:         sm.ReadingCM,
		Meters:     waterlevel.Round(waterlevel.CMToMeters(sm.ReadingCM), 3),
		Feet:       waterlevel.Round(waterlevel.CMToFeet(sm.ReadingCM), 2),
		Display:    waterlevel.FeetInches(sm.ReadingCM),
		Threshold:  s.classifier.Classify(sm.ReadingCM),
		Timestamp:  s.normalizer.Display(sm.CreatedAt),
		RecordedAt: sm.CreatedAt,
	}
}

func (s *Service) freshness(recordedAt time.Time) Freshness {
	fresh, age := waterlevel.Freshness(recordedAt, s.now(), s.maxAge)
	return Freshness{
		Fresh:         fresh,
		AgeSeconds:    int64(age / time.Second),
		MaxAgeSeconds: int64(s.maxAge / time.Second),
	}
}

// Ready reports whether the store can serve requests.
func (s *Service) Ready(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return apierrors.NewUnavailableError("sample store unreachable", err)
	}
	return nil
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.now()
}

// Display renders t in the configured display timezone.
func (s *Service) Display(t time.Time) string {
	return s.normalizer.Display(t)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
