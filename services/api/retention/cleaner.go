// Package retention removes samples older than the configured maximum age.
package retention

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultInterval  = time.Hour
	DefaultBatchSize = 500
)

// Deleter removes up to limit samples created before cutoff.
type Deleter interface {
	DeleteSamplesBefore(ctx context.Context, cutoff time.Time, limit int) (int64, error)
}

// Policy is the retention configuration. A zero MaxAge keeps samples forever.
type Policy struct {
	MaxAge    time.Duration
	Interval  time.Duration
	BatchSize int
}

// Enabled reports whether any sample will ever be deleted.
func (p Policy) Enabled() bool {
	return p.MaxAge > 0
}

// Cleaner periodically applies a Policy.
type Cleaner struct {
	store  Deleter
	policy Policy
	log    *logrus.Logger
	now    func() time.Time
}

func NewCleaner(store Deleter, policy Policy, log *logrus.Logger) *Cleaner {
	if policy.Interval <= 0 {
		policy.Interval = DefaultInterval
	}
	if policy.BatchSize <= 0 {
		policy.BatchSize = DefaultBatchSize
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Cleaner{store: store, policy: policy, log: log, now: time.Now}
}

// Start runs the cleanup job until ctx is cancelled. It returns immediately
// when the policy keeps samples forever.
func (c *Cleaner) Start(ctx context.Context) {
	if !c.policy.Enabled() {
		c.log.Info("retention disabled, samples are kept forever")
		return
	}
	c.log.WithFields(logrus.Fields{
		"max_age":  c.policy.MaxAge.String(),
		"interval": c.policy.Interval.String(),
	}).Info("retention job started")

	go func() {
		ticker := time.NewTicker(c.policy.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				c.log.Info("retention job stopped")
				return
			case <-ticker.C:
				if _, err := c.RunOnce(ctx); err != nil {
					c.log.WithError(err).Error("retention run failed")
				}
			}
		}
	}()
}

// RunOnce deletes expired samples batch by batch and returns the total removed.
func (c *Cleaner) RunOnce(ctx context.Context) (int64, error) {
	if !c.policy.Enabled() {
		return 0, nil
	}
	cutoff := c.now().Add(-c.policy.MaxAge)

	var total int64
	for {
		n, err := c.store.DeleteSamplesBefore(ctx, cutoff, c.policy.BatchSize)
		if err != nil {
			return total, err
		}
		total += n
		if n < int64(c.policy.BatchSize) {
			break
		}
	}
	if total > 0 {
		c.log.WithFields(logrus.Fields{
			"deleted": total,
			"cutoff":  cutoff.UTC().Format(time.RFC3339),
		}).Info("expired samples removed")
	}
	return total, nil
}
