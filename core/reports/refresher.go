package reports

import (
	"context"

	"github.com/robfig/cron/v3"

	"kestrel-sir/config"
	"kestrel-sir/core/utils"
)

// Refresher warms the feed cache on a cron schedule so dashboard requests
// usually hit a fresh snapshot.
type Refresher struct {
	cfg    config.FeedConfig
	svc    *Service
	logger *utils.Logger
	cron   *cron.Cron
}

func NewRefresher(cfg config.FeedConfig, svc *Service, logger *utils.Logger) *Refresher {
	return &Refresher{cfg: cfg, svc: svc, logger: logger}
}

func (r *Refresher) StartWithContext(ctx context.Context) {
	if r == nil || r.svc == nil || !r.cfg.RefreshEnabled {
		return
	}
	schedule := r.cfg.RefreshSchedule
	if schedule == "" {
		schedule = "@every 5m"
	}
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if _, err := r.svc.Refresh(ctx); err != nil {
			r.logger.Errorf("feed refresh: %v", err)
		}
	})
	if err != nil {
		r.logger.Errorf("feed refresh schedule %q: %v", schedule, err)
		return
	}
	r.cron = c
	c.Start()
}

func (r *Refresher) StopWithContext(ctx context.Context) error {
	if r == nil || r.cron == nil {
		return nil
	}
	stopped := r.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
	}
	return nil
}
