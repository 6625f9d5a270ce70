package notify

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSchedule is the cron spec the Runner checks for due reminders on.
const DefaultSchedule = "@every 1m"

// DueSource hands out reminders that are ready to fire.
type DueSource interface {
	TakeDue(ctx context.Context, now time.Time) ([]Reminder, error)
}

// Deliverer presents a fired reminder to the user.
type Deliverer interface {
	Deliver(ctx context.Context, r Reminder) error
}

// DeliverFunc adapts a function to Deliverer.
type DeliverFunc func(ctx context.Context, r Reminder) error

// Deliver calls f.
func (f DeliverFunc) Deliver(ctx context.Context, r Reminder) error { return f(ctx, r) }

// LogDeliverer delivers reminders as log lines.
type LogDeliverer struct {
	Log *zap.Logger
}

// Deliver logs r at info level.
func (d LogDeliverer) Deliver(_ context.Context, r Reminder) error {
	d.Log.Info("reminder",
		zap.Int("day", r.Day),
		zap.String("title", r.Title),
		zap.String("body", r.Body),
		zap.Time("fire_at", r.FireAt))
	return nil
}

// Runner periodically takes due reminders and delivers them.
type Runner struct {
	log       *zap.Logger
	source    DueSource
	deliverer Deliverer
	schedule  string
	now       func() time.Time

	cron   *cron.Cron
	cancel context.CancelFunc
}

// NewRunner creates a Runner. An empty schedule means DefaultSchedule; a nil
// deliverer logs reminders.
func NewRunner(source DueSource, deliverer Deliverer, schedule string, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("notify.runner")
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if deliverer == nil {
		deliverer = LogDeliverer{Log: log}
	}
	return &Runner{
		log:       log,
		source:    source,
		deliverer: deliverer,
		schedule:  schedule,
		now:       time.Now,
	}
}

// Start begins checking on the runner's schedule.
func (r *Runner) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	c := cron.New()
	if _, err := c.AddFunc(r.schedule, func() {
		if _, err := r.RunOnce(runCtx); err != nil {
			r.log.Warn("delivering due reminders", zap.Error(err))
		}
	}); err != nil {
		cancel()
		return err
	}
	c.Start()
	r.cron = c
	r.cancel = cancel
	return nil
}

// Stop halts the schedule and waits for a running check to finish.
func (r *Runner) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}
}

// Run checks once immediately, then on schedule until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	if _, err := r.RunOnce(ctx); err != nil {
		r.log.Warn("delivering due reminders", zap.Error(err))
	}
	if err := r.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	r.Stop()
	return nil
}

// RunOnce delivers every due reminder and returns how many were delivered.
// A failed delivery is logged and does not stop the rest.
func (r *Runner) RunOnce(ctx context.Context) (int, error) {
	due, err := r.source.TakeDue(ctx, r.now())
	if err != nil {
		return 0, err
	}
	delivered := 0
	for _, rem := range due {
		if err := r.deliverer.Deliver(ctx, rem); err != nil {
			r.log.Error("delivering reminder", zap.Int("day", rem.Day), zap.Error(err))
			continue
		}
		delivered++
	}
	return delivered, nil
}
