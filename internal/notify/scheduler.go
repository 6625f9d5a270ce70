package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hpungsan/selah/internal/calendar"
)

// Platform is the notification backend reminders are handed to.
type Platform interface {
	RequestPermission(ctx context.Context) (bool, error)
	CancelAll(ctx context.Context) error
	Schedule(ctx context.Context, r Reminder) error
}

// ScheduleResult reports a ScheduleAll run.
type ScheduleResult struct {
	Granted   bool       `json:"granted"`
	Scheduled []Reminder `json:"scheduled"`
}

// Scheduler plans the calendar's reminders and pushes them to a Platform.
type Scheduler struct {
	platform Platform
	cal      *calendar.Calendar
	opts     PlanOptions
	log      *zap.Logger
}

// NewScheduler creates a Scheduler. A nil logger disables logging.
func NewScheduler(platform Platform, cal *calendar.Calendar, opts PlanOptions, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{platform: platform, cal: cal, opts: opts, log: log.Named("notify")}
}

// RequestPermission asks the platform whether reminders may be delivered.
func (s *Scheduler) RequestPermission(ctx context.Context) (bool, error) {
	return s.platform.RequestPermission(ctx)
}

// ScheduleAll replaces every scheduled reminder with a fresh plan starting
// after now. Without permission nothing is cancelled or scheduled.
func (s *Scheduler) ScheduleAll(ctx context.Context, now time.Time) (*ScheduleResult, error) {
	granted, err := s.platform.RequestPermission(ctx)
	if err != nil {
		return nil, err
	}
	if !granted {
		s.log.Warn("reminder permission denied")
		return &ScheduleResult{Granted: false, Scheduled: []Reminder{}}, nil
	}

	if err := s.platform.CancelAll(ctx); err != nil {
		return nil, err
	}

	planned := Plan(s.cal, s.opts, now)
	for _, r := range planned {
		if err := s.platform.Schedule(ctx, r); err != nil {
			s.log.Error("scheduling reminder", zap.Int("day", r.Day), zap.Error(err))
			return nil, err
		}
	}
	if planned == nil {
		planned = []Reminder{}
	}

	s.log.Info("reminders scheduled", zap.Int("count", len(planned)))
	return &ScheduleResult{Granted: true, Scheduled: planned}, nil
}

// CancelAll removes every scheduled reminder.
func (s *Scheduler) CancelAll(ctx context.Context) error {
	return s.platform.CancelAll(ctx)
}
