package notify

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/selah/internal/calendar"
	"github.com/hpungsan/selah/internal/db"
	"github.com/hpungsan/selah/internal/errors"
	"github.com/hpungsan/selah/internal/kv"
)

var sept10 = time.Date(2026, time.September, 10, 7, 0, 0, 0, time.UTC)

func newLocalPlatform(t *testing.T) *LocalPlatform {
	t.Helper()
	database, err := db.Init(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewLocalPlatform(kv.NewSQLiteSlot(database))
}

func TestPlan_OnlyFutureDays(t *testing.T) {
	cal := calendar.Default()

	early := Plan(cal, PlanOptions{Hour: 8}, sept10)
	require.Len(t, early, 21)
	assert.Equal(t, 10, early[0].Day)
	assert.Equal(t, 30, early[len(early)-1].Day)

	late := Plan(cal, PlanOptions{Hour: 8}, sept10.Add(2*time.Hour))
	require.Len(t, late, 20)
	assert.Equal(t, 11, late[0].Day)

	for _, r := range late {
		assert.True(t, r.FireAt.After(sept10), "day %d fires in the past", r.Day)
	}
}

func TestPlan_Fields(t *testing.T) {
	cal := calendar.Default()
	plan := Plan(cal, PlanOptions{Hour: 6, Minute: 30}, sept10)
	require.NotEmpty(t, plan)

	first := plan[0]
	day, _ := cal.Day(first.Day)
	assert.Equal(t, "Day 10: "+day.Title, first.Title)
	assert.Equal(t, day.Description, first.Body)
	assert.Equal(t, time.Date(2026, time.September, 10, 6, 30, 0, 0, time.UTC), first.FireAt)
	assert.Len(t, first.ID, 26)

	ids := make(map[string]bool)
	for _, r := range plan {
		assert.False(t, ids[r.ID], "duplicate id %s", r.ID)
		ids[r.ID] = true
	}
}

func TestPlan_YearAndMonth(t *testing.T) {
	assert.Len(t, Plan(calendar.Default(), PlanOptions{Year: 2027, Hour: 8}, sept10), 30)
	assert.Empty(t, Plan(calendar.Default(), PlanOptions{Year: 2025, Hour: 8}, sept10))

	oct := Plan(calendar.New(time.October), PlanOptions{Hour: 8}, sept10)
	require.Len(t, oct, 30)
	assert.Equal(t, time.October, oct[0].FireAt.Month())
}

type denyPlatform struct {
	cancelled bool
	scheduled int
}

func (p *denyPlatform) RequestPermission(context.Context) (bool, error) { return false, nil }
func (p *denyPlatform) CancelAll(context.Context) error                 { p.cancelled = true; return nil }
func (p *denyPlatform) Schedule(context.Context, Reminder) error        { p.scheduled++; return nil }

func TestScheduleAll_PermissionDenied(t *testing.T) {
	p := &denyPlatform{}
	s := NewScheduler(p, calendar.Default(), PlanOptions{Hour: 8}, nil)

	res, err := s.ScheduleAll(context.Background(), sept10)
	require.NoError(t, err)
	assert.False(t, res.Granted)
	assert.Empty(t, res.Scheduled)
	assert.False(t, p.cancelled)
	assert.Zero(t, p.scheduled)
}

func TestScheduleAll_ReplacesPending(t *testing.T) {
	ctx := context.Background()
	p := newLocalPlatform(t)
	s := NewScheduler(p, calendar.Default(), PlanOptions{Hour: 8}, nil)

	_, err := s.ScheduleAll(ctx, sept10)
	require.NoError(t, err)

	res, err := s.ScheduleAll(ctx, sept10.Add(48*time.Hour))
	require.NoError(t, err)
	assert.True(t, res.Granted)
	assert.Len(t, res.Scheduled, 19)

	pending, err := p.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 19)
	assert.Equal(t, 12, pending[0].Day)

	require.NoError(t, s.CancelAll(ctx))
	pending, err = p.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestLocalPlatform_TakeDue(t *testing.T) {
	ctx := context.Background()
	p := newLocalPlatform(t)
	for _, r := range Plan(calendar.Default(), PlanOptions{Hour: 8}, sept10) {
		require.NoError(t, p.Schedule(ctx, r))
	}

	due, err := p.TakeDue(ctx, time.Date(2026, time.September, 12, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, due, 3)
	assert.Equal(t, []int{10, 11, 12}, []int{due[0].Day, due[1].Day, due[2].Day})

	again, err := p.TakeDue(ctx, time.Date(2026, time.September, 12, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, again)

	pending, err := p.Pending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 18)
}

func TestLocalPlatform_RedisSlot(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	p := NewLocalPlatform(kv.NewRedisSlot(client))

	r := Reminder{ID: "01J0000000000000000000000A", Day: 1, Title: "Day 1", FireAt: sept10}
	require.NoError(t, p.Schedule(ctx, r))
	require.NoError(t, p.Schedule(ctx, r))

	pending, err := p.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.True(t, pending[0].FireAt.Equal(sept10))
	assert.True(t, mr.Exists(ScheduledSlotKey))
}

func TestLocalPlatform_CorruptSlot(t *testing.T) {
	ctx := context.Background()
	p := newLocalPlatform(t)
	require.NoError(t, p.slot.Put(ctx, ScheduledSlotKey, "[{"))

	_, err := p.Pending(ctx)
	assert.True(t, errors.Is(err, errors.ErrStorage), "got %v", err)
}

type fixedSource struct {
	mu    sync.Mutex
	due   []Reminder
	calls int
	err   error
}

func (s *fixedSource) TakeDue(context.Context, time.Time) ([]Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	due := s.due
	s.due = nil
	return due, s.err
}

func TestRunner_RunOnce(t *testing.T) {
	src := &fixedSource{due: []Reminder{{Day: 3, Title: "Day 3: x"}, {Day: 4, Title: "Day 4: y"}, {Day: 5, Title: "Day 5: z"}}}
	var got []int
	deliver := DeliverFunc(func(_ context.Context, r Reminder) error {
		if r.Day == 4 {
			return stderrors.New("screen locked")
		}
		got = append(got, r.Day)
		return nil
	})

	n, err := NewRunner(src, deliver, "", nil).RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []int{3, 5}, got)
}

func TestRunner_RunOnce_SourceError(t *testing.T) {
	src := &fixedSource{err: stderrors.New("slot down")}

	_, err := NewRunner(src, nil, "", nil).RunOnce(context.Background())
	assert.Error(t, err)
}

func TestRunner_RunStopsOnCancel(t *testing.T) {
	src := &fixedSource{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- NewRunner(src, nil, "@every 1h", nil).Run(ctx) }()

	require.Eventually(t, func() bool {
		src.mu.Lock()
		defer src.mu.Unlock()
		return src.calls >= 1
	}, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunner_BadSchedule(t *testing.T) {
	err := NewRunner(&fixedSource{}, nil, "every tuesday", nil).Start(context.Background())
	require.Error(t, err)
}
