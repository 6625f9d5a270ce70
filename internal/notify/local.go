package notify

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/hpungsan/selah/internal/errors"
	"github.com/hpungsan/selah/internal/kv"
)

// ScheduledSlotKey is the slot holding the local platform's pending reminders.
const ScheduledSlotKey = "scheduled_reminders"

// LocalPlatform keeps scheduled reminders in a persistence slot and always
// grants permission. A Runner delivers them.
type LocalPlatform struct {
	mu   sync.Mutex
	slot kv.Slot
}

// NewLocalPlatform creates a LocalPlatform over slot.
func NewLocalPlatform(slot kv.Slot) *LocalPlatform {
	return &LocalPlatform{slot: slot}
}

// RequestPermission always grants.
func (p *LocalPlatform) RequestPermission(context.Context) (bool, error) {
	return true, nil
}

// CancelAll drops every pending reminder.
func (p *LocalPlatform) CancelAll(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.slot.Delete(ctx, ScheduledSlotKey)
}

// Schedule adds r to the pending set, replacing any reminder with the same id.
func (p *LocalPlatform) Schedule(ctx context.Context, r Reminder) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	pending, err := p.load(ctx)
	if err != nil {
		return err
	}
	kept := pending[:0]
	for _, existing := range pending {
		if existing.ID != r.ID {
			kept = append(kept, existing)
		}
	}
	return p.save(ctx, append(kept, r))
}

// Pending returns scheduled reminders ordered by fire time.
func (p *LocalPlatform) Pending(ctx context.Context) ([]Reminder, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pending, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	sortByFireAt(pending)
	return pending, nil
}

// TakeDue removes and returns every reminder whose fire time is at or
// before now.
func (p *LocalPlatform) TakeDue(ctx context.Context, now time.Time) ([]Reminder, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pending, err := p.load(ctx)
	if err != nil {
		return nil, err
	}

	var due, rest []Reminder
	for _, r := range pending {
		if r.FireAt.After(now) {
			rest = append(rest, r)
		} else {
			due = append(due, r)
		}
	}
	if len(due) == 0 {
		return nil, nil
	}
	if err := p.save(ctx, rest); err != nil {
		return nil, err
	}
	sortByFireAt(due)
	return due, nil
}

func (p *LocalPlatform) load(ctx context.Context) ([]Reminder, error) {
	data, found, err := p.slot.Get(ctx, ScheduledSlotKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return []Reminder{}, nil
	}
	var pending []Reminder
	if err := json.Unmarshal([]byte(data), &pending); err != nil {
		return nil, errors.NewStorage("decode", err)
	}
	if pending == nil {
		pending = []Reminder{}
	}
	return pending, nil
}

func (p *LocalPlatform) save(ctx context.Context, pending []Reminder) error {
	if pending == nil {
		pending = []Reminder{}
	}
	data, err := json.Marshal(pending)
	if err != nil {
		return errors.NewInternal(err)
	}
	return p.slot.Put(ctx, ScheduledSlotKey, string(data))
}

func sortByFireAt(rs []Reminder) {
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].FireAt.Before(rs[j].FireAt) })
}
