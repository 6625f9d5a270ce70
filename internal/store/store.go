// Package store implements the journal store: the whole entry collection
// kept as one serialized value in a single persistence slot.
package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hpungsan/selah/internal/config"
	"github.com/hpungsan/selah/internal/errors"
	"github.com/hpungsan/selah/internal/journal"
	"github.com/hpungsan/selah/internal/kv"
)

// Store owns the journal collection behind one slot key. Every operation is
// a full read-modify-write of that slot; concurrent writers race and the
// last one wins.
type Store struct {
	slot kv.Slot
	key  string
	log  *zap.Logger
}

// New creates a Store over slot. An empty key selects config.DefaultSlotKey;
// a nil logger disables logging.
func New(slot kv.Slot, key string, log *zap.Logger) *Store {
	if key == "" {
		key = config.DefaultSlotKey
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{slot: slot, key: key, log: log.Named("store")}
}

// Key returns the slot key the collection is stored under.
func (s *Store) Key() string { return s.key }

// Load reads and decodes the full collection, returning STORAGE errors for
// an unreadable slot or a malformed collection. A slot that was never
// written loads as an empty collection.
func (s *Store) Load(ctx context.Context) ([]journal.Entry, error) {
	data, found, err := s.slot.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, errors.ErrStorage) {
			return nil, err
		}
		return nil, errors.NewStorage("read", err)
	}
	if !found || data == "" {
		return []journal.Entry{}, nil
	}
	entries, err := journal.Decode(data)
	if err != nil {
		return nil, errors.NewStorage("decode", err)
	}
	return entries, nil
}

// List returns every entry in load order. Read and decode failures are
// logged and reported as an empty collection.
func (s *Store) List(ctx context.Context) []journal.Entry {
	entries, err := s.Load(ctx)
	if err != nil {
		s.log.Error("loading journal entries", zap.String("slot", s.key), zap.Error(err))
		return []journal.Entry{}
	}
	return entries
}

// Save upserts entry by id: any stored record with the same id is dropped
// and entry is appended. The collection is written back whole.
// Save refuses to overwrite a slot it cannot decode and rejects an entry
// that would not decode once stored.
func (s *Store) Save(ctx context.Context, entry journal.Entry) error {
	if err := validate(entry); err != nil {
		return err
	}
	entries, err := s.Load(ctx)
	if err != nil {
		s.log.Error("saving journal entry", zap.String("id", entry.ID), zap.Error(err))
		return err
	}

	kept := make([]journal.Entry, 0, len(entries)+1)
	for _, e := range entries {
		if e.ID != entry.ID {
			kept = append(kept, e)
		}
	}
	kept = append(kept, entry)

	if err := s.persist(ctx, kept); err != nil {
		s.log.Error("saving journal entry", zap.String("id", entry.ID), zap.Error(err))
		return err
	}
	s.log.Debug("saved journal entry", zap.String("id", entry.ID), zap.Int("day", entry.Day))
	return nil
}

// FindByDay returns the first entry for day in load order.
func (s *Store) FindByDay(ctx context.Context, day int) (*journal.Entry, bool) {
	for _, e := range s.List(ctx) {
		if e.Day == day {
			return &e, true
		}
	}
	return nil, false
}

// Delete removes the entry with id. A missing id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	entries, err := s.Load(ctx)
	if err != nil {
		s.log.Error("deleting journal entry", zap.String("id", id), zap.Error(err))
		return err
	}

	kept := make([]journal.Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}

	if err := s.persist(ctx, kept); err != nil {
		s.log.Error("deleting journal entry", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// Search returns entries whose title, content, or any tag contains query,
// case-insensitively, in load order. An empty query matches everything.
func (s *Store) Search(ctx context.Context, query string) []journal.Entry {
	matched := []journal.Entry{}
	for _, e := range s.List(ctx) {
		if e.Matches(query) {
			matched = append(matched, e)
		}
	}
	return matched
}

func (s *Store) persist(ctx context.Context, entries []journal.Entry) error {
	data, err := journal.Encode(entries)
	if err != nil {
		return errors.NewStorage("encode", err)
	}
	if err := s.slot.Put(ctx, s.key, data); err != nil {
		if errors.Is(err, errors.ErrStorage) {
			return err
		}
		return errors.NewStorage("write", err)
	}
	return nil
}

// SaveAll upserts every entry in a single write. Later entries in the slice
// win over earlier ones with the same id. One invalid entry rejects the batch.
func (s *Store) SaveAll(ctx context.Context, batch []journal.Entry) error {
	for _, e := range batch {
		if err := validate(e); err != nil {
			return err
		}
	}
	entries, err := s.Load(ctx)
	if err != nil {
		s.log.Error("saving journal entries", zap.Int("count", len(batch)), zap.Error(err))
		return err
	}

	replaced := make(map[string]bool, len(batch))
	for _, e := range batch {
		replaced[e.ID] = true
	}

	kept := make([]journal.Entry, 0, len(entries)+len(batch))
	for _, e := range entries {
		if !replaced[e.ID] {
			kept = append(kept, e)
		}
	}
	for i, e := range batch {
		if laterDuplicate(batch[i+1:], e.ID) {
			continue
		}
		kept = append(kept, e)
	}

	if err := s.persist(ctx, kept); err != nil {
		s.log.Error("saving journal entries", zap.Int("count", len(batch)), zap.Error(err))
		return err
	}
	return nil
}

func laterDuplicate(rest []journal.Entry, id string) bool {
	for _, e := range rest {
		if e.ID == id {
			return true
		}
	}
	return false
}

func validate(e journal.Entry) error {
	if err := e.Validate(); err != nil {
		return errors.NewInvalidRequest(fmt.Sprintf("entry %q: %v", e.ID, err))
	}
	return nil
}
