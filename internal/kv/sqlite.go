package kv

import (
	"context"
	"database/sql"

	"github.com/hpungsan/selah/internal/db"
)

// SQLiteSlot stores slots as rows of the slots table.
type SQLiteSlot struct {
	db *sql.DB
}

// NewSQLiteSlot wraps an initialized database (see db.Init).
func NewSQLiteSlot(database *sql.DB) *SQLiteSlot {
	return &SQLiteSlot{db: database}
}

func (s *SQLiteSlot) Get(ctx context.Context, key string) (string, bool, error) {
	return db.GetSlot(ctx, s.db, key)
}

func (s *SQLiteSlot) Put(ctx context.Context, key, value string) error {
	return db.PutSlot(ctx, s.db, key, value)
}

func (s *SQLiteSlot) Delete(ctx context.Context, key string) error {
	return db.DeleteSlot(ctx, s.db, key)
}
