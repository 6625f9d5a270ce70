package db

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/hpungsan/selah/internal/errors"
)

// GetSlot returns the value stored under key.
// found is false when the slot has never been written.
func GetSlot(ctx context.Context, db *sql.DB, key string) (value string, found bool, err error) {
	err = db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if stderrors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.NewStorage("read", err)
	}
	return value, true, nil
}

// PutSlot replaces the value stored under key in a single statement.
func PutSlot(ctx context.Context, db *sql.DB, key, value string) error {
	query := `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := db.ExecContext(ctx, query, key, value, time.Now().Unix()); err != nil {
		return errors.NewStorage("write", err)
	}
	return nil
}

// DeleteSlot removes key. Deleting a missing key is not an error.
func DeleteSlot(ctx context.Context, db *sql.DB, key string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, key); err != nil {
		return errors.NewStorage("write", err)
	}
	return nil
}
