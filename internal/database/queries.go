package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ListSaved returns saved schemes, most recently saved first
func (db *DB) ListSaved(ctx context.Context) ([]SavedScheme, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, saved_at FROM saved_schemes
		ORDER BY saved_at DESC, name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var saved []SavedScheme
	for rows.Next() {
		var s SavedScheme
		if err := rows.Scan(&s.ID, &s.Name, &s.SavedAt); err != nil {
			return nil, err
		}
		saved = append(saved, s)
	}

	return saved, rows.Err()
}

// SavedNames loads the saved set
func (db *DB) SavedNames(ctx context.Context) (SavedSet, error) {
	saved, err := db.ListSaved(ctx)
	if err != nil {
		return nil, err
	}

	set := make(SavedSet, len(saved))
	for _, s := range saved {
		set[s.Name] = struct{}{}
	}
	return set, nil
}

// IsSaved reports whether a scheme name is saved
func (db *DB) IsSaved(ctx context.Context, name string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM saved_schemes WHERE name = ?`, name,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveScheme bookmarks a scheme; saving twice is a no-op
func (db *DB) SaveScheme(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("scheme name is required")
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO saved_schemes (id, name, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO NOTHING
	`, uuid.New().String(), name, time.Now())
	return err
}

// UnsaveScheme removes a bookmark
func (db *DB) UnsaveScheme(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("scheme name is required")
	}

	_, err := db.ExecContext(ctx, `DELETE FROM saved_schemes WHERE name = ?`, name)
	return err
}

// ToggleSaved flips the saved flag of a scheme and returns the new state
func (db *DB) ToggleSaved(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, fmt.Errorf("scheme name is required")
	}

	var saved bool
	err := db.Transaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM saved_schemes WHERE name = ?`, name)
		if err != nil {
			return err
		}
		if n, _ := result.RowsAffected(); n > 0 {
			saved = false
			return nil
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO saved_schemes (id, name, saved_at) VALUES (?, ?, ?)`,
			uuid.New().String(), name, time.Now(),
		)
		saved = err == nil
		return err
	})
	return saved, err
}

// ReplaceSaved stores exactly the given set, replacing what was there
func (db *DB) ReplaceSaved(ctx context.Context, set SavedSet) error {
	return db.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM saved_schemes`); err != nil {
			return err
		}

		now := time.Now()
		for _, name := range set.Names() {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO saved_schemes (id, name, saved_at) VALUES (?, ?, ?)`,
				uuid.New().String(), name, now,
			); err != nil {
				return fmt.Errorf("failed to save %q: %w", name, err)
			}
		}
		return nil
	})
}

// ClearSaved removes every bookmark and returns how many were removed
func (db *DB) ClearSaved(ctx context.Context) (int64, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM saved_schemes`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
