package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/vettedge/internal/activity"
)

// RecordActivity stores a. A zero ID is replaced with a new one.
func (db *DB) RecordActivity(ctx context.Context, a activity.Activity) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO activities (id, kind, title, description, role, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, string(a.Kind), a.Title, a.Description, a.Role, a.At,
	)
	if err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

// ListActivities returns up to limit activities, newest first. A non-positive limit returns all.
func (db *DB) ListActivities(ctx context.Context, limit int) ([]activity.Activity, error) {
	query := `SELECT id, kind, title, description, role, occurred_at
	          FROM activities
	          ORDER BY occurred_at DESC, seq`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var items []activity.Activity
	for rows.Next() {
		var a activity.Activity
		var kind string
		if err := rows.Scan(&a.ID, &kind, &a.Title, &a.Description, &a.Role, &a.At); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.Kind = activity.Kind(kind)
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}
	return items, nil
}
