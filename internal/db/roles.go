package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/vettedge/internal/candidates"
	"github.com/jonathan/vettedge/internal/provider"
)

// ListRoles returns roles in position order with their candidate counts.
func (db *DB) ListRoles(ctx context.Context) ([]candidates.Role, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT r.id, r.name, COUNT(c.id)
		 FROM roles r
		 LEFT JOIN candidates c ON c.role_id = r.id
		 GROUP BY r.id, r.name, r.position
		 ORDER BY r.position, r.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	var roles []candidates.Role
	for rows.Next() {
		var r candidates.Role
		if err := rows.Scan(&r.ID, &r.Name, &r.Count); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roles: %w", err)
	}
	return roles, nil
}

// GetRole returns a role by id, or nil if it does not exist.
func (db *DB) GetRole(ctx context.Context, id string) (*candidates.Role, error) {
	var r candidates.Role
	err := db.pool.QueryRow(ctx,
		`SELECT r.id, r.name, (SELECT COUNT(*) FROM candidates c WHERE c.role_id = r.id)
		 FROM roles r WHERE r.id = $1`,
		id,
	).Scan(&r.ID, &r.Name, &r.Count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role %s: %w", id, err)
	}
	return &r, nil
}

// UpsertRole creates or renames a role. position orders roles in listings.
func (db *DB) UpsertRole(ctx context.Context, role candidates.Role, position int) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO roles (id, name, position)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET name = $2, position = $3`,
		role.ID, role.Name, position,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert role %s: %w", role.ID, err)
	}
	return nil
}

func (db *DB) requireRole(ctx context.Context, id string) error {
	var exists bool
	if err := db.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM roles WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check role %s: %w", id, err)
	}
	if !exists {
		return &provider.ErrRoleNotFound{RoleID: id}
	}
	return nil
}
