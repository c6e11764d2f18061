package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/vettedge/internal/candidates"
	"github.com/jonathan/vettedge/internal/provider"
)

const candidateColumns = `id, name, email, score, skills, experience, education, breakdown`

// ListCandidates returns a role's candidates in insertion order.
func (db *DB) ListCandidates(ctx context.Context, roleID string) ([]candidates.Candidate, error) {
	if err := db.requireRole(ctx, roleID); err != nil {
		return nil, err
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+candidateColumns+`
		 FROM candidates WHERE role_id = $1
		 ORDER BY position, id`,
		roleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	list := []candidates.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}
	return list, nil
}

// GetCandidate returns a candidate by id.
func (db *DB) GetCandidate(ctx context.Context, id string) (*candidates.Candidate, error) {
	row := db.pool.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)
	c, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &provider.ErrCandidateNotFound{CandidateID: id}
		}
		return nil, err
	}
	return c, nil
}

// InsertCandidates upserts list under roleID in one batch, keeping list order.
func (db *DB) InsertCandidates(ctx context.Context, roleID string, list []candidates.Candidate) error {
	if len(list) == 0 {
		return nil
	}

	batch, err := candidateBatch(roleID, list)
	if err != nil {
		return err
	}
	if err := db.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert candidates for role %s: %w", roleID, err)
	}
	return nil
}

// ReplaceCandidates swaps a role's candidates for list in one transaction.
// On error the role keeps its previous candidates.
func (db *DB) ReplaceCandidates(ctx context.Context, roleID string, list []candidates.Candidate) error {
	batch, err := candidateBatch(roleID, list)
	if err != nil {
		return err
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM candidates WHERE role_id = $1`, roleID); err != nil {
		return fmt.Errorf("failed to delete candidates for role %s: %w", roleID, err)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert candidates for role %s: %w", roleID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit candidates for role %s: %w", roleID, err)
	}
	return nil
}

func candidateBatch(roleID string, list []candidates.Candidate) (*pgx.Batch, error) {
	batch := &pgx.Batch{}
	for i, c := range list {
		skills, err := json.Marshal(c.Skills)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal skills for %s: %w", c.ID, err)
		}
		breakdown, err := json.Marshal(c.Breakdown)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal breakdown for %s: %w", c.ID, err)
		}
		batch.Queue(
			`INSERT INTO candidates (id, role_id, position, name, email, score, skills, experience, education, breakdown)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			 ON CONFLICT (id) DO UPDATE SET
			   role_id = $2, position = $3, name = $4, email = $5, score = $6,
			   skills = $7, experience = $8, education = $9, breakdown = $10`,
			c.ID, roleID, i, c.Name, c.Email, c.Score, skills, c.Experience, c.Education, breakdown,
		)
	}
	return batch, nil
}

func scanCandidate(row pgx.Row) (*candidates.Candidate, error) {
	var c candidates.Candidate
	var skills, breakdown []byte
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Score, &skills, &c.Experience, &c.Education, &breakdown); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan candidate: %w", err)
	}
	if err := decodeJSON(skills, &c.Skills); err != nil {
		return nil, fmt.Errorf("failed to decode skills for %s: %w", c.ID, err)
	}
	if err := decodeJSON(breakdown, &c.Breakdown); err != nil {
		return nil, fmt.Errorf("failed to decode breakdown for %s: %w", c.ID, err)
	}
	return &c, nil
}

func decodeJSON(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
