package db

import (
	"context"
	"fmt"

	"github.com/jonathan/vettedge/internal/provider"
	"golang.org/x/sync/errgroup"
)

// seedConcurrency bounds concurrent per-role batch inserts.
const seedConcurrency = 4

// Seed writes every role and candidate of f. Roles are upserted first, then each role's
// candidates are replaced concurrently, one transaction per role.
func (db *DB) Seed(ctx context.Context, f *provider.Fixture) error {
	if err := f.Check(); err != nil {
		return err
	}

	for i, r := range f.Roles {
		if err := db.UpsertRole(ctx, r, i); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(seedConcurrency)
	for _, r := range f.Roles {
		g.Go(func() error {
			return db.ReplaceCandidates(gctx, r.ID, f.Candidates[r.ID])
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to seed candidates: %w", err)
	}
	return nil
}
