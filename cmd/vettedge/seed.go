package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/jonathan/vettedge/internal/candidates"
	"github.com/jonathan/vettedge/internal/db"
	"github.com/jonathan/vettedge/internal/observability"
	"github.com/jonathan/vettedge/internal/provider"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	seedCountScale float64
	seedSeed       uint64
	seedOut        string
	seedVerbose    bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate demo candidates",
	Long: `Generate demo candidates for the default roles and write them to the database named by
DATABASE_URL, to a fixture file given with --out, or both.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().Float64Var(&seedCountScale, "count-scale", 1, "Multiplier applied to each role's default candidate count")
	seedCmd.Flags().Uint64Var(&seedSeed, "seed", 1, "Random seed; the same seed yields the same candidates")
	seedCmd.Flags().StringVarP(&seedOut, "out", "o", "", "Path to write the generated fixture JSON")
	seedCmd.Flags().BoolVarP(&seedVerbose, "verbose", "v", false, "Print a per-role summary of the generated data")
	rootCmd.AddCommand(seedCmd)
}

// scaledRoles returns the default roles with counts multiplied by scale, at least one each.
func scaledRoles(scale float64) ([]candidates.Role, error) {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("--count-scale must be a positive number, got %v", scale)
	}
	roles := provider.DefaultRoles()
	for i := range roles {
		roles[i].Count = max(1, int(math.Round(float64(roles[i].Count)*scale)))
	}
	return roles, nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" && seedOut == "" {
		return fmt.Errorf("nothing to seed: set DATABASE_URL or pass --out")
	}

	roles, err := scaledRoles(seedCountScale)
	if err != nil {
		return err
	}
	fixture := provider.Snapshot(provider.Generate(roles, seedSeed))

	total := 0
	for _, list := range fixture.Candidates {
		total += len(list)
	}

	if seedVerbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintFixture(fixture)
	}

	if seedOut != "" {
		data, err := json.MarshalIndent(fixture, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal fixture: %w", err)
		}
		if err := os.WriteFile(seedOut, data, 0644); err != nil {
			return fmt.Errorf("failed to write fixture file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d roles and %d candidates to %s\n", len(fixture.Roles), total, seedOut)
	}

	if databaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		store, err := db.Connect(ctx, databaseURL)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Migrate(ctx); err != nil {
			return err
		}
		if err := store.Seed(ctx, fixture); err != nil {
			return err
		}
		log.Info().Int("roles", len(fixture.Roles)).Int("candidates", total).Msg("database seeded")
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d roles and %d candidates\n", len(fixture.Roles), total)
	}

	return nil
}
