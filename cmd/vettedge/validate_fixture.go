package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/vettedge/internal/observability"
	"github.com/jonathan/vettedge/internal/provider"
	"github.com/jonathan/vettedge/internal/schemas"
	"github.com/spf13/cobra"
)

var validateFixtureCmd = &cobra.Command{
	Use:   "validate-fixture <file>",
	Short: "Validate a candidate fixture file",
	Long:  "Checks a fixture JSON file against the fixture schema and verifies that every candidate list belongs to a declared role.",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidateFixture,
}

var validateFixtureVerbose bool

func init() {
	validateFixtureCmd.Flags().BoolVarP(&validateFixtureVerbose, "verbose", "v", false, "Print a per-role summary or every schema violation")
	rootCmd.AddCommand(validateFixtureCmd)
}

func runValidateFixture(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("fixture file not found: %s", path)
	}

	if err := schemas.ValidateFixtureFile(path); err != nil {
		var vErr *schemas.ValidationError
		if errors.As(err, &vErr) {
			if validateFixtureVerbose {
				observability.NewPrinter(cmd.ErrOrStderr()).PrintSchemaErrors(vErr)
			}
			return fmt.Errorf("fixture is invalid: %w", err)
		}
		return fmt.Errorf("failed to validate fixture: %w", err)
	}

	m, err := provider.LoadFixture(path)
	if err != nil {
		return err
	}
	fixture := provider.Snapshot(m)
	total := 0
	for _, list := range fixture.Candidates {
		total += len(list)
	}

	if validateFixtureVerbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintFixture(fixture)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Fixture is valid: %d roles, %d candidates\n", len(fixture.Roles), total)
	return nil
}
