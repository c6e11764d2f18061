package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/vettedge/internal/candidates"
	"github.com/jonathan/vettedge/internal/export"
	"github.com/jonathan/vettedge/internal/observability"
	"github.com/jonathan/vettedge/internal/provider"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a role's candidate table to Excel",
	Long:  "Filters and sorts a role's candidates the same way the analysis page does and writes them as an xlsx workbook.",
	RunE:  runExport,
}

var (
	exportConfig  string
	exportRole    string
	exportQuery   string
	exportSort    string
	exportDir     string
	exportOutput  string
	exportVerbose bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportConfig, "config", "c", "", "Path to YAML or JSON config file")
	exportCmd.Flags().StringVarP(&exportRole, "role", "r", "", "Role id (default: first role)")
	exportCmd.Flags().StringVar(&exportQuery, "q", "", "Search query over name, email and skills")
	exportCmd.Flags().StringVar(&exportSort, "sort", string(candidates.SortByScore), "Sort field: name or score")
	exportCmd.Flags().StringVar(&exportDir, "dir", string(candidates.Descending), "Sort direction: asc or desc")
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Path to output xlsx file (default: <role>-candidates.xlsx)")

	exportCmd.Flags().BoolVarP(&exportVerbose, "verbose", "v", false, "Print the top exported candidates")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(exportConfig)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	src, err := openSource(ctx, cfg, time.Now())
	if err != nil {
		return fmt.Errorf("failed to open candidate source: %w", err)
	}
	defer src.close()

	roles, err := src.provider.ListRoles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list roles: %w", err)
	}
	if len(roles) == 0 {
		return fmt.Errorf("no roles to export")
	}
	role := roles[0]
	if exportRole != "" {
		var ok bool
		if role, ok = provider.FindRole(roles, exportRole); !ok {
			return &provider.ErrRoleNotFound{RoleID: exportRole}
		}
	}

	list, err := src.provider.ListCandidates(ctx, role.ID)
	if err != nil {
		return fmt.Errorf("failed to list candidates: %w", err)
	}
	state := candidates.State{
		Query:         exportQuery,
		SortField:     candidates.ParseSortField(exportSort),
		SortDirection: candidates.ParseSortDirection(exportDir),
	}
	rows := candidates.ProjectLocale(list, state, cfg.Tag())

	out := exportOutput
	if out == "" {
		out = export.FileName(role.Name)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := export.WriteTable(f, role.Name, rows); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	if exportVerbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintTable(role.Name, rows)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d of %d candidates for %s to %s\n", len(rows), len(list), role.Name, out)
	return nil
}
