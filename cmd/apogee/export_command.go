package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"apogee/internal/config"
	"apogee/internal/store"
)

var exportHeaders = []string{
	"family_name", "given_name", "student_number",
	"track", "academic_year", "semester",
	"unit_code", "course_name", "score", "is_unit",
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	var flags filterFlags
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the denormalized grade records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				rows, err := st.ExportRows(cmd.Context(), flags.filters())
				if err != nil {
					return err
				}

				tableRows := make([][]string, 0, len(rows))
				for _, row := range rows {
					tableRows = append(tableRows, []string{
						row.FamilyName,
						row.GivenName,
						row.StudentNumber,
						row.Track,
						row.AcademicYear,
						row.Semester,
						row.UnitCode,
						row.CourseName,
						formatScore(row.Score),
						yesNo(row.IsUnit),
					})
				}

				target := strings.TrimSpace(outputPath)
				if target != "" {
					expanded, err := config.ExpandPath(target)
					if err != nil {
						return fmt.Errorf("resolve output path: %w", err)
					}
					csv := renderCSV(exportHeaders, tableRows)
					if err := os.WriteFile(expanded, []byte(csv+"\n"), 0o644); err != nil {
						return fmt.Errorf("write export: %w", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Exported %d record(s) to %s\n", len(rows), expanded)
					return nil
				}

				out := cmd.OutOrStdout()
				if isTerminal(out) {
					fmt.Fprintln(out, renderTable(exportHeaders, tableRows, nil))
					return nil
				}
				fmt.Fprintln(out, renderCSV(exportHeaders, tableRows))
				return nil
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write CSV to this file instead of stdout")
	return cmd
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
