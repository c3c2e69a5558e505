package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"apogee/internal/store"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "show <family-name> <given-name>",
		Short: "Display one student's grades",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				rows, err := st.StudentGrades(cmd.Context(), args[0], args[1], flags.filters())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(rows) == 0 {
					fmt.Fprintf(out, "No grades stored for %s %s\n", args[0], args[1])
					return nil
				}

				fmt.Fprintf(out, "%s %s (n° %s)\n", rows[0].FamilyName, rows[0].GivenName, rows[0].StudentNumber)

				tableRows := make([][]string, 0, len(rows))
				for _, row := range rows {
					kind := "course"
					if row.IsUnit {
						kind = "unit"
					}
					tableRows = append(tableRows, []string{
						row.AcademicYear,
						row.Semester,
						row.UnitCode,
						row.CourseName,
						kind,
						formatScore(row.Score),
					})
				}
				headers := []string{"Year", "Semester", "Unit", "Course", "Kind", "Score /20"}
				aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight}
				fmt.Fprintln(out, renderTable(headers, tableRows, aligns))
				return nil
			})
		},
	}

	flags.register(cmd)
	flags.registerUnit(cmd)
	return cmd
}
