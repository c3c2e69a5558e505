package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"apogee/internal/store"
)

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	var flags filterFlags
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete students and their grades matching the given filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := flags.filters()
			if filters.Empty() {
				return fmt.Errorf("delete requires at least one of --year, --track or --semester")
			}

			out := cmd.OutOrStdout()
			if !assumeYes {
				fmt.Fprintf(out, "Delete all students matching %s? [y/N]: ", describeFilters(filters))
				reader := bufio.NewReader(cmd.InOrStdin())
				line, err := reader.ReadString('\n')
				if err != nil && line == "" {
					fmt.Fprintln(out, "Aborted")
					return nil
				}
				answer := strings.ToLower(strings.TrimSpace(line))
				if answer != "y" && answer != "yes" {
					fmt.Fprintln(out, "Aborted")
					return nil
				}
			}

			return ctx.withLockedStore(func(st *store.Store) error {
				studentsDeleted, gradesDeleted, err := st.DeleteWhere(cmd.Context(), filters)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted %d student(s) and %d grade record(s)\n", studentsDeleted, gradesDeleted)
				return nil
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func describeFilters(f store.Filters) string {
	var parts []string
	if f.AcademicYear != "" {
		parts = append(parts, "year="+f.AcademicYear)
	}
	if f.Track != "" {
		parts = append(parts, "track="+f.Track)
	}
	if f.Semester != "" {
		parts = append(parts, "semester="+f.Semester)
	}
	return strings.Join(parts, " ")
}
