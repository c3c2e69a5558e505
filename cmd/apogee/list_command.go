package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"apogee/internal/store"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var flags filterFlags

	names := make([]string, 0, len(store.Dimensions())+1)
	for _, dim := range store.Dimensions() {
		names = append(names, string(dim))
	}
	names = append(names, "students")

	cmd := &cobra.Command{
		Use:       fmt.Sprintf("list <%s>", strings.Join(names, "|")),
		Short:     "Enumerate stored values along one dimension",
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			what := strings.ToLower(strings.TrimSpace(args[0]))
			return ctx.withStore(func(st *store.Store) error {
				out := cmd.OutOrStdout()

				if what == "students" {
					rows, err := st.Students(cmd.Context(), flags.filters())
					if err != nil {
						return err
					}
					if len(rows) == 0 {
						fmt.Fprintln(out, "No students match")
						return nil
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
						})
					}
					headers := []string{"Family name", "Given name", "Student number", "Track", "Year", "Semester"}
					fmt.Fprintln(out, renderTable(headers, tableRows, nil))
					return nil
				}

				values, err := st.ListDistinct(cmd.Context(), store.Dimension(what), flags.filters())
				if err != nil {
					return err
				}
				if len(values) == 0 {
					fmt.Fprintf(out, "No %s stored\n", what)
					return nil
				}
				for _, value := range values {
					fmt.Fprintln(out, value)
				}
				return nil
			})
		},
	}

	flags.register(cmd)
	flags.registerUnit(cmd)
	return cmd
}
