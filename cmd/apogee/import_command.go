package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"apogee/internal/importer"
	"apogee/internal/store"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var strictHeader bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a transcript export into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			strict := cfg.Import.StrictHeader
			if cmd.Flags().Changed("strict-header") {
				strict = strictHeader
			}

			return ctx.withLockedStore(func(st *store.Store) error {
				result, err := importer.Run(cmd.Context(), logger, st, args[0], importer.Options{
					StrictHeader: strict,
				})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Document: %s %s semester %s\n",
					result.Info.Track, result.Info.AcademicYear, result.Info.Semester)
				fmt.Fprintf(out, "Parsed %d student(s), imported %d, skipped %d\n",
					result.Parsed, result.Imported, result.Skipped)
				if result.Imported == 0 && result.Parsed > 0 {
					fmt.Fprintln(out, "All parsed students were already present")
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&strictHeader, "strict-header", false, "Abort instead of using placeholder metadata when the document header does not match")
	return cmd
}
