package main

import (
	"strings"

	"github.com/spf13/cobra"

	"apogee/internal/store"
)

// filterFlags carries the academic-term narrowing shared by the query and
// deletion commands.
type filterFlags struct {
	year     string
	track    string
	semester string
	unit     string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.year, "year", "", "Restrict to one academic year (e.g. 2022-2023)")
	cmd.Flags().StringVar(&f.track, "track", "", "Restrict to one degree track (e.g. M1 API)")
	cmd.Flags().StringVar(&f.semester, "semester", "", "Restrict to one semester number")
}

// registerUnit adds the grade-level unit filter; only the query commands take
// it, deletions always act on whole students.
func (f *filterFlags) registerUnit(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.unit, "unit", "", "Restrict to the courses of one teaching unit (e.g. UE701)")
}

func (f *filterFlags) filters() store.Filters {
	return store.Filters{
		AcademicYear: strings.TrimSpace(f.year),
		Track:        strings.TrimSpace(f.track),
		Semester:     strings.TrimSpace(f.semester),
		Unit:         strings.TrimSpace(f.unit),
	}
}
