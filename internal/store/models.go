package store

// Filters narrows queries and deletions by academic term dimensions.
// Empty fields are ignored. Unit additionally narrows grade queries to the
// courses of one teaching unit; it never selects students and is ignored by
// deletions.
type Filters struct {
	AcademicYear string
	Track        string
	Semester     string
	Unit         string
}

// Empty reports whether no student-selecting filter is set.
func (f Filters) Empty() bool {
	return f.AcademicYear == "" && f.Track == "" && f.Semester == ""
}

// clauses returns SQL conditions and arguments for the set fields. The prefix
// qualifies the students table when the query joins it under an alias.
func (f Filters) clauses(prefix string) ([]string, []any) {
	var (
		conditions []string
		args       []any
	)
	if f.AcademicYear != "" {
		conditions = append(conditions, prefix+"academic_year = ?")
		args = append(args, f.AcademicYear)
	}
	if f.Track != "" {
		conditions = append(conditions, prefix+"track = ?")
		args = append(args, f.Track)
	}
	if f.Semester != "" {
		conditions = append(conditions, prefix+"semester = ?")
		args = append(args, f.Semester)
	}
	return conditions, args
}

// StudentRow is one identity row from the students table.
type StudentRow struct {
	ID            int64
	FamilyName    string
	GivenName     string
	StudentNumber string
	Track         string
	AcademicYear  string
	Semester      string
}

// GradeRow is one grade row joined with its owning student's identity.
type GradeRow struct {
	StudentID     int64
	FamilyName    string
	GivenName     string
	StudentNumber string
	Track         string
	AcademicYear  string
	Semester      string
	UnitCode      string
	CourseName    string
	Score         float64
	IsUnit        bool
}

// Dimension selects the column enumerated by ListDistinct.
type Dimension string

const (
	DimensionYears     Dimension = "years"
	DimensionTracks    Dimension = "tracks"
	DimensionSemesters Dimension = "semesters"
	DimensionUnits     Dimension = "units"
	DimensionCourses   Dimension = "courses"
)

// Dimensions lists every value ListDistinct accepts, for CLI help output.
func Dimensions() []Dimension {
	return []Dimension{
		DimensionYears,
		DimensionTracks,
		DimensionSemesters,
		DimensionUnits,
		DimensionCourses,
	}
}
