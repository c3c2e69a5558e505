package transcript

// ParcoursInfo carries the document-level metadata shared by every student in
// a transcript export. It is extracted once per document, not per student.
type ParcoursInfo struct {
	Track        string
	AcademicYear string
	Semester     string
}

// GradeEntry is one row of the flattened grade hierarchy. Unit rows carry
// IsUnit=true and use their unit code as the course name; course rows
// reference the unit that precedes them in the list.
type GradeEntry struct {
	UnitCode   string
	CourseName string
	Score      float64
	IsUnit     bool
}

// Student is one fully extracted student block.
type Student struct {
	FamilyName    string
	GivenName     string
	StudentNumber string
	Grades        []GradeEntry
}

// Skip records a student block that could not be extracted, with the cause.
type Skip struct {
	FamilyName string
	GivenName  string
	Cause      string
}

// Document is the result of parsing one transcript export.
type Document struct {
	Info ParcoursInfo
	// HeaderMatched is false when any header pattern missed and ParcoursInfo
	// holds placeholder values.
	HeaderMatched bool
	Students      []Student
	Skipped       []Skip
}
