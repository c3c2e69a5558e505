package transcript

import (
	"regexp"
	"strings"
)

// Placeholder values used when the document header cannot be matched. Keeping
// imports going with a mis-filed term beats losing the whole document; the
// importer logs the fallback and strict mode can reject it.
const (
	fallbackTrack        = "M1 API"
	fallbackAcademicYear = "2022-2023"
	fallbackSemester     = "7"
)

var (
	// "inscrit en Semestre 7 M1-API" (feminine form included).
	semesterTrackPattern = regexp.MustCompile(`inscrite?\s+en\s+Semestre\s+(\d+)\s+([^\s\n]+)`)

	// "Année universitaire 2022/2023".
	academicYearPattern = regexp.MustCompile(`Année universitaire (\d{4}/\d{4})`)

	// Abbreviated form "Session S1 2022/23".
	sessionYearPattern = regexp.MustCompile(`Session\s+S\d+\s+(\d{4}/\d{2})`)

	birthDatePattern  = regexp.MustCompile(`Née? le\s*:`)
	enrollmentPattern = regexp.MustCompile(`inscrite?\s+en\s+Semestre\s+\d+`)
)

// extractParcoursInfo pulls track, semester, and academic year from the
// document header. The second return value reports whether every field was
// matched; on a miss the corresponding placeholder is used.
func extractParcoursInfo(content string) (ParcoursInfo, bool) {
	info := ParcoursInfo{
		Track:        fallbackTrack,
		AcademicYear: fallbackAcademicYear,
		Semester:     fallbackSemester,
	}
	matched := true

	if m := semesterTrackPattern.FindStringSubmatch(content); m != nil {
		info.Semester = m[1]
		info.Track = m[2]
	} else {
		matched = false
	}

	if m := academicYearPattern.FindStringSubmatch(content); m != nil {
		info.AcademicYear = strings.ReplaceAll(m[1], "/", "-")
	} else if m := sessionYearPattern.FindStringSubmatch(content); m != nil {
		info.AcademicYear = normalizeSessionYear(m[1])
	} else {
		matched = false
	}

	return info, matched
}

// normalizeSessionYear converts the abbreviated "2022/23" form to "2022-2023".
func normalizeSessionYear(short string) string {
	parts := strings.SplitN(short, "/", 2)
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return fallbackAcademicYear
	}
	return parts[0] + "-20" + parts[1]
}

// parseBlock validates a segmented block and extracts its notes section. A
// missing required field yields a Skip instead of an error so the document
// keeps processing.
func parseBlock(b block) (Student, *Skip) {
	familyName := strings.TrimSpace(b.familyName)
	givenName := strings.TrimSpace(b.givenName)

	skip := func(cause string) (Student, *Skip) {
		return Student{}, &Skip{FamilyName: familyName, GivenName: givenName, Cause: cause}
	}

	if b.studentNumber == "" {
		return skip("missing student number")
	}
	if !birthDatePattern.MatchString(b.body) {
		return skip("missing birth date line")
	}
	if !enrollmentPattern.MatchString(b.body) {
		return skip("missing semester enrollment line")
	}

	notesStart := strings.Index(b.body, "UE")
	if notesStart < 0 {
		return skip("no grade section")
	}

	return Student{
		FamilyName:    familyName,
		GivenName:     givenName,
		StudentNumber: strings.TrimSpace(b.studentNumber),
	}, nil
}

// notesSection returns the grade text of a block, beginning at the first UE
// occurrence. Callers must have validated the block with parseBlock.
func notesSection(body string) string {
	idx := strings.Index(body, "UE")
	if idx < 0 {
		return ""
	}
	return body[idx:]
}
