package transcript

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"apogee/internal/logging"
)

var (
	// "UE401 Systèmes et réseaux 14,5/20": the code, a digit-free title, then
	// the aggregate unit score.
	unitPattern = regexp.MustCompile(`(?m)(UE\d+)([^0-9\n]*)\s+(\d+(?:[.,]\d+)?)\s*/20`)

	// Any line ending in "<score>/20"; unit lines and header remnants are
	// filtered out afterwards.
	courseLinePattern = regexp.MustCompile(`(?m)^([^\n]+?)\s+(\d+(?:[.,]\d+)?)\s*/20`)
)

// extractGrades expands a student's notes text into a flat grade list. Every
// unit row is emitted first, immediately followed by the course rows scoped
// between that unit match and the next one.
func extractGrades(notes string, logger *slog.Logger) []GradeEntry {
	if logger == nil {
		logger = logging.NewNop()
	}

	matches := unitPattern.FindAllStringSubmatchIndex(notes, -1)
	if len(matches) == 0 {
		return nil
	}

	var entries []GradeEntry
	for i, m := range matches {
		unitCode := notes[m[2]:m[3]]
		scoreText := notes[m[6]:m[7]]

		entries = append(entries, GradeEntry{
			UnitCode:   unitCode,
			CourseName: unitCode,
			Score:      parseScore(scoreText, unitCode, logger),
			IsUnit:     true,
		})

		sectionEnd := len(notes)
		if i+1 < len(matches) {
			sectionEnd = matches[i+1][0]
		}
		entries = append(entries, sectionCourses(notes[m[0]:sectionEnd], unitCode, logger)...)
	}
	return entries
}

// sectionCourses extracts the course rows inside one unit's scoped section.
func sectionCourses(section, unitCode string, logger *slog.Logger) []GradeEntry {
	var entries []GradeEntry
	for _, m := range courseLinePattern.FindAllStringSubmatch(section, -1) {
		name := strings.TrimSpace(m[1])
		if strings.HasPrefix(name, "UE") {
			continue
		}
		// Stray table header remnants from the printed layout.
		if strings.Contains(name, "Note/Barème") || strings.Contains(name, "Note :") {
			continue
		}
		entries = append(entries, GradeEntry{
			UnitCode:   unitCode,
			CourseName: name,
			Score:      parseScore(m[2], name, logger),
			IsUnit:     false,
		})
	}
	return entries
}

// parseScore normalizes the decimal separator and parses the score. An
// unparsable value is coerced to zero and logged rather than failing the
// student.
func parseScore(raw, owner string, logger *slog.Logger) float64 {
	normalized := strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	score, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		logger.Warn("unparsable score coerced to zero",
			logging.Args(
				logging.String("course", owner),
				logging.String("raw", raw),
			)...)
		return 0
	}
	return score
}
