package transcript

import (
	"log/slog"
	"regexp"
	"strings"

	"apogee/internal/logging"
)

// pageHeaderMarker is the institution page header repeated on every printed
// page. It bounds the final student block of a page.
const pageHeaderMarker = "Université Savoie Mont Blanc Année universitaire"

// blockAnchorPattern locates the start of a student block: an upper-case
// multi-word family name, a mixed-case given name, then the student number
// and INE line. Block boundaries are derived from consecutive anchors instead
// of a single lookahead pattern so block length never affects matching.
var blockAnchorPattern = regexp.MustCompile(
	`(?m)^[ \t]*([A-ZÀ-ÖØ-Þ]+(?: [A-ZÀ-ÖØ-Þ]+)*) ([A-Za-zÀ-ÖØ-öø-ÿ'-]+(?: [A-Za-zÀ-ÖØ-öø-ÿ'-]+)*)[ \t]*\n` +
		`N°[ \t]*Etudiant[ \t]*:[ \t]*(\d+)[ \t]*INE[ \t]*:[ \t]*\S+`)

// block is one raw per-student slice of the document.
type block struct {
	familyName    string
	givenName     string
	studentNumber string
	body          string
}

// splitBlocks performs the two-pass segmentation: find every anchor, then
// slice the document between consecutive anchor offsets. Each slice is
// truncated at the page header marker when one occurs before the next anchor.
func splitBlocks(content string) []block {
	locs := blockAnchorPattern.FindAllStringSubmatchIndex(content, -1)
	if len(locs) == 0 {
		return nil
	}

	blocks := make([]block, 0, len(locs))
	for i, loc := range locs {
		end := len(content)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body := content[loc[1]:end]
		if idx := strings.Index(body, pageHeaderMarker); idx >= 0 {
			body = body[:idx]
		}
		blocks = append(blocks, block{
			familyName:    content[loc[2]:loc[3]],
			givenName:     content[loc[4]:loc[5]],
			studentNumber: content[loc[6]:loc[7]],
			body:          body,
		})
	}
	return blocks
}

// Parse segments a transcript export into document metadata plus one record
// per student. Malformed blocks are collected in Document.Skipped; they never
// abort the rest of the document.
func Parse(content string, logger *slog.Logger) Document {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "transcript")

	info, matched := extractParcoursInfo(content)
	if !matched {
		logger.Warn("document header unmatched, using placeholder values",
			logging.Args(
				logging.String("track", info.Track),
				logging.String("academic_year", info.AcademicYear),
				logging.String("semester", info.Semester),
			)...)
	}

	doc := Document{Info: info, HeaderMatched: matched}

	blocks := splitBlocks(content)
	logger.Debug("student blocks located", logging.Args(logging.Int("count", len(blocks)))...)

	for _, b := range blocks {
		student, skip := parseBlock(b)
		if skip != nil {
			logger.Warn("student skipped",
				logging.Args(
					logging.String(logging.FieldStudent, skip.GivenName+" "+skip.FamilyName),
					logging.String("cause", skip.Cause),
				)...)
			doc.Skipped = append(doc.Skipped, *skip)
			continue
		}

		student.Grades = extractGrades(notesSection(b.body), logger)
		doc.Students = append(doc.Students, student)
	}

	if len(doc.Students) == 0 {
		logger.Warn("no students extracted from document")
	}
	return doc
}
