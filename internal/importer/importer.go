package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"apogee/internal/logging"
	"apogee/internal/store"
	"apogee/internal/transcript"
)

// ErrHeaderUnmatched is returned in strict-header mode when the document
// metadata (academic year, track, semester) cannot be extracted.
var ErrHeaderUnmatched = errors.New("document header unmatched")

// Options adjusts import behavior.
type Options struct {
	// StrictHeader aborts the import instead of falling back to placeholder
	// document metadata.
	StrictHeader bool
}

// Result summarizes one import run.
type Result struct {
	Info     transcript.ParcoursInfo
	Parsed   int
	Imported int
	Skipped  int
}

// Run imports one transcript document into the store. Student-level failures
// are logged and counted, never fatal; only read and storage errors abort.
func Run(ctx context.Context, logger *slog.Logger, st *store.Store, path string, opts Options) (Result, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "importer").With(
		logging.String(logging.FieldRunID, uuid.NewString()),
		logging.String(logging.FieldSourceFile, path),
	)

	content, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read document: %w", err)
	}
	logger.Debug("document loaded", logging.Args(logging.Int("bytes", len(content)))...)

	doc := transcript.Parse(string(content), logger)
	if !doc.HeaderMatched && opts.StrictHeader {
		return Result{}, fmt.Errorf("%w: refusing to import %s with placeholder metadata", ErrHeaderUnmatched, path)
	}

	imported, err := st.ImportStudents(ctx, logger, doc.Info, doc.Students)
	if err != nil {
		return Result{}, fmt.Errorf("import students: %w", err)
	}

	result := Result{
		Info:     doc.Info,
		Parsed:   len(doc.Students),
		Imported: imported,
		Skipped:  len(doc.Skipped),
	}
	logger.Info("import finished",
		logging.Args(
			logging.String("academic_year", result.Info.AcademicYear),
			logging.String("track", result.Info.Track),
			logging.String("semester", result.Info.Semester),
			logging.Int("parsed", result.Parsed),
			logging.Int("imported", result.Imported),
			logging.Int("skipped", result.Skipped),
		)...)
	return result, nil
}
