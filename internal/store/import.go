package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sqlite "modernc.org/sqlite"

	"apogee/internal/logging"
	"apogee/internal/transcript"
)

// SQLite primary result code for constraint violations; extended codes keep it
// in the low byte.
const sqliteConstraintCode = 19

// ImportStudents persists a parsed document. The whole document shares one
// outer transaction; each student runs inside its own savepoint so an
// integrity violation rolls back that student alone and the batch continues.
// The returned count is the number of students whose identity row was newly
// inserted; re-importing an identical document reports zero.
//
// Non-constraint storage errors abort the import and are returned to the
// caller; nothing from the aborted run is committed.
func (s *Store) ImportStudents(ctx context.Context, logger *slog.Logger, info transcript.ParcoursInfo, students []transcript.Student) (int, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "store")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	imported := 0
	for _, student := range students {
		if _, err := tx.ExecContext(ctx, "SAVEPOINT import_student"); err != nil {
			return imported, fmt.Errorf("open savepoint: %w", err)
		}

		inserted, err := insertStudent(ctx, tx, info, student)
		if err != nil {
			if !isConstraintErr(err) {
				return imported, err
			}
			logger.Warn("student rolled back",
				logging.Args(
					logging.String(logging.FieldStudent, student.GivenName+" "+student.FamilyName),
					logging.Error(err),
				)...)
			if _, err := tx.ExecContext(ctx, "ROLLBACK TO import_student"); err != nil {
				return imported, fmt.Errorf("rollback savepoint: %w", err)
			}
			if _, err := tx.ExecContext(ctx, "RELEASE import_student"); err != nil {
				return imported, fmt.Errorf("release savepoint: %w", err)
			}
			continue
		}

		if _, err := tx.ExecContext(ctx, "RELEASE import_student"); err != nil {
			return imported, fmt.Errorf("release savepoint: %w", err)
		}
		if inserted {
			imported++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return imported, nil
}

// insertStudent writes one identity row plus its grade rows. Duplicate rows
// (same identity 5-tuple, same student+course) are skipped. The bool reports
// whether the identity row was newly inserted.
func insertStudent(ctx context.Context, tx *sql.Tx, info transcript.ParcoursInfo, student transcript.Student) (bool, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO students
            (family_name, given_name, student_number, track, academic_year, semester)
         VALUES (?, ?, ?, ?, ?, ?)`,
		student.FamilyName,
		student.GivenName,
		student.StudentNumber,
		info.Track,
		info.AcademicYear,
		info.Semester,
	)
	if err != nil {
		return false, fmt.Errorf("insert student: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	var studentID int64
	row := tx.QueryRowContext(ctx,
		`SELECT id FROM students
         WHERE family_name = ? AND given_name = ? AND track = ? AND academic_year = ? AND semester = ?`,
		student.FamilyName,
		student.GivenName,
		info.Track,
		info.AcademicYear,
		info.Semester,
	)
	if err := row.Scan(&studentID); err != nil {
		return false, fmt.Errorf("resolve student id: %w", err)
	}

	for _, grade := range student.Grades {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO grades (student_id, unit_code, course_name, score, is_unit)
             VALUES (?, ?, ?, ?, ?)`,
			studentID,
			grade.UnitCode,
			grade.CourseName,
			grade.Score,
			boolToInt(grade.IsUnit),
		); err != nil {
			return false, fmt.Errorf("insert grade %q: %w", grade.CourseName, err)
		}
	}

	return affected > 0, nil
}

func isConstraintErr(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code()&0xff == sqliteConstraintCode
	}
	return false
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
