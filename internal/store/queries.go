package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// frenchCollator orders accented values the way a French reader expects;
// SQLite's default byte ordering puts them after 'z'.
var frenchCollator = collate.New(language.French)

// ListDistinct enumerates the distinct values of one dimension, narrowed by
// the optional filters, ordered with French collation.
func (s *Store) ListDistinct(ctx context.Context, dim Dimension, f Filters) ([]string, error) {
	var (
		query      string
		joinGrades bool
	)
	switch dim {
	case DimensionYears:
		query = "SELECT DISTINCT academic_year FROM students"
	case DimensionTracks:
		query = "SELECT DISTINCT track FROM students"
	case DimensionSemesters:
		query = "SELECT DISTINCT semester FROM students"
	case DimensionUnits:
		query = "SELECT DISTINCT g.unit_code FROM grades g JOIN students s ON g.student_id = s.id WHERE g.is_unit = 1"
		joinGrades = true
	case DimensionCourses:
		query = "SELECT DISTINCT g.course_name FROM grades g JOIN students s ON g.student_id = s.id WHERE g.is_unit = 0"
		joinGrades = true
	default:
		return nil, fmt.Errorf("unknown dimension %q", dim)
	}

	prefix := ""
	if joinGrades {
		prefix = "s."
	}
	conditions, args := f.clauses(prefix)
	if dim == DimensionCourses && f.Unit != "" {
		conditions = append(conditions, "g.unit_code = ?")
		args = append(args, f.Unit)
	}
	if len(conditions) > 0 {
		if joinGrades {
			query += " AND " + strings.Join(conditions, " AND ")
		} else {
			query += " WHERE " + strings.Join(conditions, " AND ")
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dim, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value sql.NullString
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		if value.String == "" {
			continue
		}
		values = append(values, value.String)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	frenchCollator.SortStrings(values)
	return values, nil
}

// Students returns identity rows matching the filters, ordered by name.
func (s *Store) Students(ctx context.Context, f Filters) ([]StudentRow, error) {
	query := `SELECT id, family_name, given_name, student_number, track, academic_year, semester FROM students`
	conditions, args := f.clauses("")
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY family_name, given_name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var students []StudentRow
	for rows.Next() {
		var (
			st     StudentRow
			number sql.NullString
			track  sql.NullString
			year   sql.NullString
			sem    sql.NullString
		)
		if err := rows.Scan(&st.ID, &st.FamilyName, &st.GivenName, &number, &track, &year, &sem); err != nil {
			return nil, err
		}
		st.StudentNumber = number.String
		st.Track = track.String
		st.AcademicYear = year.String
		st.Semester = sem.String
		students = append(students, st)
	}
	return students, rows.Err()
}

const gradeColumns = "s.id, s.family_name, s.given_name, s.student_number, s.track, s.academic_year, s.semester, g.unit_code, g.course_name, g.score, g.is_unit"

// StudentGrades fetches every grade row for one identified student, narrowed
// by the optional filters.
func (s *Store) StudentGrades(ctx context.Context, familyName, givenName string, f Filters) ([]GradeRow, error) {
	query := `SELECT ` + gradeColumns + `
        FROM students s
        JOIN grades g ON g.student_id = s.id
        WHERE s.family_name = ? AND s.given_name = ?`
	args := []any{familyName, givenName}

	conditions, condArgs := f.clauses("s.")
	if f.Unit != "" {
		conditions = append(conditions, "g.unit_code = ?")
		condArgs = append(condArgs, f.Unit)
	}
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	args = append(args, condArgs...)
	query += " ORDER BY g.id"

	return s.queryGradeRows(ctx, query, args...)
}

// ExportRows returns the full denormalized students-grades join for
// analytics, narrowed by the optional filters.
func (s *Store) ExportRows(ctx context.Context, f Filters) ([]GradeRow, error) {
	query := `SELECT ` + gradeColumns + `
        FROM students s
        JOIN grades g ON g.student_id = s.id`
	conditions, args := f.clauses("s.")
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY s.family_name, s.given_name, g.id"

	return s.queryGradeRows(ctx, query, args...)
}

func (s *Store) queryGradeRows(ctx context.Context, query string, args ...any) ([]GradeRow, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query grades: %w", err)
	}
	defer rows.Close()

	var grades []GradeRow
	for rows.Next() {
		grade, err := scanGradeRow(rows)
		if err != nil {
			return nil, err
		}
		grades = append(grades, grade)
	}
	return grades, rows.Err()
}

func scanGradeRow(scanner interface{ Scan(dest ...any) error }) (GradeRow, error) {
	var (
		g      GradeRow
		number sql.NullString
		track  sql.NullString
		year   sql.NullString
		sem    sql.NullString
		unit   sql.NullString
		course sql.NullString
		score  sql.NullFloat64
		isUnit sql.NullInt64
	)
	if err := scanner.Scan(
		&g.StudentID,
		&g.FamilyName,
		&g.GivenName,
		&number,
		&track,
		&year,
		&sem,
		&unit,
		&course,
		&score,
		&isUnit,
	); err != nil {
		return GradeRow{}, err
	}
	g.StudentNumber = number.String
	g.Track = track.String
	g.AcademicYear = year.String
	g.Semester = sem.String
	g.UnitCode = unit.String
	g.CourseName = course.String
	g.Score = score.Float64
	g.IsUnit = isUnit.Int64 != 0
	return g, nil
}

// DeleteWhere removes every student matching all set filters, along with
// their grade rows, in one transaction. At least one filter must be set. The
// returned counts are students and grades deleted.
func (s *Store) DeleteWhere(ctx context.Context, f Filters) (int64, int64, error) {
	if f.Empty() {
		return 0, 0, errors.New("no deletion criteria provided")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("begin delete tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	conditions, args := f.clauses("")
	whereClause := strings.Join(conditions, " AND ")

	rows, err := tx.QueryContext(ctx, "SELECT id FROM students WHERE "+whereClause, args...)
	if err != nil {
		return 0, 0, fmt.Errorf("select students to delete: %w", err)
	}
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, 0, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, 0, err
	}
	rows.Close()

	if len(ids) == 0 {
		return 0, 0, nil
	}

	idArgs := make([]any, len(ids))
	for i, id := range ids {
		idArgs[i] = id
	}
	res, err := tx.ExecContext(ctx,
		"DELETE FROM grades WHERE student_id IN ("+makePlaceholders(len(ids))+")", idArgs...)
	if err != nil {
		return 0, 0, fmt.Errorf("delete grades: %w", err)
	}
	gradesDeleted, err := res.RowsAffected()
	if err != nil {
		return 0, 0, fmt.Errorf("rows affected: %w", err)
	}

	res, err = tx.ExecContext(ctx, "DELETE FROM students WHERE "+whereClause, args...)
	if err != nil {
		return 0, 0, fmt.Errorf("delete students: %w", err)
	}
	studentsDeleted, err := res.RowsAffected()
	if err != nil {
		return 0, 0, fmt.Errorf("rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit delete: %w", err)
	}
	return studentsDeleted, gradesDeleted, nil
}
