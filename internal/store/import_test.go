package store_test

import (
	"context"
	"testing"

	"apogee/internal/logging"
	"apogee/internal/store"
	"apogee/internal/testsupport"
	"apogee/internal/transcript"
)

func TestImportStudentsCommitsBatch(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	ctx := context.Background()

	students := []transcript.Student{
		testsupport.Student("DUPONT", "Jean", "21904312"),
		testsupport.Student("MARTIN", "Sophie", "21904555"),
	}

	count, err := st.ImportStudents(ctx, logging.NewNop(), testsupport.Term(), students)
	if err != nil {
		t.Fatalf("ImportStudents: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 imported, got %d", count)
	}

	rows, err := st.Students(ctx, store.Filters{})
	if err != nil {
		t.Fatalf("Students: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 identity rows, got %d", len(rows))
	}

	grades, err := st.ExportRows(ctx, store.Filters{})
	if err != nil {
		t.Fatalf("ExportRows: %v", err)
	}
	if len(grades) != 4 {
		t.Fatalf("expected 4 grade rows, got %d", len(grades))
	}
}

func TestReimportIsIdempotent(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	ctx := context.Background()

	students := []transcript.Student{
		testsupport.Student("DUPONT", "Jean", "21904312"),
		testsupport.Student("MARTIN", "Sophie", "21904555"),
	}

	if _, err := st.ImportStudents(ctx, logging.NewNop(), testsupport.Term(), students); err != nil {
		t.Fatalf("first import: %v", err)
	}
	count, err := st.ImportStudents(ctx, logging.NewNop(), testsupport.Term(), students)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 newly imported on re-import, got %d", count)
	}

	grades, err := st.ExportRows(ctx, store.Filters{})
	if err != nil {
		t.Fatalf("ExportRows: %v", err)
	}
	if len(grades) != 4 {
		t.Fatalf("expected row counts unchanged, got %d grade rows", len(grades))
	}
}

func TestImportCountsNewStudentsOnly(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	ctx := context.Background()

	first := []transcript.Student{testsupport.Student("DUPONT", "Jean", "21904312")}
	if _, err := st.ImportStudents(ctx, logging.NewNop(), testsupport.Term(), first); err != nil {
		t.Fatalf("first import: %v", err)
	}

	both := append(first, testsupport.Student("MARTIN", "Sophie", "21904555"))
	count, err := st.ImportStudents(ctx, logging.NewNop(), testsupport.Term(), both)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected only the new student counted, got %d", count)
	}
}

func TestImportSkipsDuplicateCourseWithinStudent(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	ctx := context.Background()

	student := testsupport.Student("DUPONT", "Jean", "21904312")
	student.Grades = append(student.Grades, transcript.GradeEntry{
		UnitCode:   "UE701",
		CourseName: "Algorithmique",
		Score:      15.0,
		IsUnit:     false,
	})

	count, err := st.ImportStudents(ctx, logging.NewNop(), testsupport.Term(), []transcript.Student{student})
	if err != nil {
		t.Fatalf("ImportStudents: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected student committed, got %d", count)
	}

	grades, err := st.StudentGrades(ctx, "DUPONT", "Jean", store.Filters{})
	if err != nil {
		t.Fatalf("StudentGrades: %v", err)
	}
	var algoRows int
	var firstScore float64
	for _, g := range grades {
		if g.CourseName == "Algorithmique" {
			algoRows++
			firstScore = g.Score
		}
	}
	if algoRows != 1 {
		t.Fatalf("expected one Algorithmique row, got %d", algoRows)
	}
	// First insert wins; the duplicate is skipped, not overwritten.
	if firstScore != 12.0 {
		t.Fatalf("expected original score kept, got %v", firstScore)
	}
}

func TestImportSameStudentAcrossTerms(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	ctx := context.Background()

	students := []transcript.Student{testsupport.Student("DUPONT", "Jean", "21904312")}
	if _, err := st.ImportStudents(ctx, logging.NewNop(), testsupport.Term(), students); err != nil {
		t.Fatalf("first term: %v", err)
	}

	nextTerm := testsupport.Term()
	nextTerm.AcademicYear = "2023-2024"
	count, err := st.ImportStudents(ctx, logging.NewNop(), nextTerm, students)
	if err != nil {
		t.Fatalf("second term: %v", err)
	}
	// Same person, different term: a distinct identity row.
	if count != 1 {
		t.Fatalf("expected a new identity row per term, got %d", count)
	}
}

func TestImportEmptyBatch(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	count, err := st.ImportStudents(context.Background(), logging.NewNop(), testsupport.Term(), nil)
	if err != nil {
		t.Fatalf("ImportStudents: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0, got %d", count)
	}
}
