package importer_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"apogee/internal/importer"
	"apogee/internal/logging"
	"apogee/internal/store"
	"apogee/internal/testsupport"
)

func TestRunImportsDocument(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	path := testsupport.WriteDocument(t, testsupport.SampleDocument)

	result, err := importer.Run(context.Background(), logging.NewNop(), st, path, importer.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Parsed != 2 || result.Imported != 2 || result.Skipped != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Info.AcademicYear != "2022-2023" || result.Info.Track != "M1-INFO" {
		t.Fatalf("unexpected document metadata: %+v", result.Info)
	}

	students, err := st.Students(context.Background(), store.Filters{})
	if err != nil {
		t.Fatalf("Students: %v", err)
	}
	if len(students) != 2 {
		t.Fatalf("expected 2 students stored, got %d", len(students))
	}
}

func TestRunTwiceReportsZeroNewStudents(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	path := testsupport.WriteDocument(t, testsupport.SampleDocument)
	ctx := context.Background()

	if _, err := importer.Run(ctx, logging.NewNop(), st, path, importer.Options{}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	result, err := importer.Run(ctx, logging.NewNop(), st, path, importer.Options{})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if result.Imported != 0 {
		t.Fatalf("expected idempotent re-import, got %d imported", result.Imported)
	}
}

func TestRunMalformedBlockDoesNotAbortBatch(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	content := testsupport.SampleDocument + `
BERNARD Luc
N° Etudiant : 21900001 INE : 1111111111C
inscrit en Semestre 7 M1-INFO

UE701 Systèmes et réseaux 10,0/20
`
	path := testsupport.WriteDocument(t, content)

	result, err := importer.Run(context.Background(), logging.NewNop(), st, path, importer.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Imported != 2 {
		t.Fatalf("expected the well-formed students committed, got %d", result.Imported)
	}
	if result.Skipped != 1 {
		t.Fatalf("expected 1 skip, got %d", result.Skipped)
	}
}

func TestRunStrictHeaderAborts(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	path := testsupport.WriteDocument(t, "no header here\n")

	_, err := importer.Run(context.Background(), logging.NewNop(), st, path, importer.Options{StrictHeader: true})
	if !errors.Is(err, importer.ErrHeaderUnmatched) {
		t.Fatalf("expected ErrHeaderUnmatched, got %v", err)
	}

	students, err := st.Students(context.Background(), store.Filters{})
	if err != nil {
		t.Fatalf("Students: %v", err)
	}
	if len(students) != 0 {
		t.Fatalf("expected nothing committed, got %d students", len(students))
	}
}

func TestRunMissingFile(t *testing.T) {
	st := testsupport.MustOpenStore(t)
	missing := filepath.Join(t.TempDir(), "absent.txt")
	if _, err := importer.Run(context.Background(), logging.NewNop(), st, missing, importer.Options{}); err == nil {
		t.Fatal("expected error for missing file")
	}
}
