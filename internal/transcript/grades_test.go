package transcript

import (
	"testing"

	"apogee/internal/logging"
)

func TestExtractGradesUnitWithNestedCourse(t *testing.T) {
	notes := "UE401 Systèmes 14,5/20\nAlgorithmique 12/20\n"
	entries := extractGrades(notes, logging.NewNop())

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(entries), entries)
	}

	unit := entries[0]
	if !unit.IsUnit || unit.UnitCode != "UE401" || unit.CourseName != "UE401" || unit.Score != 14.5 {
		t.Fatalf("unexpected unit entry: %+v", unit)
	}

	course := entries[1]
	if course.IsUnit || course.UnitCode != "UE401" || course.CourseName != "Algorithmique" || course.Score != 12.0 {
		t.Fatalf("unexpected course entry: %+v", course)
	}
}

func TestExtractGradesScopesCoursesToOwningUnit(t *testing.T) {
	notes := `UE401 Systèmes 14,5/20
Algorithmique 12/20
Réseaux avancés 13,0/20
UE402 Mathématiques 10,0/20
Probabilités 9,5/20
`
	entries := extractGrades(notes, logging.NewNop())
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d: %+v", len(entries), entries)
	}

	wantOwners := []string{"UE401", "UE401", "UE401", "UE402", "UE402"}
	for i, entry := range entries {
		if entry.UnitCode != wantOwners[i] {
			t.Fatalf("entry %d owned by %q, want %q (%+v)", i, entry.UnitCode, wantOwners[i], entry)
		}
	}
	if !entries[0].IsUnit || entries[1].IsUnit || entries[3].IsUnit == false {
		t.Fatalf("unit flags wrong: %+v", entries)
	}
	// Every course references a unit emitted earlier in the list.
	seen := map[string]bool{}
	for _, entry := range entries {
		if entry.IsUnit {
			seen[entry.UnitCode] = true
			continue
		}
		if !seen[entry.UnitCode] {
			t.Fatalf("course %q precedes its unit %q", entry.CourseName, entry.UnitCode)
		}
	}
}

func TestExtractGradesDiscardsHeaderRemnants(t *testing.T) {
	notes := `UE401 Systèmes 14,5/20
Note/Barème 20,0/20
Note : 12,0/20
Algorithmique 12/20
`
	entries := extractGrades(notes, logging.NewNop())
	if len(entries) != 2 {
		t.Fatalf("expected header remnants discarded, got %+v", entries)
	}
	if entries[1].CourseName != "Algorithmique" {
		t.Fatalf("unexpected course: %+v", entries[1])
	}
}

func TestExtractGradesEmptyNotes(t *testing.T) {
	if entries := extractGrades("no grades here", logging.NewNop()); entries != nil {
		t.Fatalf("expected nil, got %+v", entries)
	}
}

func TestParseScoreCommaDecimal(t *testing.T) {
	if got := parseScore("14,5", "UE401", logging.NewNop()); got != 14.5 {
		t.Fatalf("expected 14.5, got %v", got)
	}
	if got := parseScore("12", "Algorithmique", logging.NewNop()); got != 12.0 {
		t.Fatalf("expected 12.0, got %v", got)
	}
}

func TestParseScoreCoercesGarbageToZero(t *testing.T) {
	if got := parseScore("1,2,3", "Broken", logging.NewNop()); got != 0 {
		t.Fatalf("expected coercion to 0, got %v", got)
	}
}
