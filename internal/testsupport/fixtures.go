package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"apogee/internal/transcript"
)

// SampleDocument is a minimal but structurally faithful transcript export:
// page header with the academic year, two complete student blocks, and the
// trailing page footer.
const SampleDocument = `Université Savoie Mont Blanc Année universitaire 2022/2023
Relevé de notes et résultats

DUPONT Jean
N° Etudiant : 21904312 INE : 1234567890A
Né le : 12/03/2001
inscrit en Semestre 7 M1-INFO

Notes et résultats
Note/Barème Pts jury Résultat Session Crédits
UE701 Systèmes et réseaux 14,5/20
Algorithmique répartie 12/20
UE702 Génie logiciel 11,0/20
Qualité logicielle 11,0/20

MARTIN Sophie
N° Etudiant : 21904555 INE : 0987654321B
Née le : 25/07/2000
inscrite en Semestre 7 M1-INFO

UE701 Systèmes et réseaux 13,0/20
Algorithmique répartie 13,5/20

Université Savoie Mont Blanc Année universitaire 2022/2023 Page 1/1
`

// WriteDocument writes content to a temp transcript file and returns its path.
func WriteDocument(t testing.TB, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "releve.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}
	return path
}

// Term returns the document metadata used by most store and importer tests.
func Term() transcript.ParcoursInfo {
	return transcript.ParcoursInfo{
		Track:        "M1-INFO",
		AcademicYear: "2022-2023",
		Semester:     "7",
	}
}

// Student builds a student record with one unit grade and one nested course.
func Student(familyName, givenName, number string) transcript.Student {
	return transcript.Student{
		FamilyName:    familyName,
		GivenName:     givenName,
		StudentNumber: number,
		Grades: []transcript.GradeEntry{
			{UnitCode: "UE701", CourseName: "UE701", Score: 14.5, IsUnit: true},
			{UnitCode: "UE701", CourseName: "Algorithmique", Score: 12.0, IsUnit: false},
		},
	}
}
