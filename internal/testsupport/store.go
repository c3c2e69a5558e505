package testsupport

import (
	"path/filepath"
	"testing"

	"apogee/internal/store"
)

// MustOpenStore opens a store.Store in a temp directory and registers cleanup.
func MustOpenStore(t testing.TB) *store.Store {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "academic.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}
