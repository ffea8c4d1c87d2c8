// Package testutil provides shared test helpers for setting up workspace
// databases and attachment stores.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/avelar/inkpad/internal/storage"
	"github.com/avelar/inkpad/internal/store"
)

// TestDB creates a temporary workspace database that is automatically
// cleaned up.
func TestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "inkpad-test.db"), nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestFiles creates a temporary attachment directory with a storage.Provider.
func TestFiles(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	files, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, files
}
