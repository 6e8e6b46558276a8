// Package testutil provides shared test helpers for media stores,
// catalogs, and probers.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/rosenlund/cutline/internal/library"
	"github.com/rosenlund/cutline/internal/storage"
)

// TestCatalog creates a temporary SQLite catalog that is automatically
// cleaned up.
func TestCatalog(t *testing.T) *library.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "cutline-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := library.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestMediaDir creates a temporary media directory with a storage provider.
func TestMediaDir(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// StubProber is a canned-response duration prober. When Called is
// non-nil, every probe sends the requested path on it.
type StubProber struct {
	Seconds float64
	Err     error
	Called  chan string
}

// ResolveDuration returns the canned duration or error.
func (p *StubProber) ResolveDuration(_ context.Context, path string) (float64, error) {
	if p.Called != nil {
		p.Called <- path
	}
	if p.Err != nil {
		return 0, p.Err
	}
	return p.Seconds, nil
}
