package database

import (
	"path/filepath"
	"testing"
)

func TestOpenCreatesTables(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer d.Close()

	var name string
	err = d.DB.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'downloads'`).Scan(&name)
	if err != nil {
		t.Fatalf("downloads table missing: %v", err)
	}

	// Reopening must not fail on existing tables.
	d2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open() error: %v", err)
	}
	d2.Close()
}

func TestDownloadTypeConstraint(t *testing.T) {
	t.Parallel()

	d, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer d.Close()

	_, err = d.DB.Exec(`INSERT INTO downloads (id, video_id, download_type, status) VALUES ('1', 'abc', 'flac', 'pending')`)
	if err == nil {
		t.Fatal("expected constraint failure for unknown download type")
	}
}

func TestCloseNil(t *testing.T) {
	t.Parallel()

	var d *Database
	if err := d.Close(); err != nil {
		t.Fatalf("Close() on nil database: %v", err)
	}
}
