package validation_test

import (
	"os"
	"path/filepath"
	"testing"

	"vidgrab/internal/validation"
)

// TestValidateDirectory runs checks for directory validation --------------------------------------------------------------------
func TestValidateDirectory_ExistingDirectory(t *testing.T) {
	tmp := t.TempDir()

	info, err := validation.ValidateDirectory(tmp, false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if info == nil {
		t.Fatalf("expected file info, got nil")
	}
}

func TestValidateDirectory_CreateIfMissing(t *testing.T) {
	tmp := t.TempDir()
	missing := filepath.Join(tmp, "new")

	info, err := validation.ValidateDirectory(missing, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, statErr := os.Stat(missing); statErr != nil {
		t.Fatalf("directory was not created")
	}
	if info == nil || !info.IsDir() {
		t.Fatalf("expected directory info, got %v", info)
	}
}

func TestValidateDirectory_ErrorIfMissing(t *testing.T) {
	tmp := t.TempDir()
	missing := filepath.Join(tmp, "missing")

	info, err := validation.ValidateDirectory(missing, false)
	if err == nil {
		t.Fatalf("expected error for missing directory, got nil")
	}
	if info != nil {
		t.Fatalf("expected nil os.FileInfo for missing, uncreated directory")
	}
}

func TestValidateDirectory_FileNotDirectory(t *testing.T) {
	tmp := t.TempDir()
	f := filepath.Join(tmp, "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := validation.ValidateDirectory(f, true); err == nil {
		t.Fatalf("expected error for file path")
	}
	if _, err := validation.ValidateDirectory("", true); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestValidatePort(t *testing.T) {
	for _, p := range []int{1, 80, 5000, 65535} {
		if err := validation.ValidatePort(p); err != nil {
			t.Fatalf("expected port %d to be valid, got %v", p, err)
		}
	}
	for _, p := range []int{0, -1, 65536} {
		if err := validation.ValidatePort(p); err == nil {
			t.Fatalf("expected port %d to be invalid", p)
		}
	}
}

func TestValidateSearchProvider(t *testing.T) {
	for _, p := range []string{"ytsearch", "scrape", "YTSEARCH"} {
		if err := validation.ValidateSearchProvider(p); err != nil {
			t.Fatalf("expected provider %q to be valid, got %v", p, err)
		}
	}
	if err := validation.ValidateSearchProvider("bing"); err == nil {
		t.Fatalf("expected unknown provider to fail")
	}
}

func TestValidateSearchLimit(t *testing.T) {
	tests := map[int]int{-3: 10, 0: 10, 5: 5, 50: 50, 500: 50}
	for in, want := range tests {
		if got := validation.ValidateSearchLimit(in); got != want {
			t.Fatalf("ValidateSearchLimit(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestValidateDebugLevel(t *testing.T) {
	tests := map[int]int{-1: 0, 0: 0, 3: 3, 9: 5}
	for in, want := range tests {
		if got := validation.ValidateDebugLevel(in); got != want {
			t.Fatalf("ValidateDebugLevel(%d) = %d, want %d", in, got, want)
		}
	}
}

// TestValidateFile runs checks for config file validation --------------------------------------------------------------------
func TestValidateFile(t *testing.T) {
	tmp := t.TempDir()

	good := filepath.Join(tmp, "config.yaml")
	if err := os.WriteFile(good, []byte("port: 6000\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	empty := filepath.Join(tmp, "empty.yaml")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := validation.ValidateFile(good); err != nil {
		t.Errorf("expected no error for %q, got %v", good, err)
	}
	for _, bad := range []string{empty, tmp, filepath.Join(tmp, "missing.yaml")} {
		if _, err := validation.ValidateFile(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
