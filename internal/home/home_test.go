package home

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefault(t *testing.T) {
	d, err := New("")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if filepath.Base(d.Path()) != DefaultDirName {
		t.Errorf("Path() = %q, want basename %q", d.Path(), DefaultDirName)
	}
}

func TestEnsureExists(t *testing.T) {
	root := filepath.Join(t.TempDir(), "custom-home")

	d, err := New(root)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if d.Exists() {
		t.Error("Exists() = true before EnsureExists")
	}

	if err := d.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists() error = %v", err)
	}
	if !d.Exists() {
		t.Error("Exists() = false after EnsureExists")
	}
	if _, err := os.Stat(d.ExportsPath()); err != nil {
		t.Errorf("exports directory missing: %v", err)
	}
}

func TestPaths(t *testing.T) {
	d, err := New("/tmp/x")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := d.ConfigPath(); got != "/tmp/x/config.yaml" {
		t.Errorf("ConfigPath() = %q", got)
	}
	if got := d.ExportFile("works.csv"); got != "/tmp/x/exports/works.csv" {
		t.Errorf("ExportFile() = %q", got)
	}
	if d.ConfigExists() {
		t.Error("ConfigExists() = true for missing file")
	}
}
