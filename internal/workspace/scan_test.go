package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

const scanFixture = "0 @I1@ INDI\n1 NAME Ann /Lee/\n0 @I2@ INDI\n0 @F1@ FAM\n"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "family.ged"), scanFixture)
	writeFile(t, filepath.Join(root, "deep", "old.gedcom"), scanFixture)
	writeFile(t, filepath.Join(root, "notes.txt"), "not gedcom")

	files, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Got %d files, want 2: %+v", len(files), files)
	}
	for _, f := range files {
		if f.Individuals != 2 || f.Families != 1 {
			t.Errorf("%s counts = %d/%d, want 2/1", f.Path, f.Individuals, f.Families)
		}
		if f.SizeBytes == 0 {
			t.Errorf("%s reported zero size", f.Path)
		}
	}
}

func TestScanHonorsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "exports/\nbackup.ged\n")
	writeFile(t, filepath.Join(root, "family.ged"), scanFixture)
	writeFile(t, filepath.Join(root, "backup.ged"), scanFixture)
	writeFile(t, filepath.Join(root, "exports", "all.ged"), scanFixture)

	files, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0].Path) != "family.ged" {
		t.Errorf("Scan = %+v, want only family.ged", files)
	}
}

func TestScanSkipsHiddenDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".trash", "gone.ged"), scanFixture)
	writeFile(t, filepath.Join(root, "family.ged"), scanFixture)

	files, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0].Path) != "family.ged" {
		t.Errorf("Scan = %+v, want only family.ged", files)
	}
}

func TestScanMissingRoot(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for missing root")
	}
}

func TestDefaultRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("Failed to create .git: %v", err)
	}
	sub := filepath.Join(root, "data")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}

	t.Chdir(sub)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if got, want := DefaultRoot(), filepath.Dir(wd); got != want {
		t.Errorf("DefaultRoot() = %q, want %q", got, want)
	}
}
