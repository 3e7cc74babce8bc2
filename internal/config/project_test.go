package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindProjectRuffToml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ruff.toml")
	if err := os.WriteFile(path, []byte("line-length = 100\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	proj, ok := FindProject(dir)
	if !ok {
		t.Fatal("expected project config")
	}
	if proj.Path != path {
		t.Errorf("unexpected path: %s", proj.Path)
	}
	if proj.LineLength != 100 {
		t.Errorf("expected line length 100, got %d", proj.LineLength)
	}
}

func TestFindProjectWalksUp(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".ruff.toml"), []byte(""), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	nested := filepath.Join(root, "src", "pkg")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	proj, ok := FindProject(nested)
	if !ok {
		t.Fatal("expected project config from ancestor")
	}
	if filepath.Base(proj.Path) != ".ruff.toml" {
		t.Errorf("unexpected path: %s", proj.Path)
	}
}

func TestFindProjectPyproject(t *testing.T) {
	dir := t.TempDir()
	content := "[tool.ruff]\nline-length = 88\n"
	if err := os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	proj, ok := FindProject(dir)
	if !ok {
		t.Fatal("expected project config")
	}
	if proj.LineLength != 88 {
		t.Errorf("expected line length 88, got %d", proj.LineLength)
	}
}

func TestFindProjectIgnoresUnrelatedPyproject(t *testing.T) {
	dir := t.TempDir()
	content := "[tool.black]\nline-length = 88\n"
	if err := os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, ok := FindProject(dir); ok {
		t.Error("pyproject without [tool.ruff] should not count")
	}
}

func TestFindProjectNone(t *testing.T) {
	if _, ok := FindProject(t.TempDir()); ok {
		t.Error("expected no project config in empty temp dir")
	}
}
