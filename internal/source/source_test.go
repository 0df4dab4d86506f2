package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/xz"
)

const genUSFM = `\id GEN
\c 1
\v 1 In the beginning.
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func writeXZ(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	defer f.Close()
	w, err := xz.NewWriter(f)
	if err != nil {
		t.Fatalf("xz writer: %v", err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("xz write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("xz close: %v", err)
	}
	return path
}

func TestListOrdersAndFilters(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "02-EXO.usfm", `\id EXO`)
	writeFile(t, dir, "01-GEN.usfm", genUSFM)
	writeFile(t, dir, "notes.txt", "not a source file")
	writeFile(t, dir, "40-MAT.usx", `<usx/>`)

	paths, err := List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("got %d paths, want 3: %v", len(paths), paths)
	}
	if filepath.Base(paths[0]) != "01-GEN.usfm" || filepath.Base(paths[1]) != "02-EXO.usfm" {
		t.Errorf("order wrong: %v", paths)
	}
}

func TestLoadUSFM(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "01-GEN.usfm", genUSFM)

	unit, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if unit.Name != "01-GEN.usfm" {
		t.Errorf("unit name = %q", unit.Name)
	}
	if len(unit.Lines) != 3 || unit.Lines[0].Tags[0].Key != "id" {
		t.Errorf("unexpected lines: %+v", unit.Lines)
	}
}

func TestLoadXZ(t *testing.T) {
	dir := t.TempDir()
	path := writeXZ(t, dir, "01-GEN.usfm.xz", genUSFM)

	unit, err := Load(path)
	if err != nil {
		t.Fatalf("Load xz: %v", err)
	}
	if len(unit.Lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(unit.Lines))
	}
	if unit.Lines[2].Tags[0].Text != "In the beginning." {
		t.Errorf("verse text = %q", unit.Lines[2].Tags[0].Text)
	}
}

func TestLoadUSX(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "01-GEN.usx", `<?xml version="1.0"?>
<usx version="2.6">
  <book code="GEN" style="id">Genesis</book>
  <chapter number="1" style="c" />
  <para style="p"><verse number="1" style="v" />In the beginning.</para>
</usx>`)

	unit, err := Load(path)
	if err != nil {
		t.Fatalf("Load usx: %v", err)
	}
	if len(unit.Lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(unit.Lines))
	}
	if unit.Lines[0].Tags[0].Key != "id" || unit.Lines[0].Tags[0].Text != "GEN Genesis" {
		t.Errorf("id line = %+v", unit.Lines[0])
	}
}

func TestLoadDirEmpty(t *testing.T) {
	if _, err := LoadDir(t.TempDir()); err == nil {
		t.Fatal("expected error for directory without source files")
	}
}
