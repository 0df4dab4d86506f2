// Package source discovers and loads source units from a directory. File
// name order is preserved as unit order, which in turn fixes chapter order
// and the navigation chain; callers name files accordingly (01-GEN.usfm,
// 02-EXO.usfm, ...).
package source

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/digitalbiblesociety/scriptorium/core/assembly"
	"github.com/digitalbiblesociety/scriptorium/core/errors"
	"github.com/digitalbiblesociety/scriptorium/core/usfm"
	"github.com/digitalbiblesociety/scriptorium/core/usx"
)

// List returns the source files in dir, sorted by name. Recognized
// extensions: .usfm, .sfm, .usx, each optionally xz-compressed.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewIO("read", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if recognized(entry.Name()) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func recognized(name string) bool {
	name = strings.TrimSuffix(strings.ToLower(name), ".xz")
	switch filepath.Ext(name) {
	case ".usfm", ".sfm", ".usx":
		return true
	}
	return false
}

// Load reads and tokenizes one source file into a unit. Compressed files
// are decoded transparently.
func Load(path string) (assembly.SourceUnit, error) {
	f, err := os.Open(path)
	if err != nil {
		return assembly.SourceUnit{}, errors.NewIO("open", path, err)
	}
	defer f.Close()

	var reader io.Reader = f
	name := filepath.Base(path)
	if strings.HasSuffix(strings.ToLower(name), ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			return assembly.SourceUnit{}, errors.NewParse("xz", path, err.Error())
		}
		reader = xr
		name = name[:len(name)-len(".xz")]
	}

	var lines []usfm.Line
	if strings.EqualFold(filepath.Ext(name), ".usx") {
		lines, err = usx.Parse(reader)
	} else {
		lines, err = usfm.TokenizeReader(reader)
	}
	if err != nil {
		return assembly.SourceUnit{}, errors.Wrapf(err, "loading %s", path)
	}
	return assembly.SourceUnit{Name: filepath.Base(path), Lines: lines}, nil
}

// LoadDir lists and loads every source unit in dir, in name order.
func LoadDir(dir string) ([]assembly.SourceUnit, error) {
	paths, err := List(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.NewNotFound("source files", dir)
	}

	units := make([]assembly.SourceUnit, 0, len(paths))
	for _, path := range paths {
		unit, err := Load(path)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, nil
}
