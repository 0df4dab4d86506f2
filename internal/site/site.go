// Package site writes a finished generation run to a static directory
// tree: one HTML file per chapter, a JSON navigation index, the search
// postings, the rendered about page, and a manifest with content hashes
// for change detection between runs.
package site

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/zeebo/blake3"

	"github.com/digitalbiblesociety/scriptorium/core/assembly"
	"github.com/digitalbiblesociety/scriptorium/core/errors"
)

// chapterEntry is the navigation record stored in index.json. The chapter
// body stays out of the index; clients fetch chapters/<id>.html on demand.
type chapterEntry struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	PrevID string `json:"previd"`
	NextID string `json:"nextid"`
}

type index struct {
	Lang          string         `json:"lang"`
	Divisions     []string       `json:"divisions"`
	DivisionNames []string       `json:"division_names"`
	DivisionAbbrs []string       `json:"division_abbreviations"`
	Sections      []string       `json:"sections"`
	Chapters      []chapterEntry `json:"chapters"`
}

// Manifest records what a run produced: the run ID, the creation time, and
// a BLAKE3 hash per written file, keyed by path relative to the output
// directory.
type Manifest struct {
	RunID     string            `json:"run_id"`
	CreatedAt string            `json:"created_at"`
	Files     map[string]string `json:"files"`
}

// Writer emits one run into a fixed output directory.
type Writer struct {
	outDir   string
	manifest *Manifest
}

// NewWriter returns a writer rooted at outDir. The directory is created on
// the first write.
func NewWriter(outDir, runID string) *Writer {
	return &Writer{
		outDir: outDir,
		manifest: &Manifest{
			RunID:     runID,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
			Files:     make(map[string]string),
		},
	}
}

// Write emits the whole run: chapter files, index.json, search postings,
// the about page, and finally manifest.json covering everything written
// before it.
func (w *Writer) Write(res *assembly.Result, opts *assembly.Options) error {
	if err := os.MkdirAll(filepath.Join(w.outDir, "chapters"), 0o755); err != nil {
		return errors.NewIO("mkdir", w.outDir, err)
	}

	for _, ch := range res.Chapters {
		rel := filepath.Join("chapters", ch.ID+".html")
		if err := w.writeFile(rel, []byte(ch.HTML)); err != nil {
			return err
		}
	}

	idx := index{
		Lang:          opts.Lang,
		Divisions:     opts.Divisions,
		DivisionNames: opts.DivisionNames,
		DivisionAbbrs: opts.DivisionAbbrs,
		Sections:      opts.Sections,
		Chapters:      make([]chapterEntry, 0, len(res.Chapters)),
	}
	for _, ch := range res.Chapters {
		idx.Chapters = append(idx.Chapters, chapterEntry{
			ID: ch.ID, Title: ch.Title, PrevID: ch.PrevID, NextID: ch.NextID,
		})
	}
	if err := w.writeJSON("index.json", idx); err != nil {
		return err
	}

	if res.Index != nil && len(res.Index.Postings) > 0 {
		if err := w.writeJSON("search.json", res.Index.Postings); err != nil {
			return err
		}
	}
	if len(res.LemmaIndex) > 0 {
		if err := w.writeJSON("lemmas.json", res.LemmaIndex); err != nil {
			return err
		}
	}
	if res.AboutHTML != "" {
		if err := w.writeFile("about.html", []byte(res.AboutHTML)); err != nil {
			return err
		}
	}

	return w.writeManifest()
}

// Manifest returns the manifest accumulated so far. Valid after Write.
func (w *Writer) Manifest() *Manifest {
	return w.manifest
}

func (w *Writer) writeFile(rel string, data []byte) error {
	path := filepath.Join(w.outDir, rel)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.NewIO("write", path, err)
	}
	sum := blake3.Sum256(data)
	w.manifest.Files[filepath.ToSlash(rel)] = hex.EncodeToString(sum[:])
	return nil
}

func (w *Writer) writeJSON(rel string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encoding %s", rel)
	}
	return w.writeFile(rel, append(data, '\n'))
}

func (w *Writer) writeManifest() error {
	// Map keys marshal in sorted order, so manifests stay diffable
	// across runs.
	data, err := json.MarshalIndent(w.manifest, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding manifest")
	}
	path := filepath.Join(w.outDir, "manifest.json")
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.NewIO("write", path, err)
	}
	return nil
}

// RenderMarkdown converts a markdown document (the about page source) to
// HTML with GitHub-flavored extensions enabled.
func RenderMarkdown(src []byte) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", errors.Wrap(err, "rendering markdown")
	}
	return buf.String(), nil
}

// LoadAbout renders path as the about page. A missing file is not an
// error; the run simply has no about page.
func LoadAbout(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.NewIO("read", path, err)
	}
	return RenderMarkdown(src)
}
