package assembly

import (
	"github.com/digitalbiblesociety/scriptorium/core/books"
	"github.com/digitalbiblesociety/scriptorium/core/search"
	"github.com/digitalbiblesociety/scriptorium/core/usfm"
)

// SourceUnit is one source document (one book), tokenized per line. Units
// are processed strictly in caller-supplied order; that order determines
// both chapter order and the navigation chain.
type SourceUnit struct {
	// Name identifies the unit in errors and logs (usually the file name).
	Name string
	// Lines are the tokenized source lines, in file order.
	Lines []usfm.Line
}

// Chapter is one finalized chapter record. ID, Title and HTML are fixed
// when the chapter is flushed; PrevID and NextID are filled in by the
// postprocessing pass, which also wraps HTML with the chapter header and
// footer fragments.
type Chapter struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	HTML   string `json:"html"`
	PrevID string `json:"previd"`
	NextID string `json:"nextid"`
}

// Wrapper supplies the chapter and verse wrapping fragments and identifier
// formats. render.HTML is the standard implementation.
type Wrapper interface {
	ChapterCode(b books.Book, chapter string) string
	VerseCode(b books.Book, chapter, verse string) string
	OpenChapter(id, title string) string
	CloseChapter() string
	OpenVerse(verseID, num string) string
	CloseVerse() string
}

// Options carries run configuration in and derived metadata out. The
// derived fields are appended to as each unit finishes, mirroring the
// order of the units themselves.
type Options struct {
	// Lang is the language code used for verse indexing.
	Lang string
	// AboutHTML is read once by the caller before processing and carried
	// verbatim into the result.
	AboutHTML string
	// Lemmatizer, when set, populates the lemma index alongside the
	// surface index.
	Lemmatizer search.Lemmatizer

	// Derived output metadata, one entry per processed unit.
	Divisions     []string // resolved book codes
	DivisionNames []string // active names after TOC overrides
	DivisionAbbrs []string // active abbreviations after TOC overrides
	// Sections lists every chapter ID across all units, in order.
	Sections []string
}

// Result is the aggregate returned to the caller after all units are
// processed and the chapters are linked and wrapped.
type Result struct {
	Chapters []*Chapter
	// Index is the inverted verse index; empty when indexing is disabled.
	Index *search.Index
	// LemmaIndex mirrors Index.Lemmas. Populated only when Options
	// carries a Lemmatizer, otherwise empty.
	LemmaIndex map[string][]string
	AboutHTML  string
	// UnparsedTags lists tag keys seen with no dispatch behavior,
	// deduplicated and sorted. Diagnostics only.
	UnparsedTags []string
}
