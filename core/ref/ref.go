// Package ref parses human-entered scripture references ("Genesis 1:1-5",
// "Gen 1", "1 John 3:16") into resolved book/chapter/verse ranges.
package ref

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/digitalbiblesociety/scriptorium/core/books"
	"github.com/digitalbiblesociety/scriptorium/core/errors"
)

// rawRange is the grammar shape before book resolution.
type rawRange struct {
	Book         string `parser:"@Book"`
	ChapterStart *int   `parser:"( @Number"`
	VerseStart   *int   `parser:"( ':' @Number )?"`
	ChapterEnd   *int   `parser:"( '-' ( @Number"`
	VerseEnd     *int   `parser:"    ( ':' @Number )? )? )? )?"`
}

// referenceLexer tokenizes scripture references. Book names may begin with
// an ordinal ("1 John") and span several words ("Song of Solomon").
var referenceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Book", Pattern: `(?:\d\s*)?[A-Za-z]+(?:\s+(?:of\s+)?[A-Za-z]+)*\.?`},
	{Name: "Number", Pattern: `\d+`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var referenceParser = participle.MustBuild[rawRange](
	participle.Lexer(referenceLexer),
	participle.Elide("Whitespace"),
)

// Range is a resolved scripture range. Zero fields are unset: "Genesis"
// yields only Book, "Genesis 1" adds ChapterStart, and so on.
type Range struct {
	Book         books.Book
	ChapterStart int
	VerseStart   int
	ChapterEnd   int
	VerseEnd     int
}

// Parse parses a reference string. Supported forms:
//   - "Genesis", "Gen", "GEN" (full book)
//   - "Genesis 1" (full chapter), "Genesis 1:1" (single verse)
//   - "Genesis 1:1-5" (verse range), "Genesis 1-2" (chapter range)
//   - "Genesis 1:1-2:5" (range across chapters)
//   - dotted separators: "Gen.1.1"
func Parse(input string) (*Range, error) {
	raw, err := referenceParser.ParseString("", normalizeSeparators(input))
	if err != nil {
		return nil, errors.NewParse("reference", "", err.Error())
	}

	book, ok := resolveBookName(raw.Book)
	if !ok {
		return nil, errors.NewNotFound("book", strings.TrimSpace(raw.Book))
	}

	r := &Range{Book: book}
	if raw.ChapterStart != nil {
		r.ChapterStart = *raw.ChapterStart
	}
	if raw.VerseStart != nil {
		r.VerseStart = *raw.VerseStart
	}
	if raw.ChapterEnd != nil {
		r.ChapterEnd = *raw.ChapterEnd
	}
	if raw.VerseEnd != nil {
		r.VerseEnd = *raw.VerseEnd
	}

	// "Genesis 1:1-5" parses the 5 as a chapter end; with a verse start
	// and no verse end the number after the dash is really the verse end.
	if r.VerseStart != 0 && r.ChapterEnd != 0 && r.VerseEnd == 0 {
		r.VerseEnd = r.ChapterEnd
		r.ChapterEnd = 0
	}
	return r, nil
}

// normalizeSeparators rewrites "Gen.1.1" and "Gen 1.1" into "Gen 1:1".
func normalizeSeparators(input string) string {
	parts := strings.Split(strings.TrimSpace(input), ".")
	if len(parts) < 2 {
		return input
	}
	numeric := true
	for _, p := range parts[1:] {
		if strings.TrimSpace(p) == "" {
			continue
		}
		for _, r := range strings.TrimSpace(p) {
			if r < '0' || r > '9' {
				numeric = false
			}
		}
	}
	if !numeric {
		return input
	}
	out := strings.TrimRight(parts[0], " ")
	for i, p := range parts[1:] {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		// A dot between the book name and the first number acts as a
		// space; dots between numbers act as chapter:verse colons.
		if i == 0 && !endsWithDigit(out) {
			out += " " + p
		} else {
			out += ":" + p
		}
	}
	return out
}

func endsWithDigit(s string) bool {
	if s == "" {
		return false
	}
	last := s[len(s)-1]
	return last >= '0' && last <= '9'
}

// aliases maps normalized book names, abbreviations and codes to USFM codes.
var aliases = func() map[string]string {
	m := make(map[string]string)
	for _, b := range books.All() {
		m[normalizeName(b.Code)] = b.Code
		m[normalizeName(b.Name)] = b.Code
		m[normalizeName(b.Abbr)] = b.Code
	}
	// Common forms the canonical table does not carry.
	for alias, code := range map[string]string{
		"psalm":       "PSA",
		"psalms":      "PSA",
		"songofsongs": "SNG",
		"canticles":   "SNG",
	} {
		m[alias] = code
	}
	return m
}()

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(s), "."))
	return strings.Map(func(r rune) rune {
		if r == ' ' {
			return -1
		}
		return r
	}, s)
}

func resolveBookName(name string) (books.Book, bool) {
	code, ok := aliases[normalizeName(name)]
	if !ok {
		return books.Book{}, false
	}
	return books.Resolve(code)
}
