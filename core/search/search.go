// Package search builds the inverted verse index accumulated during a
// generation run. The index maps normalized word tokens to the ordered list
// of verse identifiers containing them.
package search

import (
	"sort"
	"strings"
	"unicode"
)

// Lemmatizer reduces a token to its dictionary form. When configured on an
// Index, a parallel lemma index is populated alongside the surface index.
type Lemmatizer interface {
	Lemma(token, lang string) string
}

// Index is the cumulative verse-to-content lookup structure for one run.
// It is mutated in place across all source units and is not safe for use
// by concurrent runs.
type Index struct {
	// Postings maps a token to verse IDs in indexing order.
	Postings map[string][]string
	// Lemmas maps a lemma to verse IDs. Empty unless a Lemmatizer is set.
	Lemmas map[string][]string

	lemmatizer Lemmatizer
}

// New returns an empty index.
func New() *Index {
	return &Index{
		Postings: make(map[string][]string),
		Lemmas:   make(map[string][]string),
	}
}

// SetLemmatizer configures lemma indexing for subsequent IndexVerse calls.
func (ix *Index) SetLemmatizer(l Lemmatizer) {
	ix.lemmatizer = l
}

// IndexVerse adds every token of the verse text to the index under verseID.
// A token occurring multiple times in one verse is recorded once.
func (ix *Index) IndexVerse(verseID, text, lang string) {
	for _, tok := range Tokenize(text, lang) {
		ix.add(ix.Postings, tok, verseID)
		if ix.lemmatizer != nil {
			if lemma := ix.lemmatizer.Lemma(tok, lang); lemma != "" {
				ix.add(ix.Lemmas, lemma, verseID)
			}
		}
	}
}

func (ix *Index) add(m map[string][]string, key, verseID string) {
	ids := m[key]
	if n := len(ids); n > 0 && ids[n-1] == verseID {
		return
	}
	m[key] = append(ids, verseID)
}

// Lookup returns the verse IDs indexed under one query word, normalized the
// same way verse text was.
func (ix *Index) Lookup(word, lang string) []string {
	toks := Tokenize(word, lang)
	if len(toks) == 0 {
		return nil
	}
	return ix.Postings[toks[0]]
}

// Words returns all indexed tokens in sorted order.
func (ix *Index) Words() []string {
	words := make([]string, 0, len(ix.Postings))
	for w := range ix.Postings {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// stopwords lists tokens excluded from the index, keyed by language code.
// Languages without an entry index every token.
var stopwords = map[string]map[string]bool{
	"en": wordSet("a an and are as at be but by for in into is it no not of on or that the their then there these they this to was will with"),
}

func wordSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}

// Tokenize lowercases text and splits it on anything that is not a letter
// or digit, dropping the language's stopwords.
func Tokenize(text, lang string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	stops := stopwords[lang]
	if stops == nil {
		return fields
	}
	toks := fields[:0]
	for _, f := range fields {
		if !stops[f] {
			toks = append(toks, f)
		}
	}
	return toks
}
