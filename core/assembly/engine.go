// Package assembly converts flat tag-record streams into linked, rendered
// chapters. The engine consumes one source unit (book) at a time, tracking
// which blocks are open so every emitted opening fragment gets its close,
// flushing a chapter whenever the next chapter marker arrives, and feeding
// finished verses to the search index before they are overwritten.
package assembly

import (
	"sort"
	"strings"

	"github.com/digitalbiblesociety/scriptorium/core/books"
	"github.com/digitalbiblesociety/scriptorium/core/errors"
	"github.com/digitalbiblesociety/scriptorium/core/render"
	"github.com/digitalbiblesociety/scriptorium/core/search"
	"github.com/digitalbiblesociety/scriptorium/core/usfm"
)

// blockKind is the currently open block. At most one text or list-item
// block is open at a time; footnotes and verses are tracked separately
// because they nest inside blocks.
type blockKind int

const (
	blockNone blockKind = iota
	blockText
	blockListItem
)

// chapterState accumulates the chapter being assembled. html is append-only
// until the chapter is flushed.
type chapterState struct {
	html   strings.Builder
	id     string
	number string
	title  string
}

// verseState is the live verse. It is overwritten, not appended, on each
// verse marker; the outgoing verse is indexed just before the overwrite.
type verseState struct {
	id     string
	number string
	text   strings.Builder
}

// Engine is the block assembly state machine. One engine owns one run; no
// state persists between runs and an engine must not be shared.
type Engine struct {
	wrapper     Wrapper
	opts        *Options
	createIndex bool
	index       *search.Index

	chapters []*Chapter
	unparsed map[string]bool

	// Per-unit state, reset at unit boundaries.
	book         books.Book
	bookSet      bool
	name         string
	abbr         string
	chapter      chapterState
	verse        verseState
	block        blockKind
	verseOpen    bool
	footnoteOpen bool
	noteNum      int
}

// NewEngine returns an engine for one run. opts receives derived metadata
// as units are processed.
func NewEngine(w Wrapper, opts *Options, createIndex bool) *Engine {
	if opts == nil {
		opts = &Options{}
	}
	index := search.New()
	if opts.Lemmatizer != nil {
		index.SetLemmatizer(opts.Lemmatizer)
	}
	return &Engine{
		wrapper:     w,
		opts:        opts,
		createIndex: createIndex,
		index:       index,
		unparsed:    make(map[string]bool),
	}
}

// Run processes every unit in order, links and wraps the chapters, and
// returns the aggregate result. Unit order determines chapter order and the
// navigation chain; the engine does not validate it.
func Run(units []SourceUnit, w Wrapper, opts *Options, createIndex bool) (*Result, error) {
	e := NewEngine(w, opts, createIndex)
	for _, unit := range units {
		if err := e.ProcessUnit(unit); err != nil {
			return nil, err
		}
	}
	return e.Finish(), nil
}

// ProcessUnit dispatches every tag record of one source unit. Block flags
// are reset on entry and forced closed on exit; a unit that never resolves
// its \id tag fails the run.
func (e *Engine) ProcessUnit(unit SourceUnit) error {
	e.resetUnit()
	for _, line := range unit.Lines {
		if len(line.Tags) == 0 {
			if trimmed := strings.TrimSpace(line.Raw); trimmed != "" {
				e.chapter.html.WriteString(line.Raw)
				e.appendVerseText(trimmed)
			}
			continue
		}
		for _, tag := range line.Tags {
			if err := e.dispatch(unit.Name, tag); err != nil {
				return err
			}
		}
	}
	return e.finishUnit(unit.Name)
}

// Finish links the accumulated chapters and assembles the result. Call it
// once, after every unit has been processed: navigation crosses unit
// boundaries, so linking any earlier would produce a truncated chain.
func (e *Engine) Finish() *Result {
	LinkChapters(e.chapters, e.wrapper)

	keys := make([]string, 0, len(e.unparsed))
	for k := range e.unparsed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return &Result{
		Chapters:     e.chapters,
		Index:        e.index,
		LemmaIndex:   e.index.Lemmas,
		AboutHTML:    e.opts.AboutHTML,
		UnparsedTags: keys,
	}
}

func (e *Engine) resetUnit() {
	e.book = books.Book{}
	e.bookSet = false
	e.name = ""
	e.abbr = ""
	e.chapter = chapterState{}
	e.verse = verseState{}
	e.block = blockNone
	e.verseOpen = false
	e.footnoteOpen = false
	e.noteNum = 0
}

// dispatch applies one tag record. Closes always precede opens within a
// single dispatch.
func (e *Engine) dispatch(unitName string, tag usfm.Tag) error {
	switch tag.Key {
	case "b":
		// Hard break: everything open closes first.
		e.closeVerse()
		e.closeBlock()
		e.chapter.html.WriteString(render.Break())

	case "c":
		e.closeVerse()
		e.closeBlock()
		// Flush before the new header so a finalized chapter never
		// contains the next chapter's header.
		if e.chapter.number != "" {
			e.flushChapter()
		}
		e.chapter.number = tag.Number
		e.chapter.id = e.wrapper.ChapterCode(e.book, tag.Number)
		e.chapter.title = e.name + " " + tag.Number
		e.opts.Sections = append(e.opts.Sections, e.chapter.id)
		e.chapter.html.WriteString(render.ChapterNumber(tag.Number))

	case "id":
		code := usfm.BookCode(tag.Text)
		book, ok := books.Resolve(code)
		if !ok {
			return errors.NewMissingID(unitName, code)
		}
		e.book = book
		e.bookSet = true
		e.name = book.Name
		e.abbr = book.Abbr

	case "toc1", "toc2":
		// Last non-empty write wins.
		if tag.Text != "" {
			e.name = tag.Text
		}
	case "toc3":
		if tag.Text != "" {
			e.abbr = tag.Text
		}

	case "is", "ip", "ili", "mt", "mt1", "mt2", "mt3", "ms", "ms1", "d", "sp", "sr", "s", "s1", "s2", "r":
		e.closeVerse()
		e.closeBlock()
		e.chapter.html.WriteString(render.Heading(tag.Key, tag.Text))

	case "v":
		e.closeVerse()
		// Index the outgoing verse before the new one overwrites it.
		e.flushVerseIndex()
		e.verse.id = e.wrapper.VerseCode(e.book, e.chapter.number, tag.Number)
		e.verse.number = tag.Number
		e.chapter.html.WriteString(e.wrapper.OpenVerse(e.verse.id, tag.Number))
		e.verseOpen = true
		if tag.Text != "" {
			e.chapter.html.WriteString(tag.Text)
			e.verse.text.WriteString(tag.Text)
		}

	case "cp", "m", "mi", "nb", "p", "pi", "q", "q1", "q2", "q3":
		e.closeVerse()
		e.closeBlock()
		e.chapter.html.WriteString(render.TextBlockOpen(tag.Key))
		e.block = blockText
		if tag.Text != "" {
			// Inline text continues the pending verse as an anonymous
			// (unnumbered) segment nested inside the new block.
			e.chapter.html.WriteString(e.wrapper.OpenVerse(e.verse.id, ""))
			e.chapter.html.WriteString(tag.Text)
			e.chapter.html.WriteString(e.wrapper.CloseVerse())
			e.appendVerseText(tag.Text)
		}

	case "li", "li1", "li2", "li3":
		e.closeVerse()
		e.closeBlock()
		e.chapter.html.WriteString(render.ListItemOpen(tag.Key))
		e.block = blockListItem
		if tag.Text != "" {
			e.chapter.html.WriteString(tag.Text)
			e.appendVerseText(tag.Text)
		}

	case "x", "f":
		e.noteNum++
		e.chapter.html.WriteString(render.FootnoteOpen(e.noteNum, usfm.StripCaller(tag.Text)))
		e.footnoteOpen = true

	case "fqa":
		if tag.Text != "" {
			e.chapter.html.WriteString(render.Emphasis(tag.Text))
		}
	case "ft":
		if tag.Text != "" {
			e.chapter.html.WriteString(tag.Text)
		}

	case "x*", "f*":
		// Closing an unopened footnote is a silent no-op. Text after the
		// closer resumes the verse either way.
		if e.footnoteOpen {
			e.chapter.html.WriteString(render.FootnoteClose())
			e.footnoteOpen = false
		}
		if tag.Text != "" {
			e.chapter.html.WriteString(tag.Text)
			e.appendVerseText(tag.Text)
		}

	case "wj", "qs", "nd":
		// Inline spans are not balance-checked; an unmatched open
		// persists until later content closes it.
		e.chapter.html.WriteString(render.SpanOpen(tag.Key))
		if tag.Text != "" {
			e.chapter.html.WriteString(tag.Text)
			e.appendVerseText(tag.Text)
		}
	case "wj*", "qs*", "nd*":
		e.chapter.html.WriteString(render.SpanClose())
		if tag.Text != "" {
			e.chapter.html.WriteString(tag.Text)
			e.appendVerseText(tag.Text)
		}

	default:
		if tag.Key != "" {
			e.unparsed[tag.Key] = true
		}
	}
	return nil
}

// finishUnit forces open blocks closed in nesting order, flushes the last
// chapter, and records the unit's resolved metadata.
func (e *Engine) finishUnit(unitName string) error {
	if e.footnoteOpen {
		e.chapter.html.WriteString(render.FootnoteClose())
		e.footnoteOpen = false
	}
	e.closeVerse()
	e.flushVerseIndex()
	e.closeBlock()
	if e.chapter.number != "" {
		e.flushChapter()
	}

	if !e.bookSet {
		return errors.NewMissingID(unitName, "")
	}

	e.opts.Divisions = append(e.opts.Divisions, e.book.Code)
	e.opts.DivisionNames = append(e.opts.DivisionNames, e.name)
	e.opts.DivisionAbbrs = append(e.opts.DivisionAbbrs, e.abbr)
	return nil
}

func (e *Engine) closeVerse() {
	if e.verseOpen {
		e.chapter.html.WriteString(e.wrapper.CloseVerse())
		e.verseOpen = false
	}
}

func (e *Engine) closeBlock() {
	if e.block != blockNone {
		e.chapter.html.WriteString(render.BlockClose())
		e.block = blockNone
	}
}

// flushVerseIndex submits the pending verse to the index and clears it.
// Verses with no id or no accumulated text are discarded unindexed.
func (e *Engine) flushVerseIndex() {
	if e.createIndex && e.verse.id != "" && e.verse.text.Len() > 0 {
		e.index.IndexVerse(e.verse.id, e.verse.text.String(), e.opts.Lang)
	}
	e.verse = verseState{}
}

// appendVerseText adds continuation text to the pending verse accumulator.
func (e *Engine) appendVerseText(text string) {
	if e.verse.id == "" {
		return
	}
	if e.verse.text.Len() > 0 {
		e.verse.text.WriteString(" ")
	}
	e.verse.text.WriteString(text)
}

func (e *Engine) flushChapter() {
	e.chapters = append(e.chapters, &Chapter{
		ID:    e.chapter.id,
		Title: e.chapter.title,
		HTML:  e.chapter.html.String(),
	})
	e.chapter = chapterState{}
}
