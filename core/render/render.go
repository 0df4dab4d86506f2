// Package render produces the HTML fragments the assembly engine stitches
// into chapters. Fragment text is emitted verbatim: USFM source is treated
// as trusted content, matching the verbatim pass-through of unmarked lines.
package render

import (
	"fmt"

	"github.com/digitalbiblesociety/scriptorium/core/books"
)

// HTML is the standard site wrapper. It implements assembly.Wrapper.
type HTML struct{}

// ChapterCode formats the chapter identifier from the book's DBS prefix and
// the chapter number, e.g. ("GN", "1") -> "GN1".
func (HTML) ChapterCode(b books.Book, chapter string) string {
	return b.DBS + chapter
}

// VerseCode formats the verse identifier, e.g. Genesis 1:1 -> "GN1_1".
func (HTML) VerseCode(b books.Book, chapter, verse string) string {
	return b.DBS + chapter + "_" + verse
}

// OpenChapter returns the header fragment wrapped around a finished chapter.
func (HTML) OpenChapter(id, title string) string {
	return fmt.Sprintf(`<div class="section chapter %s" data-id="%s" data-title="%s" dir="ltr">`+"\n", id, id, title)
}

// CloseChapter returns the footer fragment wrapped around a finished chapter.
func (HTML) CloseChapter() string {
	return "</div>\n"
}

// OpenVerse returns the opening fragment for a verse. num is empty for
// anonymous segments (text carried inline on a paragraph marker), which get
// a verse span but no number label.
func (HTML) OpenVerse(verseID, num string) string {
	if num == "" {
		return fmt.Sprintf(`<span class="v %s" data-id="%s">`, verseID, verseID)
	}
	return fmt.Sprintf(`<span class="v-num v-%s">%s&#160;</span><span class="v %s" data-id="%s">`, num, num, verseID, verseID)
}

// CloseVerse returns the closing fragment for a verse.
func (HTML) CloseVerse() string {
	return "</span>"
}

// Fragment helpers used directly by the engine.

// Break is the standalone fragment for a \b hard break.
func Break() string {
	return `<div class="b"></div>` + "\n"
}

// ChapterNumber is the in-chapter header fragment for a \c marker.
func ChapterNumber(num string) string {
	return fmt.Sprintf(`<div class="c">%s</div>`+"\n", num)
}

// Heading is a labeled block for heading and label markers (\is, \mt, \s1, ...).
// The marker key doubles as the CSS class.
func Heading(key, text string) string {
	return fmt.Sprintf(`<div class="%s">%s</div>`+"\n", key, text)
}

// TextBlockOpen opens a paragraph or poetry block (\p, \q1, \m, ...).
func TextBlockOpen(key string) string {
	return fmt.Sprintf(`<div class="%s">`, key)
}

// ListItemOpen opens a list item block (\li, \li1, ...).
func ListItemOpen(key string) string {
	return fmt.Sprintf(`<div class="%s">`, key)
}

// BlockClose closes a text or list-item block.
func BlockClose() string {
	return "</div>\n"
}

// FootnoteOpen opens a footnote or cross reference carrying the running note
// number. The text has already had its caller token stripped.
func FootnoteOpen(num int, text string) string {
	return fmt.Sprintf(`<span class="note" id="note-%d"><span class="key">%d</span><span class="text">%s`, num, num, text)
}

// FootnoteClose closes a footnote opened with FootnoteOpen.
func FootnoteClose() string {
	return "</span></span>"
}

// Emphasis wraps alternate-reading footnote text (\fqa).
func Emphasis(text string) string {
	return "<em>" + text + "</em>"
}

// SpanOpen opens an inline character span (\wj, \qs, \nd). These are not
// balance-checked; an unmatched open persists until later content closes it.
func SpanOpen(key string) string {
	return fmt.Sprintf(`<span class="%s">`, key)
}

// SpanClose closes an inline character span.
func SpanClose() string {
	return "</span>"
}
