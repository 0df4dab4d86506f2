// Package usfm tokenizes USFM (Unified Standard Format Markers) source lines
// into tag records. One record is produced per marker on a line, in order of
// appearance; a line with content but no markers produces no records and is
// carried verbatim by the assembly engine.
package usfm

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/digitalbiblesociety/scriptorium/core/errors"
)

// Tag is one parsed semantic unit from a source line: a marker key, an
// optional number (chapter and verse markers only) and the trailing text.
// Tags are immutable once produced.
type Tag struct {
	Key    string
	Number string
	Text   string
}

// Line pairs the raw source line with the tags tokenized from it. Raw is
// kept because unmarked lines are emitted verbatim into the chapter stream.
type Line struct {
	Raw  string
	Tags []Tag
}

// markerRegex matches a USFM marker, including paired closers like \f* and \wj*.
var markerRegex = regexp.MustCompile(`\\([a-zA-Z0-9]+\*?)`)

// numberedKeys are markers whose first field is a number token.
var numberedKeys = map[string]bool{
	"c": true,
	"v": true,
}

// TokenizeLine splits one raw line into zero or more tag records. Inline
// markers embedded mid-line (footnotes, cross references, character spans)
// become their own records, each carrying the text up to the next marker.
func TokenizeLine(line string) []Tag {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}

	matches := markerRegex.FindAllStringSubmatchIndex(trimmed, -1)
	if len(matches) == 0 {
		return nil
	}

	tags := make([]Tag, 0, len(matches))
	for i, m := range matches {
		key := trimmed[m[2]:m[3]]

		end := len(trimmed)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		text := strings.TrimSpace(trimmed[m[1]:end])

		tag := Tag{Key: key}
		if numberedKeys[key] {
			fields := strings.SplitN(text, " ", 2)
			tag.Number = fields[0]
			if len(fields) > 1 {
				tag.Text = strings.TrimSpace(fields[1])
			}
		} else {
			tag.Text = text
		}
		tags = append(tags, tag)
	}
	return tags
}

// TokenizeReader tokenizes every line of r, preserving raw line text.
func TokenizeReader(r io.Reader) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		raw := scanner.Text()
		lines = append(lines, Line{Raw: raw, Tags: TokenizeLine(raw)})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewIO("scan", "", err)
	}
	return lines, nil
}

// BookCode extracts the book code from the text of an \id tag. The \id line
// carries the code followed by free-form description ("GEN Genesis (KJV)").
func BookCode(idText string) string {
	fields := strings.Fields(idText)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}

// StripCaller removes the leading caller token from footnote or cross
// reference text. USFM notes open with a single-character caller ("+", "-"
// or a literal mark) that the renderer replaces with its own numbering.
func StripCaller(text string) string {
	fields := strings.SplitN(strings.TrimSpace(text), " ", 2)
	if len(fields) == 0 {
		return ""
	}
	if len(fields[0]) == 1 {
		if len(fields) == 2 {
			return strings.TrimSpace(fields[1])
		}
		return ""
	}
	return strings.TrimSpace(text)
}
