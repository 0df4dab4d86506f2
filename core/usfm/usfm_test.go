package usfm

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenizeLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []Tag
	}{
		{
			name: "empty line",
			line: "   ",
			want: nil,
		},
		{
			name: "untagged text",
			line: "In the beginning God created",
			want: nil,
		},
		{
			name: "id with description",
			line: `\id GEN Genesis`,
			want: []Tag{{Key: "id", Text: "GEN Genesis"}},
		},
		{
			name: "chapter",
			line: `\c 12`,
			want: []Tag{{Key: "c", Number: "12"}},
		},
		{
			name: "verse with text",
			line: `\v 1 In the beginning God created the heavens and the earth.`,
			want: []Tag{{Key: "v", Number: "1", Text: "In the beginning God created the heavens and the earth."}},
		},
		{
			name: "verse range number",
			line: `\v 17-18 And they spoke.`,
			want: []Tag{{Key: "v", Number: "17-18", Text: "And they spoke."}},
		},
		{
			name: "bare paragraph",
			line: `\p`,
			want: []Tag{{Key: "p"}},
		},
		{
			name: "paragraph with inline text",
			line: `\q1 Blessed is the man`,
			want: []Tag{{Key: "q1", Text: "Blessed is the man"}},
		},
		{
			name: "inline footnote split",
			line: `\v 2 And the earth \f + \ft was without form\f* and void.`,
			want: []Tag{
				{Key: "v", Number: "2", Text: "And the earth"},
				{Key: "f", Text: "+"},
				{Key: "ft", Text: "was without form"},
				{Key: "f*", Text: "and void."},
			},
		},
		{
			name: "words of Jesus span",
			line: `\v 3 \wj Blessed are the poor\wj* he said.`,
			want: []Tag{
				{Key: "v", Number: "3"},
				{Key: "wj", Text: "Blessed are the poor"},
				{Key: "wj*", Text: "he said."},
			},
		},
		{
			name: "toc override",
			line: `\toc2 Genesis`,
			want: []Tag{{Key: "toc2", Text: "Genesis"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenizeLine(tt.line)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("TokenizeLine(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestTokenizeReader(t *testing.T) {
	src := `\id GEN Genesis
\c 1
Selah
\v 1 In the beginning.
`
	lines, err := TokenizeReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("TokenizeReader: %v", err)
	}
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	if lines[2].Raw != "Selah" || lines[2].Tags != nil {
		t.Errorf("untagged line should keep raw text and produce no tags: %+v", lines[2])
	}
	if lines[3].Tags[0].Number != "1" {
		t.Errorf("verse number = %q, want 1", lines[3].Tags[0].Number)
	}
}

func TestBookCode(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"GEN Genesis", "GEN"},
		{"gen", "GEN"},
		{"  PSA  Psalms (KJV)", "PSA"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := BookCode(tt.text); got != tt.want {
			t.Errorf("BookCode(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestStripCaller(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"+ was without form", "was without form"},
		{"- see note", "see note"},
		{"+", ""},
		{"no caller here", "no caller here"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripCaller(tt.text); got != tt.want {
			t.Errorf("StripCaller(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
