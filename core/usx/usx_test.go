package usx

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/digitalbiblesociety/scriptorium/core/usfm"
)

const sampleUSX = `<?xml version="1.0" encoding="utf-8"?>
<usx version="2.6">
  <book code="GEN" style="id">Genesis</book>
  <chapter number="1" style="c" />
  <para style="p">
    <verse number="1" style="v" />In the beginning God created the heavens and the earth.
    <verse number="2" style="v" />And the earth was without form<note caller="+" style="f"><char style="ft">Or, waste</char></note> and void.
  </para>
  <para style="q1">Blessed is the man</para>
  <chapter number="2" style="c" />
  <para style="p">
    <verse number="1" style="v" />Thus the heavens <char style="nd">LORD</char> were finished.
  </para>
</usx>
`

func TestParse(t *testing.T) {
	lines, err := Parse(strings.NewReader(sampleUSX))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []usfm.Line{
		{Tags: []usfm.Tag{{Key: "id", Text: "GEN Genesis"}}},
		{Tags: []usfm.Tag{{Key: "c", Number: "1"}}},
		{Tags: []usfm.Tag{
			{Key: "p"},
			{Key: "v", Number: "1", Text: "In the beginning God created the heavens and the earth."},
			{Key: "v", Number: "2", Text: "And the earth was without form"},
			{Key: "f", Text: "+"},
			{Key: "ft", Text: "Or, waste"},
			{Key: "f*", Text: "and void."},
		}},
		{Tags: []usfm.Tag{{Key: "q1", Text: "Blessed is the man"}}},
		{Tags: []usfm.Tag{{Key: "c", Number: "2"}}},
		{Tags: []usfm.Tag{
			{Key: "p"},
			{Key: "v", Number: "1", Text: "Thus the heavens"},
			{Key: "nd", Text: "LORD"},
			{Key: "nd*", Text: "were finished."},
		}},
	}

	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseNoRoot(t *testing.T) {
	_, err := Parse(strings.NewReader(`<?xml version="1.0"?><other/>`))
	if err == nil {
		t.Fatal("expected error for document without <usx> root")
	}
}

func TestParseBadXML(t *testing.T) {
	_, err := Parse(strings.NewReader(`<usx><para style="p">`))
	// xmlquery tolerates unclosed elements; either outcome is acceptable
	// as long as Parse does not panic.
	_ = err
}
