package assembly

import (
	"strings"
	"testing"

	"github.com/digitalbiblesociety/scriptorium/core/render"
)

func TestLinkChapters(t *testing.T) {
	chapters := []*Chapter{
		{ID: "GN1", Title: "Genesis 1", HTML: "one"},
		{ID: "GN2", Title: "Genesis 2", HTML: "two"},
		{ID: "EX1", Title: "Exodus 1", HTML: "three"},
	}

	LinkChapters(chapters, render.HTML{})

	for i, ch := range chapters {
		wantPrev, wantNext := "", ""
		if i > 0 {
			wantPrev = chapters[i-1].ID
		}
		if i < len(chapters)-1 {
			wantNext = chapters[i+1].ID
		}
		if ch.PrevID != wantPrev || ch.NextID != wantNext {
			t.Errorf("%s nav = prev %q next %q, want prev %q next %q", ch.ID, ch.PrevID, ch.NextID, wantPrev, wantNext)
		}
		if !strings.HasPrefix(ch.HTML, `<div class="section chapter `+ch.ID) {
			t.Errorf("%s html not wrapped: %s", ch.ID, ch.HTML)
		}
		if !strings.HasSuffix(ch.HTML, "</div>\n") {
			t.Errorf("%s html missing footer: %s", ch.ID, ch.HTML)
		}
	}
}

func TestLinkChaptersSingle(t *testing.T) {
	chapters := []*Chapter{{ID: "JD1", Title: "Jude 1", HTML: "body"}}
	LinkChapters(chapters, render.HTML{})

	if chapters[0].PrevID != "" || chapters[0].NextID != "" {
		t.Errorf("single chapter nav = prev %q next %q, want empty", chapters[0].PrevID, chapters[0].NextID)
	}
	if !strings.Contains(chapters[0].HTML, "body") {
		t.Error("original html lost during wrapping")
	}
}

func TestLinkChaptersEmpty(t *testing.T) {
	// Must not panic on an empty sequence.
	LinkChapters(nil, render.HTML{})
}
