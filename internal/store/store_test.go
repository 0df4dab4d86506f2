package store

import (
	"path/filepath"
	"testing"

	"github.com/digitalbiblesociety/scriptorium/core/assembly"
	"github.com/digitalbiblesociety/scriptorium/core/errors"
	"github.com/digitalbiblesociety/scriptorium/core/search"
	"github.com/google/go-cmp/cmp"
)

func testResult() *assembly.Result {
	idx := search.New()
	idx.Postings["beginning"] = []string{"GN1_1"}
	idx.Postings["earth"] = []string{"GN1_1", "GN1_2"}
	return &assembly.Result{
		Chapters: []*assembly.Chapter{
			{ID: "GN1", Title: "Genesis 1", HTML: "<p>one</p>", NextID: "GN2"},
			{ID: "GN2", Title: "Genesis 2", HTML: "<p>two</p>", PrevID: "GN1"},
		},
		Index:      idx,
		LemmaIndex: map[string][]string{"begin": {"GN1_1"}},
		AboutHTML:  "<p>about</p>",
	}
}

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "run.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndReadChapters(t *testing.T) {
	s := openTemp(t)
	res := testResult()
	if err := s.SaveRun(res, "en", "run-1"); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	chapters, err := s.Chapters()
	if err != nil {
		t.Fatalf("Chapters: %v", err)
	}
	if diff := cmp.Diff(res.Chapters, chapters); diff != "" {
		t.Errorf("chapters mismatch (-want +got):\n%s", diff)
	}

	ch, err := s.Chapter("GN2")
	if err != nil {
		t.Fatalf("Chapter: %v", err)
	}
	if ch.PrevID != "GN1" || ch.NextID != "" {
		t.Errorf("navigation = prev %q next %q", ch.PrevID, ch.NextID)
	}
}

func TestChapterNotFound(t *testing.T) {
	s := openTemp(t)
	if err := s.SaveRun(testResult(), "en", "run-1"); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	_, err := s.Chapter("XX9")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestVersesPreserveOrder(t *testing.T) {
	s := openTemp(t)
	if err := s.SaveRun(testResult(), "en", "run-1"); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	verses, err := s.Verses("earth")
	if err != nil {
		t.Fatalf("Verses: %v", err)
	}
	if diff := cmp.Diff([]string{"GN1_1", "GN1_2"}, verses); diff != "" {
		t.Errorf("postings mismatch (-want +got):\n%s", diff)
	}

	none, err := s.Verses("absent")
	if err != nil {
		t.Fatalf("Verses absent: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no postings, got %v", none)
	}
}

func TestSaveRunReplaces(t *testing.T) {
	s := openTemp(t)
	if err := s.SaveRun(testResult(), "en", "run-1"); err != nil {
		t.Fatalf("first SaveRun: %v", err)
	}

	second := &assembly.Result{
		Chapters: []*assembly.Chapter{{ID: "EX1", Title: "Exodus 1", HTML: "<p>x</p>"}},
		Index:    search.New(),
	}
	if err := s.SaveRun(second, "en", "run-2"); err != nil {
		t.Fatalf("second SaveRun: %v", err)
	}

	chapters, err := s.Chapters()
	if err != nil {
		t.Fatalf("Chapters: %v", err)
	}
	if len(chapters) != 1 || chapters[0].ID != "EX1" {
		t.Errorf("stale chapters survived replace: %+v", chapters)
	}
	if verses, _ := s.Verses("earth"); len(verses) != 0 {
		t.Errorf("stale postings survived replace: %v", verses)
	}
}

func TestMeta(t *testing.T) {
	s := openTemp(t)
	if err := s.SaveRun(testResult(), "grc", "run-7"); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	for key, want := range map[string]string{
		"lang":       "grc",
		"run_id":     "run-7",
		"about_html": "<p>about</p>",
	} {
		got, err := s.Meta(key)
		if err != nil {
			t.Fatalf("Meta %s: %v", key, err)
		}
		if got != want {
			t.Errorf("meta %s = %q, want %q", key, got, want)
		}
	}
	if unset, _ := s.Meta("missing"); unset != "" {
		t.Errorf("unset meta = %q", unset)
	}
}
