package assembly

// LinkChapters fills in the navigation chain and wraps each chapter's
// markup with its header and footer fragments. Navigation is positional
// over the whole sequence, crossing unit boundaries: the last chapter of
// one book points at the first chapter of the next. The two ends keep
// empty IDs. Must run only after every unit has been processed.
func LinkChapters(chapters []*Chapter, w Wrapper) {
	for i, ch := range chapters {
		if i > 0 {
			ch.PrevID = chapters[i-1].ID
		}
		if i < len(chapters)-1 {
			ch.NextID = chapters[i+1].ID
		}
		ch.HTML = w.OpenChapter(ch.ID, ch.Title) + ch.HTML + w.CloseChapter()
	}
}
