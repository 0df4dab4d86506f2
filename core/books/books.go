// Package books resolves USFM book codes to canonical metadata: display
// name, abbreviation, Digital Bible Society chapter-code prefix, canonical
// order and chapter count.
package books

import "strings"

// Book is the canonical metadata for one book of the Bible.
type Book struct {
	// Code is the three-character USFM identifier (e.g. "GEN").
	Code string
	// DBS is the Digital Bible Society short code used as the chapter-code
	// prefix (e.g. "GN", so Genesis 1 becomes "GN1").
	DBS string
	// Name is the canonical English display name.
	Name string
	// Abbr is the common abbreviation.
	Abbr string
	// Order is the position in the Protestant canon (1-indexed).
	Order int
	// Testament is "OT" or "NT".
	Testament string
	// Chapters is the number of chapters.
	Chapters int
}

// canon lists the 66 books of the Protestant canon in canonical order.
var canon = []Book{
	{Code: "GEN", DBS: "GN", Name: "Genesis", Abbr: "Gen", Testament: "OT", Chapters: 50},
	{Code: "EXO", DBS: "EX", Name: "Exodus", Abbr: "Exod", Testament: "OT", Chapters: 40},
	{Code: "LEV", DBS: "LV", Name: "Leviticus", Abbr: "Lev", Testament: "OT", Chapters: 27},
	{Code: "NUM", DBS: "NU", Name: "Numbers", Abbr: "Num", Testament: "OT", Chapters: 36},
	{Code: "DEU", DBS: "DT", Name: "Deuteronomy", Abbr: "Deut", Testament: "OT", Chapters: 34},
	{Code: "JOS", DBS: "JS", Name: "Joshua", Abbr: "Josh", Testament: "OT", Chapters: 24},
	{Code: "JDG", DBS: "JG", Name: "Judges", Abbr: "Judg", Testament: "OT", Chapters: 21},
	{Code: "RUT", DBS: "RT", Name: "Ruth", Abbr: "Ruth", Testament: "OT", Chapters: 4},
	{Code: "1SA", DBS: "S1", Name: "1 Samuel", Abbr: "1Sam", Testament: "OT", Chapters: 31},
	{Code: "2SA", DBS: "S2", Name: "2 Samuel", Abbr: "2Sam", Testament: "OT", Chapters: 24},
	{Code: "1KI", DBS: "K1", Name: "1 Kings", Abbr: "1Kgs", Testament: "OT", Chapters: 22},
	{Code: "2KI", DBS: "K2", Name: "2 Kings", Abbr: "2Kgs", Testament: "OT", Chapters: 25},
	{Code: "1CH", DBS: "R1", Name: "1 Chronicles", Abbr: "1Chr", Testament: "OT", Chapters: 29},
	{Code: "2CH", DBS: "R2", Name: "2 Chronicles", Abbr: "2Chr", Testament: "OT", Chapters: 36},
	{Code: "EZR", DBS: "ER", Name: "Ezra", Abbr: "Ezra", Testament: "OT", Chapters: 10},
	{Code: "NEH", DBS: "NE", Name: "Nehemiah", Abbr: "Neh", Testament: "OT", Chapters: 13},
	{Code: "EST", DBS: "ET", Name: "Esther", Abbr: "Esth", Testament: "OT", Chapters: 10},
	{Code: "JOB", DBS: "JB", Name: "Job", Abbr: "Job", Testament: "OT", Chapters: 42},
	{Code: "PSA", DBS: "PS", Name: "Psalms", Abbr: "Ps", Testament: "OT", Chapters: 150},
	{Code: "PRO", DBS: "PR", Name: "Proverbs", Abbr: "Prov", Testament: "OT", Chapters: 31},
	{Code: "ECC", DBS: "EC", Name: "Ecclesiastes", Abbr: "Eccl", Testament: "OT", Chapters: 12},
	{Code: "SNG", DBS: "SS", Name: "Song of Solomon", Abbr: "Song", Testament: "OT", Chapters: 8},
	{Code: "ISA", DBS: "IS", Name: "Isaiah", Abbr: "Isa", Testament: "OT", Chapters: 66},
	{Code: "JER", DBS: "JR", Name: "Jeremiah", Abbr: "Jer", Testament: "OT", Chapters: 52},
	{Code: "LAM", DBS: "LM", Name: "Lamentations", Abbr: "Lam", Testament: "OT", Chapters: 5},
	{Code: "EZK", DBS: "EK", Name: "Ezekiel", Abbr: "Ezek", Testament: "OT", Chapters: 48},
	{Code: "DAN", DBS: "DN", Name: "Daniel", Abbr: "Dan", Testament: "OT", Chapters: 12},
	{Code: "HOS", DBS: "HS", Name: "Hosea", Abbr: "Hos", Testament: "OT", Chapters: 14},
	{Code: "JOL", DBS: "JL", Name: "Joel", Abbr: "Joel", Testament: "OT", Chapters: 3},
	{Code: "AMO", DBS: "AM", Name: "Amos", Abbr: "Amos", Testament: "OT", Chapters: 9},
	{Code: "OBA", DBS: "OB", Name: "Obadiah", Abbr: "Obad", Testament: "OT", Chapters: 1},
	{Code: "JON", DBS: "JH", Name: "Jonah", Abbr: "Jonah", Testament: "OT", Chapters: 4},
	{Code: "MIC", DBS: "MC", Name: "Micah", Abbr: "Mic", Testament: "OT", Chapters: 7},
	{Code: "NAM", DBS: "NM", Name: "Nahum", Abbr: "Nah", Testament: "OT", Chapters: 3},
	{Code: "HAB", DBS: "HK", Name: "Habakkuk", Abbr: "Hab", Testament: "OT", Chapters: 3},
	{Code: "ZEP", DBS: "ZP", Name: "Zephaniah", Abbr: "Zeph", Testament: "OT", Chapters: 3},
	{Code: "HAG", DBS: "HG", Name: "Haggai", Abbr: "Hag", Testament: "OT", Chapters: 2},
	{Code: "ZEC", DBS: "ZC", Name: "Zechariah", Abbr: "Zech", Testament: "OT", Chapters: 14},
	{Code: "MAL", DBS: "ML", Name: "Malachi", Abbr: "Mal", Testament: "OT", Chapters: 4},
	{Code: "MAT", DBS: "MT", Name: "Matthew", Abbr: "Matt", Testament: "NT", Chapters: 28},
	{Code: "MRK", DBS: "MK", Name: "Mark", Abbr: "Mark", Testament: "NT", Chapters: 16},
	{Code: "LUK", DBS: "LK", Name: "Luke", Abbr: "Luke", Testament: "NT", Chapters: 24},
	{Code: "JHN", DBS: "JN", Name: "John", Abbr: "John", Testament: "NT", Chapters: 21},
	{Code: "ACT", DBS: "AC", Name: "Acts", Abbr: "Acts", Testament: "NT", Chapters: 28},
	{Code: "ROM", DBS: "RM", Name: "Romans", Abbr: "Rom", Testament: "NT", Chapters: 16},
	{Code: "1CO", DBS: "C1", Name: "1 Corinthians", Abbr: "1Cor", Testament: "NT", Chapters: 16},
	{Code: "2CO", DBS: "C2", Name: "2 Corinthians", Abbr: "2Cor", Testament: "NT", Chapters: 13},
	{Code: "GAL", DBS: "GL", Name: "Galatians", Abbr: "Gal", Testament: "NT", Chapters: 6},
	{Code: "EPH", DBS: "EP", Name: "Ephesians", Abbr: "Eph", Testament: "NT", Chapters: 6},
	{Code: "PHP", DBS: "PP", Name: "Philippians", Abbr: "Phil", Testament: "NT", Chapters: 4},
	{Code: "COL", DBS: "CL", Name: "Colossians", Abbr: "Col", Testament: "NT", Chapters: 4},
	{Code: "1TH", DBS: "H1", Name: "1 Thessalonians", Abbr: "1Thess", Testament: "NT", Chapters: 5},
	{Code: "2TH", DBS: "H2", Name: "2 Thessalonians", Abbr: "2Thess", Testament: "NT", Chapters: 3},
	{Code: "1TI", DBS: "T1", Name: "1 Timothy", Abbr: "1Tim", Testament: "NT", Chapters: 6},
	{Code: "2TI", DBS: "T2", Name: "2 Timothy", Abbr: "2Tim", Testament: "NT", Chapters: 4},
	{Code: "TIT", DBS: "TT", Name: "Titus", Abbr: "Titus", Testament: "NT", Chapters: 3},
	{Code: "PHM", DBS: "PM", Name: "Philemon", Abbr: "Phlm", Testament: "NT", Chapters: 1},
	{Code: "HEB", DBS: "HB", Name: "Hebrews", Abbr: "Heb", Testament: "NT", Chapters: 13},
	{Code: "JAS", DBS: "JM", Name: "James", Abbr: "Jas", Testament: "NT", Chapters: 5},
	{Code: "1PE", DBS: "P1", Name: "1 Peter", Abbr: "1Pet", Testament: "NT", Chapters: 5},
	{Code: "2PE", DBS: "P2", Name: "2 Peter", Abbr: "2Pet", Testament: "NT", Chapters: 3},
	{Code: "1JN", DBS: "J1", Name: "1 John", Abbr: "1John", Testament: "NT", Chapters: 5},
	{Code: "2JN", DBS: "J2", Name: "2 John", Abbr: "2John", Testament: "NT", Chapters: 1},
	{Code: "3JN", DBS: "J3", Name: "3 John", Abbr: "3John", Testament: "NT", Chapters: 1},
	{Code: "JUD", DBS: "JD", Name: "Jude", Abbr: "Jude", Testament: "NT", Chapters: 1},
	{Code: "REV", DBS: "RE", Name: "Revelation", Abbr: "Rev", Testament: "NT", Chapters: 22},
}

var byCode = func() map[string]Book {
	m := make(map[string]Book, len(canon))
	for i := range canon {
		canon[i].Order = i + 1
		m[canon[i].Code] = canon[i]
	}
	return m
}()

// Resolve looks up a book by its USFM code. The lookup is case-insensitive.
// The second return is false for unknown codes; callers treat that as fatal
// for the unit being processed.
func Resolve(code string) (Book, bool) {
	b, ok := byCode[strings.ToUpper(strings.TrimSpace(code))]
	return b, ok
}

// All returns the canon in canonical order. The returned slice is shared;
// callers must not modify it.
func All() []Book {
	return canon
}
