// Package store persists a finished generation run to a SQLite database:
// the linked chapters, the verse index postings, the lemma index, and run
// metadata. The database is the query surface for the lookup command.
package store

import (
	"database/sql"
	"time"

	"github.com/digitalbiblesociety/scriptorium/core/assembly"
	"github.com/digitalbiblesociety/scriptorium/core/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS chapters (
	position INTEGER PRIMARY KEY,
	id       TEXT NOT NULL UNIQUE,
	title    TEXT NOT NULL,
	html     TEXT NOT NULL,
	previd   TEXT NOT NULL DEFAULT '',
	nextid   TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS postings (
	token    TEXT NOT NULL,
	verse_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	PRIMARY KEY (token, verse_id)
);
CREATE TABLE IF NOT EXISTS lemmas (
	lemma    TEXT NOT NULL,
	verse_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	PRIMARY KEY (lemma, verse_id)
);
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Store wraps the run database.
type Store struct {
	db *sql.DB
}

// DriverType reports which SQLite driver this binary was built with.
func DriverType() string {
	return driverType
}

// Open opens (creating if needed) the run database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "initializing schema")
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun replaces the stored run with res. Writes are transactional: a
// failed save leaves the previous contents intact.
func (s *Store) SaveRun(res *assembly.Result, lang, runID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning save")
	}
	defer tx.Rollback()

	for _, table := range []string{"chapters", "postings", "lemmas", "meta"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return errors.Wrapf(err, "clearing %s", table)
		}
	}

	for i, ch := range res.Chapters {
		_, err := tx.Exec(
			"INSERT INTO chapters (position, id, title, html, previd, nextid) VALUES (?, ?, ?, ?, ?, ?)",
			i, ch.ID, ch.Title, ch.HTML, ch.PrevID, ch.NextID,
		)
		if err != nil {
			return errors.Wrapf(err, "inserting chapter %s", ch.ID)
		}
	}

	if res.Index != nil {
		if err := insertPostings(tx, "postings", "token", res.Index.Postings); err != nil {
			return err
		}
	}
	if err := insertPostings(tx, "lemmas", "lemma", res.LemmaIndex); err != nil {
		return err
	}

	meta := map[string]string{
		"lang":       lang,
		"run_id":     runID,
		"about_html": res.AboutHTML,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}
	for key, value := range meta {
		if _, err := tx.Exec("INSERT INTO meta (key, value) VALUES (?, ?)", key, value); err != nil {
			return errors.Wrapf(err, "inserting meta %s", key)
		}
	}

	return errors.Wrap(tx.Commit(), "committing save")
}

func insertPostings(tx *sql.Tx, table, keyCol string, postings map[string][]string) error {
	stmt, err := tx.Prepare("INSERT INTO " + table + " (" + keyCol + ", verse_id, position) VALUES (?, ?, ?)")
	if err != nil {
		return errors.Wrapf(err, "preparing %s insert", table)
	}
	defer stmt.Close()

	for key, verseIDs := range postings {
		for i, verseID := range verseIDs {
			if _, err := stmt.Exec(key, verseID, i); err != nil {
				return errors.Wrapf(err, "inserting %s %q", table, key)
			}
		}
	}
	return nil
}

// Chapter returns one chapter by its chapter code.
func (s *Store) Chapter(id string) (*assembly.Chapter, error) {
	row := s.db.QueryRow("SELECT id, title, html, previd, nextid FROM chapters WHERE id = ?", id)
	var ch assembly.Chapter
	if err := row.Scan(&ch.ID, &ch.Title, &ch.HTML, &ch.PrevID, &ch.NextID); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFound("chapter", id)
		}
		return nil, errors.Wrapf(err, "reading chapter %s", id)
	}
	return &ch, nil
}

// Chapters returns every stored chapter in run order.
func (s *Store) Chapters() ([]*assembly.Chapter, error) {
	rows, err := s.db.Query("SELECT id, title, html, previd, nextid FROM chapters ORDER BY position")
	if err != nil {
		return nil, errors.Wrap(err, "reading chapters")
	}
	defer rows.Close()

	var chapters []*assembly.Chapter
	for rows.Next() {
		var ch assembly.Chapter
		if err := rows.Scan(&ch.ID, &ch.Title, &ch.HTML, &ch.PrevID, &ch.NextID); err != nil {
			return nil, errors.Wrap(err, "scanning chapter")
		}
		chapters = append(chapters, &ch)
	}
	return chapters, rows.Err()
}

// Verses returns the verse IDs indexed under token, in indexing order.
func (s *Store) Verses(token string) ([]string, error) {
	rows, err := s.db.Query("SELECT verse_id FROM postings WHERE token = ? ORDER BY position", token)
	if err != nil {
		return nil, errors.Wrapf(err, "looking up %q", token)
	}
	defer rows.Close()

	var verseIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "scanning posting")
		}
		verseIDs = append(verseIDs, id)
	}
	return verseIDs, rows.Err()
}

// Meta returns one metadata value, empty if unset.
func (s *Store) Meta(key string) (string, error) {
	row := s.db.QueryRow("SELECT value FROM meta WHERE key = ?", key)
	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", errors.Wrapf(err, "reading meta %s", key)
	}
	return value, nil
}
