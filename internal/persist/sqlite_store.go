// Package persist provides SQLite-backed corpus persistence: the
// vocabulary, per-document lengths and raw text, and per-term posting
// frequencies, so daatquery can ingest a corpus once and answer many
// batches of queries against it without re-tokenizing the source file
// each run. Uses ncruces/go-sqlite3/driver, which provides a
// database/sql interface, the same pairing internal/store uses in the
// wider workspace's note store.
package persist

import (
	"database/sql"
	"fmt"

	"github.com/hack-pad/hackpadfs"
	_ "github.com/ncruces/go-sqlite3/driver"
)

const schema = `
CREATE TABLE IF NOT EXISTS terms (
	term_id INTEGER PRIMARY KEY,
	term TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS documents (
	doc_id INTEGER PRIMARY KEY,
	length INTEGER NOT NULL,
	text TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS postings (
	term_id INTEGER NOT NULL,
	doc_id INTEGER NOT NULL,
	freq INTEGER NOT NULL,
	PRIMARY KEY (term_id, doc_id)
);

CREATE INDEX IF NOT EXISTS idx_postings_term ON postings(term_id);
`

// CorpusStore is the SQLite-backed corpus store.
type CorpusStore struct {
	fs   hackpadfs.FS
	path string
	db   *sql.DB
}

// Open creates or reopens a corpus store at path, within fs. fs is kept
// alongside the database handle purely so callers can check for the
// database file's prior existence (hackpadfs.Stat) before deciding
// whether to re-ingest, mirroring how pkg/vector's Store keeps its FS
// and Path around for the same reason; the sqlite driver itself talks
// to the path directly, not through fs.
func Open(fs hackpadfs.FS, path string) (*CorpusStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("persist: opening %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("persist: creating schema: %w", err)
	}
	return &CorpusStore{fs: fs, path: path, db: db}, nil
}

// Exists reports whether a corpus database already exists at path.
func Exists(fs hackpadfs.FS, path string) bool {
	_, err := hackpadfs.Stat(fs, path)
	return err == nil
}

// Close closes the underlying database connection.
func (s *CorpusStore) Close() error {
	return s.db.Close()
}

// SaveTerm records a vocabulary entry.
func (s *CorpusStore) SaveTerm(termID uint32, term string) error {
	_, err := s.db.Exec(`INSERT OR IGNORE INTO terms(term_id, term) VALUES (?, ?)`, termID, term)
	return err
}

// SaveDocument records one document's length and raw text.
func (s *CorpusStore) SaveDocument(docID uint32, length uint32, text string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO documents(doc_id, length, text) VALUES (?, ?, ?)`, docID, length, text)
	return err
}

// SavePosting records one (term, doc) occurrence's frequency.
func (s *CorpusStore) SavePosting(termID, docID, freq uint32) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO postings(term_id, doc_id, freq) VALUES (?, ?, ?)`, termID, docID, freq)
	return err
}

// LoadVocabulary returns every persisted term keyed by its id.
func (s *CorpusStore) LoadVocabulary() (map[uint32]string, error) {
	rows, err := s.db.Query(`SELECT term_id, term FROM terms`)
	if err != nil {
		return nil, fmt.Errorf("persist: loading vocabulary: %w", err)
	}
	defer rows.Close()

	out := make(map[uint32]string)
	for rows.Next() {
		var id uint32
		var term string
		if err := rows.Scan(&id, &term); err != nil {
			return nil, fmt.Errorf("persist: scanning vocabulary row: %w", err)
		}
		out[id] = term
	}
	return out, rows.Err()
}

// DocumentRecord is one persisted document.
type DocumentRecord struct {
	DocID  uint32
	Length uint32
	Text   string
}

// LoadDocuments returns every persisted document, unordered.
func (s *CorpusStore) LoadDocuments() ([]DocumentRecord, error) {
	rows, err := s.db.Query(`SELECT doc_id, length, text FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("persist: loading documents: %w", err)
	}
	defer rows.Close()

	var out []DocumentRecord
	for rows.Next() {
		var rec DocumentRecord
		if err := rows.Scan(&rec.DocID, &rec.Length, &rec.Text); err != nil {
			return nil, fmt.Errorf("persist: scanning document row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// PostingRecord is one persisted (term, doc, freq) triple.
type PostingRecord struct {
	TermID uint32
	DocID  uint32
	Freq   uint32
}

// LoadPostings returns every persisted posting, unordered;
// memindex.Builder.Build sorts each term's postings itself.
func (s *CorpusStore) LoadPostings() ([]PostingRecord, error) {
	rows, err := s.db.Query(`SELECT term_id, doc_id, freq FROM postings`)
	if err != nil {
		return nil, fmt.Errorf("persist: loading postings: %w", err)
	}
	defer rows.Close()

	var out []PostingRecord
	for rows.Next() {
		var rec PostingRecord
		if err := rows.Scan(&rec.TermID, &rec.DocID, &rec.Freq); err != nil {
			return nil, fmt.Errorf("persist: scanning posting row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
