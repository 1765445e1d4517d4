package handler

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteLookup is a Lookup backed by a `nouns(singular, plural)` table,
// used by mppserver in place of the built-in wordlist whenever its
// <db-config-path> argument is non-empty (the path is opened as the SQLite
// database file).
// database/sql connection pooling makes it safe to share across reactors
// without an external mutex, unlike WordlistLookup's hand-rolled one.
type SQLiteLookup struct {
	db *sql.DB
}

// OpenSQLiteLookup opens (and, if necessary, creates) the nouns table at
// path. The schema is created with IF NOT EXISTS so pointing at an existing
// database populated out of band is also fine.
func OpenSQLiteLookup(path string) (*SQLiteLookup, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db %q: %w", path, err)
	}
	const schema = `CREATE TABLE IF NOT EXISTS nouns (
		singular TEXT PRIMARY KEY,
		plural   TEXT NOT NULL UNIQUE
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create nouns table: %w", err)
	}
	return &SQLiteLookup{db: db}, nil
}

func (s *SQLiteLookup) Close() error {
	return s.db.Close()
}

func (s *SQLiteLookup) IsSingular(noun []byte) bool {
	var count int
	row := s.db.QueryRow(`SELECT COUNT(1) FROM nouns WHERE plural = ?`, string(noun))
	if err := row.Scan(&count); err != nil {
		return true
	}
	return count == 0
}

func (s *SQLiteLookup) OppositeForm(noun []byte) ([]byte, bool) {
	word := string(noun)

	var plural string
	row := s.db.QueryRow(`SELECT plural FROM nouns WHERE singular = ?`, word)
	if err := row.Scan(&plural); err == nil {
		return []byte(plural), true
	}

	var singular string
	row = s.db.QueryRow(`SELECT singular FROM nouns WHERE plural = ?`, word)
	if err := row.Scan(&singular); err == nil {
		return []byte(singular), true
	}

	return nil, false
}
