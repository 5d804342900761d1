// Package store provides SQLite persistence for the parsed news corpus:
// articles, the persons and entities harvested from them, and word
// occurrence statistics. It is the data lookup layer behind the query
// handlers.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps the corpus database. All query methods are safe for
// concurrent use; the underlying *sql.DB pools connections.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed initializes) the corpus database at path.
// Pass ":memory:" for an ephemeral database.
func Open(path string) (*Store, error) {
	connStr := path
	if path == ":memory:" {
		// Shared cache so pooled connections see the same database
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS roots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		domain TEXT NOT NULL UNIQUE,
		visible INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS articles (
		id TEXT PRIMARY KEY,
		url TEXT UNIQUE,
		heading TEXT,
		author TEXT,
		timestamp DATETIME NOT NULL,
		parsed DATETIME,
		root_id INTEGER NOT NULL REFERENCES roots(id),
		num_sentences INTEGER DEFAULT 0,
		num_parsed INTEGER DEFAULT 0,
		tree TEXT
	);

	CREATE TABLE IF NOT EXISTS persons (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		title TEXT,
		title_lc TEXT,
		gender TEXT,
		article_id TEXT NOT NULL REFERENCES articles(id)
	);

	CREATE TABLE IF NOT EXISTS entities (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		verb TEXT,
		definition TEXT,
		article_id TEXT NOT NULL REFERENCES articles(id)
	);

	CREATE TABLE IF NOT EXISTS words (
		stem TEXT NOT NULL,
		cat TEXT NOT NULL,
		article_id TEXT NOT NULL REFERENCES articles(id),
		cnt INTEGER NOT NULL DEFAULT 1
	);

	CREATE INDEX IF NOT EXISTS idx_articles_timestamp ON articles(timestamp);
	CREATE INDEX IF NOT EXISTS idx_persons_name ON persons(name);
	CREATE INDEX IF NOT EXISTS idx_persons_title_lc ON persons(title_lc);
	CREATE INDEX IF NOT EXISTS idx_entities_name ON entities(name);
	CREATE INDEX IF NOT EXISTS idx_words_stem ON words(stem);
	CREATE INDEX IF NOT EXISTS idx_words_article ON words(article_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Root is one scraped news source
type Root struct {
	ID      int64
	Domain  string
	Visible bool
}

// Article is one stored article row
type Article struct {
	ID           string
	URL          string
	Heading      string
	Author       string
	Timestamp    time.Time
	Parsed       time.Time
	RootID       int64
	NumSentences int
	NumParsed    int
	Tree         string
}

// AddRoot inserts a news source root and returns its id
func (s *Store) AddRoot(domain string, visible bool) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO roots (domain, visible) VALUES (?, ?)`,
		domain, boolInt(visible),
	)
	if err != nil {
		return 0, fmt.Errorf("insert root: %w", err)
	}
	return res.LastInsertId()
}

// AddArticle inserts an article row
func (s *Store) AddArticle(a Article) error {
	var parsed interface{}
	if !a.Parsed.IsZero() {
		parsed = a.Parsed
	}
	_, err := s.db.Exec(
		`INSERT INTO articles
		 (id, url, heading, author, timestamp, parsed, root_id, num_sentences, num_parsed, tree)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.URL, a.Heading, a.Author, a.Timestamp, parsed,
		a.RootID, a.NumSentences, a.NumParsed, a.Tree,
	)
	if err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// AddPerson records a person mention with a title in an article
func (s *Store) AddPerson(name, title, gender, articleID string) error {
	_, err := s.db.Exec(
		`INSERT INTO persons (name, title, title_lc, gender, article_id)
		 VALUES (?, ?, lower(?), ?, ?)`,
		name, title, title, gender, articleID,
	)
	if err != nil {
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

// AddEntity records an entity definition found in an article
func (s *Store) AddEntity(name, verb, definition, articleID string) error {
	_, err := s.db.Exec(
		`INSERT INTO entities (name, verb, definition, article_id)
		 VALUES (?, ?, ?, ?)`,
		name, verb, definition, articleID,
	)
	if err != nil {
		return fmt.Errorf("insert entity: %w", err)
	}
	return nil
}

// AddWord records occurrences of a word stem in an article
func (s *Store) AddWord(stem, cat, articleID string, cnt int) error {
	_, err := s.db.Exec(
		`INSERT INTO words (stem, cat, article_id, cnt) VALUES (?, ?, ?, ?)`,
		stem, cat, articleID, cnt,
	)
	if err != nil {
		return fmt.Errorf("insert word: %w", err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
