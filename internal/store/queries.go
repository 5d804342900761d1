package store

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/ornolfur/spyrja/internal/model"
	"github.com/ornolfur/spyrja/internal/text"
)

// scanRows converts a (value, id, timestamp, heading, domain, url) result
// set into ResultRows.
func scanRows(rows *sql.Rows) ([]model.ResultRow, error) {
	defer rows.Close()
	var out []model.ResultRow
	for rows.Next() {
		var r model.ResultRow
		if err := rows.Scan(&r.Value, &r.ArticleID, &r.Timestamp, &r.Heading, &r.Domain, &r.URL); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// PersonTitles returns every stored title for a person by exact name,
// from visible roots, in ascending timestamp order.
func (s *Store) PersonTitles(name string) ([]model.ResultRow, error) {
	rows, err := s.db.Query(
		`SELECT p.title, a.id, a.timestamp, a.heading, r.domain, a.url
		 FROM persons p
		 JOIN articles a ON a.id = p.article_id
		 JOIN roots r ON r.id = a.root_id
		 WHERE p.name = ? AND r.visible = 1
		 ORDER BY a.timestamp`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("person titles: %w", err)
	}
	return scanRows(rows)
}

// EntityDefinitions returns every stored definition for an entity by
// exact name, from visible roots, in ascending timestamp order.
func (s *Store) EntityDefinitions(name string) ([]model.ResultRow, error) {
	rows, err := s.db.Query(
		`SELECT e.definition, a.id, a.timestamp, a.heading, r.domain, a.url
		 FROM entities e
		 JOIN articles a ON a.id = e.article_id
		 JOIN roots r ON r.id = a.root_id
		 WHERE e.name = ? AND r.visible = 1
		 ORDER BY a.timestamp`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("entity definitions: %w", err)
	}
	return scanRows(rows)
}

// PersonsByTitle is the reverse lookup: persons whose stored title equals
// the given title or begins with it followed by a space. Matching is on
// the lowercased title column.
func (s *Store) PersonsByTitle(title string) ([]model.ResultRow, error) {
	titleLc := strings.ToLower(title)
	rows, err := s.db.Query(
		`SELECT p.name, a.id, a.timestamp, a.heading, r.domain, a.url
		 FROM persons p
		 JOIN articles a ON a.id = p.article_id
		 JOIN roots r ON r.id = a.root_id
		 WHERE (p.title_lc = ? OR p.title_lc LIKE ? || ' %') AND r.visible = 1
		 ORDER BY a.timestamp`,
		titleLc, titleLc,
	)
	if err != nil {
		return nil, fmt.Errorf("persons by title: %w", err)
	}
	return scanRows(rows)
}

// EntitiesByDefinition returns entity names whose stored definition
// matches the given text exactly.
func (s *Store) EntitiesByDefinition(definition string) ([]model.ResultRow, error) {
	rows, err := s.db.Query(
		`SELECT e.name, a.id, a.timestamp, a.heading, r.domain, a.url
		 FROM entities e
		 JOIN articles a ON a.id = e.article_id
		 JOIN roots r ON r.id = a.root_id
		 WHERE e.definition = ? AND r.visible = 1
		 ORDER BY a.timestamp`,
		definition,
	)
	if err != nil {
		return nil, fmt.Errorf("entities by definition: %w", err)
	}
	return scanRows(rows)
}

// EntitiesByPrefix returns definitions of entities whose name begins with
// the given prefix (case-sensitive). Used by Company queries, where
// trailing abbreviation periods have been stripped off the query name
// ("Eimskip hf." matches via "Eimskip hf").
func (s *Store) EntitiesByPrefix(prefix string) ([]model.ResultRow, error) {
	rows, err := s.db.Query(
		`SELECT e.definition, a.id, a.timestamp, a.heading, r.domain, a.url
		 FROM entities e
		 JOIN articles a ON a.id = e.article_id
		 JOIN roots r ON r.id = a.root_id
		 WHERE substr(e.name, 1, length(?1)) = ?1 AND r.visible = 1
		 ORDER BY a.timestamp`,
		prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("entities by prefix: %w", err)
	}
	return scanRows(rows)
}

// ArticleList returns articles where the given person or entity name
// appears, newest first, with empty headings dropped and identical
// headings collapsed, capped at limit.
func (s *Store) ArticleList(name string, limit int) ([]model.ArticleRef, error) {
	rows, err := s.db.Query(
		`SELECT DISTINCT a.id, a.heading, a.timestamp, r.domain, a.url
		 FROM articles a
		 JOIN roots r ON r.id = a.root_id
		 WHERE r.visible = 1 AND (
		     a.id IN (SELECT article_id FROM persons WHERE name = ?)
		     OR a.id IN (SELECT article_id FROM entities WHERE name = ?)
		 )
		 ORDER BY a.timestamp DESC
		 LIMIT ?`,
		name, name, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("article list: %w", err)
	}
	defer rows.Close()

	// Collapse identical headings, keeping the newest occurrence
	byHeading := make(map[string]model.ArticleRef)
	for rows.Next() {
		var (
			ref model.ArticleRef
			ts  sql.NullTime
		)
		if err := rows.Scan(&ref.UUID, &ref.Heading, &ts, &ref.Domain, &ref.URL); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		ref.Heading = text.StripMarkup(ref.Heading)
		if ref.Heading == "" {
			continue
		}
		if ts.Valid {
			ref.TS = model.IsoMinute(ts.Time)
		}
		if _, ok := byHeading[ref.Heading]; !ok {
			byHeading[ref.Heading] = ref
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]model.ArticleRef, 0, len(byHeading))
	for _, ref := range byHeading {
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TS != out[j].TS {
			return out[i].TS > out[j].TS
		}
		return out[i].UUID < out[j].UUID
	})
	return out, nil
}

// ArticleCount counts the distinct articles in which a word stem occurs
func (s *Store) ArticleCount(stem string) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(DISTINCT article_id) FROM words WHERE stem = ?`, stem,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("article count: %w", err)
	}
	return n, nil
}

// RelatedWords returns the stems co-occurring with the given stem across
// articles, strongest association first. The original stem itself is
// included when present; callers filter it out as needed.
func (s *Store) RelatedWords(stem string, limit int) ([]model.RelatedWord, error) {
	rows, err := s.db.Query(
		`SELECT w2.stem, w2.cat, SUM(w2.cnt) AS total
		 FROM words w1
		 JOIN words w2 ON w2.article_id = w1.article_id
		 WHERE w1.stem = ?
		 GROUP BY w2.stem, w2.cat
		 ORDER BY total DESC, w2.stem
		 LIMIT ?`,
		stem, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("related words: %w", err)
	}
	defer rows.Close()

	var out []model.RelatedWord
	for rows.Next() {
		var (
			rw  model.RelatedWord
			cnt int
		)
		if err := rows.Scan(&rw.Stem, &rw.Cat, &cnt); err != nil {
			return nil, fmt.Errorf("scan related word: %w", err)
		}
		out = append(out, rw)
	}
	return out, rows.Err()
}
