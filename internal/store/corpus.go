package store

import (
	"fmt"
	"time"
)

// TreeRecord is one article's stored parse forest, as consumed by the
// corpus exporter.
type TreeRecord struct {
	ArticleID string
	URL       string
	Domain    string
	Tree      string
}

// ArticleTrees streams the parse trees of visible, successfully parsed
// articles with a parse date after the cutoff, in descending parse-date
// order. The callback is invoked once per article; returning an error
// stops the scan.
func (s *Store) ArticleTrees(parsedAfter time.Time, fn func(TreeRecord) error) error {
	rows, err := s.db.Query(
		`SELECT a.id, a.url, r.domain, a.tree
		 FROM articles a
		 JOIN roots r ON r.id = a.root_id
		 WHERE r.visible = 1 AND a.tree != '' AND a.parsed > ?
		 ORDER BY a.parsed DESC`,
		parsedAfter,
	)
	if err != nil {
		return fmt.Errorf("article trees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec TreeRecord
		if err := rows.Scan(&rec.ArticleID, &rec.URL, &rec.Domain, &rec.Tree); err != nil {
			return fmt.Errorf("scan tree: %w", err)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return rows.Err()
}
