package store

import (
	"fmt"
	"time"
)

// RootStat aggregates scraping and parsing totals for one news source
type RootStat struct {
	Domain    string
	Articles  int
	Sentences int
	Parsed    int
}

// RootTotals returns article/sentence/parse totals per visible root
func (s *Store) RootTotals() ([]RootStat, error) {
	rows, err := s.db.Query(
		`SELECT r.domain,
		        COUNT(a.id),
		        COALESCE(SUM(a.num_sentences), 0),
		        COALESCE(SUM(a.num_parsed), 0)
		 FROM roots r
		 LEFT JOIN articles a ON a.root_id = r.id
		 WHERE r.visible = 1
		 GROUP BY r.domain
		 ORDER BY r.domain`,
	)
	if err != nil {
		return nil, fmt.Errorf("root totals: %w", err)
	}
	defer rows.Close()

	var out []RootStat
	for rows.Next() {
		var rs RootStat
		if err := rows.Scan(&rs.Domain, &rs.Articles, &rs.Sentences, &rs.Parsed); err != nil {
			return nil, fmt.Errorf("scan root stat: %w", err)
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

// PeriodStat is one root's scraping and parsing counts within a period
type PeriodStat struct {
	Domain    string
	Articles  int
	Sentences int
	Parsed    int
}

// Period returns per-root article counts and sentence/parse sums for
// articles with start <= timestamp < end.
func (s *Store) Period(start, end time.Time) ([]PeriodStat, error) {
	rows, err := s.db.Query(
		`SELECT r.domain, COUNT(a.id),
		        COALESCE(SUM(a.num_sentences), 0),
		        COALESCE(SUM(a.num_parsed), 0)
		 FROM roots r
		 JOIN articles a ON a.root_id = r.id
		 WHERE r.visible = 1 AND a.timestamp >= ? AND a.timestamp < ?
		 GROUP BY r.domain
		 ORDER BY r.domain`,
		start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("period stats: %w", err)
	}
	defer rows.Close()

	var out []PeriodStat
	for rows.Next() {
		var ps PeriodStat
		if err := rows.Scan(&ps.Domain, &ps.Articles, &ps.Sentences, &ps.Parsed); err != nil {
			return nil, fmt.Errorf("scan period stat: %w", err)
		}
		out = append(out, ps)
	}
	return out, rows.Err()
}

// GenderStat counts person mentions by grammatical gender
type GenderStat struct {
	Domain string
	Kvk    int // feminine
	Kk     int // masculine
	Hk     int // neuter
}

// GenderTotals tallies person mentions by gender per visible root
func (s *Store) GenderTotals() ([]GenderStat, error) {
	rows, err := s.db.Query(
		`SELECT r.domain,
		        COALESCE(SUM(CASE WHEN p.gender = 'kvk' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN p.gender = 'kk' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN p.gender = 'hk' THEN 1 ELSE 0 END), 0)
		 FROM roots r
		 JOIN articles a ON a.root_id = r.id
		 JOIN persons p ON p.article_id = a.id
		 WHERE r.visible = 1
		 GROUP BY r.domain
		 ORDER BY r.domain`,
	)
	if err != nil {
		return nil, fmt.Errorf("gender totals: %w", err)
	}
	defer rows.Close()

	var out []GenderStat
	for rows.Next() {
		var gs GenderStat
		if err := rows.Scan(&gs.Domain, &gs.Kvk, &gs.Kk, &gs.Hk); err != nil {
			return nil, fmt.Errorf("scan gender stat: %w", err)
		}
		out = append(out, gs)
	}
	return out, rows.Err()
}

// AuthorStat is one author's output and parse quality within a period
type AuthorStat struct {
	Name     string
	Articles int
	// Percentage of sentences successfully parsed across the author's
	// articles
	ParseRatio float64
}

// BestAuthors returns authors with at least minArticles articles in the
// period, ordered by descending parse ratio.
func (s *Store) BestAuthors(start, end time.Time, minArticles int) ([]AuthorStat, error) {
	rows, err := s.db.Query(
		`SELECT a.author, COUNT(a.id),
		        100.0 * SUM(a.num_parsed) / MAX(SUM(a.num_sentences), 1)
		 FROM articles a
		 JOIN roots r ON r.id = a.root_id
		 WHERE r.visible = 1 AND a.author != ''
		   AND a.timestamp >= ? AND a.timestamp < ?
		 GROUP BY a.author
		 HAVING COUNT(a.id) >= ?
		 ORDER BY 3 DESC, a.author`,
		start, end, minArticles,
	)
	if err != nil {
		return nil, fmt.Errorf("best authors: %w", err)
	}
	defer rows.Close()

	var out []AuthorStat
	for rows.Next() {
		var as AuthorStat
		if err := rows.Scan(&as.Name, &as.Articles, &as.ParseRatio); err != nil {
			return nil, fmt.Errorf("scan author stat: %w", err)
		}
		out = append(out, as)
	}
	return out, rows.Err()
}
