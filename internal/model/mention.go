package model

import "time"

// Mention is one observed occurrence of an answer candidate in one article.
// Immutable once created.
type Mention struct {
	Domain    string    `json:"domain"`
	UUID      string    `json:"uuid"`
	Heading   string    `json:"heading"`
	Timestamp time.Time `json:"timestamp"`
	TS        string    `json:"ts"` // ISO timestamp, truncated to minutes
	URL       string    `json:"url"`
}

// ResultRow is one raw row from the data lookup layer: a candidate text
// (title, definition or name) plus the metadata of the article it came from.
type ResultRow struct {
	Value     string
	ArticleID string
	Timestamp time.Time
	Heading   string
	Domain    string
	URL       string
}

// Mention converts the article metadata of a row into a Mention record.
func (r ResultRow) Mention() Mention {
	return Mention{
		Domain:    r.Domain,
		UUID:      r.ArticleID,
		Heading:   r.Heading,
		Timestamp: r.Timestamp,
		TS:        IsoMinute(r.Timestamp),
		URL:       r.URL,
	}
}

// RankedAnswer is one entry of the final ranked answer list.
// The score that produced the ordering is ephemeral and not included.
type RankedAnswer struct {
	Answer  string    `json:"answer"`
	Sources []Mention `json:"sources"`
}

// ArticleRef is one entry in the chronological list of articles
// where a queried name appears.
type ArticleRef struct {
	UUID    string `json:"uuid"`
	Heading string `json:"heading"`
	TS      string `json:"ts"`
	Domain  string `json:"domain"`
	URL     string `json:"url"`
}

// RelatedWord is one related-word answer for a Word query.
type RelatedWord struct {
	Stem string `json:"stem"`
	Cat  string `json:"cat"`
}

// IsoMinute formats a timestamp the way answers carry it:
// ISO 8601 truncated to the minute ("2006-01-02T15:04").
func IsoMinute(t time.Time) string {
	return t.Format("2006-01-02T15:04")
}
