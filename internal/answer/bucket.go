// Package answer aggregates candidate answer mentions into buckets and
// ranks the buckets into a final answer list. A bucket collects, per
// normalized answer text, at most one mention per source article; the
// ranker orders buckets by recency-weighted mention count, text length
// and cross-containment between candidate texts.
package answer

import (
	"github.com/ornolfur/spyrja/internal/model"
	"github.com/ornolfur/spyrja/internal/names"
	"github.com/ornolfur/spyrja/internal/text"
)

// bucket holds the mentions collected for one answer text, keyed by
// article id. Re-insertion by the same article overwrites.
type bucket struct {
	mentions map[string]model.Mention
	order    []string // article ids, insertion order
}

func newBucket() *bucket {
	return &bucket{mentions: make(map[string]model.Mention)}
}

func (b *bucket) put(m model.Mention) {
	if _, ok := b.mentions[m.UUID]; !ok {
		b.order = append(b.order, m.UUID)
	}
	b.mentions[m.UUID] = m
}

func (b *bucket) len() int { return len(b.order) }

// BucketTable maps normalized answer texts to their mention buckets.
// Key order is insertion order, which keeps ranking deterministic for a
// fixed input. The table is request-scoped; it is never shared across
// queries.
type BucketTable struct {
	buckets map[string]*bucket
	keys    []string
}

// NewTable creates an empty bucket table
func NewTable() *BucketTable {
	return &BucketTable{buckets: make(map[string]*bucket)}
}

// Len returns the number of distinct answer texts
func (t *BucketTable) Len() int { return len(t.keys) }

// Has reports whether key is a live bucket key
func (t *BucketTable) Has(key string) bool {
	_, ok := t.buckets[key]
	return ok
}

// Keys returns the bucket keys in insertion order
func (t *BucketTable) Keys() []string { return t.keys }

// Rename moves a bucket to a new key, as directed by the name
// canonicalizer when a more specific spelling of the same person arrives.
func (t *BucketTable) Rename(old, new string) {
	b, ok := t.buckets[old]
	if !ok || old == new {
		return
	}
	delete(t.buckets, old)
	for i, k := range t.keys {
		if k == old {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
	if _, ok := t.buckets[new]; !ok {
		t.keys = append(t.keys, new)
	}
	t.buckets[new] = b
}

func (t *BucketTable) insert(key string, m model.Mention) {
	b, ok := t.buckets[key]
	if !ok {
		b = newBucket()
		t.buckets[key] = b
		t.keys = append(t.keys, key)
	}
	b.put(m)
}

// Append adds query result rows to the table, bucketed directly by the
// whitespace-corrected text the extractor yields for each row.
func (t *BucketTable) Append(rows []model.ResultRow, prop func(model.ResultRow) string) {
	for _, r := range rows {
		s := text.CorrectSpaces(prop(r))
		if s == "" {
			continue
		}
		t.insert(s, r.Mention())
	}
}

// AppendNames adds query result rows to the table, assuming the bucket
// key is a person name. Keys are routed through the name canonicalizer so
// that spelling variants of the same person merge into one bucket.
func (t *BucketTable) AppendNames(rows []model.ResultRow, prop func(model.ResultRow) string) {
	for _, r := range rows {
		s := text.CorrectSpaces(prop(r))
		if s == "" {
			continue
		}
		s = names.ResolveKey(t, s)
		t.insert(s, r.Mention())
	}
}
