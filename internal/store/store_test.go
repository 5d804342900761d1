package store

import (
	"testing"
	"time"
)

var t0 = time.Date(2020, 2, 1, 10, 0, 0, 0, time.UTC)

// seed populates an in-memory corpus with two visible roots and one
// hidden one.
func seed(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	ruv, err := s.AddRoot("ruv.is", true)
	if err != nil {
		t.Fatalf("add root: %v", err)
	}
	visir, _ := s.AddRoot("visir.is", true)
	hidden, _ := s.AddRoot("hidden.is", false)

	arts := []Article{
		{ID: "a1", URL: "https://ruv.is/a1", Heading: "Már skipaður", Author: "Anna",
			Timestamp: t0, Parsed: t0, RootID: ruv, NumSentences: 10, NumParsed: 9,
			Tree: "(S (NP Már) (VP hættir))"},
		{ID: "a2", URL: "https://visir.is/a2", Heading: "Már hættir", Author: "Anna",
			Timestamp: t0.AddDate(0, 0, 2), Parsed: t0.AddDate(0, 0, 2), RootID: visir,
			NumSentences: 20, NumParsed: 15},
		{ID: "a3", URL: "https://visir.is/a3", Heading: "Már hættir", Author: "Bjarni",
			Timestamp: t0.AddDate(0, 0, 3), Parsed: t0.AddDate(0, 0, 3), RootID: visir,
			NumSentences: 8, NumParsed: 8},
		{ID: "a4", URL: "https://hidden.is/a4", Heading: "Falin frétt",
			Timestamp: t0.AddDate(0, 0, 4), RootID: hidden, NumSentences: 5, NumParsed: 1},
		{ID: "a5", URL: "https://ruv.is/a5", Heading: "",
			Timestamp: t0.AddDate(0, 0, 5), RootID: ruv, NumSentences: 3, NumParsed: 3},
	}
	for _, a := range arts {
		if err := s.AddArticle(a); err != nil {
			t.Fatalf("add article %s: %v", a.ID, err)
		}
	}

	people := []struct{ name, title, gender, article string }{
		{"Már Guðmundsson", "seðlabankastjóri", "kk", "a1"},
		{"Már Guðmundsson", "fyrrverandi seðlabankastjóri", "kk", "a2"},
		{"Már Guðmundsson", "seðlabankastjóri", "kk", "a4"}, // hidden root
		{"Katrín Jakobsdóttir", "forsætisráðherra Íslands", "kvk", "a3"},
		{"Már Guðmundsson", "hagfræðingur", "kk", "a5"},
	}
	for _, p := range people {
		if err := s.AddPerson(p.name, p.title, p.gender, p.article); err != nil {
			t.Fatalf("add person: %v", err)
		}
	}

	ents := []struct{ name, verb, def, article string }{
		{"Seðlabankinn", "er", "banki ríkisins", "a1"},
		{"Eimskip hf", "er", "skipafélag", "a2"},
		{"eimskip hf", "er", "lágstafafélag", "a3"},
	}
	for _, e := range ents {
		if err := s.AddEntity(e.name, e.verb, e.def, e.article); err != nil {
			t.Fatalf("add entity: %v", err)
		}
	}

	words := []struct {
		stem, cat, article string
		cnt                int
	}{
		{"banki", "no", "a1", 3},
		{"vextir", "no", "a1", 2},
		{"banki", "no", "a2", 1},
		{"hækka", "so", "a2", 1},
	}
	for _, w := range words {
		if err := s.AddWord(w.stem, w.cat, w.article, w.cnt); err != nil {
			t.Fatalf("add word: %v", err)
		}
	}
	return s
}

func TestPersonTitles(t *testing.T) {
	s := seed(t)
	rows, err := s.PersonTitles("Már Guðmundsson")
	if err != nil {
		t.Fatalf("PersonTitles: %v", err)
	}
	// a4 is behind a hidden root and must not appear
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	// Ascending timestamp order
	for i := 1; i < len(rows); i++ {
		if rows[i].Timestamp.Before(rows[i-1].Timestamp) {
			t.Errorf("rows not in ascending timestamp order")
		}
	}
	if rows[0].Value != "seðlabankastjóri" || rows[0].Domain != "ruv.is" {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
}

func TestPersonsByTitle_PrefixSemantics(t *testing.T) {
	s := seed(t)

	// Exact lowercase match
	rows, err := s.PersonsByTitle("Seðlabankastjóri")
	if err != nil {
		t.Fatalf("PersonsByTitle: %v", err)
	}
	if len(rows) != 1 || rows[0].Value != "Már Guðmundsson" {
		t.Fatalf("unexpected rows: %+v", rows)
	}

	// Title followed by a space matches the prefix form
	rows, err = s.PersonsByTitle("forsætisráðherra")
	if err != nil {
		t.Fatalf("PersonsByTitle: %v", err)
	}
	if len(rows) != 1 || rows[0].Value != "Katrín Jakobsdóttir" {
		t.Errorf("prefix form should match 'forsætisráðherra Íslands': %+v", rows)
	}

	// A mid-word prefix must not match
	rows, err = s.PersonsByTitle("forsætis")
	if err != nil {
		t.Fatalf("PersonsByTitle: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("mid-word prefix must not match, got %+v", rows)
	}
}

func TestEntitiesByPrefix_CaseSensitive(t *testing.T) {
	s := seed(t)
	rows, err := s.EntitiesByPrefix("Eimskip hf")
	if err != nil {
		t.Fatalf("EntitiesByPrefix: %v", err)
	}
	if len(rows) != 1 || rows[0].Value != "skipafélag" {
		t.Errorf("prefix match should be case-sensitive, got %+v", rows)
	}
}

func TestArticleList_DedupesHeadings(t *testing.T) {
	s := seed(t)
	refs, err := s.ArticleList("Már Guðmundsson", 20)
	if err != nil {
		t.Fatalf("ArticleList: %v", err)
	}
	// a1 ("Már skipaður"), a2+a3... a3 mentions Katrín only; a2 "Már
	// hættir"; a5 has an empty heading and is dropped; a4 is hidden.
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d: %+v", len(refs), refs)
	}
	if refs[0].Heading != "Már hættir" || refs[1].Heading != "Már skipaður" {
		t.Errorf("unexpected order: %+v", refs)
	}
	for i := 1; i < len(refs); i++ {
		if refs[i].TS > refs[i-1].TS {
			t.Errorf("refs not newest first")
		}
	}
}

func TestArticleCountAndRelatedWords(t *testing.T) {
	s := seed(t)

	n, err := s.ArticleCount("banki")
	if err != nil {
		t.Fatalf("ArticleCount: %v", err)
	}
	if n != 2 {
		t.Errorf("expected banki in 2 articles, got %d", n)
	}

	n, err = s.ArticleCount("óþekkt")
	if err != nil {
		t.Fatalf("ArticleCount: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 for unknown stem, got %d", n)
	}

	rel, err := s.RelatedWords("banki", 10)
	if err != nil {
		t.Fatalf("RelatedWords: %v", err)
	}
	// Co-occurring stems: banki itself (4), vextir (2), hækka (1)
	if len(rel) != 3 {
		t.Fatalf("expected 3 related stems, got %+v", rel)
	}
	if rel[0].Stem != "banki" || rel[1].Stem != "vextir" || rel[2].Stem != "hækka" {
		t.Errorf("unexpected association order: %+v", rel)
	}
}

func TestRootTotals(t *testing.T) {
	s := seed(t)
	totals, err := s.RootTotals()
	if err != nil {
		t.Fatalf("RootTotals: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("hidden roots must be excluded, got %+v", totals)
	}
	byDomain := make(map[string]RootStat)
	for _, rs := range totals {
		byDomain[rs.Domain] = rs
	}
	if rs := byDomain["visir.is"]; rs.Articles != 2 || rs.Sentences != 28 || rs.Parsed != 23 {
		t.Errorf("unexpected visir.is totals: %+v", rs)
	}
}

func TestBestAuthors(t *testing.T) {
	s := seed(t)
	authors, err := s.BestAuthors(t0.AddDate(0, 0, -1), t0.AddDate(0, 0, 30), 1)
	if err != nil {
		t.Fatalf("BestAuthors: %v", err)
	}
	if len(authors) != 2 {
		t.Fatalf("expected 2 authors, got %+v", authors)
	}
	// Bjarni parsed 8/8, Anna 24/30
	if authors[0].Name != "Bjarni" {
		t.Errorf("expected Bjarni first by parse ratio, got %+v", authors)
	}
	if authors[1].Articles != 2 {
		t.Errorf("Anna should have 2 articles, got %+v", authors[1])
	}
}

func TestArticleTrees(t *testing.T) {
	s := seed(t)
	var ids []string
	err := s.ArticleTrees(time.Time{}, func(rec TreeRecord) error {
		ids = append(ids, rec.ArticleID)
		return nil
	})
	if err != nil {
		t.Fatalf("ArticleTrees: %v", err)
	}
	// Only a1 has a stored tree on a visible root
	if len(ids) != 1 || ids[0] != "a1" {
		t.Errorf("unexpected tree records: %v", ids)
	}
}
