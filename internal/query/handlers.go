package query

import (
	"context"
	"strings"
	"time"

	"github.com/ornolfur/spyrja/internal/answer"
	"github.com/ornolfur/spyrja/internal/model"
	"github.com/ornolfur/spyrja/internal/similar"
	"github.com/ornolfur/spyrja/internal/text"
)

// Response is the structured answer for Person and Entity queries: the
// ranked answers plus the chronological list of articles where the
// queried name appears.
type Response struct {
	Answers []model.RankedAnswer `json:"answers"`
	Sources []model.ArticleRef   `json:"sources"`
}

// WordResponse is the structured answer for Word queries
type WordResponse struct {
	Count   int                 `json:"count"`
	Answers []model.RelatedWord `json:"answers"`
}

// TokenWeight is one query token annotated with the averaged similarity
// weight of the stems it contributed to the search.
type TokenWeight struct {
	X string  `json:"x"`
	W float64 `json:"w"`
}

// SearchResponse is the structured answer for Search queries
type SearchResponse struct {
	Answers []model.ArticleRef `json:"answers"`
	Weights []TokenWeight      `json:"weights"`
}

// personTitles ranks the titles and entity definitions stored for a
// person name. Name-aware bucketing merges spelling variants.
func personTitles(ds DataSource, name string, now time.Time) ([]model.RankedAnswer, error) {
	rd := answer.NewTable()
	rows, err := ds.PersonTitles(name)
	if err != nil {
		return nil, err
	}
	rd.Append(rows, func(r model.ResultRow) string { return r.Value })
	// The name may also be stored as an entity ("Jón Jónsson er
	// stofnandi...")
	rows, err = ds.EntityDefinitions(name)
	if err != nil {
		return nil, err
	}
	rd.Append(rows, func(r model.ResultRow) string { return r.Value })
	return answer.Rank(rd, now), nil
}

// entityDefinitions ranks the definitions stored for an entity name
func entityDefinitions(ds DataSource, name string, now time.Time) ([]model.RankedAnswer, error) {
	rd := answer.NewTable()
	rows, err := ds.EntityDefinitions(name)
	if err != nil {
		return nil, err
	}
	rd.Append(rows, func(r model.ResultRow) string { return r.Value })
	return answer.Rank(rd, now), nil
}

// handlePerson answers "hver er X?"
func (d *Dispatcher) handlePerson(name string) (interface{}, string, error) {
	titles, err := personTitles(d.ds, name, d.now())
	if err != nil {
		return nil, "", err
	}
	articles, err := d.ds.ArticleList(name, maxAnswerLen)
	if err != nil {
		return nil, "", err
	}
	voice := "Ég veit ekki hver " + name + " er."
	if len(titles) > 0 && titles[0].Answer != "" {
		// 'Már Guðmundsson er seðlabankastjóri.'
		voice = name + " er " + titles[0].Answer + "."
	}
	return Response{Answers: titles, Sources: articles}, voice, nil
}

// handleTitle answers "hver er forsætisráðherra?": a reverse lookup by
// title prefix, aggregated by person name.
func (d *Dispatcher) handleTitle(title string) (interface{}, string, error) {
	rd := answer.NewTable()
	rows, err := d.ds.PersonsByTitle(title)
	if err != nil {
		return nil, "", err
	}
	rd.AppendNames(rows, func(r model.ResultRow) string { return r.Value })
	// Entities whose definition equals the title also qualify
	rows, err = d.ds.EntitiesByDefinition(title)
	if err != nil {
		return nil, "", err
	}
	rd.AppendNames(rows, func(r model.ResultRow) string { return r.Value })

	resp := answer.Rank(rd, d.now())
	voice := "Ég veit ekki hver er " + title + "."
	if len(resp) > 0 && title != "" && resp[0].Answer != "" {
		// 'Seðlabankastjóri er Már Guðmundsson.'
		voice = text.UpperFirst(title) + " er " + resp[0].Answer + "."
	}
	return resp, voice, nil
}

// handleEntity answers "hvað er X?"
func (d *Dispatcher) handleEntity(name string) (interface{}, string, error) {
	defs, err := entityDefinitions(d.ds, name, d.now())
	if err != nil {
		return nil, "", err
	}
	articles, err := d.ds.ArticleList(name, maxAnswerLen)
	if err != nil {
		return nil, "", err
	}
	voice := "Ég veit ekki hvað " + name + " er."
	if len(defs) > 0 && defs[0].Answer != "" {
		voice = name + " er " + defs[0].Answer + "."
	}
	return Response{Answers: defs, Sources: articles}, voice, nil
}

// handleCompany answers a query for a company name. Trailing periods are
// stripped so "Eimskip hf." matches the stored "Eimskip hf", then the
// lookup is by case-sensitive prefix.
func (d *Dispatcher) handleCompany(name string) (interface{}, string, error) {
	qname := strings.TrimSpace(name)
	for strings.HasSuffix(qname, ".") {
		qname = qname[:len(qname)-1]
	}
	rd := answer.NewTable()
	rows, err := d.ds.EntitiesByPrefix(qname)
	if err != nil {
		return nil, "", err
	}
	rd.Append(rows, func(r model.ResultRow) string { return r.Value })

	resp := answer.Rank(rd, d.now())
	voice := "Ég veit ekki hvað " + name + " er."
	if len(resp) > 0 && resp[0].Answer != "" {
		voice = name + " er " + resp[0].Answer + "."
	}
	return resp, voice, nil
}

// handleWord answers a query for words related to a stem. A stem that
// occurs in no articles short-circuits to an empty answer without
// querying for related words.
func (d *Dispatcher) handleWord(stem string) (interface{}, string, error) {
	cnt, err := d.ds.ArticleCount(stem)
	if err != nil {
		return nil, "", err
	}
	var related []model.RelatedWord
	if cnt > 0 {
		rl, err := d.ds.RelatedWords(stem, maxAnswerLen)
		if err != nil {
			return nil, "", err
		}
		// The queried stem co-occurs with itself; leave it out
		for _, rw := range rl {
			if rw.Stem != stem {
				related = append(related, rw)
			}
		}
	}
	return WordResponse{Count: cnt, Answers: related}, "", nil
}

// handleSearch runs a free-text similarity search. Each token contributes
// zero or more stems; the flattened stem list goes to the similarity
// server, and the returned per-stem weights are averaged back onto the
// tokens that contributed them.
func (d *Dispatcher) handleSearch(ctx context.Context, q *Query) (interface{}, string, error) {
	if d.searcher == nil {
		return nil, "", errNoSearcher
	}

	var terms []similar.Term
	tokens := q.Tokens()
	weights := make([]TokenWeight, 0, len(tokens))
	// fixups records, per contributing token, its weight slot and how
	// many stems it contributed
	type fixup struct {
		slot int
		n    int
	}
	var fixups []fixup
	for _, t := range tokens {
		weights = append(weights, TokenWeight{X: t.Text})
		stems := d.stemmer.Stems(t)
		if len(stems) > 0 {
			terms = append(terms, stems...)
			fixups = append(fixups, fixup{slot: len(weights) - 1, n: len(stems)})
		}
	}

	total := 0
	for _, f := range fixups {
		total += f.n
	}
	if total != len(terms) {
		return nil, "", invariantf("search: %d stems tracked for %d terms", total, len(terms))
	}

	result, err := d.searcher.Search(ctx, terms, maxAnswerLen)
	if err != nil {
		return nil, "", err
	}
	if len(result.Weights) != len(terms) {
		return nil, "", invariantf(
			"search: %d weights returned for %d terms", len(result.Weights), len(terms))
	}

	// Distribute the weights back onto the contributing tokens
	index := 0
	for _, f := range fixups {
		sum := 0.0
		for k := 0; k < f.n; k++ {
			sum += result.Weights[index+k]
		}
		weights[f.slot].W = sum / float64(f.n)
		index += f.n
	}
	return SearchResponse{Answers: result.Articles, Weights: weights}, "", nil
}
