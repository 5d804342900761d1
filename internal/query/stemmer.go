package query

import (
	"strings"

	"github.com/ornolfur/spyrja/internal/model"
	"github.com/ornolfur/spyrja/internal/similar"
)

// Stemmer extracts search terms from a query token. A token may yield
// zero, one or several terms: punctuation yields none, a person token
// yields one per detected name variant.
type Stemmer interface {
	Stems(t model.Token) []similar.Term
}

// BasicStemmer is the fallback stemmer used when no morphological
// lookup service is wired in: word tokens contribute their lowercased
// surface form, person and entity tokens their detected names.
type BasicStemmer struct{}

// Stems implements Stemmer
func (BasicStemmer) Stems(t model.Token) []similar.Term {
	switch t.Kind {
	case model.TokWord:
		return []similar.Term{{Stem: strings.ToLower(t.Text), Cat: "no"}}
	case model.TokPerson:
		var terms []similar.Term
		seen := make(map[string]bool)
		for _, pn := range t.Names {
			if seen[pn.Name] {
				continue
			}
			seen[pn.Name] = true
			terms = append(terms, similar.Term{Stem: pn.Name, Cat: "person_" + pn.Gender})
		}
		return terms
	case model.TokEntity:
		return []similar.Term{{Stem: t.Text, Cat: "entity"}}
	default:
		return nil
	}
}
