package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ornolfur/spyrja/internal/model"
	"github.com/ornolfur/spyrja/internal/similar"
)

// Error codes reported on the query object
const (
	// The grammar did not recognize a query type
	ErrNotUnderstood = "E_QUERY_NOT_UNDERSTOOD"
	// A handler failed while computing the answer
	errExceptionPrefix = "E_EXCEPTION: "
)

// Caps shared by the handlers: article lists, search results and
// related-word lists are all limited to this many entries.
const maxAnswerLen = 20

// DataSource is the corpus lookup layer behind the query handlers.
// *store.Store implements it.
type DataSource interface {
	PersonTitles(name string) ([]model.ResultRow, error)
	EntityDefinitions(name string) ([]model.ResultRow, error)
	PersonsByTitle(title string) ([]model.ResultRow, error)
	EntitiesByDefinition(definition string) ([]model.ResultRow, error)
	EntitiesByPrefix(prefix string) ([]model.ResultRow, error)
	ArticleList(name string, limit int) ([]model.ArticleRef, error)
	ArticleCount(stem string) (int, error)
	RelatedWords(stem string, limit int) ([]model.RelatedWord, error)
}

// Searcher is the external similarity-search service used by Search
// queries. *similar.Client implements it.
type Searcher interface {
	Search(ctx context.Context, terms []similar.Term, limit int) (*similar.Result, error)
}

// Dispatcher routes recognized queries to their handlers
type Dispatcher struct {
	ds       DataSource
	searcher Searcher
	stemmer  Stemmer
	now      func() time.Time
}

// NewDispatcher creates a dispatcher over the given lookup layer.
// searcher may be nil when no similarity server is configured; Search
// queries then fail with a handler error. A nil stemmer selects the
// built-in one.
func NewDispatcher(ds DataSource, searcher Searcher, stemmer Stemmer) *Dispatcher {
	if stemmer == nil {
		stemmer = BasicStemmer{}
	}
	return &Dispatcher{
		ds:       ds,
		searcher: searcher,
		stemmer:  stemmer,
		now:      time.Now,
	}
}

// Dispatch resolves the query: it records the recognized type and key,
// runs the matching handler, and sets exactly one of answer or error on
// the query. An InvariantError from a handler propagates as the return
// value; every other handler failure is folded into the query's error
// state and Dispatch returns nil.
func (d *Dispatcher) Dispatch(ctx context.Context, q *Query, qtype QType, qkey string) error {
	if qtype == QNone {
		q.SetError(ErrNotUnderstood)
		return nil
	}
	q.SetQType(qtype)
	q.SetKey(qkey)

	answer, voice, err := d.handle(ctx, q, qtype, qkey)
	if err != nil {
		var inv *InvariantError
		if errors.As(err, &inv) {
			return err
		}
		q.SetError(errExceptionPrefix + err.Error())
		return nil
	}
	q.SetAnswer(answer, voice)
	return nil
}

func (d *Dispatcher) handle(ctx context.Context, q *Query, qtype QType, qkey string) (interface{}, string, error) {
	switch qtype {
	case QPerson:
		return d.handlePerson(qkey)
	case QTitle:
		return d.handleTitle(qkey)
	case QEntity:
		return d.handleEntity(qkey)
	case QCompany:
		return d.handleCompany(qkey)
	case QWord:
		return d.handleWord(qkey)
	case QSearch:
		return d.handleSearch(ctx, q)
	default:
		// No handler for this type: answer with the literal type and key
		return fmt.Sprintf("%s: %s", qtype, qkey), "", nil
	}
}
