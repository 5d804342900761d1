// Package query turns a parsed Icelandic question into an answer: it
// dispatches on the recognized query type, runs the matching handler
// against the article corpus, and records the structured and spoken
// answers (or an error) on the query object.
package query

import (
	"time"

	"github.com/ornolfur/spyrja/internal/model"
)

// QType enumerates the recognized query types. The set is closed; the
// grammar can only produce these.
type QType int

const (
	QNone QType = iota
	QPerson
	QTitle
	QEntity
	QCompany
	QWord
	QSearch
)

// String returns the query type name as the grammar spells it
func (t QType) String() string {
	switch t {
	case QPerson:
		return "Person"
	case QTitle:
		return "Title"
	case QEntity:
		return "Entity"
	case QCompany:
		return "Company"
	case QWord:
		return "Word"
	case QSearch:
		return "Search"
	default:
		return "None"
	}
}

// State tracks a query through its lifecycle. Unresolved transitions to
// exactly one of Answered or Errored; both are terminal.
type State int

const (
	Unresolved State = iota
	Answered
	Errored
)

// Query carries one question through dispatch: the raw text, its tokens,
// the recognized type and key, and the terminal answer or error.
type Query struct {
	text   string
	tokens []model.Token

	qtype QType
	key   string

	state   State
	answer  interface{}
	voice   string
	errText string
	expires time.Time
}

// New creates an unresolved query from the raw text and its tokens
func New(text string, tokens []model.Token) *Query {
	return &Query{text: text, tokens: tokens}
}

// Text returns the raw query text
func (q *Query) Text() string { return q.text }

// Tokens returns the tokenized query
func (q *Query) Tokens() []model.Token { return q.tokens }

// SetQType records the recognized query type
func (q *Query) SetQType(t QType) { q.qtype = t }

// QType returns the recognized query type
func (q *Query) QType() QType { return q.qtype }

// SetKey records the extracted subject of the query
func (q *Query) SetKey(key string) { q.key = key }

// Key returns the extracted subject of the query
func (q *Query) Key() string { return q.key }

// SetAnswer resolves the query with a structured answer and an optional
// spoken phrasing. Ignored once the query is terminal.
func (q *Query) SetAnswer(answer interface{}, voice string) {
	if q.state != Unresolved {
		return
	}
	q.state = Answered
	q.answer = answer
	q.voice = voice
}

// SetError resolves the query with an error message. Ignored once the
// query is terminal.
func (q *Query) SetError(msg string) {
	if q.state != Unresolved {
		return
	}
	q.state = Errored
	q.errText = msg
}

// SetExpires records how long the answer remains valid in a cache
func (q *Query) SetExpires(t time.Time) { q.expires = t }

// Expires returns the answer's cache expiry; zero means no explicit expiry
func (q *Query) Expires() time.Time { return q.expires }

// State returns the query's lifecycle state
func (q *Query) State() State { return q.state }

// Answer returns the structured answer of an Answered query
func (q *Query) Answer() interface{} { return q.answer }

// Voice returns the spoken phrasing of an Answered query, if any
func (q *Query) Voice() string { return q.voice }

// Err returns the error message of an Errored query
func (q *Query) Err() string { return q.errText }
