package model

// TokenKind classifies tokens in a tokenized sentence, as produced by the
// external tokenizer/parser. Only the kinds the query engine cares about
// are enumerated; everything else is TokWord.
type TokenKind int

const (
	TokWord TokenKind = iota
	TokPerson
	TokEntity
	TokPunctuation
)

// PersonName is one name variant attached to a person token.
// The tokenizer may attach several (different cases, gender readings).
type PersonName struct {
	Name   string
	Gender string
	Case   string
}

// Token is one token of a tokenized sentence. For TokPerson tokens the
// Names slice holds the detected name variants; for all kinds Text is the
// original surface text.
type Token struct {
	Kind  TokenKind
	Text  string
	Names []PersonName
}
