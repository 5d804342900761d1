package query

import (
	"errors"
	"fmt"
)

// errNoSearcher is reported when a Search query arrives and no
// similarity server is configured.
var errNoSearcher = errors.New("no similarity server configured")

// InvariantError signals a defect inside the engine itself, as opposed to
// a failed lookup or an unreachable service. Dispatch lets it propagate
// instead of folding it into the query's user-facing error state, so
// defects surface rather than masquerading as answers.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string { return e.Msg }

func invariantf(format string, args ...interface{}) *InvariantError {
	return &InvariantError{Msg: fmt.Sprintf(format, args...)}
}
