// Package corpus exports stored parse trees as a treebank corpus file:
// one bracketed tree per sentence with a metadata block, shuffled in
// batches so that no long run of sentences comes from the same source.
package corpus

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/ornolfur/spyrja/internal/store"
	"github.com/ornolfur/spyrja/internal/worker"
)

const (
	// Minimum number of tokens in an exported sentence
	minSentLength = 3
	// Number of sentences accumulated before shuffling and writing
	maxBatch = 10000
	// Separator between sentence trees in the output file
	separator = "\n\n"
	// Articles formatted per worker-pool round
	chunkSize = 256
)

// englishWords flags sentences that slipped through the parser in the
// wrong language; any sentence containing one of these tokens is skipped.
var englishWords = map[string]bool{
	"the": true, "a": true, "is": true, "each": true, "year": true,
	"our": true, "on": true, "in": true, "and": true, "this": true,
	"that": true, "they": true, "what": true, "when": true,
	"s": true, "t": true, "don't": true, "isn't": true,
	"big": true, "cheese": true, "steak": true, "email": true,
	"search": true, "please": true,
}

// skipDomains are sources excluded from the corpus
var skipDomains = []string{"raduneyti", "lemurinn"}

// TreeSource streams stored parse trees. *store.Store implements it.
type TreeSource interface {
	ArticleTrees(parsedAfter time.Time, fn func(store.TreeRecord) error) error
}

// Options configures an export run
type Options struct {
	// Number of sentences to export; zero or negative means everything
	NumSentences int
	// Only articles parsed after this time are included
	ParsedAfter time.Time
	// Worker goroutines formatting trees
	Workers int
	// Shuffle seed; zero seeds from the clock
	Seed int64
}

var errDone = errors.New("corpus: export target reached")

// Export streams trees from src, formats and filters their sentences,
// and writes shuffled batches to w. Returns the number of sentences
// written.
func Export(ctx context.Context, src TreeSource, w io.Writer, opts Options) (int, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	e := &export{
		w:      w,
		rng:    rng,
		target: opts.NumSentences,
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}

	chunk := make([]store.TreeRecord, 0, chunkSize)
	flush := func() error {
		if len(chunk) == 0 {
			return nil
		}
		pool := worker.NewSizedPool(workers, len(chunk))
		pool.Start()
		for _, rec := range chunk {
			pool.Submit(&formatJob{rec: rec})
		}
		for _, res := range pool.Wait() {
			e.accumulated = append(e.accumulated, res.(*formatResult).trees...)
		}
		chunk = chunk[:0]
		return e.writeBatches(false)
	}

	err := src.ArticleTrees(opts.ParsedAfter, func(rec store.TreeRecord) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if skipDomain(rec.Domain) {
			return nil
		}
		chunk = append(chunk, rec)
		if len(chunk) == chunkSize {
			return flush()
		}
		return nil
	})
	if err != nil && !errors.Is(err, errDone) {
		return e.total, err
	}
	if !errors.Is(err, errDone) {
		if err := flush(); err != nil && !errors.Is(err, errDone) {
			return e.total, err
		}
		if err := e.writeBatches(true); err != nil && !errors.Is(err, errDone) {
			return e.total, err
		}
	}
	return e.total, nil
}

type export struct {
	w           io.Writer
	rng         *rand.Rand
	target      int
	accumulated []string
	total       int
}

// writeBatches shuffles and writes full batches; with final set it also
// drains the remainder. Returns errDone once the target is reached.
func (e *export) writeBatches(final bool) error {
	for {
		n := len(e.accumulated)
		if n == 0 {
			return nil
		}
		if e.target > 0 && e.total+n >= e.target {
			n = e.target - e.total
		} else if n >= maxBatch {
			n = maxBatch
		} else if !final {
			return nil
		}

		batch := e.accumulated[:n]
		e.rng.Shuffle(len(batch), func(i, j int) {
			batch[i], batch[j] = batch[j], batch[i]
		})
		for _, tree := range batch {
			if _, err := io.WriteString(e.w, tree+separator); err != nil {
				return err
			}
		}
		e.total += n
		e.accumulated = e.accumulated[n:]
		if e.target > 0 && e.total >= e.target {
			return errDone
		}
	}
}

// formatJob formats one article's sentence trees on the worker pool
type formatJob struct {
	rec store.TreeRecord
}

// formatResult carries the formatted trees of one article
type formatResult struct {
	trees []string
}

func (r *formatResult) GetError() error { return nil }

func (j *formatJob) Execute(ctx context.Context) worker.Result {
	var trees []string
	for ix, sent := range SentenceTrees(j.rec.Tree) {
		tokens := LeafTokens(sent)
		if len(tokens) < minSentLength {
			continue
		}
		if containsEnglish(tokens) {
			continue
		}
		trees = append(trees, formatTree(j.rec.ArticleID, j.rec.URL, ix, sent))
	}
	return &formatResult{trees: trees}
}

func containsEnglish(tokens []string) bool {
	for _, t := range tokens {
		if englishWords[strings.ToLower(t)] {
			return true
		}
	}
	return false
}

func skipDomain(domain string) bool {
	for _, d := range skipDomains {
		if strings.Contains(domain, d) {
			return true
		}
	}
	return false
}
