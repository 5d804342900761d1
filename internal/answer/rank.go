package answer

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ornolfur/spyrja/internal/model"
)

const (
	// Maximum number of top answers to return
	maxAnswers = 20
	// If we have 5 or more answers with more than one source article,
	// cut off those that have only one
	cutoffAfter = 4
	// Maximum number of sources to provide for each answer
	maxSources = 5
	// Maximum number of identical mentions considered when scoring
	maxMentions = 5

	// Cross-mention bonus factors. A containment between two candidate
	// texts promotes both, decaying as more crosses are found; an
	// "ex"-qualified candidate is reinforced undiluted.
	crossMentionFactor = 0.20
	exMentionFactor    = 0.35
)

// exMarkers are Icelandic qualifiers meaning "former/previous". A
// candidate containing one of these is a more specific framing than the
// bare title it contains.
var exMarkers = []string{"fyrrverandi", "fráfarandi", "áður", "þáverandi", "fyrrum"}

// Rank scores the buckets of rd and produces the final ordered answer
// list: at most maxAnswers answers, each with at most maxSources source
// mentions sorted newest first. Deterministic for a fixed table and a
// fixed now.
func Rank(rd *BucketTable, now time.Time) []model.RankedAnswer {
	scored := rankScored(rd, now)

	// With 5 or more answers backed by more than one source article,
	// drop those that have only a single source
	if len(scored) > cutoffAfter && len(scored[cutoffAfter].sources) > 1 {
		kept := scored[:0]
		for _, sa := range scored {
			if len(sa.sources) > 1 {
				kept = append(kept, sa)
			}
		}
		scored = kept
	}

	if len(scored) > maxAnswers {
		scored = scored[:maxAnswers]
	}
	out := make([]model.RankedAnswer, len(scored))
	for i, sa := range scored {
		srcs := sa.sources
		if len(srcs) > maxSources {
			srcs = srcs[:maxSources]
		}
		out[i] = model.RankedAnswer{Answer: sa.answer, Sources: srcs}
	}
	return out
}

// scoredAnswer pairs a bucket key with its score and its mentions sorted
// newest first.
type scoredAnswer struct {
	answer  string
	score   float64
	sources []model.Mention
}

// rankScored computes the full scored list, sorted by descending score,
// before cutoff and truncation.
func rankScored(rd *BucketTable, now time.Time) []scoredAnswer {
	keys := rd.Keys()
	scores := make(map[string]float64, len(keys))
	mentionWeights := make(map[string]float64, len(keys))

	for _, k := range keys {
		mw := mentionWeight(sortedMentions(rd.buckets[k]), now)
		mentionWeights[k] = mw
		scores[k] = mw + lengthWeight(k)
	}

	// Compare all pairs in decreasing mention-weight order, awarding
	// cross-mention bonuses where one text contains the other
	rl := make([]string, len(keys))
	copy(rl, keys)
	sort.SliceStable(rl, func(i, j int) bool {
		return mentionWeights[rl[i]] > mentionWeights[rl[j]]
	})

	for i := 0; i < len(rl)-1; i++ {
		ri := rl[i]
		crosses := 0
		exI := isEx(ri)
		for j := i + 1; j < len(rl); j++ {
			rj := rl[j]
			if !contained(rj, ri) && !contained(ri, rj) {
				continue
			}
			crosses++
			// ri contains rj or vice versa: cross-add a share of the
			// respective mention weights
			exJ := isEx(rj)
			if exI && !exJ {
				// "fyrrverandi forseti Íslands" reinforced by the
				// arrival of the bare "forseti Íslands"
				scores[ri] += mentionWeights[rj] * exMentionFactor
			} else {
				scores[rj] += mentionWeights[ri] * crossMentionFactor / float64(crosses)
			}
			if exJ && !exI {
				scores[rj] += mentionWeights[ri] * exMentionFactor
			} else {
				scores[ri] += mentionWeights[rj] * crossMentionFactor / float64(crosses)
			}
			if crosses == maxMentions {
				// Don't bother with more than 5 cross mentions
				break
			}
		}
	}

	scored := make([]scoredAnswer, len(keys))
	for i, k := range keys {
		scored[i] = scoredAnswer{
			answer:  k,
			score:   scores[k],
			sources: sortedMentions(rd.buckets[k]),
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	return scored
}

// sortedMentions returns a bucket's mentions sorted newest first. The
// sort is stable over insertion order so equal timestamps keep their
// arrival order.
func sortedMentions(b *bucket) []model.Mention {
	out := make([]model.Mention, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.mentions[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// mentionWeight scores a bucket's mentions: newer mentions are better
// than older ones, and a single uncorroborated mention is discounted.
func mentionWeight(sorted []model.Mention, now time.Time) float64 {
	newest := sorted
	if len(newest) > maxMentions {
		newest = newest[:maxMentions]
	}
	w := 0.0
	for _, m := range newest {
		// Age of the article in whole days, clamped at zero
		age := int(math.Floor(now.Sub(m.Timestamp).Hours() / 24))
		if age < 0 {
			age = 0
		}
		// An appropriately shaped and sloped age decay function
		div := 1.0 + math.Log(float64(age)+4)/math.Log(4)
		w += 14.0 / div
	}
	// A single mention is only worth 1/e of a corroborated one
	if len(newest) == 1 {
		return w / math.E
	}
	return w
}

// lengthWeight scores the answer text length: longer answers are better
// than shorter ones, but only to a point.
func lengthWeight(answer string) float64 {
	n := utf8.RuneCountInString(answer)
	if n == 0 {
		return 0
	}
	return math.Min(math.E*math.Log(float64(n)), 10.0)
}

// contained reports whether the whole needle occurs in the haystack,
// aligned on word boundaries.
func contained(needle, haystack string) bool {
	return strings.Contains(
		" "+strings.ToLower(haystack)+" ",
		" "+strings.ToLower(needle)+" ",
	)
}

// isEx reports whether the candidate text carries an "ex" qualifier
func isEx(s string) bool {
	for _, x := range exMarkers {
		if contained(x, s) {
			return true
		}
	}
	return false
}
