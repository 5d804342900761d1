// Package stats aggregates scraping and parsing statistics from the
// article store: per-source totals, daily chart series and an author
// ranking by parse quality.
package stats

import (
	"math"
	"time"

	"github.com/ornolfur/spyrja/internal/store"
)

const (
	// DefaultPeriod is the chart period when none is requested
	DefaultPeriod = 10 // days
	// MaxPeriod caps the chart period
	MaxPeriod = 30 // days

	topAuthorsPeriod  = 30 // days
	topAuthorsMin     = 10 // articles
	topAuthorsScanned = 20
	topAuthorsShown   = 10
)

// Source is the statistics lookup layer. *store.Store implements it.
type Source interface {
	RootTotals() ([]store.RootStat, error)
	Period(start, end time.Time) ([]store.PeriodStat, error)
	GenderTotals() ([]store.GenderStat, error)
	BestAuthors(start, end time.Time, minArticles int) ([]store.AuthorStat, error)
}

// GenderSource resolves the grammatical gender of a person name:
// "kk", "kvk", or "hk" for names that are not person names at all
// ("Ritstjórn Vísis"). An empty string means unknown.
type GenderSource interface {
	NameGender(name string) string
}

// NoGenders is the fallback GenderSource when no name database is
// available; every gender is unknown.
type NoGenders struct{}

// NameGender implements GenderSource
func (NoGenders) NameGender(string) string { return "" }

// GenderTotals tallies person mentions by gender across all sources
type GenderTotals struct {
	Kvk   int `json:"kvk"`
	Kk    int `json:"kk"`
	Hk    int `json:"hk"`
	Total int `json:"total"`
}

// OverviewStats is the top-level statistics summary
type OverviewStats struct {
	Roots   []store.RootStat   `json:"roots"`
	Genders []store.GenderStat `json:"genders"`
	Gender  GenderTotals       `json:"gender_totals"`
}

// Overview returns totals per news source plus gender tallies
func Overview(src Source) (*OverviewStats, error) {
	roots, err := src.RootTotals()
	if err != nil {
		return nil, err
	}
	genders, err := src.GenderTotals()
	if err != nil {
		return nil, err
	}
	var gt GenderTotals
	for _, g := range genders {
		gt.Kvk += g.Kvk
		gt.Kk += g.Kk
		gt.Hk += g.Hk
	}
	gt.Total = gt.Kvk + gt.Kk + gt.Hk
	return &OverviewStats{Roots: roots, Genders: genders, Gender: gt}, nil
}

// DaySeries is the daily chart data: per-source article counts and the
// overall parse percentage, one entry per day, oldest first.
type DaySeries struct {
	Labels       []string         `json:"labels"`
	Sources      map[string][]int `json:"sources"`
	ParsePercent []float64        `json:"parse_percent"`
	ScrapeAvg    float64          `json:"scrape_avg"`
	ParseAvg     float64          `json:"parse_avg"`
}

// Charts returns per-day scraping and parsing stats for the trailing
// period ending today. days is clamped to [1, MaxPeriod]; zero or
// negative selects the default.
func Charts(src Source, now time.Time, days int) (*DaySeries, error) {
	if days <= 0 {
		days = DefaultPeriod
	}
	if days > MaxPeriod {
		days = MaxPeriod
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	ds := &DaySeries{
		Labels:       make([]string, 0, days),
		Sources:      make(map[string][]int),
		ParsePercent: make([]float64, 0, days),
	}

	articleCount := 0
	for n := 0; n < days; n++ {
		daysBack := days - n - 1
		start := today.AddDate(0, 0, -daysBack)
		end := start.AddDate(0, 0, 1)
		ds.Labels = append(ds.Labels, start.Format("2006-01-02"))

		rows, err := src.Period(start, end)
		if err != nil {
			return nil, err
		}
		sent, parsed := 0, 0
		for _, r := range rows {
			series, ok := ds.Sources[r.Domain]
			if !ok {
				series = make([]int, days)
				ds.Sources[r.Domain] = series
			}
			series[n] = r.Articles
			articleCount += r.Articles
			sent += r.Sentences
			parsed += r.Parsed
		}
		percent := 0.0
		if sent > 0 {
			percent = round2(float64(parsed) / float64(sent) * 100)
		}
		ds.ParsePercent = append(ds.ParsePercent, percent)
	}

	ds.ScrapeAvg = round2(float64(articleCount) / float64(days))
	sum := 0.0
	for _, p := range ds.ParsePercent {
		sum += p
	}
	ds.ParseAvg = round2(sum / float64(days))
	return ds, nil
}

// Author is one entry of the author ranking
type Author struct {
	Name   string  `json:"name"`
	Gender string  `json:"gender,omitempty"`
	Perc   float64 `json:"perc"`
}

// TopAuthors ranks the most productive authors of the last 30 days by
// the share of their sentences that parsed. Neuter "names" are skipped;
// they are editorial desks, not people.
func TopAuthors(src Source, genders GenderSource, now time.Time) ([]Author, error) {
	start := now.AddDate(0, 0, -topAuthorsPeriod)
	rows, err := src.BestAuthors(start, now, topAuthorsMin)
	if err != nil {
		return nil, err
	}
	if len(rows) > topAuthorsScanned {
		rows = rows[:topAuthorsScanned]
	}

	var out []Author
	for _, a := range rows {
		gender := genders.NameGender(a.Name)
		if gender == "hk" {
			continue
		}
		out = append(out, Author{
			Name:   a.Name,
			Gender: gender,
			Perc:   round2(a.ParseRatio),
		})
		if len(out) == topAuthorsShown {
			break
		}
	}
	return out, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
