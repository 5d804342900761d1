package stats

import (
	"testing"
	"time"

	"github.com/ornolfur/spyrja/internal/store"
)

var testNow = time.Date(2020, 3, 15, 14, 30, 0, 0, time.UTC)

type fakeSource struct {
	roots   []store.RootStat
	periods map[string][]store.PeriodStat // keyed by start date
	genders []store.GenderStat
	authors []store.AuthorStat
}

func (f *fakeSource) RootTotals() ([]store.RootStat, error) { return f.roots, nil }

func (f *fakeSource) Period(start, end time.Time) ([]store.PeriodStat, error) {
	return f.periods[start.Format("2006-01-02")], nil
}

func (f *fakeSource) GenderTotals() ([]store.GenderStat, error) { return f.genders, nil }

func (f *fakeSource) BestAuthors(start, end time.Time, minArticles int) ([]store.AuthorStat, error) {
	return f.authors, nil
}

type fakeGenders map[string]string

func (f fakeGenders) NameGender(name string) string { return f[name] }

func TestOverview(t *testing.T) {
	src := &fakeSource{
		roots: []store.RootStat{
			{Domain: "ruv.is", Articles: 10, Sentences: 100, Parsed: 90},
			{Domain: "visir.is", Articles: 5, Sentences: 50, Parsed: 40},
		},
		genders: []store.GenderStat{
			{Domain: "ruv.is", Kvk: 10, Kk: 30, Hk: 2},
			{Domain: "visir.is", Kvk: 5, Kk: 10, Hk: 1},
		},
	}
	ov, err := Overview(src)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if len(ov.Roots) != 2 {
		t.Errorf("unexpected roots: %+v", ov.Roots)
	}
	if ov.Gender.Kvk != 15 || ov.Gender.Kk != 40 || ov.Gender.Hk != 3 || ov.Gender.Total != 58 {
		t.Errorf("unexpected gender totals: %+v", ov.Gender)
	}
}

func TestCharts(t *testing.T) {
	src := &fakeSource{
		periods: map[string][]store.PeriodStat{
			"2020-03-14": {
				{Domain: "ruv.is", Articles: 4, Sentences: 40, Parsed: 30},
			},
			"2020-03-15": {
				{Domain: "ruv.is", Articles: 2, Sentences: 10, Parsed: 9},
				{Domain: "visir.is", Articles: 6, Sentences: 20, Parsed: 20},
			},
		},
	}
	ds, err := Charts(src, testNow, 3)
	if err != nil {
		t.Fatalf("Charts: %v", err)
	}
	if len(ds.Labels) != 3 || ds.Labels[0] != "2020-03-13" || ds.Labels[2] != "2020-03-15" {
		t.Errorf("unexpected labels: %v", ds.Labels)
	}
	// Day series are aligned: a source missing on a day gets a zero
	if got := ds.Sources["ruv.is"]; len(got) != 3 || got[0] != 0 || got[1] != 4 || got[2] != 2 {
		t.Errorf("unexpected ruv.is series: %v", got)
	}
	if got := ds.Sources["visir.is"]; got[2] != 6 {
		t.Errorf("unexpected visir.is series: %v", got)
	}
	if ds.ParsePercent[0] != 0 || ds.ParsePercent[1] != 75 {
		t.Errorf("unexpected parse percents: %v", ds.ParsePercent)
	}
	// Day 3: 29 parsed of 30 sentences
	if ds.ParsePercent[2] != 96.67 {
		t.Errorf("parse percent should round to 2 decimals: %v", ds.ParsePercent[2])
	}
	if ds.ScrapeAvg != 4 {
		t.Errorf("unexpected scrape average: %v", ds.ScrapeAvg)
	}
}

func TestChartsClampsPeriod(t *testing.T) {
	src := &fakeSource{}
	ds, err := Charts(src, testNow, 1000)
	if err != nil {
		t.Fatalf("Charts: %v", err)
	}
	if len(ds.Labels) != MaxPeriod {
		t.Errorf("period should clamp to %d days, got %d", MaxPeriod, len(ds.Labels))
	}
	ds, err = Charts(src, testNow, 0)
	if err != nil {
		t.Fatalf("Charts: %v", err)
	}
	if len(ds.Labels) != DefaultPeriod {
		t.Errorf("zero period should default to %d days, got %d", DefaultPeriod, len(ds.Labels))
	}
}

func TestTopAuthors(t *testing.T) {
	src := &fakeSource{
		authors: []store.AuthorStat{
			{Name: "Ritstjórn Vísis", Articles: 50, ParseRatio: 99.5},
			{Name: "Anna Jónsdóttir", Articles: 20, ParseRatio: 95.456},
			{Name: "Bjarni Jónsson", Articles: 15, ParseRatio: 90.1},
		},
	}
	genders := fakeGenders{
		"Ritstjórn Vísis": "hk",
		"Anna Jónsdóttir": "kvk",
		"Bjarni Jónsson":  "kk",
	}
	authors, err := TopAuthors(src, genders, testNow)
	if err != nil {
		t.Fatalf("TopAuthors: %v", err)
	}
	// The editorial desk is skipped
	if len(authors) != 2 || authors[0].Name != "Anna Jónsdóttir" {
		t.Fatalf("unexpected authors: %+v", authors)
	}
	if authors[0].Perc != 95.46 {
		t.Errorf("parse ratio should round to 2 decimals: %v", authors[0].Perc)
	}
	if authors[1].Gender != "kk" {
		t.Errorf("unexpected gender: %+v", authors[1])
	}
}

func TestTopAuthorsNoGenderSource(t *testing.T) {
	src := &fakeSource{
		authors: []store.AuthorStat{{Name: "Anna Jónsdóttir", Articles: 20, ParseRatio: 95}},
	}
	authors, err := TopAuthors(src, NoGenders{}, testNow)
	if err != nil {
		t.Fatalf("TopAuthors: %v", err)
	}
	if len(authors) != 1 || authors[0].Gender != "" {
		t.Errorf("unknown genders should be kept: %+v", authors)
	}
}
