package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ornolfur/spyrja/internal/stats"
)

var (
	statsDays    int
	statsAuthors bool
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show scraping and parsing statistics for the corpus",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().IntVar(&statsDays, "days", stats.DefaultPeriod, "chart period in days")
	statsCmd.Flags().BoolVar(&statsAuthors, "authors", false, "include the author ranking")
}

// statsOutput bundles everything the stats command reports
type statsOutput struct {
	Overview *stats.OverviewStats `json:"overview"`
	Charts   *stats.DaySeries     `json:"charts"`
	Authors  []stats.Author       `json:"authors,omitempty"`
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	now := time.Now()
	out := statsOutput{}
	if out.Overview, err = stats.Overview(s); err != nil {
		return err
	}
	if out.Charts, err = stats.Charts(s, now, statsDays); err != nil {
		return err
	}
	if statsAuthors {
		// No name database is wired in; authors keep an unknown gender
		if out.Authors, err = stats.TopAuthors(s, stats.NoGenders{}, now); err != nil {
			return err
		}
	}

	if cfg.Output.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Println("Heimildir:")
	for _, r := range out.Overview.Roots {
		percent := 0.0
		if r.Sentences > 0 {
			percent = float64(r.Parsed) / float64(r.Sentences) * 100
		}
		fmt.Printf("  %-24s %6d greinar  %8d setningar  %5.1f%% þáttaðar\n",
			r.Domain, r.Articles, r.Sentences, percent)
	}
	g := out.Overview.Gender
	fmt.Printf("Nafnagreiningar: %d kvk / %d kk / %d hk (alls %d)\n", g.Kvk, g.Kk, g.Hk, g.Total)

	fmt.Printf("Síðustu %d dagar: %.2f greinar/dag, %.2f%% þáttun að meðaltali\n",
		len(out.Charts.Labels), out.Charts.ScrapeAvg, out.Charts.ParseAvg)

	if statsAuthors {
		fmt.Println("Bestu höfundar:")
		for i, a := range out.Authors {
			fmt.Printf("%2d. %-28s %6.2f%%\n", i+1, a.Name, a.Perc)
		}
	}
	return nil
}
