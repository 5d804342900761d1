package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ornolfur/spyrja/internal/cache"
	"github.com/ornolfur/spyrja/internal/model"
	"github.com/ornolfur/spyrja/internal/query"
	"github.com/ornolfur/spyrja/internal/voice"
)

var (
	askType string
	noCache bool
	polish  bool
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask --type <type> <subject>...",
	Short: "Answer a question about a person, title, entity, company or word",
	Long: `Ask answers a recognized question by its type and subject. Each
argument is one subject; repeated subjects are served from the answer
cache.

Example:
  spyrja ask --type person "Már Guðmundsson"
  spyrja ask --type title "seðlabankastjóri"
  spyrja ask --type company "Eimskip hf."
  spyrja ask --type word banki`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVarP(&askType, "type", "t", "", "question type: person, title, entity, company or word")
	askCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the answer cache")
	askCmd.Flags().BoolVar(&polish, "polish", false, "polish the spoken answer with the configured voice provider")
	_ = askCmd.MarkFlagRequired("type")
}

// parseQType maps a type flag value to a query type
func parseQType(s string) (query.QType, error) {
	switch strings.ToLower(s) {
	case "person":
		return query.QPerson, nil
	case "title":
		return query.QTitle, nil
	case "entity":
		return query.QEntity, nil
	case "company":
		return query.QCompany, nil
	case "word":
		return query.QWord, nil
	case "search":
		return query.QSearch, nil
	default:
		return query.QNone, fmt.Errorf("unknown question type: %s", s)
	}
}

// askResult is one answered (or failed) question as printed to stdout
type askResult struct {
	QType  string      `json:"qtype"`
	Key    string      `json:"key"`
	Answer interface{} `json:"answer,omitempty"`
	Voice  string      `json:"voice,omitempty"`
	Error  string      `json:"error,omitempty"`
	Cached bool        `json:"cached,omitempty"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	qtype, err := parseQType(askType)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	d := newDispatcher(cfg, s)

	var answers *cache.AnswerCache
	if cfg.Cache.Enabled && !noCache {
		answers = cache.NewAnswerCache(cfg.Cache.TTL)
	}

	var polisher voice.Provider
	if polish {
		polisher, err = voice.NewProvider(cfg.Voice)
		if err != nil {
			return err
		}
		if polisher == nil {
			return fmt.Errorf("no voice provider configured (set voice.provider)")
		}
	}

	ctx := context.Background()
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	for _, qkey := range args {
		res, err := askOne(ctx, d, answers, polisher, qtype, qkey)
		if err != nil {
			return err
		}
		if cfg.Output.JSON {
			if err := enc.Encode(res); err != nil {
				return err
			}
		} else {
			printAskResult(res)
		}
	}
	return nil
}

// askOne resolves a single question, consulting and feeding the cache
func askOne(ctx context.Context, d *query.Dispatcher, answers *cache.AnswerCache,
	polisher voice.Provider, qtype query.QType, qkey string) (*askResult, error) {

	qtext := qtype.String() + ": " + qkey

	if answers != nil {
		if ca, found := answers.Lookup(qtext); found {
			return &askResult{
				QType:  qtype.String(),
				Key:    qkey,
				Answer: json.RawMessage(ca.Answer),
				Voice:  ca.Voice,
				Cached: true,
			}, nil
		}
	}

	start := time.Now()
	q := query.New(qtext, nil)
	if err := d.Dispatch(ctx, q, qtype, qkey); err != nil {
		return nil, err
	}
	elapsed("query", start)

	res := &askResult{QType: qtype.String(), Key: qkey}
	if q.State() == query.Errored {
		res.Error = q.Err()
		return res, nil
	}

	res.Answer = q.Answer()
	res.Voice = q.Voice()
	if polisher != nil && res.Voice != "" {
		polished, err := polisher.Polish(ctx, qtext, res.Voice)
		if err != nil {
			// Fall back to the raw phrasing
			fmt.Fprintf(os.Stderr, "voice polish failed: %v\n", err)
		} else {
			res.Voice = polished
		}
	}

	if answers != nil {
		if err := answers.Store(qtext, res.Answer, res.Voice, q.Expires()); err != nil {
			fmt.Fprintf(os.Stderr, "cache answer: %v\n", err)
		}
	}
	return res, nil
}

// printAskResult renders one result as text
func printAskResult(res *askResult) {
	if res.Error != "" {
		fmt.Printf("%s (%s): %s\n", res.Key, res.QType, res.Error)
		return
	}
	if res.Voice != "" {
		fmt.Println(res.Voice)
	}
	switch a := res.Answer.(type) {
	case query.Response:
		printRanked(a.Answers)
		if len(a.Sources) > 0 {
			fmt.Printf("Greinar (%d):\n", len(a.Sources))
			for _, src := range a.Sources {
				fmt.Printf("  %s  %s (%s)\n", src.TS, src.Heading, src.Domain)
			}
		}
	case []model.RankedAnswer:
		printRanked(a)
	case query.WordResponse:
		fmt.Printf("Greinar: %d\n", a.Count)
		for _, rw := range a.Answers {
			fmt.Printf("  %s (%s)\n", rw.Stem, rw.Cat)
		}
	default:
		fmt.Printf("%v\n", res.Answer)
	}
}

func printRanked(answers []model.RankedAnswer) {
	for i, ra := range answers {
		fmt.Printf("%2d. %s (%d heimildir)\n", i+1, ra.Answer, len(ra.Sources))
	}
}
