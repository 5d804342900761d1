package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ornolfur/spyrja/internal/model"
	"github.com/ornolfur/spyrja/internal/query"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <text>...",
	Short: "Find articles similar to a free-text query",
	Long: `Search tokenizes the query text, extracts search terms and asks the
configured similarity server for the most similar articles.

Example:
  spyrja search "vextir seðlabankans hækka"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	qtext := strings.Join(args, " ")

	cfg := loadConfig()
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	d := newDispatcher(cfg, s)

	start := time.Now()
	q := query.New(qtext, tokenize(qtext))
	if err := d.Dispatch(context.Background(), q, query.QSearch, qtext); err != nil {
		return err
	}
	elapsed("search", start)

	if q.State() == query.Errored {
		return fmt.Errorf("%s", q.Err())
	}

	resp := q.Answer().(query.SearchResponse)
	if cfg.Output.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	for i, a := range resp.Answers {
		fmt.Printf("%2d. %s  %s (%s)\n", i+1, a.TS, a.Heading, a.Domain)
	}
	return nil
}

// tokenize is the stand-in for the external tokenizer: whitespace-split
// words with trailing punctuation broken out into punctuation tokens.
func tokenize(text string) []model.Token {
	var tokens []model.Token
	for _, field := range strings.Fields(text) {
		word := strings.TrimRight(field, ".,;:!?")
		if word != "" {
			tokens = append(tokens, model.Token{Kind: model.TokWord, Text: word})
		}
		for _, r := range field[len(word):] {
			tokens = append(tokens, model.Token{Kind: model.TokPunctuation, Text: string(r)})
		}
	}
	return tokens
}
