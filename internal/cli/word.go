package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ornolfur/spyrja/internal/query"
)

// wordCmd represents the word command, a shorthand for ask --type word
var wordCmd = &cobra.Command{
	Use:   "word <stem>",
	Short: "Show words related to a word stem",
	Args:  cobra.ExactArgs(1),
	RunE:  runWord,
}

func init() {
	rootCmd.AddCommand(wordCmd)
}

func runWord(cmd *cobra.Command, args []string) error {
	stem := args[0]

	cfg := loadConfig()
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	d := newDispatcher(cfg, s)
	q := query.New("word: "+stem, nil)
	if err := d.Dispatch(context.Background(), q, query.QWord, stem); err != nil {
		return err
	}
	if q.State() == query.Errored {
		return fmt.Errorf("%s", q.Err())
	}

	resp := q.Answer().(query.WordResponse)
	if cfg.Output.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	fmt.Printf("'%s' kemur fyrir í %d greinum\n", stem, resp.Count)
	for _, rw := range resp.Answers {
		fmt.Printf("  %s (%s)\n", rw.Stem, rw.Cat)
	}
	return nil
}
