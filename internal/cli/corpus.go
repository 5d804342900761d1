package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ornolfur/spyrja/internal/corpus"
)

var (
	corpusOut     string
	corpusNum     int
	corpusAfter   string
	corpusWorkers int
	corpusSeed    int64
)

// corpusCmd groups the corpus subcommands
var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Corpus utilities",
}

// corpusExportCmd represents the corpus export command
var corpusExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored parse trees as a treebank corpus file",
	Long: `Export writes the parse trees of visible, successfully parsed
articles to a treebank file: one bracketed sentence tree per record with
an ID-CORPUS/URL metadata block, shuffled in batches of 10 000.

Example:
  spyrja corpus export --out corpus.txt --num 1000000 --parsed-after 2020-01-01`,
	RunE: runCorpusExport,
}

func init() {
	rootCmd.AddCommand(corpusCmd)
	corpusCmd.AddCommand(corpusExportCmd)

	corpusExportCmd.Flags().StringVar(&corpusOut, "out", "", "output filename")
	corpusExportCmd.Flags().IntVar(&corpusNum, "num", 0, "number of sentences to export (0 = all)")
	corpusExportCmd.Flags().StringVar(&corpusAfter, "parsed-after", "", "only articles parsed after this date (YYYY-MM-DD)")
	corpusExportCmd.Flags().IntVar(&corpusWorkers, "workers", 4, "worker goroutines")
	corpusExportCmd.Flags().Int64Var(&corpusSeed, "seed", 0, "shuffle seed (0 = from the clock)")
	_ = corpusExportCmd.MarkFlagRequired("out")
}

func runCorpusExport(cmd *cobra.Command, args []string) error {
	opts := corpus.Options{
		NumSentences: corpusNum,
		Workers:      corpusWorkers,
		Seed:         corpusSeed,
	}
	if corpusAfter != "" {
		t, err := time.Parse("2006-01-02", corpusAfter)
		if err != nil {
			return fmt.Errorf("invalid --parsed-after date: %w", err)
		}
		opts.ParsedAfter = t
	}

	cfg := loadConfig()
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	f, err := os.Create(corpusOut)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	start := time.Now()
	n, err := corpus.Export(context.Background(), s, f, opts)
	if err != nil {
		return fmt.Errorf("export corpus: %w", err)
	}
	elapsed("export", start)

	fmt.Printf("Dumped %d trees to file '%s'\n", n, corpusOut)
	return nil
}
