package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

var (
	batchYear     int
	batchMaxPages int
	batchTimeout  time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <query> [query...]",
	Short: "Run several bounded searches",
	Long: `Run one bounded search per query and print a summary for each. A
query that fails is reported in its entry; the batch itself still
completes.

Example:
  bvaapi batch "PTSD" "tinnitus" "hearing loss" --year 2021`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchYear, "year", 0, "restrict all queries to one decision year")
	batchCmd.Flags().IntVar(&batchMaxPages, "max-pages", 1, "result pages to walk per query")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "overall batch timeout")
}

func runBatch(cmd *cobra.Command, args []string) error {
	p, log, err := buildPipeline()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	results, err := p.BatchSearch(ctx, args, batchYear, batchMaxPages)
	if err != nil {
		return err
	}
	return printJSON(results)
}
