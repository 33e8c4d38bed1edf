package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	analyzeKeywords string
	analyzeContext  bool
	analyzeTimeout  time.Duration
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Analyze one decision document",
	Long: `Fetch a decision document and report keyword counts, the VA term
census and a readability grade.

Example:
  bvaapi analyze https://www.va.gov/vetapp21/files5/21034567.txt --keywords ptsd,combat
  bvaapi analyze https://www.va.gov/vetapp21/files5/21034567.txt --keywords tinnitus --context`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeKeywords, "keywords", "", "comma-separated keywords to count")
	analyzeCmd.Flags().BoolVar(&analyzeContext, "context", false, "capture surrounding text per occurrence")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", time.Minute, "fetch timeout")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	p, log, err := buildPipeline()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var keywords []string
	for _, kw := range strings.Split(analyzeKeywords, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	result, err := p.Analyze(ctx, args[0], keywords, analyzeContext)
	if err != nil {
		return err
	}
	return printJSON(result)
}
