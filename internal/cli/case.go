package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	caseFullText  bool
	caseTextOnly  bool
	caseSummarize bool
	caseTimeout   time.Duration
)

// caseCmd represents the case command
var caseCmd = &cobra.Command{
	Use:   "case <url>",
	Short: "Fetch one decision document",
	Long: `Fetch a decision document by URL and print its structured record:
docket number, decision date, outcome, judge, regional office, issues
and citations.

Example:
  bvaapi case https://www.va.gov/vetapp21/files5/21034567.txt
  bvaapi case https://www.va.gov/vetapp21/files5/21034567.txt --full-text
  bvaapi case https://www.va.gov/vetapp21/files5/21034567.txt --text`,
	Args: cobra.ExactArgs(1),
	RunE: runCase,
}

func init() {
	rootCmd.AddCommand(caseCmd)

	caseCmd.Flags().BoolVar(&caseFullText, "full-text", false, "include the complete document text")
	caseCmd.Flags().BoolVar(&caseTextOnly, "text", false, "print only the raw document text")
	caseCmd.Flags().BoolVar(&caseSummarize, "summarize", false, "add an LLM summary (requires a configured provider)")
	caseCmd.Flags().DurationVar(&caseTimeout, "timeout", time.Minute, "fetch timeout")
}

func runCase(cmd *cobra.Command, args []string) error {
	p, log, err := buildPipeline()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), caseTimeout)
	defer cancel()

	if caseTextOnly {
		rec, err := p.CaseText(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Print(rec.FullText)
		return nil
	}

	rec, err := p.Case(ctx, args[0], caseFullText, caseSummarize)
	if err != nil {
		return err
	}
	return printJSON(rec)
}
