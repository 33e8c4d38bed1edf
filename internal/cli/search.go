package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/va2ai/bvaapi2/internal/model"
)

var (
	searchYear      int
	searchYearStart int
	searchYearEnd   int
	searchMaxPages  int
	searchSortBy    string
	searchOrder     string
	searchOutcome   string
	searchJudge     string
	searchRO        string
	searchFacets    bool
	searchHighlight bool
	searchTimeout   time.Duration
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search decisions",
	Long: `Search Board of Veterans' Appeals decisions. Queries support AND/OR/NOT
operators and quoted phrases.

Example:
  bvaapi search "PTSD AND combat NOT TBI" --year 2021
  bvaapi search tinnitus --year-start 2019 --year-end 2021 --outcome Granted
  bvaapi search "hearing loss" --sort-by date --facets`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVar(&searchYear, "year", 0, "restrict to a single decision year")
	searchCmd.Flags().IntVar(&searchYearStart, "year-start", 0, "first year of an inclusive range")
	searchCmd.Flags().IntVar(&searchYearEnd, "year-end", 0, "last year of an inclusive range")
	searchCmd.Flags().IntVar(&searchMaxPages, "max-pages", 1, "result pages to walk per year")
	searchCmd.Flags().StringVar(&searchSortBy, "sort-by", "", "sort key (relevance, date, year, case_number, text_length)")
	searchCmd.Flags().StringVar(&searchOrder, "order", "", "sort direction (asc, desc)")
	searchCmd.Flags().StringVar(&searchOutcome, "outcome", "", "filter by outcome (Granted, Denied, Remanded, Mixed, Unknown)")
	searchCmd.Flags().StringVar(&searchJudge, "judge", "", "filter by judge name (substring)")
	searchCmd.Flags().StringVar(&searchRO, "regional-office", "", "filter by regional office (substring)")
	searchCmd.Flags().BoolVar(&searchFacets, "facets", false, "aggregate facets over the result set")
	searchCmd.Flags().BoolVar(&searchHighlight, "highlight", false, "mark query terms in snippets")
	searchCmd.Flags().DurationVar(&searchTimeout, "timeout", 5*time.Minute, "overall search timeout")
}

func runSearch(cmd *cobra.Command, args []string) error {
	p, log, err := buildPipeline()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	resp, err := p.Search(ctx, model.SearchRequest{
		Query:     args[0],
		Year:      searchYear,
		YearStart: searchYearStart,
		YearEnd:   searchYearEnd,
		MaxPages:  searchMaxPages,
		SortBy:    searchSortBy,
		SortOrder: searchOrder,
		Filters: model.Filters{
			Outcome:        searchOutcome,
			Judge:          searchJudge,
			RegionalOffice: searchRO,
		},
		Facets:    searchFacets,
		Highlight: searchHighlight,
	})
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Pages searched: %d, results: %d\n", resp.PagesSearched, len(resp.Results))
	}
	return printJSON(resp)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
