package postprocess

import (
	"sort"

	"github.com/va2ai/bvaapi2/internal/model"
)

// sortFragments orders fragments by the requested key. All sorts are stable:
// ties keep the source-reported order. Relevance (or no sort key) leaves the
// sequence untouched. Date and year default to newest first, case_number and
// text_length to ascending; an explicit order overrides the default.
func sortFragments(fragments []model.ResultFragment, sortBy, order string) []model.ResultFragment {
	if sortBy == "" || sortBy == model.SortRelevance {
		return fragments
	}

	descending := false
	switch sortBy {
	case model.SortDate, model.SortYear:
		descending = order != model.OrderAsc
	case model.SortCaseNumber, model.SortTextLength:
		descending = order == model.OrderDesc
	}

	less := lessFunc(sortBy)
	sort.SliceStable(fragments, func(i, j int) bool {
		if descending {
			return less(fragments[j], fragments[i])
		}
		return less(fragments[i], fragments[j])
	})
	return fragments
}

func lessFunc(sortBy string) func(a, b model.ResultFragment) bool {
	switch sortBy {
	case model.SortDate:
		// ISO 8601 strings order chronologically; undated fragments sink to
		// the oldest end.
		return func(a, b model.ResultFragment) bool { return a.DecisionDate < b.DecisionDate }
	case model.SortYear:
		return func(a, b model.ResultFragment) bool { return a.Year < b.Year }
	case model.SortCaseNumber:
		return func(a, b model.ResultFragment) bool { return a.CaseNumber < b.CaseNumber }
	case model.SortTextLength:
		return func(a, b model.ResultFragment) bool { return a.TextLength < b.TextLength }
	default:
		return func(a, b model.ResultFragment) bool { return false }
	}
}
