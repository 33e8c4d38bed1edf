package postprocess

import (
	"strconv"

	"github.com/va2ai/bvaapi2/internal/model"
)

// computeFacets counts non-empty values per dimension over the filtered
// result set. A dimension with no populated values across all results is
// omitted from the mapping entirely.
func computeFacets(fragments []model.ResultFragment) model.Facets {
	facets := make(model.Facets)

	count := func(dimension, value string) {
		if value == "" {
			return
		}
		dim, ok := facets[dimension]
		if !ok {
			dim = make(map[string]int)
			facets[dimension] = dim
		}
		dim[value]++
	}

	for _, frag := range fragments {
		if frag.Year != 0 {
			count("year", strconv.Itoa(frag.Year))
		}
		count("outcome", frag.Outcome)
		count("judge", frag.Judge)
		count("regional_office", frag.RegionalOffice)
	}

	if len(facets) == 0 {
		return nil
	}
	return facets
}
