package domain

import "sort"

// MaxResults caps how many sites one optimization run returns.
const MaxResults = 5

// FilterAndRank keeps sites within the cost ceiling and production floor,
// sorts them ascending by LCOH (stable, so ties keep input order), and
// truncates to the top MaxResults. An empty result is valid, not an error.
func FilterAndRank(sites []Site, criteria Criteria) []Site {
	kept := make([]Site, 0, len(sites))
	for _, site := range sites {
		if site.LCOH <= criteria.MaxCost && site.AnnualProductionKg >= criteria.MinProduction {
			kept = append(kept, site)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].LCOH < kept[j].LCOH
	})

	if len(kept) > MaxResults {
		kept = kept[:MaxResults]
	}
	return kept
}
