package covid

import (
	"math"
	"sort"
)

// Clean produces the filtered, enriched table the static charts are
// built from:
//
//  1. rows with a missing date or location are dropped,
//  2. remaining rows are restricted to the fixed country list,
//  3. each country's series is stably sorted by date, then the key
//     counters are forward-filled and leftover gaps set to zero,
//  4. death_rate, cases_per_million and deaths_per_million are
//     computed per row from the filled counters.
//
// The input dataset is left untouched; every returned row is a copy.
func Clean(ds *Dataset) *Dataset {
	allowed := make(map[string]bool, len(Countries))
	for _, c := range Countries {
		allowed[c] = true
	}

	byCountry := make(map[string][]*Record, len(Countries))
	for _, r := range ds.Rows {
		if r.Date.IsZero() || r.Location == "" {
			continue
		}
		if !allowed[r.Location] {
			continue
		}
		cp := *r
		byCountry[r.Location] = append(byCountry[r.Location], &cp)
	}

	out := new(Dataset)
	for _, country := range Countries {
		rows := byCountry[country]
		if len(rows) == 0 {
			continue
		}

		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Date.Before(rows[j].Date)
		})

		fillCounters(rows)
		for _, r := range rows {
			deriveMetrics(r)
		}

		out.Rows = append(out.Rows, rows...)
	}
	return out
}

// fillCounters carries each key counter forward from the most recent
// prior value, then zeroes whatever is still missing (leading gaps
// before the first report).
func fillCounters(rows []*Record) {
	for _, kc := range keyCounters {
		last := math.NaN()
		for _, r := range rows {
			p := kc.Field(r)
			if missing(*p) {
				*p = last
			} else {
				last = *p
			}
		}
		for _, r := range rows {
			p := kc.Field(r)
			if missing(*p) {
				*p = 0
			}
		}
	}
}

// deriveMetrics computes the ratio columns for one row. Plain IEEE
// division: a country with zero recorded cases yields a NaN or Inf
// death rate, which later stages render as zero.
func deriveMetrics(r *Record) {
	r.DeathRate = r.TotalDeaths / r.TotalCases
	r.CasesPerMillion = r.TotalCases / r.Population * 1e6
	r.DeathsPerMillion = r.TotalDeaths / r.Population * 1e6
}
