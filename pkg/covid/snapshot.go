package covid

import "sort"

// Snapshot holds the chronologically last row of every location in a
// dataset, in first-seen location order. It is shared read-only by
// all bar-chart panels and the map renderer; SortedBy hands out
// per-metric views instead of reordering Rows.
type Snapshot struct {
	Rows []*Record
}

// Latest reduces a dataset to one row per location. A later date wins;
// among equal dates the row appearing later in the table wins, so a
// chronologically sorted input reduces to its literal last row.
func Latest(ds *Dataset) *Snapshot {
	idx := make(map[string]int)
	snap := new(Snapshot)

	for _, r := range ds.Rows {
		i, ok := idx[r.Location]
		if !ok {
			idx[r.Location] = len(snap.Rows)
			snap.Rows = append(snap.Rows, r)
			continue
		}
		if !r.Date.Before(snap.Rows[i].Date) {
			snap.Rows[i] = r
		}
	}
	return snap
}

// SortedBy returns the snapshot rows ordered descending by the given
// metric, NaN values last. The returned slice is fresh; the snapshot
// itself is never reordered, so each chart panel can sort by its own
// metric off the same snapshot.
func (s *Snapshot) SortedBy(metric func(*Record) float64) []*Record {
	view := make([]*Record, len(s.Rows))
	copy(view, s.Rows)

	sort.SliceStable(view, func(i, j int) bool {
		vi, vj := metric(view[i]), metric(view[j])
		if missing(vi) {
			return false
		}
		if missing(vj) {
			return true
		}
		return vi > vj
	})
	return view
}
