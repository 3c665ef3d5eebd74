package covid

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLatestPicksLastRowPerLocation(t *testing.T) {
	old := testRecord("Kenya", "2021-01-01")
	newer := testRecord("Kenya", "2021-02-01")
	other := testRecord("France", "2021-01-15")

	snap := Latest(&Dataset{Rows: []*Record{old, newer, other}})

	if len(snap.Rows) != 2 {
		t.Fatalf("want 2 rows, got %d", len(snap.Rows))
	}
	if snap.Rows[0] != newer {
		t.Errorf("Kenya snapshot = %v, want the later row", snap.Rows[0].Date)
	}
	if snap.Rows[1] != other {
		t.Errorf("France snapshot missing")
	}
}

func TestLatestLaterRowWinsOnEqualDates(t *testing.T) {
	first := testRecord("Kenya", "2021-01-01")
	second := testRecord("Kenya", "2021-01-01")
	second.TotalCases = 99

	snap := Latest(&Dataset{Rows: []*Record{first, second}})

	if len(snap.Rows) != 1 || snap.Rows[0] != second {
		t.Fatalf("want the later of the tied rows")
	}
}

func TestLatestCoversAllLocations(t *testing.T) {
	// The map stage snapshots the unfiltered table, so locations
	// outside the fixed country list must survive.
	snap := Latest(&Dataset{Rows: []*Record{
		testRecord("Kenya", "2021-01-01"),
		testRecord("France", "2021-01-01"),
		testRecord("World", "2021-01-01"),
	}})

	if len(snap.Rows) != 3 {
		t.Fatalf("want 3 locations, got %d", len(snap.Rows))
	}
}

func TestSortedByDescendingWithNaNLast(t *testing.T) {
	a := testRecord("Kenya", "2021-01-01")
	a.DeathRate = 0.01
	b := testRecord("Japan", "2021-01-01")
	b.DeathRate = 0.03
	c := testRecord("Brazil", "2021-01-01")
	// Brazil's death rate stays NaN.

	snap := Latest(&Dataset{Rows: []*Record{a, b, c}})
	view := snap.SortedBy(func(r *Record) float64 { return r.DeathRate })

	got := []string{view[0].Location, view[1].Location, view[2].Location}
	want := []string{"Japan", "Kenya", "Brazil"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sorted view (-want +got):\n%s", diff)
	}
}

func TestSortedByLeavesSnapshotUntouched(t *testing.T) {
	a := testRecord("Kenya", "2021-01-01")
	a.CasesPerMillion = 1
	b := testRecord("Japan", "2021-01-01")
	b.CasesPerMillion = 2

	snap := Latest(&Dataset{Rows: []*Record{a, b}})

	// Two panels sorting by different metrics must not disturb each
	// other or the shared snapshot.
	snap.SortedBy(func(r *Record) float64 { return r.CasesPerMillion })
	snap.SortedBy(func(r *Record) float64 { return -r.CasesPerMillion })

	if snap.Rows[0] != a || snap.Rows[1] != b {
		t.Errorf("snapshot order changed by SortedBy")
	}
}

func TestSortedByAllNaNKeepsOrder(t *testing.T) {
	a := testRecord("Kenya", "2021-01-01")
	b := testRecord("Japan", "2021-01-01")

	snap := Latest(&Dataset{Rows: []*Record{a, b}})
	view := snap.SortedBy(func(r *Record) float64 { return math.NaN() })

	if view[0] != a || view[1] != b {
		t.Errorf("all-NaN sort is not stable")
	}
}
