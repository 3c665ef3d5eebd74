package covid

import (
	"strconv"
	"strings"
	"testing"
)

func TestInsightsAreFixedNumberedStatements(t *testing.T) {
	if len(Insights) != 5 {
		t.Fatalf("want 5 insight lines, got %d", len(Insights))
	}
	for i, line := range Insights {
		if !strings.HasPrefix(line, strconv.Itoa(i+1)+". ") {
			t.Errorf("insight %d is misnumbered: %q", i+1, line)
		}
	}
}

func TestPrintSummaryHandlesEmptyDataset(t *testing.T) {
	// Must not panic before the loader has found any rows.
	PrintSummary(new(Dataset))
}
