package covid

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Insights are the closing statements of the analysis. They are
// fixed editorial text, not derived from the computed data.
var Insights = []string{
	"1. Vaccination Progress: Countries showed varying speeds in vaccination rollout.",
	"2. Case Trends: Different countries experienced waves at different times.",
	"3. Death Rates: Significant variation between countries (see visualization).",
	"4. Cases Per Million: Higher in densely populated countries.",
	"5. Global Disparities: Clear differences between developed and developing nations.",
}

// PrintInsights writes the fixed key-insight statements.
func PrintInsights() {
	fmt.Println("\nKey Insights:")
	for _, line := range Insights {
		fmt.Println(line)
	}
}

// PrintSummary writes a one-line overview of the loaded dataset with
// locale-grouped digits.
func PrintSummary(ds *Dataset) {
	locations := make(map[string]bool)
	var first, last string
	for _, r := range ds.Rows {
		locations[r.Location] = true
		if r.Date.IsZero() {
			continue
		}
		d := r.Date.Format(dateLayout)
		if first == "" || d < first {
			first = d
		}
		if d > last {
			last = d
		}
	}

	p := message.NewPrinter(language.English)
	p.Printf("%d rows across %d locations (%s - %s)\n", len(ds.Rows), len(locations), first, last)
}
