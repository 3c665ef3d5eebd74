// Package covid implements a one-shot analysis pipeline over the
// Our World in Data COVID-19 dataset: load, clean, derive metrics,
// render charts and world maps.
package covid

import (
	"math"
	"time"
)

// Record is one (location, date) row of the dataset. Numeric fields
// use NaN for values missing in the source; a missing date is the
// zero time.Time.
type Record struct {
	Location   string
	ISOCode    string
	Date       time.Time
	Population float64

	TotalCases            float64
	NewCases              float64
	TotalDeaths           float64
	NewDeaths             float64
	TotalVaccinations     float64
	PeopleVaccinated      float64
	PeopleFullyVaccinated float64

	PeopleFullyVaccinatedPerHundred float64
	TotalCasesPerMillion            float64

	// Derived by Clean from the filled counters.
	DeathRate        float64
	CasesPerMillion  float64
	DeathsPerMillion float64
}

// Dataset is an ordered table of records. Each pipeline stage returns
// a new Dataset and leaves its input untouched.
type Dataset struct {
	Rows []*Record
}

// Countries is the fixed set of countries the static charts cover.
// The world maps deliberately ignore it and use every location in the
// source file.
var Countries = []string{
	"Kenya",
	"United States",
	"India",
	"Brazil",
	"United Kingdom",
	"South Africa",
	"Germany",
	"China",
	"Japan",
	"Australia",
}

// keyCounters are the cumulative/daily counters that get
// forward-filled and zero-filled per country before any metric is
// derived from them.
var keyCounters = []struct {
	Column string
	Field  func(*Record) *float64
}{
	{"total_cases", func(r *Record) *float64 { return &r.TotalCases }},
	{"new_cases", func(r *Record) *float64 { return &r.NewCases }},
	{"total_deaths", func(r *Record) *float64 { return &r.TotalDeaths }},
	{"new_deaths", func(r *Record) *float64 { return &r.NewDeaths }},
	{"total_vaccinations", func(r *Record) *float64 { return &r.TotalVaccinations }},
	{"people_vaccinated", func(r *Record) *float64 { return &r.PeopleVaccinated }},
	{"people_fully_vaccinated", func(r *Record) *float64 { return &r.PeopleFullyVaccinated }},
}

func missing(v float64) bool {
	return math.IsNaN(v)
}
