package covid

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Sequential color scales for the two choropleths.
var (
	plasmaScale  = []string{"#0d0887", "#6a00a8", "#b12a90", "#e16462", "#fca636", "#f0f921"}
	viridisScale = []string{"#440154", "#414487", "#2a788e", "#22a884", "#7ad151", "#fde725"}
)

// RenderMaps writes the two standalone interactive world maps from
// the latest per-location snapshot of the full, unfiltered dataset.
// Unlike the static charts, the maps cover every location the source
// file knows about, not just the fixed country list.
func RenderMaps(full *Dataset, casesPath, vaccinationPath string) error {
	snap := Latest(full)

	cases := mapSeries(snap, func(r *Record) float64 { return r.TotalCasesPerMillion })
	if err := renderWorldMap(casesPath,
		"Total COVID-19 Cases Per Million Population",
		"Cases per million", cases, plasmaScale); err != nil {
		return err
	}

	vaccinated := mapSeries(snap, func(r *Record) float64 { return r.PeopleFullyVaccinatedPerHundred })
	return renderWorldMap(vaccinationPath,
		"Percentage of Population Fully Vaccinated",
		"Fully vaccinated (%)", vaccinated, viridisScale)
}

// mapSeries extracts one data point per mappable location. Rows
// without an ISO code, OWID aggregates (World, continents, income
// groups, all coded OWID_*) and locations missing the metric have no
// region on the map and are left out.
func mapSeries(snap *Snapshot, metric func(*Record) float64) []opts.MapData {
	var data []opts.MapData
	for _, r := range snap.Rows {
		if r.ISOCode == "" || strings.HasPrefix(r.ISOCode, "OWID_") {
			continue
		}
		v := metric(r)
		if missing(v) {
			continue
		}
		data = append(data, opts.MapData{Name: r.Location, Value: v})
	}
	return data
}

func renderWorldMap(path, title, seriesName string, data []opts.MapData, scale []string) error {
	var max float64
	for _, d := range data {
		if v, ok := d.Value.(float64); ok && v > max {
			max = v
		}
	}

	m := charts.NewMap()
	m.RegisterMapType("world")
	m.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "1200px",
			Height:    "720px",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "item"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Min:        0,
			Max:        float32(max),
			InRange:    &opts.VisualMapInRange{Color: scale},
		}),
	)
	m.AddSeries(seriesName, data)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create map file %s: %w", path, err)
	}
	if err := m.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("render map %s: %w", path, err)
	}
	return f.Close()
}
