package covid

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	chartWidth  = 18 * vg.Inch
	chartHeight = 24 * vg.Inch
	chartDPI    = 300

	rollingWindow = 7
)

// One line color per country, in Countries order.
var seriesColors = []color.RGBA{
	{R: 0xe6, G: 0x19, B: 0x4b, A: 0xff},
	{R: 0x36, G: 0x77, B: 0xd9, A: 0xff},
	{R: 0x3c, G: 0xb4, B: 0x4b, A: 0xff},
	{R: 0xff, G: 0x8c, B: 0x00, A: 0xff},
	{R: 0x91, G: 0x1e, B: 0xb4, A: 0xff},
	{R: 0x00, G: 0x9f, B: 0xa8, A: 0xff},
	{R: 0xc8, G: 0xa2, B: 0x00, A: 0xff},
	{R: 0xf0, G: 0x32, B: 0xe6, A: 0xff},
	{R: 0x80, G: 0x4d, B: 0x21, A: 0xff},
	{R: 0x46, G: 0x6d, B: 0x1d, A: 0xff},
}

// RenderCharts draws the seven analysis panels into a single 4x2
// tiled PNG at path (the eighth cell stays empty). Line panels plot
// one series per country; each bar panel sorts its own view of the
// shared latest snapshot descending by its metric, so country order
// differs between panels.
func RenderCharts(filtered *Dataset, path string) error {
	countries, byCountry := seriesByCountry(filtered)
	latest := Latest(filtered)

	// The country legend lives outside the first panel's plot area,
	// in a strip along the tile's right edge.
	legend := plot.NewLegend()
	legend.Top = true

	totalCases, err := linePanel(
		"Total COVID-19 Cases Over Time", "Total Cases", &legend,
		countries, byCountry,
		func(rows []*Record) []float64 {
			return values(rows, func(r *Record) float64 { return r.TotalCases })
		})
	if err != nil {
		return err
	}

	newCases, err := linePanel(
		"Daily New Cases (7-day Average)", "New Cases", nil,
		countries, byCountry,
		func(rows []*Record) []float64 {
			return rollingMean(values(rows, func(r *Record) float64 { return r.NewCases }), rollingWindow)
		})
	if err != nil {
		return err
	}

	deathRate, err := barPanel(
		"Death Rates by Country (%)", "Death Rate (%)",
		latest.SortedBy(func(r *Record) float64 { return r.DeathRate }),
		func(r *Record) float64 { return r.DeathRate * 100 },
		color.RGBA{R: 0x44, G: 0x01, B: 0x54, A: 0xff})
	if err != nil {
		return err
	}

	casesPerMillion, err := barPanel(
		"Cases Per Million Population", "Cases Per Million",
		latest.SortedBy(func(r *Record) float64 { return r.CasesPerMillion }),
		func(r *Record) float64 { return r.CasesPerMillion },
		color.RGBA{R: 0xb6, G: 0x30, B: 0x79, A: 0xff})
	if err != nil {
		return err
	}

	deathsPerMillion, err := barPanel(
		"Deaths Per Million Population", "Deaths Per Million",
		latest.SortedBy(func(r *Record) float64 { return r.DeathsPerMillion }),
		func(r *Record) float64 { return r.DeathsPerMillion },
		color.RGBA{R: 0xe1, G: 0x64, B: 0x62, A: 0xff})
	if err != nil {
		return err
	}

	vaccinated, err := linePanel(
		"Percentage Fully Vaccinated Over Time", "Percentage Fully Vaccinated", nil,
		countries, byCountry,
		func(rows []*Record) []float64 {
			return values(rows, func(r *Record) float64 { return r.PeopleFullyVaccinatedPerHundred })
		})
	if err != nil {
		return err
	}

	vaccinatedLatest, err := barPanel(
		"Percentage Fully Vaccinated", "Percentage Fully Vaccinated",
		latest.SortedBy(func(r *Record) float64 { return r.PeopleFullyVaccinatedPerHundred }),
		func(r *Record) float64 { return r.PeopleFullyVaccinatedPerHundred },
		color.RGBA{R: 0x3b, G: 0x4c, B: 0xc0, A: 0xff})
	if err != nil {
		return err
	}

	panels := [][]*plot.Plot{
		{totalCases, newCases},
		{deathRate, casesPerMillion},
		{deathsPerMillion, vaccinated},
		{vaccinatedLatest, nil},
	}
	return writePanels(panels, &legend, path)
}

// seriesByCountry groups the filtered rows per country, keeping the
// fixed country order for stable colors and legend entries. Clean
// already sorted each group chronologically.
func seriesByCountry(ds *Dataset) ([]string, map[string][]*Record) {
	byCountry := make(map[string][]*Record)
	for _, r := range ds.Rows {
		byCountry[r.Location] = append(byCountry[r.Location], r)
	}

	var countries []string
	for _, c := range Countries {
		if len(byCountry[c]) > 0 {
			countries = append(countries, c)
		}
	}
	return countries, byCountry
}

func values(rows []*Record, metric func(*Record) float64) []float64 {
	vals := make([]float64, len(rows))
	for i, r := range rows {
		vals[i] = metric(r)
	}
	return vals
}

// rollingMean computes a trailing mean over the given window. The
// first window-1 positions, and any window containing a missing
// value, yield NaN and are left out of the plotted series.
func rollingMean(vals []float64, window int) []float64 {
	out := make([]float64, len(vals))
	for i := range out {
		out[i] = math.NaN()
	}
	for i := window - 1; i < len(vals); i++ {
		sum := 0.0
		complete := true
		for j := i - window + 1; j <= i; j++ {
			if missing(vals[j]) {
				complete = false
				break
			}
			sum += vals[j]
		}
		if complete {
			out[i] = sum / float64(window)
		}
	}
	return out
}

func linePanel(title, ylabel string, legend *plot.Legend, countries []string, byCountry map[string][]*Record, series func(rows []*Record) []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Date"
	p.Y.Label.Text = ylabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Add(plotter.NewGrid())

	for i, country := range countries {
		rows := byCountry[country]
		vals := series(rows)

		var pts plotter.XYs
		for j, r := range rows {
			if missing(vals[j]) {
				continue
			}
			pts = append(pts, plotter.XY{X: float64(r.Date.Unix()), Y: vals[j]})
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("line series %s of %q: %w", country, title, err)
		}
		line.Color = seriesColors[i%len(seriesColors)]
		line.Width = vg.Points(1.5)
		p.Add(line)

		if legend != nil {
			legend.Add(country, line)
		}
	}
	return p, nil
}

func barPanel(title, ylabel string, view []*Record, metric func(*Record) float64, fill color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Country"
	p.Y.Label.Text = ylabel

	vals := make(plotter.Values, len(view))
	names := make([]string, len(view))
	for i, r := range view {
		v := metric(r)
		// A country with no recorded cases has a NaN or Inf death
		// rate; it plots as a zero-height bar.
		if missing(v) || math.IsInf(v, 0) {
			v = 0
		}
		vals[i] = v
		names[i] = r.Location
	}

	bars, err := plotter.NewBarChart(vals, vg.Points(20))
	if err != nil {
		return nil, fmt.Errorf("bar chart %q: %w", title, err)
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = fill

	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

// drawWithLegend draws the legend along the right edge of c and
// returns the canvas cropped to the space left of it, so the plot
// drawn afterwards cannot overlap the legend entries.
func drawWithLegend(c draw.Canvas, legend *plot.Legend) draw.Canvas {
	r := legend.Rectangle(c)
	width := r.Max.X - r.Min.X
	legend.Draw(c)
	return draw.Crop(c, 0, -width-vg.Millimeter*2, 0, 0)
}

// writePanels lays the plots out on one shared canvas and writes the
// PNG. Alignment across tiles keeps the plot areas of neighbouring
// panels flush with each other. A non-nil legend is drawn beside the
// first panel, outside its plot area.
func writePanels(panels [][]*plot.Plot, legend *plot.Legend, path string) error {
	img := vgimg.NewWith(vgimg.UseWH(chartWidth, chartHeight), vgimg.UseDPI(chartDPI))
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows: len(panels),
		Cols: len(panels[0]),
		PadX: vg.Millimeter * 4, PadY: vg.Millimeter * 4,
		PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2,
		PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2,
	}

	canvases := plot.Align(panels, tiles, dc)
	for row := range panels {
		for col := range panels[row] {
			if panels[row][col] == nil {
				continue
			}
			c := canvases[row][col]
			if row == 0 && col == 0 && legend != nil {
				c = drawWithLegend(c, legend)
			}
			panels[row][col].Draw(c)
		}
	}

	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file %s: %w", path, err)
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		w.Close()
		return fmt.Errorf("write chart file %s: %w", path, err)
	}
	return w.Close()
}
