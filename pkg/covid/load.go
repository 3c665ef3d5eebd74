package covid

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"
)

// DatasetFile is the expected input file in the current working
// directory, as published by Our World in Data.
const DatasetFile = "owid-covid-data.csv"

// ErrDatasetNotFound reports that the input file is absent. It is the
// only failure the pipeline recovers from.
var ErrDatasetNotFound = errors.New("dataset not found")

const dateLayout = "2006-01-02"

// Load reads the dataset at path into memory. The format is chosen by
// file extension: ".xlsx" is read as a spreadsheet (first sheet),
// anything else as CSV. Both formats decode through the same row
// handler, so the resulting Dataset is identical either way.
//
// Only the columns the pipeline consumes are decoded; the rest of the
// file is ignored. Empty or unparseable numeric cells become NaN and
// empty dates become the zero time, but a malformed non-empty date
// fails the load. Nothing else is validated here: structural problems
// surface downstream.
func Load(path string) (*Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, path)
		}
		return nil, fmt.Errorf("stat dataset %s: %w", path, err)
	}

	ds := new(Dataset)
	decode := rowDecoder(ds)

	var err error
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		err = extractXLSXRows(path, decode)
	} else {
		err = extractCSVRows(path, decode)
	}
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// rowDecoder returns a handler that consumes the header row first and
// appends one Record per following row. Unknown columns are skipped;
// known columns missing from the header decode as missing values.
func rowDecoder(ds *Dataset) func(row []string) error {
	var cols map[string]int

	return func(row []string) error {
		if cols == nil {
			cols = make(map[string]int, len(row))
			for i, h := range row {
				cols[strings.TrimSpace(h)] = i
			}
			return nil
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		num := func(name string) float64 {
			f, err := strconv.ParseFloat(field(name), 64)
			if err != nil {
				return math.NaN()
			}
			return f
		}

		r := &Record{
			Location:   field("location"),
			ISOCode:    field("iso_code"),
			Population: num("population"),

			PeopleFullyVaccinatedPerHundred: num("people_fully_vaccinated_per_hundred"),
			TotalCasesPerMillion:            num("total_cases_per_million"),

			DeathRate:        math.NaN(),
			CasesPerMillion:  math.NaN(),
			DeathsPerMillion: math.NaN(),
		}
		for _, kc := range keyCounters {
			*kc.Field(r) = num(kc.Column)
		}
		if s := field("date"); s != "" {
			d, err := time.Parse(dateLayout, s)
			if err != nil {
				return fmt.Errorf("row %d: parse date %q: %w", len(ds.Rows)+1, s, err)
			}
			r.Date = d
		}

		ds.Rows = append(ds.Rows, r)
		return nil
	}
}

func extractCSVRows(path string, handler func(row []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read dataset %s: %w", path, err)
		}
		if err := handler(row); err != nil {
			return fmt.Errorf("dataset %s: %w", path, err)
		}
	}
	return nil
}

func extractXLSXRows(path string, handler func(row []string) error) error {
	wb, err := xlsx.OpenFile(path)
	if err != nil {
		return fmt.Errorf("open dataset %s: %w", path, err)
	}

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("dataset %s: workbook has no sheets", path)
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return fmt.Errorf("read sheet %s of %s: %w", sheets[0], path, err)
	}

	for _, row := range rows {
		if err := handler(row); err != nil {
			return fmt.Errorf("dataset %s: %w", path, err)
		}
	}
	return nil
}
