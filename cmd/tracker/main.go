package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/anrid/covid-tracker/pkg/covid"
)

const (
	chartFile          = "covid_analysis.png"
	casesMapFile       = "covid_cases_map.html"
	vaccinationMapFile = "covid_vaccination_map.html"
)

func main() {
	fmt.Println("COVID-19 Global Data Analysis")
	fmt.Println("============================")

	fmt.Println("\nLoading data...")
	ds, err := covid.Load(covid.DatasetFile)
	if err != nil {
		if errors.Is(err, covid.ErrDatasetNotFound) {
			fmt.Printf("Error: Dataset file '%s' not found.\n", covid.DatasetFile)
			fmt.Println("Please download it from Our World in Data and save it in the same directory.")
			return
		}
		log.Fatal(err)
	}
	fmt.Println("Dataset successfully loaded!")
	covid.PrintSummary(ds)

	fmt.Println("\nCleaning data...")
	filtered := covid.Clean(ds)

	fmt.Println("\nGenerating visualizations...")
	if err := covid.RenderCharts(filtered, chartFile); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\nVisualizations saved as '%s'\n", chartFile)

	fmt.Println("\nGenerating interactive world maps...")
	if err := covid.RenderMaps(ds, casesMapFile, vaccinationMapFile); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Interactive maps saved as HTML files:")
	fmt.Printf("- %s\n", casesMapFile)
	fmt.Printf("- %s\n", vaccinationMapFile)

	covid.PrintInsights()

	fmt.Println("\nAnalysis complete!")
}
