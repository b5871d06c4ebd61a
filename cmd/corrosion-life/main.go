// Command corrosion-life is the interactive pipe wall failure predictor: it
// estimates the age-adjusted corrosion rate and the years remaining before
// the wall thins below its minimum safe thickness.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/MikeConroy67/hydrology-tools/internal/prompt"
	"github.com/MikeConroy67/hydrology-tools/pkg/corrosionlife"
)

type record struct {
	Timestamp          string  `json:"timestamp"`
	PipeMaterial       string  `json:"pipe_material"`
	PipeAge            float64 `json:"pipe_age"`
	CorrosionRateMmYr  float64 `json:"corrosion_rate_mm_per_year"`
	InitialThicknessMm float64 `json:"initial_thickness_mm"`
	MinThicknessMm     float64 `json:"min_thickness_mm"`
	RemainingLifeYears any     `json:"remaining_life_years"`
	FirstUnsafeYear    int     `json:"first_unsafe_year"`
	MeanThicknessMm    float64 `json:"mean_projected_thickness_mm"`
}

func main() {
	output := flag.String("output", "pipe_corrosion_data.json", "Path of the NDJSON results log")
	flag.Parse()

	p := prompt.New()
	fmt.Println("\nPipe Corrosion & Failure Prediction Tool")

	material, err := p.Material()
	exitOn(err)
	age, err := p.NonNegativeFloat("Enter pipe age (years): ")
	exitOn(err)
	initialThickness, err := p.PositiveFloat("Enter initial pipe wall thickness (mm): ")
	exitOn(err)
	minThickness, err := p.PositiveFloat("Enter minimum safe wall thickness before failure (mm): ")
	exitOn(err)

	rate := corrosionlife.Rate(material, age)
	life, finite := corrosionlife.RemainingLife(initialThickness, minThickness, rate)
	series := corrosionlife.ThicknessSeries(initialThickness, rate)
	summary := corrosionlife.Summarize(series, minThickness)

	fmt.Println("\nCorrosion Analysis Results")
	fmt.Printf("Pipe Material: %s\n", material)
	fmt.Printf("Pipe Age: %g years\n", age)
	fmt.Printf("Corrosion Rate: %.4f mm/year\n", rate)
	if finite {
		fmt.Printf("Estimated Remaining Life: %.2f years\n", life)
	} else {
		fmt.Println("Estimated Remaining Life: Unlimited")
	}
	if summary.YearBelowMin >= 0 {
		fmt.Printf("Projection: wall reaches minimum safe thickness in year %d\n", summary.YearBelowMin)
	} else {
		fmt.Printf("Projection: wall stays above minimum for the next %d years\n", corrosionlife.ProjectionYears)
	}

	rec := record{
		Timestamp:          time.Now().Format(time.RFC3339),
		PipeMaterial:       string(material),
		PipeAge:            age,
		CorrosionRateMmYr:  rate,
		InitialThicknessMm: initialThickness,
		MinThicknessMm:     minThickness,
		FirstUnsafeYear:    summary.YearBelowMin,
		MeanThicknessMm:    summary.MeanThicknessMm,
	}
	if finite {
		rec.RemainingLifeYears = life
	} else {
		rec.RemainingLifeYears = "Unlimited"
	}

	if err := appendRecord(*output, rec); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing results log: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Data successfully written to %s\n", *output)
}

func appendRecord(path string, rec record) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	line, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = f.Write(append(line, '\n'))
	return err
}

func exitOn(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}
