// Command flow-model is the interactive multi-segment travel time estimator:
// it prompts for a pipeline route, runs the traversal model, prints the
// estimate, and appends the result to an NDJSON log.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/MikeConroy67/hydrology-tools/internal/prompt"
	"github.com/MikeConroy67/hydrology-tools/internal/storage/file"
	"github.com/MikeConroy67/hydrology-tools/pkg/config"
	"github.com/MikeConroy67/hydrology-tools/pkg/hydraulics"
)

func main() {
	output := flag.String("output", "water_travel_time.json", "Path of the NDJSON results log")
	policyName := flag.String("pump-policy", "literal", "Pump adjustment policy: 'literal' or 'velocity-boost'")
	flag.Parse()

	p := prompt.New()
	fmt.Println("\nWater Travel Time Estimation")

	material, err := p.Material()
	exitOn(err)
	age, err := p.NonNegativeFloat("Enter pipe age (years): ")
	exitOn(err)
	diameter, err := p.PositiveFloat("Enter initial pipe diameter (meters): ")
	exitOn(err)

	numSegments, err := p.Count("Enter number of slope changes: ")
	exitOn(err)
	segments := make([]hydraulics.SlopeSegment, 0, numSegments)
	for i := 0; i < numSegments; i++ {
		slope, err := p.Float(fmt.Sprintf("Enter slope (decimal, e.g., 0.01 for 1%%) for section %d: ", i+1))
		exitOn(err)
		length, err := p.PositiveFloat(fmt.Sprintf("Enter distance (meters) for slope %d: ", i+1))
		exitOn(err)
		segments = append(segments, hydraulics.SlopeSegment{SlopeFraction: slope, LengthMeters: length})
	}

	numPumps, err := p.Count("Enter number of pumps along the pipeline: ")
	exitOn(err)
	pumps := make([]hydraulics.PumpEvent, 0, numPumps)
	for i := 0; i < numPumps; i++ {
		boost, err := p.PositiveFloat(fmt.Sprintf("Enter flowrate of pump %d (m³/s): ", i+1))
		exitOn(err)
		position, err := p.NonNegativeFloat(fmt.Sprintf("Enter distance (meters) from start where pump %d is located: ", i+1))
		exitOn(err)
		pumps = append(pumps, hydraulics.PumpEvent{FlowRateBoostM3PerSec: boost, PositionMeters: position})
	}

	result, err := hydraulics.RunTraversal(hydraulics.TraversalRequest{
		Material:              material,
		AgeYears:              age,
		InitialDiameterMeters: diameter,
		Segments:              segments,
		Pumps:                 pumps,
		PumpPolicy:            hydraulics.PumpPolicyByName(*policyName),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nTravel Time Calculation Results")
	fmt.Printf("Pipe Material: %s\n", result.Material)
	fmt.Printf("Pipe Age: %g years\n", result.AgeYears)
	fmt.Printf("Initial Diameter: %g meters\n", result.InitialDiameterMeters)
	fmt.Printf("Reduced Diameter (after corrosion): %.4f meters\n", result.EffectiveDiameterMeters)
	fmt.Printf("Total Distance: %g meters\n", result.TotalDistanceMeters)
	if math.IsInf(result.TotalTravelTimeSeconds, 1) {
		fmt.Println("Estimated Travel Time: infinite (a section has no driving slope)")
	} else {
		fmt.Printf("Estimated Travel Time: %.2f seconds (%.2f minutes)\n",
			result.TotalTravelTimeSeconds, result.TotalTravelTimeSeconds/60)
	}

	store, err := file.New(&config.FileData{Path: *output})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results log: %v\n", err)
		os.Exit(1)
	}
	if err := store.StoreResult(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing results log: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Data successfully written to %s\n", *output)
}

func exitOn(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}
