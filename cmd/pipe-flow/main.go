// Command pipe-flow is the interactive flow rate and travel time calculator,
// with an adjustment for fluids whose specific gravity differs from water.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/MikeConroy67/hydrology-tools/internal/prompt"
	"github.com/MikeConroy67/hydrology-tools/pkg/flowrate"
)

type record struct {
	Timestamp          string  `json:"timestamp"`
	PipeDiameterMeters float64 `json:"pipe_diameter_meters"`
	VelocityMps        float64 `json:"velocity_mps"`
	SpecificGravity    float64 `json:"specific_gravity"`
	FlowRateM3PerS     float64 `json:"flow_rate_m3_per_s"`
	AdjustedFlowM3PerS float64 `json:"adjusted_flow_rate_m3_per_s"`
	PipeLengthMeters   float64 `json:"pipe_length_meters"`
	TravelTimeSeconds  float64 `json:"travel_time_seconds"`
}

func main() {
	output := flag.String("output", "pipe_flow_data.json", "Path of the NDJSON results log")
	flag.Parse()

	p := prompt.New()
	fmt.Println("Pipe Flow Rate & Travel Time Calculator")

	diameter, err := p.PositiveFloat("Enter the pipe diameter (meters): ")
	exitOn(err)
	velocity, err := p.PositiveFloat("Enter the velocity of water (m/s): ")
	exitOn(err)
	specificGravity, err := p.PositiveFloat("Enter the specific gravity of the fluid (1 for water): ")
	exitOn(err)
	length, err := p.PositiveFloat("Enter the pipe length for travel time calculation (meters): ")
	exitOn(err)

	flow := flowrate.FlowRate(diameter, velocity)
	adjusted := flowrate.AdjustedFlowRate(flow, specificGravity)
	travelTime, _ := flowrate.TravelTime(length, velocity)

	fmt.Println("\nCalculation Results")
	fmt.Printf("Pipe Diameter: %g meters\n", diameter)
	fmt.Printf("Velocity: %g m/s\n", velocity)
	fmt.Printf("Specific Gravity: %g\n", specificGravity)
	fmt.Printf("Flow Rate (for water): %.2f cubic meters per second (m³/s)\n", flow)
	fmt.Printf("Adjusted Flow Rate (for SG=%g): %.2f cubic meters per second (m³/s)\n", specificGravity, adjusted)
	fmt.Printf("Time to travel %g meters: %.2f seconds\n", length, travelTime)

	rec := record{
		Timestamp:          time.Now().Format(time.RFC3339),
		PipeDiameterMeters: diameter,
		VelocityMps:        velocity,
		SpecificGravity:    specificGravity,
		FlowRateM3PerS:     flow,
		AdjustedFlowM3PerS: adjusted,
		PipeLengthMeters:   length,
		TravelTimeSeconds:  travelTime,
	}
	if err := appendRecord(*output, rec); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to file: %v\n", err)
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
