// Command tank-volume is the interactive water tank sizing tool for spherical
// and cylindrical tanks.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/MikeConroy67/hydrology-tools/internal/prompt"
	"github.com/MikeConroy67/hydrology-tools/pkg/tank"
)

type record struct {
	Timestamp         string  `json:"timestamp"`
	TankType          string  `json:"tank_type"`
	DiameterMeters    float64 `json:"diameter_meters"`
	RadiusMeters      float64 `json:"radius_meters"`
	HeightMeters      float64 `json:"height_meters,omitempty"`
	VolumeCubicMeters float64 `json:"volume_cubic_meters"`
}

func main() {
	output := flag.String("output", "tank_volume_data.json", "Path of the NDJSON results log")
	flag.Parse()

	p := prompt.New()
	fmt.Println("Select the type of water tank:")
	fmt.Println("1. Spherical Tank")
	fmt.Println("2. Cylindrical Tank")

	choice, err := p.Count("Enter 1 for Spherical or 2 for Cylindrical: ")
	exitOn(err)
	for choice != 1 && choice != 2 {
		fmt.Println("Invalid choice. Please enter 1 or 2.")
		choice, err = p.Count("Enter 1 for Spherical or 2 for Cylindrical: ")
		exitOn(err)
	}

	rec := record{Timestamp: time.Now().Format(time.RFC3339)}

	if choice == 1 {
		diameter, err := p.PositiveFloat("Enter the diameter of the spherical water tank (in meters): ")
		exitOn(err)
		volume := tank.SphericalVolume(diameter)
		rec.TankType = "Spherical"
		rec.DiameterMeters = diameter
		rec.RadiusMeters = diameter / 2
		rec.VolumeCubicMeters = volume

		fmt.Println("\nSpherical Tank Calculation:")
		fmt.Printf("Diameter: %g meters\n", diameter)
		fmt.Printf("Radius: %g meters\n", diameter/2)
		fmt.Printf("Volumetric Capacity: %.2f cubic meters\n", volume)
	} else {
		diameter, err := p.PositiveFloat("Enter the diameter of the cylindrical water tank (in meters): ")
		exitOn(err)
		height, err := p.PositiveFloat("Enter the height of the cylindrical water tank (in meters): ")
		exitOn(err)
		volume := tank.CylindricalVolume(diameter, height)
		rec.TankType = "Cylindrical"
		rec.DiameterMeters = diameter
		rec.RadiusMeters = diameter / 2
		rec.HeightMeters = height
		rec.VolumeCubicMeters = volume

		fmt.Println("\nCylindrical Tank Calculation:")
		fmt.Printf("Diameter: %g meters\n", diameter)
		fmt.Printf("Radius: %g meters\n", diameter/2)
		fmt.Printf("Height: %g meters\n", height)
		fmt.Printf("Volumetric Capacity: %.2f cubic meters\n", volume)
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
