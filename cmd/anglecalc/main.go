// Command anglecalc computes the four clinical angles from a landmarks file
// and prints the results. Useful for checking measurements without the server.
//
// The input is a JSON file holding canonical-space landmark coordinates and,
// optionally, hip boundary points to derive hip_center from:
//
//	{
//	  "landmarks": {
//	    "femoral_condyles_center": {"x": 100, "y": 200},
//	    ...
//	  },
//	  "hip_points": [{"x": 95, "y": 40}, {"x": 105, "y": 40}, {"x": 100, "y": 60}]
//	}
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"xray-angles/internal/circlefit"
	"xray-angles/internal/landmark"
	"xray-angles/internal/measure"
	"xray-angles/pkg/geometry"
)

type inputFile struct {
	Landmarks map[landmark.Name]geometry.Point2D `json:"landmarks"`
	HipPoints []geometry.Point2D                 `json:"hip_points"`
}

func main() {
	inputPath := flag.String("input", "", "Path to landmarks JSON file")
	flag.Parse()

	if *inputPath == "" {
		fmt.Println("Usage: anglecalc -input <landmarks.json>")
		os.Exit(1)
	}

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read input: %v\n", err)
		os.Exit(1)
	}

	var input inputFile
	if err := json.Unmarshal(data, &input); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse input: %v\n", err)
		os.Exit(1)
	}

	set := landmark.NewSet()
	for name, p := range input.Landmarks {
		if err := set.Place(name, p); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid landmark: %v\n", err)
			os.Exit(1)
		}
	}

	if _, ok := set.Get(landmark.HipCenter); !ok && len(input.HipPoints) > 0 {
		res, err := circlefit.Fit(input.HipPoints)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Hip circle fit failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Fitted hip center from %d boundary points: (%.2f, %.2f) radius %.2f\n",
			len(input.HipPoints), res.Center.X, res.Center.Y, res.Radius)
		set.Place(landmark.HipCenter, res.Center)
	}

	if !set.Complete() {
		fmt.Fprintf(os.Stderr, "Landmark set incomplete (%d of %d):\n", set.Placed(), landmark.Count)
		for _, name := range landmark.Order {
			if _, ok := set.Get(name); !ok {
				fmt.Fprintf(os.Stderr, "  missing %s\n", name)
			}
		}
		os.Exit(1)
	}

	result, err := measure.Compute(set)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Measurement failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n%-32s %8s\n", "Angle", "Degrees")
	fmt.Printf("%-32s %8.1f\n", "HKA (Hip-Knee-Ankle)", result.HKA)
	fmt.Printf("%-32s %8.1f\n", "JLCA (Joint Line Congruence)", result.JLCA)
	fmt.Printf("%-32s %8.1f\n", "LDFA (Lateral Distal Femoral)", result.LDFA)
	fmt.Printf("%-32s %8.1f\n", "MPTA (Medial Proximal Tibial)", result.MPTA)
}
