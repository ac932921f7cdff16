// Package overlay produces the drawing instructions that the display
// collaborator renders on top of the X-ray image. The core never draws;
// it only describes markers, segments, and labels in display coordinates.
package overlay

import (
	"xray-angles/internal/display"
	"xray-angles/internal/landmark"
	"xray-angles/pkg/geometry"
)

// Color names a drawing color for the rendering surface.
type Color string

const (
	ColorRed   Color = "red"
	ColorGreen Color = "green"
	ColorBlue  Color = "blue"
)

// Marker is a labelled point marker.
type Marker struct {
	Point geometry.Point2D `json:"point"`
	Label string           `json:"label"`
}

// Segment is a labelled, colored line segment.
type Segment struct {
	From  geometry.Point2D `json:"from"`
	To    geometry.Point2D `json:"to"`
	Color Color            `json:"color"`
	Label string           `json:"label"`
}

// Overlay is the full set of drawing instructions for one render pass.
type Overlay struct {
	Markers  []Marker  `json:"markers"`
	Segments []Segment `json:"segments"`
}

// Build produces drawing instructions for the current landmark set, mapped
// into display space under the active view transform. Placed landmarks get a
// labelled marker; once the set is complete the four measurement lines are
// added: both mechanical axes in blue, the femoral condyle line in green,
// and the tibial plateau line in red.
func Build(set *landmark.Set, t display.Transform, canonical geometry.Size) Overlay {
	var ov Overlay

	for _, name := range landmark.Order {
		p, ok := set.Get(name)
		if !ok {
			continue
		}
		ov.Markers = append(ov.Markers, Marker{
			Point: t.Apply(p, canonical),
			Label: name.DisplayName(),
		})
	}

	if !set.Complete() {
		return ov
	}

	at := func(n landmark.Name) geometry.Point2D {
		p, _ := set.Get(n)
		return t.Apply(p, canonical)
	}

	ov.Segments = append(ov.Segments,
		Segment{
			From:  at(landmark.HipCenter),
			To:    at(landmark.FemoralCondylesCenter),
			Color: ColorBlue,
			Label: "Mechanical Axis Femur",
		},
		Segment{
			From:  at(landmark.FemoralCondylesCenter),
			To:    at(landmark.AnkleCenter),
			Color: ColorBlue,
			Label: "Mechanical Axis Tibia",
		},
		Segment{
			From:  at(landmark.MedialCondyle),
			To:    at(landmark.LateralCondyle),
			Color: ColorGreen,
			Label: "Femoral Condyle Line",
		},
		Segment{
			From:  at(landmark.MedialTibialPlateau),
			To:    at(landmark.LateralTibialPlateau),
			Color: ColorRed,
			Label: "Tibial Plateau Line",
		},
	)

	return ov
}
