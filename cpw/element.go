package cpw

import (
	wrapper "github.com/ColumbiaCMB/layouteditor-wrapper"
)

// DefaultPointsPerRadian is the arc sampling density used when a spec
// leaves it at zero, about one point per degree.
const DefaultPointsPerRadian = 60

// Layers names the back-end layers an element draws on. Positive and
// Negative are scratch layers for the boolean subtraction; the final
// geometry ends up on Result. Both scratch layers are cleared by the
// subtraction, so one pair can be shared by a whole sequence.
type Layers struct {
	Positive, Negative, Result int
}

// Cell is the drawing back-end capability set the elements need. The
// wrapper package's Cell satisfies it; so does any fake used for testing.
// All coordinates are user units.
type Cell interface {
	AddPath(points []wrapper.Pair, layer int, width float64) error
	AddPolygon(points []wrapper.Pair, layer int) error
	AddPolygonArc(center wrapper.Pair, innerRadius, outerRadius float64, layer int, startAngle, stopAngle float64) error
	AddCircle(origin wrapper.Pair, radius float64, layer int, numberOfPoints int) error
	Subtract(positiveLayer, negativeLayer, resultLayer int, delete bool) error
}

// Element is a drawable waveguide component. An element's geometry lives
// in a local frame relative to its own origin and is immutable after
// construction; Draw may be called any number of times with different
// origins.
type Element interface {
	// Start returns the local-frame start point.
	Start() wrapper.Pair
	// End returns the local-frame end point. Sequences chain elements by
	// advancing the drawing origin by this value.
	End() wrapper.Pair
	// Points returns the full local-frame point sequence.
	Points() []wrapper.Pair
	// Length returns the rendered path length excluding any overlaps.
	Length() float64
	// Draw renders the element into the cell at the given origin.
	Draw(cell Cell, origin wrapper.Pair, layers Layers) error
}

// shared core of all elements built on a smoothed outline
type smoothed struct {
	path *SmoothedPath
}

func newSmoothed(outline []wrapper.Pair, radius, pointsPerRadian, roundTo float64) (smoothed, error) {
	if pointsPerRadian == 0 {
		pointsPerRadian = DefaultPointsPerRadian
	}
	if roundTo > 0 {
		snapped := make([]wrapper.Pair, len(outline))
		for i, p := range outline {
			snapped[i] = p.RoundedTo(roundTo)
		}
		outline = snapped
	}
	path, err := SmoothPath(outline, radius, pointsPerRadian)
	if err != nil {
		return smoothed{}, err
	}
	return smoothed{path: path}, nil
}

func (s *smoothed) Start() wrapper.Pair {
	return s.path.Start
}

func (s *smoothed) End() wrapper.Pair {
	return s.path.End
}

func (s *smoothed) Points() []wrapper.Pair {
	return s.path.Points()
}

func (s *smoothed) Length() float64 {
	return s.path.Length()
}

// Path exposes the underlying smoothed path.
func (s *smoothed) Path() *SmoothedPath {
	return s.path
}

func shifted(points []wrapper.Pair, origin wrapper.Pair) []wrapper.Pair {
	out := make([]wrapper.Pair, len(points))
	for i, p := range points {
		out[i] = origin + p
	}
	return out
}
