package cpw

import (
	"fmt"
	"math"
	"math/cmplx"

	wrapper "github.com/ColumbiaCMB/layouteditor-wrapper"
)

// SmoothedPath is the result of replacing the interior corners of an
// outline by circular arcs. The four slices run in parallel, one entry per
// interior corner that actually bends; corners where the outline is
// straight contribute nothing and vanish from the point sequence.
type SmoothedPath struct {
	// Start and End are the outline's terminal points, which smoothing
	// never moves.
	Start, End wrapper.Pair
	// Bends holds the arc points replacing each retained corner, in path
	// order.
	Bends [][]wrapper.Pair
	// Angles holds the signed bend angle at each retained corner, in
	// (-pi, pi). The sign is the turn direction.
	Angles []float64
	// Corners holds the original outline position of each retained corner.
	Corners []wrapper.Pair
	// Offsets holds the vector from each corner to its arc center.
	Offsets []wrapper.Pair
	// Radius is the arc radius used for every bend.
	Radius float64
}

func validateOutline(points []wrapper.Pair) error {
	if len(points) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}
	for i, p := range points {
		if !p.IsValid() {
			return fmt.Errorf("%w at index %d", ErrInvalidPoint, i)
		}
	}
	for i := 1; i < len(points); i++ {
		if (points[i] - points[i-1]).Abs() <= _epsilon {
			return fmt.Errorf("%w between %d and %d", ErrDegenerateSegment, i-1, i)
		}
	}
	return nil
}

// SmoothPath computes arcs that connect the straight sections of an
// outline, tangent to both. The radius must be small enough that
// consecutive arcs do not overlap, which in practice means smaller than
// about half the shortest straight section; this is not validated. An
// outline that doubles back on itself (bend angle near ±pi) pushes the arc
// center towards infinity and is likewise a caller error.
//
// pointsPerRadian controls the arc sampling density; 60 (about one point
// per degree) is usually fine.
func SmoothPath(points []wrapper.Pair, radius, pointsPerRadian float64) (*SmoothedPath, error) {
	if err := validateOutline(points); err != nil {
		return nil, err
	}
	if radius <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrBadRadius, radius)
	}
	if pointsPerRadian <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrBadDensity, pointsPerRadian)
	}
	sp := &SmoothedPath{
		Start:  points[0],
		End:    points[len(points)-1],
		Radius: radius,
	}
	for i := 1; i < len(points)-1; i++ {
		before, current, after := points[i-1], points[i], points[i+1]
		in := current - before
		out := after - current
		// conj(in)*out carries the dot product in its real part and the
		// cross product in its imaginary part, so the phase is the signed
		// angle between the two segments.
		bendAngle := cmplx.Phase(cmplx.Conj(in.C()) * out.C())
		if wrapper.Is0(bendAngle) {
			tracer().Debugf("dropping collinear outline point %d at %s", i, current)
			continue
		}
		// distance from the corner to the arc center
		h := radius / math.Cos(bendAngle/2)
		// absolute direction from the corner to the arc center
		theta := in.Angle() + bendAngle/2 + math.Copysign(math.Pi/2, bendAngle)
		offset := wrapper.C2P(cmplx.Rect(h, theta))
		n := int(math.Ceil(math.Abs(bendAngle)*pointsPerRadian)) + 1
		if n < 2 {
			n = 2
		}
		// the arc sweeps the bend angle, centered at the direction from
		// the arc center back through the corner
		bend := make([]wrapper.Pair, n)
		for k, phi := range linspace(theta+math.Pi-bendAngle/2, theta+math.Pi+bendAngle/2, n) {
			bend[k] = current + offset + wrapper.C2P(cmplx.Rect(radius, phi))
		}
		sp.Bends = append(sp.Bends, bend)
		sp.Angles = append(sp.Angles, bendAngle)
		sp.Corners = append(sp.Corners, current)
		sp.Offsets = append(sp.Offsets, offset)
	}
	return sp, nil
}

// Points returns the full smoothed point sequence: the start point, every
// bend's arc points in order, and the end point. The original corners are
// never part of it.
func (sp *SmoothedPath) Points() []wrapper.Pair {
	points := []wrapper.Pair{sp.Start}
	for _, bend := range sp.Bends {
		points = append(points, bend...)
	}
	return append(points, sp.End)
}

// Length returns the length of the smoothed point sequence.
func (sp *SmoothedPath) Length() float64 {
	return polylineLength(sp.Points())
}

func polylineLength(points []wrapper.Pair) float64 {
	var length float64
	for i := 1; i < len(points); i++ {
		length += (points[i] - points[i-1]).Abs()
	}
	return length
}

// linspace returns n values evenly spaced over [lo, hi], inclusive. A
// single value lands on lo.
func linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	values := make([]float64, n)
	if n == 1 {
		values[0] = lo
		return values
	}
	step := (hi - lo) / float64(n-1)
	for i := range values {
		values[i] = lo + float64(i)*step
	}
	return values
}
