package cpw

import (
	"fmt"
	"math/cmplx"

	wrapper "github.com/ColumbiaCMB/layouteditor-wrapper"
)

// TraceSpec describes a single positive conductor, usable for microstrip
// or for the center trace of a hybrid resonator.
type TraceSpec struct {
	Outline []wrapper.Pair
	Width   float64
	// StartOverlap and EndOverlap extend the rendered path beyond the
	// outline ends, continuing in the direction of the adjacent segment.
	// Overlaps guarantee contact with neighboring elements and are not
	// part of the element's start, end or length.
	StartOverlap, EndOverlap float64
	// Radius is the bend radius; zero selects 2*Width.
	Radius float64
	// PointsPerRadian is the arc sampling density; zero selects
	// DefaultPointsPerRadian.
	PointsPerRadian float64
	// RoundTo, if positive, snaps the outline to this grid before
	// smoothing.
	RoundTo float64
}

// Trace is a single positive trace drawn directly on the result layer.
type Trace struct {
	smoothed
	width        float64
	startOverlap float64
	endOverlap   float64
}

// NewTrace builds a trace from its spec.
func NewTrace(spec TraceSpec) (*Trace, error) {
	if spec.Width <= 0 {
		return nil, fmt.Errorf("%w: width %g", ErrBadWidth, spec.Width)
	}
	if spec.StartOverlap < 0 || spec.EndOverlap < 0 {
		return nil, fmt.Errorf("%w: overlap %g, %g", ErrBadWidth, spec.StartOverlap, spec.EndOverlap)
	}
	radius := spec.Radius
	if radius == 0 {
		radius = 2 * spec.Width
	}
	core, err := newSmoothed(spec.Outline, radius, spec.PointsPerRadian, spec.RoundTo)
	if err != nil {
		return nil, err
	}
	return &Trace{
		smoothed:     core,
		width:        spec.Width,
		startOverlap: spec.StartOverlap,
		endOverlap:   spec.EndOverlap,
	}, nil
}

// Width returns the trace width.
func (t *Trace) Width() float64 {
	return t.width
}

// Draw renders the trace, and its overlap extensions if any, on the result
// layer.
func (t *Trace) Draw(cell Cell, origin wrapper.Pair, layers Layers) error {
	points := shifted(t.Points(), origin)
	if err := cell.AddPath(points, layers.Result, t.width); err != nil {
		return err
	}
	if t.startOverlap > 0 {
		direction := (points[0] - points[1]).Angle()
		extension := []wrapper.Pair{
			points[0],
			points[0] + wrapper.C2P(cmplx.Rect(t.startOverlap, direction)),
		}
		if err := cell.AddPath(extension, layers.Result, t.width); err != nil {
			return err
		}
	}
	if t.endOverlap > 0 {
		last := len(points) - 1
		direction := (points[last] - points[last-1]).Angle()
		extension := []wrapper.Pair{
			points[last],
			points[last] + wrapper.C2P(cmplx.Rect(t.endOverlap, direction)),
		}
		if err := cell.AddPath(extension, layers.Result, t.width); err != nil {
			return err
		}
	}
	return nil
}

// CPWSpec describes a co-planar waveguide: a center trace of the given
// width with a ground-plane gap on each side.
type CPWSpec struct {
	Outline []wrapper.Pair
	Width   float64
	Gap     float64
	// Radius is the bend radius; zero selects Width/2+Gap, which keeps
	// the inner gap edge from pinching off.
	Radius          float64
	PointsPerRadian float64
	RoundTo         float64
}

// CPW is a co-planar waveguide realized by boolean subtraction: the trace
// is drawn on the negative layer, the trace plus gaps on the positive
// layer, and positive minus negative lands on the result layer.
type CPW struct {
	smoothed
	width float64
	gap   float64
}

// NewCPW builds a waveguide from its spec.
func NewCPW(spec CPWSpec) (*CPW, error) {
	core, width, gap, err := newCPWCore(spec)
	if err != nil {
		return nil, err
	}
	return &CPW{smoothed: core, width: width, gap: gap}, nil
}

// Width returns the center trace width.
func (c *CPW) Width() float64 { return c.width }

// Gap returns the ground-plane gap on each side of the trace.
func (c *CPW) Gap() float64 { return c.gap }

// Draw renders the waveguide. The subtraction clears the positive and
// negative layers afterwards, so they can be reused.
func (c *CPW) Draw(cell Cell, origin wrapper.Pair, layers Layers) error {
	points := shifted(c.Points(), origin)
	if err := cell.AddPath(points, layers.Negative, c.width); err != nil {
		return err
	}
	if err := cell.AddPath(points, layers.Positive, c.width+2*c.gap); err != nil {
		return err
	}
	return cell.Subtract(layers.Positive, layers.Negative, layers.Result, true)
}

// CPWBlank is the ground-plane cutout of a waveguide without the center
// trace, used where the trace is fabricated on another layer.
type CPWBlank struct {
	smoothed
	width float64
	gap   float64
}

// NewCPWBlank builds a blank waveguide cutout from its spec.
func NewCPWBlank(spec CPWSpec) (*CPWBlank, error) {
	core, width, gap, err := newCPWCore(spec)
	if err != nil {
		return nil, err
	}
	return &CPWBlank{smoothed: core, width: width, gap: gap}, nil
}

// Width returns the center trace width the cutout is sized for.
func (c *CPWBlank) Width() float64 { return c.width }

// Gap returns the ground-plane gap on each side.
func (c *CPWBlank) Gap() float64 { return c.gap }

// Draw renders the full-width cutout through the same subtraction as CPW,
// with nothing on the negative layer.
func (c *CPWBlank) Draw(cell Cell, origin wrapper.Pair, layers Layers) error {
	points := shifted(c.Points(), origin)
	if err := cell.AddPath(points, layers.Positive, c.width+2*c.gap); err != nil {
		return err
	}
	return cell.Subtract(layers.Positive, layers.Negative, layers.Result, true)
}

func newCPWCore(spec CPWSpec) (smoothed, float64, float64, error) {
	if spec.Width <= 0 || spec.Gap <= 0 {
		return smoothed{}, 0, 0, fmt.Errorf("%w: width %g, gap %g", ErrBadWidth, spec.Width, spec.Gap)
	}
	radius := spec.Radius
	if radius == 0 {
		radius = spec.Width/2 + spec.Gap
	}
	core, err := newSmoothed(spec.Outline, radius, spec.PointsPerRadian, spec.RoundTo)
	if err != nil {
		return smoothed{}, 0, 0, err
	}
	return core, spec.Width, spec.Gap, nil
}
