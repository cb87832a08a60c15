package cpw

import (
	"fmt"
	"math"

	wrapper "github.com/ColumbiaCMB/layouteditor-wrapper"
)

// TipStyle selects how the open end of an elbow coupler is terminated.
type TipStyle int

const (
	// TipRound closes the gap around the tip with a half annulus.
	TipRound TipStyle = iota
	// TipSquare is not implemented.
	TipSquare
)

// ElbowCouplerSpec describes an L-shaped coupler: an open tip, a corner,
// and a joint where the coupler meets the rest of the circuit. The outline
// runs tip, elbow, joint, so the element's end is the joint.
type ElbowCouplerSpec struct {
	TipPoint, ElbowPoint, JointPoint wrapper.Pair

	Width float64
	Gap   float64
	// Tip selects the termination; only TipRound is supported.
	Tip TipStyle
	// Radius is the bend radius; zero selects Width/2+Gap.
	Radius          float64
	PointsPerRadian float64
	RoundTo         float64
}

// CPWElbowCoupler is a waveguide elbow with a rounded open end, drawn by
// boolean subtraction like CPW plus a partial annulus closing the gap
// around the tip.
type CPWElbowCoupler struct {
	smoothed
	width float64
	gap   float64
}

// NewCPWElbowCoupler builds an elbow coupler from its spec.
func NewCPWElbowCoupler(spec ElbowCouplerSpec) (*CPWElbowCoupler, error) {
	core, width, gap, err := newCouplerCore(spec)
	if err != nil {
		return nil, err
	}
	return &CPWElbowCoupler{smoothed: core, width: width, gap: gap}, nil
}

// Width returns the center trace width.
func (c *CPWElbowCoupler) Width() float64 { return c.width }

// Gap returns the ground-plane gap on each side.
func (c *CPWElbowCoupler) Gap() float64 { return c.gap }

// Draw renders the coupler. The rounded tip is a half annulus from the
// trace edge to the gap edge, spanning ±90° around the tip direction; it
// goes directly on the result layer so the subtraction leaves it alone.
func (c *CPWElbowCoupler) Draw(cell Cell, origin wrapper.Pair, layers Layers) error {
	points := shifted(c.Points(), origin)
	if err := cell.AddPath(points, layers.Negative, c.width); err != nil {
		return err
	}
	if err := cell.AddPath(points, layers.Positive, c.width+2*c.gap); err != nil {
		return err
	}
	theta := (points[0] - points[1]).Angle() * 180 / math.Pi
	err := cell.AddPolygonArc(points[0], c.width/2, c.width/2+c.gap, layers.Result, theta-90, theta+90)
	if err != nil {
		return err
	}
	return cell.Subtract(layers.Positive, layers.Negative, layers.Result, true)
}

// CPWElbowCouplerBlank is the cutout-only variant: the full-width path on
// the result layer with a solid half disc capping the tip, and no
// subtraction.
type CPWElbowCouplerBlank struct {
	smoothed
	width float64
	gap   float64
}

// NewCPWElbowCouplerBlank builds a blank elbow coupler from its spec.
func NewCPWElbowCouplerBlank(spec ElbowCouplerSpec) (*CPWElbowCouplerBlank, error) {
	core, width, gap, err := newCouplerCore(spec)
	if err != nil {
		return nil, err
	}
	return &CPWElbowCouplerBlank{smoothed: core, width: width, gap: gap}, nil
}

// Width returns the center trace width the cutout is sized for.
func (c *CPWElbowCouplerBlank) Width() float64 { return c.width }

// Gap returns the ground-plane gap on each side.
func (c *CPWElbowCouplerBlank) Gap() float64 { return c.gap }

// Draw renders the cutout and its rounded tip cap on the result layer.
func (c *CPWElbowCouplerBlank) Draw(cell Cell, origin wrapper.Pair, layers Layers) error {
	points := shifted(c.Points(), origin)
	if err := cell.AddPath(points, layers.Result, c.width+2*c.gap); err != nil {
		return err
	}
	theta := (points[0] - points[1]).Angle() * 180 / math.Pi
	return cell.AddPolygonArc(points[0], 0, c.width/2+c.gap, layers.Result, theta-90, theta+90)
}

func newCouplerCore(spec ElbowCouplerSpec) (smoothed, float64, float64, error) {
	if spec.Tip != TipRound {
		return smoothed{}, 0, 0, ErrUnsupportedTip
	}
	if spec.Width <= 0 || spec.Gap <= 0 {
		return smoothed{}, 0, 0, fmt.Errorf("%w: width %g, gap %g", ErrBadWidth, spec.Width, spec.Gap)
	}
	radius := spec.Radius
	if radius == 0 {
		radius = spec.Width/2 + spec.Gap
	}
	outline := []wrapper.Pair{spec.TipPoint, spec.ElbowPoint, spec.JointPoint}
	core, err := newSmoothed(outline, radius, spec.PointsPerRadian, spec.RoundTo)
	if err != nil {
		return smoothed{}, 0, 0, err
	}
	return core, spec.Width, spec.Gap, nil
}
