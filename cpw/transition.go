package cpw

import (
	"fmt"

	wrapper "github.com/ColumbiaCMB/layouteditor-wrapper"
)

// TransitionSpec describes a linear taper between two waveguide
// cross-sections, e.g. from a bonding pad down to the resonator line.
type TransitionSpec struct {
	Start, End           wrapper.Pair
	StartWidth, EndWidth float64
	StartGap, EndGap     float64
	RoundTo              float64
}

// CPWTransition tapers the gap of a waveguide linearly between two
// cross-sections. It is drawn as two polygons, one gap trapezoid above
// the centerline and one below, directly on the result layer.
type CPWTransition struct {
	transitionCore
}

// NewCPWTransition builds a transition from its spec.
func NewCPWTransition(spec TransitionSpec) (*CPWTransition, error) {
	core, err := newTransitionCore(spec)
	if err != nil {
		return nil, err
	}
	return &CPWTransition{core}, nil
}

// Draw renders the two gap trapezoids.
func (t *CPWTransition) Draw(cell Cell, origin wrapper.Pair, layers Layers) error {
	length := t.Length()
	upper := []wrapper.Pair{
		wrapper.P(0, t.startWidth/2),
		wrapper.P(0, t.startWidth/2+t.startGap),
		wrapper.P(length, t.endWidth/2+t.endGap),
		wrapper.P(length, t.endWidth/2),
	}
	T := t.frame(origin)
	if err := cell.AddPolygon(transformAll(T, upper), layers.Result); err != nil {
		return err
	}
	return cell.AddPolygon(transformAll(T, mirrored(upper)), layers.Result)
}

// CPWTransitionBlank is the cutout-only taper: one full-width trapezoid
// spanning trace and gaps.
type CPWTransitionBlank struct {
	transitionCore
}

// NewCPWTransitionBlank builds a blank transition from its spec.
func NewCPWTransitionBlank(spec TransitionSpec) (*CPWTransitionBlank, error) {
	core, err := newTransitionCore(spec)
	if err != nil {
		return nil, err
	}
	return &CPWTransitionBlank{core}, nil
}

// Draw renders the full-width taper polygon.
func (t *CPWTransitionBlank) Draw(cell Cell, origin wrapper.Pair, layers Layers) error {
	length := t.Length()
	poly := []wrapper.Pair{
		wrapper.P(0, t.startWidth/2+t.startGap),
		wrapper.P(length, t.endWidth/2+t.endGap),
		wrapper.P(length, -t.endWidth/2-t.endGap),
		wrapper.P(0, -t.startWidth/2-t.startGap),
	}
	return cell.AddPolygon(transformAll(t.frame(origin), poly), layers.Result)
}

type transitionCore struct {
	start, end           wrapper.Pair
	startWidth, endWidth float64
	startGap, endGap     float64
}

func newTransitionCore(spec TransitionSpec) (transitionCore, error) {
	if spec.StartWidth <= 0 || spec.EndWidth <= 0 || spec.StartGap <= 0 || spec.EndGap <= 0 {
		return transitionCore{}, fmt.Errorf("%w: widths %g, %g, gaps %g, %g",
			ErrBadWidth, spec.StartWidth, spec.EndWidth, spec.StartGap, spec.EndGap)
	}
	start, end := spec.Start, spec.End
	if spec.RoundTo > 0 {
		start = start.RoundedTo(spec.RoundTo)
		end = end.RoundedTo(spec.RoundTo)
	}
	if err := validateOutline([]wrapper.Pair{start, end}); err != nil {
		return transitionCore{}, err
	}
	return transitionCore{
		start:      start,
		end:        end,
		startWidth: spec.StartWidth,
		endWidth:   spec.EndWidth,
		startGap:   spec.StartGap,
		endGap:     spec.EndGap,
	}, nil
}

func (t *transitionCore) Start() wrapper.Pair { return t.start }

func (t *transitionCore) End() wrapper.Pair { return t.end }

func (t *transitionCore) Points() []wrapper.Pair {
	return []wrapper.Pair{t.start, t.end}
}

func (t *transitionCore) Length() float64 {
	return (t.end - t.start).Abs()
}

// StartWidth returns the trace width at the start.
func (t *transitionCore) StartWidth() float64 { return t.startWidth }

// EndWidth returns the trace width at the end.
func (t *transitionCore) EndWidth() float64 { return t.endWidth }

// StartGap returns the gap at the start.
func (t *transitionCore) StartGap() float64 { return t.startGap }

// EndGap returns the gap at the end.
func (t *transitionCore) EndGap() float64 { return t.endGap }

// frame maps taper-local coordinates (x along the taper) into the drawing:
// rotate to the segment direction, then translate to the shifted start.
func (t *transitionCore) frame(origin wrapper.Pair) wrapper.AT {
	phi := (t.end - t.start).Angle()
	return wrapper.Rotation(phi).Combine(wrapper.Translation(origin + t.start))
}

func transformAll(T wrapper.AT, points []wrapper.Pair) []wrapper.Pair {
	out := make([]wrapper.Pair, len(points))
	for i, p := range points {
		out[i] = T.Transform(p)
	}
	return out
}

func mirrored(points []wrapper.Pair) []wrapper.Pair {
	out := make([]wrapper.Pair, len(points))
	for i, p := range points {
		out[i] = wrapper.P(p.X(), -p.Y())
	}
	return out
}
