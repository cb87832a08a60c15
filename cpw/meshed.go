package cpw

import (
	"fmt"

	wrapper "github.com/ColumbiaCMB/layouteditor-wrapper"
)

// MeshOptions describes the perforation pattern stamped around a meshed
// element.
type MeshOptions struct {
	// Spacing is the hole pitch.
	Spacing float64
	// Border is the clearance between the gap edge and the first hole
	// row. Transitions may instead give distinct StartBorder/EndBorder;
	// when those are zero, Border is used for both.
	Border                 float64
	StartBorder, EndBorder float64
	// HoleRadius is the radius of each mesh hole.
	HoleRadius float64
	// CirclePoints is the vertex count per hole; zero selects the
	// back-end default.
	CirclePoints int
	// Rows is the number of hole rows on each side of the line.
	Rows int
}

// Meshed wraps an element with a precomputed perforation pattern. Drawing
// a Meshed draws the base element and then stamps a circle at every hole
// center on the result layer.
type Meshed struct {
	Element
	centers      []wrapper.Pair
	holeRadius   float64
	circlePoints int
}

// WithMesh attaches a mesh pattern to an element. The hole centers are
// computed once, in the element's local frame. CPW and CPWBlank get a
// pattern that follows the smoothed path; the transitions get a linearly
// interpolated pattern. Trace and the elbow couplers have no mesh pattern
// and are rejected.
func WithMesh(e Element, opts MeshOptions) (*Meshed, error) {
	if opts.Spacing <= 0 || opts.HoleRadius <= 0 || opts.Rows <= 0 {
		return nil, fmt.Errorf("%w: spacing %g, hole radius %g, rows %d",
			ErrBadMesh, opts.Spacing, opts.HoleRadius, opts.Rows)
	}
	var centers []wrapper.Pair
	switch el := e.(type) {
	case *CPW:
		centers = PathMesh(pathProfile(el.Path(), el.Width(), el.Gap(), opts))
	case *CPWBlank:
		centers = PathMesh(pathProfile(el.Path(), el.Width(), el.Gap(), opts))
	case *CPWTransition:
		centers = TrapezoidMesh(trapezoidProfile(&el.transitionCore, opts))
	case *CPWTransitionBlank:
		centers = TrapezoidMesh(trapezoidProfile(&el.transitionCore, opts))
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedMesh, e)
	}
	tracer().Debugf("meshed %T with %d holes", e, len(centers))
	return &Meshed{
		Element:      e,
		centers:      centers,
		holeRadius:   opts.HoleRadius,
		circlePoints: opts.CirclePoints,
	}, nil
}

// MeshCenters returns the local-frame hole centers.
func (m *Meshed) MeshCenters() []wrapper.Pair {
	centers := make([]wrapper.Pair, len(m.centers))
	copy(centers, m.centers)
	return centers
}

// HoleRadius returns the radius of each mesh hole.
func (m *Meshed) HoleRadius() float64 {
	return m.holeRadius
}

// Draw renders the base element, then the mesh holes on the result layer.
func (m *Meshed) Draw(cell Cell, origin wrapper.Pair, layers Layers) error {
	if err := m.Element.Draw(cell, origin, layers); err != nil {
		return err
	}
	for _, center := range m.centers {
		if err := cell.AddCircle(origin+center, m.holeRadius, layers.Result, m.circlePoints); err != nil {
			return err
		}
	}
	return nil
}

func pathProfile(path *SmoothedPath, width, gap float64, opts MeshOptions) PathProfile {
	return PathProfile{
		Start:     path.Start,
		End:       path.End,
		Bends:     path.Bends,
		Angles:    path.Angles,
		Corners:   path.Corners,
		Offsets:   path.Offsets,
		ArcRadius: path.Radius,
		Width:     width,
		Gap:       gap,
		Spacing:   opts.Spacing,
		Border:    opts.Border,
		Rows:      opts.Rows,
	}
}

func trapezoidProfile(t *transitionCore, opts MeshOptions) TrapezoidProfile {
	startBorder, endBorder := opts.StartBorder, opts.EndBorder
	if startBorder == 0 {
		startBorder = opts.Border
	}
	if endBorder == 0 {
		endBorder = opts.Border
	}
	return TrapezoidProfile{
		Start:       t.start,
		End:         t.end,
		StartWidth:  t.startWidth,
		EndWidth:    t.endWidth,
		StartGap:    t.startGap,
		EndGap:      t.endGap,
		StartBorder: startBorder,
		EndBorder:   endBorder,
		Spacing:     opts.Spacing,
		Rows:        opts.Rows,
	}
}
