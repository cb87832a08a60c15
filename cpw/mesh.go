package cpw

import (
	"math"
	"math/cmplx"

	wrapper "github.com/ColumbiaCMB/layouteditor-wrapper"
)

// PathProfile describes the cross-section and bend geometry a uniform mesh
// pattern follows. Elements with a smoothed path and a constant width and
// gap fill one in and hand it to PathMesh.
type PathProfile struct {
	Start, End wrapper.Pair
	Bends      [][]wrapper.Pair
	Angles     []float64
	Corners    []wrapper.Pair
	Offsets    []wrapper.Pair
	// ArcRadius is the bend radius of the smoothed path.
	ArcRadius float64
	// Width and Gap give the waveguide cross-section.
	Width, Gap float64
	// Spacing is the hole pitch, along the path and between rows.
	Spacing float64
	// Border is the clearance between the ground-plane gap edge and the
	// first hole row.
	Border float64
	// Rows is the number of hole rows on each side of the line.
	Rows int
}

// PathMesh computes hole centers for a perforation pattern along a
// smoothed path, in the element's local frame. Straight runs get columns
// spaced Spacing apart, starting half a spacing from each end; runs
// shorter than one spacing get none, and runs that fit exactly one column
// get it centered. Rows sit at Width/2+Gap+Border from the centerline and
// repeat outward with the same pitch, mirrored on both sides. Bends get
// rings of holes at the radii that clear half a spacing, with the count
// chosen to match the straight-section density per unit arc length.
func PathMesh(p PathProfile) []wrapper.Pair {
	var centers []wrapper.Pair
	centerToFirstRow := p.Width/2 + p.Gap + p.Border
	// straight sections
	starts := []wrapper.Pair{p.Start}
	ends := make([]wrapper.Pair, 0, len(p.Bends)+1)
	for _, bend := range p.Bends {
		ends = append(ends, bend[0])
		starts = append(starts, bend[len(bend)-1])
	}
	ends = append(ends, p.End)
	for i := range starts {
		v := ends[i] - starts[i]
		phi := v.Angle()
		R := wrapper.Rotation(phi)
		for _, x := range meshColumns(v.Abs(), p.Spacing) {
			for row := 0; row < p.Rows; row++ {
				y := centerToFirstRow + float64(row)*p.Spacing
				centers = append(centers,
					starts[i]+R.Transform(wrapper.P(x, y)),
					starts[i]+R.Transform(wrapper.P(x, -y)))
			}
		}
	}
	// curved sections
	for row := 0; row < p.Rows; row++ {
		centerToRow := centerToFirstRow + float64(row)*p.Spacing
		for _, radius := range [2]float64{p.ArcRadius - centerToRow, p.ArcRadius + centerToRow} {
			if radius < p.Spacing/2 {
				continue
			}
			for j, angle := range p.Angles {
				n := int(math.Round(radius * math.Abs(angle) / p.Spacing))
				if n == 0 {
					// arc too short for a hole at this radius
					continue
				}
				var maxAngle float64
				if n > 1 {
					maxAngle = (1 - 1/float64(n)) * angle / 2
				}
				// bisector: from the arc center back through the corner
				base := (-p.Offsets[j]).Angle()
				for _, phi := range linspace(base-maxAngle, base+maxAngle, n) {
					centers = append(centers,
						p.Corners[j]+p.Offsets[j]+wrapper.C2P(cmplx.Rect(radius, phi)))
				}
			}
		}
	}
	return centers
}

// TrapezoidProfile describes a linearly tapering transition for
// TrapezoidMesh. Start and end carry their own width, gap and border, and
// the distance from the centerline to the first hole row interpolates
// linearly between the two.
type TrapezoidProfile struct {
	Start, End             wrapper.Pair
	StartWidth, EndWidth   float64
	StartGap, EndGap       float64
	StartBorder, EndBorder float64
	Spacing                float64
	Rows                   int
}

// TrapezoidMesh computes hole centers along a single tapering segment, in
// the element's local frame. Column placement follows the same rules as
// PathMesh; the row offset from the centerline varies linearly with the
// fractional position along the segment.
func TrapezoidMesh(p TrapezoidProfile) []wrapper.Pair {
	var centers []wrapper.Pair
	v := p.End - p.Start
	length := v.Abs()
	R := wrapper.Rotation(v.Angle())
	startToFirstRow := p.StartWidth/2 + p.StartGap + p.StartBorder
	differenceToFirstRow := p.EndWidth/2 + p.EndGap + p.EndBorder - startToFirstRow
	for _, x := range meshColumns(length, p.Spacing) {
		shift := startToFirstRow + differenceToFirstRow*x/length
		for row := 0; row < p.Rows; row++ {
			y := float64(row)*p.Spacing + shift
			centers = append(centers,
				p.Start+R.Transform(wrapper.P(x, y)),
				p.Start+R.Transform(wrapper.P(x, -y)))
		}
	}
	return centers
}

// meshColumns returns the column positions along a run of the given
// length: none if the run is shorter than one spacing, a single centered
// column if exactly one fits, and otherwise evenly spaced columns starting
// half a spacing from each end.
func meshColumns(length, spacing float64) []float64 {
	columns := int(math.Floor(length / spacing))
	switch {
	case columns <= 0:
		return nil
	case columns == 1:
		return []float64{length / 2}
	default:
		return linspace(spacing/2, length-spacing/2, columns)
	}
}
