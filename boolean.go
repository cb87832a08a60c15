package wrapper

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"
)

// vertex count for the disks used to fill path joints
const jointPoints = 32

// Subtract performs the boolean operation positive - negative = result on
// the given layers. The resulting shapes are created as polygons on the
// result layer. When delete is set, all shapes on the positive and negative
// layers are removed afterwards, so the layers can be reused by subsequent
// operations.
func (c *Cell) Subtract(positiveLayer, negativeLayer, resultLayer int, delete bool) error {
	positive := c.layerPolygon(positiveLayer)
	negative := c.layerPolygon(negativeLayer)
	difference := positive.Construct(polyclip.DIFFERENCE, negative)
	tracer().Debugf("subtract %d - %d -> %d: %d contours",
		positiveLayer, negativeLayer, resultLayer, len(difference))
	for _, ring := range assembleRings(difference) {
		if len(ring) < 3 {
			continue
		}
		pts := make([]dbPoint, 0, len(ring)+1)
		for _, p := range ring {
			pts = append(pts, dbPoint{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))})
		}
		pts = append(pts, pts[0])
		c.elements = append(c.elements, &Polygon{element{
			drawing: c.drawing,
			layer:   resultLayer,
			pts:     pts,
		}})
	}
	if delete {
		c.deleteLayers(positiveLayer, negativeLayer)
	}
	return nil
}

// assembleRings turns the contour soup of a boolean result into solid
// rings. Contours at even nesting depth bound filled regions; contours at
// odd depth are holes and get keyholed into their immediately enclosing
// ring, so a shoelace sum over the emitted rings nets out the holes.
func assembleRings(contours polyclip.Polygon) []polyclip.Contour {
	depth := make([]int, len(contours))
	for i := range contours {
		if len(contours[i]) == 0 {
			continue
		}
		for j := range contours {
			if i != j && contourContains(contours[j], contours[i][0]) {
				depth[i]++
			}
		}
	}
	holes := make(map[int][]int)
	var outlines []int
	for i := range contours {
		if len(contours[i]) == 0 {
			continue
		}
		if depth[i]%2 == 0 {
			outlines = append(outlines, i)
			continue
		}
		// exactly one contour at depth-1 contains the hole: its parent
		for j := range contours {
			if j != i && depth[j] == depth[i]-1 && contourContains(contours[j], contours[i][0]) {
				holes[j] = append(holes[j], i)
				break
			}
		}
	}
	rings := make([]polyclip.Contour, 0, len(outlines))
	for _, i := range outlines {
		ring := contours[i]
		for _, h := range holes[i] {
			hole := contours[h]
			if signedArea(ring)*signedArea(hole) > 0 {
				hole = reversed(hole)
			}
			ring = keyhole(ring, hole)
		}
		rings = append(rings, ring)
	}
	return rings
}

// keyhole stitches a hole into a ring through a zero-width cut at the
// closest vertex pair. The cut is traversed once in each direction and
// contributes no area.
func keyhole(ring, hole polyclip.Contour) polyclip.Contour {
	ri, hi := 0, 0
	best := math.Inf(1)
	for i, rp := range ring {
		for j, hp := range hole {
			d := (rp.X-hp.X)*(rp.X-hp.X) + (rp.Y-hp.Y)*(rp.Y-hp.Y)
			if d < best {
				best, ri, hi = d, i, j
			}
		}
	}
	out := make(polyclip.Contour, 0, len(ring)+len(hole)+2)
	out = append(out, ring[:ri+1]...)
	for k := 0; k <= len(hole); k++ {
		out = append(out, hole[(hi+k)%len(hole)])
	}
	return append(out, ring[ri:]...)
}

func signedArea(c polyclip.Contour) float64 {
	var sum float64
	for i := range c {
		a, b := c[i], c[(i+1)%len(c)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

func reversed(c polyclip.Contour) polyclip.Contour {
	out := make(polyclip.Contour, len(c))
	for i, p := range c {
		out[len(c)-1-i] = p
	}
	return out
}

// ray casting along +x; boolean results never place one contour's vertex
// on another contour's edge, so the boundary case needs no special care
func contourContains(c polyclip.Contour, p polyclip.Point) bool {
	inside := false
	for i := range c {
		a, b := c[i], c[(i+1)%len(c)]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < a.X+(b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) {
			inside = !inside
		}
	}
	return inside
}

func (c *Cell) deleteLayers(layers ...int) {
	kept := c.elements[:0]
	for _, e := range c.elements {
		doomed := false
		for _, layer := range layers {
			if e.Layer() == layer {
				doomed = true
				break
			}
		}
		if !doomed {
			kept = append(kept, e)
		}
	}
	c.elements = kept
}

// layerPolygon collects every shape on a layer into one polygon, in
// database units.
func (c *Cell) layerPolygon(layer int) polyclip.Polygon {
	var merged polyclip.Polygon
	for _, e := range c.elements {
		if e.Layer() != layer {
			continue
		}
		shape := elementPolygon(e)
		if len(shape) == 0 {
			continue
		}
		if len(merged) == 0 {
			merged = shape
		} else {
			merged = merged.Construct(polyclip.UNION, shape)
		}
	}
	return merged
}

func elementPolygon(e Element) polyclip.Polygon {
	switch el := e.(type) {
	case *Box:
		ll, ur := el.pts[0], el.pts[1]
		return polyclip.Polygon{{
			{X: float64(ll.X), Y: float64(ll.Y)},
			{X: float64(ur.X), Y: float64(ll.Y)},
			{X: float64(ur.X), Y: float64(ur.Y)},
			{X: float64(ll.X), Y: float64(ur.Y)},
		}}
	case *Polygon:
		return polyclip.Polygon{contourOf(el.pts[:len(el.pts)-1])}
	case *Circle:
		return polyclip.Polygon{contourOf(el.pts[:len(el.pts)-1])}
	case *Path:
		return strokePath(el.pts, float64(el.width))
	}
	return nil
}

func contourOf(pts []dbPoint) polyclip.Contour {
	contour := make(polyclip.Contour, len(pts))
	for i, p := range pts {
		contour[i] = polyclip.Point{X: float64(p.X), Y: float64(p.Y)}
	}
	return contour
}

// strokePath converts a wide polyline into an area: one rectangle per
// segment, unioned with a disk at every interior vertex so that bends stay
// filled. Caps are flat. Zero-width paths have no area.
func strokePath(pts []dbPoint, width float64) polyclip.Polygon {
	if width <= 0 || len(pts) < 2 {
		return nil
	}
	half := width / 2
	var stroke polyclip.Polygon
	for i := 1; i < len(pts); i++ {
		a := complex(float64(pts[i-1].X), float64(pts[i-1].Y))
		b := complex(float64(pts[i].X), float64(pts[i].Y))
		v := b - a
		length := cmplxAbs(v)
		if length == 0 {
			continue
		}
		// unit normal, scaled to the half width
		n := complex(-imag(v), real(v)) * complex(half/length, 0)
		rect := polyclip.Polygon{{
			pcPoint(a + n), pcPoint(b + n), pcPoint(b - n), pcPoint(a - n),
		}}
		stroke = unionInto(stroke, rect)
		if i < len(pts)-1 {
			stroke = unionInto(stroke, diskAt(b, half))
		}
	}
	return stroke
}

func unionInto(acc, shape polyclip.Polygon) polyclip.Polygon {
	if len(acc) == 0 {
		return shape
	}
	return acc.Construct(polyclip.UNION, shape)
}

func diskAt(center complex128, radius float64) polyclip.Polygon {
	contour := make(polyclip.Contour, jointPoints)
	for i := range contour {
		phi := 2 * math.Pi * float64(i) / jointPoints
		contour[i] = polyclip.Point{
			X: real(center) + radius*math.Cos(phi),
			Y: imag(center) + radius*math.Sin(phi),
		}
	}
	return polyclip.Polygon{contour}
}

func pcPoint(c complex128) polyclip.Point {
	return polyclip.Point{X: real(c), Y: imag(c)}
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}
