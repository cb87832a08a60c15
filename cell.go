package wrapper

import (
	"fmt"
	"math"
)

// A circle is stored as a regular polygon; this is the vertex count used
// when the caller does not ask for a specific one. LayoutEditor treats any
// regular polygon with 8 or more points as a circle.
const defaultCirclePoints = 64

// Element is a primitive shape stored in a cell on a single layer.
type Element interface {
	// Layer returns the layer number the element lives on.
	Layer() int
	// Points returns the element's vertices, converted back from the
	// integer database representation.
	Points() []Pair
}

type element struct {
	drawing *Drawing
	layer   int
	pts     []dbPoint
}

func (e *element) Layer() int {
	return e.layer
}

func (e *element) Points() []Pair {
	points := make([]Pair, len(e.pts))
	for i, p := range e.pts {
		points[i] = e.drawing.fromDB(p)
	}
	return points
}

// polyline length over the stored points, in user units
func (e *element) pathLength() float64 {
	var length float64
	for i := 1; i < len(e.pts); i++ {
		a := e.drawing.fromDB(e.pts[i-1])
		b := e.drawing.fromDB(e.pts[i])
		length += (b - a).Abs()
	}
	return length
}

// Box is an axis-aligned rectangle. The stored points are the lower-left
// and upper-right corners.
type Box struct {
	element
}

// X returns the x-coordinate of the box origin.
func (b *Box) X() float64 { return b.Points()[0].X() }

// Y returns the y-coordinate of the box origin.
func (b *Box) Y() float64 { return b.Points()[0].Y() }

// Width returns the horizontal extent of the box.
func (b *Box) Width() float64 { return b.Points()[1].X() - b.Points()[0].X() }

// Height returns the vertical extent of the box.
func (b *Box) Height() float64 { return b.Points()[1].Y() - b.Points()[0].Y() }

// Perimeter returns the box perimeter.
func (b *Box) Perimeter() float64 { return 2*b.Width() + 2*b.Height() }

// Path is an open polyline with a width.
type Path struct {
	element
	width int
}

// Width returns the path width.
func (p *Path) Width() float64 { return p.drawing.FromDatabaseUnits(p.width) }

// Length returns the length of the path, not including the caps.
func (p *Path) Length() float64 { return p.pathLength() }

// Polygon is a closed shape; the first point is always repeated as the
// last point.
type Polygon struct {
	element
}

// Perimeter returns the length of the polygon boundary.
func (p *Polygon) Perimeter() float64 { return p.pathLength() }

// Circle is a regular polygon dense enough to count as a circle.
type Circle struct {
	element
}

// Center returns the circle center, snapped to the database grid.
func (c *Circle) Center() Pair {
	var sx, sy float64
	n := len(c.pts) - 1 // the last point repeats the first
	for _, p := range c.pts[:n] {
		sx += float64(p.X)
		sy += float64(p.Y)
	}
	center := dbPoint{X: int(math.Round(sx / float64(n))), Y: int(math.Round(sy / float64(n)))}
	return c.drawing.fromDB(center)
}

// Radius returns the circle radius.
func (c *Circle) Radius() float64 {
	return (c.Points()[0] - c.Center()).Abs()
}

// Cell is a named container of elements. Elements are appended in drawing
// order and traversed as a plain slice.
type Cell struct {
	drawing  *Drawing
	name     string
	elements []Element
}

// Name returns the cell name.
func (c *Cell) Name() string {
	return c.name
}

// Rename changes the cell name, keeping names unique within the drawing.
func (c *Cell) Rename(name string) error {
	if name == c.name {
		return nil
	}
	if _, ok := c.drawing.byName[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateCellName, name)
	}
	delete(c.drawing.byName, c.name)
	c.drawing.byName[name] = c
	c.name = name
	return nil
}

// Elements returns all elements in the cell, in drawing order.
func (c *Cell) Elements() []Element {
	elements := make([]Element, len(c.elements))
	copy(elements, c.elements)
	return elements
}

// ElementsOn returns the elements on one layer, in drawing order.
func (c *Cell) ElementsOn(layer int) []Element {
	var elements []Element
	for _, e := range c.elements {
		if e.Layer() == layer {
			elements = append(elements, e)
		}
	}
	return elements
}

func (c *Cell) String() string {
	return fmt.Sprintf("Cell %s: %d elements", c.name, len(c.elements))
}

// AddBox adds a rectangle with origin (x,y) extending right by width and up
// by height.
func (c *Cell) AddBox(x, y, width, height float64, layer int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: box %g x %g", ErrBadDimension, width, height)
	}
	box := &Box{element{
		drawing: c.drawing,
		layer:   layer,
		pts: []dbPoint{
			c.drawing.toDB(P(x, y)),
			c.drawing.toDB(P(x+width, y+height)),
		},
	}}
	c.elements = append(c.elements, box)
	return nil
}

// AddPath adds an open polyline with the given width. A width of zero
// creates a line without area, which boolean operations ignore.
func (c *Cell) AddPath(points []Pair, layer int, width float64) error {
	if len(points) < 2 {
		return fmt.Errorf("%w: path has %d", ErrTooFewPoints, len(points))
	}
	if width < 0 {
		return fmt.Errorf("%w: path width %g", ErrBadDimension, width)
	}
	path := &Path{
		element: element{drawing: c.drawing, layer: layer, pts: c.toDBPoints(points)},
		width:   c.drawing.ToDatabaseUnits(width),
	}
	c.elements = append(c.elements, path)
	return nil
}

// AddPolygon adds a closed polygon. If the given points do not close, the
// first point is appended to close the boundary.
func (c *Cell) AddPolygon(points []Pair, layer int) error {
	if len(points) < 3 {
		return fmt.Errorf("%w: polygon has %d", ErrTooFewPoints, len(points))
	}
	pts := c.toDBPoints(points)
	if pts[0] != pts[len(pts)-1] {
		pts = append(pts, pts[0])
	}
	polygon := &Polygon{element{drawing: c.drawing, layer: layer, pts: pts}}
	c.elements = append(c.elements, polygon)
	return nil
}

// AddPolygonArc adds a polygon in the shape of a full or partial annulus.
// Angles are in degrees, measured counterclockwise from the x-axis, and are
// taken mod 360; equal start and stop angles produce a full annulus. An
// inner radius of zero produces a pie wedge.
func (c *Cell) AddPolygonArc(center Pair, innerRadius, outerRadius float64, layer int, startAngle, stopAngle float64) error {
	if outerRadius <= 0 || innerRadius < 0 || innerRadius >= outerRadius {
		return fmt.Errorf("%w: annulus radii %g, %g", ErrBadDimension, innerRadius, outerRadius)
	}
	sweep := math.Mod(stopAngle-startAngle, 360)
	if sweep <= 0 {
		sweep += 360
	}
	steps := int(math.Ceil(sweep / 360 * defaultCirclePoints))
	if steps < 8 {
		steps = 8
	}
	var points []Pair
	for i := 0; i <= steps; i++ {
		phi := (startAngle + sweep*float64(i)/float64(steps)) * Deg2Rad
		points = append(points, center+P(outerRadius*math.Cos(phi), outerRadius*math.Sin(phi)))
	}
	if innerRadius > 0 {
		for i := steps; i >= 0; i-- {
			phi := (startAngle + sweep*float64(i)/float64(steps)) * Deg2Rad
			points = append(points, center+P(innerRadius*math.Cos(phi), innerRadius*math.Sin(phi)))
		}
	} else {
		points = append(points, center)
	}
	return c.AddPolygon(points, layer)
}

// AddCircle adds a circle as a regular polygon with the given number of
// unique points; zero selects the default.
func (c *Cell) AddCircle(origin Pair, radius float64, layer int, numberOfPoints int) error {
	if radius <= 0 {
		return fmt.Errorf("%w: circle radius %g", ErrBadDimension, radius)
	}
	if numberOfPoints <= 0 {
		numberOfPoints = defaultCirclePoints
	}
	pts := make([]dbPoint, 0, numberOfPoints+1)
	for i := 0; i < numberOfPoints; i++ {
		phi := 2 * math.Pi * float64(i) / float64(numberOfPoints)
		pts = append(pts, c.drawing.toDB(origin+P(radius*math.Cos(phi), radius*math.Sin(phi))))
	}
	pts = append(pts, pts[0])
	circle := &Circle{element{drawing: c.drawing, layer: layer, pts: pts}}
	c.elements = append(c.elements, circle)
	return nil
}

func (c *Cell) toDBPoints(points []Pair) []dbPoint {
	pts := make([]dbPoint, len(points))
	for i, p := range points {
		pts[i] = c.drawing.toDB(p)
	}
	return pts
}
