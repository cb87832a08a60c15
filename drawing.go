package wrapper

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDuplicateCellName indicates a cell name that is already registered.
	ErrDuplicateCellName = errors.New("cell name already exists")
	// ErrTooFewPoints indicates a shape with an insufficient point count.
	ErrTooFewPoints = errors.New("shape has too few points")
	// ErrBadDimension indicates a zero or negative width, height or radius.
	ErrBadDimension = errors.New("shape dimension must be positive")
)

// Default units: 1 nm database unit, 1 µm user unit, as in a fresh
// LayoutEditor drawing.
const (
	DefaultDatabaseUnit = 1e-9
	DefaultUserUnit     = 0.001
)

// Drawing is an in-memory drawing database. All element coordinates are
// stored as integers in database units; the public interface accepts and
// returns floating-point user units unless UseUserUnit is switched off.
//
// A Drawing is a single shared mutable resource. It provides no locking;
// callers must serialize all operations against one instance.
type Drawing struct {
	// DatabaseUnit is the physical size of one database unit, in meters.
	DatabaseUnit float64
	// UserUnit is the size of one database unit in user units, i.e. the
	// data resolution of the drawing.
	UserUnit float64
	// UseUserUnit selects whether the public interface speaks user units
	// (the default) or raw database units.
	UseUserUnit bool
	// AutoNumber appends a running index to every cell name passed to
	// AddCell, so repeated calls with the same name stay unique.
	AutoNumber bool

	// Layers hands out temporary layer numbers for boolean operations, so
	// callers do not have to hardcode scratch layers that might collide.
	Layers *LayerAllocator

	cellNumber int
	cells      []*Cell
	byName     map[string]*Cell
}

// NewDrawing creates an empty drawing with default units.
func NewDrawing() *Drawing {
	return &Drawing{
		DatabaseUnit: DefaultDatabaseUnit,
		UserUnit:     DefaultUserUnit,
		UseUserUnit:  true,
		Layers:       NewLayerAllocator(100),
		byName:       make(map[string]*Cell),
	}
}

// ToDatabaseUnits converts a length to integer database units, rounding to
// the nearest integer.
func (d *Drawing) ToDatabaseUnits(value float64) int {
	if d.UseUserUnit {
		return int(math.Round(value / d.UserUnit))
	}
	return int(math.Round(value))
}

// FromDatabaseUnits converts integer database units back to a length.
func (d *Drawing) FromDatabaseUnits(value int) float64 {
	if d.UseUserUnit {
		return float64(value) * d.UserUnit
	}
	return float64(value)
}

type dbPoint struct {
	X, Y int
}

func (d *Drawing) toDB(p Pair) dbPoint {
	return dbPoint{X: d.ToDatabaseUnits(p.X()), Y: d.ToDatabaseUnits(p.Y())}
}

func (d *Drawing) fromDB(p dbPoint) Pair {
	return P(d.FromDatabaseUnits(p.X), d.FromDatabaseUnits(p.Y))
}

// AddCell creates a new named cell. Cell names are unique within a drawing;
// a duplicate name is rejected with ErrDuplicateCellName unless AutoNumber
// is set, in which case every name gets a running suffix.
func (d *Drawing) AddCell(name string) (*Cell, error) {
	if d.AutoNumber {
		name = fmt.Sprintf("%s_%d", name, d.cellNumber)
		d.cellNumber++
	}
	if _, ok := d.byName[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateCellName, name)
	}
	cell := &Cell{drawing: d, name: name}
	d.cells = append(d.cells, cell)
	d.byName[name] = cell
	tracer().Debugf("added cell %q", name)
	return cell, nil
}

// Cells returns all cells in creation order.
func (d *Drawing) Cells() []*Cell {
	cells := make([]*Cell, len(d.cells))
	copy(cells, d.cells)
	return cells
}

// CellByName looks up a cell.
func (d *Drawing) CellByName(name string) (*Cell, bool) {
	cell, ok := d.byName[name]
	return cell, ok
}

// LayerAllocator hands out layer numbers, treating them as a scarce
// resource. Released numbers are reused before new ones are taken.
type LayerAllocator struct {
	next int
	free []int
}

// NewLayerAllocator starts allocating at the given first layer number.
func NewLayerAllocator(first int) *LayerAllocator {
	return &LayerAllocator{next: first}
}

// Acquire returns a layer number not currently handed out.
func (a *LayerAllocator) Acquire() int {
	if n := len(a.free); n > 0 {
		layer := a.free[n-1]
		a.free = a.free[:n-1]
		return layer
	}
	layer := a.next
	a.next++
	return layer
}

// Release returns a layer number to the allocator for reuse.
func (a *LayerAllocator) Release(layer int) {
	a.free = append(a.free, layer)
}
