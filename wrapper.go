/*
Package wrapper provides the stateless drawing layer used to lay out
co-planar-waveguide chips: a 2D point type, affine transformations,
conversion between floating-point user units and integer database units,
cells holding primitive layer elements, and boolean layer subtraction.

The geometry engine for transmission-line components lives in the cpw
subpackage and talks to this package through a small drawing interface.
*/
package wrapper

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'wrapper'
func tracer() tracing.Trace {
	return tracing.Select("wrapper")
}

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = 0.01745329251

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// === Pair Data Type ========================================================

// Pair is a 2D-point, represented as a complex number.
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(float64(0), float64(0))

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// C2P returns a Pair from a complex number.
func C2P(c complex128) Pair {
	if cmplx.IsNaN(c) || cmplx.IsInf(c) {
		tracer().Errorf("created pair for complex.NaN")
		return P(0, 0)
	}
	return P(real(c), imag(c))
}

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// F is a quick notation for getting float values from a pair.
func (p Pair) F() (float64, float64) {
	px := real(p.C())
	py := imag(p.C())
	return px, py
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p.C())
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p.C())
}

// Zap rounds x-part and y-part to Epsilon.
func (p Pair) Zap() Pair {
	p = P(Zap(p.X()), Zap(p.Y()))
	return p
}

// IsOrigin is a predicate: is this pair origin?
func (p Pair) IsOrigin() bool {
	return p.Equal(Origin)
}

// IsValid is a predicate: are both coordinates finite numbers?
func (p Pair) IsValid() bool {
	c := p.C()
	return !cmplx.IsNaN(c) && !cmplx.IsInf(c)
}

// Equal compares two pairs.
func (p Pair) Equal(p2 Pair) bool {
	p2 = p2.Zap()
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// Scaled returns a new pair scaled by factor a.
func (p Pair) Scaled(a float64) Pair {
	return P(p.X()*a, p.Y()*a).Zap()
}

// Shifted returns a new pair translated by v.
func (p Pair) Shifted(v Pair) Pair {
	T := Translation(v)
	return T.Transform(p).Zap()
}

// Rotated returns a new pair rotated around origin by theta (counterclockwise).
func (p Pair) Rotated(theta float64) Pair {
	T := Rotation(theta)
	return T.Transform(p).Zap()
}

// RoundedTo snaps both coordinates of a pair to a grid of the given pitch.
// Layout databases store integer coordinates, so snapping outline points to
// the manufacturing grid before any geometry is derived from them keeps
// derived points consistent between elements.
func (p Pair) RoundedTo(grid float64) Pair {
	return P(grid*math.Round(p.X()/grid), grid*math.Round(p.Y()/grid))
}

// Abs returns the distance of a pair from the origin.
func (p Pair) Abs() float64 {
	return cmplx.Abs(p.C())
}

// Angle returns the direction angle of a pair, in (-pi, pi].
func (p Pair) Angle() float64 {
	return cmplx.Phase(p.C())
}
