package cpw

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'cpw'
func tracer() tracing.Trace {
	return tracing.Select("cpw")
}

const _epsilon = 0.0000001

var (
	// ErrTooFewPoints indicates an outline with fewer than two points.
	ErrTooFewPoints = errors.New("outline needs at least two points")
	// ErrInvalidPoint indicates an outline coordinate that is NaN or Inf.
	ErrInvalidPoint = errors.New("outline has invalid point coordinate")
	// ErrDegenerateSegment indicates two consecutive outline points that
	// collapse to one point.
	ErrDegenerateSegment = errors.New("outline has zero-length segment")
	// ErrBadRadius indicates a non-positive bend radius.
	ErrBadRadius = errors.New("bend radius must be positive")
	// ErrBadDensity indicates a non-positive arc sampling density.
	ErrBadDensity = errors.New("points per radian must be positive")
	// ErrBadWidth indicates a non-positive trace width or gap.
	ErrBadWidth = errors.New("trace width and gap must be positive")
	// ErrBadMesh indicates non-positive mesh parameters.
	ErrBadMesh = errors.New("mesh spacing, hole radius and row count must be positive")
	// ErrUnsupportedTip indicates a coupler tip style that is not implemented.
	ErrUnsupportedTip = errors.New("square coupler tips are not implemented")
	// ErrUnsupportedMesh indicates an element kind that has no mesh pattern.
	ErrUnsupportedMesh = errors.New("element kind does not support meshing")
	// ErrEmptySequence indicates a draw of a sequence without elements.
	ErrEmptySequence = errors.New("sequence has no elements")
)
