package cpw

import (
	wrapper "github.com/ColumbiaCMB/layouteditor-wrapper"
)

// FromIncrements returns points starting at origin and separated by the
// given increments. Outlines are often easier to state as differences
// between points than as absolute positions:
//
//	FromIncrements([]wrapper.Pair{wrapper.P(200, 0), wrapper.P(0, 300)}, wrapper.P(100, 0))
//
// yields (100,0), (300,0), (300,300).
func FromIncrements(increments []wrapper.Pair, origin wrapper.Pair) []wrapper.Pair {
	points := make([]wrapper.Pair, 0, len(increments)+1)
	points = append(points, origin)
	for _, increment := range increments {
		points = append(points, points[len(points)-1]+increment)
	}
	return points
}

// Sequence chains elements end to end. Drawing a sequence draws each
// element at a running origin that advances by the element's own
// local-frame end point, so element i+1 begins where element i ends.
type Sequence struct {
	elements []Element
}

// NewSequence builds a sequence over the given elements. The sequence
// owns its element list.
func NewSequence(elements ...Element) *Sequence {
	return &Sequence{elements: elements}
}

// Append adds elements to the end of the sequence.
func (s *Sequence) Append(elements ...Element) {
	s.elements = append(s.elements, elements...)
}

// Elements returns the chained elements in drawing order.
func (s *Sequence) Elements() []Element {
	elements := make([]Element, len(s.elements))
	copy(elements, s.elements)
	return elements
}

// Draw renders every element, advancing the origin between elements. The
// caller's origin value is never modified.
func (s *Sequence) Draw(cell Cell, origin wrapper.Pair, layers Layers) error {
	if len(s.elements) == 0 {
		return ErrEmptySequence
	}
	point := origin
	for _, element := range s.elements {
		if err := element.Draw(cell, point, layers); err != nil {
			return err
		}
		point += element.End()
	}
	return nil
}

// Start returns the first element's start point, or origin for an empty
// sequence.
func (s *Sequence) Start() wrapper.Pair {
	if len(s.elements) == 0 {
		return wrapper.Origin
	}
	return s.elements[0].Start()
}

// End returns the vector sum of all element end points, which is where
// the sequence ends relative to the drawing origin.
func (s *Sequence) End() wrapper.Pair {
	var end wrapper.Pair
	for _, element := range s.elements {
		end += element.End()
	}
	return end
}

// Span returns the vector from the sequence start to its end.
func (s *Sequence) Span() wrapper.Pair {
	return s.End() - s.Start()
}

// Length returns the total rendered length of all elements.
func (s *Sequence) Length() float64 {
	var length float64
	for _, element := range s.elements {
		length += element.Length()
	}
	return length
}
