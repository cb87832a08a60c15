// Package cpw draws co-planar-waveguide transmission-line components.
/*

A co-planar waveguide is a center conductor flanked by a gap on each side,
cut out of a ground plane. This package computes the geometry of such
structures and renders them through a drawing back-end: an interface with
operations for paths, polygons, partial annuli, circles and a boolean layer
subtraction. The back-end in the parent wrapper package satisfies the
interface; any other implementation with the same operations works too.

The engine has three parts.

Path smoothing: SmoothPath converts a polyline outline into a path whose
interior corners are replaced by circular arcs tangent to the adjacent
segments. Collinear interior points are dropped. The arc sampling density is
controlled in points per radian, so the point spacing along an arc is
roughly independent of the bend angle.

Mesh generation: PathMesh and TrapezoidMesh compute the centers of a
perforation pattern that tracks a waveguide's ground-plane cutout. Such
hole patterns relieve film stress in superconducting devices without
shorting the line. Straight runs get a rectangular grid in the segment
frame; arcs get rings of holes at matching arc-length density; tapering
transitions interpolate the row offset linearly along the taper.

Elements: Trace, CPW, CPWBlank, CPWElbowCoupler, CPWElbowCouplerBlank,
CPWTransition and CPWTransitionBlank each own their geometry, computed once
at construction, and draw themselves at any origin. WithMesh wraps an
element with a precomputed hole pattern. Sequence chains elements so that
each one begins where the previous one ends.

All geometry parameters are in user units. Elements store their points in a
local frame relative to their own origin; the origin is supplied at draw
time, so one element can be stamped at many positions.
*/
package cpw
