package cpw

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	wrapper "github.com/ColumbiaCMB/layouteditor-wrapper"
)

// recorder is a fake drawing back-end capturing every call.
type recorder struct {
	paths     []recordedPath
	polygons  []recordedPolygon
	arcs      []recordedArc
	circles   []recordedCircle
	subtracts []recordedSubtract
}

type recordedPath struct {
	points []wrapper.Pair
	layer  int
	width  float64
}

type recordedPolygon struct {
	points []wrapper.Pair
	layer  int
}

type recordedArc struct {
	center                wrapper.Pair
	inner, outer          float64
	layer                 int
	startAngle, stopAngle float64
}

type recordedCircle struct {
	origin wrapper.Pair
	radius float64
	layer  int
	points int
}

type recordedSubtract struct {
	positive, negative, result int
	delete                     bool
}

func (r *recorder) AddPath(points []wrapper.Pair, layer int, width float64) error {
	r.paths = append(r.paths, recordedPath{points: points, layer: layer, width: width})
	return nil
}

func (r *recorder) AddPolygon(points []wrapper.Pair, layer int) error {
	r.polygons = append(r.polygons, recordedPolygon{points: points, layer: layer})
	return nil
}

func (r *recorder) AddPolygonArc(center wrapper.Pair, innerRadius, outerRadius float64, layer int, startAngle, stopAngle float64) error {
	r.arcs = append(r.arcs, recordedArc{
		center: center, inner: innerRadius, outer: outerRadius,
		layer: layer, startAngle: startAngle, stopAngle: stopAngle,
	})
	return nil
}

func (r *recorder) AddCircle(origin wrapper.Pair, radius float64, layer int, numberOfPoints int) error {
	r.circles = append(r.circles, recordedCircle{origin: origin, radius: radius, layer: layer, points: numberOfPoints})
	return nil
}

func (r *recorder) Subtract(positiveLayer, negativeLayer, resultLayer int, delete bool) error {
	r.subtracts = append(r.subtracts, recordedSubtract{
		positive: positiveLayer, negative: negativeLayer, result: resultLayer, delete: delete,
	})
	return nil
}

var testLayers = Layers{Positive: 1, Negative: 2, Result: 3}

func TestTraceDrawsOverlapExtensions(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	trace, err := NewTrace(TraceSpec{
		Outline:      []wrapper.Pair{wrapper.P(0, 0), wrapper.P(100, 0)},
		Width:        4,
		StartOverlap: 5,
		EndOverlap:   7,
	})
	if err != nil {
		t.Fatalf("NewTrace failed: %v", err)
	}
	if trace.Length() != 100 {
		t.Errorf("overlaps must not count toward length, got %g", trace.Length())
	}
	rec := &recorder{}
	if err := trace.Draw(rec, wrapper.P(10, 10), testLayers); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if len(rec.paths) != 3 {
		t.Fatalf("expected main path and two extensions, got %d paths", len(rec.paths))
	}
	for _, p := range rec.paths {
		if p.layer != testLayers.Result {
			t.Errorf("trace path on layer %d, want %d", p.layer, testLayers.Result)
		}
		if p.width != 4 {
			t.Errorf("trace path width %g, want 4", p.width)
		}
	}
	start := rec.paths[1]
	if diff := cmp.Diff([]wrapper.Pair{wrapper.P(10, 10), wrapper.P(5, 10)}, start.points, pairApprox); diff != "" {
		t.Errorf("start extension mismatch:\n%s", diff)
	}
	end := rec.paths[2]
	if diff := cmp.Diff([]wrapper.Pair{wrapper.P(110, 10), wrapper.P(117, 10)}, end.points, pairApprox); diff != "" {
		t.Errorf("end extension mismatch:\n%s", diff)
	}
}

func TestTraceRejectsBadSpec(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	outline := []wrapper.Pair{wrapper.P(0, 0), wrapper.P(100, 0)}
	if _, err := NewTrace(TraceSpec{Outline: outline, Width: 0}); !errors.Is(err, ErrBadWidth) {
		t.Errorf("zero width: got %v, want ErrBadWidth", err)
	}
	if _, err := NewTrace(TraceSpec{Outline: outline, Width: 4, StartOverlap: -1}); !errors.Is(err, ErrBadWidth) {
		t.Errorf("negative overlap: got %v, want ErrBadWidth", err)
	}
	if _, err := NewTrace(TraceSpec{Outline: outline[:1], Width: 4}); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("single point: got %v, want ErrTooFewPoints", err)
	}
}

func TestCPWDraw(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cpw, err := NewCPW(CPWSpec{
		Outline: []wrapper.Pair{wrapper.P(0, 0), wrapper.P(100, 0)},
		Width:   8,
		Gap:     2,
	})
	if err != nil {
		t.Fatalf("NewCPW failed: %v", err)
	}
	rec := &recorder{}
	if err := cpw.Draw(rec, wrapper.Origin, testLayers); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if len(rec.paths) != 2 {
		t.Fatalf("expected negative and positive path, got %d", len(rec.paths))
	}
	neg, pos := rec.paths[0], rec.paths[1]
	if neg.layer != testLayers.Negative || neg.width != 8 {
		t.Errorf("negative path: layer %d width %g", neg.layer, neg.width)
	}
	if pos.layer != testLayers.Positive || pos.width != 12 {
		t.Errorf("positive path: layer %d width %g", pos.layer, pos.width)
	}
	want := recordedSubtract{positive: 1, negative: 2, result: 3, delete: true}
	if len(rec.subtracts) != 1 || rec.subtracts[0] != want {
		t.Errorf("subtract calls %v, want [%v]", rec.subtracts, want)
	}
}

func TestCPWBlankDraw(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	blank, err := NewCPWBlank(CPWSpec{
		Outline: []wrapper.Pair{wrapper.P(0, 0), wrapper.P(100, 0)},
		Width:   8,
		Gap:     2,
	})
	if err != nil {
		t.Fatalf("NewCPWBlank failed: %v", err)
	}
	rec := &recorder{}
	if err := blank.Draw(rec, wrapper.Origin, testLayers); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if len(rec.paths) != 1 {
		t.Fatalf("expected a single cutout path, got %d", len(rec.paths))
	}
	if p := rec.paths[0]; p.layer != testLayers.Positive || p.width != 12 {
		t.Errorf("cutout path: layer %d width %g, want layer %d width 12", p.layer, p.width, testLayers.Positive)
	}
	if len(rec.subtracts) != 1 {
		t.Fatalf("expected one subtraction, got %d", len(rec.subtracts))
	}
}

func TestCPWDefaultRadius(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cpw, err := NewCPW(CPWSpec{
		Outline: []wrapper.Pair{wrapper.P(0, 0), wrapper.P(100, 0), wrapper.P(100, 100)},
		Width:   8,
		Gap:     2,
	})
	if err != nil {
		t.Fatalf("NewCPW failed: %v", err)
	}
	// default radius is width/2+gap = 6, keeping the inner gap edge open
	if r := cpw.Path().Radius; r != 6 {
		t.Errorf("default radius %g, want 6", r)
	}
}

func TestElbowCouplerTipArc(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	coupler, err := NewCPWElbowCoupler(ElbowCouplerSpec{
		TipPoint:   wrapper.P(0, 0),
		ElbowPoint: wrapper.P(100, 0),
		JointPoint: wrapper.P(100, 100),
		Width:      8,
		Gap:        2,
	})
	if err != nil {
		t.Fatalf("NewCPWElbowCoupler failed: %v", err)
	}
	// the element ends at the joint so sequences continue from there
	if diff := cmp.Diff(wrapper.P(100, 100), coupler.End(), pairApprox); diff != "" {
		t.Errorf("end mismatch:\n%s", diff)
	}
	rec := &recorder{}
	origin := wrapper.P(10, 20)
	if err := coupler.Draw(rec, origin, testLayers); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if len(rec.arcs) != 1 {
		t.Fatalf("expected one tip arc, got %d", len(rec.arcs))
	}
	arc := rec.arcs[0]
	if diff := cmp.Diff(wrapper.P(10, 20), arc.center, pairApprox); diff != "" {
		t.Errorf("arc center mismatch:\n%s", diff)
	}
	if arc.inner != 4 || arc.outer != 6 {
		t.Errorf("arc radii %g, %g, want 4, 6", arc.inner, arc.outer)
	}
	if arc.layer != testLayers.Result {
		t.Errorf("arc on layer %d, want %d", arc.layer, testLayers.Result)
	}
	// tip points in -x, so the half annulus spans 90..270 degrees
	if math.Abs(arc.startAngle-90) > 1e-9 || math.Abs(arc.stopAngle-270) > 1e-9 {
		t.Errorf("arc angles %g..%g, want 90..270", arc.startAngle, arc.stopAngle)
	}
	if len(rec.paths) != 2 || len(rec.subtracts) != 1 {
		t.Errorf("expected 2 paths and 1 subtraction, got %d and %d", len(rec.paths), len(rec.subtracts))
	}
}

func TestElbowCouplerBlankDraw(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	blank, err := NewCPWElbowCouplerBlank(ElbowCouplerSpec{
		TipPoint:   wrapper.P(0, 0),
		ElbowPoint: wrapper.P(100, 0),
		JointPoint: wrapper.P(100, 100),
		Width:      8,
		Gap:        2,
	})
	if err != nil {
		t.Fatalf("NewCPWElbowCouplerBlank failed: %v", err)
	}
	rec := &recorder{}
	if err := blank.Draw(rec, wrapper.Origin, testLayers); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if len(rec.paths) != 1 || rec.paths[0].layer != testLayers.Result || rec.paths[0].width != 12 {
		t.Fatalf("expected one full-width path on the result layer, got %+v", rec.paths)
	}
	if len(rec.arcs) != 1 {
		t.Fatalf("expected one tip cap, got %d", len(rec.arcs))
	}
	if arc := rec.arcs[0]; arc.inner != 0 || arc.outer != 6 {
		t.Errorf("tip cap must be a solid half disc, radii %g, %g", arc.inner, arc.outer)
	}
	if arc := rec.arcs[0]; math.Abs(arc.startAngle-90) > 1e-9 || math.Abs(arc.stopAngle-270) > 1e-9 {
		t.Errorf("tip cap angles %g..%g, want exactly 90..270", arc.startAngle, arc.stopAngle)
	}
	if len(rec.subtracts) != 0 {
		t.Errorf("blank must not subtract, got %d calls", len(rec.subtracts))
	}
}

func TestSquareTipRejected(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := NewCPWElbowCoupler(ElbowCouplerSpec{
		TipPoint:   wrapper.P(0, 0),
		ElbowPoint: wrapper.P(100, 0),
		JointPoint: wrapper.P(100, 100),
		Width:      8,
		Gap:        2,
		Tip:        TipSquare,
	})
	if !errors.Is(err, ErrUnsupportedTip) {
		t.Errorf("got %v, want ErrUnsupportedTip", err)
	}
}

func TestTransitionDraw(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tr, err := NewCPWTransition(TransitionSpec{
		Start:      wrapper.P(0, 0),
		End:        wrapper.P(100, 0),
		StartWidth: 4, EndWidth: 8,
		StartGap: 2, EndGap: 4,
	})
	if err != nil {
		t.Fatalf("NewCPWTransition failed: %v", err)
	}
	rec := &recorder{}
	if err := tr.Draw(rec, wrapper.P(10, 20), testLayers); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if len(rec.polygons) != 2 {
		t.Fatalf("expected upper and lower gap trapezoid, got %d polygons", len(rec.polygons))
	}
	upper := []wrapper.Pair{
		wrapper.P(10, 22), wrapper.P(10, 24), wrapper.P(110, 28), wrapper.P(110, 24),
	}
	if diff := cmp.Diff(upper, rec.polygons[0].points, pairApprox); diff != "" {
		t.Errorf("upper trapezoid mismatch:\n%s", diff)
	}
	lower := []wrapper.Pair{
		wrapper.P(10, 18), wrapper.P(10, 16), wrapper.P(110, 12), wrapper.P(110, 16),
	}
	if diff := cmp.Diff(lower, rec.polygons[1].points, pairApprox); diff != "" {
		t.Errorf("lower trapezoid mismatch:\n%s", diff)
	}
	for _, p := range rec.polygons {
		if p.layer != testLayers.Result {
			t.Errorf("trapezoid on layer %d, want %d", p.layer, testLayers.Result)
		}
	}
}

func TestTransitionDrawRotated(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tr, err := NewCPWTransition(TransitionSpec{
		Start:      wrapper.P(0, 0),
		End:        wrapper.P(0, 100), // straight up
		StartWidth: 4, EndWidth: 8,
		StartGap: 2, EndGap: 4,
	})
	if err != nil {
		t.Fatalf("NewCPWTransition failed: %v", err)
	}
	rec := &recorder{}
	if err := tr.Draw(rec, wrapper.Origin, testLayers); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	// local (0,2) rotates to (-2,0), local (100,8) to (-8,100)
	upper := []wrapper.Pair{
		wrapper.P(-2, 0), wrapper.P(-4, 0), wrapper.P(-8, 100), wrapper.P(-4, 100),
	}
	if diff := cmp.Diff(upper, rec.polygons[0].points, pairApprox); diff != "" {
		t.Errorf("rotated trapezoid mismatch:\n%s", diff)
	}
}

func TestTransitionBlankDraw(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	blank, err := NewCPWTransitionBlank(TransitionSpec{
		Start:      wrapper.P(0, 0),
		End:        wrapper.P(100, 0),
		StartWidth: 4, EndWidth: 8,
		StartGap: 2, EndGap: 4,
	})
	if err != nil {
		t.Fatalf("NewCPWTransitionBlank failed: %v", err)
	}
	rec := &recorder{}
	if err := blank.Draw(rec, wrapper.Origin, testLayers); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if len(rec.polygons) != 1 {
		t.Fatalf("expected a single full-width polygon, got %d", len(rec.polygons))
	}
	want := []wrapper.Pair{
		wrapper.P(0, 4), wrapper.P(100, 8), wrapper.P(100, -8), wrapper.P(0, -4),
	}
	if diff := cmp.Diff(want, rec.polygons[0].points, pairApprox); diff != "" {
		t.Errorf("full-width polygon mismatch:\n%s", diff)
	}
}

func TestTransitionRejectsBadSpec(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	spec := TransitionSpec{
		Start: wrapper.P(0, 0), End: wrapper.P(100, 0),
		StartWidth: 4, EndWidth: 8, StartGap: 2, EndGap: 4,
	}
	bad := spec
	bad.EndGap = 0
	if _, err := NewCPWTransition(bad); !errors.Is(err, ErrBadWidth) {
		t.Errorf("zero gap: got %v, want ErrBadWidth", err)
	}
	bad = spec
	bad.End = bad.Start
	if _, err := NewCPWTransition(bad); !errors.Is(err, ErrDegenerateSegment) {
		t.Errorf("zero length: got %v, want ErrDegenerateSegment", err)
	}
}

func TestWithMeshRejections(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	outline := []wrapper.Pair{wrapper.P(0, 0), wrapper.P(100, 0)}
	trace, err := NewTrace(TraceSpec{Outline: outline, Width: 4})
	if err != nil {
		t.Fatalf("NewTrace failed: %v", err)
	}
	opts := MeshOptions{Spacing: 10, Border: 1, HoleRadius: 2, Rows: 1}
	if _, err := WithMesh(trace, opts); !errors.Is(err, ErrUnsupportedMesh) {
		t.Errorf("trace mesh: got %v, want ErrUnsupportedMesh", err)
	}
	coupler, err := NewCPWElbowCoupler(ElbowCouplerSpec{
		TipPoint: wrapper.P(0, 0), ElbowPoint: wrapper.P(100, 0), JointPoint: wrapper.P(100, 100),
		Width: 8, Gap: 2,
	})
	if err != nil {
		t.Fatalf("NewCPWElbowCoupler failed: %v", err)
	}
	if _, err := WithMesh(coupler, opts); !errors.Is(err, ErrUnsupportedMesh) {
		t.Errorf("coupler mesh: got %v, want ErrUnsupportedMesh", err)
	}
	cpw, err := NewCPW(CPWSpec{Outline: outline, Width: 8, Gap: 2})
	if err != nil {
		t.Fatalf("NewCPW failed: %v", err)
	}
	bad := opts
	bad.Spacing = 0
	if _, err := WithMesh(cpw, bad); !errors.Is(err, ErrBadMesh) {
		t.Errorf("zero spacing: got %v, want ErrBadMesh", err)
	}
	bad = opts
	bad.HoleRadius = -1
	if _, err := WithMesh(cpw, bad); !errors.Is(err, ErrBadMesh) {
		t.Errorf("negative hole radius: got %v, want ErrBadMesh", err)
	}
	bad = opts
	bad.Rows = 0
	if _, err := WithMesh(cpw, bad); !errors.Is(err, ErrBadMesh) {
		t.Errorf("zero rows: got %v, want ErrBadMesh", err)
	}
}

func TestMeshedDrawStampsHoles(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cpw, err := NewCPW(CPWSpec{
		Outline: []wrapper.Pair{wrapper.P(0, 0), wrapper.P(100, 0)},
		Width:   8,
		Gap:     2,
	})
	if err != nil {
		t.Fatalf("NewCPW failed: %v", err)
	}
	meshed, err := WithMesh(cpw, MeshOptions{Spacing: 10, Border: 1, HoleRadius: 2, Rows: 1})
	if err != nil {
		t.Fatalf("WithMesh failed: %v", err)
	}
	// 10 columns, one row on each side
	if got := len(meshed.MeshCenters()); got != 20 {
		t.Fatalf("expected 20 holes, got %d", got)
	}
	rec := &recorder{}
	origin := wrapper.P(50, 0)
	if err := meshed.Draw(rec, origin, testLayers); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if len(rec.paths) != 2 || len(rec.subtracts) != 1 {
		t.Errorf("base element not drawn: %d paths, %d subtracts", len(rec.paths), len(rec.subtracts))
	}
	if len(rec.circles) != 20 {
		t.Fatalf("expected 20 circles, got %d", len(rec.circles))
	}
	for _, c := range rec.circles {
		if c.layer != testLayers.Result || c.radius != 2 {
			t.Errorf("hole %+v, want radius 2 on layer %d", c, testLayers.Result)
		}
		if c.origin.X() < 55-1e-9 || c.origin.X() > 145+1e-9 {
			t.Errorf("hole %s not shifted by the drawing origin", c.origin)
		}
	}
}
