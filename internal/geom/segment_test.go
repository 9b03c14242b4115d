package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-6

func assertPointNear(t *testing.T, want, got Point, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, eps, msgAndArgs...)
}

func TestPoint_Basis(t *testing.T) {
	dir := Pt(0, 1)
	local := ToBasis(Pt(3, -2), dir)
	assertPointNear(t, Pt(-2, -3), local)
	assertPointNear(t, Pt(3, -2), FromBasis(local, dir))

	assertPointNear(t, Pt(0, 1), Orthogonal(Pt(1, 0)))
	assert.True(t, IsRoughlyWithin(Pt(1, 1), Pt(1.05, 1), 0.1))
	assert.False(t, IsRoughlyWithin(Pt(1, 1), Pt(1.2, 1), 0.1))
}

func TestArcWithDirection_Straight(t *testing.T) {
	seg, ok := ArcWithDirection(Pt(0, 0), Pt(1, 0), Pt(10, 0))
	require.True(t, ok)

	assert.False(t, seg.IsArc())
	assert.InDelta(t, 10, seg.Length(), eps)
	assertPointNear(t, Pt(4, 0), seg.Along(4))
	assertPointNear(t, Pt(1, 0), seg.EndDirection())
}

func TestArcWithDirection_QuarterCircle(t *testing.T) {
	// Leaving the origin heading +x and ending at (10, 10) traces a quarter
	// circle of radius 10 centered on (0, 10).
	seg, ok := ArcWithDirection(Pt(0, 0), Pt(1, 0), Pt(10, 10))
	require.True(t, ok)

	assert.True(t, seg.IsArc())
	assert.InDelta(t, 10, math.Abs(seg.radius), eps)
	assertPointNear(t, Pt(0, 10), seg.center)
	assert.InDelta(t, 10*math.Pi/2, seg.Length(), eps)
	assertPointNear(t, Pt(0, 1), seg.EndDirection())
	assertPointNear(t, Pt(1, 0), seg.StartDirection())

	mid := seg.Along(seg.Length() / 2)
	assert.InDelta(t, 10, mid.Distance(seg.center), eps)
}

func TestArcWithDirection_TurningAway(t *testing.T) {
	seg, ok := ArcWithDirection(Pt(0, 0), Pt(1, 0), Pt(10, -10))
	require.True(t, ok)

	assertPointNear(t, Pt(0, -10), seg.center)
	assertPointNear(t, Pt(0, -1), seg.EndDirection())
}

func TestArcWithDirection_Degenerate(t *testing.T) {
	tests := []struct {
		name       string
		start, end Point
		dir        Point
	}{
		{name: "coincident", start: Pt(0, 0), end: Pt(0.05, 0), dir: Pt(1, 0)},
		{name: "directly behind", start: Pt(0, 0), end: Pt(-10, 0), dir: Pt(1, 0)},
		{name: "no direction", start: Pt(0, 0), end: Pt(10, 0), dir: Pt(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ArcWithDirection(tt.start, tt.dir, tt.end)
			assert.False(t, ok)
		})
	}
}

func TestSegment_Project(t *testing.T) {
	line, ok := Line(Pt(0, 0), Pt(10, 0))
	require.True(t, ok)

	got, ok := line.Project(Pt(3, 5))
	require.True(t, ok)
	assert.InDelta(t, 3, got, eps)

	_, ok = line.Project(Pt(12, 1))
	assert.False(t, ok, "foot beyond the end")

	arc, ok := ArcWithDirection(Pt(0, 0), Pt(1, 0), Pt(10, 10))
	require.True(t, ok)
	off := arc.Along(4).Add(arc.Along(4).Sub(arc.center).Mul(0.3))
	got, ok = arc.Project(off)
	require.True(t, ok)
	assert.InDelta(t, 4, got, 1e-4)

	_, ok = arc.Project(Pt(-5, 10))
	assert.False(t, ok, "opposite side of the circle")
}

func TestSegment_Subsection(t *testing.T) {
	arc, ok := ArcWithDirection(Pt(0, 0), Pt(1, 0), Pt(10, 10))
	require.True(t, ok)

	sub, ok := arc.Subsection(2, 6)
	require.True(t, ok)
	assert.InDelta(t, 4, sub.Length(), 1e-4)
	assertPointNear(t, arc.Along(2), sub.Start())
	assertPointNear(t, arc.Along(6), sub.End())

	_, ok = arc.Subsection(3, 3.05)
	assert.False(t, ok)
}

func TestBiarc(t *testing.T) {
	t.Run("single arc when directions agree", func(t *testing.T) {
		segs, ok := Biarc(Pt(0, 0), Pt(1, 0), Pt(10, 10), Pt(0, 1))
		require.True(t, ok)
		assert.Len(t, segs, 1)
	})

	t.Run("lane shift", func(t *testing.T) {
		segs, ok := Biarc(Pt(0, 0), Pt(1, 0), Pt(20, 5), Pt(1, 0))
		require.True(t, ok)
		require.Len(t, segs, 2)
		assertPointNear(t, Pt(20, 5), segs[1].End())
		assert.True(t, IsRoughlyWithin(segs[0].EndDirection(), segs[1].StartDirection(), 1e-6))
		assert.True(t, IsRoughlyWithin(segs[1].EndDirection(), Pt(1, 0), 10*DirectionTolerance))
	})

	t.Run("target behind", func(t *testing.T) {
		_, ok := Biarc(Pt(0, 0), Pt(1, 0), Pt(-10, 0), Pt(1, 0))
		assert.False(t, ok)
	})

	t.Run("sideways jump", func(t *testing.T) {
		_, ok := Biarc(Pt(0, 0), Pt(1, 0), Pt(0, 5), Pt(1, 0))
		assert.False(t, ok)
	})
}
