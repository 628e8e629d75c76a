package coords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	points []Point
}

func (r *recorder) commit(p Point) { r.points = append(r.points, p) }

func newTestPositioner() (*Positioner, *recorder) {
	rec := &recorder{}
	return NewPositioner(func() (float32, float32) { return 4, 4 }, rec.commit), rec
}

var surface = Rect{X: 0, Y: 0, Width: 400, Height: 200}

func TestHoverNeverCommits(t *testing.T) {
	p, rec := newTestPositioner()
	assert.False(t, p.PointerMove(Pointer{X: 100, Y: 50, Surface: surface}))
	p.SetPositioning(true)
	assert.False(t, p.PointerMove(Pointer{X: 100, Y: 50, Surface: surface}))
	assert.Empty(t, rec.points)
}

func TestPointerDownRequiresPositioningMode(t *testing.T) {
	p, rec := newTestPositioner()
	assert.False(t, p.PointerDown(Pointer{X: 200, Y: 100, Surface: surface}))
	assert.False(t, p.Dragging())
	assert.False(t, p.Click(Pointer{X: 200, Y: 100, Surface: surface}))
	assert.Empty(t, rec.points)
}

func TestDragSequence(t *testing.T) {
	p, rec := newTestPositioner()
	require.True(t, p.TogglePositioning())

	assert.True(t, p.PointerDown(Pointer{X: 200, Y: 100, Surface: surface}))
	assert.True(t, p.Dragging())
	assert.True(t, p.PointerMove(Pointer{X: 300, Y: 50, Surface: surface}))
	assert.True(t, p.PointerMove(Pointer{X: 400, Y: 0, Surface: surface}))
	assert.True(t, p.PointerUp())
	assert.False(t, p.Dragging())
	assert.False(t, p.PointerMove(Pointer{X: 0, Y: 0, Surface: surface}))
	assert.False(t, p.PointerUp())

	require.Len(t, rec.points, 3)
	assert.InDelta(t, 0, rec.points[0].X, eps)
	assert.InDelta(t, 0, rec.points[0].Y, eps)
	assert.InDelta(t, 1, rec.points[1].X, eps)
	assert.InDelta(t, 1, rec.points[1].Y, eps)
	// corner is clamped
	assert.InDelta(t, 1.7, rec.points[2].X, eps)
	assert.InDelta(t, 1.7, rec.points[2].Y, eps)
}

func TestLeaveAndModeOffEndDrag(t *testing.T) {
	p, rec := newTestPositioner()
	p.SetPositioning(true)
	p.PointerDown(Pointer{X: 10, Y: 10, Surface: surface})
	p.PointerLeave()
	assert.False(t, p.Dragging())
	assert.False(t, p.PointerMove(Pointer{X: 20, Y: 20, Surface: surface}))

	p.PointerDown(Pointer{X: 10, Y: 10, Surface: surface})
	p.SetPositioning(false)
	assert.False(t, p.Dragging())
	assert.Len(t, rec.points, 2)
}

func TestMissingSurfaceIsNoop(t *testing.T) {
	p, rec := newTestPositioner()
	p.SetPositioning(true)
	assert.False(t, p.PointerDown(Pointer{X: 10, Y: 10}))
	assert.False(t, p.Dragging())
	assert.False(t, p.Click(Pointer{X: 10, Y: 10}))
	assert.Empty(t, rec.points)
}

func TestNilCallbacks(t *testing.T) {
	p := NewPositioner(nil, nil)
	p.SetPositioning(true)
	assert.False(t, p.Click(Pointer{X: 1, Y: 1, Surface: surface}))
}

func TestQuickPositions(t *testing.T) {
	qp := QuickPositions(4, 4)
	require.Len(t, qp, 5)
	assert.Equal(t, "Top Center", qp[0].Label)
	assert.InDelta(t, 1.5, qp[0].Point.Y, eps)
	assert.InDelta(t, -1.3, qp[1].Point.X, eps)
	assert.InDelta(t, 1.3, qp[1].Point.Y, eps)
	assert.InDelta(t, 1.3, qp[2].Point.X, eps)
	assert.Equal(t, Point{}, qp[3].Point)
	assert.InDelta(t, 1.5, qp[4].Point.X, eps)
	assert.Equal(t, qp[0].Point, TopCenter(4, 4))
}
