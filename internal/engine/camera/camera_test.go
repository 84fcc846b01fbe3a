package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/carviewer/pkg/math"
)

func TestOrbitControlsKeepsValidPosition(t *testing.T) {
	c := NewOrbitControls(math.V3(5, 2, 5), math.V3(0, 0.5, 0))
	before := c.Position
	c.Update()
	assert.True(t, c.Position.ApproxEqual(before, 1e-4), "got %v", c.Position)
}

func TestOrbitControlsClampsDistance(t *testing.T) {
	c := NewOrbitControls(math.V3(0, 1, 0), math.V3(0, 1, 1))
	c.Update()
	assert.InDelta(t, 3, c.Distance(), 1e-4)
	assert.True(t, c.Position.ApproxEqual(math.V3(0, 1, -2), 1e-4), "got %v", c.Position)

	c = NewOrbitControls(math.V3(0, 0, 40), math.V3(0, 0, 0))
	c.Update()
	assert.InDelta(t, 15, c.Distance(), 1e-4)
}

func TestOrbitControlsCoincidentPoints(t *testing.T) {
	c := NewOrbitControls(math.V3(1, 1, 1), math.V3(1, 1, 1))
	c.Update()
	assert.InDelta(t, 3, c.Distance(), 1e-4)
}

func TestOrbitControlsClampsPitch(t *testing.T) {
	c := NewOrbitControls(math.V3(0, 5, 0), math.V3(0, 0, 0))
	c.Update()
	assert.InDelta(t, 5, c.Distance(), 1e-4)
	assert.Less(t, c.Position.Y, float32(5))
	assert.Greater(t, c.Position.Z, float32(0))
}

func TestOrbitControlsDampedDrag(t *testing.T) {
	c := NewOrbitControls(math.V3(0, 0, 5), math.V3(0, 0, 0))
	c.HandleDrag(-100, 0)

	c.Update()
	first := c.Position.X
	assert.Greater(t, first, float32(0))

	for i := 0; i < 200; i++ {
		c.Update()
	}
	assert.Greater(t, c.Position.X, first)
	assert.InDelta(t, 5, c.Distance(), 1e-3)
}

func TestOrbitControlsZoom(t *testing.T) {
	c := NewOrbitControls(math.V3(0, 0, 10), math.V3(0, 0, 0))
	c.HandleZoom(1)
	c.Update()
	assert.InDelta(t, 9, c.Distance(), 1e-4)

	c.HandleZoom(-100)
	c.Update()
	assert.InDelta(t, 15, c.Distance(), 1e-4)
}

func TestCatalogOrder(t *testing.T) {
	c := DefaultCatalog()
	assert.Equal(t, []string{"front", "side", "rear", "top", "interior"}, c.Names())
	assert.Equal(t, 5, c.Len())

	vp, ok := c.Lookup("side")
	assert.True(t, ok)
	assert.Equal(t, math.V3(5, 1, 0), vp.Position)
	assert.Equal(t, math.V3(0, 0.5, 0), vp.LookAt)

	top, _ := c.Lookup("top")
	assert.Equal(t, math.V3(0, 0, 0), top.LookAt)

	_, ok = c.Lookup("engine")
	assert.False(t, ok)
}

func TestCatalogIgnoresDuplicates(t *testing.T) {
	c := NewCatalog(
		Viewpoint{Name: "a", Position: math.V3(1, 0, 0)},
		Viewpoint{Name: "a", Position: math.V3(2, 0, 0)},
	)
	assert.Equal(t, 1, c.Len())
	vp, _ := c.Lookup("a")
	assert.Equal(t, float32(1), vp.Position.X)

	all := c.All()
	all[0].Name = "changed"
	assert.Equal(t, []string{"a"}, c.Names())
}
