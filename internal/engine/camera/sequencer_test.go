package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/carviewer/pkg/math"
)

const frame = float32(1.0 / 60)

// run advances s until idle and returns the frame count.
func run(t *testing.T, s *Sequencer, pos, target *math.Vec3) int {
	t.Helper()
	n := 0
	for s.Advance(frame, pos, target) {
		n++
		require.Less(t, n, 10000, "sequencer never finished")
	}
	return n
}

func TestGoTo(t *testing.T) {
	s := NewSequencer(DefaultCatalog())
	pos, target := math.V3(5, 2, 5), math.V3(0, 0.5, 0)

	require.True(t, s.GoTo("rear"))
	assert.Equal(t, Transitioning, s.State())
	assert.InDelta(t, 1.5, s.Duration(), 1e-6)

	frames := run(t, s, &pos, &target)
	assert.Equal(t, Idle, s.State())
	assert.InDelta(t, 90, frames, 2)
	assert.True(t, pos.ApproxEqual(math.V3(0, 1, -5), 1e-5), "got %v", pos)
	assert.True(t, target.ApproxEqual(math.V3(0, 0.5, 0), 1e-5))
}

func TestGoToUnknownIsNoop(t *testing.T) {
	s := NewSequencer(DefaultCatalog())
	assert.False(t, s.GoTo("engine-bay"))
	assert.Equal(t, Idle, s.State())

	pos, target := math.V3(1, 2, 3), math.V3(0, 0, 0)
	assert.False(t, s.Advance(frame, &pos, &target))
	assert.Equal(t, math.V3(1, 2, 3), pos)

	s.GoTo("side")
	s.Advance(frame, &pos, &target)
	assert.False(t, s.GoTo("nope"))
	assert.Equal(t, Transitioning, s.State())
}

func TestGoToLastCallWins(t *testing.T) {
	s := NewSequencer(DefaultCatalog())
	pos, target := math.V3(5, 2, 5), math.V3(0, 0.5, 0)

	s.GoTo("front")
	s.GoTo("side")
	var seenFront bool
	for s.Advance(frame, &pos, &target) {
		if pos.ApproxEqual(math.V3(0, 1, 5), 1e-3) {
			seenFront = true
		}
	}
	assert.False(t, seenFront)
	assert.True(t, pos.ApproxEqual(math.V3(5, 1, 0), 1e-5), "got %v", pos)
}

func TestGoToPreemptsMidFlight(t *testing.T) {
	s := NewSequencer(DefaultCatalog())
	pos, target := math.V3(0, 1, 5), math.V3(0, 0.5, 0)

	s.GoTo("rear")
	for i := 0; i < 30; i++ {
		s.Advance(frame, &pos, &target)
	}
	mid := pos
	s.GoTo("side")
	s.Advance(frame, &pos, &target)
	// the new move starts from where the old one left off
	assert.InDelta(t, 0, pos.Distance(mid), 0.05)

	run(t, s, &pos, &target)
	assert.True(t, pos.ApproxEqual(math.V3(5, 1, 0), 1e-5))
}

func TestPlayShowcase(t *testing.T) {
	s := NewSequencer(DefaultCatalog())
	pos, target := math.V3(5, 2, 5), math.V3(0, 0.5, 0)

	s.PlayShowcase()
	assert.Equal(t, Touring, s.State())
	assert.Equal(t, DefaultCatalog().Len()+1, s.Legs())
	assert.InDelta(t, 14.5, s.Duration(), 1e-5)

	frames := run(t, s, &pos, &target)
	assert.Equal(t, Idle, s.State())
	assert.InDelta(t, 14.5*60, frames, 2)
	assert.True(t, pos.ApproxEqual(math.V3(0, 1, 5), 1e-5), "got %v", pos)
	assert.True(t, target.ApproxEqual(math.V3(0, 0.5, 0), 1e-5))
}

func TestPlayShowcaseVisitsEveryView(t *testing.T) {
	s := NewSequencer(DefaultCatalog())
	pos, target := math.Vec3{}, math.Vec3{}
	s.PlayShowcase()

	// each position leg has settled just before the next one starts
	checks := map[float32]math.Vec3{
		2.45:  math.V3(0, 1, 5),  // front
		5.45:  math.V3(5, 1, 0),  // side
		7.95:  math.V3(0, 1, -5), // rear
		10.45: math.V3(0, 5, 0),  // top
		12.45: math.V3(0, 1, 0),  // interior, 0.05s before the closing leg
	}
	elapsed := float32(0)
	step := float32(0.05)
	for s.Advance(step, &pos, &target) {
		elapsed += step
		for at, want := range checks {
			if math32.Abs(elapsed-at) < step/2 {
				assert.True(t, pos.ApproxEqual(want, 1e-2), "at %.2f got %v want %v", at, pos, want)
			}
		}
	}
}

func TestShowcasePreemptedByGoTo(t *testing.T) {
	s := NewSequencer(DefaultCatalog())
	pos, target := math.Vec3{}, math.Vec3{}
	s.PlayShowcase()
	for i := 0; i < 100; i++ {
		s.Advance(frame, &pos, &target)
	}
	s.GoTo("top")
	assert.Equal(t, Transitioning, s.State())
	assert.Equal(t, 1, s.Legs())
	run(t, s, &pos, &target)
	assert.True(t, pos.ApproxEqual(math.V3(0, 5, 0), 1e-5))
}

func TestShowcaseWithoutFront(t *testing.T) {
	s := NewSequencer(NewCatalog(Viewpoint{Name: "only", Position: math.V3(1, 1, 1)}))
	s.PlayShowcase()
	assert.Equal(t, 1, s.Legs())

	s = NewSequencer(NewCatalog())
	s.PlayShowcase()
	assert.Equal(t, Idle, s.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "touring", Touring.String())
	assert.Equal(t, "idle", Idle.String())
}
