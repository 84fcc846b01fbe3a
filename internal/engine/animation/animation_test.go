package animation

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/carviewer/internal/engine/scene"
	"github.com/Faultbox/carviewer/pkg/math"
)

func doorClip(door *scene.Node) *Clip {
	half := math.QuatFromAxisAngle(math.V3(0, 1, 0), math32.Pi/2)
	return NewClip("DoorOpen", 0, []Channel{
		{
			Node:   door,
			Path:   Translation,
			Times:  []float32{0, 1, 2},
			Values: []float32{0, 0, 0, 1, 0, 0, 1, 2, 0},
		},
		{
			Node:   door,
			Path:   Rotation,
			Times:  []float32{0, 2},
			Values: []float32{0, 0, 0, 1, half.X, half.Y, half.Z, half.W},
		},
	})
}

func clips(names ...string) []*Clip {
	out := make([]*Clip, len(names))
	for i, n := range names {
		out[i] = &Clip{Name: n, Index: i}
	}
	return out
}

func TestNewClipDuration(t *testing.T) {
	c := doorClip(scene.NewNode("door"))
	assert.InDelta(t, 2, c.Duration, 1e-6)
	assert.Zero(t, NewClip("empty", 1, nil).Duration)
}

func TestClipApplyLinear(t *testing.T) {
	door := scene.NewNode("door")
	c := doorClip(door)

	c.Apply(0.5)
	assert.True(t, door.Translation.ApproxEqual(math.V3(0.5, 0, 0), 1e-6))

	c.Apply(1.5)
	assert.True(t, door.Translation.ApproxEqual(math.V3(1, 1, 0), 1e-6))

	c.Apply(5)
	assert.True(t, door.Translation.ApproxEqual(math.V3(1, 2, 0), 1e-6))

	c.Apply(-1)
	assert.True(t, door.Translation.ApproxEqual(math.V3(0, 0, 0), 1e-6))
}

func TestClipApplySlerp(t *testing.T) {
	door := scene.NewNode("door")
	c := doorClip(door)
	c.Apply(1)

	want := math.QuatFromAxisAngle(math.V3(0, 1, 0), math32.Pi/4)
	assert.InDelta(t, 1, math32.Abs(door.Rotation.Dot(want)), 1e-5)
}

func TestChannelStep(t *testing.T) {
	n := scene.NewNode("wiper")
	c := NewClip("wipe", 0, []Channel{{
		Node:          n,
		Path:          Scale,
		Interpolation: Step,
		Times:         []float32{0, 1},
		Values:        []float32{1, 1, 1, 2, 2, 2},
	}})
	c.Apply(0.99)
	assert.Equal(t, math.V3(1, 1, 1), n.Scale)
	c.Apply(1)
	assert.Equal(t, math.V3(2, 2, 2), n.Scale)
}

func TestChannelKeysIgnoresShortValues(t *testing.T) {
	ch := Channel{Path: Rotation, Times: []float32{0, 1, 2}, Values: make([]float32, 9)}
	assert.Equal(t, 2, ch.Keys())
}

func TestSelect(t *testing.T) {
	list := clips("Idle", "DoorOpen", "Spin")

	tests := []struct {
		name string
		req  Request
		want string
	}{
		{"index", ByIndex(2), "Spin"},
		{"index zero", ByIndex(0), "Idle"},
		{"name", ByName("DoorOpen"), "DoorOpen"},
		{"index out of range", ByIndex(5), "Idle"},
		{"negative index", ByIndex(-1), "Idle"},
		{"unknown name", ByName("Drift"), "Idle"},
		{"name is case sensitive", ByName("spin"), "Idle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Select(tt.req, list)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestSelectFirstNameMatch(t *testing.T) {
	list := clips("A", "B", "B")
	got, ok := Select(ByName("B"), list)
	require.True(t, ok)
	assert.Equal(t, 1, got.Index)
}

func TestSelectNoClips(t *testing.T) {
	got, ok := Select(ByName("anything"), nil)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestParseRequest(t *testing.T) {
	assert.Equal(t, Request{Name: "2", Index: 2, ByIndex: true}, ParseRequest(" 2 "))
	assert.Equal(t, ByName("DoorOpen"), ParseRequest("DoorOpen"))

	// out of range index can still match a clip named by the same text
	list := clips("Idle", "7")
	got, _ := Select(ParseRequest("7"), list)
	assert.Equal(t, "7", got.Name)

	assert.Equal(t, "#3", ByIndex(3).String())
	assert.Equal(t, "Spin", ByName("Spin").String())
}

func TestMixerPlaysOneClip(t *testing.T) {
	door := scene.NewNode("door")
	hood := scene.NewNode("hood")
	a := doorClip(door)
	b := NewClip("Hood", 1, []Channel{{
		Node: hood, Path: Translation,
		Times: []float32{0, 1}, Values: []float32{0, 0, 0, 0, 1, 0},
	}})
	m := NewMixer([]*Clip{a, b})

	m.Play(a)
	m.Advance(1)
	assert.Same(t, a, m.Current())
	assert.True(t, door.Translation.ApproxEqual(math.V3(1, 0, 0), 1e-6))

	m.Play(b)
	assert.Same(t, b, m.Current())
	assert.Zero(t, m.Time())
	// the previous clip's node returns to rest
	assert.Equal(t, math.V3(0, 0, 0), door.Translation)
	assert.Equal(t, math.QuatIdentity(), door.Rotation)

	m.Advance(0.5)
	assert.True(t, hood.Translation.ApproxEqual(math.V3(0, 0.5, 0), 1e-6))
	assert.Len(t, m.Clips(), 2)
}

func TestMixerLoops(t *testing.T) {
	door := scene.NewNode("door")
	m := NewMixer(nil)
	m.Play(doorClip(door))
	for i := 0; i < 5; i++ {
		m.Advance(0.5)
	}
	assert.InDelta(t, 0.5, m.Time(), 1e-5)
	assert.True(t, door.Translation.ApproxEqual(math.V3(0.5, 0, 0), 1e-5))
}

func TestMixerStopAndNil(t *testing.T) {
	door := scene.NewNode("door")
	door.Translation = math.V3(9, 9, 9)
	m := NewMixer(nil)
	m.Play(doorClip(door))
	m.Advance(1)
	m.Stop()
	assert.Nil(t, m.Current())
	assert.Equal(t, math.V3(9, 9, 9), door.Translation)

	m.Play(nil)
	assert.Nil(t, m.Current())
	assert.NotPanics(t, func() { m.Advance(1) })
}
