package animation

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/carviewer/internal/engine/scene"
	"github.com/Faultbox/carviewer/pkg/math"
)

type restPose struct {
	t math.Vec3
	r math.Quat
	s math.Vec3
}

// Mixer plays at most one clip at a time, looping it.
type Mixer struct {
	clips   []*Clip
	current *Clip
	time    float32
	rest    map[*scene.Node]restPose
}

// NewMixer creates a mixer over the model's clips.
func NewMixer(clips []*Clip) *Mixer {
	return &Mixer{clips: clips}
}

// Clips returns the loaded clips in index order.
func (m *Mixer) Clips() []*Clip {
	return m.clips
}

// Current returns the playing clip or nil.
func (m *Mixer) Current() *Clip {
	return m.current
}

// Time returns the playback position of the current clip.
func (m *Mixer) Time() float32 {
	return m.time
}

// Play stops whatever is playing and starts c from the beginning.
func (m *Mixer) Play(c *Clip) {
	m.Stop()
	if c == nil {
		return
	}
	m.rest = make(map[*scene.Node]restPose)
	for _, n := range c.Nodes() {
		m.rest[n] = restPose{n.Translation, n.Rotation, n.Scale}
	}
	m.current = c
	m.time = 0
	c.Apply(0)
}

// Stop halts playback and returns animated nodes to their rest pose.
func (m *Mixer) Stop() {
	for n, p := range m.rest {
		n.Translation, n.Rotation, n.Scale = p.t, p.r, p.s
	}
	m.rest = nil
	m.current = nil
	m.time = 0
}

// Advance moves playback forward by dt seconds, wrapping at the clip end.
func (m *Mixer) Advance(dt float32) {
	if m.current == nil {
		return
	}
	m.time += dt
	if d := m.current.Duration; d > 0 && m.time > d {
		m.time = math32.Mod(m.time, d)
	}
	m.current.Apply(m.time)
}
