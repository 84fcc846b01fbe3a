// Package animation samples node animation clips and selects which clip
// plays in response to a user request.
package animation

import (
	"sort"

	"github.com/Faultbox/carviewer/internal/engine/scene"
	"github.com/Faultbox/carviewer/pkg/math"
)

// Path is the node property a channel drives.
type Path int

const (
	Translation Path = iota
	Rotation
	Scale
)

// Width returns the number of floats per keyframe value.
func (p Path) Width() int {
	if p == Rotation {
		return 4
	}
	return 3
}

// Interpolation between keyframes.
type Interpolation int

const (
	Linear Interpolation = iota
	Step
)

// Channel animates one property of one node. Values holds Path.Width()
// floats per entry in Times; Times is ascending.
type Channel struct {
	Node          *scene.Node
	Path          Path
	Interpolation Interpolation
	Times         []float32
	Values        []float32
}

// Keys returns the number of usable keyframes.
func (c *Channel) Keys() int {
	n := len(c.Values) / c.Path.Width()
	if len(c.Times) < n {
		n = len(c.Times)
	}
	return n
}

// Clip is a named set of channels. Index is the clip's position in the
// loaded model and stays stable for the session.
type Clip struct {
	Name     string
	Index    int
	Duration float32
	Channels []Channel
}

// NewClip builds a clip whose duration is the last keyframe time of any channel.
func NewClip(name string, index int, channels []Channel) *Clip {
	c := &Clip{Name: name, Index: index, Channels: channels}
	for i := range channels {
		if n := channels[i].Keys(); n > 0 && channels[i].Times[n-1] > c.Duration {
			c.Duration = channels[i].Times[n-1]
		}
	}
	return c
}

// Apply poses every animated node at time t.
func (c *Clip) Apply(t float32) {
	for i := range c.Channels {
		ch := &c.Channels[i]
		if ch.Node == nil || ch.Keys() == 0 {
			continue
		}
		switch ch.Path {
		case Translation:
			ch.Node.Translation = ch.sampleVec3(t)
		case Rotation:
			ch.Node.Rotation = ch.sampleQuat(t)
		case Scale:
			ch.Node.Scale = ch.sampleVec3(t)
		}
	}
}

// Nodes returns the distinct nodes the clip drives.
func (c *Clip) Nodes() []*scene.Node {
	var out []*scene.Node
	seen := make(map[*scene.Node]bool)
	for _, ch := range c.Channels {
		if ch.Node != nil && !seen[ch.Node] {
			seen[ch.Node] = true
			out = append(out, ch.Node)
		}
	}
	return out
}

// span finds the keyframes around t and the blend factor between them.
// Times before the first key or after the last clamp to that key.
func (c *Channel) span(t float32) (prev, next int, f float32) {
	n := c.Keys()
	next = sort.Search(n, func(i int) bool { return c.Times[i] > t })
	if next == 0 {
		return 0, 0, 0
	}
	if next == n {
		return n - 1, n - 1, 0
	}
	prev = next - 1
	if c.Interpolation == Step {
		return prev, prev, 0
	}
	if dt := c.Times[next] - c.Times[prev]; dt > 0 {
		f = (t - c.Times[prev]) / dt
	}
	return prev, next, f
}

func (c *Channel) vec3(i int) math.Vec3 {
	v := c.Values[i*3 : i*3+3]
	return math.V3(v[0], v[1], v[2])
}

func (c *Channel) quat(i int) math.Quat {
	v := c.Values[i*4 : i*4+4]
	return math.Quat{X: v[0], Y: v[1], Z: v[2], W: v[3]}
}

func (c *Channel) sampleVec3(t float32) math.Vec3 {
	prev, next, f := c.span(t)
	return c.vec3(prev).Lerp(c.vec3(next), f)
}

func (c *Channel) sampleQuat(t float32) math.Quat {
	prev, next, f := c.span(t)
	return c.quat(prev).Slerp(c.quat(next), f).Normalize()
}
