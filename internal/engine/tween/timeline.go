// Package tween schedules eased Vec3 transitions on a shared clock.
package tween

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/Faultbox/carviewer/pkg/math"
)

// DefaultEase is the ease-in-out curve used by camera moves.
var DefaultEase ease.TweenFunc = ease.InOutQuad

// track animates one channel from whatever value it holds when the track
// starts to a fixed destination.
type track struct {
	channel  int
	start    float32
	duration float32
	to       math.Vec3
	easing   ease.TweenFunc

	started bool
	x, y, z *gween.Tween
}

func (t *track) begin(from math.Vec3) {
	t.x = gween.New(from.X, t.to.X, t.duration, t.easing)
	t.y = gween.New(from.Y, t.to.Y, t.duration, t.easing)
	t.z = gween.New(from.Z, t.to.Z, t.duration, t.easing)
	t.started = true
}

func (t *track) sample(local float32) math.Vec3 {
	x, _ := t.x.Set(local)
	y, _ := t.y.Set(local)
	z, _ := t.z.Set(local)
	return math.V3(x, y, z)
}

// Timeline is a set of tracks placed at absolute offsets from its start.
// Each channel is an index into the value slice passed to Advance. A track
// captures its starting value when the clock first reaches it.
type Timeline struct {
	tracks  []*track
	elapsed float32
	end     float32
}

// New returns an empty timeline.
func New() *Timeline {
	return &Timeline{}
}

// Add schedules channel to move to `to` over duration, starting at start.
func (tl *Timeline) Add(channel int, start, duration float32, to math.Vec3) {
	tl.AddEased(channel, start, duration, to, DefaultEase)
}

// AddEased is Add with an explicit easing curve.
func (tl *Timeline) AddEased(channel int, start, duration float32, to math.Vec3, easing ease.TweenFunc) {
	tl.tracks = append(tl.tracks, &track{
		channel:  channel,
		start:    start,
		duration: duration,
		to:       to,
		easing:   easing,
	})
	if e := start + duration; e > tl.end {
		tl.end = e
	}
}

// Duration is the offset at which the last track finishes.
func (tl *Timeline) Duration() float32 {
	return tl.end
}

// Elapsed is the clock position.
func (tl *Timeline) Elapsed() float32 {
	return tl.elapsed
}

// Len returns the number of scheduled tracks.
func (tl *Timeline) Len() int {
	return len(tl.tracks)
}

// Done reports whether the clock has passed every track.
func (tl *Timeline) Done() bool {
	return tl.elapsed >= tl.end
}

// Advance moves the clock by dt and writes each active track's sample into
// values. Tracks are applied in the order they were added, so a later track
// overrides an earlier one on the same channel. It returns true once the
// timeline is complete.
func (tl *Timeline) Advance(dt float32, values []math.Vec3) bool {
	tl.elapsed += dt
	for _, t := range tl.tracks {
		if t.channel < 0 || t.channel >= len(values) || tl.elapsed < t.start {
			continue
		}
		if !t.started {
			t.begin(values[t.channel])
		}
		values[t.channel] = t.sample(tl.elapsed - t.start)
	}
	return tl.Done()
}
