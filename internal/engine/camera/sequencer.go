package camera

import (
	"go.uber.org/zap"

	"github.com/Faultbox/carviewer/internal/engine/tween"
	"github.com/Faultbox/carviewer/internal/logger"
	"github.com/Faultbox/carviewer/pkg/math"
)

// Timing of camera moves, in seconds.
const (
	TransitionDuration = 1.5
	LegDuration        = 2.0
	LegStride          = 2.5
	LegDelay           = 0.5
)

// Timeline channels.
const (
	chanPosition = iota
	chanTarget
)

// closingView is where a showcase tour returns to.
const closingView = "front"

// State of the sequencer.
type State int

const (
	Idle State = iota
	Transitioning
	Touring
)

func (s State) String() string {
	switch s {
	case Transitioning:
		return "transitioning"
	case Touring:
		return "touring"
	default:
		return "idle"
	}
}

// Sequencer moves the camera between catalog viewpoints. Starting a move
// replaces whatever move is in flight.
type Sequencer struct {
	catalog  *Catalog
	state    State
	timeline *tween.Timeline
	legs     int
}

// NewSequencer creates an idle sequencer over catalog.
func NewSequencer(catalog *Catalog) *Sequencer {
	return &Sequencer{catalog: catalog}
}

// Catalog returns the viewpoints the sequencer visits.
func (s *Sequencer) Catalog() *Catalog {
	return s.catalog
}

// State returns the current state.
func (s *Sequencer) State() State {
	return s.state
}

// Legs returns the number of viewpoint legs in the active move.
func (s *Sequencer) Legs() int {
	return s.legs
}

// Duration returns the length of the active move, 0 when idle.
func (s *Sequencer) Duration() float32 {
	if s.timeline == nil {
		return 0
	}
	return s.timeline.Duration()
}

// GoTo starts a transition to the named viewpoint. Unknown names are
// ignored and false is returned.
func (s *Sequencer) GoTo(name string) bool {
	vp, ok := s.catalog.Lookup(name)
	if !ok {
		logger.Debug("unknown viewpoint", zap.String("view", name))
		return false
	}
	tl := tween.New()
	tl.Add(chanPosition, 0, TransitionDuration, vp.Position)
	tl.Add(chanTarget, 0, TransitionDuration, vp.LookAt)
	s.start(Transitioning, tl, 1)
	return true
}

// PlayShowcase starts a tour of every viewpoint in catalog order, each leg
// starting LegStride after the previous one, followed by a closing leg
// back to the front view.
func (s *Sequencer) PlayShowcase() {
	tl := tween.New()
	legs := 0
	for i, vp := range s.catalog.All() {
		start := float32(i) * LegStride
		delay := float32(0)
		if i > 0 {
			delay = LegDelay
		}
		tl.Add(chanPosition, start+delay, LegDuration, vp.Position)
		tl.Add(chanTarget, start, LegDuration, vp.LookAt)
		legs++
	}
	if home, ok := s.catalog.Lookup(closingView); ok {
		end := tl.Duration()
		tl.Add(chanPosition, end, LegDuration, home.Position)
		tl.Add(chanTarget, end, LegDuration, home.LookAt)
		legs++
	}
	s.start(Touring, tl, legs)
}

// Stop abandons the active move.
func (s *Sequencer) Stop() {
	s.state = Idle
	s.timeline = nil
	s.legs = 0
}

func (s *Sequencer) start(state State, tl *tween.Timeline, legs int) {
	if tl.Len() == 0 {
		s.Stop()
		return
	}
	s.state = state
	s.timeline = tl
	s.legs = legs
}

// Advance moves the active timeline by dt seconds and writes the sampled
// camera position and target. It returns false when idle, leaving both
// untouched.
func (s *Sequencer) Advance(dt float32, position, target *math.Vec3) bool {
	if s.state == Idle || s.timeline == nil {
		return false
	}
	vals := []math.Vec3{chanPosition: *position, chanTarget: *target}
	done := s.timeline.Advance(dt, vals)
	*position, *target = vals[chanPosition], vals[chanTarget]
	if done {
		s.Stop()
	}
	return true
}
