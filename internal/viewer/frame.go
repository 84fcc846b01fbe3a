package viewer

import (
	"fmt"

	"github.com/Faultbox/carviewer/pkg/math"
)

// Drawer renders one frame of the session with the given view matrix.
type Drawer interface {
	Draw(s *Session, view math.Mat4) error
}

// EnvironmentCapturer refreshes reflection maps. Hosts whose Drawer also
// implements it are called every frame with the car hidden.
type EnvironmentCapturer interface {
	CaptureEnvironment(s *Session) error
}

// Tick runs one frame: camera moves and controls, animation, turntable
// rotation, environment capture, then the draw. dt is the wall time since
// the previous frame; animation advances by the fixed step instead.
func (s *Session) Tick(dt float32, d Drawer) error {
	ctl := s.controls
	s.sequencer.Advance(dt, &ctl.Position, &ctl.Target)
	view := ctl.Update()

	s.mixer.Advance(s.opts.AnimationStep)

	if s.rotating && s.model != nil {
		s.model.Yaw += s.opts.RotationSpeed
	}

	if ec, ok := d.(EnvironmentCapturer); ok && s.model != nil {
		s.model.Hidden = true
		err := ec.CaptureEnvironment(s)
		s.model.Hidden = false
		if err != nil {
			return fmt.Errorf("capture environment: %w", err)
		}
	}

	s.frames++
	if d == nil {
		return nil
	}
	return d.Draw(s, view)
}

// Frames returns the number of ticks run.
func (s *Session) Frames() uint64 {
	return s.frames
}
