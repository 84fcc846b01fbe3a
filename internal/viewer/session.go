// Package viewer owns the state of one car viewer: the loaded model, its
// body paint set, the camera and the playing animation. All methods must
// be called from the frame loop goroutine.
package viewer

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/carviewer/internal/config"
	"github.com/Faultbox/carviewer/internal/engine/animation"
	"github.com/Faultbox/carviewer/internal/engine/camera"
	"github.com/Faultbox/carviewer/internal/engine/material"
	"github.com/Faultbox/carviewer/internal/engine/paint"
	"github.com/Faultbox/carviewer/internal/engine/scene"
	"github.com/Faultbox/carviewer/internal/logger"
	"github.com/Faultbox/carviewer/pkg/math"
)

// Options configure a session.
type Options struct {
	DefaultColor  string
	Swatches      []string
	RotationSpeed float32 // radians per frame
	AnimationStep float32 // seconds per frame

	CameraStart  math.Vec3
	CameraTarget math.Vec3
	MinDistance  float32
	MaxDistance  float32
	Damping      float32

	Catalog *camera.Catalog
}

// OptionsFromConfig maps loaded settings onto session options.
func OptionsFromConfig(cfg *config.Config) Options {
	v, c := cfg.Viewer, cfg.Camera
	return Options{
		DefaultColor:  v.DefaultColor,
		Swatches:      v.Swatches,
		RotationSpeed: v.RotationSpeed,
		AnimationStep: v.AnimationStep,
		CameraStart:   math.V3(c.Start[0], c.Start[1], c.Start[2]),
		CameraTarget:  math.V3(c.Target[0], c.Target[1], c.Target[2]),
		MinDistance:   c.MinDistance,
		MaxDistance:   c.MaxDistance,
		Damping:       c.Damping,
	}
}

// LoadReport summarizes what Load did to a model.
type LoadReport struct {
	Materials []scene.Enhancement
	Tier      paint.Tier
	BodyCount int
	Clips     int
}

// Session is the explicit state of one viewer.
type Session struct {
	opts Options

	model *scene.Model
	body  *paint.BodySet
	tier  paint.Tier
	mixer *animation.Mixer

	controls  *camera.OrbitControls
	sequencer *camera.Sequencer

	rotating bool
	color    string
	swatch   int
	lastView string
	frames   uint64
}

// NewSession creates a session with no model loaded.
func NewSession(opts Options) *Session {
	if opts.Catalog == nil {
		opts.Catalog = camera.DefaultCatalog()
	}
	ctl := camera.NewOrbitControls(opts.CameraStart, opts.CameraTarget)
	if opts.MinDistance > 0 {
		ctl.MinDistance = opts.MinDistance
	}
	if opts.MaxDistance > 0 {
		ctl.MaxDistance = opts.MaxDistance
	}
	ctl.Damping = opts.Damping

	return &Session{
		opts:      opts,
		body:      &paint.BodySet{},
		mixer:     animation.NewMixer(nil),
		controls:  ctl,
		sequencer: camera.NewSequencer(opts.Catalog),
	}
}

// Load replaces the current model. Materials are enhanced, the body set is
// rebuilt from scratch and the default color is applied.
func (s *Session) Load(model *scene.Model, clips []*animation.Clip) LoadReport {
	s.mixer.Stop()
	s.model = model
	s.mixer = animation.NewMixer(clips)

	report := LoadReport{Clips: len(clips)}
	if model == nil {
		s.body, s.tier = &paint.BodySet{}, paint.TierNone
		return report
	}

	report.Materials = model.Enhance()
	s.body, s.tier = paint.Resolve(model.Surfaces())
	report.Tier, report.BodyCount = s.tier, s.body.Len()

	logger.Info("model loaded",
		zap.String("model", model.Name),
		zap.Int("materials", len(report.Materials)),
		zap.Stringer("body_tier", s.tier),
		zap.Int("body_materials", s.body.Len()),
		zap.Int("clips", len(clips)))

	if s.opts.DefaultColor != "" {
		if err := s.SetColor(s.opts.DefaultColor); err != nil {
			logger.Warn("default color rejected", zap.Error(err))
		}
	}
	return report
}

// Model returns the loaded model or nil.
func (s *Session) Model() *scene.Model {
	return s.model
}

// Body returns the current body paint set.
func (s *Session) Body() *paint.BodySet {
	return s.body
}

// Controls returns the orbit controls the host feeds mouse input to.
func (s *Session) Controls() *camera.OrbitControls {
	return s.controls
}

// Sequencer returns the camera sequencer.
func (s *Session) Sequencer() *camera.Sequencer {
	return s.sequencer
}

// Mixer returns the animation mixer of the loaded model.
func (s *Session) Mixer() *animation.Mixer {
	return s.mixer
}

// SetColor parses an sRGB hex color and paints the body with it.
func (s *Session) SetColor(hex string) error {
	c, err := paint.ParseColor(hex)
	if err != nil {
		return err
	}
	s.PaintBody(c)
	s.color = hex
	for i, sw := range s.opts.Swatches {
		if strings.EqualFold(sw, hex) {
			s.swatch = i
			break
		}
	}
	return nil
}

// PaintBody applies a linear color to the body set.
func (s *Session) PaintBody(c material.RGB) {
	paint.ApplyColor(s.body, c)
}

// Color returns the last hex color applied.
func (s *Session) Color() string {
	return s.color
}

// GoTo moves the camera to a named viewpoint; unknown names are ignored.
func (s *Session) GoTo(view string) bool {
	if !s.sequencer.GoTo(view) {
		return false
	}
	s.lastView = view
	return true
}

// PlayShowcase stops the turntable and tours every viewpoint.
func (s *Session) PlayShowcase() {
	s.rotating = false
	s.sequencer.PlayShowcase()
	s.lastView = "showcase"
}

// ToggleRotation flips the turntable and returns the new state.
func (s *Session) ToggleRotation() bool {
	s.rotating = !s.rotating
	return s.rotating
}

// Rotating reports whether the turntable is on.
func (s *Session) Rotating() bool {
	return s.rotating
}

// RotationLabel is the caption for the rotate control.
func (s *Session) RotationLabel() string {
	if s.rotating {
		return "Stop Rotation"
	}
	return "Rotate"
}

// PlayAnimation selects a clip for req and plays it, stopping any other.
func (s *Session) PlayAnimation(req animation.Request) (*animation.Clip, bool) {
	clip, ok := animation.Select(req, s.mixer.Clips())
	if !ok {
		return nil, false
	}
	s.mixer.Play(clip)
	return clip, true
}

// NextClipRequest returns an index request for the clip after the playing one.
func (s *Session) NextClipRequest() animation.Request {
	next := 0
	if cur := s.mixer.Current(); cur != nil {
		next = cur.Index + 1
	}
	if n := len(s.mixer.Clips()); n > 0 {
		next %= n
	}
	return animation.ByIndex(next)
}

// ViewName returns the catalog viewpoint at position i.
func (s *Session) ViewName(i int) (string, error) {
	names := s.sequencer.Catalog().Names()
	if i < 0 || i >= len(names) {
		return "", fmt.Errorf("no viewpoint %d", i)
	}
	return names[i], nil
}
