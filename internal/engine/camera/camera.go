// Package camera provides the viewer's orbit controls, the named viewpoint
// catalog and the sequencer that tweens the camera between viewpoints.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/carviewer/pkg/math"
)

// OrbitControls orbits Position around Target. Input accumulates into
// pending deltas that Update eases in by the damping factor.
type OrbitControls struct {
	Position math.Vec3
	Target   math.Vec3

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Damping is the fraction of pending motion applied per Update; 0
	// applies it all at once.
	Damping float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	deltaYaw   float32
	deltaPitch float32
	zoom       float32
}

// NewOrbitControls creates controls at position looking at target.
func NewOrbitControls(position, target math.Vec3) *OrbitControls {
	return &OrbitControls{
		Position:        position,
		Target:          target,
		MinDistance:     3,
		MaxDistance:     15,
		MinPitch:        -1.55,
		MaxPitch:        1.55,
		Damping:         0.05,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		zoom:            1,
	}
}

// Distance returns the current distance to the target.
func (c *OrbitControls) Distance() float32 {
	return c.Position.Distance(c.Target)
}

// HandleDrag queues a rotation from a mouse drag delta in pixels.
func (c *OrbitControls) HandleDrag(deltaX, deltaY float32) {
	c.deltaYaw -= deltaX * c.DragSensitivity
	c.deltaPitch += deltaY * c.DragSensitivity
}

// HandleZoom queues a dolly from a scroll wheel delta; positive zooms in.
func (c *OrbitControls) HandleZoom(delta float32) {
	c.zoom *= 1 - delta*c.ZoomSensitivity
	if c.zoom < 0.1 {
		c.zoom = 0.1
	}
}

// Update applies pending input and the distance and pitch limits, then
// returns the view matrix. Call once per frame after anything that moved
// Position or Target.
func (c *OrbitControls) Update() math.Mat4 {
	offset := c.Position.Sub(c.Target)
	radius := offset.Length()

	var yaw, pitch float32
	if radius > 1e-6 {
		yaw = math32.Atan2(offset.X, offset.Z)
		pitch = math32.Asin(clamp(offset.Y/radius, -1, 1))
	}

	step := c.Damping
	if step <= 0 || step > 1 {
		step = 1
	}
	yaw += c.deltaYaw * step
	pitch += c.deltaPitch * step
	c.deltaYaw *= 1 - step
	c.deltaPitch *= 1 - step

	radius *= c.zoom
	c.zoom = 1

	pitch = clamp(pitch, c.MinPitch, c.MaxPitch)
	radius = clamp(radius, c.MinDistance, c.MaxDistance)

	sinP, cosP := math32.Sincos(pitch)
	sinY, cosY := math32.Sincos(yaw)
	c.Position = c.Target.Add(math.V3(radius*cosP*sinY, radius*sinP, radius*cosP*cosY))

	return c.ViewMatrix()
}

// ViewMatrix returns the view matrix for the current position and target.
func (c *OrbitControls) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, math.V3(0, 1, 0))
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
