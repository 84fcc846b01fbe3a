// Package lighting describes the studio light rig and stage the car is
// shown on, packed for GPU upload.
package lighting

import (
	"github.com/chewxy/math32"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/carviewer/pkg/math"
)

// MaxDirectionalLights is the size of the directional light arrays in shaders.
const MaxDirectionalLights = 4

// DirectionalLight shines from Position toward the origin.
type DirectionalLight struct {
	Name       string
	Position   math.Vec3
	Color      [3]float32
	Intensity  float32
	CastShadow bool
}

// Direction returns the unit vector pointing from the scene toward the light.
func (l DirectionalLight) Direction() math.Vec3 {
	return l.Position.Normalize()
}

// SpotLight is a cone light aimed at the origin.
type SpotLight struct {
	Position  math.Vec3
	Color     [3]float32
	Intensity float32
	Angle     float32 // half-angle of the cone, radians
	Penumbra  float32 // fraction of the cone that fades
	Decay     float32
	Distance  float32
}

// CosCutoffs returns the cosines of the inner and outer cone edges.
func (s SpotLight) CosCutoffs() (inner, outer float32) {
	return math32.Cos(s.Angle * (1 - s.Penumbra)), math32.Cos(s.Angle)
}

// Hemisphere blends between a sky and ground color by surface normal.
type Hemisphere struct {
	Sky       [3]float32
	Ground    [3]float32
	Intensity float32
}

// Rig is the full light setup.
type Rig struct {
	Ambient          [3]float32
	AmbientIntensity float32
	Hemisphere       Hemisphere
	Directional      []DirectionalLight
	Spot             SpotLight
	Exposure         float32
}

// StudioRig returns the showroom lighting: soft ambient and sky fill, a
// shadow casting key light, fill and rim lights, and a spot on the front.
func StudioRig() *Rig {
	white := hexColor("#ffffff")
	return &Rig{
		Ambient:          white,
		AmbientIntensity: 0.7,
		Hemisphere: Hemisphere{
			Sky:       hexColor("#ddeeff"),
			Ground:    hexColor("#202020"),
			Intensity: 0.5,
		},
		Directional: []DirectionalLight{
			{Name: "key", Position: math.V3(10, 10, 10), Color: white, Intensity: 1.2, CastShadow: true},
			{Name: "fill", Position: math.V3(-10, 8, -10), Color: white, Intensity: 0.8},
			{Name: "rim", Position: math.V3(0, 5, -10), Color: white, Intensity: 0.6},
		},
		Spot: SpotLight{
			Position:  math.V3(5, 10, 15),
			Color:     white,
			Intensity: 1,
			Angle:     math32.Pi / 6,
			Penumbra:  0.3,
			Decay:     1.5,
			Distance:  40,
		},
		Exposure: 1.2,
	}
}

// ShadowCaster returns the first directional light that casts shadows.
func (r *Rig) ShadowCaster() (DirectionalLight, bool) {
	for _, l := range r.Directional {
		if l.CastShadow {
			return l, true
		}
	}
	return DirectionalLight{}, false
}

// Count returns the number of directional lights that fit the shader arrays.
func (r *Rig) Count() int {
	if len(r.Directional) > MaxDirectionalLights {
		return MaxDirectionalLights
	}
	return len(r.Directional)
}

// Directions returns light directions as a flat slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (r *Rig) Directions() []float32 {
	result := make([]float32, MaxDirectionalLights*3)
	for i := 0; i < r.Count(); i++ {
		d := r.Directional[i].Direction()
		result[i*3+0] = d.X
		result[i*3+1] = d.Y
		result[i*3+2] = d.Z
	}
	return result
}

// Radiance returns color times intensity per light as a flat slice.
func (r *Rig) Radiance() []float32 {
	result := make([]float32, MaxDirectionalLights*3)
	for i := 0; i < r.Count(); i++ {
		l := r.Directional[i]
		result[i*3+0] = l.Color[0] * l.Intensity
		result[i*3+1] = l.Color[1] * l.Intensity
		result[i*3+2] = l.Color[2] * l.Intensity
	}
	return result
}

// Surface is a flat stage mesh material.
type Surface struct {
	Color     [3]float32
	Roughness float32
	Metalness float32
}

// Stage is the floor and the disc the car stands on.
type Stage struct {
	FloorSize      float32
	Floor          Surface
	PlatformRadius float32
	PlatformHeight float32
	Platform       Surface
	Background     [3]float32
}

// DefaultStage returns a glossy white floor with a blue platform under
// the car on the given background color.
func DefaultStage(background string) Stage {
	return Stage{
		FloorSize:      100,
		Floor:          Surface{Color: hexColor("#ffffff"), Roughness: 0.1, Metalness: 0.3},
		PlatformRadius: 5,
		PlatformHeight: 0.01,
		Platform:       Surface{Color: hexColor("#005eb8"), Roughness: 0.2, Metalness: 0.5},
		Background:     hexColor(background),
	}
}

// hexColor converts an sRGB hex string to linear RGB, white when invalid.
func hexColor(hex string) [3]float32 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return [3]float32{1, 1, 1}
	}
	r, g, b := c.LinearRgb()
	return [3]float32{float32(r), float32(g), float32(b)}
}
