package renderer

import (
	"sort"

	"github.com/Faultbox/carviewer/internal/engine/lighting"
	"github.com/Faultbox/carviewer/internal/engine/material"
	"github.com/Faultbox/carviewer/internal/engine/scene"
	"github.com/Faultbox/carviewer/pkg/math"
)

// surfaceUniforms is a material flattened for the lit shader.
type surfaceUniforms struct {
	Color              [3]float32
	Opacity            float32
	Roughness          float32
	Metalness          float32
	Clearcoat          float32
	ClearcoatRoughness float32
	EnvIntensity       float32
	DoubleSided        bool
	Transparent        bool
}

// defaultSurface shades primitives that have no material.
var defaultSurface = surfaceUniforms{
	Color: [3]float32{0.8, 0.8, 0.8}, Opacity: 1, Roughness: 1, EnvIntensity: 1,
}

func materialUniforms(p *material.Params) surfaceUniforms {
	if p == nil {
		return defaultSurface
	}
	u := surfaceUniforms{
		Color:        [3]float32{1, 1, 1},
		Opacity:      p.Opacity,
		Roughness:    p.Roughness,
		Metalness:    p.Metalness,
		EnvIntensity: 1,
		DoubleSided:  p.DoubleSided || p.ShadowSide == material.SideDouble,
		Transparent:  p.Transparent,
	}
	if p.Color != nil {
		u.Color = [3]float32{p.Color.R, p.Color.G, p.Color.B}
	}
	if p.EnvMapIntensity != nil {
		u.EnvIntensity = *p.EnvMapIntensity
	}
	if p.Clearcoat != nil {
		u.Clearcoat = *p.Clearcoat
	}
	if p.ClearcoatRoughness != nil {
		u.ClearcoatRoughness = *p.ClearcoatRoughness
	}
	return u
}

func stageUniforms(s lighting.Surface) surfaceUniforms {
	return surfaceUniforms{
		Color:        s.Color,
		Opacity:      1,
		Roughness:    s.Roughness,
		Metalness:    s.Metalness,
		EnvIntensity: 1,
	}
}

// drawItem is one primitive placed in the world.
type drawItem struct {
	prim          *scene.Primitive
	world         math.Mat4
	surface       surfaceUniforms
	castShadow    bool
	receiveShadow bool
	depth         float32 // view distance of the primitive center
}

// buildDrawList flattens the model into opaque items followed by
// transparent items sorted back to front from eye. Hidden models yield
// nothing.
func buildDrawList(m *scene.Model, eye math.Vec3) []drawItem {
	if m == nil || m.Hidden {
		return nil
	}
	root := m.Transform()
	var opaque, transparent []drawItem
	m.Walk(func(n *scene.Node) {
		if n.Mesh == nil {
			return
		}
		world := root.Mul(n.World())
		for _, p := range n.Mesh.Primitives {
			if len(p.Positions) == 0 || len(p.Indices) == 0 {
				continue
			}
			it := drawItem{
				prim:          p,
				world:         world,
				surface:       materialUniforms(p.Material),
				castShadow:    n.CastShadow,
				receiveShadow: n.ReceiveShadow,
			}
			if it.surface.Transparent {
				center := world.TransformVec3(p.Bounds.Center())
				it.depth = center.Distance(eye)
				transparent = append(transparent, it)
			} else {
				opaque = append(opaque, it)
			}
		}
	})
	sort.SliceStable(transparent, func(i, j int) bool {
		return transparent[i].depth > transparent[j].depth
	})
	return append(opaque, transparent...)
}
