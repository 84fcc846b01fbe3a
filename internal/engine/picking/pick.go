package picking

import (
	"github.com/Faultbox/carviewer/internal/engine/scene"
	"github.com/Faultbox/carviewer/pkg/math"
)

// Hit is the nearest part along a ray.
type Hit struct {
	Node      *scene.Node
	Primitive *scene.Primitive
	Distance  float32
	Point     math.Vec3
}

// Pick returns the mesh node nearest along r. Primitives with vertex data are
// tested per triangle; bounds-only primitives fall back to their box.
func Pick(m *scene.Model, r Ray) (Hit, bool) {
	var best Hit
	found := false
	if m == nil || m.Hidden {
		return best, false
	}
	root := m.Transform()
	m.Walk(func(n *scene.Node) {
		if n.Mesh == nil {
			return
		}
		world := root.Mul(n.World())
		if _, ok := r.IntersectBounds(n.LocalBounds().Transform(world)); !ok {
			return
		}
		for _, p := range n.Mesh.Primitives {
			t, ok := intersectPrimitive(r, p, world)
			if ok && (!found || t < best.Distance) {
				best = Hit{Node: n, Primitive: p, Distance: t, Point: r.At(t)}
				found = true
			}
		}
	})
	return best, found
}

func intersectPrimitive(r Ray, p *scene.Primitive, world math.Mat4) (float32, bool) {
	if len(p.Positions) == 0 {
		return r.IntersectBounds(p.Bounds.Transform(world))
	}
	vertex := func(i uint32) math.Vec3 { return world.TransformVec3(p.Positions[i]) }

	var best float32
	found := false
	test := func(a, b, c uint32) {
		if int(a) >= len(p.Positions) || int(b) >= len(p.Positions) || int(c) >= len(p.Positions) {
			return
		}
		if t, ok := r.IntersectTriangle(vertex(a), vertex(b), vertex(c)); ok && (!found || t < best) {
			best, found = t, true
		}
	}
	if len(p.Indices) > 0 {
		for i := 0; i+2 < len(p.Indices); i += 3 {
			test(p.Indices[i], p.Indices[i+1], p.Indices[i+2])
		}
	} else {
		for i := uint32(0); int(i)+2 < len(p.Positions); i += 3 {
			test(i, i+1, i+2)
		}
	}
	return best, found
}
