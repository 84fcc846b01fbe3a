package scene

import (
	"github.com/Faultbox/carviewer/internal/engine/material"
	"github.com/Faultbox/carviewer/pkg/math"
)

// Model is a loaded car: root nodes, a flat node list in depth-first order,
// and a whole-model yaw used by the turntable rotation.
type Model struct {
	Name  string
	Roots []*Node

	// Yaw is the rotation about +Y applied to the whole model, in radians.
	Yaw float32

	// Hidden excludes the model from drawing, e.g. during environment capture.
	Hidden bool
}

// Surface is one mesh node as seen by the paint resolver.
type Surface struct {
	Name      string
	Materials []*material.Params
	Bounds    Bounds
}

// Enhancement records the category chosen for one material at load.
type Enhancement struct {
	Node     string
	Material string
	Category material.Category
}

// Walk visits every node depth-first, parents before children.
func (m *Model) Walk(fn func(*Node)) {
	var visit func(n *Node)
	visit = func(n *Node) {
		fn(n)
		for _, c := range n.Children {
			visit(c)
		}
	}
	for _, r := range m.Roots {
		visit(r)
	}
}

// Nodes returns all nodes in walk order.
func (m *Model) Nodes() []*Node {
	var out []*Node
	m.Walk(func(n *Node) { out = append(out, n) })
	return out
}

// FindNode returns the first node named name.
func (m *Model) FindNode(name string) *Node {
	var found *Node
	m.Walk(func(n *Node) {
		if found == nil && n.Name == name {
			found = n
		}
	})
	return found
}

// Transform is the whole-model matrix applied on top of node world matrices.
func (m *Model) Transform() math.Mat4 {
	return math.RotateY(m.Yaw)
}

// Surfaces lists every mesh node with its materials and model-space bounds.
func (m *Model) Surfaces() []Surface {
	var out []Surface
	m.Walk(func(n *Node) {
		if n.Mesh == nil {
			return
		}
		out = append(out, Surface{
			Name:      n.Name,
			Materials: n.Materials(),
			Bounds:    n.LocalBounds().Transform(n.World()),
		})
	})
	return out
}

// Bounds returns the model-space box of all meshes.
func (m *Model) Bounds() Bounds {
	var b Bounds
	for _, s := range m.Surfaces() {
		b.Union(s.Bounds)
	}
	return b
}

// Enhance gives every primitive its own copy of its material, classifies
// the copy by material name (node name when unnamed) and applies the
// category's shading. Mesh nodes are set to cast and receive shadows.
func (m *Model) Enhance() []Enhancement {
	var out []Enhancement
	m.Walk(func(n *Node) {
		if n.Mesh == nil {
			return
		}
		n.CastShadow = true
		n.ReceiveShadow = true

		clones := make(map[*material.Params]*material.Params)
		for _, p := range n.Mesh.Primitives {
			if p.Material == nil {
				continue
			}
			if c, ok := clones[p.Material]; ok {
				p.Material = c
				continue
			}
			c := p.Material.Clone()
			clones[p.Material] = c
			p.Material = c
			cat := material.Enhance(c, n.Name)
			out = append(out, Enhancement{Node: n.Name, Material: c.Name, Category: cat})
		}
	})
	return out
}
