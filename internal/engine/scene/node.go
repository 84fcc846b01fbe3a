// Package scene holds the loaded car model as a node hierarchy of meshes,
// each primitive owning its own shading parameters.
package scene

import (
	"github.com/Faultbox/carviewer/internal/engine/material"
	"github.com/Faultbox/carviewer/pkg/math"
)

// Primitive is one drawable piece of a mesh with a single material.
type Primitive struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	Indices   []uint32

	// Bounds is the local-space box of the primitive. Loaders fill it from
	// accessor min/max when the vertex data itself is unavailable.
	Bounds Bounds

	Material *material.Params

	// MaterialIndex is the source material slot, -1 when none.
	MaterialIndex int
}

// Mesh is a named list of primitives.
type Mesh struct {
	Name       string
	Primitives []*Primitive
}

// Node is an element of the model hierarchy with a local TRS transform.
type Node struct {
	Name     string
	Parent   *Node
	Children []*Node
	Mesh     *Mesh

	Translation math.Vec3
	Rotation    math.Quat
	Scale       math.Vec3

	CastShadow    bool
	ReceiveShadow bool
}

// NewNode returns a node with the identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: math.QuatIdentity(),
		Scale:    math.V3(1, 1, 1),
	}
}

// AddChild attaches c under n.
func (n *Node) AddChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

// Local returns the node transform relative to its parent.
func (n *Node) Local() math.Mat4 {
	return math.FromTRS(n.Translation, n.Rotation, n.Scale)
}

// World returns the node transform in model space (parent chain applied).
func (n *Node) World() math.Mat4 {
	m := n.Local()
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.Local().Mul(m)
	}
	return m
}

// Materials returns the distinct materials of the node's mesh in primitive order.
func (n *Node) Materials() []*material.Params {
	if n.Mesh == nil {
		return nil
	}
	var out []*material.Params
	seen := make(map[*material.Params]bool)
	for _, p := range n.Mesh.Primitives {
		if p.Material == nil || seen[p.Material] {
			continue
		}
		seen[p.Material] = true
		out = append(out, p.Material)
	}
	return out
}

// LocalBounds returns the union of the mesh's primitive boxes, recomputed
// from positions when present.
func (n *Node) LocalBounds() Bounds {
	var b Bounds
	if n.Mesh == nil {
		return b
	}
	for _, p := range n.Mesh.Primitives {
		if len(p.Positions) == 0 {
			b.Union(p.Bounds)
			continue
		}
		for _, v := range p.Positions {
			b.Extend(v)
		}
	}
	return b
}
