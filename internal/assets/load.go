// Package assets loads glTF/GLB car models into the scene graph and writes
// repainted materials back out.
package assets

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/carviewer/internal/engine/animation"
	"github.com/Faultbox/carviewer/internal/engine/material"
	"github.com/Faultbox/carviewer/internal/engine/scene"
	"github.com/Faultbox/carviewer/internal/logger"
	"github.com/Faultbox/carviewer/pkg/math"
)

const (
	extDraco     = "KHR_draco_mesh_compression"
	extClearcoat = "KHR_materials_clearcoat"
)

// binding ties a loaded primitive back to its place in the document.
type binding struct {
	mesh, prim int
	node       *scene.Node
	primitive  *scene.Primitive
}

// Asset is a loaded model together with its source document.
type Asset struct {
	Path  string
	Model *scene.Model
	Clips []*animation.Clip

	doc      *gltf.Document
	bindings []binding
}

// Load opens a .gltf or .glb file.
func Load(path string) (*Asset, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening model %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	a, err := FromDocument(doc, name)
	if err != nil {
		return nil, fmt.Errorf("loading model %s: %w", path, err)
	}
	a.Path = path
	return a, nil
}

// FromDocument builds the scene graph and clips of an already decoded document.
func FromDocument(doc *gltf.Document, name string) (*Asset, error) {
	a := &Asset{doc: doc, Model: &scene.Model{Name: name}}

	mats := make([]*material.Params, len(doc.Materials))
	for i, m := range doc.Materials {
		mats[i] = convertMaterial(m)
	}

	nodes := make([]*scene.Node, len(doc.Nodes))
	for i, n := range doc.Nodes {
		nodes[i] = convertNode(n, i)
	}
	for i, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < 0 || c >= len(nodes) || nodes[c].Parent != nil || isAncestor(nodes[c], nodes[i]) {
				return nil, fmt.Errorf("node %d: bad child %d", i, c)
			}
			nodes[i].AddChild(nodes[c])
		}
	}

	var draco int
	for i, n := range doc.Nodes {
		mi, ok := indexOf(n.Mesh)
		if !ok || mi >= len(doc.Meshes) {
			continue
		}
		mesh := &scene.Mesh{Name: doc.Meshes[mi].Name}
		for pi, p := range doc.Meshes[mi].Primitives {
			prim, compressed, err := a.convertPrimitive(p, mats)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			if compressed {
				draco++
			}
			mesh.Primitives = append(mesh.Primitives, prim)
			a.bindings = append(a.bindings, binding{mesh: mi, prim: pi, node: nodes[i], primitive: prim})
		}
		nodes[i].Mesh = mesh
	}
	if draco > 0 {
		logger.Debug("decoded draco primitives", zap.String("model", name), zap.Int("primitives", draco))
	}

	a.Model.Roots = sceneRoots(doc, nodes)

	for i, anim := range doc.Animations {
		clip, err := a.convertAnimation(anim, i, nodes)
		if err != nil {
			return nil, fmt.Errorf("animation %d: %w", i, err)
		}
		a.Clips = append(a.Clips, clip)
	}
	return a, nil
}

// isAncestor reports whether a is n or one of its parents.
func isAncestor(a, n *scene.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == a {
			return true
		}
	}
	return false
}

// sceneRoots returns the root nodes of the default scene, or every
// parentless node when the document declares no scene.
func sceneRoots(doc *gltf.Document, nodes []*scene.Node) []*scene.Node {
	var roots []*scene.Node
	if si, ok := indexOf(doc.Scene); ok && si < len(doc.Scenes) {
		for _, n := range doc.Scenes[si].Nodes {
			if n >= 0 && n < len(nodes) {
				roots = append(roots, nodes[n])
			}
		}
		return roots
	}
	if len(doc.Scenes) > 0 {
		for _, n := range doc.Scenes[0].Nodes {
			if n >= 0 && n < len(nodes) {
				roots = append(roots, nodes[n])
			}
		}
		return roots
	}
	for _, n := range nodes {
		if n.Parent == nil {
			roots = append(roots, n)
		}
	}
	return roots
}

func convertNode(n *gltf.Node, i int) *scene.Node {
	name := n.Name
	if name == "" {
		name = fmt.Sprintf("node_%d", i)
	}
	node := scene.NewNode(name)

	if m := n.MatrixOrDefault(); m != identityMatrix {
		node.Translation, node.Rotation, node.Scale = decompose(m)
		return node
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	node.Translation = math.V3(float32(t[0]), float32(t[1]), float32(t[2]))
	node.Rotation = math.Quat{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])}
	node.Scale = math.V3(float32(s[0]), float32(s[1]), float32(s[2]))
	return node
}

func (a *Asset) convertPrimitive(p *gltf.Primitive, mats []*material.Params) (*scene.Primitive, bool, error) {
	prim := &scene.Primitive{MaterialIndex: -1}
	if mi, ok := indexOf(p.Material); ok && mi < len(mats) {
		prim.Material = mats[mi]
		prim.MaterialIndex = mi
	}

	posIdx, hasPos := p.Attributes["POSITION"]
	if hasPos && posIdx < len(a.doc.Accessors) {
		prim.Bounds = accessorBounds(a.doc.Accessors[posIdx])
	}

	if _, ok := p.Extensions[extDraco]; ok {
		g, err := decodeDraco(a.doc, p)
		if err != nil {
			return nil, false, err
		}
		prim.Positions = toVec3s(g.Positions)
		if len(g.Normals) == len(g.Positions) {
			prim.Normals = toVec3s(g.Normals)
		}
		prim.Indices = g.Indices
		if len(prim.Indices) == 0 {
			prim.Indices = sequence(len(prim.Positions))
		}
		return prim, true, nil
	}
	if !hasPos || p.Mode != gltf.PrimitiveTriangles {
		return prim, false, nil
	}

	pos, err := modeler.ReadPosition(a.doc, a.doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, false, fmt.Errorf("reading positions: %w", err)
	}
	prim.Positions = toVec3s(pos)

	if ni, ok := p.Attributes["NORMAL"]; ok && ni < len(a.doc.Accessors) {
		nrm, err := modeler.ReadNormal(a.doc, a.doc.Accessors[ni], nil)
		if err != nil {
			return nil, false, fmt.Errorf("reading normals: %w", err)
		}
		prim.Normals = toVec3s(nrm)
	}

	if ii, ok := indexOf(p.Indices); ok && ii < len(a.doc.Accessors) {
		idx, err := modeler.ReadIndices(a.doc, a.doc.Accessors[ii], nil)
		if err != nil {
			return nil, false, fmt.Errorf("reading indices: %w", err)
		}
		prim.Indices = idx
	} else {
		prim.Indices = sequence(len(pos))
	}
	return prim, false, nil
}

// sequence returns the indices 0..n-1 for non-indexed triangle lists.
func sequence(n int) []uint32 {
	idx := make([]uint32, n)
	for i := range idx {
		idx[i] = uint32(i)
	}
	return idx
}

func accessorBounds(acc *gltf.Accessor) scene.Bounds {
	if len(acc.Min) < 3 || len(acc.Max) < 3 {
		return scene.Bounds{}
	}
	return scene.NewBounds(
		math.V3(float32(acc.Min[0]), float32(acc.Min[1]), float32(acc.Min[2])),
		math.V3(float32(acc.Max[0]), float32(acc.Max[1]), float32(acc.Max[2])),
	)
}

// clearcoat is the KHR_materials_clearcoat payload.
type clearcoat struct {
	ClearcoatFactor          float64 `json:"clearcoatFactor"`
	ClearcoatRoughnessFactor float64 `json:"clearcoatRoughnessFactor"`
}

// convertMaterial maps glTF metallic-roughness onto shading parameters.
// Materials with the clearcoat extension get clearcoat fields.
func convertMaterial(m *gltf.Material) *material.Params {
	p := material.NewParams(m.Name)
	p.Metalness, p.Roughness = 1, 1
	if pbr := m.PBRMetallicRoughness; pbr != nil {
		if c := pbr.BaseColorFactor; c != nil {
			*p.Color = material.RGB{R: float32(c[0]), G: float32(c[1]), B: float32(c[2])}
			p.Opacity = float32(c[3])
		}
		if pbr.MetallicFactor != nil {
			p.Metalness = float32(*pbr.MetallicFactor)
		}
		if pbr.RoughnessFactor != nil {
			p.Roughness = float32(*pbr.RoughnessFactor)
		}
	}
	p.Transparent = m.AlphaMode == gltf.AlphaBlend
	p.DoubleSided = m.DoubleSided
	if p.DoubleSided {
		p.ShadowSide = material.SideDouble
	}

	if raw, ok := m.Extensions[extClearcoat]; ok {
		var cc clearcoat
		if err := remarshal(raw, &cc); err != nil {
			logger.Warn("bad clearcoat extension", zap.String("material", m.Name), zap.Error(err))
		}
		p.Clearcoat = material.Float(float32(cc.ClearcoatFactor))
		p.ClearcoatRoughness = material.Float(float32(cc.ClearcoatRoughnessFactor))
	}
	return p
}

// remarshal decodes an extension value, which is raw JSON when read from a
// file and a Go value when set in memory.
func remarshal(v any, out any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// indexOf reads an optional document index.
func indexOf[T int | *int](v T) (int, bool) {
	switch x := any(v).(type) {
	case int:
		return x, x >= 0
	case *int:
		if x == nil || *x < 0 {
			return 0, false
		}
		return *x, true
	}
	return 0, false
}
