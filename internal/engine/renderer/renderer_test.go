package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/carviewer/internal/engine/lighting"
	"github.com/Faultbox/carviewer/internal/engine/material"
	"github.com/Faultbox/carviewer/internal/engine/scene"
	"github.com/Faultbox/carviewer/pkg/math"
)

func triangle(mat *material.Params, z float32) *scene.Primitive {
	return &scene.Primitive{
		Positions: []math.Vec3{math.V3(0, 0, z), math.V3(1, 0, z), math.V3(0, 1, z)},
		Indices:   []uint32{0, 1, 2},
		Bounds:    scene.NewBounds(math.V3(0, 0, z), math.V3(1, 1, z)),
		Material:  mat,
	}
}

func TestPrimitiveDataComputesNormals(t *testing.T) {
	d := primitiveData(triangle(nil, 0))
	require.Len(t, d.vertices, 3*floatsPerVertex)
	for i := 0; i < 3; i++ {
		n := d.vertices[i*floatsPerVertex+3 : i*floatsPerVertex+6]
		assert.Equal(t, []float32{0, 0, 1}, n)
	}
}

func TestPrimitiveDataKeepsNormals(t *testing.T) {
	p := triangle(nil, 0)
	p.Normals = []math.Vec3{{Y: 1}, {Y: 1}, {Y: 1}}
	d := primitiveData(p)
	assert.Equal(t, float32(1), d.vertices[4])
	assert.Equal(t, p.Indices, d.indices)
}

func TestSmoothNormalsSkipsBadIndices(t *testing.T) {
	n := smoothNormals([]math.Vec3{{}, {X: 1}}, []uint32{0, 1, 7})
	assert.Equal(t, []math.Vec3{{Y: 1}, {Y: 1}}, n)
}

func TestDiscData(t *testing.T) {
	d := discData(5, 0.01, 16)
	assert.Len(t, d.vertices, (1+17+2*17)*floatsPerVertex)
	assert.Len(t, d.indices, 16*3+16*6)
	for _, i := range d.indices {
		assert.Less(t, int(i), len(d.vertices)/floatsPerVertex)
	}

	// first cap triangle faces up
	v := func(i uint32) math.Vec3 {
		o := int(i) * floatsPerVertex
		return math.V3(d.vertices[o], d.vertices[o+1], d.vertices[o+2])
	}
	a, b, c := v(d.indices[0]), v(d.indices[1]), v(d.indices[2])
	assert.Greater(t, b.Sub(a).Cross(c.Sub(a)).Y, float32(0))

	assert.Len(t, discData(1, 1, 1).indices, 3*3+3*6)
}

func TestPlaneData(t *testing.T) {
	d := planeData(100)
	assert.Equal(t, float32(-50), d.vertices[0])
	assert.Len(t, d.indices, 6)
}

func TestMaterialUniforms(t *testing.T) {
	assert.Equal(t, defaultSurface, materialUniforms(nil))

	p := material.NewParams("paint")
	material.ApplyCategory(material.BodyPaint, p)
	*p.Color = material.RGB{R: 0.5, G: 0.1, B: 0.1}
	u := materialUniforms(p)
	assert.Equal(t, [3]float32{0.5, 0.1, 0.1}, u.Color)
	assert.InDelta(t, 2.0, u.EnvIntensity, 1e-6)
	assert.InDelta(t, 1.0, u.Clearcoat, 1e-6)
	assert.InDelta(t, 0.1, u.ClearcoatRoughness, 1e-6)
	assert.False(t, u.Transparent)

	glass := material.NewParams("glass")
	material.ApplyCategory(material.Glass, glass)
	glass.DoubleSided = true
	u = materialUniforms(glass)
	assert.True(t, u.Transparent)
	assert.True(t, u.DoubleSided)
	assert.InDelta(t, 0.8, u.Opacity, 1e-6)

	s := stageUniforms(lighting.DefaultStage("#ffffff").Platform)
	assert.InDelta(t, 0.5, s.Metalness, 1e-6)
}

func TestBuildDrawListOrder(t *testing.T) {
	glass := material.NewParams("glass")
	glass.Transparent = true
	paint := material.NewParams("paint")

	near := scene.NewNode("near")
	near.Mesh = &scene.Mesh{Primitives: []*scene.Primitive{triangle(glass, 4)}}
	far := scene.NewNode("far")
	far.Mesh = &scene.Mesh{Primitives: []*scene.Primitive{triangle(glass, -4)}}
	body := scene.NewNode("body")
	body.CastShadow = true
	body.Mesh = &scene.Mesh{Primitives: []*scene.Primitive{triangle(paint, 0), {}}}

	m := &scene.Model{Roots: []*scene.Node{near, far, body}}
	items := buildDrawList(m, math.V3(0, 0, 10))
	require.Len(t, items, 3)
	assert.False(t, items[0].surface.Transparent)
	assert.True(t, items[0].castShadow)
	assert.Same(t, far.Mesh.Primitives[0], items[1].prim)
	assert.Same(t, near.Mesh.Primitives[0], items[2].prim)

	m.Hidden = true
	assert.Empty(t, buildDrawList(m, math.Vec3{}))
	assert.Empty(t, buildDrawList(nil, math.Vec3{}))
}
