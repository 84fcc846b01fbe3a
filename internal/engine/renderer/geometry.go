package renderer

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/carviewer/internal/engine/scene"
	"github.com/Faultbox/carviewer/pkg/math"
)

// floatsPerVertex is position + normal.
const floatsPerVertex = 6

// meshData is interleaved vertex data ready for upload.
type meshData struct {
	vertices []float32
	indices  []uint32
}

// primitiveData interleaves a primitive's positions and normals. Missing
// normals are computed from the triangles.
func primitiveData(p *scene.Primitive) meshData {
	normals := p.Normals
	if len(normals) != len(p.Positions) {
		normals = smoothNormals(p.Positions, p.Indices)
	}
	v := make([]float32, 0, len(p.Positions)*floatsPerVertex)
	for i, pos := range p.Positions {
		n := normals[i]
		v = append(v, pos.X, pos.Y, pos.Z, n.X, n.Y, n.Z)
	}
	return meshData{vertices: v, indices: p.Indices}
}

// smoothNormals averages area-weighted face normals per vertex.
func smoothNormals(pos []math.Vec3, idx []uint32) []math.Vec3 {
	out := make([]math.Vec3, len(pos))
	for i := 0; i+2 < len(idx); i += 3 {
		a, b, c := idx[i], idx[i+1], idx[i+2]
		if int(a) >= len(pos) || int(b) >= len(pos) || int(c) >= len(pos) {
			continue
		}
		n := pos[b].Sub(pos[a]).Cross(pos[c].Sub(pos[a]))
		out[a] = out[a].Add(n)
		out[b] = out[b].Add(n)
		out[c] = out[c].Add(n)
	}
	for i := range out {
		out[i] = out[i].Normalize()
		if out[i] == (math.Vec3{}) {
			out[i] = math.V3(0, 1, 0)
		}
	}
	return out
}

// planeData is a square on y=0 facing up.
func planeData(size float32) meshData {
	h := size / 2
	return meshData{
		vertices: []float32{
			-h, 0, -h, 0, 1, 0,
			-h, 0, h, 0, 1, 0,
			h, 0, h, 0, 1, 0,
			h, 0, -h, 0, 1, 0,
		},
		indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// discData is a flat cylinder standing on y=0 with a top cap and a side.
func discData(radius, height float32, segments int) meshData {
	if segments < 3 {
		segments = 3
	}
	var d meshData
	// top cap: center then rim
	d.vertices = append(d.vertices, 0, height, 0, 0, 1, 0)
	for i := 0; i <= segments; i++ {
		s, c := math32.Sincos(2 * math32.Pi * float32(i) / float32(segments))
		d.vertices = append(d.vertices, radius*c, height, radius*s, 0, 1, 0)
	}
	for i := 1; i <= segments; i++ {
		d.indices = append(d.indices, 0, uint32(i+1), uint32(i))
	}

	// side: pairs of bottom and top vertices
	base := uint32(len(d.vertices) / floatsPerVertex)
	for i := 0; i <= segments; i++ {
		s, c := math32.Sincos(2 * math32.Pi * float32(i) / float32(segments))
		d.vertices = append(d.vertices,
			radius*c, 0, radius*s, c, 0, s,
			radius*c, height, radius*s, c, 0, s,
		)
	}
	for i := uint32(0); i < uint32(segments); i++ {
		b0, t0 := base+2*i, base+2*i+1
		b1, t1 := b0+2, t0+2
		d.indices = append(d.indices, b0, t0, t1, b0, t1, b1)
	}
	return d
}
