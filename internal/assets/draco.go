package assets

import (
	"fmt"

	"github.com/qmuntal/draco-go/gltf/draco"
	"github.com/qmuntal/gltf"

	"github.com/Faultbox/carviewer/pkg/math"
)

// dracoExt is the KHR_draco_mesh_compression primitive payload.
type dracoExt struct {
	BufferView int            `json:"bufferView"`
	Attributes map[string]int `json:"attributes"`
}

// dracoGeometry is the decompressed vertex data of one primitive.
type dracoGeometry struct {
	Positions [][3]float32
	Normals   [][3]float32
	Indices   []uint32
}

// decodeDraco decompresses the geometry of a Draco primitive.
var decodeDraco = func(doc *gltf.Document, p *gltf.Primitive) (*dracoGeometry, error) {
	var ext dracoExt
	if err := remarshal(p.Extensions[extDraco], &ext); err != nil {
		return nil, fmt.Errorf("%s extension: %w", extDraco, err)
	}
	if ext.BufferView < 0 || ext.BufferView >= len(doc.BufferViews) {
		return nil, fmt.Errorf("%s: buffer view %d out of range", extDraco, ext.BufferView)
	}
	if _, ok := ext.Attributes["POSITION"]; !ok {
		return nil, fmt.Errorf("%s: no POSITION attribute", extDraco)
	}

	mesh, err := draco.UnmarshalMesh(doc, doc.BufferViews[ext.BufferView])
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", extDraco, err)
	}

	g := &dracoGeometry{}
	pos, err := mesh.ReadAttr(p, "POSITION", nil)
	if err != nil {
		return nil, fmt.Errorf("draco positions: %w", err)
	}
	var ok bool
	if g.Positions, ok = pos.([][3]float32); !ok {
		return nil, fmt.Errorf("draco positions: unexpected type %T", pos)
	}
	if _, has := ext.Attributes["NORMAL"]; has {
		nrm, err := mesh.ReadAttr(p, "NORMAL", nil)
		if err != nil {
			return nil, fmt.Errorf("draco normals: %w", err)
		}
		g.Normals, _ = nrm.([][3]float32)
	}
	if g.Indices, err = mesh.ReadIndices(nil); err != nil {
		return nil, fmt.Errorf("draco indices: %w", err)
	}
	return g, nil
}

func toVec3s(in [][3]float32) []math.Vec3 {
	if len(in) == 0 {
		return nil
	}
	out := make([]math.Vec3, len(in))
	for i, v := range in {
		out[i] = math.V3(v[0], v[1], v[2])
	}
	return out
}
