package assets

import (
	"fmt"
	"slices"

	"github.com/qmuntal/gltf"

	"github.com/Faultbox/carviewer/internal/engine/material"
)

// ApplyMaterials writes the current shading parameters of every loaded
// primitive back into the document. Primitives whose parameters diverged
// from others sharing a source material get their own material copy.
// Meshes instanced by several nodes keep the first node's parameters.
func (a *Asset) ApplyMaterials() {
	doc := a.doc
	owner := make(map[int]*material.Params)
	written := make(map[*material.Params]int)
	done := make(map[[2]int]bool)

	for _, b := range a.bindings {
		key := [2]int{b.mesh, b.prim}
		p := b.primitive.Material
		if done[key] || p == nil || b.primitive.MaterialIndex < 0 {
			continue
		}
		done[key] = true

		idx, ok := written[p]
		if !ok {
			idx = b.primitive.MaterialIndex
			if prev, taken := owner[idx]; taken && prev != p {
				cp := *doc.Materials[idx]
				doc.Materials = append(doc.Materials, &cp)
				idx = len(doc.Materials) - 1
			}
			owner[idx] = p
			written[p] = idx
			doc.Materials[idx] = a.exportMaterial(doc.Materials[idx], p)
		}
		doc.Meshes[b.mesh].Primitives[b.prim].Material = gltf.Index(idx)
	}
}

func (a *Asset) exportMaterial(src *gltf.Material, p *material.Params) *gltf.Material {
	m := *src
	pbr := gltf.PBRMetallicRoughness{}
	if src.PBRMetallicRoughness != nil {
		pbr = *src.PBRMetallicRoughness
	}
	if p.Color != nil {
		pbr.BaseColorFactor = &[4]float64{float64(p.Color.R), float64(p.Color.G), float64(p.Color.B), float64(p.Opacity)}
	}
	pbr.MetallicFactor = gltf.Float(float64(p.Metalness))
	pbr.RoughnessFactor = gltf.Float(float64(p.Roughness))
	m.PBRMetallicRoughness = &pbr

	if p.Transparent {
		m.AlphaMode = gltf.AlphaBlend
	} else if m.AlphaMode == gltf.AlphaBlend {
		m.AlphaMode = gltf.AlphaOpaque
	}

	if p.HasClearcoat() {
		ext := make(gltf.Extensions, len(src.Extensions)+1)
		for k, v := range src.Extensions {
			ext[k] = v
		}
		cc := clearcoat{ClearcoatFactor: float64(*p.Clearcoat)}
		if p.ClearcoatRoughness != nil {
			cc.ClearcoatRoughnessFactor = float64(*p.ClearcoatRoughness)
		}
		ext[extClearcoat] = cc
		m.Extensions = ext
		if !slices.Contains(a.doc.ExtensionsUsed, extClearcoat) {
			a.doc.ExtensionsUsed = append(a.doc.ExtensionsUsed, extClearcoat)
		}
	}
	return &m
}

// Save writes the document with its current materials as a binary .glb.
func (a *Asset) Save(path string) error {
	a.ApplyMaterials()
	if err := gltf.SaveBinary(a.doc, path); err != nil {
		return fmt.Errorf("saving model %s: %w", path, err)
	}
	return nil
}

// Document returns the underlying glTF document.
func (a *Asset) Document() *gltf.Document {
	return a.doc
}
