package paint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/carviewer/internal/engine/material"
)

func setOf(ps ...*material.Params) *BodySet {
	s := &BodySet{}
	for _, p := range ps {
		s.Add(p)
	}
	return s
}

func params(metal, rough float32) *material.Params {
	p := material.NewParams("body")
	p.Metalness = metal
	p.Roughness = rough
	return p
}

func TestApplyColorSetsColor(t *testing.T) {
	p := params(0.5, 0.5)
	ApplyColor(setOf(p), material.RGB{R: 0.4, G: 0.5, B: 0.6})
	assert.Equal(t, material.RGB{R: 0.4, G: 0.5, B: 0.6}, *p.Color)
	// mid brightness leaves shading alone
	assert.InDelta(t, 0.5, p.Metalness, 1e-6)
	assert.InDelta(t, 0.5, p.Roughness, 1e-6)
}

func TestApplyColorDark(t *testing.T) {
	for _, m := range []float32{0.1, 0.3, 0.5, 0.8} {
		p := params(m, 0.5)
		ApplyColor(setOf(p), material.RGB{})
		assert.Greater(t, p.Metalness, m)
		assert.Less(t, p.Roughness, float32(0.5))
	}

	p := params(0.9, 0.06)
	ApplyColor(setOf(p), material.RGB{})
	assert.InDelta(t, 1.0, p.Metalness, 1e-6)
	assert.InDelta(t, 0.05, p.Roughness, 1e-6)
}

func TestApplyColorBright(t *testing.T) {
	p := params(0.8, 0.4)
	ApplyColor(setOf(p), material.RGB{R: 0.9, G: 0.9, B: 0.4})
	assert.InDelta(t, 0.72, p.Metalness, 1e-6)
	assert.InDelta(t, 0.4, p.Roughness, 1e-6)

	p = params(0.05, 0.4)
	ApplyColor(setOf(p), material.RGB{R: 1, G: 0.8, B: 0.5})
	assert.InDelta(t, 0.1, p.Metalness, 1e-6)
}

func TestApplyColorNearWhite(t *testing.T) {
	for _, start := range []*material.Params{params(0, 1), params(1, 0), params(0.5, 0.5)} {
		ApplyColor(setOf(start), material.RGB{R: 0.9, G: 0.9, B: 0.9})
		assert.InDelta(t, 0.9, start.Metalness, 1e-6)
		assert.InDelta(t, 0.1, start.Roughness, 1e-6)
	}
}

func TestApplyColorRedClearcoat(t *testing.T) {
	p := params(0.5, 0.5)
	p.Clearcoat = material.Float(0.2)
	p.ClearcoatRoughness = material.Float(0.7)
	ApplyColor(setOf(p), material.RGB{R: 0.9, G: 0.1, B: 0.1})
	assert.InDelta(t, 1.0, *p.Clearcoat, 1e-6)
	assert.InDelta(t, 0.1, *p.ClearcoatRoughness, 1e-6)

	bare := params(0.5, 0.5)
	ApplyColor(setOf(bare), material.RGB{R: 0.9, G: 0.1, B: 0.1})
	assert.Nil(t, bare.Clearcoat)
	assert.Nil(t, bare.ClearcoatRoughness)
}

func TestApplyColorSkipsColorless(t *testing.T) {
	p := &material.Params{Name: "x", Metalness: 0.5}
	ApplyColor(setOf(p), material.RGB{})
	assert.InDelta(t, 0.5, p.Metalness, 1e-6)
	assert.NotPanics(t, func() { ApplyColor(nil, material.RGB{}) })
}

func TestParseColor(t *testing.T) {
	white, err := ParseColor("#ffffff")
	require.NoError(t, err)
	assert.InDelta(t, 1, white.R, 1e-6)

	short, err := ParseColor("#fff")
	require.NoError(t, err)
	assert.InDelta(t, 1, short.B, 1e-6)

	// sRGB 0x80 is ~0.216 linear
	grey, err := ParseColor("#808080")
	require.NoError(t, err)
	assert.InDelta(t, 0.2158, grey.G, 1e-3)

	_, err = ParseColor("blue")
	assert.Error(t, err)
}

func TestMustParseColorPanics(t *testing.T) {
	assert.Panics(t, func() { MustParseColor("nope") })
	assert.NotPanics(t, func() { MustParseColor("#005eb8") })
}
