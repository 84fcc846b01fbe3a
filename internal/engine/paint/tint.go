package paint

import (
	"fmt"

	"github.com/chewxy/math32"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/carviewer/internal/engine/material"
)

// ApplyColor recolors every material in set and derives its metalness,
// roughness and clearcoat from the color's brightness and hue.
func ApplyColor(set *BodySet, c material.RGB) {
	if set == nil {
		return
	}
	for _, m := range set.Materials() {
		tint(m, c)
	}
}

func tint(m *material.Params, c material.RGB) {
	if m.Color == nil {
		return
	}
	*m.Color = c

	brightness := c.Brightness()
	if brightness < 0.3 {
		m.Metalness = math32.Min(m.Metalness*1.2, 1.0)
		m.Roughness = math32.Max(m.Roughness*0.8, 0.05)
	} else if brightness > 0.7 {
		m.Metalness = math32.Max(m.Metalness*0.9, 0.1)
	}

	// near-white pearl
	if brightness > 0.8 && math32.Abs(c.R-c.G) < 0.1 && math32.Abs(c.G-c.B) < 0.1 {
		m.Metalness = 0.9
		m.Roughness = 0.1
	}

	// red lacquer
	if c.R > 0.7 && c.G < 0.3 && c.B < 0.3 && m.HasClearcoat() {
		*m.Clearcoat = 1.0
		m.ClearcoatRoughness = material.Float(0.1)
	}
}

// ParseColor converts an sRGB hex string ("#rrggbb" or "#rgb") into linear RGB.
func ParseColor(hex string) (material.RGB, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return material.RGB{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	r, g, b := c.LinearRgb()
	return material.RGB{R: float32(r), G: float32(g), B: float32(b)}, nil
}

// MustParseColor is ParseColor for compile-time constants.
func MustParseColor(hex string) material.RGB {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}
