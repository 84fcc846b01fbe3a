package material

// RGB is a linear color with components in [0, 1].
type RGB struct {
	R, G, B float32
}

// Scale multiplies every component by s.
func (c RGB) Scale(s float32) RGB {
	return RGB{c.R * s, c.G * s, c.B * s}
}

// Brightness is the unweighted mean of the three components.
func (c RGB) Brightness() float32 {
	return (c.R + c.G + c.B) / 3
}

// Side selects which faces of a surface cast shadows.
type Side int

const (
	SideFront Side = iota
	SideBack
	SideDouble
)

// Params are the mutable shading parameters of one surface material.
// Optional fields are nil when the material has no such property; nil
// fields are never written by ApplyCategory except where noted.
type Params struct {
	Name string

	Color       *RGB
	Roughness   float32
	Metalness   float32
	Opacity     float32
	Transparent bool

	EnvMapIntensity    *float32
	Clearcoat          *float32
	ClearcoatRoughness *float32

	ShadowSide  Side
	DoubleSided bool
}

// NewParams returns a standard PBR material: white, fully rough, opaque,
// with an environment map intensity and no clearcoat layer.
func NewParams(name string) *Params {
	return &Params{
		Name:            name,
		Color:           &RGB{1, 1, 1},
		Roughness:       1,
		Metalness:       0,
		Opacity:         1,
		EnvMapIntensity: Float(1),
	}
}

// Clone returns a deep copy so each mesh can be tinted independently.
func (p *Params) Clone() *Params {
	c := *p
	c.Color = clonePtr(p.Color)
	c.EnvMapIntensity = clonePtr(p.EnvMapIntensity)
	c.Clearcoat = clonePtr(p.Clearcoat)
	c.ClearcoatRoughness = clonePtr(p.ClearcoatRoughness)
	return &c
}

// HasClearcoat reports whether the material carries a clearcoat layer.
func (p *Params) HasClearcoat() bool {
	return p.Clearcoat != nil
}

// Float returns a pointer to v.
func Float(v float32) *float32 {
	return &v
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
