package material

// baselineEnvMapIntensity is applied to every material that supports an
// environment map before the category override.
const baselineEnvMapIntensity = 1.5

// ApplyCategory writes the shading parameters of category c into p and
// returns p. Fields p does not support are skipped.
func ApplyCategory(c Category, p *Params) *Params {
	if p == nil {
		return nil
	}

	setIfPresent(p.EnvMapIntensity, baselineEnvMapIntensity)

	switch c {
	case BodyPaint:
		p.Roughness = 0.1
		p.Metalness = 0.8
		setIfPresent(p.EnvMapIntensity, 2.0)
		// Paint always gets a lacquer layer, even on materials loaded without one.
		p.Clearcoat = Float(1.0)
		p.ClearcoatRoughness = Float(0.1)
	case Glass:
		p.Transparent = true
		p.Opacity = 0.8
		p.Roughness = 0.05
		p.Metalness = 0.9
		setIfPresent(p.EnvMapIntensity, 2.5)
	case Chrome:
		p.Roughness = 0.2
		p.Metalness = 1.0
		setIfPresent(p.EnvMapIntensity, 2.0)
	case Rubber:
		p.Roughness = 0.9
		p.Metalness = 0.0
		if p.Color != nil {
			*p.Color = p.Color.Scale(0.8)
		}
	case Plastic:
		p.Roughness = 0.7
		p.Metalness = 0.1
	case Interior:
		p.Roughness = 0.6
		p.Metalness = 0.1
	}

	p.ShadowSide = SideFront
	return p
}

// Enhance classifies p by its own name, or by the owning node's name when the
// material is unnamed, and applies the category. It returns the category used.
func Enhance(p *Params, nodeName string) Category {
	if p == nil {
		return Unclassified
	}
	c := Classify(LookupName(p, nodeName))
	ApplyCategory(c, p)
	return c
}

// LookupName is the name a material is classified by.
func LookupName(p *Params, nodeName string) string {
	if p != nil && p.Name != "" {
		return p.Name
	}
	return nodeName
}

func setIfPresent(field *float32, v float32) {
	if field != nil {
		*field = v
	}
}
