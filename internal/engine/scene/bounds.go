package scene

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/carviewer/pkg/math"
)

// Bounds is an axis-aligned bounding box. The zero value is empty.
type Bounds struct {
	Min   math.Vec3
	Max   math.Vec3
	valid bool
}

// NewBounds returns the box spanning min and max.
func NewBounds(min, max math.Vec3) Bounds {
	b := Bounds{}
	b.Extend(min)
	b.Extend(max)
	return b
}

// Valid reports whether the box contains at least one point.
func (b Bounds) Valid() bool {
	return b.valid
}

// Extend grows the box to contain p.
func (b *Bounds) Extend(p math.Vec3) {
	if !b.valid {
		b.Min, b.Max, b.valid = p, p, true
		return
	}
	b.Min = math.V3(math32.Min(b.Min.X, p.X), math32.Min(b.Min.Y, p.Y), math32.Min(b.Min.Z, p.Z))
	b.Max = math.V3(math32.Max(b.Max.X, p.X), math32.Max(b.Max.Y, p.Y), math32.Max(b.Max.Z, p.Z))
}

// Union grows the box to contain other.
func (b *Bounds) Union(other Bounds) {
	if !other.valid {
		return
	}
	b.Extend(other.Min)
	b.Extend(other.Max)
}

// Size returns the box extent per axis.
func (b Bounds) Size() math.Vec3 {
	if !b.valid {
		return math.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the box midpoint.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Diagonal returns the length of the box diagonal, 0 for an empty box.
func (b Bounds) Diagonal() float32 {
	return b.Size().Length()
}

// Transform returns the axis-aligned box containing all eight corners of b
// transformed by m.
func (b Bounds) Transform(m math.Mat4) Bounds {
	if !b.valid {
		return b
	}
	var out Bounds
	for i := 0; i < 8; i++ {
		corner := b.Min
		if i&1 != 0 {
			corner.X = b.Max.X
		}
		if i&2 != 0 {
			corner.Y = b.Max.Y
		}
		if i&4 != 0 {
			corner.Z = b.Max.Z
		}
		out.Extend(m.TransformVec3(corner))
	}
	return out
}
