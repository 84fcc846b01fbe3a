package assets

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/carviewer/pkg/math"
)

var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// decompose splits a column-major affine matrix into translation, rotation
// and scale. Shear is dropped.
func decompose(m [16]float64) (math.Vec3, math.Quat, math.Vec3) {
	f := func(i int) float32 { return float32(m[i]) }
	t := math.V3(f(12), f(13), f(14))

	c0 := math.V3(f(0), f(1), f(2))
	c1 := math.V3(f(4), f(5), f(6))
	c2 := math.V3(f(8), f(9), f(10))
	s := math.V3(c0.Length(), c1.Length(), c2.Length())
	if c0.Cross(c1).Dot(c2) < 0 {
		s.X = -s.X
	}
	if s.X == 0 || s.Y == 0 || s.Z == 0 {
		return t, math.QuatIdentity(), s
	}
	c0, c1, c2 = c0.Scale(1/s.X), c1.Scale(1/s.Y), c2.Scale(1/s.Z)
	return t, quatFromBasis(c0, c1, c2), s
}

// quatFromBasis converts orthonormal rotation columns to a quaternion.
func quatFromBasis(c0, c1, c2 math.Vec3) math.Quat {
	m00, m11, m22 := c0.X, c1.Y, c2.Z
	var q math.Quat
	switch trace := m00 + m11 + m22; {
	case trace > 0:
		s := 0.5 / math32.Sqrt(trace+1)
		q = math.Quat{W: 0.25 / s, X: (c1.Z - c2.Y) * s, Y: (c2.X - c0.Z) * s, Z: (c0.Y - c1.X) * s}
	case m00 > m11 && m00 > m22:
		s := 2 * math32.Sqrt(1+m00-m11-m22)
		q = math.Quat{W: (c1.Z - c2.Y) / s, X: 0.25 * s, Y: (c1.X + c0.Y) / s, Z: (c2.X + c0.Z) / s}
	case m11 > m22:
		s := 2 * math32.Sqrt(1+m11-m00-m22)
		q = math.Quat{W: (c2.X - c0.Z) / s, X: (c1.X + c0.Y) / s, Y: 0.25 * s, Z: (c2.Y + c1.Z) / s}
	default:
		s := 2 * math32.Sqrt(1+m22-m00-m11)
		q = math.Quat{W: (c0.Y - c1.X) / s, X: (c2.X + c0.Z) / s, Y: (c2.Y + c1.Z) / s, Z: 0.25 * s}
	}
	return q.Normalize()
}
