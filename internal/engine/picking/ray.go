// Package picking casts rays from the cursor into the model to find the part
// under it.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/carviewer/internal/engine/scene"
	"github.com/Faultbox/carviewer/pkg/math"
)

// Ray is a half-line in world space. Direction is normalized.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Lens is the perspective camera a ray is cast through.
type Lens struct {
	Eye    math.Vec3
	Target math.Vec3
	FovY   float32 // radians
	Width  float32 // viewport in the same units as the cursor
	Height float32
}

// ScreenToRay returns the ray through pixel (x, y), origin at the top-left.
func ScreenToRay(x, y float32, l Lens) Ray {
	forward := l.Target.Sub(l.Eye).Normalize()
	right := forward.Cross(math.V3(0, 1, 0))
	if right.Length() < 1e-6 {
		right = math.V3(1, 0, 0)
	}
	right = right.Normalize()
	up := right.Cross(forward)

	ndcX := 2*x/l.Width - 1
	ndcY := 1 - 2*y/l.Height
	h := math32.Tan(l.FovY / 2)
	aspect := l.Width / max(l.Height, 1)

	dir := forward.Add(right.Scale(ndcX * h * aspect)).Add(up.Scale(ndcY * h))
	return Ray{Origin: l.Eye, Direction: dir.Normalize()}
}

// IntersectBounds tests the ray against an axis-aligned box with the slab
// method. A ray starting inside the box returns the exit distance.
func (r Ray) IntersectBounds(b scene.Bounds) (float32, bool) {
	if !b.Valid() {
		return 0, false
	}
	o, d := r.Origin.Array(), r.Direction.Array()
	lo, hi := b.Min.Array(), b.Max.Array()

	tmin := math32.Inf(-1)
	tmax := math32.Inf(1)
	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - o[i]) / d[i]
		t2 := (hi[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}
	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTriangle is Möller-Trumbore; back faces count as hits.
func (r Ray) IntersectTriangle(a, b, c math.Vec3) (float32, bool) {
	const eps = 1e-7
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if math32.Abs(det) < eps {
		return 0, false
	}
	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < eps {
		return 0, false
	}
	return t, true
}
