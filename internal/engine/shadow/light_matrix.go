package shadow

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/carviewer/internal/engine/scene"
	"github.com/Faultbox/carviewer/pkg/math"
)

// minRadius keeps the shadow frustum usable for empty or tiny scenes.
const minRadius = 1

// LightMatrix returns the view-projection of a directional light looking at
// the bounds along -lightDir, sized to cover the bounding sphere.
// lightDir points from the scene toward the light.
func LightMatrix(lightDir math.Vec3, bounds scene.Bounds) math.Mat4 {
	center := math.Vec3{}
	radius := float32(minRadius)
	if bounds.Valid() {
		center = bounds.Center()
		radius = math32.Max(bounds.Diagonal()/2, minRadius)
	}

	dir := lightDir.Normalize()
	dist := radius * 2
	eye := center.Add(dir.Scale(dist))

	up := math.V3(0, 1, 0)
	if math32.Abs(dir.Y) > 0.99 {
		up = math.V3(0, 0, 1)
	}
	view := math.LookAt(eye, center, up)

	half := radius * 1.1
	proj := math.Ortho(-half, half, -half, half, 0.1, dist+half)
	return proj.Mul(view)
}
