package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())
	if result != m {
		t.Errorf("M * I should equal M, got %v", result)
	}
}

func TestTranslate(t *testing.T) {
	got := Translate(10, 20, 30).TransformVec3(Vec3{1, 2, 3})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformVec3: got %v, want %v", got, want)
	}
}

func TestFromTRS(t *testing.T) {
	r := QuatFromAxisAngle(Vec3{Y: 1}, float32(math.Pi))
	m := FromTRS(Vec3{X: 1}, r, Vec3{X: 2, Y: 2, Z: 2})

	// Scale first, then rotate 180 degrees around Y, then translate.
	got := m.TransformVec3(Vec3{X: 1})
	want := Vec3{X: -1}
	if !got.ApproxEqual(want, 0.0001) {
		t.Errorf("FromTRS point = %v, want %v", got, want)
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{0, 1, 5}
	view := LookAt(eye, Vec3{0, 0.5, 0}, Vec3{Y: 1})
	got := view.TransformVec3(eye)
	if !got.ApproxEqual(Vec3{}, 0.0001) {
		t.Errorf("eye in view space = %v, want origin", got)
	}
}

func TestRotateY(t *testing.T) {
	got := RotateY(float32(math.Pi / 2)).TransformVec3(Vec3{Z: 1})
	if !got.ApproxEqual(Vec3{X: 1}, 0.0001) {
		t.Errorf("RotateY(90) of +Z = %v, want +X", got)
	}
}

func TestOrthoMapsBoxToClipCube(t *testing.T) {
	m := Ortho(-2, 2, -1, 1, 0.5, 10)
	near := m.TransformVec3(Vec3{X: -2, Y: -1, Z: -0.5})
	if !near.ApproxEqual(Vec3{-1, -1, -1}, 0.0001) {
		t.Errorf("near corner = %v, want (-1,-1,-1)", near)
	}
	far := m.TransformVec3(Vec3{X: 2, Y: 1, Z: -10})
	if !far.ApproxEqual(Vec3{1, 1, 1}, 0.0001) {
		t.Errorf("far corner = %v, want (1,1,1)", far)
	}
}
