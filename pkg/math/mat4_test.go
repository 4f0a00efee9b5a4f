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

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformPoint(Vec3{1, 2, 3})

	expected := Vec3{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	result := m.TransformPoint(Vec3{1, 0, 0})

	// (1,0,0) turns to (0,0,-1)
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestInverse(t *testing.T) {
	stretch := Mat4{2, 0, 0, 0, 0, 3, 0, 0, 0, 0, 4, 0, 0, 0, 0, 1}
	m := Translate(5, -3, 12).Mul(RotateY(0.7)).Mul(stretch)
	p := Vec3{1.5, -2, 7}

	back := m.Inverse().TransformPoint(m.TransformPoint(p))
	if back.Distance(p) > 0.001 {
		t.Errorf("Inverse round trip: got %v, want %v", back, p)
	}
}

func TestInverseSingular(t *testing.T) {
	flat := Identity()
	flat[0] = 0
	if got := flat.Inverse(); got != Identity() {
		t.Errorf("singular inverse should be identity, got %v", got)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1, 0.1, 100)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAt(t *testing.T) {
	m := LookAt(Vec3{0, 0, 5}, Vec3{}, Vec3{0, 1, 0})

	// The eye maps to the view-space origin.
	eye := m.TransformPoint(Vec3{0, 0, 5})
	if eye.Length() > 0.001 {
		t.Errorf("LookAt eye should map to origin, got %v", eye)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
