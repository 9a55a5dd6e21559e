package math

import (
	"math"
	"testing"
)

const eps = 1e-5

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) <= eps
}

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

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
	got := m.TransformPoint(Vec3{1, 1, 1})
	if got != (Vec3{6, 11, 16}) {
		t.Errorf("TransformPoint = %v, want (6, 11, 16)", got)
	}
	if d := m.TransformDirection(Vec3{1, 0, 0}); d != (Vec3{1, 0, 0}) {
		t.Errorf("TransformDirection must ignore translation, got %v", d)
	}
}

func TestRotationsAreCounterClockwise(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"z maps x to y", RotateZ(math.Pi / 2), Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"x maps y to z", RotateX(math.Pi / 2), Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{"y maps z to x", RotateY(math.Pi / 2), Vec3{0, 0, 1}, Vec3{1, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.in)
			if !got.ApproxEqual(tt.want, eps) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestThenAppliesLeftFirst(t *testing.T) {
	m := Scale(2, 2, 2).Then(Translate(1, 0, 0))
	got := m.TransformPoint(Vec3{1, 0, 0})
	if !got.ApproxEqual(Vec3{3, 0, 0}, eps) {
		t.Errorf("scale then translate = %v, want (3, 0, 0)", got)
	}

	m = Translate(1, 0, 0).Then(Scale(2, 2, 2))
	got = m.TransformPoint(Vec3{1, 0, 0})
	if !got.ApproxEqual(Vec3{4, 0, 0}, eps) {
		t.Errorf("translate then scale = %v, want (4, 0, 0)", got)
	}
}

func TestSequentialRotationMatchesCombined(t *testing.T) {
	z, y, x := Radians(30), Radians(-45), Radians(60)
	combined := RotateZ(z).Then(RotateY(y)).Then(RotateX(x))

	vectors := []Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {0.3, -2, 5}}
	for _, v := range vectors {
		seq := RotateZ(z).TransformPoint(v)
		seq = RotateY(y).TransformPoint(seq)
		seq = RotateX(x).TransformPoint(seq)

		if got := combined.TransformPoint(v); !got.ApproxEqual(seq, 1e-4) {
			t.Errorf("v=%v: combined %v, sequential Z,Y,X %v", v, got, seq)
		}
	}

	// Applying the axes in forward order is a different rotation.
	v := Vec3{1, 0, 0}
	fwd := RotateX(x).TransformPoint(v)
	fwd = RotateY(y).TransformPoint(fwd)
	fwd = RotateZ(z).TransformPoint(fwd)
	if combined.TransformPoint(v).ApproxEqual(fwd, 1e-3) {
		t.Error("forward X,Y,Z order should not reproduce the combined rotation")
	}
}

func TestInverse(t *testing.T) {
	m := Scale(2, 3, 4).Then(RotateZ(0.7)).Then(Translate(5, -1, 2))
	id := m.Mul(m.Inverse())
	want := Identity()
	for i := range id {
		if !approx(id[i], want[i]) {
			t.Fatalf("M * M^-1 element %d = %v, want %v", i, id[i], want[i])
		}
	}
}

func TestNormalMatrixKeepsNormalsPerpendicular(t *testing.T) {
	m := Scale(4, 1, 1)
	// Plane x + y = 0 with normal (1, 1, 0); tangent (1, -1, 0).
	tangent := m.TransformDirection(Vec3{1, -1, 0})
	normal := m.NormalMatrix().TransformDirection(Vec3{1, 1, 0})
	if d := tangent.Dot(normal); !approx(d, 0) {
		t.Errorf("transformed normal not perpendicular to tangent, dot = %v", d)
	}
}

func TestDeterminant3(t *testing.T) {
	if d := RotateZ(1.2).Determinant3(); !approx(d, 1) {
		t.Errorf("rotation determinant = %v, want 1", d)
	}
	if d := Scale(-1, 1, 1).Determinant3(); d >= 0 {
		t.Errorf("mirror determinant = %v, want negative", d)
	}
}
