package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()
	length := math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W))
	if math.Abs(length-1.0) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))
	if !approx(q.W, expectedW) || !approx(q.Y, expectedY) {
		t.Errorf("QuatFromAxisAngle = %+v, want W=%v Y=%v", q, expectedW, expectedY)
	}
}

func TestQuatRotateMatchesMatrix(t *testing.T) {
	angle := float32(0.8)
	q := QuatFromAxisAngle(Vec3{1, 0, 0}, angle)
	v := Vec3{0.2, 1, -3}

	got := q.Rotate(v)
	want := RotateX(angle).TransformPoint(v)
	if !got.ApproxEqual(want, 1e-4) {
		t.Errorf("Rotate = %v, matrix = %v", got, want)
	}

	viaMat := q.ToMat4().TransformPoint(v)
	if !viaMat.ApproxEqual(want, 1e-4) {
		t.Errorf("ToMat4 = %v, want %v", viaMat, want)
	}
}

func TestQuatMulComposes(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{0, 0, 1}, 0.5)
	b := QuatFromAxisAngle(Vec3{1, 0, 0}, -1.1)
	v := Vec3{1, 2, 3}

	got := a.Mul(b).Rotate(v)
	want := a.Rotate(b.Rotate(v))
	if !got.ApproxEqual(want, 1e-4) {
		t.Errorf("(a*b)v = %v, a(b(v)) = %v", got, want)
	}
}
