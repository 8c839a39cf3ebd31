package math

import (
	"testing"

	"github.com/chewxy/math32"
)

const eps = 1e-5

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{"axis", Vec3{0, 0, 5}, Vec3{0, 0, 1}},
		{"diagonal", Vec3{1, 1, 0}, Vec3{1 / math32.Sqrt2, 1 / math32.Sqrt2, 0}},
		{"zero", Vec3{}, Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if !got.ApproxEqual(tt.want, eps) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got.IsNaN() {
				t.Errorf("Normalize(%v) produced NaN", tt.in)
			}
		})
	}
}

func TestVec3Midpoint(t *testing.T) {
	a := Vec3{0, 0, 1}
	b := Vec3{0, 0, -1}
	if got := a.Midpoint(b); got != (Vec3{}) {
		t.Errorf("Midpoint of antipodes = %v, want origin", got)
	}

	c := Vec3{2, 4, 6}
	if got := c.Midpoint(Vec3{}); got != (Vec3{1, 2, 3}) {
		t.Errorf("Midpoint = %v, want (1, 2, 3)", got)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, -2, 3}
	b := Vec3{-1, 2, 0}
	if got := a.Min(b); got != (Vec3{-1, -2, 0}) {
		t.Errorf("Min = %v", got)
	}
	if got := a.Max(b); got != (Vec3{1, 2, 3}) {
		t.Errorf("Max = %v", got)
	}
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

func TestTranslateTransform(t *testing.T) {
	m := Translate(0, 0, -7)
	got := m.TransformVec3(Vec3{1, 2, 3})
	want := Vec3{1, 2, -4}
	if got != want {
		t.Errorf("TransformVec3 = %v, want %v", got, want)
	}
}

func TestRotateYQuarterTurn(t *testing.T) {
	m := RotateY(math32.Pi / 2)
	got := m.TransformVec3(Vec3{1, 0, 0})
	want := Vec3{0, 0, -1}
	if !got.ApproxEqual(want, eps) {
		t.Errorf("RotateY(90°) * X = %v, want %v", got, want)
	}
}

func TestInverse(t *testing.T) {
	m := Translate(3, -2, 5).Mul(RotateY(0.7)).Mul(Scale(2, 2, 2))
	product := m.Mul(m.Inverse())
	id := Identity()

	for i := range product {
		if math32.Abs(product[i]-id[i]) > 1e-4 {
			t.Fatalf("M * M^-1 element %d = %f, want %f", i, product[i], id[i])
		}
	}
}

func TestInverseSingular(t *testing.T) {
	if got := (Mat4{}).Inverse(); got != Identity() {
		t.Errorf("singular inverse = %v, want identity", got)
	}
}

func TestNormalMatrixIdentity(t *testing.T) {
	got := Identity().NormalMatrix()
	want := Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
	if got != want {
		t.Errorf("NormalMatrix(I) = %v, want %v", got, want)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(Radians(90), 1, 0.1, 100)

	// f = 1/tan(45°) = 1
	if math32.Abs(m[0]-1) > eps || math32.Abs(m[5]-1) > eps {
		t.Errorf("Perspective focal terms = (%f, %f), want (1, 1)", m[0], m[5])
	}
	if m[11] != -1 {
		t.Errorf("Perspective w term = %f, want -1", m[11])
	}

	// A point on the near plane maps to NDC z = -1.
	near := m.TransformVec3(Vec3{0, 0, -0.1})
	if math32.Abs(near.Z+1) > 1e-3 {
		t.Errorf("near plane z = %f, want -1", near.Z)
	}
}

func TestLookAt(t *testing.T) {
	view := LookAt(Vec3{0, 0, 7}, Vec3{}, Vec3{0, 1, 0})
	got := view.TransformVec3(Vec3{})
	want := Vec3{0, 0, -7}
	if !got.ApproxEqual(want, eps) {
		t.Errorf("LookAt origin = %v, want %v", got, want)
	}
}
