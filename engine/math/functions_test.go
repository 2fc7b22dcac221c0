package math

import (
	gomath "math"
	"testing"
)

func TestMat4_MulAppliesLeftFirst(t *testing.T) {
	scale := NewMat4Scale(NewVec3(2, 2, 2))
	translate := NewMat4Translation(NewVec3(1, 0, 0))

	p := NewVec4Point(1, 0, 0).Transform(scale.Mul(translate))
	want := NewVec4Point(3, 0, 0)
	if !p.Compare(want, 1e-5) {
		t.Errorf("scale then translate: expected %v, got %v", want, p)
	}

	p = NewVec4Point(1, 0, 0).Transform(translate.Mul(scale))
	want = NewVec4Point(4, 0, 0)
	if !p.Compare(want, 1e-5) {
		t.Errorf("translate then scale: expected %v, got %v", want, p)
	}
}

func TestMat4_InverseRoundTrip(t *testing.T) {
	m := NewMat4Scale(NewVec3(2, 3, 4)).
		Mul(NewMat4EulerY(DegToRad(35))).
		Mul(NewMat4Translation(NewVec3(5, -2, 9)))

	p := NewVec4Point(1, 2, 3)
	back := p.Transform(m).Transform(m.Inverse())
	if !back.Compare(p, 1e-3) {
		t.Errorf("inverse round trip expected %v, got %v", p, back)
	}
}

func TestVec4_DirectionsIgnoreTranslation(t *testing.T) {
	translate := NewMat4Translation(NewVec3(10, 20, 30))

	d := NewVec4Direction(0, 0, -1).Transform(translate)
	if !d.Compare(NewVec4Direction(0, 0, -1), 1e-6) {
		t.Errorf("direction changed under translation: %v", d)
	}

	p := NewVec4Point(0, 0, -1).Transform(translate)
	if !p.Compare(NewVec4Point(10, 20, 29), 1e-6) {
		t.Errorf("point not translated: %v", p)
	}
}

func TestMat4_NormalMatrixNonUniformScale(t *testing.T) {
	// under a non-uniform scale, normals must go through the
	// inverse-transpose rather than the matrix itself
	scale := NewMat4Scale(NewVec3(2, 1, 1))
	n := NewVec3(1, 1, 0).Normalized()

	got := n.ToVec4(0).Transform(scale.NormalMatrix()).ToVec3().Normalized()
	want := NewVec3(0.5, 1, 0).Normalized()
	if !got.Compare(want, 1e-5) {
		t.Errorf("expected normal %v, got %v", want, got)
	}
}

func TestQuaternion_ToMat4MatchesEulerRotations(t *testing.T) {
	cases := []struct {
		name  string
		axis  Vec3
		angle float32
		euler Mat4
	}{
		{name: "x +90", axis: NewVec3(1, 0, 0), angle: DegToRad(90), euler: NewMat4EulerX(DegToRad(90))},
		{name: "y +90", axis: NewVec3(0, 1, 0), angle: DegToRad(90), euler: NewMat4EulerY(DegToRad(90))},
		{name: "z +90", axis: NewVec3(0, 0, 1), angle: DegToRad(90), euler: NewMat4EulerZ(DegToRad(90))},
		{name: "x -35", axis: NewVec3(1, 0, 0), angle: DegToRad(-35), euler: NewMat4EulerX(DegToRad(-35))},
	}
	basis := []Vec4{
		NewVec4Direction(1, 0, 0),
		NewVec4Direction(0, 1, 0),
		NewVec4Direction(0, 0, 1),
	}
	for _, c := range cases {
		quat := NewQuatFromAxisAngle(c.axis, c.angle, true).ToMat4()
		for _, p := range basis {
			got := p.Transform(quat)
			want := p.Transform(c.euler)
			if !got.Compare(want, 1e-5) {
				t.Errorf("%s: quaternion rotates %v to %v, euler to %v", c.name, p, got, want)
			}
		}
	}

	// rotating a +z facing surface -90 degrees about x must point it up
	facing := NewVec4Direction(0, 0, 1)
	up := facing.Transform(NewQuatFromAxisAngle(NewVec3(1, 0, 0), DegToRad(-90), true).ToMat4())
	if !up.Compare(NewVec4Direction(0, 1, 0), 1e-5) {
		t.Errorf("expected (0,1,0), got %v", up)
	}
}

func TestVec3_Reflect(t *testing.T) {
	incoming := NewVec3(1, -1, 0)
	got := incoming.Reflect(NewVec3(0, 1, 0))
	want := NewVec3(1, 1, 0)
	if !got.Compare(want, 1e-6) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestDegToRad(t *testing.T) {
	if got := DegToRad(180); gomath.Abs(float64(got)-gomath.Pi) > 1e-5 {
		t.Errorf("expected pi, got %f", got)
	}
	if got := RadToDeg(gomath.Pi / 2); gomath.Abs(float64(got)-90) > 1e-4 {
		t.Errorf("expected 90, got %f", got)
	}
}

func TestRay_PointAtKeepsHomogeneousPoint(t *testing.T) {
	// the direction stays unnormalized so t=1 lands on the far endpoint
	r := NewRay(NewVec4Point(0, 0, 5), NewVec4Direction(0, 0, -10))
	p := r.PointAt(1)
	if !p.Compare(NewVec4Point(0, 0, -5), 1e-6) {
		t.Errorf("expected endpoint (0,0,-5,1), got %v", p)
	}
}
