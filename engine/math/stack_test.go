package math

import "testing"

func matricesEqual(a, b Mat4, tolerance float32) bool {
	for i := range a.Data {
		d := a.Data[i] - b.Data[i]
		if d < -tolerance || d > tolerance {
			return false
		}
	}
	return true
}

func TestMatrixStack_PeekEmptyIsIdentity(t *testing.T) {
	var s MatrixStack
	if !matricesEqual(s.Peek(), NewMat4Identity(), 0) {
		t.Errorf("expected identity on empty stack, got %v", s.Peek())
	}
	if s.Depth() != 0 {
		t.Errorf("expected depth 0, got %d", s.Depth())
	}

	seeded := NewMatrixStack()
	if seeded.Depth() != 1 {
		t.Errorf("expected a seeded stack of depth 1, got %d", seeded.Depth())
	}
	if !matricesEqual(seeded.Peek(), NewMat4Identity(), 0) {
		t.Errorf("expected identity seed, got %v", seeded.Peek())
	}
}

func TestMatrixStack_PushDuplicatesTop(t *testing.T) {
	view := NewMat4Translation(NewVec3(1, 2, 3))
	s := NewMatrixStackFrom(view)
	s.Push()
	if s.Depth() != 2 {
		t.Fatalf("expected depth 2 after push, got %d", s.Depth())
	}
	if !matricesEqual(s.Peek(), view, 0) {
		t.Errorf("push should duplicate the top, got %v", s.Peek())
	}
}

func TestMatrixStack_PushMulComposesLocalUnderTop(t *testing.T) {
	view := NewMat4Translation(NewVec3(0, 0, -10))
	local := NewMat4Scale(NewVec3(2, 2, 2))

	s := NewMatrixStackFrom(view)
	s.PushMul(local)

	// the composed top applies the local transform first, then the view
	p := NewVec4Point(1, 0, 0).Transform(s.Peek())
	want := NewVec4Point(2, 0, -10)
	if !p.Compare(want, 1e-5) {
		t.Errorf("expected %v, got %v", want, p)
	}
}

func TestMatrixStack_PopRestoresPreviousTop(t *testing.T) {
	view := NewMat4Translation(NewVec3(0, 5, 0))
	s := NewMatrixStackFrom(view)
	s.PushMul(NewMat4Scale(NewVec3(3, 3, 3)))
	s.Pop()
	if !matricesEqual(s.Peek(), view, 0) {
		t.Errorf("pop should restore the previous top, got %v", s.Peek())
	}

	// popping past the bottom must not panic
	s.Pop()
	s.Pop()
	if s.Depth() != 0 {
		t.Errorf("expected empty stack, got depth %d", s.Depth())
	}
}

func TestMatrixStack_CloneIsIndependent(t *testing.T) {
	s := NewMatrixStackFrom(NewMat4Identity())
	clone := s.Clone()
	clone.PushMul(NewMat4Translation(NewVec3(7, 0, 0)))

	if s.Depth() != 1 {
		t.Errorf("mutating a clone changed the original depth to %d", s.Depth())
	}
	if !matricesEqual(s.Peek(), NewMat4Identity(), 0) {
		t.Errorf("mutating a clone changed the original top to %v", s.Peek())
	}
}
