package math

/**
 * @brief An ordered stack of composed 4x4 transforms. The top entry holds the
 * accumulated mapping from the current traversal scope into the space the
 * stack was seeded with (typically view space).
 *
 * A MatrixStack is owned by exactly one traversal: concurrent consumers must
 * each work on their own Clone.
 */
type MatrixStack struct {
	entries []Mat4
}

// NewMatrixStack creates a stack seeded with a single identity matrix.
func NewMatrixStack() *MatrixStack {
	return &MatrixStack{entries: []Mat4{NewMat4Identity()}}
}

// NewMatrixStackFrom creates a stack seeded with the given matrix, typically
// a world-to-view transform.
func NewMatrixStackFrom(m Mat4) *MatrixStack {
	return &MatrixStack{entries: []Mat4{m}}
}

// Peek returns the top of the stack. An empty stack yields identity.
func (s *MatrixStack) Peek() Mat4 {
	if len(s.entries) == 0 {
		return NewMat4Identity()
	}
	return s.entries[len(s.entries)-1]
}

// Push duplicates the current top so that callee mutations can be undone
// with a single Pop.
func (s *MatrixStack) Push() {
	s.entries = append(s.entries, s.Peek())
}

// PushMul pushes the composition of the given local matrix under the current
// top: the new top maps the local scope all the way into the stack's root
// space.
func (s *MatrixStack) PushMul(local Mat4) {
	s.entries = append(s.entries, local.Mul(s.Peek()))
}

// MulTop replaces the top with local composed under it, without growing the
// stack.
func (s *MatrixStack) MulTop(local Mat4) {
	if len(s.entries) == 0 {
		s.entries = append(s.entries, local)
		return
	}
	s.entries[len(s.entries)-1] = local.Mul(s.Peek())
}

// Pop removes the top entry. Popping an empty stack is a no-op.
func (s *MatrixStack) Pop() {
	if len(s.entries) == 0 {
		return
	}
	s.entries = s.entries[:len(s.entries)-1]
}

func (s *MatrixStack) Depth() int {
	return len(s.entries)
}

// Clone returns an independent deep copy. Mutating the clone never affects
// the original, which is what lets one traversal template feed several
// consumers.
func (s *MatrixStack) Clone() *MatrixStack {
	entries := make([]Mat4, len(s.entries))
	copy(entries, s.entries)
	return &MatrixStack{entries: entries}
}
