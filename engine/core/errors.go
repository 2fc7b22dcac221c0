package core

import (
	"errors"
)

var (
	// ErrNotReady is returned when tracing is attempted before the scene graph
	// has both a root node and a renderer.
	ErrNotReady = errors.New("scenegraph not ready: missing root node or renderer")
	// ErrIntersection signals a mesh whose intersection test cannot be trusted
	// (bad indices, degenerate data). Treated as "no hit" by traversal.
	ErrIntersection = errors.New("mesh intersection failed")
	// ErrTextureSample signals a missing texture resource or an unresolvable
	// sample. Recovered with an opaque white sample.
	ErrTextureSample = errors.New("texture sample failed")
	// ErrOutputWrite is fatal to a single render invocation only.
	ErrOutputWrite = errors.New("image output write failed")
)
