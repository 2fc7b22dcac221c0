package renderer

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/prisma/engine/core"
	"github.com/spaghettifunk/prisma/engine/math"
	"github.com/spaghettifunk/prisma/engine/resources"
	"github.com/spaghettifunk/prisma/engine/systems"
)

func newTestHeadless(t *testing.T) *Headless {
	t.Helper()
	sm, err := systems.NewSystemManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewSystemManager failed: %v", err)
	}
	t.Cleanup(func() { _ = sm.Shutdown() })

	h, err := NewHeadless(sm)
	if err != nil {
		t.Fatalf("NewHeadless failed: %v", err)
	}
	return h
}

func TestHeadless_MeshRayCastRoundTrip(t *testing.T) {
	h := newTestHeadless(t)
	if err := h.AddMesh("quad", resources.GenerateQuadMesh("quad", 1, 1)); err != nil {
		t.Fatalf("AddMesh failed: %v", err)
	}

	ray := math.NewRay(
		math.NewVec4Point(0.1, 0.2, 5),
		math.NewVec4Direction(0, 0, -1),
	)
	hits, err := h.MeshRayCast("quad", ray)
	if err != nil {
		t.Fatalf("MeshRayCast failed: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("expected 1 hit, got %d", len(hits))
	}
}

func TestHeadless_MeshRayCastUnknownMesh(t *testing.T) {
	h := newTestHeadless(t)
	if _, err := h.MeshRayCast("missing", math.NewRay(
		math.NewVec4Point(0, 0, 0), math.NewVec4Direction(0, 0, -1),
	)); !errors.Is(err, core.ErrIntersection) {
		t.Errorf("expected ErrIntersection for unknown mesh, got %v", err)
	}
}

func TestHeadless_AddMeshRejectsMalformed(t *testing.T) {
	h := newTestHeadless(t)
	bad := resources.NewMesh("bad", nil, []uint32{0, 1, 2})
	if err := h.AddMesh("bad", bad); err == nil {
		t.Error("expected malformed mesh to be rejected")
	}
	if err := h.AddMesh("nil", nil); err == nil {
		t.Error("expected nil mesh to be rejected")
	}
}

func TestHeadless_AcquireTextureFallsBackToWhite(t *testing.T) {
	h := newTestHeadless(t)
	tex := h.AcquireTexture("never-registered")
	if tex == nil {
		t.Fatal("expected the default texture, got nil")
	}
	if got := tex.Sample(0.5, 0.5); !got.Compare(math.NewVec3One(), 1e-3) {
		t.Errorf("expected white fallback, got %v", got)
	}
}
