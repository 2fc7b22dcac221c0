package renderer

import (
	"fmt"

	"github.com/spaghettifunk/prisma/engine/core"
	"github.com/spaghettifunk/prisma/engine/math"
	"github.com/spaghettifunk/prisma/engine/resources"
	"github.com/spaghettifunk/prisma/engine/scene"
	"github.com/spaghettifunk/prisma/engine/systems"
)

// Headless serves the scene graph without any GPU surface. Mesh geometry is
// kept in memory for ray intersection and textures resolve through the
// texture system; Draw and LightOn exist only to satisfy the renderer
// contract and do nothing.
type Headless struct {
	systemManager *systems.SystemManager
	meshes        map[string]*resources.Mesh
}

func NewHeadless(systemManager *systems.SystemManager) (*Headless, error) {
	if systemManager == nil {
		return nil, fmt.Errorf("headless renderer requires a system manager")
	}
	return &Headless{
		systemManager: systemManager,
		meshes:        make(map[string]*resources.Mesh),
	}, nil
}

func (h *Headless) AddMesh(name string, mesh *resources.Mesh) error {
	if mesh == nil {
		return fmt.Errorf("mesh '%s' is nil", name)
	}
	if err := mesh.Validate(); err != nil {
		return fmt.Errorf("mesh '%s' rejected: %w", name, err)
	}
	if _, exists := h.meshes[name]; exists {
		core.LogWarn("mesh '%s' registered twice, keeping the latest", name)
	}
	h.meshes[name] = mesh
	return nil
}

func (h *Headless) AddTexture(name, path string) error {
	_, err := h.systemManager.TextureSystem.Register(name, path)
	return err
}

func (h *Headless) MeshRayCast(name string, ray math.Ray) ([]resources.HitRecord, error) {
	mesh, ok := h.meshes[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown mesh '%s'", core.ErrIntersection, name)
	}
	return mesh.RayCast(ray)
}

func (h *Headless) AcquireTexture(name string) *resources.TextureImage {
	if name == "" {
		return h.systemManager.TextureSystem.GetDefaultTexture()
	}
	return h.systemManager.TextureSystem.Acquire(name)
}

func (h *Headless) Draw(root scene.Node, modelview *math.MatrixStack) {
	core.LogDebug("headless renderer ignores draw calls")
}

func (h *Headless) LightOn(root scene.Node, modelview *math.MatrixStack) {
	core.LogDebug("headless renderer ignores light state")
}

func (h *Headless) Dispose() {
	h.meshes = make(map[string]*resources.Mesh)
}
