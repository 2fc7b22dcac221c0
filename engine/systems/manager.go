package systems

import (
	"github.com/spaghettifunk/prisma/engine/assets"
)

// SystemManager wires the resource-facing systems together and owns their
// lifetime.
type SystemManager struct {
	AssetManager  *assets.AssetManager
	TextureSystem *TextureSystem
}

func NewSystemManager(assetsDir string) (*SystemManager, error) {
	am, err := NewAssetManager()
	if err != nil {
		return nil, err
	}
	if err := am.Initialize(assetsDir); err != nil {
		return nil, err
	}

	ts, err := NewTextureSystem(&TextureSystemConfig{
		MaxTextureCount: 1000,
	}, am)
	if err != nil {
		return nil, err
	}

	return &SystemManager{
		AssetManager:  am,
		TextureSystem: ts,
	}, nil
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.TextureSystem.Shutdown(); err != nil {
		return err
	}
	return sm.AssetManager.Shutdown()
}

// NewAssetManager is re-exported here so callers only need the systems
// package to bootstrap.
func NewAssetManager() (*assets.AssetManager, error) {
	return assets.NewAssetManager()
}
