package systems

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spaghettifunk/prisma/engine/assets"
	"github.com/spaghettifunk/prisma/engine/core"
	"github.com/spaghettifunk/prisma/engine/resources"
)

// DEFAULT_TEXTURE_NAME is the name of the pre-seeded opaque white texture.
const DEFAULT_TEXTURE_NAME = "white"

type TextureSystemConfig struct {
	/** @brief The maximum number of textures that can be registered at once. */
	MaxTextureCount uint32
}

// TextureSystem maps texture names to their on-disk paths and lazily decodes
// them on first acquire. It is always seeded with the default white texture,
// which is also the fallback for every failed lookup or decode.
type TextureSystem struct {
	Config         *TextureSystemConfig
	DefaultTexture *resources.TextureImage

	assetManager *assets.AssetManager

	mutex sync.RWMutex
	// Registered (name, path) pairs, including not-yet-loaded ones.
	registeredPaths map[string]string
	// Decoded textures keyed by name.
	loaded map[string]*resources.TextureImage
}

func NewTextureSystem(config *TextureSystemConfig, am *assets.AssetManager) (*TextureSystem, error) {
	if config.MaxTextureCount == 0 {
		err := fmt.Errorf("func NewTextureSystem - config.MaxTextureCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}

	ts := &TextureSystem{
		Config:          config,
		DefaultTexture:  resources.NewWhiteTexture(DEFAULT_TEXTURE_NAME),
		assetManager:    am,
		registeredPaths: make(map[string]string),
		loaded:          make(map[string]*resources.TextureImage),
	}
	ts.loaded[DEFAULT_TEXTURE_NAME] = ts.DefaultTexture

	if am != nil {
		am.OnInvalidate(ts.invalidatePath)
	}

	return ts, nil
}

// Register associates a name with a texture path. An empty name is given a
// generated one, which is returned. Re-registering a name replaces its path
// and drops any previously decoded image.
func (ts *TextureSystem) Register(name, path string) (string, error) {
	if name == "" {
		name = uuid.New().String()
	}
	if name == DEFAULT_TEXTURE_NAME {
		core.LogWarn("func texture system Register called for default texture '%s', ignoring", name)
		return name, nil
	}

	ts.mutex.Lock()
	defer ts.mutex.Unlock()

	if uint32(len(ts.registeredPaths)) >= ts.Config.MaxTextureCount {
		err := fmt.Errorf("texture system cannot hold more than %d textures. Adjust configuration to allow more", ts.Config.MaxTextureCount)
		core.LogError(err.Error())
		return "", err
	}

	ts.registeredPaths[name] = path
	delete(ts.loaded, name)
	return name, nil
}

// Acquire returns the decoded texture for the given name, loading it on
// first use. Unknown names and decode failures degrade to the default white
// texture so a single bad texture never fails a pixel.
func (ts *TextureSystem) Acquire(name string) *resources.TextureImage {
	ts.mutex.RLock()
	if t, ok := ts.loaded[name]; ok {
		ts.mutex.RUnlock()
		return t
	}
	path, registered := ts.registeredPaths[name]
	ts.mutex.RUnlock()

	if !registered {
		core.LogWarn("texture '%s' not registered: %v. Using default texture", name, core.ErrTextureSample)
		return ts.DefaultTexture
	}

	if ts.assetManager == nil {
		return ts.DefaultTexture
	}
	img, err := ts.assetManager.LoadImage(path)
	if err != nil {
		core.LogWarn("failed to load texture '%s': %v. Using default texture", name, err)
		return ts.DefaultTexture
	}

	t := resources.NewTextureImage(name, img, mustFlipVertically(path))
	ts.mutex.Lock()
	ts.loaded[name] = t
	ts.mutex.Unlock()

	core.LogDebug("texture '%s' loaded from '%s'", name, path)
	return t
}

// Names returns every registered texture name, default included.
func (ts *TextureSystem) Names() []string {
	ts.mutex.RLock()
	defer ts.mutex.RUnlock()

	names := []string{DEFAULT_TEXTURE_NAME}
	for name := range ts.registeredPaths {
		names = append(names, name)
	}
	return names
}

func (ts *TextureSystem) GetDefaultTexture() *resources.TextureImage {
	return ts.DefaultTexture
}

func (ts *TextureSystem) Shutdown() error {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()

	ts.loaded = map[string]*resources.TextureImage{DEFAULT_TEXTURE_NAME: ts.DefaultTexture}
	ts.registeredPaths = make(map[string]string)
	return nil
}

// invalidatePath drops decoded textures whose backing file changed, so the
// next Acquire reloads from disk.
func (ts *TextureSystem) invalidatePath(path string) {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()

	for name, p := range ts.registeredPaths {
		if p == path {
			delete(ts.loaded, name)
			core.LogDebug("texture '%s' invalidated, will reload on next acquire", name)
		}
	}
}

// mustFlipVertically reports the row-order convention of the source format.
func mustFlipVertically(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tga", ".bmp":
		return true
	default:
		return false
	}
}
