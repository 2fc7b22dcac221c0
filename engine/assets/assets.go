package assets

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/prisma/engine/assets/loaders"
	"github.com/spaghettifunk/prisma/engine/core"
)

type AssetType uint8

const (
	AssetTypeNone AssetType = iota
	AssetTypeImage
)

type AssetInfo struct {
	Path       string
	Type       AssetType
	LastLoaded time.Time
}

// InvalidateFunc is called with the asset path whenever a watched file
// changes on disk, letting registries drop stale entries.
type InvalidateFunc func(path string)

// AssetManager indexes the asset directory and watches it for changes so
// textures can be hot-reloaded between renders.
type AssetManager struct {
	assets      map[string]AssetInfo
	imageLoader *loaders.ImageLoader
	onChange    InvalidateFunc

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:      make(map[string]AssetInfo),
		imageLoader: &loaders.ImageLoader{},
		fsnotify:    fsWatch,
		done:        make(chan struct{}),
	}, nil
}

// Initialize indexes the asset directory and starts the watch loop. A
// missing directory is not an error: the manager simply serves nothing.
func (am *AssetManager) Initialize(assetsDir string) error {
	go am.start()

	if assetsDir == "" {
		return nil
	}
	if _, err := os.Stat(assetsDir); err != nil {
		core.LogWarn("asset directory '%s' not found, no assets will be served", assetsDir)
		return nil
	}
	return am.addRecursive(assetsDir)
}

// OnInvalidate registers the callback fired when a watched asset changes.
func (am *AssetManager) OnInvalidate(fn InvalidateFunc) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.onChange = fn
}

// LoadImage decodes the image asset at the given path.
func (am *AssetManager) LoadImage(path string) (image.Image, error) {
	img, err := am.imageLoader.Load(path)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	am.assets[path] = AssetInfo{Path: path, Type: AssetTypeImage, LastLoaded: time.Now()}
	am.mutex.Unlock()

	return img, nil
}

func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return errors.New("asset manager already closed")
	}
	am.isClosed = true
	close(am.done)
	return nil
}

// addRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return errors.New("asset manager already closed")
	}
	return filepath.Walk(name, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		am.indexAsset(walkPath)
		return nil
	})
}

func (am *AssetManager) start() {
	for {
		select {
		case e := <-am.fsnotify.Events:
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					am.addRecursive(e.Name)
				}
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.indexAsset(e.Name)
				am.invalidate(e.Name)
			}
			if e.Op&fsnotify.Remove != 0 {
				am.removeAsset(e.Name)
				am.invalidate(e.Name)
			}

		case e := <-am.fsnotify.Errors:
			core.LogError(e.Error())

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

func (am *AssetManager) invalidate(path string) {
	am.mutex.RLock()
	fn := am.onChange
	am.mutex.RUnlock()
	if fn != nil {
		fn(path)
	}
}

func (am *AssetManager) indexAsset(path string) {
	assetType := determineAssetType(path)
	if assetType == AssetTypeNone {
		return
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[path] = AssetInfo{
		Path:       path,
		Type:       assetType,
		LastLoaded: time.Now(),
	}
}

func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, path)
}

func determineAssetType(path string) AssetType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".bmp", ".tiff", ".tga":
		return AssetTypeImage
	default:
		return AssetTypeNone
	}
}
