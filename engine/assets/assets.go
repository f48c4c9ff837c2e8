package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/assets/loaders"
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/core"
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/mesh"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/exp/slices"
)

type AssetInfo struct {
	Path       string
	Type       AssetType
	LastLoaded time.Time
}

// ReloadFunc receives a model that changed on disk, freshly loaded.
type ReloadFunc func(path string, m *mesh.Mesh)

// AssetManager indexes the model files under a directory and, when
// watching, reloads them as they change.
type AssetManager struct {
	assets  map[string]AssetInfo
	loaders map[AssetType]Loader

	mutex sync.RWMutex

	onReload ReloadFunc

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	watching bool
	isClosed bool
	wg       sync.WaitGroup
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[AssetType]Loader),
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}
	// Register loaders
	am.RegisterLoader(AssetTypeModel, &loaders.ObjLoader{})
	return am, nil
}

// Initialize indexes every asset under assetsDir. With watch, directories are
// watched and changed models are reloaded and handed to the OnReload callback.
func (am *AssetManager) Initialize(assetsDir string, watch bool) error {
	info, err := os.Stat(assetsDir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("assets path '%s' is not a directory: %w", assetsDir, core.ErrInvalidArgument)
	}

	if err := am.watchRecursive(assetsDir, watch); err != nil {
		return err
	}
	if watch {
		am.mutex.Lock()
		am.watching = true
		am.mutex.Unlock()
		am.wg.Add(1)
		go am.start()
	}
	return nil
}

// OnReload sets the callback run, on the watcher goroutine, for every model
// reloaded after a change.
func (am *AssetManager) OnReload(fn ReloadFunc) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.onReload = fn
}

// RegisterLoader sets the loader used for an asset type.
func (am *AssetManager) RegisterLoader(assetType AssetType, loader Loader) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.loaders[assetType] = loader
}

// Assets returns the indexed assets sorted by path.
func (am *AssetManager) Assets() []AssetInfo {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	paths := make([]string, 0, len(am.assets))
	for path := range am.assets {
		paths = append(paths, path)
	}
	slices.Sort(paths)

	out := make([]AssetInfo, 0, len(paths))
	for _, path := range paths {
		out = append(out, am.assets[path])
	}
	return out
}

// LoadAsset loads an indexed asset using the loader registered for its type.
func (am *AssetManager) LoadAsset(path string) (*mesh.Mesh, error) {
	path = filepath.Clean(path)

	am.mutex.RLock()
	asset, exists := am.assets[path]
	loader, loaderExists := am.loaders[asset.Type]
	am.mutex.RUnlock()
	if !exists {
		return nil, fmt.Errorf("asset not found: %s: %w", path, core.ErrNotFound)
	}
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %s: %w", asset.Type, core.ErrNotFound)
	}

	m, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	asset.LastLoaded = time.Now()
	am.assets[path] = asset // Update the loaded time
	am.mutex.Unlock()
	return m, nil
}

// Close stops watching. It is safe to call more than once.
func (am *AssetManager) Close() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	watching := am.watching
	am.mutex.Unlock()

	close(am.done)
	if watching {
		am.wg.Wait()
		return nil
	}
	return am.fsnotify.Close()
}

func (am *AssetManager) start() {
	defer am.wg.Done()
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			am.handleEvent(e)

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("%s", err)

		case <-am.done:
			if err := am.fsnotify.Close(); err != nil {
				core.LogError("%s", err)
			}
			return
		}
	}
}

func (am *AssetManager) handleEvent(e fsnotify.Event) {
	path := filepath.Clean(e.Name)
	s, err := os.Stat(path)
	if err == nil && s.IsDir() {
		if e.Op&fsnotify.Create != 0 {
			if err := am.watchRecursive(path, true); err != nil {
				core.LogError("%s", err)
			}
		}
		return
	}

	// Handle create or modify events
	if e.Op&(fsnotify.Create|fsnotify.Write) != 0 && err == nil {
		if am.handleFileEvent(path) {
			am.reload(path)
		}
		return
	}
	if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		am.removeAsset(path)
	}
}

func (am *AssetManager) reload(path string) {
	m, err := am.LoadAsset(path)
	if err != nil {
		// A file caught halfway through a write fails here and is reloaded
		// on the next write event.
		core.LogWarn("reload of '%s' failed: %s", path, err)
		return
	}
	core.LogInfo("Reloaded '%s': %d vertices, %d triangles.", path, m.VertexCount(), m.TriangleCount())

	am.mutex.RLock()
	fn := am.onReload
	am.mutex.RUnlock()
	if fn != nil {
		fn(path, m)
	}
}

// watchRecursive indexes every file under path and, with watch, adds every
// directory to the watch list.
func (am *AssetManager) watchRecursive(path string, watch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		if fi.IsDir() {
			if watch {
				return am.fsnotify.Add(walkPath)
			}
			return nil
		}
		am.handleFileEvent(filepath.Clean(walkPath))
		return nil
	})
}

// handleFileEvent indexes a created or modified file and reports whether it
// is a known asset.
func (am *AssetManager) handleFileEvent(path string) bool {
	assetType := determineAssetType(path)
	if assetType == AssetTypeNone {
		return false
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	if _, exists := am.assets[path]; !exists {
		am.assets[path] = AssetInfo{Path: path, Type: assetType}
	}
	return true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, path)
}
