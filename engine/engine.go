package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/assets"
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/core"
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/kernel"
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/mesh"
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine has released everything
	EngineStageShutdown
)

// MeshStats summarizes one registered mesh.
type MeshStats struct {
	ID         uint32
	Name       string
	Vertices   int
	Triangles  int
	Edges      int
	OuterEdges int
}

// Engine builds the configured meshes into the registry and keeps model
// assets in sync with the files on disk until it is shut down.
type Engine struct {
	mu            sync.Mutex
	currentStage  Stage
	config        *core.Config
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	clock         *core.Clock
}

func New(config *core.Config) (*Engine, error) {
	if config == nil {
		config = core.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		core.LogError("%s", err)
		return nil, err
	}
	if err := core.SetLogLevel(config.Log.Level); err != nil {
		return nil, err
	}

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError("%s", err)
		return nil, err
	}

	sm, err := systems.NewSystemManager(config)
	if err != nil {
		core.LogError("%s", err)
		_ = am.Close()
		return nil, err
	}

	return &Engine{
		currentStage:  EngineStageUninitialized,
		config:        config,
		clock:         core.NewClock(),
		assetManager:  am,
		systemManager: sm,
	}, nil
}

func (e *Engine) Stage() Stage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentStage
}

func (e *Engine) setStage(s Stage) {
	e.mu.Lock()
	e.currentStage = s
	e.mu.Unlock()
}

func (e *Engine) Systems() *systems.SystemManager {
	return e.systemManager
}

/**
 * @brief Builds the generated primitives, the tessellated solids and every
 * model under the assets path, and registers them. Models are watched for
 * changes when the configuration asks for it.
 */
func (e *Engine) Initialize() error {
	if stage := e.Stage(); stage != EngineStageUninitialized {
		return fmt.Errorf("engine initialize called at stage %d: %w", stage, core.ErrInvalidArgument)
	}
	e.setStage(EngineStageInitializing)
	e.clock.Start()

	if err := e.queuePrimitives(); err != nil {
		return err
	}
	if err := e.queueSolids(); err != nil {
		return err
	}
	if err := e.queueAssets(); err != nil {
		return err
	}
	e.systemManager.Wait()

	e.clock.Update()
	metrics := e.systemManager.JobSystem().Metrics()
	core.LogInfo("Built %d meshes in %s (average %s per mesh).", metrics.Count(), e.clock.Elapsed(), metrics.Average())
	for _, s := range e.Stats() {
		core.LogInfo("  [%d] %s: %d vertices, %d triangles, %d edges (%d outer)", s.ID, s.Name, s.Vertices, s.Triangles, s.Edges, s.OuterEdges)
	}

	e.setStage(EngineStageInitialized)
	return nil
}

func (e *Engine) queuePrimitives() error {
	segments := uint32(e.config.Mesh.DefaultSegments)
	builds := map[string]func() (*mesh.Mesh, error){
		"plane": func() (*mesh.Mesh, error) {
			return systems.GeneratePlane(10, 10, 4, 4, 1, 1, "plane")
		},
		"cube": func() (*mesh.Mesh, error) {
			return systems.GenerateCube(2, 2, 2, 1, 1, "cube")
		},
		"disc": func() (*mesh.Mesh, error) {
			return systems.GenerateDisc(1, segments, "disc")
		},
		"cylinder": func() (*mesh.Mesh, error) {
			return systems.GenerateCylinder(1, 2, segments, "cylinder")
		},
	}
	for name, build := range builds {
		if err := e.systemManager.Build(name, build); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) queueSolids() error {
	cells := e.config.Kernel.Cells
	solids := map[string]func() (*mesh.Mesh, error){
		"sdf_sphere": func() (*mesh.Mesh, error) {
			s, err := kernel.Sphere(1)
			if err != nil {
				return nil, err
			}
			return kernel.Tessellate("sdf_sphere", s, cells)
		},
		"sdf_box": func() (*mesh.Mesh, error) {
			s, err := kernel.Box(2, 1, 1)
			if err != nil {
				return nil, err
			}
			return kernel.Tessellate("sdf_box", s, cells)
		},
	}
	for name, build := range solids {
		if err := e.systemManager.Build(name, build); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) queueAssets() error {
	path := e.config.Assets.Path
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		core.LogWarn("assets path '%s' does not exist. Skipping models...", path)
		return nil
	}

	e.assetManager.OnReload(func(path string, m *mesh.Mesh) {
		if _, err := e.systemManager.MeshSystem().RegisterOrReplace(m, false); err != nil {
			core.LogError("register reloaded '%s': %s", path, err)
		}
	})
	if err := e.assetManager.Initialize(path, e.config.Assets.Watch); err != nil {
		return err
	}

	for _, asset := range e.assetManager.Assets() {
		assetPath := asset.Path
		if err := e.systemManager.Build(filepath.Base(assetPath), func() (*mesh.Mesh, error) {
			return e.assetManager.LoadAsset(assetPath)
		}); err != nil {
			return err
		}
	}
	return nil
}

// Stats computes the edges of every registered mesh and summarizes them.
func (e *Engine) Stats() []MeshStats {
	ms := e.systemManager.MeshSystem()
	var out []MeshStats
	for _, m := range ms.Meshes() {
		m.ComputeEdges()
		out = append(out, MeshStats{
			ID:         uint32(m.Index),
			Name:       m.Name,
			Vertices:   m.VertexCount(),
			Triangles:  m.TriangleCount(),
			Edges:      m.Edges().Len(),
			OuterEdges: len(m.Edges().OuterEdges()),
		})
	}
	return out
}

// Run blocks until ctx is done. Watched models keep being reloaded meanwhile.
func (e *Engine) Run(ctx context.Context) error {
	if stage := e.Stage(); stage != EngineStageInitialized {
		return fmt.Errorf("engine run called at stage %d: %w", stage, core.ErrInvalidArgument)
	}
	e.setStage(EngineStageRunning)
	core.LogInfo("Engine running with %d meshes.", e.systemManager.MeshSystem().Count())

	<-ctx.Done()
	return nil
}

func (e *Engine) Shutdown() error {
	e.mu.Lock()
	if e.currentStage == EngineStageShuttingDown || e.currentStage == EngineStageShutdown {
		e.mu.Unlock()
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.mu.Unlock()

	if err := e.assetManager.Close(); err != nil {
		return err
	}
	if err := e.systemManager.Shutdown(); err != nil {
		return err
	}
	e.setStage(EngineStageShutdown)
	core.LogInfo("Engine shut down.")
	return nil
}
