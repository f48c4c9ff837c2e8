package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triangleOBJ = "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

const quadOBJ = "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n"

func testConfig(t *testing.T) *core.Config {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Log.Level = "error"
	cfg.Kernel.Cells = 8
	cfg.Mesh.DefaultSegments = 6
	cfg.Assets.Path = t.TempDir()
	cfg.Assets.Watch = false
	return cfg
}

func statsByName(e *Engine) map[string]MeshStats {
	out := map[string]MeshStats{}
	for _, s := range e.Stats() {
		out[s.Name] = s
	}
	return out
}

func TestEngineLifecycle(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Assets.Path, "tri.obj"), []byte(triangleOBJ), 0o644))

	e, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, EngineStageUninitialized, e.Stage())
	require.NoError(t, e.Initialize())
	assert.Equal(t, EngineStageInitialized, e.Stage())
	assert.Error(t, e.Initialize())

	stats := statsByName(e)
	require.Len(t, stats, 7)
	assert.Equal(t, 12, stats["cube"].Triangles)
	assert.Equal(t, 6, stats["disc"].Triangles)
	assert.Equal(t, 6, stats["disc"].OuterEdges)
	assert.Equal(t, 0, stats["cylinder"].OuterEdges)
	assert.Equal(t, 1, stats["tri"].Triangles)
	assert.Equal(t, 3, stats["tri"].OuterEdges)
	assert.Greater(t, stats["sdf_sphere"].Triangles, 0)
	assert.Greater(t, stats["sdf_box"].Triangles, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()
	require.Eventually(t, func() bool { return e.Stage() == EngineStageRunning }, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	require.NoError(t, e.Shutdown())
	require.NoError(t, e.Shutdown())
	assert.Equal(t, EngineStageShutdown, e.Stage())
	assert.Equal(t, 0, e.Systems().MeshSystem().Count())
}

func TestEngineReloadsWatchedModels(t *testing.T) {
	cfg := testConfig(t)
	cfg.Assets.Watch = true
	path := filepath.Join(cfg.Assets.Path, "shape.obj")
	require.NoError(t, os.WriteFile(path, []byte(triangleOBJ), 0o644))

	e, err := New(cfg)
	require.NoError(t, err)
	defer e.Shutdown()
	require.NoError(t, e.Initialize())

	ms := e.Systems().MeshSystem()
	id, ok := ms.FindByName("shape")
	require.True(t, ok)

	require.NoError(t, os.WriteFile(path, []byte(quadOBJ), 0o644))
	require.Eventually(t, func() bool {
		m, err := ms.AcquireByID(id)
		if err != nil {
			return false
		}
		defer ms.Release(id)
		return m.TriangleCount() == 2
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, 7, ms.Count(), "the reloaded model keeps its slot")
}

func TestEngineMissingAssetsAndBadConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Assets.Path = filepath.Join(cfg.Assets.Path, "missing")
	e, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	assert.Len(t, e.Stats(), 6)
	require.NoError(t, e.Shutdown())

	assert.Error(t, e.Run(context.Background()), "a shut down engine cannot run")

	cfg = testConfig(t)
	cfg.Kernel.Cells = 0
	_, err = New(cfg)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}
