package systems

import (
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/core"
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/mesh"
)

// SystemManager owns the mesh registry and the workers that fill it.
type SystemManager struct {
	jobSystem  *JobSystem
	meshSystem *MeshSystem
}

func NewSystemManager(config *core.Config) (*SystemManager, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	js, err := NewJobSystem(config.Jobs.Workers, config.Jobs.Workers)
	if err != nil {
		return nil, err
	}
	ms, err := NewMeshSystem(&MeshSystemConfig{
		MaxMeshCount: config.Mesh.MaxMeshCount,
	})
	if err != nil {
		_ = js.Shutdown()
		return nil, err
	}
	return &SystemManager{
		jobSystem:  js,
		meshSystem: ms,
	}, nil
}

func (sm *SystemManager) JobSystem() *JobSystem {
	return sm.jobSystem
}

func (sm *SystemManager) MeshSystem() *MeshSystem {
	return sm.meshSystem
}

// Build queues build on a worker and registers the resulting mesh.
func (sm *SystemManager) Build(name string, build func() (*mesh.Mesh, error)) error {
	return sm.jobSystem.Submit(JobTask{
		Name:  name,
		Build: build,
		OnComplete: func(m *mesh.Mesh) {
			if _, err := sm.meshSystem.RegisterOrReplace(m, false); err != nil {
				core.LogError("register '%s': %s", m.Name, err)
			}
		},
	})
}

// Wait blocks until every queued build has been registered.
func (sm *SystemManager) Wait() {
	sm.jobSystem.Wait()
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.jobSystem.Shutdown(); err != nil {
		return err
	}
	sm.meshSystem.Shutdown()
	return nil
}
