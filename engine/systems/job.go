package systems

import (
	"fmt"
	"sync"

	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/core"
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/mesh"
)

// JobTask builds one mesh on a worker. OnComplete or OnFailure runs on the
// worker once Build returns.
type JobTask struct {
	Name       string
	Build      func() (*mesh.Mesh, error)
	OnComplete func(m *mesh.Mesh)
	OnFailure  func(err error)
}

// JobSystem is a fixed pool of workers building meshes off a queue.
type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	wg         sync.WaitGroup
	pending    sync.WaitGroup
	metrics    *core.Metrics

	mu       sync.Mutex
	shutdown bool
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker: %w", core.ErrInvalidArgument)
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size: %w", core.ErrInvalidArgument)
var ErrJobSystemShutdown = fmt.Errorf("job system is shut down")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan JobTask, channelSize),
		metrics:    core.NewMetrics(),
	}

	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				js.run(job)
				js.pending.Done()
			}
		}()
	}
}

func (js *JobSystem) run(job JobTask) {
	clock := core.NewClock()
	clock.Start()

	var m *mesh.Mesh
	err := fmt.Errorf("job '%s' has no build function: %w", job.Name, core.ErrInvalidArgument)
	if job.Build != nil {
		m, err = job.Build()
		if err == nil && m == nil {
			err = fmt.Errorf("job '%s' built no mesh: %w", job.Name, core.ErrInvalidArgument)
		}
	}
	clock.Update()
	js.metrics.Record(clock.Elapsed())

	if err != nil {
		core.LogError("job '%s' failed: %s", job.Name, err)
		if job.OnFailure != nil {
			job.OnFailure(err)
		}
		return
	}
	core.LogDebug("job '%s' built %d triangles in %s.", job.Name, m.TriangleCount(), clock.Elapsed())
	if job.OnComplete != nil {
		job.OnComplete(m)
	}
}

/**
 * @brief Shuts the job system down. Queued jobs still run.
 */
func (js *JobSystem) Shutdown() error {
	js.mu.Lock()
	if js.shutdown {
		js.mu.Unlock()
		return nil
	}
	js.shutdown = true
	close(js.jobQueue)
	js.mu.Unlock()

	js.wg.Wait()
	return nil
}

/**
 * @brief Submits the provided job to be queued for execution. Blocks while
 * the queue is full.
 * @param jt The description of the job to be executed.
 */
func (js *JobSystem) Submit(jt JobTask) error {
	js.mu.Lock()
	defer js.mu.Unlock()
	if js.shutdown {
		return fmt.Errorf("job '%s': %w", jt.Name, ErrJobSystemShutdown)
	}
	js.pending.Add(1)
	js.jobQueue <- jt
	return nil
}

// Wait blocks until every submitted job has finished.
func (js *JobSystem) Wait() {
	js.pending.Wait()
}

// Metrics returns the build time statistics of finished jobs.
func (js *JobSystem) Metrics() *core.Metrics {
	return js.metrics
}
