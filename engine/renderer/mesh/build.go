package mesh

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// builderQueueSize bounds the task queue; SubmitTask blocks once it is full.
const builderQueueSize = 64

// Job names one geometry to build.
type Job struct {
	Label string
	Build func() Data
}

// Builder runs geometry builders on a worker pool that lives until Release.
type Builder struct {
	pool    worker.DynamicWorkerPool
	workers int
}

// NewBuilder starts a builder with a fixed set of workers.
//
// Parameters:
//   - workers: pool size, runtime.NumCPU() if <= 0
//
// Returns:
//   - *Builder: the started builder; call Release when done
func NewBuilder(workers int) *Builder {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Builder{
		pool:    worker.NewDynamicWorkerPool(workers, builderQueueSize, 1*time.Second),
		workers: workers,
	}
}

// BuildAll runs every job's builder on the pool and returns the results in job order.
// Builders are pure, so they share nothing and need no locking.
//
// Parameters:
//   - jobs: the builders to run
//
// Returns:
//   - []Data: results[i] is jobs[i].Build()
func (b *Builder) BuildAll(jobs []Job) []Data {
	results := make([]Data, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		idx, build := i, job.Build
		b.pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				results[idx] = build()
				return nil, nil
			},
		})
	}
	wg.Wait()
	return results
}

// Release ends every worker goroutine and waits for them to finish. The builder must not be used
// afterwards. Calling Release twice is a no-op.
func (b *Builder) Release() {
	if b.pool == nil {
		return
	}
	// A worker that takes one of these tasks exits, so one task per worker drains the pool.
	var wg sync.WaitGroup
	for i := 0; i < b.workers; i++ {
		wg.Add(1)
		b.pool.SubmitTask(worker.Task{
			ID: -1,
			Do: func() (any, error) {
				defer wg.Done()
				runtime.Goexit()
				return nil, nil
			},
		})
	}
	wg.Wait()
	b.pool.Stop()
	b.pool = nil
}

// BuildAll runs jobs on a short-lived Builder and releases it before returning.
//
// Parameters:
//   - jobs: the builders to run
//   - workers: pool size, runtime.NumCPU() if <= 0
//
// Returns:
//   - []Data: results[i] is jobs[i].Build()
func BuildAll(jobs []Job, workers int) []Data {
	b := NewBuilder(workers)
	defer b.Release()
	return b.BuildAll(jobs)
}
