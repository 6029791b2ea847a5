package renderer

import (
	"context"
	"sync"
)

// RowTask represents a scanline rendering task for the worker pool
type RowTask struct {
	Ctx    context.Context
	Row    int          // Scanline to render, 0 = bottom
	Target *Framebuffer // Shared output; each task writes only its own row
}

// RowResult contains the result from rendering a scanline
type RowResult struct {
	Row     int
	Pixels  int
	Samples int
	Error   error
}

// WorkerPool manages parallel scanline rendering
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual scanline tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// NewWorkerPool creates a worker pool sized for numRows tasks
func NewWorkerPool(raytracer *Raytracer, numRows, numWorkers int) *WorkerPool {
	numWorkers = max(1, min(numWorkers, numRows))

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, numRows),   // Buffer for all rows
		resultQueue: make(chan RowResult, numRows), // Buffer for all results
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			raytracer:   raytracer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if task.Ctx != nil {
			if err := task.Ctx.Err(); err != nil {
				w.resultQueue <- RowResult{Row: task.Row, Error: err}
				continue
			}
		}

		w.resultQueue <- w.raytracer.renderRow(task.Row, task.Target)
	}
}
