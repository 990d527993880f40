// Package scheduler serializes index updates. The index database is
// single-owner state, so every mutation funnels through one queue
// worked by one goroutine.
package scheduler

import (
	"log"
	"sync"
)

// Task is one unit of index work, typically a per-file reindex.
type Task struct {
	Name    string
	Execute func() error
}

// Scheduler runs queued tasks in submission order on one worker.
type Scheduler struct {
	taskQueue chan Task
	stopChan  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// New creates a scheduler with the given queue capacity.
func New(queueSize int) *Scheduler {
	return &Scheduler{
		taskQueue: make(chan Task, queueSize),
		stopChan:  make(chan struct{}),
	}
}

// Run starts the worker loop.
func (s *Scheduler) Run() {
	go func() {
		for {
			select {
			case task, ok := <-s.taskQueue:
				if !ok {
					return
				}
				s.run(task)
			case <-s.stopChan:
				// drain what was already queued, then exit
				for task := range s.taskQueue {
					s.run(task)
				}
				return
			}
		}
	}()
}

func (s *Scheduler) run(task Task) {
	defer s.wg.Done()
	if err := task.Execute(); err != nil {
		log.Printf("scheduler: task %s failed: %v", task.Name, err)
	}
}

// Enqueue submits a task; it blocks when the queue is full.
func (s *Scheduler) Enqueue(task Task) {
	s.wg.Add(1)
	s.taskQueue <- task
}

// Stop closes the queue, waits for queued tasks to finish, and shuts
// the worker down. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		close(s.taskQueue)
	})
	s.wg.Wait()
}
