package scheduler_test

import (
	"errors"
	"sync"
	"testing"

	"svindex/internal/scheduler"
)

func TestTasksRunInOrder(t *testing.T) {
	s := scheduler.New(10)
	s.Run()

	var mu sync.Mutex
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		s.Enqueue(scheduler.Task{
			Name: "task",
			Execute: func() error {
				mu.Lock()
				defer mu.Unlock()
				order = append(order, i)
				return nil
			},
		})
	}
	s.Stop()

	if len(order) != 5 {
		t.Fatalf("ran %d tasks, want 5", len(order))
	}
	for i, got := range order {
		if got != i {
			t.Errorf("position %d ran task %d", i, got)
		}
	}
}

func TestFailedTaskDoesNotStopWorker(t *testing.T) {
	s := scheduler.New(4)
	s.Run()

	ran := make(chan struct{})
	s.Enqueue(scheduler.Task{
		Name:    "failing",
		Execute: func() error { return errors.New("boom") },
	})
	s.Enqueue(scheduler.Task{
		Name: "following",
		Execute: func() error {
			close(ran)
			return nil
		},
	})
	s.Stop()

	select {
	case <-ran:
	default:
		t.Error("task after a failure never ran")
	}
}

func TestStopDrainsQueue(t *testing.T) {
	s := scheduler.New(16)

	var mu sync.Mutex
	count := 0
	for i := 0; i < 8; i++ {
		s.Enqueue(scheduler.Task{
			Name: "queued",
			Execute: func() error {
				mu.Lock()
				defer mu.Unlock()
				count++
				return nil
			},
		})
	}
	// start only after everything is queued
	s.Run()
	s.Stop()

	mu.Lock()
	defer mu.Unlock()
	if count != 8 {
		t.Errorf("ran %d tasks, want 8", count)
	}
}

func TestStopTwice(t *testing.T) {
	s := scheduler.New(1)
	s.Run()
	s.Stop()
	s.Stop()
}
