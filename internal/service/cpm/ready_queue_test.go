package cpm

import (
	"container/heap"
	"context"
	"testing"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

func TestReadyQueue_EarliestStartFirst(t *testing.T) {
	q := &readyQueue{}

	heap.Push(q, &readyItem{id: 1, earlyStart: date("2024-01-05")})
	heap.Push(q, &readyItem{id: 9, earlyStart: date("2024-01-02")})
	heap.Push(q, &readyItem{id: 4, earlyStart: date("2024-01-02")})
	heap.Push(q, &readyItem{id: 2, earlyStart: date("2024-01-03")})

	want := []domain.TaskID{4, 9, 2, 1}
	for i, id := range want {
		got := heap.Pop(q).(*readyItem)
		if got.id != id {
			t.Errorf("pop %d = %d, want %d", i, got.id, id)
		}
		if got.index != -1 {
			t.Errorf("popped item keeps index %d", got.index)
		}
	}
	if q.Len() != 0 {
		t.Errorf("queue not drained, %d left", q.Len())
	}
}

func TestCriticalPath_OrderedByStart(t *testing.T) {
	// Two critical branches joining at task 1. Task 7 starts before task 3
	// and is listed first even though its id is larger.
	tasks := []domain.Task{
		{ID: 1, DurationDays: 1},
		{ID: 5, DurationDays: 2},
		{ID: 7, DurationDays: 3},
		{ID: 3, DurationDays: 2, PlannedStart: datePtr("2024-01-02")},
	}
	deps := []domain.Dependency{
		fs(1, 7, 5, 0),
		fs(2, 5, 1, 0),
		fs(3, 3, 1, 2),
	}
	opts := testOptions()
	opts.ProjectStart = date("2024-01-01")

	s, err := Compute(context.Background(), tasks, deps, nil, opts)
	if err != nil {
		t.Fatalf("Compute() unexpected error: %v", err)
	}
	if s.CriticalCount() != len(tasks) {
		t.Fatalf("critical tasks = %d, want all %d", s.CriticalCount(), len(tasks))
	}

	want := []domain.TaskID{7, 3, 5, 1}
	if len(s.CriticalPath) != len(want) {
		t.Fatalf("CriticalPath = %v, want %v", s.CriticalPath, want)
	}
	for i := range want {
		if s.CriticalPath[i] != want[i] {
			t.Fatalf("CriticalPath = %v, want %v", s.CriticalPath, want)
		}
	}
}
