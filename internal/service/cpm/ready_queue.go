package cpm

import (
	"time"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

type readyItem struct {
	id         domain.TaskID
	earlyStart time.Time
	index      int
}

// readyQueue is a container/heap of tasks whose predecessors are all
// ordered. Earliest start first, then lowest id.
type readyQueue struct {
	items []*readyItem
}

func (q *readyQueue) Len() int {
	return len(q.items)
}

func (q *readyQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]

	if !a.earlyStart.Equal(b.earlyStart) {
		return a.earlyStart.Before(b.earlyStart)
	}

	return a.id < b.id
}

func (q *readyQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].index = i
	q.items[j].index = j
}

func (q *readyQueue) Push(x any) {
	item := x.(*readyItem)
	item.index = len(q.items)
	q.items = append(q.items, item)
}

func (q *readyQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	q.items = old[0 : n-1]
	return item
}
