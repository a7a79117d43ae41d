package cpm

import (
	"time"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

// reduce folds both passes into one record per task, in input order.
func reduce(g *Graph, forward, backward map[domain.TaskID]window) []domain.ScheduleResult {
	results := make([]domain.ScheduleResult, 0, len(g.order))
	for _, id := range g.order {
		early := forward[id]
		late := backward[id]
		float := daysBetween(early.start, late.start)

		results = append(results, domain.ScheduleResult{
			TaskID:         id,
			EarlyStart:     early.start,
			EarlyFinish:    early.finish,
			LateStart:      late.start,
			LateFinish:     late.finish,
			TotalFloatDays: float,
			IsCritical:     float == 0,
		})
	}
	return results
}

// criticalPath lists critical tasks in topological order, earlier starts
// first.
func criticalPath(g *Graph, results []domain.ScheduleResult) []domain.TaskID {
	critical := make(map[domain.TaskID]bool, len(results))
	earlyStart := make(map[domain.TaskID]time.Time, len(results))
	for _, r := range results {
		earlyStart[r.TaskID] = r.EarlyStart
		if r.IsCritical {
			critical[r.TaskID] = true
		}
	}

	path := make([]domain.TaskID, 0, len(critical))
	for _, id := range g.topoOrder(earlyStart) {
		if critical[id] {
			path = append(path, id)
		}
	}
	return path
}
