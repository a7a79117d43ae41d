package testutil

import (
	"math/rand/v2"
	"time"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

var dependencyTypes = []domain.DependencyType{
	domain.FinishToStart,
	domain.StartToStart,
	domain.FinishToFinish,
	domain.StartToFinish,
}

type GraphShape struct {
	Seed      uint64
	Layers    int
	Width     int
	MaxFanIn  int
	MaxLag    int
	Start     time.Time
	ProjectID domain.ProjectID
}

// GenerateLayeredGraph builds a random acyclic graph: edges only point from
// lower layers to higher ones. The same shape and seed always yields the same graph.
func GenerateLayeredGraph(shape GraphShape) ([]domain.Task, []domain.Dependency) {
	rng := rand.New(rand.NewPCG(shape.Seed, shape.Seed^0x9e3779b97f4a7c15))

	if shape.MaxFanIn <= 0 {
		shape.MaxFanIn = 2
	}

	layers := make([][]domain.TaskID, shape.Layers)
	tasks := make([]domain.Task, 0, shape.Layers*shape.Width)
	var next domain.TaskID = 1
	for l := 0; l < shape.Layers; l++ {
		width := 1 + rng.IntN(shape.Width)
		for i := 0; i < width; i++ {
			t := domain.Task{
				ID:              next,
				ProjectID:       shape.ProjectID,
				DurationDays:    1 + rng.IntN(9),
				IsAutoScheduled: rng.IntN(4) != 0,
			}
			if l == 0 {
				start := shape.Start.AddDate(0, 0, rng.IntN(3))
				t.PlannedStart = &start
			}
			tasks = append(tasks, t)
			layers[l] = append(layers[l], next)
			next++
		}
	}

	var deps []domain.Dependency
	var edgeID int64 = 1
	for l := 1; l < shape.Layers; l++ {
		for _, succ := range layers[l] {
			fanIn := 1 + rng.IntN(shape.MaxFanIn)
			for k := 0; k < fanIn; k++ {
				fromLayer := rng.IntN(l)
				pred := layers[fromLayer][rng.IntN(len(layers[fromLayer]))]
				lag := 0
				if shape.MaxLag > 0 {
					lag = rng.IntN(2*shape.MaxLag+1) - shape.MaxLag
				}
				deps = append(deps, domain.Dependency{
					ID:            edgeID,
					ProjectID:     shape.ProjectID,
					PredecessorID: pred,
					SuccessorID:   succ,
					Type:          dependencyTypes[rng.IntN(len(dependencyTypes))],
					LagDays:       lag,
					IsActive:      true,
				})
				edgeID++
			}
		}
	}

	return tasks, deps
}
