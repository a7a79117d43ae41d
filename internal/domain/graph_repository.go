package domain

import "context"

//go:generate mockgen -source=graph_repository.go -destination=graph_repository_mock.go -package=domain

// ProjectGraph is everything the engine needs for one project.
type ProjectGraph struct {
	ProjectID    ProjectID
	Tasks        []Task
	Dependencies []Dependency
	Constraints  []Constraint
}

type GraphRepository interface {
	// LoadGraph returns the project's tasks with only active dependencies and
	// constraints.
	LoadGraph(ctx context.Context, projectID ProjectID) (*ProjectGraph, error)
	UpdateTaskSchedule(ctx context.Context, projectID ProjectID, update ScheduleUpdate) error
}
