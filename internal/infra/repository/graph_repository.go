package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

type GraphRepository struct {
	db *gorm.DB
}

func NewGraphRepository(db *gorm.DB) *GraphRepository {
	return &GraphRepository{db: db}
}

var _ domain.GraphRepository = (*GraphRepository)(nil)

func (r *GraphRepository) LoadGraph(ctx context.Context, projectID domain.ProjectID) (*domain.ProjectGraph, error) {
	db := r.db.WithContext(ctx)

	var activities []Activity
	if err := db.Where("project_id = ?", int64(projectID)).Order("id").Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("load activities: %w", err)
	}

	var deps []ActivityDependency
	if err := db.Where("project_id = ? AND is_active = ?", int64(projectID), true).Order("id").Find(&deps).Error; err != nil {
		return nil, fmt.Errorf("load dependencies: %w", err)
	}

	var constraints []ActivityConstraint
	if err := db.Where("project_id = ? AND is_active = ?", int64(projectID), true).Order("id").Find(&constraints).Error; err != nil {
		return nil, fmt.Errorf("load constraints: %w", err)
	}

	graph := &domain.ProjectGraph{
		ProjectID:    projectID,
		Tasks:        make([]domain.Task, 0, len(activities)),
		Dependencies: make([]domain.Dependency, 0, len(deps)),
		Constraints:  make([]domain.Constraint, 0, len(constraints)),
	}
	for _, a := range activities {
		graph.Tasks = append(graph.Tasks, a.toDomain())
	}
	for _, d := range deps {
		graph.Dependencies = append(graph.Dependencies, d.toDomain())
	}
	for _, c := range constraints {
		graph.Constraints = append(graph.Constraints, c.toDomain())
	}

	return graph, nil
}

// UpdateTaskSchedule overwrites the planned and computed columns of one
// activity. It returns domain.ErrTaskNotFound when no row matches.
func (r *GraphRepository) UpdateTaskSchedule(ctx context.Context, projectID domain.ProjectID, update domain.ScheduleUpdate) error {
	float := update.TotalFloatDays
	res := r.db.WithContext(ctx).
		Model(&Activity{}).
		Where("id = ? AND project_id = ?", int64(update.TaskID), int64(projectID)).
		Updates(map[string]any{
			"planned_start":    update.PlannedStart,
			"planned_finish":   update.PlannedFinish,
			"early_start":      update.EarlyStart,
			"early_finish":     update.EarlyFinish,
			"late_start":       update.LateStart,
			"late_finish":      update.LateFinish,
			"total_float_days": &float,
			"critical_path":    update.CriticalPath,
		})
	if res.Error != nil {
		return fmt.Errorf("update activity %d: %w", update.TaskID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("activity %d: %w", update.TaskID, domain.ErrTaskNotFound)
	}
	return nil
}

// ReplaceGraph swaps a project's stored tasks, dependencies and constraints
// for the given graph in one transaction.
func (r *GraphRepository) ReplaceGraph(ctx context.Context, graph *domain.ProjectGraph) error {
	pid := int64(graph.ProjectID)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&ActivityConstraint{}, &ActivityDependency{}, &Activity{}} {
			if err := tx.Where("project_id = ?", pid).Delete(model).Error; err != nil {
				return fmt.Errorf("clear project %d: %w", pid, err)
			}
		}

		if len(graph.Tasks) > 0 {
			activities := make([]Activity, 0, len(graph.Tasks))
			for _, t := range graph.Tasks {
				a := activityFromDomain(t)
				a.ProjectID = pid
				activities = append(activities, a)
			}
			if err := tx.Create(&activities).Error; err != nil {
				return fmt.Errorf("insert activities: %w", err)
			}
		}

		if len(graph.Dependencies) > 0 {
			deps := make([]ActivityDependency, 0, len(graph.Dependencies))
			for _, d := range graph.Dependencies {
				m := dependencyFromDomain(d)
				m.ProjectID = pid
				deps = append(deps, m)
			}
			if err := tx.Create(&deps).Error; err != nil {
				return fmt.Errorf("insert dependencies: %w", err)
			}
		}

		if len(graph.Constraints) > 0 {
			constraints := make([]ActivityConstraint, 0, len(graph.Constraints))
			for _, c := range graph.Constraints {
				m := constraintFromDomain(c)
				m.ProjectID = pid
				constraints = append(constraints, m)
			}
			if err := tx.Create(&constraints).Error; err != nil {
				return fmt.Errorf("insert constraints: %w", err)
			}
		}

		return nil
	})
}
