package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

// Activity is the stored form of a task. Only the scheduling columns are
// modelled; the surrounding application owns the rest of the row.
type Activity struct {
	ID              int64  `gorm:"primaryKey"`
	ProjectID       int64  `gorm:"not null;index:idx_activities_project"`
	Name            string `gorm:"size:255;not null"`
	PlannedStart    *time.Time
	PlannedFinish   *time.Time
	DurationDays    int
	IsAutoScheduled bool
	EarlyStart      *time.Time
	EarlyFinish     *time.Time
	LateStart       *time.Time
	LateFinish      *time.Time
	TotalFloatDays  *int
	CriticalPath    bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Activity) TableName() string {
	return "activities"
}

type ActivityDependency struct {
	ID            int64  `gorm:"primaryKey"`
	ProjectID     int64  `gorm:"not null;index:idx_activity_dependencies_project_active,priority:1"`
	PredecessorID int64  `gorm:"not null;index"`
	SuccessorID   int64  `gorm:"not null;index"`
	Type          string `gorm:"size:32;not null"`
	LagDays       int
	IsActive      bool `gorm:"index:idx_activity_dependencies_project_active,priority:2"`
	CreatedAt     time.Time
}

func (ActivityDependency) TableName() string {
	return "activity_dependencies"
}

type ActivityConstraint struct {
	ID         int64     `gorm:"primaryKey"`
	ProjectID  int64     `gorm:"not null;index:idx_activity_constraints_project_active,priority:1"`
	ActivityID int64     `gorm:"not null;index"`
	Type       string    `gorm:"size:32;not null"`
	Date       time.Time `gorm:"column:constraint_date;not null"`
	Priority   int
	IsActive   bool `gorm:"index:idx_activity_constraints_project_active,priority:2"`
	CreatedAt  time.Time
}

func (ActivityConstraint) TableName() string {
	return "activity_constraints"
}

// AutoMigrate creates or updates the scheduling tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Activity{}, &ActivityDependency{}, &ActivityConstraint{})
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func (a Activity) toDomain() domain.Task {
	return domain.Task{
		ID:              domain.TaskID(a.ID),
		ProjectID:       domain.ProjectID(a.ProjectID),
		Name:            a.Name,
		PlannedStart:    utcPtr(a.PlannedStart),
		PlannedFinish:   utcPtr(a.PlannedFinish),
		DurationDays:    a.DurationDays,
		IsAutoScheduled: a.IsAutoScheduled,
		EarlyStart:      utcPtr(a.EarlyStart),
		EarlyFinish:     utcPtr(a.EarlyFinish),
		LateStart:       utcPtr(a.LateStart),
		LateFinish:      utcPtr(a.LateFinish),
		TotalFloatDays:  a.TotalFloatDays,
		IsCritical:      a.CriticalPath,
	}
}

func activityFromDomain(t domain.Task) Activity {
	return Activity{
		ID:              int64(t.ID),
		ProjectID:       int64(t.ProjectID),
		Name:            t.Name,
		PlannedStart:    t.PlannedStart,
		PlannedFinish:   t.PlannedFinish,
		DurationDays:    t.DurationDays,
		IsAutoScheduled: t.IsAutoScheduled,
	}
}

func (d ActivityDependency) toDomain() domain.Dependency {
	return domain.Dependency{
		ID:            d.ID,
		ProjectID:     domain.ProjectID(d.ProjectID),
		PredecessorID: domain.TaskID(d.PredecessorID),
		SuccessorID:   domain.TaskID(d.SuccessorID),
		Type:          domain.DependencyType(d.Type),
		LagDays:       d.LagDays,
		IsActive:      d.IsActive,
	}
}

func dependencyFromDomain(d domain.Dependency) ActivityDependency {
	typ := d.Type
	if typ == "" {
		typ = domain.FinishToStart
	}
	return ActivityDependency{
		ID:            d.ID,
		ProjectID:     int64(d.ProjectID),
		PredecessorID: int64(d.PredecessorID),
		SuccessorID:   int64(d.SuccessorID),
		Type:          string(typ),
		LagDays:       d.LagDays,
		IsActive:      d.IsActive,
	}
}

func (c ActivityConstraint) toDomain() domain.Constraint {
	return domain.Constraint{
		ID:         c.ID,
		ProjectID:  domain.ProjectID(c.ProjectID),
		ActivityID: domain.TaskID(c.ActivityID),
		Type:       domain.ConstraintType(c.Type),
		Date:       c.Date.UTC(),
		Priority:   c.Priority,
		IsActive:   c.IsActive,
	}
}

func constraintFromDomain(c domain.Constraint) ActivityConstraint {
	return ActivityConstraint{
		ID:         c.ID,
		ProjectID:  int64(c.ProjectID),
		ActivityID: int64(c.ActivityID),
		Type:       string(c.Type),
		Date:       c.Date,
		Priority:   c.Priority,
		IsActive:   c.IsActive,
	}
}
