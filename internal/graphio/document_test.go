package graphio

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

const sampleYAML = `
project_id: 7
project_start: 2024-01-01
tasks:
  - id: 1
    name: design
    duration_days: 5
    planned_start: 2024-01-02
  - id: 2
    name: build
    duration_days: 3
    is_auto_scheduled: false
dependencies:
  - predecessor_id: 1
    successor_id: 2
    lag_days: -1
  - id: 9
    predecessor_id: 2
    successor_id: 1
    type: start_to_start
    is_active: false
constraints:
  - activity_id: 2
    type: start_no_earlier_than
    date: 2024-01-10T15:30:00Z
    priority: 2
`

func TestDecodeYAML(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	graph, err := doc.ToDomain()
	require.NoError(t, err)

	start, err := doc.StartDate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)

	require.Len(t, graph.Tasks, 2)
	assert.Equal(t, domain.ProjectID(7), graph.Tasks[0].ProjectID)
	require.NotNil(t, graph.Tasks[0].PlannedStart)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), *graph.Tasks[0].PlannedStart)
	assert.True(t, graph.Tasks[0].IsAutoScheduled)
	assert.False(t, graph.Tasks[1].IsAutoScheduled)

	require.Len(t, graph.Dependencies, 2)
	assert.Equal(t, int64(1), graph.Dependencies[0].ID, "missing id falls back to position")
	assert.Equal(t, domain.FinishToStart, graph.Dependencies[0].Type)
	assert.Equal(t, -1, graph.Dependencies[0].LagDays)
	assert.True(t, graph.Dependencies[0].IsActive)
	assert.Equal(t, int64(9), graph.Dependencies[1].ID)
	assert.False(t, graph.Dependencies[1].IsActive)

	require.Len(t, graph.Constraints, 1)
	assert.Equal(t, domain.StartNoEarlierThan, graph.Constraints[0].Type)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), graph.Constraints[0].Date)
}

func TestDecodeJSON(t *testing.T) {
	doc, err := Decode(strings.NewReader(`{"project_id": 3, "tasks": [{"id": 1, "duration_days": 2}]}`))
	require.NoError(t, err)

	graph, err := doc.ToDomain()
	require.NoError(t, err)
	assert.Len(t, graph.Tasks, 1)
	assert.Equal(t, domain.ProjectID(3), graph.ProjectID)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "unknown field", input: "tasks: []\nowner: someone\n"},
		{name: "wrong type", input: "tasks: nope\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			assert.True(t, errors.Is(err, ErrInvalidGraph), "error = %v", err)
		})
	}
}

func TestToDomain_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     GraphDocument
		wantErr error
	}{
		{
			name:    "missing task id",
			doc:     GraphDocument{Tasks: []TaskDoc{{Name: "anonymous"}}},
			wantErr: ErrMissingTaskID,
		},
		{
			name:    "bad planned start",
			doc:     GraphDocument{Tasks: []TaskDoc{{ID: 1, PlannedStart: "next week"}}},
			wantErr: ErrInvalidDate,
		},
		{
			name: "unknown dependency type",
			doc: GraphDocument{
				Tasks:        []TaskDoc{{ID: 1}, {ID: 2}},
				Dependencies: []DependencyDoc{{PredecessorID: 1, SuccessorID: 2, Type: "sideways"}},
			},
			wantErr: ErrUnknownDepType,
		},
		{
			name: "bad constraint date",
			doc: GraphDocument{
				Tasks:       []TaskDoc{{ID: 1}},
				Constraints: []ConstraintDoc{{ActivityID: 1, Type: "must_start_on", Date: "01/02/2024"}},
			},
			wantErr: ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.doc.ToDomain()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidGraph), "error = %v", err)
			assert.True(t, errors.Is(err, tt.wantErr), "error = %v", err)
		})
	}
}

func TestNewScheduleView(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	schedule := &domain.ComputedSchedule{
		RunID:         "run-1",
		ProjectID:     7,
		ProjectStart:  day(1),
		ProjectFinish: day(9),
		CriticalPath:  []domain.TaskID{1, 2},
		Results: []domain.ScheduleResult{
			{TaskID: 1, EarlyStart: day(1), EarlyFinish: day(6), LateStart: day(1), LateFinish: day(6), IsCritical: true},
		},
		Skipped: []domain.SkippedReference{
			{Kind: domain.ReferenceDependency, ID: 4, TaskID: 99, Message: "dangling"},
		},
	}

	view := NewScheduleView(schedule).WithWrites(1, []domain.WriteError{
		{TaskID: 2, Err: errors.New("disk full")},
	})

	assert.Equal(t, "2024-01-09", view.ProjectFinish)
	assert.Equal(t, []int64{1, 2}, view.CriticalPath)
	assert.Equal(t, "2024-01-06", view.Results[0].LateFinish)
	assert.Nil(t, view.ComputedAt)
	require.NotNil(t, view.WrittenCount)
	assert.Equal(t, 1, *view.WrittenCount)
	assert.Equal(t, []WriteErrorDoc{{TaskID: 2, Error: "disk full"}}, view.WriteErrors)
	assert.Equal(t, "dependency", view.Skipped[0].Kind)
}

func TestNewCycleViews(t *testing.T) {
	ab := domain.Dependency{ID: 1, PredecessorID: 1, SuccessorID: 2, Type: domain.FinishToStart}
	ba := domain.Dependency{ID: 2, PredecessorID: 2, SuccessorID: 1, Type: domain.FinishToStart}

	views := NewCycleViews(&domain.CycleDetectedError{
		Cycles: []domain.CycleError{{Closing: ba, Edges: []domain.Dependency{ab, ba}}},
	})

	require.Len(t, views, 1)
	assert.Equal(t, int64(2), views[0].ClosingEdge.ID)
	assert.Len(t, views[0].Edges, 2)
	assert.Contains(t, views[0].Message, "1 -> 2 -> 1")
}
