package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyulab/labms/internal/domain"
)

// ---------------------------------------------------------------------------
// Status sets and the (currently permissive) transition tables.
// ---------------------------------------------------------------------------

func TestProjectStatus_CanTransition(t *testing.T) {
	t.Parallel()

	valid := []domain.ProjectStatus{
		domain.ProjectPlanning,
		domain.ProjectInProgress,
		domain.ProjectCompleted,
		domain.ProjectOnHold,
	}

	// Any valid status may currently be set to any other valid status,
	// including COMPLETED back to PLANNING.
	for _, from := range valid {
		for _, to := range valid {
			from, to := from, to
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				t.Parallel()

				assert.True(t, from.CanTransition(to))
			})
		}
	}

	unknown := domain.ProjectStatus("ARCHIVED")
	assert.False(t, unknown.CanTransition(domain.ProjectPlanning))
	assert.False(t, domain.ProjectPlanning.CanTransition(unknown))
}

func TestTaskStatus_CanTransition(t *testing.T) {
	t.Parallel()

	valid := []domain.TaskStatus{domain.TaskTodo, domain.TaskInProgress, domain.TaskDone}

	for _, from := range valid {
		for _, to := range valid {
			assert.True(t, from.CanTransition(to), "%s -> %s", from, to)
		}
	}

	assert.False(t, domain.TaskStatus("BLOCKED").CanTransition(domain.TaskDone))
	assert.False(t, domain.TaskDone.CanTransition(domain.TaskStatus("BLOCKED")))
}

// ---------------------------------------------------------------------------
// Constructors and invariants.
// ---------------------------------------------------------------------------

func TestNewProject(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		p, err := domain.NewProject("CT Dose", start)
		require.NoError(t, err)
		assert.Equal(t, domain.ProjectPlanning, p.Status)
		assert.Equal(t, domain.PriorityMedium, p.Priority)
		assert.Equal(t, 0, p.Progress)
		assert.True(t, p.Public)
		assert.NotEqual(t, uuid.Nil, p.ID)
	})

	t.Run("missing_name", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewProject("", start)
		assert.Error(t, err)
	})

	t.Run("missing_start_date", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewProject("CT Dose", time.Time{})
		assert.Error(t, err)
	})
}

func TestProject_SetProgress(t *testing.T) {
	t.Parallel()

	p, err := domain.NewProject("CT Dose", time.Now())
	require.NoError(t, err)

	require.NoError(t, p.SetProgress(100))
	assert.Equal(t, 100, p.Progress)

	assert.Error(t, p.SetProgress(101))
	assert.Error(t, p.SetProgress(-1))
	assert.Equal(t, 100, p.Progress)
}

func TestNewTask(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		task, err := domain.NewTask(uuid.New(), "데이터 수집")
		require.NoError(t, err)
		assert.Equal(t, domain.TaskTodo, task.Status)
		assert.Equal(t, domain.PriorityMedium, task.Priority)
	})

	t.Run("requires_project", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewTask(uuid.Nil, "데이터 수집")
		assert.Error(t, err)
	})
}

func TestTask_HasAssignee(t *testing.T) {
	t.Parallel()

	member := uuid.New()
	task := &domain.Task{AssigneeIDs: []uuid.UUID{uuid.New(), member}}

	assert.True(t, task.HasAssignee(member))
	assert.False(t, task.HasAssignee(uuid.New()))
}

func TestNewProjectHistory(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		h, err := domain.NewProjectHistory(uuid.New(), uuid.New(), domain.ActionUpdated, "진행률 변경: 40% → 55%; ")
		require.NoError(t, err)
		assert.Equal(t, domain.ActionUpdated, h.Action)
		assert.False(t, h.CreatedAt.IsZero())
	})

	t.Run("requires_actor", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewProjectHistory(uuid.New(), uuid.Nil, domain.ActionUpdated, "x")
		assert.Error(t, err)
	})

	t.Run("requires_project", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewProjectHistory(uuid.Nil, uuid.New(), domain.ActionUpdated, "x")
		assert.Error(t, err)
	})
}
