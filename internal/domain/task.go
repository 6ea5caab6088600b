package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskDone       TaskStatus = "DONE"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskDone:
		return true
	}
	return false
}

// CanTransition mirrors ProjectStatus.CanTransition: any valid status may
// be set to any other valid status until stricter rules are required.
func (s TaskStatus) CanTransition(to TaskStatus) bool {
	return s.Valid() && to.Valid()
}

// Task always belongs to exactly one project. Its history entries attach
// to the owning project; tasks have no independent audit trail.
type Task struct {
	ID             uuid.UUID
	ProjectID      uuid.UUID
	Name           string
	Description    string
	Status         TaskStatus
	Priority       Priority
	DueDate        *time.Time
	EstimatedHours *int
	AssigneeIDs    []uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewTask creates a Task in the given project with defaults applied.
func NewTask(projectID uuid.UUID, name string) (*Task, error) {
	if projectID == uuid.Nil {
		return nil, errors.New("task: project id is required")
	}
	if name == "" {
		return nil, errors.New("task: name is required")
	}
	now := time.Now()
	return &Task{
		ID:        uuid.New(),
		ProjectID: projectID,
		Name:      name,
		Status:    TaskTodo,
		Priority:  PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// HasAssignee reports whether the researcher is already in the assignee set.
func (t *Task) HasAssignee(researcherID uuid.UUID) bool {
	for _, id := range t.AssigneeIDs {
		if id == researcherID {
			return true
		}
	}
	return false
}

type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*Task, error)
	List(ctx context.Context) ([]*Task, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Task, error)
	ListByStatus(ctx context.Context, status TaskStatus) ([]*Task, error)
	ListByAssignee(ctx context.Context, researcherID uuid.UUID) ([]*Task, error)
	ListOverdue(ctx context.Context, now time.Time) ([]*Task, error)
	Update(ctx context.Context, t *Task) error
	ReplaceAssignees(ctx context.Context, taskID uuid.UUID, researcherIDs []uuid.UUID) error
	AddAssignee(ctx context.Context, taskID, researcherID uuid.UUID) error
	CountByStatus(ctx context.Context, status TaskStatus) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error
}
