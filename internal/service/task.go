package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kyulab/labms/internal/domain"
)

// TaskService mirrors the project orchestration for tasks. Task history
// entries attach to the owning project; tasks have no trail of their own.
type TaskService struct {
	tasks     domain.TaskRepository
	projects  domain.ProjectRepository
	comments  domain.CommentRepository
	histories domain.ProjectHistoryRepository
	tx        TxRunner
	cache     Cache
}

func NewTaskService(
	tasks domain.TaskRepository,
	projects domain.ProjectRepository,
	comments domain.CommentRepository,
	histories domain.ProjectHistoryRepository,
	tx TxRunner,
	cache Cache,
) *TaskService {
	return &TaskService{
		tasks:     tasks,
		projects:  projects,
		comments:  comments,
		histories: histories,
		tx:        tx,
		cache:     cache,
	}
}

type TaskCreate struct {
	ProjectID      uuid.UUID
	Name           string
	Description    string
	Status         *domain.TaskStatus
	Priority       *domain.Priority
	DueDate        *time.Time
	EstimatedHours *int
	AssigneeIDs    []uuid.UUID
}

type TaskUpdate struct {
	Name           *string
	Description    *string
	Status         *domain.TaskStatus
	Priority       *domain.Priority
	DueDate        *time.Time
	EstimatedHours *int
	AssigneeIDs    []uuid.UUID
}

// Create persists the task and logs TASK_CREATED against the owning
// project in the same transaction.
func (s *TaskService) Create(ctx context.Context, actorID uuid.UUID, in TaskCreate) (*domain.Task, error) {
	if _, err := s.projects.GetByID(ctx, in.ProjectID); err != nil {
		return nil, fmt.Errorf("taskService.Create: project: %w", err)
	}

	t, err := domain.NewTask(in.ProjectID, in.Name)
	if err != nil {
		return nil, fmt.Errorf("taskService.Create: %w", err)
	}

	t.Description = in.Description
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, fmt.Errorf("taskService.Create: invalid status %q", *in.Status)
		}
		t.Status = *in.Status
	}
	if in.Priority != nil {
		if !in.Priority.Valid() {
			return nil, fmt.Errorf("taskService.Create: invalid priority %q", *in.Priority)
		}
		t.Priority = *in.Priority
	}
	t.DueDate = in.DueDate
	t.EstimatedHours = in.EstimatedHours
	t.AssigneeIDs = in.AssigneeIDs

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.tasks.Create(ctx, t); err != nil {
			return err
		}
		entry, err := domain.NewProjectHistory(t.ProjectID, actorID, domain.ActionTaskCreated,
			fmt.Sprintf("태스크 '%s' 생성", t.Name))
		if err != nil {
			return err
		}
		return s.histories.Append(ctx, entry)
	})
	if err != nil {
		return nil, fmt.Errorf("taskService.Create: %w", err)
	}

	s.invalidateDashboard(ctx)

	return t, nil
}

func (s *TaskService) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("taskService.Get: %w", err)
	}
	return t, nil
}

func (s *TaskService) List(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("taskService.List: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error) {
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("taskService.ListByProject: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) ListByAssignee(ctx context.Context, researcherID uuid.UUID) ([]*domain.Task, error) {
	tasks, err := s.tasks.ListByAssignee(ctx, researcherID)
	if err != nil {
		return nil, fmt.Errorf("taskService.ListByAssignee: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) ListOverdue(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.tasks.ListOverdue(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("taskService.ListOverdue: %w", err)
	}
	return tasks, nil
}

// Update applies a partial mutation. The tracked fields (name, status) are
// diffed first; a non-empty diff appends TASK_UPDATED with the description
// wrapped as 태스크 '<name>' 수정: <clauses>, in the same transaction as the
// row update.
func (s *TaskService) Update(ctx context.Context, actorID, id uuid.UUID, in TaskUpdate) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("taskService.Update: %w", err)
	}

	changes := domain.TaskChanges(t, in.Name, in.Status)

	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("taskService.Update: name must not be empty")
		}
		t.Name = *in.Name
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Status != nil {
		if !t.Status.CanTransition(*in.Status) {
			return nil, fmt.Errorf("taskService.Update: invalid status transition %q to %q", t.Status, *in.Status)
		}
		t.Status = *in.Status
	}
	if in.Priority != nil {
		if !in.Priority.Valid() {
			return nil, fmt.Errorf("taskService.Update: invalid priority %q", *in.Priority)
		}
		t.Priority = *in.Priority
	}
	if in.DueDate != nil {
		t.DueDate = in.DueDate
	}
	if in.EstimatedHours != nil {
		t.EstimatedHours = in.EstimatedHours
	}
	t.UpdatedAt = time.Now()

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.tasks.Update(ctx, t); err != nil {
			return err
		}
		if in.AssigneeIDs != nil {
			if err := s.tasks.ReplaceAssignees(ctx, t.ID, in.AssigneeIDs); err != nil {
				return err
			}
			t.AssigneeIDs = in.AssigneeIDs
		}
		if changes.Empty() {
			return nil
		}
		entry, err := domain.NewProjectHistory(t.ProjectID, actorID, domain.ActionTaskUpdated,
			fmt.Sprintf("태스크 '%s' 수정: %s", t.Name, changes.Description()))
		if err != nil {
			return err
		}
		return s.histories.Append(ctx, entry)
	})
	if err != nil {
		return nil, fmt.Errorf("taskService.Update: %w", err)
	}

	s.invalidateDashboard(ctx)

	return t, nil
}

// Delete removes the task (with its comments) and logs TASK_DELETED against
// the owning project. Deleting a task never touches the project itself.
func (s *TaskService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("taskService.Delete: %w", err)
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.comments.DeleteByTask(ctx, t.ID); err != nil {
			return err
		}
		if err := s.tasks.Delete(ctx, t.ID); err != nil {
			return err
		}
		entry, err := domain.NewProjectHistory(t.ProjectID, actorID, domain.ActionTaskDeleted,
			fmt.Sprintf("태스크 '%s' 삭제", t.Name))
		if err != nil {
			return err
		}
		return s.histories.Append(ctx, entry)
	})
	if err != nil {
		return fmt.Errorf("taskService.Delete: %w", err)
	}

	s.invalidateDashboard(ctx)

	return nil
}

// RequestJoin adds the researcher to the task's assignee set. A researcher
// who is already assigned gets ErrAlreadyAssigned; the set never gains a
// duplicate. Join requests are not recorded in the project history.
func (s *TaskService) RequestJoin(ctx context.Context, taskID, researcherID uuid.UUID) error {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("taskService.RequestJoin: %w", err)
	}

	if t.HasAssignee(researcherID) {
		return fmt.Errorf("taskService.RequestJoin: %w", domain.ErrAlreadyAssigned)
	}

	if err := s.tasks.AddAssignee(ctx, taskID, researcherID); err != nil {
		return fmt.Errorf("taskService.RequestJoin: %w", err)
	}

	return nil
}

func (s *TaskService) invalidateDashboard(ctx context.Context) {
	_ = s.cache.Invalidate(ctx, keyDashboard)
}
