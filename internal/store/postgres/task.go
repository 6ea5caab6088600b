package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kyulab/labms/internal/domain"
)

type TaskRepo struct {
	db
}

const taskSelect = `
	SELECT t.id, t.project_id, t.name, t.description, t.status, t.priority,
	       t.due_date, t.estimated_hours, t.created_at, t.updated_at,
	       coalesce(array_agg(ta.researcher_id) FILTER (WHERE ta.researcher_id IS NOT NULL), '{}')
	FROM tasks t
	LEFT JOIN task_assignees ta ON ta.task_id = t.id`

const taskGroup = ` GROUP BY t.id`

func (r *TaskRepo) Create(ctx context.Context, t *domain.Task) error {
	_, err := r.q(ctx).Exec(ctx,
		`INSERT INTO tasks (id, project_id, name, description, status, priority, due_date, estimated_hours, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		t.ID, t.ProjectID, t.Name, t.Description, t.Status, t.Priority,
		t.DueDate, t.EstimatedHours, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.Create: %w", err)
	}

	if len(t.AssigneeIDs) > 0 {
		if err := r.ReplaceAssignees(ctx, t.ID, t.AssigneeIDs); err != nil {
			return fmt.Errorf("taskRepo.Create: %w", err)
		}
	}

	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	row := r.q(ctx).QueryRow(ctx, taskSelect+` WHERE t.id = $1`+taskGroup, id)

	t, err := scanTaskRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("taskRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("taskRepo.GetByID: %w", err)
	}

	return t, nil
}

func (r *TaskRepo) List(ctx context.Context) ([]*domain.Task, error) {
	rows, err := r.q(ctx).Query(ctx, taskSelect+taskGroup+` ORDER BY t.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.List: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows, "taskRepo.List")
}

func (r *TaskRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error) {
	rows, err := r.q(ctx).Query(ctx,
		taskSelect+` WHERE t.project_id = $1`+taskGroup+` ORDER BY t.created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.ListByProject: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows, "taskRepo.ListByProject")
}

func (r *TaskRepo) ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	rows, err := r.q(ctx).Query(ctx,
		taskSelect+` WHERE t.status = $1`+taskGroup+` ORDER BY t.created_at DESC`, status)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.ListByStatus: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows, "taskRepo.ListByStatus")
}

func (r *TaskRepo) ListByAssignee(ctx context.Context, researcherID uuid.UUID) ([]*domain.Task, error) {
	rows, err := r.q(ctx).Query(ctx,
		taskSelect+` WHERE t.id IN (SELECT task_id FROM task_assignees WHERE researcher_id = $1)`+
			taskGroup+` ORDER BY t.created_at DESC`, researcherID)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.ListByAssignee: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows, "taskRepo.ListByAssignee")
}

func (r *TaskRepo) ListOverdue(ctx context.Context, now time.Time) ([]*domain.Task, error) {
	rows, err := r.q(ctx).Query(ctx,
		taskSelect+` WHERE t.due_date < $1 AND t.status <> $2`+taskGroup+` ORDER BY t.due_date`,
		now, domain.TaskDone)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.ListOverdue: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows, "taskRepo.ListOverdue")
}

func (r *TaskRepo) Update(ctx context.Context, t *domain.Task) error {
	tag, err := r.q(ctx).Exec(ctx,
		`UPDATE tasks SET project_id = $1, name = $2, description = $3, status = $4, priority = $5,
		 due_date = $6, estimated_hours = $7, updated_at = $8
		 WHERE id = $9`,
		t.ProjectID, t.Name, t.Description, t.Status, t.Priority,
		t.DueDate, t.EstimatedHours, t.UpdatedAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *TaskRepo) ReplaceAssignees(ctx context.Context, taskID uuid.UUID, researcherIDs []uuid.UUID) error {
	q := r.q(ctx)

	_, err := q.Exec(ctx, `DELETE FROM task_assignees WHERE task_id = $1`, taskID)
	if err != nil {
		return fmt.Errorf("taskRepo.ReplaceAssignees: clear: %w", err)
	}

	for _, rid := range researcherIDs {
		_, err := q.Exec(ctx,
			`INSERT INTO task_assignees (task_id, researcher_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			taskID, rid)
		if err != nil {
			return fmt.Errorf("taskRepo.ReplaceAssignees: insert: %w", err)
		}
	}

	return nil
}

func (r *TaskRepo) AddAssignee(ctx context.Context, taskID, researcherID uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx,
		`INSERT INTO task_assignees (task_id, researcher_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		taskID, researcherID)
	if err != nil {
		return fmt.Errorf("taskRepo.AddAssignee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.AddAssignee: %w", domain.ErrAlreadyAssigned)
	}

	return nil
}

func (r *TaskRepo) CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error) {
	var n int64
	err := r.q(ctx).QueryRow(ctx, `SELECT count(*) FROM tasks WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("taskRepo.CountByStatus: %w", err)
	}
	return n, nil
}

func (r *TaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	q := r.q(ctx)

	_, err := q.Exec(ctx, `DELETE FROM task_assignees WHERE task_id = $1`, id)
	if err != nil {
		return fmt.Errorf("taskRepo.Delete: assignees: %w", err)
	}

	tag, err := q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("taskRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *TaskRepo) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	q := r.q(ctx)

	_, err := q.Exec(ctx,
		`DELETE FROM task_assignees WHERE task_id IN (SELECT id FROM tasks WHERE project_id = $1)`,
		projectID)
	if err != nil {
		return fmt.Errorf("taskRepo.DeleteByProject: assignees: %w", err)
	}

	_, err = q.Exec(ctx, `DELETE FROM tasks WHERE project_id = $1`, projectID)
	if err != nil {
		return fmt.Errorf("taskRepo.DeleteByProject: %w", err)
	}

	return nil
}

func scanTaskRow(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID, &t.ProjectID, &t.Name, &t.Description, &t.Status, &t.Priority,
		&t.DueDate, &t.EstimatedHours, &t.CreatedAt, &t.UpdatedAt, &t.AssigneeIDs,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTasks(rows pgx.Rows, caller string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", caller, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", caller, err)
	}

	return tasks, nil
}
