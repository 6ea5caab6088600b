package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kyulab/labms/internal/domain"
)

type ProjectRepo struct {
	db
}

// researcher_ids is aggregated from the join table so a single query
// returns the full projection.
const projectSelect = `
	SELECT p.id, p.name, p.description, p.status, p.priority, p.progress,
	       p.start_date, p.end_date, p.budget, p.is_public, p.categories,
	       p.created_at, p.updated_at,
	       coalesce(array_agg(pr.researcher_id) FILTER (WHERE pr.researcher_id IS NOT NULL), '{}')
	FROM projects p
	LEFT JOIN project_researchers pr ON pr.project_id = p.id`

const projectGroup = ` GROUP BY p.id`

func (r *ProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	_, err := r.q(ctx).Exec(ctx,
		`INSERT INTO projects (id, name, description, status, priority, progress, start_date, end_date, budget, is_public, categories, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.Name, p.Description, p.Status, p.Priority, p.Progress,
		p.StartDate, p.EndDate, p.Budget, p.Public, p.Categories, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("projectRepo.Create: %w", err)
	}

	if len(p.ResearcherIDs) > 0 {
		if err := r.ReplaceResearchers(ctx, p.ID, p.ResearcherIDs); err != nil {
			return fmt.Errorf("projectRepo.Create: %w", err)
		}
	}

	return nil
}

func (r *ProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	row := r.q(ctx).QueryRow(ctx, projectSelect+` WHERE p.id = $1`+projectGroup, id)

	p, err := scanProjectRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("projectRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("projectRepo.GetByID: %w", err)
	}

	return p, nil
}

func (r *ProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.q(ctx).Query(ctx, projectSelect+projectGroup+` ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("projectRepo.List: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows, "projectRepo.List")
}

func (r *ProjectRepo) ListByStatus(ctx context.Context, status domain.ProjectStatus) ([]*domain.Project, error) {
	rows, err := r.q(ctx).Query(ctx,
		projectSelect+` WHERE p.status = $1`+projectGroup+` ORDER BY p.created_at DESC`, status)
	if err != nil {
		return nil, fmt.Errorf("projectRepo.ListByStatus: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows, "projectRepo.ListByStatus")
}

func (r *ProjectRepo) ListByResearcher(ctx context.Context, researcherID uuid.UUID) ([]*domain.Project, error) {
	rows, err := r.q(ctx).Query(ctx,
		projectSelect+` WHERE p.id IN (SELECT project_id FROM project_researchers WHERE researcher_id = $1)`+
			projectGroup+` ORDER BY p.created_at DESC`, researcherID)
	if err != nil {
		return nil, fmt.Errorf("projectRepo.ListByResearcher: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows, "projectRepo.ListByResearcher")
}

func (r *ProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	tag, err := r.q(ctx).Exec(ctx,
		`UPDATE projects SET name = $1, description = $2, status = $3, priority = $4, progress = $5,
		 start_date = $6, end_date = $7, budget = $8, is_public = $9, categories = $10, updated_at = $11
		 WHERE id = $12`,
		p.Name, p.Description, p.Status, p.Priority, p.Progress,
		p.StartDate, p.EndDate, p.Budget, p.Public, p.Categories, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("projectRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("projectRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *ProjectRepo) ReplaceResearchers(ctx context.Context, projectID uuid.UUID, researcherIDs []uuid.UUID) error {
	q := r.q(ctx)

	_, err := q.Exec(ctx, `DELETE FROM project_researchers WHERE project_id = $1`, projectID)
	if err != nil {
		return fmt.Errorf("projectRepo.ReplaceResearchers: clear: %w", err)
	}

	for _, rid := range researcherIDs {
		_, err := q.Exec(ctx,
			`INSERT INTO project_researchers (project_id, researcher_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			projectID, rid)
		if err != nil {
			return fmt.Errorf("projectRepo.ReplaceResearchers: insert: %w", err)
		}
	}

	return nil
}

func (r *ProjectRepo) CountByStatus(ctx context.Context, status domain.ProjectStatus) (int64, error) {
	var n int64
	err := r.q(ctx).QueryRow(ctx, `SELECT count(*) FROM projects WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("projectRepo.CountByStatus: %w", err)
	}
	return n, nil
}

func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	q := r.q(ctx)

	_, err := q.Exec(ctx, `DELETE FROM project_researchers WHERE project_id = $1`, id)
	if err != nil {
		return fmt.Errorf("projectRepo.Delete: researchers: %w", err)
	}

	tag, err := q.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("projectRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("projectRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func scanProjectRow(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Status, &p.Priority, &p.Progress,
		&p.StartDate, &p.EndDate, &p.Budget, &p.Public, &p.Categories,
		&p.CreatedAt, &p.UpdatedAt, &p.ResearcherIDs,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProjects(rows pgx.Rows, caller string) ([]*domain.Project, error) {
	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProjectRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", caller, err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", caller, err)
	}

	return projects, nil
}
