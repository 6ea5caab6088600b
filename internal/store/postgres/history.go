package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kyulab/labms/internal/domain"
)

type ProjectHistoryRepo struct {
	db
}

func (r *ProjectHistoryRepo) Append(ctx context.Context, h *domain.ProjectHistory) error {
	_, err := r.q(ctx).Exec(ctx,
		`INSERT INTO project_histories (id, project_id, researcher_id, action, description, details, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		h.ID, h.ProjectID, h.ResearcherID, h.Action, h.Description, h.Details, h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("historyRepo.Append: %w", err)
	}

	return nil
}

func (r *ProjectHistoryRepo) RecentByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]*domain.ProjectHistory, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT id, project_id, researcher_id, action, description, details, created_at
		 FROM project_histories
		 WHERE project_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`,
		projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("historyRepo.RecentByProject: %w", err)
	}
	defer rows.Close()

	var entries []*domain.ProjectHistory
	for rows.Next() {
		var h domain.ProjectHistory
		err := rows.Scan(&h.ID, &h.ProjectID, &h.ResearcherID, &h.Action, &h.Description, &h.Details, &h.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("historyRepo.RecentByProject: scan: %w", err)
		}
		entries = append(entries, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("historyRepo.RecentByProject: rows: %w", err)
	}

	return entries, nil
}

func (r *ProjectHistoryRepo) PurgeByProject(ctx context.Context, projectID uuid.UUID) error {
	_, err := r.q(ctx).Exec(ctx, `DELETE FROM project_histories WHERE project_id = $1`, projectID)
	if err != nil {
		return fmt.Errorf("historyRepo.PurgeByProject: %w", err)
	}
	return nil
}
