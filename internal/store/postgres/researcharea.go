package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kyulab/labms/internal/domain"
)

type ResearchAreaRepo struct {
	db
}

func (r *ResearchAreaRepo) Create(ctx context.Context, a *domain.ResearchArea) error {
	_, err := r.q(ctx).Exec(ctx,
		`INSERT INTO research_areas (id, name, description, created_at) VALUES ($1, $2, $3, $4)`,
		a.ID, a.Name, a.Description, a.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("researchAreaRepo.Create: %w", domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("researchAreaRepo.Create: %w", err)
	}

	return nil
}

func (r *ResearchAreaRepo) List(ctx context.Context) ([]*domain.ResearchArea, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT id, name, description, created_at FROM research_areas ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("researchAreaRepo.List: %w", err)
	}
	defer rows.Close()

	var areas []*domain.ResearchArea
	for rows.Next() {
		var a domain.ResearchArea
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("researchAreaRepo.List: scan: %w", err)
		}
		areas = append(areas, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("researchAreaRepo.List: rows: %w", err)
	}

	return areas, nil
}

func (r *ResearchAreaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM research_areas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("researchAreaRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("researchAreaRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}
