package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kyulab/labms/internal/domain"
)

type LabInfoRepo struct {
	db
}

func (r *LabInfoRepo) Get(ctx context.Context) (*domain.LabInfo, error) {
	var info domain.LabInfo

	err := r.q(ctx).QueryRow(ctx,
		`SELECT id, name, description, professor, location, email, phone, homepage, updated_at
		 FROM lab_info LIMIT 1`,
	).Scan(&info.ID, &info.Name, &info.Description, &info.Professor, &info.Location,
		&info.Email, &info.Phone, &info.Homepage, &info.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("labInfoRepo.Get: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("labInfoRepo.Get: %w", err)
	}

	return &info, nil
}

func (r *LabInfoRepo) Upsert(ctx context.Context, info *domain.LabInfo) error {
	_, err := r.q(ctx).Exec(ctx,
		`INSERT INTO lab_info (id, name, description, professor, location, email, phone, homepage, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE SET
		   name = EXCLUDED.name, description = EXCLUDED.description, professor = EXCLUDED.professor,
		   location = EXCLUDED.location, email = EXCLUDED.email, phone = EXCLUDED.phone,
		   homepage = EXCLUDED.homepage, updated_at = EXCLUDED.updated_at`,
		info.ID, info.Name, info.Description, info.Professor, info.Location,
		info.Email, info.Phone, info.Homepage, info.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("labInfoRepo.Upsert: %w", err)
	}

	return nil
}
