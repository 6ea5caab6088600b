package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kyulab/labms/internal/domain"
)

type SeminarRepo struct {
	db
}

const seminarColumns = `id, title, presenter, date, location, abstract, is_public, created_at, updated_at`

func (r *SeminarRepo) Create(ctx context.Context, s *domain.Seminar) error {
	_, err := r.q(ctx).Exec(ctx,
		`INSERT INTO seminars (id, title, presenter, date, location, abstract, is_public, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.Title, s.Presenter, s.Date, s.Location, s.Abstract, s.Public, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("seminarRepo.Create: %w", err)
	}

	return nil
}

func (r *SeminarRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Seminar, error) {
	var s domain.Seminar

	err := r.q(ctx).QueryRow(ctx,
		`SELECT `+seminarColumns+` FROM seminars WHERE id = $1`, id,
	).Scan(&s.ID, &s.Title, &s.Presenter, &s.Date, &s.Location, &s.Abstract, &s.Public, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("seminarRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("seminarRepo.GetByID: %w", err)
	}

	return &s, nil
}

func (r *SeminarRepo) List(ctx context.Context) ([]*domain.Seminar, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT `+seminarColumns+` FROM seminars ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("seminarRepo.List: %w", err)
	}
	defer rows.Close()

	return scanSeminars(rows, "seminarRepo.List")
}

func (r *SeminarRepo) ListPublic(ctx context.Context) ([]*domain.Seminar, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT `+seminarColumns+` FROM seminars WHERE is_public ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("seminarRepo.ListPublic: %w", err)
	}
	defer rows.Close()

	return scanSeminars(rows, "seminarRepo.ListPublic")
}

func (r *SeminarRepo) Update(ctx context.Context, s *domain.Seminar) error {
	tag, err := r.q(ctx).Exec(ctx,
		`UPDATE seminars SET title = $1, presenter = $2, date = $3, location = $4,
		 abstract = $5, is_public = $6, updated_at = $7
		 WHERE id = $8`,
		s.Title, s.Presenter, s.Date, s.Location, s.Abstract, s.Public, s.UpdatedAt, s.ID,
	)
	if err != nil {
		return fmt.Errorf("seminarRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("seminarRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *SeminarRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM seminars WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("seminarRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("seminarRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func scanSeminars(rows pgx.Rows, caller string) ([]*domain.Seminar, error) {
	var seminars []*domain.Seminar
	for rows.Next() {
		var s domain.Seminar
		err := rows.Scan(&s.ID, &s.Title, &s.Presenter, &s.Date, &s.Location, &s.Abstract,
			&s.Public, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", caller, err)
		}
		seminars = append(seminars, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", caller, err)
	}

	return seminars, nil
}
