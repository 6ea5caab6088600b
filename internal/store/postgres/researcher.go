package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kyulab/labms/internal/domain"
)

type ResearcherRepo struct {
	db
}

const researcherColumns = `id, name, student_id, grade, admission_year, email, phone, status, join_date, research_areas, photo_url, created_at, updated_at`

func (r *ResearcherRepo) Create(ctx context.Context, res *domain.Researcher) error {
	_, err := r.q(ctx).Exec(ctx,
		`INSERT INTO researchers (id, name, student_id, grade, admission_year, email, phone, status, join_date, research_areas, photo_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		res.ID, res.Name, res.StudentID, res.Grade, res.AdmissionYear, res.Email, res.Phone,
		res.Status, res.JoinDate, res.ResearchAreas, res.PhotoURL, res.CreatedAt, res.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("researcherRepo.Create: student id or email: %w", domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("researcherRepo.Create: %w", err)
	}

	return nil
}

func (r *ResearcherRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Researcher, error) {
	row := r.q(ctx).QueryRow(ctx,
		`SELECT `+researcherColumns+` FROM researchers WHERE id = $1`, id)

	res, err := scanResearcherRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("researcherRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("researcherRepo.GetByID: %w", err)
	}

	return res, nil
}

func (r *ResearcherRepo) GetByStudentID(ctx context.Context, studentID string) (*domain.Researcher, error) {
	row := r.q(ctx).QueryRow(ctx,
		`SELECT `+researcherColumns+` FROM researchers WHERE student_id = $1`, studentID)

	res, err := scanResearcherRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("researcherRepo.GetByStudentID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("researcherRepo.GetByStudentID: %w", err)
	}

	return res, nil
}

func (r *ResearcherRepo) List(ctx context.Context) ([]*domain.Researcher, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT `+researcherColumns+` FROM researchers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("researcherRepo.List: %w", err)
	}
	defer rows.Close()

	return scanResearchers(rows, "researcherRepo.List")
}

func (r *ResearcherRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Researcher, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.q(ctx).Query(ctx,
		`SELECT `+researcherColumns+` FROM researchers WHERE id = ANY($1) ORDER BY name`, ids)
	if err != nil {
		return nil, fmt.Errorf("researcherRepo.ListByIDs: %w", err)
	}
	defer rows.Close()

	return scanResearchers(rows, "researcherRepo.ListByIDs")
}

func (r *ResearcherRepo) Update(ctx context.Context, res *domain.Researcher) error {
	tag, err := r.q(ctx).Exec(ctx,
		`UPDATE researchers SET name = $1, student_id = $2, grade = $3, admission_year = $4, email = $5,
		 phone = $6, status = $7, join_date = $8, research_areas = $9, photo_url = $10, updated_at = $11
		 WHERE id = $12`,
		res.Name, res.StudentID, res.Grade, res.AdmissionYear, res.Email, res.Phone,
		res.Status, res.JoinDate, res.ResearchAreas, res.PhotoURL, res.UpdatedAt, res.ID,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("researcherRepo.Update: student id or email: %w", domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("researcherRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("researcherRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *ResearcherRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM researchers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("researcherRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("researcherRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *ResearcherRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.q(ctx).QueryRow(ctx, `SELECT count(*) FROM researchers`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("researcherRepo.Count: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResearcherRow(row rowScanner) (*domain.Researcher, error) {
	var res domain.Researcher
	err := row.Scan(
		&res.ID, &res.Name, &res.StudentID, &res.Grade, &res.AdmissionYear, &res.Email,
		&res.Phone, &res.Status, &res.JoinDate, &res.ResearchAreas, &res.PhotoURL,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func scanResearchers(rows pgx.Rows, caller string) ([]*domain.Researcher, error) {
	var researchers []*domain.Researcher
	for rows.Next() {
		res, err := scanResearcherRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", caller, err)
		}
		researchers = append(researchers, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", caller, err)
	}

	return researchers, nil
}
