package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kyulab/labms/internal/domain"
)

type UserRepo struct {
	db
}

const userColumns = `id, username, password_hash, role, researcher_id, enabled, created_at, updated_at`

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.q(ctx).Exec(ctx,
		`INSERT INTO users (id, username, password_hash, role, researcher_id, enabled, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Username, u.PasswordHash, u.Role, u.ResearcherID, u.Enabled, u.CreatedAt, u.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("userRepo.Create: username %q: %w", u.Username, domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("userRepo.Create: %w", err)
	}

	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getBy(ctx, "userRepo.GetByID", `id = $1`, id)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getBy(ctx, "userRepo.GetByUsername", `username = $1`, username)
}

func (r *UserRepo) GetByResearcherID(ctx context.Context, researcherID uuid.UUID) (*domain.User, error) {
	return r.getBy(ctx, "userRepo.GetByResearcherID", `researcher_id = $1`, researcherID)
}

func (r *UserRepo) getBy(ctx context.Context, caller, where string, arg any) (*domain.User, error) {
	var u domain.User

	err := r.q(ctx).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where, arg,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.ResearcherID, &u.Enabled, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", caller, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", caller, err)
	}

	return &u, nil
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	tag, err := r.q(ctx).Exec(ctx,
		`UPDATE users SET username = $1, password_hash = $2, role = $3, researcher_id = $4, enabled = $5, updated_at = $6
		 WHERE id = $7`,
		u.Username, u.PasswordHash, u.Role, u.ResearcherID, u.Enabled, u.UpdatedAt, u.ID,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("userRepo.Update: username %q: %w", u.Username, domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("userRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("userRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("userRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("userRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}
