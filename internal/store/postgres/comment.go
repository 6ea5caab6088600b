package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kyulab/labms/internal/domain"
)

type CommentRepo struct {
	db
}

const commentColumns = `id, task_id, author_id, content, created_at, updated_at`

func (r *CommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	_, err := r.q(ctx).Exec(ctx,
		`INSERT INTO comments (id, task_id, author_id, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.TaskID, c.AuthorID, c.Content, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("commentRepo.Create: %w", err)
	}

	return nil
}

func (r *CommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var c domain.Comment

	err := r.q(ctx).QueryRow(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = $1`, id,
	).Scan(&c.ID, &c.TaskID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("commentRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("commentRepo.GetByID: %w", err)
	}

	return &c, nil
}

func (r *CommentRepo) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.Comment, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE task_id = $1 ORDER BY created_at DESC`, taskID)
	if err != nil {
		return nil, fmt.Errorf("commentRepo.ListByTask: %w", err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		var c domain.Comment
		err := rows.Scan(&c.ID, &c.TaskID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("commentRepo.ListByTask: scan: %w", err)
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("commentRepo.ListByTask: rows: %w", err)
	}

	return comments, nil
}

func (r *CommentRepo) Update(ctx context.Context, c *domain.Comment) error {
	tag, err := r.q(ctx).Exec(ctx,
		`UPDATE comments SET content = $1, updated_at = $2 WHERE id = $3`,
		c.Content, c.UpdatedAt, c.ID,
	)
	if err != nil {
		return fmt.Errorf("commentRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("commentRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *CommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("commentRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("commentRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *CommentRepo) DeleteByTask(ctx context.Context, taskID uuid.UUID) error {
	_, err := r.q(ctx).Exec(ctx, `DELETE FROM comments WHERE task_id = $1`, taskID)
	if err != nil {
		return fmt.Errorf("commentRepo.DeleteByTask: %w", err)
	}
	return nil
}
