package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kyulab/labms/internal/domain"
)

type NoticeRepo struct {
	db
}

const noticeColumns = `id, title, content, is_public, image_url, attachment_url, attachment_name, author_id, created_at, updated_at`

func (r *NoticeRepo) Create(ctx context.Context, n *domain.Notice) error {
	_, err := r.q(ctx).Exec(ctx,
		`INSERT INTO notices (id, title, content, is_public, image_url, attachment_url, attachment_name, author_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		n.ID, n.Title, n.Content, n.Public, n.ImageURL, n.AttachmentURL, n.AttachmentName,
		n.AuthorID, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("noticeRepo.Create: %w", err)
	}

	return nil
}

func (r *NoticeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notice, error) {
	var n domain.Notice

	err := r.q(ctx).QueryRow(ctx,
		`SELECT `+noticeColumns+` FROM notices WHERE id = $1`, id,
	).Scan(&n.ID, &n.Title, &n.Content, &n.Public, &n.ImageURL, &n.AttachmentURL,
		&n.AttachmentName, &n.AuthorID, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("noticeRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("noticeRepo.GetByID: %w", err)
	}

	return &n, nil
}

func (r *NoticeRepo) List(ctx context.Context) ([]*domain.Notice, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT `+noticeColumns+` FROM notices ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("noticeRepo.List: %w", err)
	}
	defer rows.Close()

	return scanNotices(rows, "noticeRepo.List")
}

func (r *NoticeRepo) ListPublic(ctx context.Context, limit int) ([]*domain.Notice, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT `+noticeColumns+` FROM notices WHERE is_public ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("noticeRepo.ListPublic: %w", err)
	}
	defer rows.Close()

	return scanNotices(rows, "noticeRepo.ListPublic")
}

func (r *NoticeRepo) Update(ctx context.Context, n *domain.Notice) error {
	tag, err := r.q(ctx).Exec(ctx,
		`UPDATE notices SET title = $1, content = $2, is_public = $3, image_url = $4,
		 attachment_url = $5, attachment_name = $6, updated_at = $7
		 WHERE id = $8`,
		n.Title, n.Content, n.Public, n.ImageURL, n.AttachmentURL, n.AttachmentName, n.UpdatedAt, n.ID,
	)
	if err != nil {
		return fmt.Errorf("noticeRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("noticeRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *NoticeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM notices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("noticeRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("noticeRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func scanNotices(rows pgx.Rows, caller string) ([]*domain.Notice, error) {
	var notices []*domain.Notice
	for rows.Next() {
		var n domain.Notice
		err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.Public, &n.ImageURL, &n.AttachmentURL,
			&n.AttachmentName, &n.AuthorID, &n.CreatedAt, &n.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", caller, err)
		}
		notices = append(notices, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", caller, err)
	}

	return notices, nil
}
