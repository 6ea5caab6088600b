package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kyulab/labms/internal/domain"
)

type BoardRepo struct {
	db
}

const boardColumns = `id, title, content, is_public, image_url, attachment_url, attachment_name, author_id, view_count, created_at, updated_at`

func (r *BoardRepo) Create(ctx context.Context, b *domain.Board) error {
	_, err := r.q(ctx).Exec(ctx,
		`INSERT INTO boards (id, title, content, is_public, image_url, attachment_url, attachment_name, author_id, view_count, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		b.ID, b.Title, b.Content, b.Public, b.ImageURL, b.AttachmentURL, b.AttachmentName,
		b.AuthorID, b.ViewCount, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("boardRepo.Create: %w", err)
	}

	return nil
}

func (r *BoardRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	row := r.q(ctx).QueryRow(ctx, `SELECT `+boardColumns+` FROM boards WHERE id = $1`, id)

	b, err := scanBoardRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("boardRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("boardRepo.GetByID: %w", err)
	}

	return b, nil
}

func (r *BoardRepo) List(ctx context.Context) ([]*domain.Board, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT `+boardColumns+` FROM boards ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("boardRepo.List: %w", err)
	}
	defer rows.Close()

	return scanBoards(rows, "boardRepo.List")
}

func (r *BoardRepo) ListPublic(ctx context.Context) ([]*domain.Board, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT `+boardColumns+` FROM boards WHERE is_public ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("boardRepo.ListPublic: %w", err)
	}
	defer rows.Close()

	return scanBoards(rows, "boardRepo.ListPublic")
}

func (r *BoardRepo) Search(ctx context.Context, keyword string) ([]*domain.Board, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT `+boardColumns+` FROM boards WHERE title ILIKE '%' || $1 || '%' ORDER BY created_at DESC`,
		keyword)
	if err != nil {
		return nil, fmt.Errorf("boardRepo.Search: %w", err)
	}
	defer rows.Close()

	return scanBoards(rows, "boardRepo.Search")
}

func (r *BoardRepo) Update(ctx context.Context, b *domain.Board) error {
	tag, err := r.q(ctx).Exec(ctx,
		`UPDATE boards SET title = $1, content = $2, is_public = $3, image_url = $4,
		 attachment_url = $5, attachment_name = $6, updated_at = $7
		 WHERE id = $8`,
		b.Title, b.Content, b.Public, b.ImageURL, b.AttachmentURL, b.AttachmentName, b.UpdatedAt, b.ID,
	)
	if err != nil {
		return fmt.Errorf("boardRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("boardRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *BoardRepo) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	_, err := r.q(ctx).Exec(ctx, `UPDATE boards SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("boardRepo.IncrementViewCount: %w", err)
	}
	return nil
}

func (r *BoardRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM boards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("boardRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("boardRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func scanBoardRow(row rowScanner) (*domain.Board, error) {
	var b domain.Board
	err := row.Scan(
		&b.ID, &b.Title, &b.Content, &b.Public, &b.ImageURL, &b.AttachmentURL,
		&b.AttachmentName, &b.AuthorID, &b.ViewCount, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func scanBoards(rows pgx.Rows, caller string) ([]*domain.Board, error) {
	var boards []*domain.Board
	for rows.Next() {
		b, err := scanBoardRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", caller, err)
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", caller, err)
	}

	return boards, nil
}

type BoardCommentRepo struct {
	db
}

const boardCommentColumns = `id, board_id, author_id, content, created_at, updated_at`

func (r *BoardCommentRepo) Create(ctx context.Context, c *domain.BoardComment) error {
	_, err := r.q(ctx).Exec(ctx,
		`INSERT INTO board_comments (id, board_id, author_id, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.BoardID, c.AuthorID, c.Content, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("boardCommentRepo.Create: %w", err)
	}

	return nil
}

func (r *BoardCommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.BoardComment, error) {
	var c domain.BoardComment

	err := r.q(ctx).QueryRow(ctx,
		`SELECT `+boardCommentColumns+` FROM board_comments WHERE id = $1`, id,
	).Scan(&c.ID, &c.BoardID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("boardCommentRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("boardCommentRepo.GetByID: %w", err)
	}

	return &c, nil
}

func (r *BoardCommentRepo) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]*domain.BoardComment, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT `+boardCommentColumns+` FROM board_comments WHERE board_id = $1 ORDER BY created_at`, boardID)
	if err != nil {
		return nil, fmt.Errorf("boardCommentRepo.ListByBoard: %w", err)
	}
	defer rows.Close()

	var comments []*domain.BoardComment
	for rows.Next() {
		var c domain.BoardComment
		err := rows.Scan(&c.ID, &c.BoardID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("boardCommentRepo.ListByBoard: scan: %w", err)
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("boardCommentRepo.ListByBoard: rows: %w", err)
	}

	return comments, nil
}

func (r *BoardCommentRepo) Update(ctx context.Context, c *domain.BoardComment) error {
	tag, err := r.q(ctx).Exec(ctx,
		`UPDATE board_comments SET content = $1, updated_at = $2 WHERE id = $3`,
		c.Content, c.UpdatedAt, c.ID,
	)
	if err != nil {
		return fmt.Errorf("boardCommentRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("boardCommentRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *BoardCommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM board_comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("boardCommentRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("boardCommentRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *BoardCommentRepo) DeleteByBoard(ctx context.Context, boardID uuid.UUID) error {
	_, err := r.q(ctx).Exec(ctx, `DELETE FROM board_comments WHERE board_id = $1`, boardID)
	if err != nil {
		return fmt.Errorf("boardCommentRepo.DeleteByBoard: %w", err)
	}
	return nil
}
