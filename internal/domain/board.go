package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Board is a community post. AuthorID is set once at creation and never
// changes; only the author or an admin may mutate or delete the post.
type Board struct {
	ID             uuid.UUID
	Title          string
	Content        string
	Public         bool
	ImageURL       string
	AttachmentURL  string
	AttachmentName string
	AuthorID       uuid.UUID
	ViewCount      int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewBoard creates a Board owned by the given researcher.
func NewBoard(authorID uuid.UUID, title, content string) (*Board, error) {
	if authorID == uuid.Nil {
		return nil, errors.New("board: author id is required")
	}
	if title == "" {
		return nil, errors.New("board: title is required")
	}
	if content == "" {
		return nil, errors.New("board: content is required")
	}
	now := time.Now()
	return &Board{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		Public:    true,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// BoardComment lives and dies with its board: deleting the board removes
// all of its comments in the same transaction.
type BoardComment struct {
	ID        uuid.UUID
	BoardID   uuid.UUID
	AuthorID  uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type BoardRepository interface {
	Create(ctx context.Context, b *Board) error
	GetByID(ctx context.Context, id uuid.UUID) (*Board, error)
	List(ctx context.Context) ([]*Board, error)
	ListPublic(ctx context.Context) ([]*Board, error)
	Search(ctx context.Context, keyword string) ([]*Board, error)
	Update(ctx context.Context, b *Board) error
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BoardCommentRepository interface {
	Create(ctx context.Context, c *BoardComment) error
	GetByID(ctx context.Context, id uuid.UUID) (*BoardComment, error)
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]*BoardComment, error)
	Update(ctx context.Context, c *BoardComment) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByBoard(ctx context.Context, boardID uuid.UUID) error
}
