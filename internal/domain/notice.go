package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Notice is an announcement post, owner-guarded like a Board but without
// comments or view counting.
type Notice struct {
	ID             uuid.UUID
	Title          string
	Content        string
	Public         bool
	ImageURL       string
	AttachmentURL  string
	AttachmentName string
	AuthorID       uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewNotice creates a Notice owned by the given researcher.
func NewNotice(authorID uuid.UUID, title, content string) (*Notice, error) {
	if authorID == uuid.Nil {
		return nil, errors.New("notice: author id is required")
	}
	if title == "" {
		return nil, errors.New("notice: title is required")
	}
	if content == "" {
		return nil, errors.New("notice: content is required")
	}
	now := time.Now()
	return &Notice{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		Public:    true,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

type NoticeRepository interface {
	Create(ctx context.Context, n *Notice) error
	GetByID(ctx context.Context, id uuid.UUID) (*Notice, error)
	List(ctx context.Context) ([]*Notice, error)
	ListPublic(ctx context.Context, limit int) ([]*Notice, error)
	Update(ctx context.Context, n *Notice) error
	Delete(ctx context.Context, id uuid.UUID) error
}
