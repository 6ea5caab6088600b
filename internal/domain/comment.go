package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Comment is a discussion entry on a task. Owner-guarded through the same
// ownership policy as boards and notices.
type Comment struct {
	ID        uuid.UUID
	TaskID    uuid.UUID
	AuthorID  uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewComment creates a Comment on the given task.
func NewComment(taskID, authorID uuid.UUID, content string) (*Comment, error) {
	if taskID == uuid.Nil {
		return nil, errors.New("comment: task id is required")
	}
	if authorID == uuid.Nil {
		return nil, errors.New("comment: author id is required")
	}
	if content == "" {
		return nil, errors.New("comment: content is required")
	}
	now := time.Now()
	return &Comment{
		ID:        uuid.New(),
		TaskID:    taskID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*Comment, error)
	Update(ctx context.Context, c *Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByTask(ctx context.Context, taskID uuid.UUID) error
}
