package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kyulab/labms/internal/domain"
)

// CommentService manages task discussion comments, owner-guarded through
// the shared ownership policy.
type CommentService struct {
	comments domain.CommentRepository
	tasks    domain.TaskRepository
}

func NewCommentService(comments domain.CommentRepository, tasks domain.TaskRepository) *CommentService {
	return &CommentService{comments: comments, tasks: tasks}
}

func (s *CommentService) Create(ctx context.Context, authorID, taskID uuid.UUID, content string) (*domain.Comment, error) {
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		return nil, fmt.Errorf("commentService.Create: task: %w", err)
	}

	c, err := domain.NewComment(taskID, authorID, content)
	if err != nil {
		return nil, fmt.Errorf("commentService.Create: %w", err)
	}

	if err := s.comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("commentService.Create: %w", err)
	}

	return c, nil
}

func (s *CommentService) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.Comment, error) {
	comments, err := s.comments.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("commentService.ListByTask: %w", err)
	}
	return comments, nil
}

func (s *CommentService) Update(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, content string) (*domain.Comment, error) {
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("commentService.Update: %w", err)
	}

	if err := domain.Authorize(actorID, c.AuthorID, isAdmin); err != nil {
		return nil, fmt.Errorf("commentService.Update: %w", err)
	}

	c.Content = content
	c.UpdatedAt = time.Now()

	if err := s.comments.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("commentService.Update: %w", err)
	}

	return c, nil
}

func (s *CommentService) Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("commentService.Delete: %w", err)
	}

	if err := domain.Authorize(actorID, c.AuthorID, isAdmin); err != nil {
		return fmt.Errorf("commentService.Delete: %w", err)
	}

	if err := s.comments.Delete(ctx, c.ID); err != nil {
		return fmt.Errorf("commentService.Delete: %w", err)
	}

	return nil
}
