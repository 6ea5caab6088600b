package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kyulab/labms/internal/domain"
)

// BoardService guards board posts and their comments with the ownership
// policy: mutations run as the owner unless the caller holds admin
// privilege, which bypasses the owner check entirely.
type BoardService struct {
	boards   domain.BoardRepository
	comments domain.BoardCommentRepository
	tx       TxRunner
}

func NewBoardService(boards domain.BoardRepository, comments domain.BoardCommentRepository, tx TxRunner) *BoardService {
	return &BoardService{boards: boards, comments: comments, tx: tx}
}

type BoardCreate struct {
	Title          string
	Content        string
	Public         *bool
	ImageURL       string
	AttachmentURL  string
	AttachmentName string
}

type BoardUpdate struct {
	Title          *string
	Content        *string
	Public         *bool
	ImageURL       *string
	AttachmentURL  *string
	AttachmentName *string
}

func (s *BoardService) Create(ctx context.Context, authorID uuid.UUID, in BoardCreate) (*domain.Board, error) {
	b, err := domain.NewBoard(authorID, in.Title, in.Content)
	if err != nil {
		return nil, fmt.Errorf("boardService.Create: %w", err)
	}

	if in.Public != nil {
		b.Public = *in.Public
	}
	b.ImageURL = in.ImageURL
	b.AttachmentURL = in.AttachmentURL
	b.AttachmentName = in.AttachmentName

	if err := s.boards.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("boardService.Create: %w", err)
	}

	return b, nil
}

// Get returns the post and bumps its view counter. The increment is best
// effort; a read never fails because the counter write did.
func (s *BoardService) Get(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	b, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("boardService.Get: %w", err)
	}

	if err := s.boards.IncrementViewCount(ctx, id); err == nil {
		b.ViewCount++
	}

	return b, nil
}

func (s *BoardService) List(ctx context.Context) ([]*domain.Board, error) {
	boards, err := s.boards.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("boardService.List: %w", err)
	}
	return boards, nil
}

func (s *BoardService) ListPublic(ctx context.Context) ([]*domain.Board, error) {
	boards, err := s.boards.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("boardService.ListPublic: %w", err)
	}
	return boards, nil
}

func (s *BoardService) Search(ctx context.Context, keyword string) ([]*domain.Board, error) {
	boards, err := s.boards.Search(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("boardService.Search: %w", err)
	}
	return boards, nil
}

func (s *BoardService) Update(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, in BoardUpdate) (*domain.Board, error) {
	b, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("boardService.Update: %w", err)
	}

	if err := domain.Authorize(actorID, b.AuthorID, isAdmin); err != nil {
		return nil, fmt.Errorf("boardService.Update: %w", err)
	}

	if in.Title != nil {
		b.Title = *in.Title
	}
	if in.Content != nil {
		b.Content = *in.Content
	}
	if in.Public != nil {
		b.Public = *in.Public
	}
	if in.ImageURL != nil {
		b.ImageURL = *in.ImageURL
	}
	if in.AttachmentURL != nil {
		b.AttachmentURL = *in.AttachmentURL
	}
	if in.AttachmentName != nil {
		b.AttachmentName = *in.AttachmentName
	}
	b.UpdatedAt = time.Now()

	if err := s.boards.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("boardService.Update: %w", err)
	}

	return b, nil
}

// Delete removes the post and all of its comments in one transaction.
func (s *BoardService) Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	b, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("boardService.Delete: %w", err)
	}

	if err := domain.Authorize(actorID, b.AuthorID, isAdmin); err != nil {
		return fmt.Errorf("boardService.Delete: %w", err)
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.comments.DeleteByBoard(ctx, b.ID); err != nil {
			return err
		}
		return s.boards.Delete(ctx, b.ID)
	})
	if err != nil {
		return fmt.Errorf("boardService.Delete: %w", err)
	}

	return nil
}

func (s *BoardService) CreateComment(ctx context.Context, authorID, boardID uuid.UUID, content string) (*domain.BoardComment, error) {
	if _, err := s.boards.GetByID(ctx, boardID); err != nil {
		return nil, fmt.Errorf("boardService.CreateComment: %w", err)
	}

	if authorID == uuid.Nil {
		return nil, fmt.Errorf("boardService.CreateComment: %w", domain.ErrMissingActor)
	}
	if content == "" {
		return nil, fmt.Errorf("boardService.CreateComment: content is required")
	}

	now := time.Now()
	c := &domain.BoardComment{
		ID:        uuid.New(),
		BoardID:   boardID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("boardService.CreateComment: %w", err)
	}

	return c, nil
}

func (s *BoardService) ListComments(ctx context.Context, boardID uuid.UUID) ([]*domain.BoardComment, error) {
	comments, err := s.comments.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("boardService.ListComments: %w", err)
	}
	return comments, nil
}

func (s *BoardService) UpdateComment(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, content string) (*domain.BoardComment, error) {
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("boardService.UpdateComment: %w", err)
	}

	if err := domain.Authorize(actorID, c.AuthorID, isAdmin); err != nil {
		return nil, fmt.Errorf("boardService.UpdateComment: %w", err)
	}

	c.Content = content
	c.UpdatedAt = time.Now()

	if err := s.comments.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("boardService.UpdateComment: %w", err)
	}

	return c, nil
}

func (s *BoardService) DeleteComment(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("boardService.DeleteComment: %w", err)
	}

	if err := domain.Authorize(actorID, c.AuthorID, isAdmin); err != nil {
		return fmt.Errorf("boardService.DeleteComment: %w", err)
	}

	if err := s.comments.Delete(ctx, c.ID); err != nil {
		return fmt.Errorf("boardService.DeleteComment: %w", err)
	}

	return nil
}
