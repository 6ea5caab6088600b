package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kyulab/labms/internal/domain"
)

const (
	keyPublicNotices  = "labms:notices:public"
	keyPublicSeminars = "labms:seminars:public"
	keyDashboard      = "labms:dashboard:summary"
)

// publicNoticeLimit bounds the cached public list shown on the landing page.
const publicNoticeLimit = 20

// NoticeService guards notices with the ownership policy and keeps a
// read-through cache of the public list.
type NoticeService struct {
	notices domain.NoticeRepository
	cache   Cache
}

func NewNoticeService(notices domain.NoticeRepository, cache Cache) *NoticeService {
	return &NoticeService{notices: notices, cache: cache}
}

type NoticeCreate struct {
	Title          string
	Content        string
	Public         *bool
	ImageURL       string
	AttachmentURL  string
	AttachmentName string
}

type NoticeUpdate struct {
	Title          *string
	Content        *string
	Public         *bool
	ImageURL       *string
	AttachmentURL  *string
	AttachmentName *string
}

func (s *NoticeService) Create(ctx context.Context, authorID uuid.UUID, in NoticeCreate) (*domain.Notice, error) {
	n, err := domain.NewNotice(authorID, in.Title, in.Content)
	if err != nil {
		return nil, fmt.Errorf("noticeService.Create: %w", err)
	}

	if in.Public != nil {
		n.Public = *in.Public
	}
	n.ImageURL = in.ImageURL
	n.AttachmentURL = in.AttachmentURL
	n.AttachmentName = in.AttachmentName

	if err := s.notices.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("noticeService.Create: %w", err)
	}

	_ = s.cache.Invalidate(ctx, keyPublicNotices)

	return n, nil
}

func (s *NoticeService) Get(ctx context.Context, id uuid.UUID) (*domain.Notice, error) {
	n, err := s.notices.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("noticeService.Get: %w", err)
	}
	return n, nil
}

func (s *NoticeService) List(ctx context.Context) ([]*domain.Notice, error) {
	notices, err := s.notices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("noticeService.List: %w", err)
	}
	return notices, nil
}

// ListPublic serves the landing-page notice list through the cache. A cache
// failure of any kind falls back to the database.
func (s *NoticeService) ListPublic(ctx context.Context) ([]*domain.Notice, error) {
	var cached []*domain.Notice
	if err := s.cache.GetJSON(ctx, keyPublicNotices, &cached); err == nil {
		return cached, nil
	}

	notices, err := s.notices.ListPublic(ctx, publicNoticeLimit)
	if err != nil {
		return nil, fmt.Errorf("noticeService.ListPublic: %w", err)
	}

	_ = s.cache.SetJSON(ctx, keyPublicNotices, notices)

	return notices, nil
}

func (s *NoticeService) Update(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, in NoticeUpdate) (*domain.Notice, error) {
	n, err := s.notices.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("noticeService.Update: %w", err)
	}

	if err := domain.Authorize(actorID, n.AuthorID, isAdmin); err != nil {
		return nil, fmt.Errorf("noticeService.Update: %w", err)
	}

	if in.Title != nil {
		n.Title = *in.Title
	}
	if in.Content != nil {
		n.Content = *in.Content
	}
	if in.Public != nil {
		n.Public = *in.Public
	}
	if in.ImageURL != nil {
		n.ImageURL = *in.ImageURL
	}
	if in.AttachmentURL != nil {
		n.AttachmentURL = *in.AttachmentURL
	}
	if in.AttachmentName != nil {
		n.AttachmentName = *in.AttachmentName
	}
	n.UpdatedAt = time.Now()

	if err := s.notices.Update(ctx, n); err != nil {
		return nil, fmt.Errorf("noticeService.Update: %w", err)
	}

	_ = s.cache.Invalidate(ctx, keyPublicNotices)

	return n, nil
}

func (s *NoticeService) Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	n, err := s.notices.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("noticeService.Delete: %w", err)
	}

	if err := domain.Authorize(actorID, n.AuthorID, isAdmin); err != nil {
		return fmt.Errorf("noticeService.Delete: %w", err)
	}

	if err := s.notices.Delete(ctx, n.ID); err != nil {
		return fmt.Errorf("noticeService.Delete: %w", err)
	}

	_ = s.cache.Invalidate(ctx, keyPublicNotices)

	return nil
}
