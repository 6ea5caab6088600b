package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kyulab/labms/internal/domain"
)

// SeminarService is admin-managed CRUD; writes are gated by role middleware
// upstream, so no ownership check runs here. The public list is cached.
type SeminarService struct {
	seminars domain.SeminarRepository
	cache    Cache
}

func NewSeminarService(seminars domain.SeminarRepository, cache Cache) *SeminarService {
	return &SeminarService{seminars: seminars, cache: cache}
}

type SeminarCreate struct {
	Title     string
	Presenter string
	Date      time.Time
	Location  string
	Abstract  string
	Public    *bool
}

type SeminarUpdate struct {
	Title     *string
	Presenter *string
	Date      *time.Time
	Location  *string
	Abstract  *string
	Public    *bool
}

func (s *SeminarService) Create(ctx context.Context, in SeminarCreate) (*domain.Seminar, error) {
	sem, err := domain.NewSeminar(in.Title, in.Presenter, in.Date)
	if err != nil {
		return nil, fmt.Errorf("seminarService.Create: %w", err)
	}

	sem.Location = in.Location
	sem.Abstract = in.Abstract
	if in.Public != nil {
		sem.Public = *in.Public
	}

	if err := s.seminars.Create(ctx, sem); err != nil {
		return nil, fmt.Errorf("seminarService.Create: %w", err)
	}

	_ = s.cache.Invalidate(ctx, keyPublicSeminars)

	return sem, nil
}

func (s *SeminarService) Get(ctx context.Context, id uuid.UUID) (*domain.Seminar, error) {
	sem, err := s.seminars.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("seminarService.Get: %w", err)
	}
	return sem, nil
}

func (s *SeminarService) List(ctx context.Context) ([]*domain.Seminar, error) {
	seminars, err := s.seminars.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("seminarService.List: %w", err)
	}
	return seminars, nil
}

func (s *SeminarService) ListPublic(ctx context.Context) ([]*domain.Seminar, error) {
	var cached []*domain.Seminar
	if err := s.cache.GetJSON(ctx, keyPublicSeminars, &cached); err == nil {
		return cached, nil
	}

	seminars, err := s.seminars.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("seminarService.ListPublic: %w", err)
	}

	_ = s.cache.SetJSON(ctx, keyPublicSeminars, seminars)

	return seminars, nil
}

func (s *SeminarService) Update(ctx context.Context, id uuid.UUID, in SeminarUpdate) (*domain.Seminar, error) {
	sem, err := s.seminars.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("seminarService.Update: %w", err)
	}

	if in.Title != nil {
		sem.Title = *in.Title
	}
	if in.Presenter != nil {
		sem.Presenter = *in.Presenter
	}
	if in.Date != nil {
		sem.Date = *in.Date
	}
	if in.Location != nil {
		sem.Location = *in.Location
	}
	if in.Abstract != nil {
		sem.Abstract = *in.Abstract
	}
	if in.Public != nil {
		sem.Public = *in.Public
	}
	sem.UpdatedAt = time.Now()

	if err := s.seminars.Update(ctx, sem); err != nil {
		return nil, fmt.Errorf("seminarService.Update: %w", err)
	}

	_ = s.cache.Invalidate(ctx, keyPublicSeminars)

	return sem, nil
}

func (s *SeminarService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.seminars.Delete(ctx, id); err != nil {
		return fmt.Errorf("seminarService.Delete: %w", err)
	}

	_ = s.cache.Invalidate(ctx, keyPublicSeminars)

	return nil
}
