package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Seminar is a lab seminar announcement, managed by admins.
type Seminar struct {
	ID        uuid.UUID
	Title     string
	Presenter string
	Date      time.Time
	Location  string
	Abstract  string
	Public    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSeminar creates a Seminar with validated required fields.
func NewSeminar(title, presenter string, date time.Time) (*Seminar, error) {
	if title == "" {
		return nil, errors.New("seminar: title is required")
	}
	if presenter == "" {
		return nil, errors.New("seminar: presenter is required")
	}
	now := time.Now()
	return &Seminar{
		ID:        uuid.New(),
		Title:     title,
		Presenter: presenter,
		Date:      date,
		Public:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

type SeminarRepository interface {
	Create(ctx context.Context, s *Seminar) error
	GetByID(ctx context.Context, id uuid.UUID) (*Seminar, error)
	List(ctx context.Context) ([]*Seminar, error)
	ListPublic(ctx context.Context) ([]*Seminar, error)
	Update(ctx context.Context, s *Seminar) error
	Delete(ctx context.Context, id uuid.UUID) error
}
