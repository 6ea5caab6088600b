package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ResearchArea is a named tag researchers attach to their profiles.
// Names are unique; creating a duplicate yields ErrConflict.
type ResearchArea struct {
	ID          uuid.UUID
	Name        string // unique
	Description string
	CreatedAt   time.Time
}

// NewResearchArea creates a ResearchArea with a validated name.
func NewResearchArea(name, description string) (*ResearchArea, error) {
	if name == "" {
		return nil, errors.New("research area: name is required")
	}
	return &ResearchArea{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
	}, nil
}

type ResearchAreaRepository interface {
	Create(ctx context.Context, a *ResearchArea) error
	List(ctx context.Context) ([]*ResearchArea, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
