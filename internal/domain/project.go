package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "PLANNING"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectCompleted  ProjectStatus = "COMPLETED"
	ProjectOnHold     ProjectStatus = "ON_HOLD"
)

// Valid reports whether s is a member of the closed status set.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectInProgress, ProjectCompleted, ProjectOnHold:
		return true
	}
	return false
}

// CanTransition reports whether a project may move from s to the given
// status. Every transition between valid statuses is currently allowed;
// the table exists so stricter rules (e.g. forbidding COMPLETED back to
// PLANNING) can be added without touching call sites.
func (s ProjectStatus) CanTransition(to ProjectStatus) bool {
	return s.Valid() && to.Valid()
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Project struct {
	ID            uuid.UUID
	Name          string
	Description   string
	Status        ProjectStatus
	Priority      Priority
	Progress      int // 0..100
	StartDate     time.Time
	EndDate       *time.Time
	Budget        *int64
	Public        bool
	Categories    []string
	ResearcherIDs []uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewProject creates a Project with validated required fields and defaults.
func NewProject(name string, startDate time.Time) (*Project, error) {
	if name == "" {
		return nil, errors.New("project: name is required")
	}
	if startDate.IsZero() {
		return nil, errors.New("project: start date is required")
	}
	now := time.Now()
	return &Project{
		ID:        uuid.New(),
		Name:      name,
		Status:    ProjectPlanning,
		Priority:  PriorityMedium,
		Progress:  0,
		StartDate: startDate,
		Public:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetProgress updates the completion percentage, enforcing 0..100.
func (p *Project) SetProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return fmt.Errorf("project: progress must be 0-100, got %d", progress)
	}
	p.Progress = progress
	return nil
}

type ProjectRepository interface {
	Create(ctx context.Context, p *Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*Project, error)
	List(ctx context.Context) ([]*Project, error)
	ListByStatus(ctx context.Context, status ProjectStatus) ([]*Project, error)
	ListByResearcher(ctx context.Context, researcherID uuid.UUID) ([]*Project, error)
	Update(ctx context.Context, p *Project) error
	ReplaceResearchers(ctx context.Context, projectID uuid.UUID, researcherIDs []uuid.UUID) error
	CountByStatus(ctx context.Context, status ProjectStatus) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
