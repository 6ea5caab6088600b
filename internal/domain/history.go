package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// HistoryAction is the fixed vocabulary of recorded project mutations.
type HistoryAction string

const (
	ActionCreated           HistoryAction = "CREATED"
	ActionUpdated           HistoryAction = "UPDATED"
	ActionProjectDeleted    HistoryAction = "PROJECT_DELETED"
	ActionTaskCreated       HistoryAction = "TASK_CREATED"
	ActionTaskUpdated       HistoryAction = "TASK_UPDATED"
	ActionTaskDeleted       HistoryAction = "TASK_DELETED"
	ActionResearcherAdded   HistoryAction = "RESEARCHER_ADDED"
	ActionResearcherRemoved HistoryAction = "RESEARCHER_REMOVED"
)

// ProjectHistory is one append-only audit entry. Entries are never mutated
// after creation and never outlive their project: deleting a project purges
// its whole trail in the same transaction.
type ProjectHistory struct {
	ID           uuid.UUID
	ProjectID    uuid.UUID
	ResearcherID uuid.UUID
	Action       HistoryAction
	Description  string
	Details      map[string]any
	CreatedAt    time.Time
}

// NewProjectHistory creates an entry attributed to the acting researcher.
// An entry cannot exist for an unknown actor or project.
func NewProjectHistory(projectID, researcherID uuid.UUID, action HistoryAction, description string) (*ProjectHistory, error) {
	if projectID == uuid.Nil {
		return nil, errors.New("history: project id is required")
	}
	if researcherID == uuid.Nil {
		return nil, errors.New("history: researcher id is required")
	}
	return &ProjectHistory{
		ID:           uuid.New(),
		ProjectID:    projectID,
		ResearcherID: researcherID,
		Action:       action,
		Description:  description,
		CreatedAt:    time.Now(),
	}, nil
}

type ProjectHistoryRepository interface {
	Append(ctx context.Context, h *ProjectHistory) error
	// RecentByProject returns up to limit entries, newest first. A limit
	// larger than the trail truncates without error.
	RecentByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]*ProjectHistory, error)
	PurgeByProject(ctx context.Context, projectID uuid.UUID) error
}
