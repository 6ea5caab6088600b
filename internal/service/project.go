package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kyulab/labms/internal/domain"
)

// ProjectService orchestrates project mutations with the change recorder
// and the audit log. Any logged-in researcher may mutate a project; the
// mutation is attributed to them in the history trail.
type ProjectService struct {
	projects  domain.ProjectRepository
	tasks     domain.TaskRepository
	comments  domain.CommentRepository
	histories domain.ProjectHistoryRepository
	tx        TxRunner
	cache     Cache
}

func NewProjectService(
	projects domain.ProjectRepository,
	tasks domain.TaskRepository,
	comments domain.CommentRepository,
	histories domain.ProjectHistoryRepository,
	tx TxRunner,
	cache Cache,
) *ProjectService {
	return &ProjectService{
		projects:  projects,
		tasks:     tasks,
		comments:  comments,
		histories: histories,
		tx:        tx,
		cache:     cache,
	}
}

// ProjectCreate carries the fields accepted at creation. Name and StartDate
// are required; the rest default.
type ProjectCreate struct {
	Name          string
	Description   string
	Status        *domain.ProjectStatus
	Priority      *domain.Priority
	StartDate     time.Time
	EndDate       *time.Time
	Budget        *int64
	Public        *bool
	Categories    []string
	ResearcherIDs []uuid.UUID
}

// ProjectUpdate carries a partial mutation. Nil fields are left unchanged;
// a nil Categories or ResearcherIDs slice means "do not touch".
type ProjectUpdate struct {
	Name          *string
	Description   *string
	Status        *domain.ProjectStatus
	Priority      *domain.Priority
	Progress      *int
	StartDate     *time.Time
	EndDate       *time.Time
	Budget        *int64
	Public        *bool
	Categories    []string
	ResearcherIDs []uuid.UUID
}

func (s *ProjectService) Create(ctx context.Context, in ProjectCreate) (*domain.Project, error) {
	p, err := domain.NewProject(in.Name, in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("projectService.Create: %w", err)
	}

	p.Description = in.Description
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, fmt.Errorf("projectService.Create: invalid status %q", *in.Status)
		}
		p.Status = *in.Status
	}
	if in.Priority != nil {
		if !in.Priority.Valid() {
			return nil, fmt.Errorf("projectService.Create: invalid priority %q", *in.Priority)
		}
		p.Priority = *in.Priority
	}
	p.EndDate = in.EndDate
	p.Budget = in.Budget
	if in.Public != nil {
		p.Public = *in.Public
	}
	p.Categories = in.Categories
	p.ResearcherIDs = in.ResearcherIDs

	if err := s.projects.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("projectService.Create: %w", err)
	}

	s.invalidateDashboard(ctx)

	return p, nil
}

func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("projectService.Get: %w", err)
	}
	return p, nil
}

func (s *ProjectService) List(ctx context.Context) ([]*domain.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("projectService.List: %w", err)
	}
	return projects, nil
}

func (s *ProjectService) ListByStatus(ctx context.Context, status domain.ProjectStatus) ([]*domain.Project, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("projectService.ListByStatus: invalid status %q", status)
	}
	projects, err := s.projects.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("projectService.ListByStatus: %w", err)
	}
	return projects, nil
}

func (s *ProjectService) ListByResearcher(ctx context.Context, researcherID uuid.UUID) ([]*domain.Project, error) {
	projects, err := s.projects.ListByResearcher(ctx, researcherID)
	if err != nil {
		return nil, fmt.Errorf("projectService.ListByResearcher: %w", err)
	}
	return projects, nil
}

// Update applies a partial mutation attributed to actorID. The tracked
// fields (name, progress, status) are diffed against the persisted state
// before anything is written; if at least one of them changed, an UPDATED
// history entry with the rendered diff is appended in the same transaction
// as the row update. A mutation that changes nothing tracked still persists
// the untracked fields but leaves the trail untouched.
func (s *ProjectService) Update(ctx context.Context, actorID, id uuid.UUID, in ProjectUpdate) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("projectService.Update: %w", err)
	}

	changes := domain.ProjectChanges(p, in.Name, in.Progress, in.Status)

	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("projectService.Update: name must not be empty")
		}
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Status != nil {
		if !p.Status.CanTransition(*in.Status) {
			return nil, fmt.Errorf("projectService.Update: invalid status transition %q to %q", p.Status, *in.Status)
		}
		p.Status = *in.Status
	}
	if in.Priority != nil {
		if !in.Priority.Valid() {
			return nil, fmt.Errorf("projectService.Update: invalid priority %q", *in.Priority)
		}
		p.Priority = *in.Priority
	}
	if in.Progress != nil {
		if err := p.SetProgress(*in.Progress); err != nil {
			return nil, fmt.Errorf("projectService.Update: %w", err)
		}
	}
	if in.StartDate != nil {
		p.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		p.EndDate = in.EndDate
	}
	if in.Budget != nil {
		p.Budget = in.Budget
	}
	if in.Public != nil {
		p.Public = *in.Public
	}
	if in.Categories != nil {
		p.Categories = in.Categories
	}
	p.UpdatedAt = time.Now()

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.projects.Update(ctx, p); err != nil {
			return err
		}
		if in.ResearcherIDs != nil {
			if err := s.projects.ReplaceResearchers(ctx, p.ID, in.ResearcherIDs); err != nil {
				return err
			}
			p.ResearcherIDs = in.ResearcherIDs
		}
		if changes.Empty() {
			return nil
		}
		entry, err := domain.NewProjectHistory(p.ID, actorID, domain.ActionUpdated, changes.Description())
		if err != nil {
			return err
		}
		return s.histories.Append(ctx, entry)
	})
	if err != nil {
		return nil, fmt.Errorf("projectService.Update: %w", err)
	}

	s.invalidateDashboard(ctx)

	return p, nil
}

// Delete removes a project and everything scoped to it. The ordering is
// deliberate: a transient PROJECT_DELETED entry is appended first so any
// synchronous inspection of the trail sees the deletion, then the whole
// trail is purged (the deletion record does not outlive its project), then
// task comments, tasks and finally the project row go. All of it commits or
// rolls back as one transaction.
func (s *ProjectService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("projectService.Delete: %w", err)
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		entry, err := domain.NewProjectHistory(p.ID, actorID, domain.ActionProjectDeleted,
			fmt.Sprintf("프로젝트 '%s' 삭제", p.Name))
		if err != nil {
			return err
		}
		if err := s.histories.Append(ctx, entry); err != nil {
			return err
		}

		if err := s.histories.PurgeByProject(ctx, p.ID); err != nil {
			return err
		}

		tasks, err := s.tasks.ListByProject(ctx, p.ID)
		if err != nil {
			return err
		}
		for _, t := range tasks {
			if err := s.comments.DeleteByTask(ctx, t.ID); err != nil {
				return err
			}
		}
		if err := s.tasks.DeleteByProject(ctx, p.ID); err != nil {
			return err
		}

		return s.projects.Delete(ctx, p.ID)
	})
	if err != nil {
		return fmt.Errorf("projectService.Delete: %w", err)
	}

	s.invalidateDashboard(ctx)

	return nil
}

// History returns up to limit entries for the project, newest first.
func (s *ProjectService) History(ctx context.Context, projectID uuid.UUID, limit int) ([]*domain.ProjectHistory, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, fmt.Errorf("projectService.History: %w", err)
	}

	entries, err := s.histories.RecentByProject(ctx, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("projectService.History: %w", err)
	}
	return entries, nil
}

func (s *ProjectService) invalidateDashboard(ctx context.Context) {
	_ = s.cache.Invalidate(ctx, keyDashboard)
}
