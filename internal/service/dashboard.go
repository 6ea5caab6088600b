package service

import (
	"context"
	"fmt"

	"github.com/kyulab/labms/internal/domain"
)

// DashboardSummary aggregates the counters shown on the landing dashboard.
type DashboardSummary struct {
	Researchers     int64            `json:"researchers"`
	ProjectsByState map[string]int64 `json:"projectsByState"`
	TasksByState    map[string]int64 `json:"tasksByState"`
}

// DashboardService serves the summary through the cache; mutating services
// invalidate it so counters stay fresh without a TTL race.
type DashboardService struct {
	researchers domain.ResearcherRepository
	projects    domain.ProjectRepository
	tasks       domain.TaskRepository
	cache       Cache
}

func NewDashboardService(
	researchers domain.ResearcherRepository,
	projects domain.ProjectRepository,
	tasks domain.TaskRepository,
	cache Cache,
) *DashboardService {
	return &DashboardService{
		researchers: researchers,
		projects:    projects,
		tasks:       tasks,
		cache:       cache,
	}
}

func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	var cached DashboardSummary
	if err := s.cache.GetJSON(ctx, keyDashboard, &cached); err == nil {
		return &cached, nil
	}

	summary := &DashboardSummary{
		ProjectsByState: make(map[string]int64),
		TasksByState:    make(map[string]int64),
	}

	n, err := s.researchers.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboardService.Summary: researchers: %w", err)
	}
	summary.Researchers = n

	projectStatuses := []domain.ProjectStatus{
		domain.ProjectPlanning, domain.ProjectInProgress, domain.ProjectCompleted, domain.ProjectOnHold,
	}
	for _, st := range projectStatuses {
		n, err := s.projects.CountByStatus(ctx, st)
		if err != nil {
			return nil, fmt.Errorf("dashboardService.Summary: projects %s: %w", st, err)
		}
		summary.ProjectsByState[string(st)] = n
	}

	taskStatuses := []domain.TaskStatus{domain.TaskTodo, domain.TaskInProgress, domain.TaskDone}
	for _, st := range taskStatuses {
		n, err := s.tasks.CountByStatus(ctx, st)
		if err != nil {
			return nil, fmt.Errorf("dashboardService.Summary: tasks %s: %w", st, err)
		}
		summary.TasksByState[string(st)] = n
	}

	_ = s.cache.SetJSON(ctx, keyDashboard, summary)

	return summary, nil
}
