package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/kyulab/labms/internal/domain"
	"github.com/kyulab/labms/internal/service"
)

type CreateProjectInput struct {
	Body struct {
		Name          string      `json:"name" minLength:"1" maxLength:"255" doc:"Project name"`
		Description   string      `json:"description,omitempty" doc:"Project description"`
		Status        string      `json:"status,omitempty" enum:"PLANNING,IN_PROGRESS,COMPLETED,ON_HOLD" doc:"Initial status"`
		Priority      string      `json:"priority,omitempty" enum:"LOW,MEDIUM,HIGH" doc:"Priority"`
		StartDate     time.Time   `json:"startDate" doc:"Start date"`
		EndDate       *time.Time  `json:"endDate,omitempty" doc:"End date"`
		Budget        *int64      `json:"budget,omitempty" doc:"Budget in KRW"`
		Public        *bool       `json:"public,omitempty" doc:"Visible without login"`
		Categories    []string    `json:"categories,omitempty" doc:"Category tags"`
		ResearcherIDs []uuid.UUID `json:"researcherIds,omitempty" doc:"Member researcher IDs"`
	}
}

type CreateProjectOutput struct {
	Body *ProjectResponse
}

type ListProjectsInput struct {
	Status       string    `query:"status" enum:",PLANNING,IN_PROGRESS,COMPLETED,ON_HOLD" doc:"Filter by status"`
	ResearcherID uuid.UUID `query:"researcherId" doc:"Filter by member researcher"`
}

type ListProjectsOutput struct {
	Body []*ProjectResponse
}

type GetProjectInput struct {
	ID uuid.UUID `path:"id" doc:"Project ID"`
}

type GetProjectOutput struct {
	Body *ProjectResponse
}

type UpdateProjectInput struct {
	ID   uuid.UUID `path:"id" doc:"Project ID"`
	Body struct {
		Name          *string     `json:"name,omitempty" maxLength:"255" doc:"Project name"`
		Description   *string     `json:"description,omitempty" doc:"Project description"`
		Status        *string     `json:"status,omitempty" enum:"PLANNING,IN_PROGRESS,COMPLETED,ON_HOLD" doc:"Status"`
		Priority      *string     `json:"priority,omitempty" enum:"LOW,MEDIUM,HIGH" doc:"Priority"`
		Progress      *int        `json:"progress,omitempty" minimum:"0" maximum:"100" doc:"Progress percent"`
		StartDate     *time.Time  `json:"startDate,omitempty" doc:"Start date"`
		EndDate       *time.Time  `json:"endDate,omitempty" doc:"End date"`
		Budget        *int64      `json:"budget,omitempty" doc:"Budget in KRW"`
		Public        *bool       `json:"public,omitempty" doc:"Visible without login"`
		Categories    []string    `json:"categories,omitempty" doc:"Category tags, replaces the set when present"`
		ResearcherIDs []uuid.UUID `json:"researcherIds,omitempty" doc:"Member researcher IDs, replaces the set when present"`
	}
}

// UpdateProjectOutput carries either the updated projection or the benign
// no-profile message, always with HTTP 200.
type UpdateProjectOutput struct {
	Body struct {
		Data  *ProjectResponse `json:"data,omitempty"`
		Error string           `json:"error,omitempty"`
	}
}

type DeleteProjectInput struct {
	ID uuid.UUID `path:"id" doc:"Project ID"`
}

type DeleteProjectOutput struct {
	Body struct {
		Error string `json:"error,omitempty"`
	}
}

type ProjectHistoryInput struct {
	ID    uuid.UUID `path:"id" doc:"Project ID"`
	Limit int       `query:"limit" default:"50" minimum:"1" maximum:"500" doc:"Maximum entries, newest first"`
}

type ProjectHistoryOutput struct {
	Body []*HistoryResponse
}

func projectStatusPtr(s *string) *domain.ProjectStatus {
	if s == nil {
		return nil
	}
	v := domain.ProjectStatus(*s)
	return &v
}

func priorityPtr(s *string) *domain.Priority {
	if s == nil {
		return nil
	}
	v := domain.Priority(*s)
	return &v
}

func RegisterProjectRoutes(api huma.API, projects ProjectOrchestrator, identity IdentityResolver) {
	huma.Register(api, huma.Operation{
		OperationID: "create-project",
		Method:      http.MethodPost,
		Path:        "/projects",
		Summary:     "Create a new project",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, input *CreateProjectInput) (*CreateProjectOutput, error) {
		var status *domain.ProjectStatus
		if input.Body.Status != "" {
			s := domain.ProjectStatus(input.Body.Status)
			status = &s
		}
		var priority *domain.Priority
		if input.Body.Priority != "" {
			p := domain.Priority(input.Body.Priority)
			priority = &p
		}

		p, err := projects.Create(ctx, service.ProjectCreate{
			Name:          input.Body.Name,
			Description:   input.Body.Description,
			Status:        status,
			Priority:      priority,
			StartDate:     input.Body.StartDate,
			EndDate:       input.Body.EndDate,
			Budget:        input.Body.Budget,
			Public:        input.Body.Public,
			Categories:    input.Body.Categories,
			ResearcherIDs: input.Body.ResearcherIDs,
		})
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}

		return &CreateProjectOutput{Body: newProjectResponse(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-projects",
		Method:      http.MethodGet,
		Path:        "/projects",
		Summary:     "List projects",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, input *ListProjectsInput) (*ListProjectsOutput, error) {
		var (
			ps  []*domain.Project
			err error
		)
		switch {
		case input.ResearcherID != uuid.Nil:
			ps, err = projects.ListByResearcher(ctx, input.ResearcherID)
		case input.Status != "":
			ps, err = projects.ListByStatus(ctx, domain.ProjectStatus(input.Status))
		default:
			ps, err = projects.List(ctx)
		}
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list projects", err)
		}

		return &ListProjectsOutput{Body: newProjectResponses(ps)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-project",
		Method:      http.MethodGet,
		Path:        "/projects/{id}",
		Summary:     "Get a project by ID",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, input *GetProjectInput) (*GetProjectOutput, error) {
		p, err := projects.Get(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("project not found")
			}
			return nil, huma.Error500InternalServerError("failed to get project", err)
		}

		return &GetProjectOutput{Body: newProjectResponse(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-project",
		Method:      http.MethodPut,
		Path:        "/projects/{id}",
		Summary:     "Update a project and record the change",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, input *UpdateProjectInput) (*UpdateProjectOutput, error) {
		actor, err := resolveActor(ctx, identity)
		if err != nil {
			if errors.Is(err, domain.ErrNoProfile) {
				out := &UpdateProjectOutput{}
				out.Body.Error = msgNoProfile
				return out, nil
			}
			return nil, huma.Error500InternalServerError("failed to resolve researcher", err)
		}

		p, err := projects.Update(ctx, actor.ID, input.ID, service.ProjectUpdate{
			Name:          input.Body.Name,
			Description:   input.Body.Description,
			Status:        projectStatusPtr(input.Body.Status),
			Priority:      priorityPtr(input.Body.Priority),
			Progress:      input.Body.Progress,
			StartDate:     input.Body.StartDate,
			EndDate:       input.Body.EndDate,
			Budget:        input.Body.Budget,
			Public:        input.Body.Public,
			Categories:    input.Body.Categories,
			ResearcherIDs: input.Body.ResearcherIDs,
		})
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("project not found")
			}
			return nil, huma.Error400BadRequest(err.Error())
		}

		out := &UpdateProjectOutput{}
		out.Body.Data = newProjectResponse(p)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-project",
		Method:      http.MethodDelete,
		Path:        "/projects/{id}",
		Summary:     "Delete a project and its audit trail",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, input *DeleteProjectInput) (*DeleteProjectOutput, error) {
		actor, err := resolveActor(ctx, identity)
		if err != nil {
			if errors.Is(err, domain.ErrNoProfile) {
				out := &DeleteProjectOutput{}
				out.Body.Error = msgNoProfile
				return out, nil
			}
			return nil, huma.Error500InternalServerError("failed to resolve researcher", err)
		}

		if err := projects.Delete(ctx, actor.ID, input.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("project not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete project", err)
		}

		return &DeleteProjectOutput{}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-project-history",
		Method:      http.MethodGet,
		Path:        "/projects/{id}/history",
		Summary:     "List recent change records for a project",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, input *ProjectHistoryInput) (*ProjectHistoryOutput, error) {
		hs, err := projects.History(ctx, input.ID, input.Limit)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("project not found")
			}
			return nil, huma.Error500InternalServerError("failed to load project history", err)
		}

		return &ProjectHistoryOutput{Body: newHistoryResponses(hs)}, nil
	})
}
