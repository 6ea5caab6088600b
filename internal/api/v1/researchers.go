package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/kyulab/labms/internal/domain"
)

type CreateResearcherInput struct {
	Body struct {
		Name          string    `json:"name" minLength:"1" maxLength:"255" doc:"Full name"`
		StudentID     string    `json:"studentId" minLength:"1" maxLength:"32" doc:"Student ID, unique"`
		Grade         string    `json:"grade" enum:"UNDERGRADUATE,MASTERS,PHD,POSTDOC" doc:"Academic grade"`
		AdmissionYear *int      `json:"admissionYear,omitempty" doc:"Admission year"`
		Email         string    `json:"email" minLength:"3" maxLength:"255" doc:"Email, unique"`
		Phone         string    `json:"phone,omitempty" doc:"Phone number"`
		Status        string    `json:"status,omitempty" enum:"ACTIVE,GRADUATED,ON_LEAVE" doc:"Membership status"`
		JoinDate      time.Time `json:"joinDate" doc:"Lab join date"`
		ResearchAreas []string  `json:"researchAreas,omitempty" doc:"Research area names"`
		PhotoURL      string    `json:"photoUrl,omitempty" doc:"Profile photo URL"`
	}
}

type CreateResearcherOutput struct {
	Body *ResearcherResponse
}

type ListResearchersOutput struct {
	Body []*ResearcherResponse
}

type GetResearcherInput struct {
	ID uuid.UUID `path:"id" doc:"Researcher ID"`
}

type GetResearcherOutput struct {
	Body *ResearcherResponse
}

type UpdateResearcherInput struct {
	ID   uuid.UUID `path:"id" doc:"Researcher ID"`
	Body struct {
		Name          *string    `json:"name,omitempty" maxLength:"255" doc:"Full name"`
		Grade         *string    `json:"grade,omitempty" enum:"UNDERGRADUATE,MASTERS,PHD,POSTDOC" doc:"Academic grade"`
		AdmissionYear *int       `json:"admissionYear,omitempty" doc:"Admission year"`
		Email         *string    `json:"email,omitempty" maxLength:"255" doc:"Email, unique"`
		Phone         *string    `json:"phone,omitempty" doc:"Phone number"`
		Status        *string    `json:"status,omitempty" enum:"ACTIVE,GRADUATED,ON_LEAVE" doc:"Membership status"`
		JoinDate      *time.Time `json:"joinDate,omitempty" doc:"Lab join date"`
		ResearchAreas []string   `json:"researchAreas,omitempty" doc:"Research area names, replaces the set when present"`
		PhotoURL      *string    `json:"photoUrl,omitempty" doc:"Profile photo URL"`
	}
}

type UpdateResearcherOutput struct {
	Body *ResearcherResponse
}

type DeleteResearcherInput struct {
	ID uuid.UUID `path:"id" doc:"Researcher ID"`
}

// RegisterResearcherRoutes wires researcher profile management. Mutations
// are mounted under the admin-only group; reads under the authenticated
// group.
func RegisterResearcherRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "list-researchers",
		Method:      http.MethodGet,
		Path:        "/researchers",
		Summary:     "List researchers",
		Tags:        []string{"Researchers"},
	}, func(ctx context.Context, _ *struct{}) (*ListResearchersOutput, error) {
		rs, err := store.Researchers().List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list researchers", err)
		}

		return &ListResearchersOutput{Body: newResearcherResponses(rs)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-researcher",
		Method:      http.MethodGet,
		Path:        "/researchers/{id}",
		Summary:     "Get a researcher by ID",
		Tags:        []string{"Researchers"},
	}, func(ctx context.Context, input *GetResearcherInput) (*GetResearcherOutput, error) {
		r, err := store.Researchers().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("researcher not found")
			}
			return nil, huma.Error500InternalServerError("failed to get researcher", err)
		}

		return &GetResearcherOutput{Body: newResearcherResponse(r)}, nil
	})
}

// RegisterResearcherAdminRoutes wires the admin-only researcher mutations.
func RegisterResearcherAdminRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "create-researcher",
		Method:      http.MethodPost,
		Path:        "/researchers",
		Summary:     "Register a researcher",
		Tags:        []string{"Researchers"},
	}, func(ctx context.Context, input *CreateResearcherInput) (*CreateResearcherOutput, error) {
		r, err := domain.NewResearcher(input.Body.Name, input.Body.StudentID, input.Body.Email,
			domain.Grade(input.Body.Grade), input.Body.JoinDate)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}

		r.AdmissionYear = input.Body.AdmissionYear
		r.Phone = input.Body.Phone
		r.ResearchAreas = input.Body.ResearchAreas
		r.PhotoURL = input.Body.PhotoURL
		if input.Body.Status != "" {
			r.Status = domain.ResearcherStatus(input.Body.Status)
		}

		if err := store.Researchers().Create(ctx, r); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, huma.Error409Conflict("student id or email already registered")
			}
			return nil, huma.Error500InternalServerError("failed to create researcher", err)
		}

		return &CreateResearcherOutput{Body: newResearcherResponse(r)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-researcher",
		Method:      http.MethodPut,
		Path:        "/researchers/{id}",
		Summary:     "Update a researcher profile",
		Tags:        []string{"Researchers"},
	}, func(ctx context.Context, input *UpdateResearcherInput) (*UpdateResearcherOutput, error) {
		r, err := store.Researchers().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("researcher not found")
			}
			return nil, huma.Error500InternalServerError("failed to get researcher", err)
		}

		if input.Body.Name != nil {
			r.Name = *input.Body.Name
		}
		if input.Body.Grade != nil {
			r.Grade = domain.Grade(*input.Body.Grade)
		}
		if input.Body.AdmissionYear != nil {
			r.AdmissionYear = input.Body.AdmissionYear
		}
		if input.Body.Email != nil {
			r.Email = *input.Body.Email
		}
		if input.Body.Phone != nil {
			r.Phone = *input.Body.Phone
		}
		if input.Body.Status != nil {
			r.Status = domain.ResearcherStatus(*input.Body.Status)
		}
		if input.Body.JoinDate != nil {
			r.JoinDate = *input.Body.JoinDate
		}
		if input.Body.ResearchAreas != nil {
			r.ResearchAreas = input.Body.ResearchAreas
		}
		if input.Body.PhotoURL != nil {
			r.PhotoURL = *input.Body.PhotoURL
		}
		r.UpdatedAt = time.Now()

		if err := store.Researchers().Update(ctx, r); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, huma.Error409Conflict("email already registered")
			}
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("researcher not found")
			}
			return nil, huma.Error500InternalServerError("failed to update researcher", err)
		}

		return &UpdateResearcherOutput{Body: newResearcherResponse(r)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-researcher",
		Method:      http.MethodDelete,
		Path:        "/researchers/{id}",
		Summary:     "Remove a researcher",
		Tags:        []string{"Researchers"},
	}, func(ctx context.Context, input *DeleteResearcherInput) (*struct{}, error) {
		if err := store.Researchers().Delete(ctx, input.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("researcher not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete researcher", err)
		}

		return nil, nil
	})
}
