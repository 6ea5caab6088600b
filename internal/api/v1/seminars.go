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

type CreateSeminarInput struct {
	Body struct {
		Title     string    `json:"title" minLength:"1" maxLength:"255" doc:"Seminar title"`
		Presenter string    `json:"presenter" minLength:"1" maxLength:"255" doc:"Presenter name"`
		Date      time.Time `json:"date" doc:"Seminar date and time"`
		Location  string    `json:"location,omitempty" doc:"Venue"`
		Abstract  string    `json:"abstract,omitempty" doc:"Talk abstract"`
		Public    *bool     `json:"public,omitempty" doc:"Visible without login"`
	}
}

type CreateSeminarOutput struct {
	Body *SeminarResponse
}

type ListSeminarsOutput struct {
	Body []*SeminarResponse
}

type GetSeminarInput struct {
	ID uuid.UUID `path:"id" doc:"Seminar ID"`
}

type GetSeminarOutput struct {
	Body *SeminarResponse
}

type UpdateSeminarInput struct {
	ID   uuid.UUID `path:"id" doc:"Seminar ID"`
	Body struct {
		Title     *string    `json:"title,omitempty" maxLength:"255" doc:"Seminar title"`
		Presenter *string    `json:"presenter,omitempty" maxLength:"255" doc:"Presenter name"`
		Date      *time.Time `json:"date,omitempty" doc:"Seminar date and time"`
		Location  *string    `json:"location,omitempty" doc:"Venue"`
		Abstract  *string    `json:"abstract,omitempty" doc:"Talk abstract"`
		Public    *bool      `json:"public,omitempty" doc:"Visible without login"`
	}
}

type UpdateSeminarOutput struct {
	Body *SeminarResponse
}

type DeleteSeminarInput struct {
	ID uuid.UUID `path:"id" doc:"Seminar ID"`
}

// RegisterSeminarRoutes wires seminar reads for the authenticated group.
func RegisterSeminarRoutes(api huma.API, seminars *service.SeminarService) {
	huma.Register(api, huma.Operation{
		OperationID: "list-seminars",
		Method:      http.MethodGet,
		Path:        "/seminars",
		Summary:     "List all seminars",
		Tags:        []string{"Seminars"},
	}, func(ctx context.Context, _ *struct{}) (*ListSeminarsOutput, error) {
		ss, err := seminars.List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list seminars", err)
		}

		return &ListSeminarsOutput{Body: newSeminarResponses(ss)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-seminar",
		Method:      http.MethodGet,
		Path:        "/seminars/{id}",
		Summary:     "Get a seminar by ID",
		Tags:        []string{"Seminars"},
	}, func(ctx context.Context, input *GetSeminarInput) (*GetSeminarOutput, error) {
		s, err := seminars.Get(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("seminar not found")
			}
			return nil, huma.Error500InternalServerError("failed to get seminar", err)
		}

		return &GetSeminarOutput{Body: newSeminarResponse(s)}, nil
	})
}

// RegisterSeminarAdminRoutes wires the admin-only seminar mutations.
func RegisterSeminarAdminRoutes(api huma.API, seminars *service.SeminarService) {
	huma.Register(api, huma.Operation{
		OperationID: "create-seminar",
		Method:      http.MethodPost,
		Path:        "/seminars",
		Summary:     "Create a seminar",
		Tags:        []string{"Seminars"},
	}, func(ctx context.Context, input *CreateSeminarInput) (*CreateSeminarOutput, error) {
		s, err := seminars.Create(ctx, service.SeminarCreate{
			Title:     input.Body.Title,
			Presenter: input.Body.Presenter,
			Date:      input.Body.Date,
			Location:  input.Body.Location,
			Abstract:  input.Body.Abstract,
			Public:    input.Body.Public,
		})
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}

		return &CreateSeminarOutput{Body: newSeminarResponse(s)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-seminar",
		Method:      http.MethodPut,
		Path:        "/seminars/{id}",
		Summary:     "Update a seminar",
		Tags:        []string{"Seminars"},
	}, func(ctx context.Context, input *UpdateSeminarInput) (*UpdateSeminarOutput, error) {
		s, err := seminars.Update(ctx, input.ID, service.SeminarUpdate{
			Title:     input.Body.Title,
			Presenter: input.Body.Presenter,
			Date:      input.Body.Date,
			Location:  input.Body.Location,
			Abstract:  input.Body.Abstract,
			Public:    input.Body.Public,
		})
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("seminar not found")
			}
			return nil, huma.Error500InternalServerError("failed to update seminar", err)
		}

		return &UpdateSeminarOutput{Body: newSeminarResponse(s)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-seminar",
		Method:      http.MethodDelete,
		Path:        "/seminars/{id}",
		Summary:     "Delete a seminar",
		Tags:        []string{"Seminars"},
	}, func(ctx context.Context, input *DeleteSeminarInput) (*struct{}, error) {
		if err := seminars.Delete(ctx, input.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("seminar not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete seminar", err)
		}

		return nil, nil
	})
}

// RegisterPublicSeminarRoutes exposes the unauthenticated, cached seminar
// listing.
func RegisterPublicSeminarRoutes(api huma.API, seminars *service.SeminarService) {
	huma.Register(api, huma.Operation{
		OperationID: "list-public-seminars",
		Method:      http.MethodGet,
		Path:        "/public/seminars",
		Summary:     "List public seminars",
		Tags:        []string{"Public"},
	}, func(ctx context.Context, _ *struct{}) (*ListSeminarsOutput, error) {
		ss, err := seminars.ListPublic(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list public seminars", err)
		}

		return &ListSeminarsOutput{Body: newSeminarResponses(ss)}, nil
	})
}
