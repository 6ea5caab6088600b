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

type GetLabInfoOutput struct {
	Body *LabInfoResponse
}

type UpsertLabInfoInput struct {
	Body struct {
		Name        string `json:"name" minLength:"1" maxLength:"255" doc:"Lab name"`
		Description string `json:"description,omitempty" doc:"Lab description"`
		Professor   string `json:"professor,omitempty" doc:"Principal investigator"`
		Location    string `json:"location,omitempty" doc:"Lab location"`
		Email       string `json:"email,omitempty" doc:"Contact email"`
		Phone       string `json:"phone,omitempty" doc:"Contact phone"`
		Homepage    string `json:"homepage,omitempty" doc:"Homepage URL"`
	}
}

type UpsertLabInfoOutput struct {
	Body *LabInfoResponse
}

// RegisterPublicLabInfoRoutes exposes the lab profile without login.
func RegisterPublicLabInfoRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "get-lab-info",
		Method:      http.MethodGet,
		Path:        "/public/lab-info",
		Summary:     "Get the lab profile",
		Tags:        []string{"Public"},
	}, func(ctx context.Context, _ *struct{}) (*GetLabInfoOutput, error) {
		info, err := store.LabInfo().Get(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("lab profile not configured")
			}
			return nil, huma.Error500InternalServerError("failed to load lab profile", err)
		}

		return &GetLabInfoOutput{Body: newLabInfoResponse(info)}, nil
	})
}

// RegisterLabInfoAdminRoutes wires the admin-only create-or-update for the
// single lab profile record.
func RegisterLabInfoAdminRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "upsert-lab-info",
		Method:      http.MethodPut,
		Path:        "/lab-info",
		Summary:     "Create or replace the lab profile",
		Tags:        []string{"LabInfo"},
	}, func(ctx context.Context, input *UpsertLabInfoInput) (*UpsertLabInfoOutput, error) {
		info := &domain.LabInfo{
			Name:        input.Body.Name,
			Description: input.Body.Description,
			Professor:   input.Body.Professor,
			Location:    input.Body.Location,
			Email:       input.Body.Email,
			Phone:       input.Body.Phone,
			Homepage:    input.Body.Homepage,
			UpdatedAt:   time.Now(),
		}

		if err := store.LabInfo().Upsert(ctx, info); err != nil {
			return nil, huma.Error500InternalServerError("failed to save lab profile", err)
		}

		return &UpsertLabInfoOutput{Body: newLabInfoResponse(info)}, nil
	})
}

type CreateResearchAreaInput struct {
	Body struct {
		Name        string `json:"name" minLength:"1" maxLength:"128" doc:"Area name, unique"`
		Description string `json:"description,omitempty" doc:"Area description"`
	}
}

type CreateResearchAreaOutput struct {
	Body *ResearchAreaResponse
}

type ListResearchAreasOutput struct {
	Body []*ResearchAreaResponse
}

type DeleteResearchAreaInput struct {
	ID uuid.UUID `path:"id" doc:"Research area ID"`
}

// RegisterResearchAreaRoutes wires the research area tag listing for the
// public group and mutations for the admin group. The read is registered
// separately from the mutations so the router can gate them differently.
func RegisterResearchAreaRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "list-research-areas",
		Method:      http.MethodGet,
		Path:        "/public/research-areas",
		Summary:     "List research areas",
		Tags:        []string{"Public"},
	}, func(ctx context.Context, _ *struct{}) (*ListResearchAreasOutput, error) {
		as, err := store.ResearchAreas().List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list research areas", err)
		}

		return &ListResearchAreasOutput{Body: newResearchAreaResponses(as)}, nil
	})
}

// RegisterResearchAreaAdminRoutes wires the admin-only research area
// mutations.
func RegisterResearchAreaAdminRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "create-research-area",
		Method:      http.MethodPost,
		Path:        "/research-areas",
		Summary:     "Create a research area",
		Tags:        []string{"LabInfo"},
	}, func(ctx context.Context, input *CreateResearchAreaInput) (*CreateResearchAreaOutput, error) {
		a, err := domain.NewResearchArea(input.Body.Name, input.Body.Description)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}

		if err := store.ResearchAreas().Create(ctx, a); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, huma.Error409Conflict("research area name already exists")
			}
			return nil, huma.Error500InternalServerError("failed to create research area", err)
		}

		out := &CreateResearchAreaOutput{}
		out.Body = &ResearchAreaResponse{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			CreatedAt:   a.CreatedAt,
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-research-area",
		Method:      http.MethodDelete,
		Path:        "/research-areas/{id}",
		Summary:     "Delete a research area",
		Tags:        []string{"LabInfo"},
	}, func(ctx context.Context, input *DeleteResearchAreaInput) (*struct{}, error) {
		if err := store.ResearchAreas().Delete(ctx, input.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("research area not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete research area", err)
		}

		return nil, nil
	})
}
