package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/kyulab/labms/internal/domain"
	"github.com/kyulab/labms/internal/service"
)

type CreateNoticeInput struct {
	Body struct {
		Title          string `json:"title" minLength:"1" maxLength:"255" doc:"Notice title"`
		Content        string `json:"content" minLength:"1" doc:"Notice body"`
		Public         *bool  `json:"public,omitempty" doc:"Visible without login"`
		ImageURL       string `json:"imageUrl,omitempty" doc:"Inline image URL"`
		AttachmentURL  string `json:"attachmentUrl,omitempty" doc:"Attachment URL"`
		AttachmentName string `json:"attachmentName,omitempty" doc:"Attachment display name"`
	}
}

type CreateNoticeOutput struct {
	Body struct {
		Data  *NoticeResponse `json:"data,omitempty"`
		Error string          `json:"error,omitempty"`
	}
}

type ListNoticesOutput struct {
	Body []*NoticeResponse
}

type GetNoticeInput struct {
	ID uuid.UUID `path:"id" doc:"Notice ID"`
}

type GetNoticeOutput struct {
	Body *NoticeResponse
}

type UpdateNoticeInput struct {
	ID   uuid.UUID `path:"id" doc:"Notice ID"`
	Body struct {
		Title          *string `json:"title,omitempty" maxLength:"255" doc:"Notice title"`
		Content        *string `json:"content,omitempty" doc:"Notice body"`
		Public         *bool   `json:"public,omitempty" doc:"Visible without login"`
		ImageURL       *string `json:"imageUrl,omitempty" doc:"Inline image URL"`
		AttachmentURL  *string `json:"attachmentUrl,omitempty" doc:"Attachment URL"`
		AttachmentName *string `json:"attachmentName,omitempty" doc:"Attachment display name"`
	}
}

type UpdateNoticeOutput struct {
	Body struct {
		Data  *NoticeResponse `json:"data,omitempty"`
		Error string          `json:"error,omitempty"`
	}
}

type DeleteNoticeInput struct {
	ID uuid.UUID `path:"id" doc:"Notice ID"`
}

type DeleteNoticeOutput struct {
	Body struct {
		Error string `json:"error,omitempty"`
	}
}

func RegisterNoticeRoutes(api huma.API, notices *service.NoticeService, identity IdentityResolver) {
	huma.Register(api, huma.Operation{
		OperationID: "create-notice",
		Method:      http.MethodPost,
		Path:        "/notices",
		Summary:     "Create a notice",
		Tags:        []string{"Notices"},
	}, func(ctx context.Context, input *CreateNoticeInput) (*CreateNoticeOutput, error) {
		actor, err := resolveActor(ctx, identity)
		if err != nil {
			if errors.Is(err, domain.ErrNoProfile) {
				out := &CreateNoticeOutput{}
				out.Body.Error = msgNoProfile
				return out, nil
			}
			return nil, huma.Error500InternalServerError("failed to resolve researcher", err)
		}

		n, err := notices.Create(ctx, actor.ID, service.NoticeCreate{
			Title:          input.Body.Title,
			Content:        input.Body.Content,
			Public:         input.Body.Public,
			ImageURL:       input.Body.ImageURL,
			AttachmentURL:  input.Body.AttachmentURL,
			AttachmentName: input.Body.AttachmentName,
		})
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}

		out := &CreateNoticeOutput{}
		out.Body.Data = newNoticeResponse(n)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-notices",
		Method:      http.MethodGet,
		Path:        "/notices",
		Summary:     "List all notices",
		Tags:        []string{"Notices"},
	}, func(ctx context.Context, _ *struct{}) (*ListNoticesOutput, error) {
		ns, err := notices.List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list notices", err)
		}

		return &ListNoticesOutput{Body: newNoticeResponses(ns)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-notice",
		Method:      http.MethodGet,
		Path:        "/notices/{id}",
		Summary:     "Get a notice by ID",
		Tags:        []string{"Notices"},
	}, func(ctx context.Context, input *GetNoticeInput) (*GetNoticeOutput, error) {
		n, err := notices.Get(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("notice not found")
			}
			return nil, huma.Error500InternalServerError("failed to get notice", err)
		}

		return &GetNoticeOutput{Body: newNoticeResponse(n)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-notice",
		Method:      http.MethodPut,
		Path:        "/notices/{id}",
		Summary:     "Update an own notice",
		Tags:        []string{"Notices"},
	}, func(ctx context.Context, input *UpdateNoticeInput) (*UpdateNoticeOutput, error) {
		actor, err := resolveActor(ctx, identity)
		if err != nil {
			if errors.Is(err, domain.ErrNoProfile) {
				out := &UpdateNoticeOutput{}
				out.Body.Error = msgNoProfile
				return out, nil
			}
			return nil, huma.Error500InternalServerError("failed to resolve researcher", err)
		}

		n, err := notices.Update(ctx, actor.ID, isAdminCtx(ctx), input.ID, service.NoticeUpdate{
			Title:          input.Body.Title,
			Content:        input.Body.Content,
			Public:         input.Body.Public,
			ImageURL:       input.Body.ImageURL,
			AttachmentURL:  input.Body.AttachmentURL,
			AttachmentName: input.Body.AttachmentName,
		})
		if err != nil {
			if errors.Is(err, domain.ErrForbidden) {
				return nil, huma.Error403Forbidden("only the author or an admin may edit this notice")
			}
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("notice not found")
			}
			return nil, huma.Error500InternalServerError("failed to update notice", err)
		}

		out := &UpdateNoticeOutput{}
		out.Body.Data = newNoticeResponse(n)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-notice",
		Method:      http.MethodDelete,
		Path:        "/notices/{id}",
		Summary:     "Delete an own notice",
		Tags:        []string{"Notices"},
	}, func(ctx context.Context, input *DeleteNoticeInput) (*DeleteNoticeOutput, error) {
		actor, err := resolveActor(ctx, identity)
		if err != nil {
			if errors.Is(err, domain.ErrNoProfile) {
				out := &DeleteNoticeOutput{}
				out.Body.Error = msgNoProfile
				return out, nil
			}
			return nil, huma.Error500InternalServerError("failed to resolve researcher", err)
		}

		if err := notices.Delete(ctx, actor.ID, isAdminCtx(ctx), input.ID); err != nil {
			if errors.Is(err, domain.ErrForbidden) {
				return nil, huma.Error403Forbidden("only the author or an admin may delete this notice")
			}
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("notice not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete notice", err)
		}

		return &DeleteNoticeOutput{}, nil
	})
}

// RegisterPublicNoticeRoutes exposes the unauthenticated, cached notice
// listing.
func RegisterPublicNoticeRoutes(api huma.API, notices *service.NoticeService) {
	huma.Register(api, huma.Operation{
		OperationID: "list-public-notices",
		Method:      http.MethodGet,
		Path:        "/public/notices",
		Summary:     "List public notices",
		Tags:        []string{"Public"},
	}, func(ctx context.Context, _ *struct{}) (*ListNoticesOutput, error) {
		ns, err := notices.ListPublic(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list public notices", err)
		}

		return &ListNoticesOutput{Body: newNoticeResponses(ns)}, nil
	})
}
