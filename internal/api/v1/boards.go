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

type CreateBoardInput struct {
	Body struct {
		Title          string `json:"title" minLength:"1" maxLength:"255" doc:"Post title"`
		Content        string `json:"content" minLength:"1" doc:"Post body"`
		Public         *bool  `json:"public,omitempty" doc:"Visible without login"`
		ImageURL       string `json:"imageUrl,omitempty" doc:"Inline image URL"`
		AttachmentURL  string `json:"attachmentUrl,omitempty" doc:"Attachment URL"`
		AttachmentName string `json:"attachmentName,omitempty" doc:"Attachment display name"`
	}
}

type CreateBoardOutput struct {
	Body struct {
		Data  *BoardResponse `json:"data,omitempty"`
		Error string         `json:"error,omitempty"`
	}
}

type ListBoardsInput struct {
	Keyword string `query:"keyword" doc:"Search title and content"`
}

type ListBoardsOutput struct {
	Body []*BoardResponse
}

type GetBoardInput struct {
	ID uuid.UUID `path:"id" doc:"Board post ID"`
}

type GetBoardOutput struct {
	Body *BoardResponse
}

type UpdateBoardInput struct {
	ID   uuid.UUID `path:"id" doc:"Board post ID"`
	Body struct {
		Title          *string `json:"title,omitempty" maxLength:"255" doc:"Post title"`
		Content        *string `json:"content,omitempty" doc:"Post body"`
		Public         *bool   `json:"public,omitempty" doc:"Visible without login"`
		ImageURL       *string `json:"imageUrl,omitempty" doc:"Inline image URL"`
		AttachmentURL  *string `json:"attachmentUrl,omitempty" doc:"Attachment URL"`
		AttachmentName *string `json:"attachmentName,omitempty" doc:"Attachment display name"`
	}
}

type UpdateBoardOutput struct {
	Body struct {
		Data  *BoardResponse `json:"data,omitempty"`
		Error string         `json:"error,omitempty"`
	}
}

type DeleteBoardInput struct {
	ID uuid.UUID `path:"id" doc:"Board post ID"`
}

type DeleteBoardOutput struct {
	Body struct {
		Error string `json:"error,omitempty"`
	}
}

func RegisterBoardRoutes(api huma.API, boards *service.BoardService, identity IdentityResolver) {
	huma.Register(api, huma.Operation{
		OperationID: "create-board",
		Method:      http.MethodPost,
		Path:        "/boards",
		Summary:     "Create a board post",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *CreateBoardInput) (*CreateBoardOutput, error) {
		actor, err := resolveActor(ctx, identity)
		if err != nil {
			if errors.Is(err, domain.ErrNoProfile) {
				out := &CreateBoardOutput{}
				out.Body.Error = msgNoProfile
				return out, nil
			}
			return nil, huma.Error500InternalServerError("failed to resolve researcher", err)
		}

		b, err := boards.Create(ctx, actor.ID, service.BoardCreate{
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

		out := &CreateBoardOutput{}
		out.Body.Data = newBoardResponse(b)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-boards",
		Method:      http.MethodGet,
		Path:        "/boards",
		Summary:     "List board posts, optionally filtered by keyword",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *ListBoardsInput) (*ListBoardsOutput, error) {
		var (
			bs  []*domain.Board
			err error
		)
		if input.Keyword != "" {
			bs, err = boards.Search(ctx, input.Keyword)
		} else {
			bs, err = boards.List(ctx)
		}
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list board posts", err)
		}

		return &ListBoardsOutput{Body: newBoardResponses(bs)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-board",
		Method:      http.MethodGet,
		Path:        "/boards/{id}",
		Summary:     "Get a board post and bump its view count",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *GetBoardInput) (*GetBoardOutput, error) {
		b, err := boards.Get(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("board post not found")
			}
			return nil, huma.Error500InternalServerError("failed to get board post", err)
		}

		return &GetBoardOutput{Body: newBoardResponse(b)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-board",
		Method:      http.MethodPut,
		Path:        "/boards/{id}",
		Summary:     "Update an own board post",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *UpdateBoardInput) (*UpdateBoardOutput, error) {
		actor, err := resolveActor(ctx, identity)
		if err != nil {
			if errors.Is(err, domain.ErrNoProfile) {
				out := &UpdateBoardOutput{}
				out.Body.Error = msgNoProfile
				return out, nil
			}
			return nil, huma.Error500InternalServerError("failed to resolve researcher", err)
		}

		b, err := boards.Update(ctx, actor.ID, isAdminCtx(ctx), input.ID, service.BoardUpdate{
			Title:          input.Body.Title,
			Content:        input.Body.Content,
			Public:         input.Body.Public,
			ImageURL:       input.Body.ImageURL,
			AttachmentURL:  input.Body.AttachmentURL,
			AttachmentName: input.Body.AttachmentName,
		})
		if err != nil {
			if errors.Is(err, domain.ErrForbidden) {
				return nil, huma.Error403Forbidden("only the author or an admin may edit this post")
			}
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("board post not found")
			}
			return nil, huma.Error500InternalServerError("failed to update board post", err)
		}

		out := &UpdateBoardOutput{}
		out.Body.Data = newBoardResponse(b)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-board",
		Method:      http.MethodDelete,
		Path:        "/boards/{id}",
		Summary:     "Delete an own board post and its comments",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *DeleteBoardInput) (*DeleteBoardOutput, error) {
		actor, err := resolveActor(ctx, identity)
		if err != nil {
			if errors.Is(err, domain.ErrNoProfile) {
				out := &DeleteBoardOutput{}
				out.Body.Error = msgNoProfile
				return out, nil
			}
			return nil, huma.Error500InternalServerError("failed to resolve researcher", err)
		}

		if err := boards.Delete(ctx, actor.ID, isAdminCtx(ctx), input.ID); err != nil {
			if errors.Is(err, domain.ErrForbidden) {
				return nil, huma.Error403Forbidden("only the author or an admin may delete this post")
			}
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("board post not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete board post", err)
		}

		return &DeleteBoardOutput{}, nil
	})

	registerBoardCommentRoutes(api, boards, identity)
}

// RegisterPublicBoardRoutes exposes the unauthenticated board listing.
func RegisterPublicBoardRoutes(api huma.API, boards *service.BoardService) {
	huma.Register(api, huma.Operation{
		OperationID: "list-public-boards",
		Method:      http.MethodGet,
		Path:        "/public/boards",
		Summary:     "List public board posts",
		Tags:        []string{"Public"},
	}, func(ctx context.Context, _ *struct{}) (*ListBoardsOutput, error) {
		bs, err := boards.ListPublic(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list public board posts", err)
		}

		return &ListBoardsOutput{Body: newBoardResponses(bs)}, nil
	})
}

type CreateBoardCommentInput struct {
	ID   uuid.UUID `path:"id" doc:"Board post ID"`
	Body struct {
		Content string `json:"content" minLength:"1" doc:"Comment body"`
	}
}

type CreateBoardCommentOutput struct {
	Body struct {
		Data  *BoardCommentResponse `json:"data,omitempty"`
		Error string                `json:"error,omitempty"`
	}
}

type ListBoardCommentsInput struct {
	ID uuid.UUID `path:"id" doc:"Board post ID"`
}

type ListBoardCommentsOutput struct {
	Body []*BoardCommentResponse
}

type UpdateBoardCommentInput struct {
	ID   uuid.UUID `path:"id" doc:"Board comment ID"`
	Body struct {
		Content string `json:"content" minLength:"1" doc:"Comment body"`
	}
}

type UpdateBoardCommentOutput struct {
	Body struct {
		Data  *BoardCommentResponse `json:"data,omitempty"`
		Error string                `json:"error,omitempty"`
	}
}

type DeleteBoardCommentInput struct {
	ID uuid.UUID `path:"id" doc:"Board comment ID"`
}

type DeleteBoardCommentOutput struct {
	Body struct {
		Error string `json:"error,omitempty"`
	}
}

func registerBoardCommentRoutes(api huma.API, boards *service.BoardService, identity IdentityResolver) {
	huma.Register(api, huma.Operation{
		OperationID: "create-board-comment",
		Method:      http.MethodPost,
		Path:        "/boards/{id}/comments",
		Summary:     "Comment on a board post",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *CreateBoardCommentInput) (*CreateBoardCommentOutput, error) {
		actor, err := resolveActor(ctx, identity)
		if err != nil {
			if errors.Is(err, domain.ErrNoProfile) {
				out := &CreateBoardCommentOutput{}
				out.Body.Error = msgNoProfile
				return out, nil
			}
			return nil, huma.Error500InternalServerError("failed to resolve researcher", err)
		}

		c, err := boards.CreateComment(ctx, actor.ID, input.ID, input.Body.Content)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("board post not found")
			}
			return nil, huma.Error400BadRequest(err.Error())
		}

		out := &CreateBoardCommentOutput{}
		out.Body.Data = newBoardCommentResponse(c)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-board-comments",
		Method:      http.MethodGet,
		Path:        "/boards/{id}/comments",
		Summary:     "List comments on a board post",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *ListBoardCommentsInput) (*ListBoardCommentsOutput, error) {
		cs, err := boards.ListComments(ctx, input.ID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list comments", err)
		}

		return &ListBoardCommentsOutput{Body: newBoardCommentResponses(cs)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-board-comment",
		Method:      http.MethodPut,
		Path:        "/board-comments/{id}",
		Summary:     "Edit an own board comment",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *UpdateBoardCommentInput) (*UpdateBoardCommentOutput, error) {
		actor, err := resolveActor(ctx, identity)
		if err != nil {
			if errors.Is(err, domain.ErrNoProfile) {
				out := &UpdateBoardCommentOutput{}
				out.Body.Error = msgNoProfile
				return out, nil
			}
			return nil, huma.Error500InternalServerError("failed to resolve researcher", err)
		}

		c, err := boards.UpdateComment(ctx, actor.ID, isAdminCtx(ctx), input.ID, input.Body.Content)
		if err != nil {
			if errors.Is(err, domain.ErrForbidden) {
				return nil, huma.Error403Forbidden("only the author or an admin may edit this comment")
			}
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("comment not found")
			}
			return nil, huma.Error500InternalServerError("failed to update comment", err)
		}

		out := &UpdateBoardCommentOutput{}
		out.Body.Data = newBoardCommentResponse(c)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-board-comment",
		Method:      http.MethodDelete,
		Path:        "/board-comments/{id}",
		Summary:     "Delete an own board comment",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *DeleteBoardCommentInput) (*DeleteBoardCommentOutput, error) {
		actor, err := resolveActor(ctx, identity)
		if err != nil {
			if errors.Is(err, domain.ErrNoProfile) {
				out := &DeleteBoardCommentOutput{}
				out.Body.Error = msgNoProfile
				return out, nil
			}
			return nil, huma.Error500InternalServerError("failed to resolve researcher", err)
		}

		if err := boards.DeleteComment(ctx, actor.ID, isAdminCtx(ctx), input.ID); err != nil {
			if errors.Is(err, domain.ErrForbidden) {
				return nil, huma.Error403Forbidden("only the author or an admin may delete this comment")
			}
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("comment not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete comment", err)
		}

		return &DeleteBoardCommentOutput{}, nil
	})
}
