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

type CreateTaskInput struct {
	Body struct {
		ProjectID      uuid.UUID   `json:"projectId" doc:"Owning project ID"`
		Name           string      `json:"name" minLength:"1" maxLength:"255" doc:"Task name"`
		Description    string      `json:"description,omitempty" doc:"Task description"`
		Status         string      `json:"status,omitempty" enum:"TODO,IN_PROGRESS,DONE" doc:"Initial status"`
		Priority       string      `json:"priority,omitempty" enum:"LOW,MEDIUM,HIGH" doc:"Priority"`
		DueDate        *time.Time  `json:"dueDate,omitempty" doc:"Due date"`
		EstimatedHours *int        `json:"estimatedHours,omitempty" minimum:"0" doc:"Estimated hours"`
		AssigneeIDs    []uuid.UUID `json:"assigneeIds,omitempty" doc:"Assignee researcher IDs"`
	}
}

type CreateTaskOutput struct {
	Body struct {
		Data  *TaskResponse `json:"data,omitempty"`
		Error string        `json:"error,omitempty"`
	}
}

type ListTasksInput struct {
	ProjectID  uuid.UUID `query:"projectId" doc:"Filter by owning project"`
	AssigneeID uuid.UUID `query:"assigneeId" doc:"Filter by assignee"`
	Overdue    bool      `query:"overdue" doc:"Only tasks past due and not done"`
}

type ListTasksOutput struct {
	Body []*TaskResponse
}

type GetTaskInput struct {
	ID uuid.UUID `path:"id" doc:"Task ID"`
}

type GetTaskOutput struct {
	Body *TaskResponse
}

type UpdateTaskInput struct {
	ID   uuid.UUID `path:"id" doc:"Task ID"`
	Body struct {
		Name           *string     `json:"name,omitempty" maxLength:"255" doc:"Task name"`
		Description    *string     `json:"description,omitempty" doc:"Task description"`
		Status         *string     `json:"status,omitempty" enum:"TODO,IN_PROGRESS,DONE" doc:"Status"`
		Priority       *string     `json:"priority,omitempty" enum:"LOW,MEDIUM,HIGH" doc:"Priority"`
		DueDate        *time.Time  `json:"dueDate,omitempty" doc:"Due date"`
		EstimatedHours *int        `json:"estimatedHours,omitempty" minimum:"0" doc:"Estimated hours"`
		AssigneeIDs    []uuid.UUID `json:"assigneeIds,omitempty" doc:"Assignee researcher IDs, replaces the set when present"`
	}
}

type UpdateTaskOutput struct {
	Body struct {
		Data  *TaskResponse `json:"data,omitempty"`
		Error string        `json:"error,omitempty"`
	}
}

type DeleteTaskInput struct {
	ID uuid.UUID `path:"id" doc:"Task ID"`
}

type DeleteTaskOutput struct {
	Body struct {
		Error string `json:"error,omitempty"`
	}
}

type RequestJoinInput struct {
	ID uuid.UUID `path:"id" doc:"Task ID"`
}

type RequestJoinOutput struct {
	Body struct {
		Error string `json:"error,omitempty"`
	}
}

func taskStatusPtr(s *string) *domain.TaskStatus {
	if s == nil {
		return nil
	}
	v := domain.TaskStatus(*s)
	return &v
}

func RegisterTaskRoutes(api huma.API, tasks TaskOrchestrator, comments *service.CommentService, identity IdentityResolver) {
	huma.Register(api, huma.Operation{
		OperationID: "create-task",
		Method:      http.MethodPost,
		Path:        "/tasks",
		Summary:     "Create a task and record it on the owning project",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *CreateTaskInput) (*CreateTaskOutput, error) {
		actor, err := resolveActor(ctx, identity)
		if err != nil {
			if errors.Is(err, domain.ErrNoProfile) {
				out := &CreateTaskOutput{}
				out.Body.Error = msgNoProfile
				return out, nil
			}
			return nil, huma.Error500InternalServerError("failed to resolve researcher", err)
		}

		var status *domain.TaskStatus
		if input.Body.Status != "" {
			s := domain.TaskStatus(input.Body.Status)
			status = &s
		}
		var priority *domain.Priority
		if input.Body.Priority != "" {
			p := domain.Priority(input.Body.Priority)
			priority = &p
		}

		t, err := tasks.Create(ctx, actor.ID, service.TaskCreate{
			ProjectID:      input.Body.ProjectID,
			Name:           input.Body.Name,
			Description:    input.Body.Description,
			Status:         status,
			Priority:       priority,
			DueDate:        input.Body.DueDate,
			EstimatedHours: input.Body.EstimatedHours,
			AssigneeIDs:    input.Body.AssigneeIDs,
		})
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("project not found")
			}
			return nil, huma.Error400BadRequest(err.Error())
		}

		out := &CreateTaskOutput{}
		out.Body.Data = newTaskResponse(t)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-tasks",
		Method:      http.MethodGet,
		Path:        "/tasks",
		Summary:     "List tasks",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *ListTasksInput) (*ListTasksOutput, error) {
		var (
			ts  []*domain.Task
			err error
		)
		switch {
		case input.Overdue:
			ts, err = tasks.ListOverdue(ctx)
		case input.ProjectID != uuid.Nil:
			ts, err = tasks.ListByProject(ctx, input.ProjectID)
		case input.AssigneeID != uuid.Nil:
			ts, err = tasks.ListByAssignee(ctx, input.AssigneeID)
		default:
			ts, err = tasks.List(ctx)
		}
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list tasks", err)
		}

		return &ListTasksOutput{Body: newTaskResponses(ts)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-task",
		Method:      http.MethodGet,
		Path:        "/tasks/{id}",
		Summary:     "Get a task by ID",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *GetTaskInput) (*GetTaskOutput, error) {
		t, err := tasks.Get(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("task not found")
			}
			return nil, huma.Error500InternalServerError("failed to get task", err)
		}

		return &GetTaskOutput{Body: newTaskResponse(t)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-task",
		Method:      http.MethodPut,
		Path:        "/tasks/{id}",
		Summary:     "Update a task and record the change",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *UpdateTaskInput) (*UpdateTaskOutput, error) {
		actor, err := resolveActor(ctx, identity)
		if err != nil {
			if errors.Is(err, domain.ErrNoProfile) {
				out := &UpdateTaskOutput{}
				out.Body.Error = msgNoProfile
				return out, nil
			}
			return nil, huma.Error500InternalServerError("failed to resolve researcher", err)
		}

		t, err := tasks.Update(ctx, actor.ID, input.ID, service.TaskUpdate{
			Name:           input.Body.Name,
			Description:    input.Body.Description,
			Status:         taskStatusPtr(input.Body.Status),
			Priority:       priorityPtr(input.Body.Priority),
			DueDate:        input.Body.DueDate,
			EstimatedHours: input.Body.EstimatedHours,
			AssigneeIDs:    input.Body.AssigneeIDs,
		})
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("task not found")
			}
			return nil, huma.Error400BadRequest(err.Error())
		}

		out := &UpdateTaskOutput{}
		out.Body.Data = newTaskResponse(t)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-task",
		Method:      http.MethodDelete,
		Path:        "/tasks/{id}",
		Summary:     "Delete a task and record the deletion",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *DeleteTaskInput) (*DeleteTaskOutput, error) {
		actor, err := resolveActor(ctx, identity)
		if err != nil {
			if errors.Is(err, domain.ErrNoProfile) {
				out := &DeleteTaskOutput{}
				out.Body.Error = msgNoProfile
				return out, nil
			}
			return nil, huma.Error500InternalServerError("failed to resolve researcher", err)
		}

		if err := tasks.Delete(ctx, actor.ID, input.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("task not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete task", err)
		}

		return &DeleteTaskOutput{}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "request-join-task",
		Method:      http.MethodPost,
		Path:        "/tasks/{id}/request-join",
		Summary:     "Join a task as an assignee",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *RequestJoinInput) (*RequestJoinOutput, error) {
		actor, err := resolveActor(ctx, identity)
		if err != nil {
			if errors.Is(err, domain.ErrNoProfile) {
				out := &RequestJoinOutput{}
				out.Body.Error = msgNoProfile
				return out, nil
			}
			return nil, huma.Error500InternalServerError("failed to resolve researcher", err)
		}

		if err := tasks.RequestJoin(ctx, input.ID, actor.ID); err != nil {
			if errors.Is(err, domain.ErrAlreadyAssigned) {
				return nil, huma.Error409Conflict("already assigned to this task")
			}
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("task not found")
			}
			return nil, huma.Error500InternalServerError("failed to join task", err)
		}

		return &RequestJoinOutput{}, nil
	})

	registerTaskCommentRoutes(api, comments, identity)
}

type CreateTaskCommentInput struct {
	ID   uuid.UUID `path:"id" doc:"Task ID"`
	Body struct {
		Content string `json:"content" minLength:"1" doc:"Comment body"`
	}
}

type CreateTaskCommentOutput struct {
	Body struct {
		Data  *CommentResponse `json:"data,omitempty"`
		Error string           `json:"error,omitempty"`
	}
}

type ListTaskCommentsInput struct {
	ID uuid.UUID `path:"id" doc:"Task ID"`
}

type ListTaskCommentsOutput struct {
	Body []*CommentResponse
}

type UpdateCommentInput struct {
	ID   uuid.UUID `path:"id" doc:"Comment ID"`
	Body struct {
		Content string `json:"content" minLength:"1" doc:"Comment body"`
	}
}

type UpdateCommentOutput struct {
	Body struct {
		Data  *CommentResponse `json:"data,omitempty"`
		Error string           `json:"error,omitempty"`
	}
}

type DeleteCommentInput struct {
	ID uuid.UUID `path:"id" doc:"Comment ID"`
}

type DeleteCommentOutput struct {
	Body struct {
		Error string `json:"error,omitempty"`
	}
}

func registerTaskCommentRoutes(api huma.API, comments *service.CommentService, identity IdentityResolver) {
	huma.Register(api, huma.Operation{
		OperationID: "create-task-comment",
		Method:      http.MethodPost,
		Path:        "/tasks/{id}/comments",
		Summary:     "Comment on a task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *CreateTaskCommentInput) (*CreateTaskCommentOutput, error) {
		actor, err := resolveActor(ctx, identity)
		if err != nil {
			if errors.Is(err, domain.ErrNoProfile) {
				out := &CreateTaskCommentOutput{}
				out.Body.Error = msgNoProfile
				return out, nil
			}
			return nil, huma.Error500InternalServerError("failed to resolve researcher", err)
		}

		c, err := comments.Create(ctx, actor.ID, input.ID, input.Body.Content)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("task not found")
			}
			return nil, huma.Error400BadRequest(err.Error())
		}

		out := &CreateTaskCommentOutput{}
		out.Body.Data = newCommentResponse(c)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-task-comments",
		Method:      http.MethodGet,
		Path:        "/tasks/{id}/comments",
		Summary:     "List comments on a task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *ListTaskCommentsInput) (*ListTaskCommentsOutput, error) {
		cs, err := comments.ListByTask(ctx, input.ID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list comments", err)
		}

		return &ListTaskCommentsOutput{Body: newCommentResponses(cs)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-comment",
		Method:      http.MethodPut,
		Path:        "/comments/{id}",
		Summary:     "Edit an own comment",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *UpdateCommentInput) (*UpdateCommentOutput, error) {
		actor, err := resolveActor(ctx, identity)
		if err != nil {
			if errors.Is(err, domain.ErrNoProfile) {
				out := &UpdateCommentOutput{}
				out.Body.Error = msgNoProfile
				return out, nil
			}
			return nil, huma.Error500InternalServerError("failed to resolve researcher", err)
		}

		c, err := comments.Update(ctx, actor.ID, isAdminCtx(ctx), input.ID, input.Body.Content)
		if err != nil {
			if errors.Is(err, domain.ErrForbidden) {
				return nil, huma.Error403Forbidden("only the author or an admin may edit this comment")
			}
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("comment not found")
			}
			return nil, huma.Error500InternalServerError("failed to update comment", err)
		}

		out := &UpdateCommentOutput{}
		out.Body.Data = newCommentResponse(c)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-comment",
		Method:      http.MethodDelete,
		Path:        "/comments/{id}",
		Summary:     "Delete an own comment",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *DeleteCommentInput) (*DeleteCommentOutput, error) {
		actor, err := resolveActor(ctx, identity)
		if err != nil {
			if errors.Is(err, domain.ErrNoProfile) {
				out := &DeleteCommentOutput{}
				out.Body.Error = msgNoProfile
				return out, nil
			}
			return nil, huma.Error500InternalServerError("failed to resolve researcher", err)
		}

		if err := comments.Delete(ctx, actor.ID, isAdminCtx(ctx), input.ID); err != nil {
			if errors.Is(err, domain.ErrForbidden) {
				return nil, huma.Error403Forbidden("only the author or an admin may delete this comment")
			}
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("comment not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete comment", err)
		}

		return &DeleteCommentOutput{}, nil
	})
}
