package v1

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/kyulab/labms/internal/domain"
	"github.com/kyulab/labms/internal/server/middleware"
)

// msgNoProfile is returned with HTTP 200 when an authenticated account has
// no linked researcher profile. It is expected control flow, not a failure,
// so it is never rendered as an HTTP error.
const msgNoProfile = "No researcher profile associated with this user"

// resolveActor maps the authenticated login to its researcher profile. The
// caller is responsible for translating domain.ErrNoProfile into the benign
// payload and everything else into an HTTP error.
func resolveActor(ctx context.Context, identity IdentityResolver) (*domain.Researcher, error) {
	username, ok := middleware.UsernameFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("missing authentication context")
	}
	return identity.Resolve(ctx, username)
}

// isAdminCtx reports whether the request carries the admin role.
func isAdminCtx(ctx context.Context) bool {
	return middleware.IsAdmin(ctx)
}

// ---------------------------------------------------------------------------
// Response DTOs. Wire field names are fixed; domain structs stay tag-free.
// ---------------------------------------------------------------------------

type ResearcherResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	StudentID     string    `json:"studentId"`
	Grade         string    `json:"grade"`
	AdmissionYear *int      `json:"admissionYear,omitempty"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Status        string    `json:"status"`
	JoinDate      time.Time `json:"joinDate"`
	ResearchAreas []string  `json:"researchAreas,omitempty"`
	PhotoURL      string    `json:"photoUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func newResearcherResponse(r *domain.Researcher) *ResearcherResponse {
	return &ResearcherResponse{
		ID:            r.ID,
		Name:          r.Name,
		StudentID:     r.StudentID,
		Grade:         string(r.Grade),
		AdmissionYear: r.AdmissionYear,
		Email:         r.Email,
		Phone:         r.Phone,
		Status:        string(r.Status),
		JoinDate:      r.JoinDate,
		ResearchAreas: r.ResearchAreas,
		PhotoURL:      r.PhotoURL,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func newResearcherResponses(rs []*domain.Researcher) []*ResearcherResponse {
	out := make([]*ResearcherResponse, len(rs))
	for i, r := range rs {
		out[i] = newResearcherResponse(r)
	}
	return out
}

type ProjectResponse struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description,omitempty"`
	Status        string      `json:"status"`
	Priority      string      `json:"priority"`
	Progress      int         `json:"progress"`
	StartDate     time.Time   `json:"startDate"`
	EndDate       *time.Time  `json:"endDate,omitempty"`
	Budget        *int64      `json:"budget,omitempty"`
	Public        bool        `json:"public"`
	Categories    []string    `json:"categories,omitempty"`
	ResearcherIDs []uuid.UUID `json:"researcherIds,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

func newProjectResponse(p *domain.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Status:        string(p.Status),
		Priority:      string(p.Priority),
		Progress:      p.Progress,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		Budget:        p.Budget,
		Public:        p.Public,
		Categories:    p.Categories,
		ResearcherIDs: p.ResearcherIDs,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func newProjectResponses(ps []*domain.Project) []*ProjectResponse {
	out := make([]*ProjectResponse, len(ps))
	for i, p := range ps {
		out[i] = newProjectResponse(p)
	}
	return out
}

type TaskResponse struct {
	ID             uuid.UUID   `json:"id"`
	ProjectID      uuid.UUID   `json:"projectId"`
	Name           string      `json:"name"`
	Description    string      `json:"description,omitempty"`
	Status         string      `json:"status"`
	Priority       string      `json:"priority"`
	DueDate        *time.Time  `json:"dueDate,omitempty"`
	EstimatedHours *int        `json:"estimatedHours,omitempty"`
	AssigneeIDs    []uuid.UUID `json:"assigneeIds,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

func newTaskResponse(t *domain.Task) *TaskResponse {
	return &TaskResponse{
		ID:             t.ID,
		ProjectID:      t.ProjectID,
		Name:           t.Name,
		Description:    t.Description,
		Status:         string(t.Status),
		Priority:       string(t.Priority),
		DueDate:        t.DueDate,
		EstimatedHours: t.EstimatedHours,
		AssigneeIDs:    t.AssigneeIDs,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func newTaskResponses(ts []*domain.Task) []*TaskResponse {
	out := make([]*TaskResponse, len(ts))
	for i, t := range ts {
		out[i] = newTaskResponse(t)
	}
	return out
}

type HistoryResponse struct {
	ID           uuid.UUID `json:"id"`
	ProjectID    uuid.UUID `json:"projectId"`
	ResearcherID uuid.UUID `json:"researcherId"`
	Action       string    `json:"action"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
}

func newHistoryResponses(hs []*domain.ProjectHistory) []*HistoryResponse {
	out := make([]*HistoryResponse, len(hs))
	for i, h := range hs {
		out[i] = &HistoryResponse{
			ID:           h.ID,
			ProjectID:    h.ProjectID,
			ResearcherID: h.ResearcherID,
			Action:       string(h.Action),
			Description:  h.Description,
			CreatedAt:    h.CreatedAt,
		}
	}
	return out
}

type BoardResponse struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Public         bool      `json:"public"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	AttachmentURL  string    `json:"attachmentUrl,omitempty"`
	AttachmentName string    `json:"attachmentName,omitempty"`
	AuthorID       uuid.UUID `json:"authorId"`
	ViewCount      int       `json:"viewCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func newBoardResponse(b *domain.Board) *BoardResponse {
	return &BoardResponse{
		ID:             b.ID,
		Title:          b.Title,
		Content:        b.Content,
		Public:         b.Public,
		ImageURL:       b.ImageURL,
		AttachmentURL:  b.AttachmentURL,
		AttachmentName: b.AttachmentName,
		AuthorID:       b.AuthorID,
		ViewCount:      b.ViewCount,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func newBoardResponses(bs []*domain.Board) []*BoardResponse {
	out := make([]*BoardResponse, len(bs))
	for i, b := range bs {
		out[i] = newBoardResponse(b)
	}
	return out
}

type NoticeResponse struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Public         bool      `json:"public"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	AttachmentURL  string    `json:"attachmentUrl,omitempty"`
	AttachmentName string    `json:"attachmentName,omitempty"`
	AuthorID       uuid.UUID `json:"authorId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func newNoticeResponse(n *domain.Notice) *NoticeResponse {
	return &NoticeResponse{
		ID:             n.ID,
		Title:          n.Title,
		Content:        n.Content,
		Public:         n.Public,
		ImageURL:       n.ImageURL,
		AttachmentURL:  n.AttachmentURL,
		AttachmentName: n.AttachmentName,
		AuthorID:       n.AuthorID,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
	}
}

func newNoticeResponses(ns []*domain.Notice) []*NoticeResponse {
	out := make([]*NoticeResponse, len(ns))
	for i, n := range ns {
		out[i] = newNoticeResponse(n)
	}
	return out
}

type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	TaskID    uuid.UUID `json:"taskId"`
	AuthorID  uuid.UUID `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newCommentResponse(c *domain.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        c.ID,
		TaskID:    c.TaskID,
		AuthorID:  c.AuthorID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func newCommentResponses(cs []*domain.Comment) []*CommentResponse {
	out := make([]*CommentResponse, len(cs))
	for i, c := range cs {
		out[i] = newCommentResponse(c)
	}
	return out
}

type BoardCommentResponse struct {
	ID        uuid.UUID `json:"id"`
	BoardID   uuid.UUID `json:"boardId"`
	AuthorID  uuid.UUID `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newBoardCommentResponse(c *domain.BoardComment) *BoardCommentResponse {
	return &BoardCommentResponse{
		ID:        c.ID,
		BoardID:   c.BoardID,
		AuthorID:  c.AuthorID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func newBoardCommentResponses(cs []*domain.BoardComment) []*BoardCommentResponse {
	out := make([]*BoardCommentResponse, len(cs))
	for i, c := range cs {
		out[i] = newBoardCommentResponse(c)
	}
	return out
}

type SeminarResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Presenter string    `json:"presenter"`
	Date      time.Time `json:"date"`
	Location  string    `json:"location,omitempty"`
	Abstract  string    `json:"abstract,omitempty"`
	Public    bool      `json:"public"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newSeminarResponse(s *domain.Seminar) *SeminarResponse {
	return &SeminarResponse{
		ID:        s.ID,
		Title:     s.Title,
		Presenter: s.Presenter,
		Date:      s.Date,
		Location:  s.Location,
		Abstract:  s.Abstract,
		Public:    s.Public,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func newSeminarResponses(ss []*domain.Seminar) []*SeminarResponse {
	out := make([]*SeminarResponse, len(ss))
	for i, s := range ss {
		out[i] = newSeminarResponse(s)
	}
	return out
}

type LabInfoResponse struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Professor   string    `json:"professor,omitempty"`
	Location    string    `json:"location,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Homepage    string    `json:"homepage,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newLabInfoResponse(info *domain.LabInfo) *LabInfoResponse {
	return &LabInfoResponse{
		Name:        info.Name,
		Description: info.Description,
		Professor:   info.Professor,
		Location:    info.Location,
		Email:       info.Email,
		Phone:       info.Phone,
		Homepage:    info.Homepage,
		UpdatedAt:   info.UpdatedAt,
	}
}

type ResearchAreaResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newResearchAreaResponses(as []*domain.ResearchArea) []*ResearchAreaResponse {
	out := make([]*ResearchAreaResponse, len(as))
	for i, a := range as {
		out[i] = &ResearchAreaResponse{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			CreatedAt:   a.CreatedAt,
		}
	}
	return out
}

type UserResponse struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Role         string     `json:"role"`
	ResearcherID *uuid.UUID `json:"researcherId,omitempty"`
	Enabled      bool       `json:"enabled"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func newUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Role:         u.Role,
		ResearcherID: u.ResearcherID,
		Enabled:      u.Enabled,
		CreatedAt:    u.CreatedAt,
	}
}
