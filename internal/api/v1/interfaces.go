package v1

import (
	"context"

	"github.com/google/uuid"

	"github.com/kyulab/labms/internal/domain"
	"github.com/kyulab/labms/internal/service"
)

// DataStore abstracts the repository accessor pattern for handler testing.
// *postgres.Store satisfies this interface.
type DataStore interface {
	Users() domain.UserRepository
	Researchers() domain.ResearcherRepository
	Projects() domain.ProjectRepository
	Tasks() domain.TaskRepository
	Boards() domain.BoardRepository
	BoardComments() domain.BoardCommentRepository
	Notices() domain.NoticeRepository
	Comments() domain.CommentRepository
	Histories() domain.ProjectHistoryRepository
	Seminars() domain.SeminarRepository
	LabInfo() domain.LabInfoRepository
	ResearchAreas() domain.ResearchAreaRepository
}

// AuthService abstracts authentication operations for handler testing.
// *auth.Service satisfies this interface.
type AuthService interface {
	Register(ctx context.Context, username, password, role string, researcherID *uuid.UUID) (*domain.User, error)
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, err error)
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error
}

// IdentityResolver maps a login to its researcher profile. *service.Identity
// satisfies this interface.
type IdentityResolver interface {
	Resolve(ctx context.Context, username string) (*domain.Researcher, error)
}

// ProjectOrchestrator abstracts the audited project mutations for handler
// testing. *service.ProjectService satisfies this interface.
type ProjectOrchestrator interface {
	Create(ctx context.Context, in service.ProjectCreate) (*domain.Project, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	ListByStatus(ctx context.Context, status domain.ProjectStatus) ([]*domain.Project, error)
	ListByResearcher(ctx context.Context, researcherID uuid.UUID) ([]*domain.Project, error)
	Update(ctx context.Context, actorID, id uuid.UUID, in service.ProjectUpdate) (*domain.Project, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
	History(ctx context.Context, projectID uuid.UUID, limit int) ([]*domain.ProjectHistory, error)
}

// TaskOrchestrator abstracts the audited task mutations for handler testing.
// *service.TaskService satisfies this interface.
type TaskOrchestrator interface {
	Create(ctx context.Context, actorID uuid.UUID, in service.TaskCreate) (*domain.Task, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error)
	ListByAssignee(ctx context.Context, researcherID uuid.UUID) ([]*domain.Task, error)
	ListOverdue(ctx context.Context) ([]*domain.Task, error)
	Update(ctx context.Context, actorID, id uuid.UUID, in service.TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
	RequestJoin(ctx context.Context, taskID, researcherID uuid.UUID) error
}
