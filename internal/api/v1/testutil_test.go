package v1_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/kyulab/labms/internal/domain"
	"github.com/kyulab/labms/internal/server/middleware"
	"github.com/kyulab/labms/internal/service"
)

// ---------------------------------------------------------------------------
// Context helpers: inject user/username/role into context for DoCtx
// ---------------------------------------------------------------------------

func userCtx(userID uuid.UUID, username string) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, middleware.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, middleware.ContextKeyUsername, username)
	ctx = context.WithValue(ctx, middleware.ContextKeyUserRole, middleware.RoleResearcher)
	return ctx
}

func adminCtx(userID uuid.UUID, username string) context.Context {
	ctx := userCtx(userID, username)
	return context.WithValue(ctx, middleware.ContextKeyUserRole, middleware.RoleAdmin)
}

// ---------------------------------------------------------------------------
// Mock IdentityResolver
// ---------------------------------------------------------------------------

type mockIdentity struct {
	resolveFunc func(ctx context.Context, username string) (*domain.Researcher, error)
}

func (m *mockIdentity) Resolve(ctx context.Context, username string) (*domain.Researcher, error) {
	return m.resolveFunc(ctx, username)
}

// identityOf returns a resolver that always yields the given researcher.
func identityOf(r *domain.Researcher) *mockIdentity {
	return &mockIdentity{
		resolveFunc: func(_ context.Context, _ string) (*domain.Researcher, error) {
			return r, nil
		},
	}
}

// identityErr returns a resolver that always fails with err.
func identityErr(err error) *mockIdentity {
	return &mockIdentity{
		resolveFunc: func(_ context.Context, _ string) (*domain.Researcher, error) {
			return nil, err
		},
	}
}

// ---------------------------------------------------------------------------
// Mock ProjectOrchestrator
// ---------------------------------------------------------------------------

type mockProjectOrchestrator struct {
	createFunc           func(ctx context.Context, in service.ProjectCreate) (*domain.Project, error)
	getFunc              func(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	listFunc             func(ctx context.Context) ([]*domain.Project, error)
	listByStatusFunc     func(ctx context.Context, status domain.ProjectStatus) ([]*domain.Project, error)
	listByResearcherFunc func(ctx context.Context, researcherID uuid.UUID) ([]*domain.Project, error)
	updateFunc           func(ctx context.Context, actorID, id uuid.UUID, in service.ProjectUpdate) (*domain.Project, error)
	deleteFunc           func(ctx context.Context, actorID, id uuid.UUID) error
	historyFunc          func(ctx context.Context, projectID uuid.UUID, limit int) ([]*domain.ProjectHistory, error)
}

func (m *mockProjectOrchestrator) Create(ctx context.Context, in service.ProjectCreate) (*domain.Project, error) {
	return m.createFunc(ctx, in)
}

func (m *mockProjectOrchestrator) Get(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return m.getFunc(ctx, id)
}

func (m *mockProjectOrchestrator) List(ctx context.Context) ([]*domain.Project, error) {
	return m.listFunc(ctx)
}

func (m *mockProjectOrchestrator) ListByStatus(ctx context.Context, status domain.ProjectStatus) ([]*domain.Project, error) {
	return m.listByStatusFunc(ctx, status)
}

func (m *mockProjectOrchestrator) ListByResearcher(ctx context.Context, researcherID uuid.UUID) ([]*domain.Project, error) {
	return m.listByResearcherFunc(ctx, researcherID)
}

func (m *mockProjectOrchestrator) Update(ctx context.Context, actorID, id uuid.UUID, in service.ProjectUpdate) (*domain.Project, error) {
	return m.updateFunc(ctx, actorID, id, in)
}

func (m *mockProjectOrchestrator) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	return m.deleteFunc(ctx, actorID, id)
}

func (m *mockProjectOrchestrator) History(ctx context.Context, projectID uuid.UUID, limit int) ([]*domain.ProjectHistory, error) {
	return m.historyFunc(ctx, projectID, limit)
}

// ---------------------------------------------------------------------------
// Mock TaskOrchestrator
// ---------------------------------------------------------------------------

type mockTaskOrchestrator struct {
	createFunc         func(ctx context.Context, actorID uuid.UUID, in service.TaskCreate) (*domain.Task, error)
	getFunc            func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	listFunc           func(ctx context.Context) ([]*domain.Task, error)
	listByProjectFunc  func(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error)
	listByAssigneeFunc func(ctx context.Context, researcherID uuid.UUID) ([]*domain.Task, error)
	listOverdueFunc    func(ctx context.Context) ([]*domain.Task, error)
	updateFunc         func(ctx context.Context, actorID, id uuid.UUID, in service.TaskUpdate) (*domain.Task, error)
	deleteFunc         func(ctx context.Context, actorID, id uuid.UUID) error
	requestJoinFunc    func(ctx context.Context, taskID, researcherID uuid.UUID) error
}

func (m *mockTaskOrchestrator) Create(ctx context.Context, actorID uuid.UUID, in service.TaskCreate) (*domain.Task, error) {
	return m.createFunc(ctx, actorID, in)
}

func (m *mockTaskOrchestrator) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return m.getFunc(ctx, id)
}

func (m *mockTaskOrchestrator) List(ctx context.Context) ([]*domain.Task, error) {
	return m.listFunc(ctx)
}

func (m *mockTaskOrchestrator) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error) {
	return m.listByProjectFunc(ctx, projectID)
}

func (m *mockTaskOrchestrator) ListByAssignee(ctx context.Context, researcherID uuid.UUID) ([]*domain.Task, error) {
	return m.listByAssigneeFunc(ctx, researcherID)
}

func (m *mockTaskOrchestrator) ListOverdue(ctx context.Context) ([]*domain.Task, error) {
	return m.listOverdueFunc(ctx)
}

func (m *mockTaskOrchestrator) Update(ctx context.Context, actorID, id uuid.UUID, in service.TaskUpdate) (*domain.Task, error) {
	return m.updateFunc(ctx, actorID, id, in)
}

func (m *mockTaskOrchestrator) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	return m.deleteFunc(ctx, actorID, id)
}

func (m *mockTaskOrchestrator) RequestJoin(ctx context.Context, taskID, researcherID uuid.UUID) error {
	return m.requestJoinFunc(ctx, taskID, researcherID)
}

// ---------------------------------------------------------------------------
// Repo mocks backing the routes that take concrete services. The embedded
// interface covers methods a test never reaches; calling one panics, which
// is the point.
// ---------------------------------------------------------------------------

type mockTx struct{}

func (mockTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockCommentRepo struct {
	domain.CommentRepository
	createFunc func(ctx context.Context, c *domain.Comment) error
}

func (m *mockCommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	return m.createFunc(ctx, c)
}

type mockTaskRepo struct {
	domain.TaskRepository
	getByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return m.getByIDFunc(ctx, id)
}

type mockBoardRepo struct {
	domain.BoardRepository
	createFunc     func(ctx context.Context, b *domain.Board) error
	getByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	updateFunc     func(ctx context.Context, b *domain.Board) error
	listPublicFunc func(ctx context.Context) ([]*domain.Board, error)
}

func (m *mockBoardRepo) Create(ctx context.Context, b *domain.Board) error {
	return m.createFunc(ctx, b)
}

func (m *mockBoardRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockBoardRepo) Update(ctx context.Context, b *domain.Board) error {
	return m.updateFunc(ctx, b)
}

func (m *mockBoardRepo) ListPublic(ctx context.Context) ([]*domain.Board, error) {
	return m.listPublicFunc(ctx)
}

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	registerFunc       func(ctx context.Context, username, password, role string, researcherID *uuid.UUID) (*domain.User, error)
	loginFunc          func(ctx context.Context, username, password string) (string, string, error)
	refreshTokenFunc   func(ctx context.Context, refreshToken string) (string, error)
	getUserFunc        func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	changePasswordFunc func(ctx context.Context, userID uuid.UUID, current, next string) error
}

func (m *mockAuthService) Register(ctx context.Context, username, password, role string, researcherID *uuid.UUID) (*domain.User, error) {
	return m.registerFunc(ctx, username, password, role, researcherID)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (accessToken, refreshToken string, err error) {
	return m.loginFunc(ctx, username, password)
}

func (m *mockAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	return m.refreshTokenFunc(ctx, refreshToken)
}

func (m *mockAuthService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return m.getUserFunc(ctx, userID)
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	return m.changePasswordFunc(ctx, userID, current, next)
}
