package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyulab/labms/internal/auth"
	"github.com/kyulab/labms/internal/domain"
)

// --- configurable mock repositories for service tests ---

// mockUserRepo is a configurable mock implementing domain.UserRepository.
// It captures calls and returns preconfigured responses for service-level tests.
type mockUserRepo struct {
	// GetByUsername behavior.
	getByUsernameUser *domain.User
	getByUsernameErr  error

	// GetByID behavior.
	getByIDUser *domain.User
	getByIDErr  error

	// GetByResearcherID behavior.
	getByResearcherIDUser *domain.User
	getByResearcherIDErr  error

	// Create behavior.
	createErr   error
	createdUser *domain.User // captures the user passed to Create.

	// Update behavior.
	updateErr   error
	updatedUser *domain.User
}

func (m *mockUserRepo) Create(_ context.Context, u *domain.User) error {
	m.createdUser = u
	return m.createErr
}

func (m *mockUserRepo) GetByID(context.Context, uuid.UUID) (*domain.User, error) {
	return m.getByIDUser, m.getByIDErr
}

func (m *mockUserRepo) GetByUsername(context.Context, string) (*domain.User, error) {
	return m.getByUsernameUser, m.getByUsernameErr
}

func (m *mockUserRepo) GetByResearcherID(context.Context, uuid.UUID) (*domain.User, error) {
	return m.getByResearcherIDUser, m.getByResearcherIDErr
}

func (m *mockUserRepo) Update(_ context.Context, u *domain.User) error {
	m.updatedUser = u
	return m.updateErr
}

func (m *mockUserRepo) Delete(context.Context, uuid.UUID) error { return nil }

// mockResearcherRepo implements domain.ResearcherRepository for link checks.
type mockResearcherRepo struct {
	getByIDResearcher *domain.Researcher
	getByIDErr        error
}

func (m *mockResearcherRepo) Create(context.Context, *domain.Researcher) error { return nil }

func (m *mockResearcherRepo) GetByID(context.Context, uuid.UUID) (*domain.Researcher, error) {
	return m.getByIDResearcher, m.getByIDErr
}

func (m *mockResearcherRepo) GetByStudentID(context.Context, string) (*domain.Researcher, error) {
	return nil, domain.ErrNotFound
}

func (m *mockResearcherRepo) List(context.Context) ([]*domain.Researcher, error) { return nil, nil }

func (m *mockResearcherRepo) ListByIDs(context.Context, []uuid.UUID) ([]*domain.Researcher, error) {
	return nil, nil
}

func (m *mockResearcherRepo) Update(context.Context, *domain.Researcher) error { return nil }

func (m *mockResearcherRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (m *mockResearcherRepo) Count(context.Context) (int64, error) { return 0, nil }

// --- test constants ---

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUsername  = "alice"
	testPassword  = "correct-horse-battery-staple"
)

var (
	testAccessTTL  = 15 * time.Minute
	testRefreshTTL = 7 * 24 * time.Hour
)

// newTestService creates a Service with the given mocks and standard test config.
func newTestService(users *mockUserRepo, researchers *mockResearcherRepo) *auth.Service {
	if researchers == nil {
		researchers = &mockResearcherRepo{}
	}
	return auth.NewService(users, researchers, testJWTSecret, testAccessTTL, testRefreshTTL)
}

// --- Register tests ---

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("happy path creates enabled account with default role", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		repo := &mockUserRepo{
			getByUsernameErr: domain.ErrNotFound,
		}
		svc := newTestService(repo, nil)

		user, err := svc.Register(ctx, testUsername, testPassword, "", nil)

		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, testUsername, user.Username)
		assert.Equal(t, domain.RoleResearcher, user.Role, "default role must be RESEARCHER")
		assert.True(t, user.Enabled)
		assert.Nil(t, user.ResearcherID)
		assert.NotEqual(t, uuid.Nil, user.ID, "user ID must be generated")
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt must be set")
	})

	t.Run("password is hashed not stored as plaintext", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		repo := &mockUserRepo{
			getByUsernameErr: domain.ErrNotFound,
		}
		svc := newTestService(repo, nil)

		user, err := svc.Register(ctx, testUsername, testPassword, "", nil)

		require.NoError(t, err)
		require.NotNil(t, user)
		assert.NotEqual(t, testPassword, user.PasswordHash, "password must not be stored as plaintext")
		assert.NotEmpty(t, user.PasswordHash, "password hash must not be empty")
		assert.Contains(t, user.PasswordHash, "$", "argon2id hash must contain salt$hash separator")
	})

	t.Run("duplicate username returns ErrUserAlreadyExists", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		repo := &mockUserRepo{
			getByUsernameUser: &domain.User{ID: uuid.New(), Username: testUsername},
		}
		svc := newTestService(repo, nil)

		user, err := svc.Register(ctx, testUsername, testPassword, "", nil)

		require.Error(t, err)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, auth.ErrUserAlreadyExists)
	})

	t.Run("link to unknown researcher returns ErrNotFound", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		repo := &mockUserRepo{
			getByUsernameErr: domain.ErrNotFound,
		}
		researchers := &mockResearcherRepo{
			getByIDErr: domain.ErrNotFound,
		}
		svc := newTestService(repo, researchers)

		rid := uuid.New()
		user, err := svc.Register(ctx, testUsername, testPassword, "", &rid)

		require.Error(t, err)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("researcher already linked returns ErrConflict", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		rid := uuid.New()
		repo := &mockUserRepo{
			getByUsernameErr:      domain.ErrNotFound,
			getByResearcherIDUser: &domain.User{ID: uuid.New(), ResearcherID: &rid},
		}
		researchers := &mockResearcherRepo{
			getByIDResearcher: &domain.Researcher{ID: rid},
		}
		svc := newTestService(repo, researchers)

		user, err := svc.Register(ctx, testUsername, testPassword, "", &rid)

		require.Error(t, err)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("link to existing unlinked researcher succeeds", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		rid := uuid.New()
		repo := &mockUserRepo{
			getByUsernameErr:     domain.ErrNotFound,
			getByResearcherIDErr: domain.ErrNotFound,
		}
		researchers := &mockResearcherRepo{
			getByIDResearcher: &domain.Researcher{ID: rid},
		}
		svc := newTestService(repo, researchers)

		user, err := svc.Register(ctx, testUsername, testPassword, domain.RoleAdmin, &rid)

		require.NoError(t, err)
		require.NotNil(t, user)
		require.NotNil(t, user.ResearcherID)
		assert.Equal(t, rid, *user.ResearcherID)
		assert.Equal(t, domain.RoleAdmin, user.Role)
	})

	t.Run("repo Create error is propagated", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		repoErr := errors.New("database connection refused")
		repo := &mockUserRepo{
			getByUsernameErr: domain.ErrNotFound,
			createErr:        repoErr,
		}
		svc := newTestService(repo, nil)

		user, err := svc.Register(ctx, testUsername, testPassword, "", nil)

		require.Error(t, err)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, repoErr)
	})
}

// --- Login tests ---

func TestLogin(t *testing.T) {
	t.Parallel()

	// registerAndGetUser registers an account via the service and returns the
	// captured repo user (with hashed password) for Login tests.
	registerAndGetUser := func(t *testing.T) *domain.User {
		t.Helper()

		repo := &mockUserRepo{
			getByUsernameErr: domain.ErrNotFound,
		}
		svc := newTestService(repo, nil)

		_, err := svc.Register(context.Background(), testUsername, testPassword, "", nil)
		require.NoError(t, err)
		require.NotNil(t, repo.createdUser)

		return repo.createdUser
	}

	t.Run("happy path returns two valid tokens", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		registered := registerAndGetUser(t)
		repo := &mockUserRepo{
			getByUsernameUser: registered,
		}
		svc := newTestService(repo, nil)

		accessToken, refreshToken, err := svc.Login(ctx, testUsername, testPassword)

		require.NoError(t, err)
		assert.NotEmpty(t, accessToken, "access token must not be empty")
		assert.NotEmpty(t, refreshToken, "refresh token must not be empty")
		assert.NotEqual(t, accessToken, refreshToken, "access and refresh tokens must differ")
	})

	t.Run("returned access token carries correct claims", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		registered := registerAndGetUser(t)
		repo := &mockUserRepo{
			getByUsernameUser: registered,
		}
		svc := newTestService(repo, nil)

		accessToken, _, err := svc.Login(ctx, testUsername, testPassword)

		require.NoError(t, err)

		claims, err := auth.ValidateToken(testJWTSecret, accessToken)
		require.NoError(t, err)
		assert.Equal(t, registered.ID.String(), claims.UserID)
		assert.Equal(t, testUsername, claims.Username)
		assert.Equal(t, domain.RoleResearcher, claims.Role)
		assert.Equal(t, "access", claims.TokenType)
	})

	t.Run("returned refresh token has refresh type", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		registered := registerAndGetUser(t)
		repo := &mockUserRepo{
			getByUsernameUser: registered,
		}
		svc := newTestService(repo, nil)

		_, refreshToken, err := svc.Login(ctx, testUsername, testPassword)

		require.NoError(t, err)

		claims, err := auth.ValidateToken(testJWTSecret, refreshToken)
		require.NoError(t, err)
		assert.Equal(t, "refresh", claims.TokenType)
	})

	t.Run("wrong password returns ErrInvalidCredentials", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		registered := registerAndGetUser(t)
		repo := &mockUserRepo{
			getByUsernameUser: registered,
		}
		svc := newTestService(repo, nil)

		accessToken, refreshToken, err := svc.Login(ctx, testUsername, "wrong-password")

		require.Error(t, err)
		assert.Empty(t, accessToken)
		assert.Empty(t, refreshToken)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown username returns ErrInvalidCredentials", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		repo := &mockUserRepo{
			getByUsernameErr: domain.ErrNotFound,
		}
		svc := newTestService(repo, nil)

		accessToken, refreshToken, err := svc.Login(ctx, "nobody", testPassword)

		require.Error(t, err)
		assert.Empty(t, accessToken)
		assert.Empty(t, refreshToken)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("disabled account returns ErrAccountDisabled", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		registered := registerAndGetUser(t)
		registered.Enabled = false
		repo := &mockUserRepo{
			getByUsernameUser: registered,
		}
		svc := newTestService(repo, nil)

		accessToken, refreshToken, err := svc.Login(ctx, testUsername, testPassword)

		require.Error(t, err)
		assert.Empty(t, accessToken)
		assert.Empty(t, refreshToken)
		assert.ErrorIs(t, err, auth.ErrAccountDisabled)
	})
}

// --- RefreshToken tests ---

func TestRefreshToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("happy path issues new access token from valid refresh token", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		existing := &domain.User{
			ID:       userID,
			Username: testUsername,
			Role:     domain.RoleResearcher,
			Enabled:  true,
		}
		repo := &mockUserRepo{
			getByIDUser: existing,
		}
		svc := newTestService(repo, nil)

		refreshToken, err := auth.IssueRefreshToken(testJWTSecret, userID, testUsername, domain.RoleResearcher, testRefreshTTL)
		require.NoError(t, err)

		newAccess, err := svc.RefreshToken(ctx, refreshToken)

		require.NoError(t, err)
		assert.NotEmpty(t, newAccess)

		claims, err := auth.ValidateToken(testJWTSecret, newAccess)
		require.NoError(t, err)
		assert.Equal(t, "access", claims.TokenType)
		assert.Equal(t, userID.String(), claims.UserID)
	})

	t.Run("uses current role from repo not stale token role", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		// Account was promoted to admin after the refresh token was issued.
		existing := &domain.User{
			ID:       userID,
			Username: testUsername,
			Role:     domain.RoleAdmin,
			Enabled:  true,
		}
		repo := &mockUserRepo{
			getByIDUser: existing,
		}
		svc := newTestService(repo, nil)

		refreshToken, err := auth.IssueRefreshToken(testJWTSecret, userID, testUsername, domain.RoleResearcher, testRefreshTTL)
		require.NoError(t, err)

		newAccess, err := svc.RefreshToken(ctx, refreshToken)

		require.NoError(t, err)

		claims, err := auth.ValidateToken(testJWTSecret, newAccess)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, claims.Role, "new access token must use current role from repo")
	})

	t.Run("access token rejected with ErrInvalidToken", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		repo := &mockUserRepo{}
		svc := newTestService(repo, nil)

		accessToken, err := auth.IssueAccessToken(testJWTSecret, userID, testUsername, domain.RoleResearcher, testAccessTTL)
		require.NoError(t, err)

		newAccess, err := svc.RefreshToken(ctx, accessToken)

		require.Error(t, err)
		assert.Empty(t, newAccess)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired token returns error", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		repo := &mockUserRepo{}
		svc := newTestService(repo, nil)

		expiredToken, err := auth.IssueRefreshToken(testJWTSecret, userID, testUsername, domain.RoleResearcher, -1*time.Second)
		require.NoError(t, err)

		newAccess, err := svc.RefreshToken(ctx, expiredToken)

		require.Error(t, err)
		assert.Empty(t, newAccess)
	})

	t.Run("malformed token returns error", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		repo := &mockUserRepo{}
		svc := newTestService(repo, nil)

		newAccess, err := svc.RefreshToken(ctx, "not-a-valid-jwt")

		require.Error(t, err)
		assert.Empty(t, newAccess)
	})

	t.Run("account deleted after token issued returns ErrUserNotFound", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		repo := &mockUserRepo{
			getByIDErr: domain.ErrNotFound,
		}
		svc := newTestService(repo, nil)

		refreshToken, err := auth.IssueRefreshToken(testJWTSecret, userID, testUsername, domain.RoleResearcher, testRefreshTTL)
		require.NoError(t, err)

		newAccess, err := svc.RefreshToken(ctx, refreshToken)

		require.Error(t, err)
		assert.Empty(t, newAccess)
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})
}

// --- ChangePassword tests ---

func TestChangePassword(t *testing.T) {
	t.Parallel()

	t.Run("happy path replaces hash", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		// Register to get a real argon2id hash.
		regRepo := &mockUserRepo{getByUsernameErr: domain.ErrNotFound}
		_, err := newTestService(regRepo, nil).Register(ctx, testUsername, testPassword, "", nil)
		require.NoError(t, err)

		repo := &mockUserRepo{
			getByIDUser: regRepo.createdUser,
		}
		svc := newTestService(repo, nil)

		oldHash := regRepo.createdUser.PasswordHash

		err = svc.ChangePassword(ctx, regRepo.createdUser.ID, testPassword, "a-new-password")

		require.NoError(t, err)
		require.NotNil(t, repo.updatedUser, "repo.Update must have been called")
		assert.NotEqual(t, oldHash, repo.updatedUser.PasswordHash)
	})

	t.Run("wrong current password returns ErrInvalidCredentials", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()

		regRepo := &mockUserRepo{getByUsernameErr: domain.ErrNotFound}
		_, err := newTestService(regRepo, nil).Register(ctx, testUsername, testPassword, "", nil)
		require.NoError(t, err)

		repo := &mockUserRepo{
			getByIDUser: regRepo.createdUser,
		}
		svc := newTestService(repo, nil)

		err = svc.ChangePassword(ctx, regRepo.createdUser.ID, "wrong-password", "a-new-password")

		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		assert.Nil(t, repo.updatedUser, "repo.Update must not have been called")
	})
}
