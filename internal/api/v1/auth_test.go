package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/kyulab/labms/internal/api/v1"
	"github.com/kyulab/labms/internal/auth"
	"github.com/kyulab/labms/internal/domain"
)

// ---------------------------------------------------------------------------
// POST /auth/login
// ---------------------------------------------------------------------------

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		authSvc := &mockAuthService{
			loginFunc: func(_ context.Context, username, password string) (string, string, error) {
				assert.Equal(t, "alice", username)
				assert.Equal(t, "secret-password", password)
				return "access-token", "refresh-token", nil
			},
		}
		v1.RegisterAuthRoutes(api, authSvc)

		resp := api.Post("/auth/login", map[string]any{
			"username": "alice",
			"password": "secret-password",
		})

		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, "access-token", body.AccessToken)
		assert.Equal(t, "refresh-token", body.RefreshToken)
	})

	t.Run("bad_credentials_map_to_401", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		authSvc := &mockAuthService{
			loginFunc: func(_ context.Context, _, _ string) (string, string, error) {
				return "", "", auth.ErrInvalidCredentials
			},
		}
		v1.RegisterAuthRoutes(api, authSvc)

		resp := api.Post("/auth/login", map[string]any{
			"username": "alice",
			"password": "wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("disabled_account_maps_to_403", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		authSvc := &mockAuthService{
			loginFunc: func(_ context.Context, _, _ string) (string, string, error) {
				return "", "", auth.ErrAccountDisabled
			},
		}
		v1.RegisterAuthRoutes(api, authSvc)

		resp := api.Post("/auth/login", map[string]any{
			"username": "alice",
			"password": "secret-password",
		})

		assert.Equal(t, http.StatusForbidden, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// POST /auth/refresh
// ---------------------------------------------------------------------------

func TestRefreshToken(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		authSvc := &mockAuthService{
			refreshTokenFunc: func(_ context.Context, refreshToken string) (string, error) {
				assert.Equal(t, "refresh-token", refreshToken)
				return "new-access-token", nil
			},
		}
		v1.RegisterAuthRoutes(api, authSvc)

		resp := api.Post("/auth/refresh", map[string]any{
			"refreshToken": "refresh-token",
		})

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "new-access-token")
	})

	t.Run("invalid_token_maps_to_401", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		authSvc := &mockAuthService{
			refreshTokenFunc: func(_ context.Context, _ string) (string, error) {
				return "", auth.ErrInvalidToken
			},
		}
		v1.RegisterAuthRoutes(api, authSvc)

		resp := api.Post("/auth/refresh", map[string]any{
			"refreshToken": "bogus",
		})

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// GET /auth/me
// ---------------------------------------------------------------------------

func TestGetMe(t *testing.T) {
	t.Parallel()

	t.Run("linked_account_includes_profile", func(t *testing.T) {
		t.Parallel()

		rid := uuid.New()
		user := &domain.User{ID: uuid.New(), Username: "alice", Role: domain.RoleResearcher, ResearcherID: &rid, Enabled: true}
		actor := &domain.Researcher{ID: rid, Name: "Alice Kim", StudentID: "2021-12345", Email: "alice@lab.example"}

		_, api := humatest.New(t)
		authSvc := &mockAuthService{
			getUserFunc: func(_ context.Context, userID uuid.UUID) (*domain.User, error) {
				assert.Equal(t, user.ID, userID)
				return user, nil
			},
		}
		v1.RegisterAccountRoutes(api, authSvc, identityOf(actor))

		resp := api.GetCtx(userCtx(user.ID, "alice"), "/auth/me")

		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			User       *v1.UserResponse       `json:"user"`
			Researcher *v1.ResearcherResponse `json:"researcher"`
			Error      string                 `json:"error"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		require.NotNil(t, body.User)
		require.NotNil(t, body.Researcher)
		assert.Empty(t, body.Error)
		assert.Equal(t, "alice", body.User.Username)
		assert.Equal(t, "Alice Kim", body.Researcher.Name)
	})

	t.Run("no_profile_yields_benign_200", func(t *testing.T) {
		t.Parallel()

		user := &domain.User{ID: uuid.New(), Username: "guest99", Role: domain.RoleResearcher, Enabled: true}

		_, api := humatest.New(t)
		authSvc := &mockAuthService{
			getUserFunc: func(_ context.Context, _ uuid.UUID) (*domain.User, error) {
				return user, nil
			},
		}
		v1.RegisterAccountRoutes(api, authSvc, identityErr(domain.ErrNoProfile))

		resp := api.GetCtx(userCtx(user.ID, "guest99"), "/auth/me")

		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			User       *v1.UserResponse       `json:"user"`
			Researcher *v1.ResearcherResponse `json:"researcher"`
			Error      string                 `json:"error"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		require.NotNil(t, body.User)
		assert.Nil(t, body.Researcher)
		assert.Equal(t, "No researcher profile associated with this user", body.Error)
	})
}

// ---------------------------------------------------------------------------
// POST /users (admin)
// ---------------------------------------------------------------------------

func TestRegisterUser(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		rid := uuid.New()

		_, api := humatest.New(t)
		authSvc := &mockAuthService{
			registerFunc: func(_ context.Context, username, password, role string, researcherID *uuid.UUID) (*domain.User, error) {
				assert.Equal(t, "bob", username)
				assert.Equal(t, "long-enough-pw", password)
				assert.Equal(t, domain.RoleResearcher, role)
				require.NotNil(t, researcherID)
				assert.Equal(t, rid, *researcherID)
				return &domain.User{ID: uuid.New(), Username: username, Role: role, ResearcherID: researcherID, Enabled: true}, nil
			},
		}
		v1.RegisterUserAdminRoutes(api, authSvc)

		resp := api.PostCtx(adminCtx(uuid.New(), "admin"), "/users", map[string]any{
			"username":     "bob",
			"password":     "long-enough-pw",
			"role":         "RESEARCHER",
			"researcherId": rid.String(),
		})

		require.Equal(t, http.StatusOK, resp.Code)

		var body v1.UserResponse
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, "bob", body.Username)
		assert.True(t, body.Enabled)
	})

	t.Run("duplicate_username_maps_to_409", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		authSvc := &mockAuthService{
			registerFunc: func(_ context.Context, _, _, _ string, _ *uuid.UUID) (*domain.User, error) {
				return nil, auth.ErrUserAlreadyExists
			},
		}
		v1.RegisterUserAdminRoutes(api, authSvc)

		resp := api.PostCtx(adminCtx(uuid.New(), "admin"), "/users", map[string]any{
			"username": "bob",
			"password": "long-enough-pw",
		})

		assert.Equal(t, http.StatusConflict, resp.Code)
	})

	t.Run("linked_researcher_conflict_maps_to_409", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		authSvc := &mockAuthService{
			registerFunc: func(_ context.Context, _, _, _ string, _ *uuid.UUID) (*domain.User, error) {
				return nil, domain.ErrConflict
			},
		}
		v1.RegisterUserAdminRoutes(api, authSvc)

		resp := api.PostCtx(adminCtx(uuid.New(), "admin"), "/users", map[string]any{
			"username":     "bob",
			"password":     "long-enough-pw",
			"researcherId": uuid.NewString(),
		})

		assert.Equal(t, http.StatusConflict, resp.Code)
	})
}
