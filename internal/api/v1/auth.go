package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/kyulab/labms/internal/auth"
	"github.com/kyulab/labms/internal/domain"
	"github.com/kyulab/labms/internal/server/middleware"
)

type LoginInput struct {
	Body struct {
		Username string `json:"username" minLength:"1" maxLength:"64" doc:"Login username"`
		Password string `json:"password" minLength:"1" maxLength:"128" doc:"Password"` //nolint:gosec // G117: login credential DTO
	}
}

type LoginOutput struct {
	Body struct {
		AccessToken  string `json:"accessToken"`  //nolint:gosec // G117: auth response DTO
		RefreshToken string `json:"refreshToken"` //nolint:gosec // G117: auth response DTO
	}
}

type RefreshInput struct {
	Body struct {
		RefreshToken string `json:"refreshToken" minLength:"1" doc:"Refresh token"` //nolint:gosec // G117: token refresh DTO
	}
}

type RefreshOutput struct {
	Body struct {
		AccessToken string `json:"accessToken"` //nolint:gosec // G117: auth response DTO
	}
}

type MeOutput struct {
	Body struct {
		User       *UserResponse       `json:"user"`
		Researcher *ResearcherResponse `json:"researcher,omitempty"`
		Error      string              `json:"error,omitempty"`
	}
}

type ChangePasswordInput struct {
	Body struct {
		CurrentPassword string `json:"currentPassword" minLength:"1" maxLength:"128" doc:"Current password"` //nolint:gosec // G117: credential DTO
		NewPassword     string `json:"newPassword" minLength:"8" maxLength:"128" doc:"New password"`         //nolint:gosec // G117: credential DTO
	}
}

// RegisterAuthRoutes wires login and token refresh. These run outside the
// authenticated group.
func RegisterAuthRoutes(api huma.API, authSvc AuthService) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Summary:     "Login with username and password",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
		accessToken, refreshToken, err := authSvc.Login(ctx, input.Body.Username, input.Body.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				return nil, huma.Error401Unauthorized("invalid username or password")
			}
			if errors.Is(err, auth.ErrAccountDisabled) {
				return nil, huma.Error403Forbidden("account is disabled")
			}
			return nil, huma.Error500InternalServerError("login failed", err)
		}

		out := &LoginOutput{}
		out.Body.AccessToken = accessToken
		out.Body.RefreshToken = refreshToken
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "refresh-token",
		Method:      http.MethodPost,
		Path:        "/auth/refresh",
		Summary:     "Refresh access token",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *RefreshInput) (*RefreshOutput, error) {
		accessToken, err := authSvc.RefreshToken(ctx, input.Body.RefreshToken)
		if err != nil {
			return nil, huma.Error401Unauthorized("invalid or expired refresh token")
		}

		out := &RefreshOutput{}
		out.Body.AccessToken = accessToken
		return out, nil
	})
}

// RegisterAccountRoutes wires the routes an authenticated account uses to
// inspect and maintain itself.
func RegisterAccountRoutes(api huma.API, authSvc AuthService, identity IdentityResolver) {
	huma.Register(api, huma.Operation{
		OperationID: "get-me",
		Method:      http.MethodGet,
		Path:        "/auth/me",
		Summary:     "Get the current account and researcher profile",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, _ *struct{}) (*MeOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing authentication context")
		}

		user, err := authSvc.GetUser(ctx, userID)
		if err != nil {
			if errors.Is(err, auth.ErrUserNotFound) {
				return nil, huma.Error404NotFound("account not found")
			}
			return nil, huma.Error500InternalServerError("failed to load account", err)
		}

		out := &MeOutput{}
		out.Body.User = newUserResponse(user)

		actor, err := resolveActor(ctx, identity)
		if err != nil {
			if errors.Is(err, domain.ErrNoProfile) {
				out.Body.Error = msgNoProfile
				return out, nil
			}
			return nil, huma.Error500InternalServerError("failed to load researcher profile", err)
		}
		out.Body.Researcher = newResearcherResponse(actor)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "change-password",
		Method:      http.MethodPost,
		Path:        "/auth/password",
		Summary:     "Change the current account password",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *ChangePasswordInput) (*struct{}, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing authentication context")
		}

		err := authSvc.ChangePassword(ctx, userID, input.Body.CurrentPassword, input.Body.NewPassword)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				return nil, huma.Error403Forbidden("current password is incorrect")
			}
			return nil, huma.Error500InternalServerError("failed to change password", err)
		}

		return nil, nil
	})
}

type RegisterUserInput struct {
	Body struct {
		Username     string     `json:"username" minLength:"3" maxLength:"64" doc:"Login username"`
		Password     string     `json:"password" minLength:"8" maxLength:"128" doc:"Password"` //nolint:gosec // G117: credential DTO
		Role         string     `json:"role,omitempty" enum:"ADMIN,RESEARCHER" doc:"Account role"`
		ResearcherID *uuid.UUID `json:"researcherId,omitempty" doc:"Researcher profile to link"`
	}
}

type RegisterUserOutput struct {
	Body *UserResponse
}

// RegisterUserAdminRoutes wires account management. Mounted under the
// admin-only group.
func RegisterUserAdminRoutes(api huma.API, authSvc AuthService) {
	huma.Register(api, huma.Operation{
		OperationID: "register-user",
		Method:      http.MethodPost,
		Path:        "/users",
		Summary:     "Create a login account",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, input *RegisterUserInput) (*RegisterUserOutput, error) {
		user, err := authSvc.Register(ctx, input.Body.Username, input.Body.Password, input.Body.Role, input.Body.ResearcherID)
		if err != nil {
			if errors.Is(err, auth.ErrUserAlreadyExists) {
				return nil, huma.Error409Conflict("username already taken")
			}
			if errors.Is(err, domain.ErrConflict) {
				return nil, huma.Error409Conflict("researcher already has an account")
			}
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("researcher not found")
			}
			return nil, huma.Error500InternalServerError("failed to create account", err)
		}

		return &RegisterUserOutput{Body: newUserResponse(user)}, nil
	})
}
