package service

import (
	"context"
	"fmt"

	"github.com/kyulab/labms/internal/domain"
)

// Identity maps an authenticated username to the researcher profile that
// owns resources. The username is guaranteed non-empty and validated by the
// auth layer before this runs.
type Identity struct {
	users       domain.UserRepository
	researchers domain.ResearcherRepository
}

func NewIdentity(users domain.UserRepository, researchers domain.ResearcherRepository) *Identity {
	return &Identity{users: users, researchers: researchers}
}

// Resolve returns the researcher linked to the account. An account with no
// researcher link yields ErrNoProfile, which callers treat as a benign
// short-circuit rather than a failure. Side-effect free.
func (i *Identity) Resolve(ctx context.Context, username string) (*domain.Researcher, error) {
	user, err := i.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("identity.Resolve: %w", err)
	}

	if user.ResearcherID == nil {
		return nil, fmt.Errorf("identity.Resolve %q: %w", username, domain.ErrNoProfile)
	}

	researcher, err := i.researchers.GetByID(ctx, *user.ResearcherID)
	if err != nil {
		return nil, fmt.Errorf("identity.Resolve: %w", err)
	}

	return researcher, nil
}
