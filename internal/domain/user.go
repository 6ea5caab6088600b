package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role constants for user accounts.
const (
	RoleAdmin      = "ADMIN"
	RoleResearcher = "RESEARCHER"
)

// User is a login account. At most one account exists per researcher;
// an account may exist with no researcher link at all, in which case the
// caller cannot own or mutate resources (see ErrNoProfile).
type User struct {
	ID           uuid.UUID
	Username     string // unique
	PasswordHash string // argon2id
	Role         string // RoleAdmin or RoleResearcher
	ResearcherID *uuid.UUID
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the account holds admin privilege.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByResearcherID(ctx context.Context, researcherID uuid.UUID) (*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
