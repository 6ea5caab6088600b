package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyulab/labms/internal/domain"
)

// ---------------------------------------------------------------------------
// Authorize: allow iff isAdmin OR actor == owner.
// ---------------------------------------------------------------------------

func TestAuthorize(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	other := uuid.New()

	tests := []struct {
		name    string
		actorID uuid.UUID
		ownerID uuid.UUID
		isAdmin bool
		allowed bool
	}{
		{"owner_non_admin", owner, owner, false, true},
		{"owner_admin", owner, owner, true, true},
		{"non_owner_admin", other, owner, true, true},
		{"non_owner_non_admin", other, owner, false, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := domain.Authorize(tt.actorID, tt.ownerID, tt.isAdmin)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrForbidden)
			}
		})
	}
}

// TestAuthorize_DenyReasonIsStable verifies that a plain ownership denial
// carries a distinguishable, stable reason callers can branch on.
func TestAuthorize_DenyReasonIsStable(t *testing.T) {
	t.Parallel()

	err := domain.Authorize(uuid.New(), uuid.New(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Contains(t, err.Error(), "not owner")
}

// TestAuthorize_MissingActor verifies that an unresolved actor is a
// programming error, not a policy outcome.
func TestAuthorize_MissingActor(t *testing.T) {
	t.Parallel()

	err := domain.Authorize(uuid.Nil, uuid.New(), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingActor)
	assert.NotErrorIs(t, err, domain.ErrForbidden)
}
