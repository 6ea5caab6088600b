package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrMissingActor marks a programming error: ownership checks require a
// resolved actor, so an empty actor id means the caller skipped identity
// resolution. It is deliberately not ErrForbidden.
var ErrMissingActor = errors.New("domain: actor id is required")

// Authorize is the single ownership policy shared by boards, notices,
// comments, projects and tasks: allow iff the actor is an admin or the
// recorded owner. Admin privilege must be established by the caller (role
// claim verified upstream); a failed owner check never implies it. Pure
// and total: no I/O, no retries, stable deny reason.
func Authorize(actorID, ownerID uuid.UUID, isAdmin bool) error {
	if actorID == uuid.Nil {
		return ErrMissingActor
	}
	if isAdmin || actorID == ownerID {
		return nil
	}
	return fmt.Errorf("%w: not owner", ErrForbidden)
}
