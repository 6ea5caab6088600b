package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LabInfo is the single well-known lab configuration record. It has
// create-or-update semantics: Get returns the record or ErrNotFound, and
// Upsert replaces it wholesale. There is never more than one row.
type LabInfo struct {
	ID          uuid.UUID
	Name        string
	Description string
	Professor   string
	Location    string
	Email       string
	Phone       string
	Homepage    string
	UpdatedAt   time.Time
}

type LabInfoRepository interface {
	Get(ctx context.Context) (*LabInfo, error)
	Upsert(ctx context.Context, info *LabInfo) error
}
