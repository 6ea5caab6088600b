package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Grade string

const (
	GradeUndergraduate Grade = "UNDERGRADUATE"
	GradeMasters       Grade = "MASTERS"
	GradePhD           Grade = "PHD"
	GradePostdoc       Grade = "POSTDOC"
)

type ResearcherStatus string

const (
	ResearcherActive    ResearcherStatus = "ACTIVE"
	ResearcherGraduated ResearcherStatus = "GRADUATED"
	ResearcherOnLeave   ResearcherStatus = "ON_LEAVE"
)

// Researcher is the actor of the system: the profile that owns boards,
// notices and comments and to which every project mutation is attributed.
type Researcher struct {
	ID            uuid.UUID
	Name          string
	StudentID     string // unique
	Grade         Grade
	AdmissionYear *int
	Email         string // unique
	Phone         string
	Status        ResearcherStatus
	JoinDate      time.Time
	ResearchAreas []string
	PhotoURL      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewResearcher creates a Researcher with validated required fields.
func NewResearcher(name, studentID, email string, grade Grade, joinDate time.Time) (*Researcher, error) {
	if name == "" {
		return nil, errors.New("researcher: name is required")
	}
	if studentID == "" {
		return nil, errors.New("researcher: student id is required")
	}
	if email == "" {
		return nil, errors.New("researcher: email is required")
	}
	now := time.Now()
	return &Researcher{
		ID:        uuid.New(),
		Name:      name,
		StudentID: studentID,
		Grade:     grade,
		Email:     email,
		Status:    ResearcherActive,
		JoinDate:  joinDate,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

type ResearcherRepository interface {
	Create(ctx context.Context, r *Researcher) error
	GetByID(ctx context.Context, id uuid.UUID) (*Researcher, error)
	GetByStudentID(ctx context.Context, studentID string) (*Researcher, error)
	List(ctx context.Context) ([]*Researcher, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*Researcher, error)
	Update(ctx context.Context, r *Researcher) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
