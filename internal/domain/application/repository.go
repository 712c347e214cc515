package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrAlreadyApplied = errors.New("already applied")
	ErrJobMissing     = errors.New("job missing")
)

type Repository interface {
	Exists(ctx context.Context, jobID, studentID uuid.UUID) (bool, error)
	// Create returns ErrAlreadyApplied when the pair exists and ErrJobMissing
	// when the job row is gone.
	Create(ctx context.Context, a Application) error
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]Application, error)
	ListByStudentAndJob(ctx context.Context, studentID, jobID uuid.UUID) ([]Application, error)
	ListApplicants(ctx context.Context, jobID uuid.UUID) ([]Applicant, error)
}

type SavedJobRepository interface {
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, jobID, studentID uuid.UUID) (bool, error)
	// Create is a no-op when the pair already exists. It returns ErrJobMissing
	// when the job row is gone.
	Create(ctx context.Context, s SavedJob) error
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]SavedJob, error)
}
