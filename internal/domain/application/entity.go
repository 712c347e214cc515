package application

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusReviewing Status = "reviewing"
	StatusInterview Status = "interview"
	StatusRejected  Status = "rejected"
	StatusAccepted  Status = "accepted"
)

// Application is unique per (JobID, StudentID).
type Application struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	StudentID   uuid.UUID
	Status      Status
	CoverLetter *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Applicant is an application seen by the employer owning the job.
type Applicant struct {
	ApplicationID uuid.UUID
	StudentID     uuid.UUID
	FullName      string
	Email         string
	University    *string
	Major         *string
	GPA           *string
	Status        Status
	CoverLetter   *string
	AppliedAt     time.Time
}

// SavedJob is unique per (JobID, StudentID); the row's presence is the saved
// state.
type SavedJob struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	StudentID uuid.UUID
	CreatedAt time.Time
}
