package job

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeInternship Type = "internship"
	TypeEntryLevel Type = "entry-level"
)

func (t Type) Valid() bool {
	return t == TypeInternship || t == TypeEntryLevel
}

type WorkMode string

const (
	WorkModeRemote WorkMode = "remote"
	WorkModeOnsite WorkMode = "onsite"
	WorkModeHybrid WorkMode = "hybrid"
)

func (m WorkMode) Valid() bool {
	switch m {
	case WorkModeRemote, WorkModeOnsite, WorkModeHybrid:
		return true
	}
	return false
}

// Job is a posting owned by exactly one employer profile. Only active jobs are
// visible to students.
type Job struct {
	ID           uuid.UUID
	EmployerID   uuid.UUID
	Title        string
	Description  string
	Requirements []string
	Location     string
	Type         Type
	WorkMode     WorkMode
	Salary       *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type EmployerSummary struct {
	ID          uuid.UUID
	CompanyName string
	LogoURL     *string
}

// Listing is a job joined with its employer; Employer is nil when the profile
// row is gone.
type Listing struct {
	Job
	Employer *EmployerSummary
}
