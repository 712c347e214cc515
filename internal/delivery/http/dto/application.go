package dto

import (
	"time"

	"campus-jobs/internal/domain/application"

	"github.com/google/uuid"
)

const notAvailable = "N/A"

type ApplyRequest struct {
	JobID       string `json:"jobId" form:"jobId"`
	CoverLetter string `json:"coverLetter" form:"coverLetter"`
}

type SaveJobRequest struct {
	JobID string `json:"jobId" form:"jobId"`
}

type SaveJobResponse struct {
	Saved bool `json:"saved"`
}

type ApplicationResponse struct {
	ID          uuid.UUID          `json:"id"`
	JobID       uuid.UUID          `json:"jobId"`
	StudentID   uuid.UUID          `json:"studentId"`
	Status      application.Status `json:"status"`
	CoverLetter *string            `json:"coverLetter"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// ApplicantResponse is keyed by the student profile id; missing profile
// fields are reported as "N/A".
type ApplicantResponse struct {
	ID            uuid.UUID          `json:"id"`
	ApplicationID uuid.UUID          `json:"applicationId"`
	Name          string             `json:"name"`
	Email         string             `json:"email"`
	University    string             `json:"university"`
	Major         string             `json:"major"`
	GPA           string             `json:"gpa"`
	Status        application.Status `json:"status"`
	CoverLetter   *string            `json:"coverLetter"`
	CreatedAt     time.Time          `json:"createdAt"`
}

type SavedJobResponse struct {
	ID        uuid.UUID `json:"id"`
	JobID     uuid.UUID `json:"jobId"`
	StudentID uuid.UUID `json:"studentId"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		StudentID:   a.StudentID,
		Status:      a.Status,
		CoverLetter: a.CoverLetter,
		CreatedAt:   a.CreatedAt,
	}
}

func NewApplicationListResponse(items []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewApplicationResponse(it))
	}
	return out
}

func NewApplicantListResponse(items []application.Applicant) []ApplicantResponse {
	out := make([]ApplicantResponse, 0, len(items))
	for _, it := range items {
		name := it.FullName
		if name == "" {
			name = "Unknown"
		}
		out = append(out, ApplicantResponse{
			ID:            it.StudentID,
			ApplicationID: it.ApplicationID,
			Name:          name,
			Email:         it.Email,
			University:    orNA(it.University),
			Major:         orNA(it.Major),
			GPA:           orNA(it.GPA),
			Status:        it.Status,
			CoverLetter:   it.CoverLetter,
			CreatedAt:     it.AppliedAt,
		})
	}
	return out
}

func NewSavedJobListResponse(items []application.SavedJob) []SavedJobResponse {
	out := make([]SavedJobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, SavedJobResponse{ID: it.ID, JobID: it.JobID, StudentID: it.StudentID, CreatedAt: it.CreatedAt})
	}
	return out
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return notAvailable
	}
	return *s
}
