package dto

import (
	"time"

	"campus-jobs/internal/domain/job"

	"github.com/google/uuid"
)

type EmployerSummaryResponse struct {
	ID          uuid.UUID `json:"id"`
	CompanyName string    `json:"companyName"`
	LogoURL     *string   `json:"logoUrl"`
}

type JobResponse struct {
	ID           uuid.UUID                `json:"id"`
	EmployerID   uuid.UUID                `json:"employerId"`
	Title        string                   `json:"title"`
	Description  string                   `json:"description"`
	Requirements []string                 `json:"requirements"`
	Location     string                   `json:"location"`
	Type         job.Type                 `json:"type"`
	WorkMode     job.WorkMode             `json:"workMode"`
	Salary       *string                  `json:"salary"`
	IsActive     bool                     `json:"isActive"`
	CreatedAt    time.Time                `json:"createdAt"`
	Employer     *EmployerSummaryResponse `json:"employer"`
}

func NewJobResponse(l job.Listing) JobResponse {
	reqs := l.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	out := JobResponse{
		ID:           l.ID,
		EmployerID:   l.EmployerID,
		Title:        l.Title,
		Description:  l.Description,
		Requirements: reqs,
		Location:     l.Location,
		Type:         l.Type,
		WorkMode:     l.WorkMode,
		Salary:       l.Salary,
		IsActive:     l.IsActive,
		CreatedAt:    l.CreatedAt,
	}
	if l.Employer != nil {
		out.Employer = &EmployerSummaryResponse{
			ID:          l.Employer.ID,
			CompanyName: l.Employer.CompanyName,
			LogoURL:     l.Employer.LogoURL,
		}
	}
	return out
}

func NewJobListResponse(items []job.Listing) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewJobResponse(it))
	}
	return out
}
