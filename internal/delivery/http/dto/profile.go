package dto

import (
	"time"

	"campus-jobs/internal/domain/user"

	"github.com/google/uuid"
)

type StudentProfileResponse struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"userId"`
	FullName       string    `json:"fullName"`
	University     *string   `json:"university"`
	Major          *string   `json:"major"`
	GraduationYear *int      `json:"graduationYear"`
	GPA            *string   `json:"gpa"`
	Bio            *string   `json:"bio"`
	ResumeURL      *string   `json:"resumeUrl"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type EmployerProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	CompanyName string    `json:"companyName"`
	Industry    *string   `json:"industry"`
	CompanySize *string   `json:"companySize"`
	Website     *string   `json:"website"`
	Description *string   `json:"description"`
	LogoURL     *string   `json:"logoUrl"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

func NewStudentProfileResponse(p user.StudentProfile) StudentProfileResponse {
	return StudentProfileResponse{
		ID:             p.ID,
		UserID:         p.UserID,
		FullName:       p.FullName,
		University:     p.University,
		Major:          p.Major,
		GraduationYear: p.GraduationYear,
		GPA:            p.GPA,
		Bio:            p.Bio,
		ResumeURL:      p.ResumeURL,
		UpdatedAt:      p.UpdatedAt,
	}
}

func NewEmployerProfileResponse(p user.EmployerProfile) EmployerProfileResponse {
	return EmployerProfileResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		CompanyName: p.CompanyName,
		Industry:    p.Industry,
		CompanySize: p.CompanySize,
		Website:     p.Website,
		Description: p.Description,
		LogoURL:     p.LogoURL,
		UpdatedAt:   p.UpdatedAt,
	}
}
