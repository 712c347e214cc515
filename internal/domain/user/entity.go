package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent  Role = "student"
	RoleEmployer Role = "employer"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleEmployer
}

// User is an account. Role is fixed at sign-up and selects which profile the
// account owns.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type StudentProfile struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	FullName       string
	University     *string
	Major          *string
	GraduationYear *int
	GPA            *string
	Bio            *string
	ResumeURL      *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type EmployerProfile struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CompanyName string
	Industry    *string
	CompanySize *string
	Website     *string
	Description *string
	LogoURL     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StudentProfileUpdate is a partial update: nil fields are left untouched.
type StudentProfileUpdate struct {
	FullName       *string
	University     *string
	Major          *string
	GraduationYear *int
	GPA            *string
	Bio            *string
	ResumeURL      *string
}

type EmployerProfileUpdate struct {
	CompanyName *string
	Industry    *string
	CompanySize *string
	Website     *string
	Description *string
	LogoURL     *string
}

func (u StudentProfileUpdate) Apply(p *StudentProfile) {
	setIf(&p.FullName, u.FullName)
	setPtrIf(&p.University, u.University)
	setPtrIf(&p.Major, u.Major)
	if u.GraduationYear != nil {
		v := *u.GraduationYear
		p.GraduationYear = &v
	}
	setPtrIf(&p.GPA, u.GPA)
	setPtrIf(&p.Bio, u.Bio)
	setPtrIf(&p.ResumeURL, u.ResumeURL)
}

func (u EmployerProfileUpdate) Apply(p *EmployerProfile) {
	setIf(&p.CompanyName, u.CompanyName)
	setPtrIf(&p.Industry, u.Industry)
	setPtrIf(&p.CompanySize, u.CompanySize)
	setPtrIf(&p.Website, u.Website)
	setPtrIf(&p.Description, u.Description)
	setPtrIf(&p.LogoURL, u.LogoURL)
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setPtrIf(dst **string, v *string) {
	if v != nil {
		s := *v
		*dst = &s
	}
}
