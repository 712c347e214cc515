package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("user not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrEmailTaken      = errors.New("email already registered")
)

// Repository covers accounts and both profile kinds; a profile never outlives
// its user.
type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	CreateStudentProfile(ctx context.Context, p StudentProfile) error
	CreateEmployerProfile(ctx context.Context, p EmployerProfile) error
	GetStudentProfileByUserID(ctx context.Context, userID uuid.UUID) (StudentProfile, error)
	GetEmployerProfileByUserID(ctx context.Context, userID uuid.UUID) (EmployerProfile, error)
	UpdateStudentProfile(ctx context.Context, userID uuid.UUID, upd StudentProfileUpdate) (StudentProfile, error)
	UpdateEmployerProfile(ctx context.Context, userID uuid.UUID, upd EmployerProfileUpdate) (EmployerProfile, error)
}
