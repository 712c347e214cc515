package seeder

import (
	"context"

	"campus-jobs/internal/database"
	"campus-jobs/internal/domain"
	"campus-jobs/internal/domain/user"
	"campus-jobs/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	DemoStudentEmail    = "student@example.com"
	DemoStudentPassword = "student123"
)

type StudentSeeder struct{}

func (StudentSeeder) Name() string { return "demo_student" }

func (StudentSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "student_profiles", "id", "user_id", "full_name", "resume_url"); err != nil {
		return err
	}

	return repository.NewPostgresStore(db).WithinTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		exists, err := repos.Users().ExistsByEmail(ctx, DemoStudentEmail)
		if err != nil || exists {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(DemoStudentPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		u := user.User{ID: uuid.New(), Email: DemoStudentEmail, PasswordHash: string(hash), Role: user.RoleStudent}
		if err := repos.Users().Create(ctx, u); err != nil {
			return err
		}

		return repos.Users().CreateStudentProfile(ctx, user.StudentProfile{
			ID:             uuid.New(),
			UserID:         u.ID,
			FullName:       "John Doe",
			University:     ptr("Stanford University"),
			Major:          ptr("Computer Science"),
			GraduationYear: ptr(2025),
			GPA:            ptr("3.8"),
			Bio:            ptr("Passionate about building cool software and solving real-world problems."),
			ResumeURL:      ptr("https://example.com/resume.pdf"),
		})
	})
}
