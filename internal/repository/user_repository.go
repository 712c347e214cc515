package repository

import (
	"context"
	"strings"

	"campus-jobs/internal/database"
	"campus-jobs/internal/database/postgres"
	"campus-jobs/internal/domain/user"

	"github.com/google/uuid"
)

type PostgresUserRepository struct {
	db database.Querier
}

func NewPostgresUserRepository(db database.Querier) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, password, role)
		 VALUES ($1, $2, $3, $4::user_role)`,
		u.ID, normalizeEmail(u.Email), u.PasswordHash, string(u.Role),
	)
	if postgres.IsUniqueViolation(err) {
		return user.ErrEmailTaken
	}
	return err
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return r.scanUser(r.db.QueryRow(ctx,
		`SELECT id, email, password, role::text, created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	))
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.scanUser(r.db.QueryRow(ctx,
		`SELECT id, email, password, role::text, created_at, updated_at
		 FROM users WHERE LOWER(email) = $1`,
		normalizeEmail(email),
	))
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = $1)`,
		normalizeEmail(email),
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) scanUser(row database.Row) (user.User, error) {
	var u user.User
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if postgres.IsNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}

const studentProfileColumns = `id, user_id, full_name, university, major, graduation_year, gpa, bio, resume_url, created_at, updated_at`

func (r *PostgresUserRepository) CreateStudentProfile(ctx context.Context, p user.StudentProfile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO student_profiles (id, user_id, full_name, university, major, graduation_year, gpa, bio, resume_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.UserID, p.FullName, p.University, p.Major, p.GraduationYear, p.GPA, p.Bio, p.ResumeURL,
	)
	return err
}

func (r *PostgresUserRepository) GetStudentProfileByUserID(ctx context.Context, userID uuid.UUID) (user.StudentProfile, error) {
	return scanStudentProfile(r.db.QueryRow(ctx,
		`SELECT `+studentProfileColumns+` FROM student_profiles WHERE user_id = $1`,
		userID,
	))
}

func (r *PostgresUserRepository) UpdateStudentProfile(ctx context.Context, userID uuid.UUID, upd user.StudentProfileUpdate) (user.StudentProfile, error) {
	return scanStudentProfile(r.db.QueryRow(ctx,
		`UPDATE student_profiles SET
		   full_name = COALESCE($2, full_name),
		   university = COALESCE($3, university),
		   major = COALESCE($4, major),
		   graduation_year = COALESCE($5, graduation_year),
		   gpa = COALESCE($6, gpa),
		   bio = COALESCE($7, bio),
		   resume_url = COALESCE($8, resume_url),
		   updated_at = NOW()
		 WHERE user_id = $1
		 RETURNING `+studentProfileColumns,
		userID, upd.FullName, upd.University, upd.Major, upd.GraduationYear, upd.GPA, upd.Bio, upd.ResumeURL,
	))
}

func scanStudentProfile(row database.Row) (user.StudentProfile, error) {
	var p user.StudentProfile
	err := row.Scan(
		&p.ID, &p.UserID, &p.FullName, &p.University, &p.Major, &p.GraduationYear,
		&p.GPA, &p.Bio, &p.ResumeURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return user.StudentProfile{}, user.ErrProfileNotFound
		}
		return user.StudentProfile{}, err
	}
	return p, nil
}

const employerProfileColumns = `id, user_id, company_name, industry, company_size, website, description, logo_url, created_at, updated_at`

func (r *PostgresUserRepository) CreateEmployerProfile(ctx context.Context, p user.EmployerProfile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO employer_profiles (id, user_id, company_name, industry, company_size, website, description, logo_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.UserID, p.CompanyName, p.Industry, p.CompanySize, p.Website, p.Description, p.LogoURL,
	)
	return err
}

func (r *PostgresUserRepository) GetEmployerProfileByUserID(ctx context.Context, userID uuid.UUID) (user.EmployerProfile, error) {
	return scanEmployerProfile(r.db.QueryRow(ctx,
		`SELECT `+employerProfileColumns+` FROM employer_profiles WHERE user_id = $1`,
		userID,
	))
}

func (r *PostgresUserRepository) UpdateEmployerProfile(ctx context.Context, userID uuid.UUID, upd user.EmployerProfileUpdate) (user.EmployerProfile, error) {
	return scanEmployerProfile(r.db.QueryRow(ctx,
		`UPDATE employer_profiles SET
		   company_name = COALESCE($2, company_name),
		   industry = COALESCE($3, industry),
		   company_size = COALESCE($4, company_size),
		   website = COALESCE($5, website),
		   description = COALESCE($6, description),
		   logo_url = COALESCE($7, logo_url),
		   updated_at = NOW()
		 WHERE user_id = $1
		 RETURNING `+employerProfileColumns,
		userID, upd.CompanyName, upd.Industry, upd.CompanySize, upd.Website, upd.Description, upd.LogoURL,
	))
}

func scanEmployerProfile(row database.Row) (user.EmployerProfile, error) {
	var p user.EmployerProfile
	err := row.Scan(
		&p.ID, &p.UserID, &p.CompanyName, &p.Industry, &p.CompanySize, &p.Website,
		&p.Description, &p.LogoURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return user.EmployerProfile{}, user.ErrProfileNotFound
		}
		return user.EmployerProfile{}, err
	}
	return p, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
