package repository

import (
	"context"

	"campus-jobs/internal/database"
	"campus-jobs/internal/database/postgres"
	"campus-jobs/internal/domain/application"

	"github.com/google/uuid"
)

type PostgresApplicationRepository struct {
	db database.Querier
}

func NewPostgresApplicationRepository(db database.Querier) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, student_id, status::text, cover_letter, created_at, updated_at`

func (r *PostgresApplicationRepository) Exists(ctx context.Context, jobID, studentID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND student_id = $2)`,
		jobID, studentID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (id, job_id, student_id, status, cover_letter)
		 VALUES ($1, $2, $3, $4::application_status, $5)`,
		a.ID, a.JobID, a.StudentID, string(a.Status), a.CoverLetter,
	)
	switch {
	case postgres.IsUniqueViolation(err):
		return application.ErrAlreadyApplied
	case postgres.IsForeignKeyViolation(err):
		return application.ErrJobMissing
	}
	return err
}

func (r *PostgresApplicationRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]application.Application, error) {
	return r.list(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE student_id = $1
		 ORDER BY created_at DESC, id`,
		studentID,
	)
}

func (r *PostgresApplicationRepository) ListByStudentAndJob(ctx context.Context, studentID, jobID uuid.UUID) ([]application.Application, error) {
	return r.list(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE student_id = $1 AND job_id = $2
		 ORDER BY created_at DESC, id`,
		studentID, jobID,
	)
}

func (r *PostgresApplicationRepository) list(ctx context.Context, query string, args ...any) ([]application.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		var a application.Application
		var status string
		if err := rows.Scan(&a.ID, &a.JobID, &a.StudentID, &status, &a.CoverLetter, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		a.Status = application.Status(status)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) ListApplicants(ctx context.Context, jobID uuid.UUID) ([]application.Applicant, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.student_id, COALESCE(sp.full_name, ''), COALESCE(u.email, ''),
		        sp.university, sp.major, sp.gpa, a.status::text, a.cover_letter, a.created_at
		 FROM applications a
		 LEFT JOIN student_profiles sp ON sp.id = a.student_id
		 LEFT JOIN users u ON u.id = sp.user_id
		 WHERE a.job_id = $1
		 ORDER BY a.created_at DESC, a.id`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Applicant, 0)
	for rows.Next() {
		var a application.Applicant
		var status string
		if err := rows.Scan(
			&a.ApplicationID, &a.StudentID, &a.FullName, &a.Email,
			&a.University, &a.Major, &a.GPA, &status, &a.CoverLetter, &a.AppliedAt,
		); err != nil {
			return nil, err
		}
		a.Status = application.Status(status)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
