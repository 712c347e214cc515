package repository

import (
	"context"

	"campus-jobs/internal/database"
	"campus-jobs/internal/database/postgres"
	"campus-jobs/internal/domain/application"

	"github.com/google/uuid"
)

type PostgresSavedJobRepository struct {
	db database.Querier
}

func NewPostgresSavedJobRepository(db database.Querier) *PostgresSavedJobRepository {
	return &PostgresSavedJobRepository{db: db}
}

func (r *PostgresSavedJobRepository) Delete(ctx context.Context, jobID, studentID uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx,
		`DELETE FROM saved_jobs WHERE job_id = $1 AND student_id = $2`,
		jobID, studentID,
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresSavedJobRepository) Create(ctx context.Context, s application.SavedJob) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO saved_jobs (id, job_id, student_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (job_id, student_id) DO NOTHING`,
		s.ID, s.JobID, s.StudentID,
	)
	if postgres.IsForeignKeyViolation(err) {
		return application.ErrJobMissing
	}
	return err
}

func (r *PostgresSavedJobRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]application.SavedJob, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, job_id, student_id, created_at FROM saved_jobs
		 WHERE student_id = $1
		 ORDER BY created_at DESC, id`,
		studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.SavedJob, 0)
	for rows.Next() {
		var s application.SavedJob
		if err := rows.Scan(&s.ID, &s.JobID, &s.StudentID, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
