package repository

import (
	"context"
	"encoding/json"

	"campus-jobs/internal/database"
	"campus-jobs/internal/database/postgres"
	"campus-jobs/internal/domain/job"

	"github.com/google/uuid"
)

type PostgresJobRepository struct {
	db database.Querier
}

func NewPostgresJobRepository(db database.Querier) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

// Requirements cross the driver boundary as a JSON array so that both pgx and
// database/sql drivers can carry them; order is kept through WITH ORDINALITY.
const listingSelect = `SELECT j.id, j.employer_id, j.title, j.description,
	COALESCE(array_to_json(j.requirements), '[]')::text,
	j.location, j.type::text, j.work_mode::text, j.salary, j.is_active, j.created_at, j.updated_at,
	e.id, e.company_name, e.logo_url
	FROM jobs j
	LEFT JOIN employer_profiles e ON e.id = j.employer_id`

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) error {
	reqs, err := json.Marshal(nonNil(j.Requirements))
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO jobs (id, employer_id, title, description, requirements, location, type, work_mode, salary, is_active)
		 VALUES ($1, $2, $3, $4,
		   ARRAY(SELECT e FROM jsonb_array_elements_text($5::jsonb) WITH ORDINALITY AS t(e, n) ORDER BY n),
		   $6, $7::job_type, $8::work_mode, $9, $10)`,
		j.ID, j.EmployerID, j.Title, j.Description, string(reqs),
		j.Location, string(j.Type), string(j.WorkMode), j.Salary, j.IsActive,
	)
	return err
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	l, err := r.GetListing(ctx, id)
	if err != nil {
		return job.Job{}, err
	}
	return l.Job, nil
}

func (r *PostgresJobRepository) GetListing(ctx context.Context, id uuid.UUID) (job.Listing, error) {
	l, err := scanListing(r.db.QueryRow(ctx, listingSelect+` WHERE j.id = $1`, id))
	if err != nil {
		if postgres.IsNoRows(err) {
			return job.Listing{}, job.ErrNotFound
		}
		return job.Listing{}, err
	}
	return l, nil
}

func (r *PostgresJobRepository) ListActive(ctx context.Context) ([]job.Listing, error) {
	return r.list(ctx, listingSelect+` WHERE j.is_active ORDER BY j.created_at DESC, j.id`)
}

func (r *PostgresJobRepository) ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]job.Listing, error) {
	return r.list(ctx, listingSelect+` WHERE j.employer_id = $1 ORDER BY j.created_at DESC, j.id`, employerID)
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id, employerID uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1 AND employer_id = $2`, id, employerID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresJobRepository) list(ctx context.Context, query string, args ...any) ([]job.Listing, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanListing(row database.Row) (job.Listing, error) {
	var (
		l            job.Listing
		reqs         string
		typ, mode    string
		employerID   *uuid.UUID
		companyName  *string
		employerLogo *string
	)
	err := row.Scan(
		&l.ID, &l.EmployerID, &l.Title, &l.Description, &reqs,
		&l.Location, &typ, &mode, &l.Salary, &l.IsActive, &l.CreatedAt, &l.UpdatedAt,
		&employerID, &companyName, &employerLogo,
	)
	if err != nil {
		return job.Listing{}, err
	}

	if err := json.Unmarshal([]byte(reqs), &l.Requirements); err != nil {
		return job.Listing{}, err
	}
	l.Requirements = nonNil(l.Requirements)
	l.Type = job.Type(typ)
	l.WorkMode = job.WorkMode(mode)

	if employerID != nil {
		l.Employer = &job.EmployerSummary{ID: *employerID, LogoURL: employerLogo}
		if companyName != nil {
			l.Employer.CompanyName = *companyName
		}
	}
	return l, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
