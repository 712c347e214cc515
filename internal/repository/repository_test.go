package repository

import (
	"context"
	"testing"
	"time"

	"campus-jobs/internal/database/postgres"
	"campus-jobs/internal/domain"
	"campus-jobs/internal/domain/application"
	"campus-jobs/internal/domain/job"
	"campus-jobs/internal/domain/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*postgres.SQL, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return postgres.NewSQL(db), mock
}

var listingCols = []string{
	"id", "employer_id", "title", "description", "requirements",
	"location", "type", "work_mode", "salary", "is_active", "created_at", "updated_at",
	"e_id", "company_name", "logo_url",
}

func TestUserRepository_CreateMapsDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresUserRepository(db)

	id := uuid.New()
	mock.ExpectExec("INSERT INTO users").
		WithArgs(id, "ada@uni.edu", "hash", "student").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), user.User{ID: id, Email: " Ada@Uni.edu ", PasswordHash: "hash", Role: user.RoleStudent})
	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresUserRepository(db)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery("FROM users WHERE LOWER\\(email\\)").
		WithArgs("ada@uni.edu").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "role", "created_at", "updated_at"}).
			AddRow(id.String(), "ada@uni.edu", "hash", "employer", now, now))

	u, err := repo.GetByEmail(context.Background(), "ADA@uni.edu")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, user.RoleEmployer, u.Role)
}

func TestUserRepository_GetByEmailNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresUserRepository(db)

	mock.ExpectQuery("FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "role", "created_at", "updated_at"}))

	_, err := repo.GetByEmail(context.Background(), "nobody@uni.edu")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestUserRepository_UpdateStudentProfileNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresUserRepository(db)

	mock.ExpectQuery("UPDATE student_profiles SET").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	name := "Ada"
	_, err := repo.UpdateStudentProfile(context.Background(), uuid.New(), user.StudentProfileUpdate{FullName: &name})
	assert.ErrorIs(t, err, user.ErrProfileNotFound)
}

func TestJobRepository_ListActiveScansEmployerSummary(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresJobRepository(db)

	jobID, employerID := uuid.New(), uuid.New()
	orphanID := uuid.New()
	now := time.Now()
	logo := "https://cdn/logo.png"
	mock.ExpectQuery("WHERE j.is_active ORDER BY j.created_at DESC").
		WillReturnRows(sqlmock.NewRows(listingCols).
			AddRow(jobID.String(), employerID.String(), "Intern", "Build", `["Go","SQL"]`,
				"Remote", "internship", "remote", nil, true, now, now,
				employerID.String(), "TechCorp", logo).
			AddRow(orphanID.String(), uuid.NewString(), "Orphan", "x", `[]`,
				"Paris", "entry-level", "onsite", "40k", true, now, now,
				nil, nil, nil))

	got, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, jobID, got[0].ID)
	assert.Equal(t, []string{"Go", "SQL"}, got[0].Requirements)
	assert.Equal(t, job.TypeInternship, got[0].Type)
	assert.Nil(t, got[0].Salary)
	require.NotNil(t, got[0].Employer)
	assert.Equal(t, "TechCorp", got[0].Employer.CompanyName)
	assert.Equal(t, &logo, got[0].Employer.LogoURL)

	assert.Nil(t, got[1].Employer)
	assert.Equal(t, []string{}, got[1].Requirements)
	assert.Equal(t, job.WorkModeOnsite, got[1].WorkMode)
}

func TestJobRepository_CreateSendsRequirementsAsJSON(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresJobRepository(db)

	j := job.Job{
		ID: uuid.New(), EmployerID: uuid.New(), Title: "Intern", Description: "d",
		Requirements: []string{"Go", "SQL"}, Location: "Remote",
		Type: job.TypeInternship, WorkMode: job.WorkModeRemote, IsActive: true,
	}
	mock.ExpectExec("INSERT INTO jobs").
		WithArgs(j.ID, j.EmployerID, "Intern", "d", `["Go","SQL"]`, "Remote", "internship", "remote", nil, true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), j))
}

func TestJobRepository_GetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresJobRepository(db)

	mock.ExpectQuery("WHERE j.id = \\$1").WillReturnRows(sqlmock.NewRows(listingCols))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, job.ErrNotFound)
}

func TestJobRepository_DeleteScopedToOwner(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresJobRepository(db)

	id, owner := uuid.New(), uuid.New()
	mock.ExpectExec("DELETE FROM jobs WHERE id = \\$1 AND employer_id = \\$2").
		WithArgs(id, owner).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), id, owner)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestApplicationRepository_CreateMapsConstraintErrors(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresApplicationRepository(db)

	a := application.Application{ID: uuid.New(), JobID: uuid.New(), StudentID: uuid.New(), Status: application.StatusSubmitted}

	mock.ExpectExec("INSERT INTO applications").WillReturnError(&pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, repo.Create(context.Background(), a), application.ErrAlreadyApplied)

	mock.ExpectExec("INSERT INTO applications").WillReturnError(&pgconn.PgError{Code: "23503"})
	assert.ErrorIs(t, repo.Create(context.Background(), a), application.ErrJobMissing)
}

func TestApplicationRepository_ListApplicantsResolvesEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresApplicationRepository(db)

	jobID, appID, studentID := uuid.New(), uuid.New(), uuid.New()
	uni := "MIT"
	now := time.Now()
	mock.ExpectQuery("LEFT JOIN users u ON u.id = sp.user_id").
		WithArgs(jobID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "student_id", "full_name", "email", "university", "major", "gpa", "status", "cover_letter", "created_at",
		}).AddRow(appID.String(), studentID.String(), "Ada", "ada@uni.edu", uni, nil, nil, "submitted", nil, now))

	got, err := repo.ListApplicants(context.Background(), jobID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ada@uni.edu", got[0].Email)
	assert.Equal(t, &uni, got[0].University)
	assert.Nil(t, got[0].Major)
	assert.Equal(t, application.StatusSubmitted, got[0].Status)
}

func TestSavedJobRepository_DeleteReportsRemoval(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresSavedJobRepository(db)

	jobID, studentID := uuid.New(), uuid.New()
	mock.ExpectExec("DELETE FROM saved_jobs").WithArgs(jobID, studentID).WillReturnResult(sqlmock.NewResult(0, 1))

	removed, err := repo.Delete(context.Background(), jobID, studentID)
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestSavedJobRepository_CreateIgnoresConflict(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresSavedJobRepository(db)

	mock.ExpectExec("ON CONFLICT \\(job_id, student_id\\) DO NOTHING").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Create(context.Background(), application.SavedJob{ID: uuid.New(), JobID: uuid.New(), StudentID: uuid.New()})
	assert.NoError(t, err)
}

func TestPostgresStore_WithinTxRollsBackOnError(t *testing.T) {
	db, mock := newMock(t)
	store := NewPostgresStore(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO student_profiles").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := store.WithinTx(context.Background(), func(ctx context.Context, repos domain.Repositories) error {
		uid := uuid.New()
		if err := repos.Users().Create(ctx, user.User{ID: uid, Email: "a@b.co", Role: user.RoleStudent}); err != nil {
			return err
		}
		return repos.Users().CreateStudentProfile(ctx, user.StudentProfile{ID: uuid.New(), UserID: uid, FullName: "A"})
	})
	assert.ErrorIs(t, err, assert.AnError)
}
