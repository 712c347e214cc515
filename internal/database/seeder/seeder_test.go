package seeder

import (
	"context"
	"errors"
	"testing"

	"campus-jobs/internal/database"
	"campus-jobs/internal/database/postgres"

	"github.com/DATA-DOG/go-sqlmock"
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

func expectColumns(mock sqlmock.Sqlmock, table string, cols ...string) {
	rows := sqlmock.NewRows([]string{"column_name"})
	for _, c := range cols {
		rows.AddRow(c)
	}
	mock.ExpectQuery("FROM information_schema.columns").WithArgs(table).WillReturnRows(rows)
}

func TestEnsureTableColumns_Missing(t *testing.T) {
	db, mock := newMock(t)
	expectColumns(mock, "jobs", "id", "title")

	err := EnsureTableColumns(context.Background(), db, "jobs", "id", "is_active")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jobs.is_active")
}

func TestEmployerSeeder_SkipsWhenPresent(t *testing.T) {
	db, mock := newMock(t)
	expectColumns(mock, "employer_profiles", "id", "user_id", "company_name", "logo_url")
	expectColumns(mock, "jobs", "id", "employer_id", "requirements", "is_active")
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").WithArgs(DemoEmployerEmail).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectCommit()

	require.NoError(t, EmployerSeeder{}.Run(context.Background(), db))
}

func TestStudentSeeder_SkipsWhenPresent(t *testing.T) {
	db, mock := newMock(t)
	expectColumns(mock, "student_profiles", "id", "user_id", "full_name", "resume_url")
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").WithArgs(DemoStudentEmail).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectCommit()

	require.NoError(t, StudentSeeder{}.Run(context.Background(), db))
}

type stubSeeder struct {
	name string
	err  error
	ran  *[]string
}

func (s stubSeeder) Name() string { return s.name }

func (s stubSeeder) Run(context.Context, database.DB) error {
	*s.ran = append(*s.ran, s.name)
	return s.err
}

func TestRunner_StopsAtFirstFailure(t *testing.T) {
	db, _ := newMock(t)
	var ran []string
	boom := errors.New("boom")

	err := Runner{Seeders: []Seeder{
		stubSeeder{name: "a", ran: &ran},
		nil,
		stubSeeder{name: "b", err: boom, ran: &ran},
		stubSeeder{name: "c", ran: &ran},
	}}.Run(context.Background(), db)

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "seed b")
	assert.Equal(t, []string{"a", "b"}, ran)
}

func TestDefaults(t *testing.T) {
	names := []string{}
	for _, s := range Defaults() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"demo_employer", "demo_student"}, names)
}
