package repository

import (
	"context"

	"campus-jobs/internal/database"
	"campus-jobs/internal/domain"
	"campus-jobs/internal/domain/application"
	"campus-jobs/internal/domain/job"
	"campus-jobs/internal/domain/user"
)

// PostgresStore vends repositories bound either to the pool or to a single
// transaction.
type PostgresStore struct {
	db database.DB
	postgresRepos
}

func NewPostgresStore(db database.DB) *PostgresStore {
	return &PostgresStore{db: db, postgresRepos: postgresRepos{q: db}}
}

func (s *PostgresStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	return database.WithTx(ctx, s.db, func(ctx context.Context, tx database.Tx) error {
		return fn(ctx, postgresRepos{q: tx})
	})
}

type postgresRepos struct {
	q database.Querier
}

func (r postgresRepos) Users() user.Repository {
	return NewPostgresUserRepository(r.q)
}

func (r postgresRepos) Jobs() job.Repository {
	return NewPostgresJobRepository(r.q)
}

func (r postgresRepos) Applications() application.Repository {
	return NewPostgresApplicationRepository(r.q)
}

func (r postgresRepos) SavedJobs() application.SavedJobRepository {
	return NewPostgresSavedJobRepository(r.q)
}

var _ domain.Store = (*PostgresStore)(nil)
