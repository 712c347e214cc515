package domain

import (
	"context"

	"campus-jobs/internal/domain/application"
	"campus-jobs/internal/domain/job"
	"campus-jobs/internal/domain/user"
)

// Repositories hands out repositories bound to one connection or transaction.
type Repositories interface {
	Users() user.Repository
	Jobs() job.Repository
	Applications() application.Repository
	SavedJobs() application.SavedJobRepository
}

// Store is the storage boundary of the use cases. WithinTx runs fn against
// repositories sharing one transaction: it commits when fn returns nil and
// rolls back otherwise.
type Store interface {
	Repositories
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
