package job

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

type Repository interface {
	Create(ctx context.Context, j Job) error
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	GetListing(ctx context.Context, id uuid.UUID) (Listing, error)
	// ListActive returns active jobs, newest first.
	ListActive(ctx context.Context) ([]Listing, error)
	ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]Listing, error)
	// Delete removes the job only when employerID owns it and reports whether
	// a row was removed.
	Delete(ctx context.Context, id, employerID uuid.UUID) (bool, error)
}
