package seeder

import (
	"context"

	"campus-jobs/internal/database"
)

// Seeder inserts fixed demo data. Run must be safe to repeat.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
