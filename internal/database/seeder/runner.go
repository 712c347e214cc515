package seeder

import (
	"context"
	"fmt"

	"campus-jobs/internal/database"
	"campus-jobs/internal/pkg/logger"

	"go.uber.org/zap"
)

type Runner struct {
	Seeders []Seeder
	Log     *zap.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	log := logger.OrNop(r.Log)
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		log.Info("seeder finished", zap.String("seeder", s.Name()))
	}
	return nil
}
