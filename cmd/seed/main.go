package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"campus-jobs/internal/config"
	"campus-jobs/internal/database/migration"
	dbpostgres "campus-jobs/internal/database/postgres"
	"campus-jobs/internal/database/seeder"
	"campus-jobs/internal/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	migrate := flag.Bool("migrate", false, "apply pending migrations before seeding")
	flag.Parse()

	if err := run(*migrate); err != nil {
		log.Printf("seed: %v", err)
		os.Exit(1)
	}
}

func run(migrate bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	lg, err := logger.New(cfg.App)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		lg.Error("failed to connect database", zap.Error(err))
		return err
	}
	defer func() { _ = db.Close() }()

	if migrate {
		if err := migration.NewRunner().Up(ctx, db.SQLDB()); err != nil {
			lg.Error("migration failed", zap.Error(err))
			return err
		}
	}

	r := seeder.Runner{Seeders: seeder.Defaults(), Log: lg}
	if err := r.Run(ctx, db); err != nil {
		lg.Error("seed failed", zap.Error(err))
		return err
	}

	lg.Info("database seeded",
		zap.String("employer", seeder.DemoEmployerEmail),
		zap.String("student", seeder.DemoStudentEmail),
	)
	return nil
}
