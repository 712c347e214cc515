package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"campus-jobs/internal/config"
	"campus-jobs/internal/database/migration"
	dbpostgres "campus-jobs/internal/database/postgres"
	"campus-jobs/internal/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: migrate [up|down|status]\n")
	}
	flag.Parse()

	cmd := migration.CommandUp
	if arg := strings.TrimSpace(flag.Arg(0)); arg != "" {
		cmd = migration.Command(arg)
	}
	switch cmd {
	case migration.CommandUp, migration.CommandDown, migration.CommandStatus:
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err := run(cmd); err != nil {
		log.Printf("migrate %s: %v", cmd, err)
		os.Exit(1)
	}
}

func run(cmd migration.Command) error {
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

	if err := migration.NewRunner().Run(ctx, db.SQLDB(), cmd); err != nil {
		lg.Error("migration failed", zap.String("command", string(cmd)), zap.Error(err))
		return err
	}
	lg.Info("migration finished", zap.String("command", string(cmd)))
	return nil
}
