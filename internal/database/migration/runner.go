// Package migration applies the embedded schema migrations with goose.
package migration

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var files embed.FS

const dir = "sql"

type Command string

const (
	CommandUp     Command = "up"
	CommandDown   Command = "down"
	CommandStatus Command = "status"
)

// Runner wraps the goose package-level API so callers don't need to know about
// base filesystems and dialects.
type Runner struct {
	// seams for tests
	up     func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error
	down   func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error
	status func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error
}

func NewRunner() *Runner {
	return &Runner{
		up:     goose.UpContext,
		down:   goose.DownContext,
		status: goose.StatusContext,
	}
}

func (r *Runner) Run(ctx context.Context, db *sql.DB, cmd Command) error {
	if db == nil {
		return errors.New("nil db")
	}

	goose.SetBaseFS(files)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	switch cmd {
	case CommandUp:
		return r.up(ctx, db, dir)
	case CommandDown:
		return r.down(ctx, db, dir)
	case CommandStatus:
		return r.status(ctx, db, dir)
	default:
		return fmt.Errorf("unknown migration command %q", cmd)
	}
}

func (r *Runner) Up(ctx context.Context, db *sql.DB) error {
	return r.Run(ctx, db, CommandUp)
}
