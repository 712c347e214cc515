package seeder

import (
	"context"
	"fmt"
	"strings"

	"campus-jobs/internal/database"
)

// EnsureTableColumns fails unless every listed column exists on the public
// table, naming all the missing ones. Seeders call it so a stale schema fails
// before any insert.
func EnsureTableColumns(ctx context.Context, db database.Querier, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if strings.TrimSpace(table) == "" {
		return fmt.Errorf("empty table")
	}

	rows, err := db.Query(ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1`,
		table,
	)
	if err != nil {
		return fmt.Errorf("read columns of %s: %w", table, err)
	}
	defer rows.Close()

	existing := make(map[string]bool, len(columns))
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		existing[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for _, col := range columns {
		if col == "" {
			return fmt.Errorf("empty column")
		}
		if !existing[col] {
			missing = append(missing, table+"."+col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema mismatch: missing columns %s", strings.Join(missing, ", "))
	}
	return nil
}
