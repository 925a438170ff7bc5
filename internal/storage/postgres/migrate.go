package postgres

import (
	"context"
	"fmt"

	"bsc-pair-indexer/internal/storage/migrations"
)

// RunMigrations applies all embedded SQL files in lexical order.
// Migrations are expected to be idempotent.
func RunMigrations(ctx context.Context, pool *Pool) error {
	files, err := migrations.PostgresFiles()
	if err != nil {
		return err
	}
	for _, file := range files {
		for _, stmt := range file.Statements {
			if _, err := pool.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("apply migration %s: %w", file.Name, err)
			}
		}
	}
	return nil
}
