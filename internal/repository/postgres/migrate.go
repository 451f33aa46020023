package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"fitsync/training-service/internal/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration is one named schema step.
type Migration struct {
	Name string
	SQL  string
}

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS migrations (
	id SERIAL PRIMARY KEY,
	name VARCHAR(255) UNIQUE NOT NULL,
	executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// Migrations returns the embedded migrations in apply order. A file named
// 0002_create_workout_plans_table.sql is recorded as create_workout_plans_table.
func Migrations() ([]Migration, error) {
	entries, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(entries)

	out := make([]Migration, 0, len(entries))
	for _, path := range entries {
		body, err := migrationFiles.ReadFile(path)
		if err != nil {
			return nil, err
		}
		base := strings.TrimSuffix(strings.TrimPrefix(path, "migrations/"), ".sql")
		if _, name, ok := strings.Cut(base, "_"); ok {
			base = name
		}
		out = append(out, Migration{Name: base, SQL: string(body)})
	}
	return out, nil
}

// Migrate applies every pending migration inside one transaction. Either all
// pending steps are recorded or none are.
func Migrate(ctx context.Context, db Beginner, log *logger.Logger) (applied []string, err error) {
	migrations, err := Migrations()
	if err != nil {
		return nil, err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("create migrations table: %w", err)
	}

	rows, err := tx.Query(ctx, "SELECT name FROM migrations")
	if err != nil {
		return nil, err
	}
	done := map[string]bool{}
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			rows.Close()
			return nil, err
		}
		done[name] = true
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, err
	}

	for _, m := range migrations {
		if done[m.Name] {
			continue
		}
		log.Info("Running migration", "name", m.Name)
		if _, err = tx.Exec(ctx, m.SQL); err != nil {
			return nil, fmt.Errorf("migration %s: %w", m.Name, err)
		}
		if _, err = tx.Exec(ctx, "INSERT INTO migrations (name) VALUES ($1)", m.Name); err != nil {
			return nil, fmt.Errorf("record migration %s: %w", m.Name, err)
		}
		applied = append(applied, m.Name)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	log.Info("Migrations complete", "applied", len(applied))
	return applied, nil
}
