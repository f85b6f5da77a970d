package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed *.sql atlas.sum
var files embed.FS

// FS exposes the migration directory, atlas.sum included, for atlas.
func FS() fs.FS {
	return files
}

// Ordered returns the migration file names in apply order.
func Ordered() ([]string, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func Read(name string) (string, error) {
	b, err := files.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Version is the numeric prefix atlas uses, e.g. "001" for 001_initial_schema.sql.
func Version(name string) string {
	v, _, _ := strings.Cut(name, "_")
	return v
}

const revisionsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version    TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Apply runs every pending migration through pgx, one transaction per file,
// and returns the versions it applied. Used where the atlas binary is not
// available (containers, tests).
func Apply(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	if _, err := pool.Exec(ctx, revisionsTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	names, err := Ordered()
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, name := range names {
		version := Version(name)
		ok, err := applyOne(ctx, pool, name, version)
		if err != nil {
			return applied, err
		}
		if ok {
			applied = append(applied, version)
		}
	}
	return applied, nil
}

func applyOne(ctx context.Context, pool *pgxpool.Pool, name, version string) (bool, error) {
	sql, err := Read(name)
	if err != nil {
		return false, err
	}
	done := false
	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		// Serializes concurrent migrators on the same database.
		if _, err := tx.Exec(ctx, "LOCK TABLE schema_migrations IN EXCLUSIVE MODE"); err != nil {
			return err
		}
		var exists bool
		if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)", version).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return nil
		}
		if _, err := tx.Exec(ctx, sql); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", version); err != nil {
			return err
		}
		done = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("apply migration %s: %w", name, err)
	}
	return done, nil
}
