package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bbqgrill/backend/internal/config"
	"github.com/bbqgrill/backend/internal/repository"
	"github.com/spf13/cobra"
)

const dropAllFile = "000_drop_all.sql"

func newMigrateCmd(a *app) *cobra.Command {
	var dir string
	var reset bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations (tables and location procedures)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			connString, err := a.cfg.ConnectionString(config.DefaultConnectionName)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			conn, err := a.connect(ctx, connString)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer conn.Close(context.WithoutCancel(ctx))

			if reset {
				if err := runDropAll(ctx, conn, dir); err != nil {
					return err
				}
			}
			applied, err := runIncremental(ctx, conn, dir)
			if err != nil {
				return err
			}
			cmd.Printf("applied %d migration(s)\n", applied)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "migrations", "directory holding NNN_name.up.sql files")
	cmd.Flags().BoolVar(&reset, "reset", false, "drop every object before migrating")
	return cmd
}

// collectUpFiles returns the .up.sql file names in dir, sorted.
func collectUpFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func ensureSchemaMigrations(ctx context.Context, conn repository.Conn) error {
	_, err := conn.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	return nil
}

func migrationApplied(ctx context.Context, conn repository.Conn, name string) (bool, error) {
	rows, err := conn.Query(ctx, "SELECT 1 FROM schema_migrations WHERE name = $1", name)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	found := rows.Next()
	return found, rows.Err()
}

// runIncremental applies every migration not yet recorded in
// schema_migrations, in file name order.
func runIncremental(ctx context.Context, conn repository.Conn, dir string) (int, error) {
	if err := ensureSchemaMigrations(ctx, conn); err != nil {
		return 0, err
	}
	files, err := collectUpFiles(dir)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, filename := range files {
		name := strings.TrimSuffix(filename, ".up.sql")

		done, err := migrationApplied(ctx, conn, name)
		if err != nil {
			return applied, fmt.Errorf("check migration %s: %w", name, err)
		}
		if done {
			continue
		}

		sql, err := os.ReadFile(filepath.Join(dir, filename))
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := conn.Exec(ctx, string(sql)); err != nil {
			return applied, fmt.Errorf("apply migration %s: %w", name, err)
		}
		if _, err := conn.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name); err != nil {
			return applied, fmt.Errorf("record migration %s: %w", name, err)
		}
		applied++
		slog.Info("migration applied", "migration", name)
	}
	return applied, nil
}

func runDropAll(ctx context.Context, conn repository.Conn, dir string) error {
	sql, err := os.ReadFile(filepath.Join(dir, dropAllFile))
	if err != nil {
		return fmt.Errorf("read %s: %w", dropAllFile, err)
	}
	if _, err := conn.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("drop all: %w", err)
	}
	slog.Info("all objects dropped")
	return nil
}
