// Package postgres is the local relational backend, built on a pgx connection
// pool. Column names are snake_case; the crm structs carry the camelCase API
// representation, so each query maps between the two explicitly.
package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Store wraps a PostgreSQL connection pool.
type Store struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// New creates a Store with a pgx connection pool.
func New(ctx context.Context, dsn string, logger *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	logger.Info("PostgreSQL connected")
	return &Store{db: pool, logger: logger}, nil
}

// Migrate reads and executes all .up.sql files from the migrations directory.
func (s *Store) Migrate(ctx context.Context, migrationsDir string) error {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, f := range files {
		data, err := os.ReadFile(filepath.Join(migrationsDir, f))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", f, err)
		}
		if _, err := s.db.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("exec migration %s: %w", f, err)
		}
		s.logger.Info("Migration applied", zap.String("file", f))
	}
	return nil
}

// VerifyActivityHierarchy checks that the parent_activity_id column, its
// foreign key and its index exist on the activities table.
func (s *Store) VerifyActivityHierarchy(ctx context.Context) error {
	var column string
	err := s.db.QueryRow(ctx, `
		SELECT column_name FROM information_schema.columns
		WHERE table_name = 'activities' AND column_name = 'parent_activity_id'`,
	).Scan(&column)
	if err != nil {
		return fmt.Errorf("parent_activity_id column missing: %w", err)
	}

	var constraint string
	err = s.db.QueryRow(ctx, `
		SELECT constraint_name FROM information_schema.table_constraints
		WHERE table_name = 'activities'
		  AND constraint_name = 'fk_parent_activity'
		  AND constraint_type = 'FOREIGN KEY'`,
	).Scan(&constraint)
	if err != nil {
		return fmt.Errorf("fk_parent_activity constraint missing: %w", err)
	}

	var index string
	err = s.db.QueryRow(ctx, `
		SELECT indexname FROM pg_indexes
		WHERE tablename = 'activities' AND indexname = 'idx_activities_parent_activity_id'`,
	).Scan(&index)
	if err != nil {
		return fmt.Errorf("idx_activities_parent_activity_id missing: %w", err)
	}
	return nil
}

// Pool exposes the underlying connection pool for callers that need raw SQL,
// like the integration tests seeding agreements.
func (s *Store) Pool() *pgxpool.Pool {
	return s.db
}

// Close shuts down the connection pool.
func (s *Store) Close() {
	s.db.Close()
}
