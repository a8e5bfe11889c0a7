// Package sqlite is the SQL-backed Entity Store. Every repository runs its
// statements on the transaction carried by the context when there is one.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"go.uber.org/zap"

	"github.com/garyjia/expense-companion/internal/application/port"
	"github.com/garyjia/expense-companion/pkg/database"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

type contextKey string

const txKey contextKey = "tx"

// DB wraps sql.DB and implements TransactionManager
type DB struct {
	*sql.DB
	logger *zap.Logger
}

// NewDB creates a new database wrapper
func NewDB(sqlDB *sql.DB, logger *zap.Logger) *DB {
	return &DB{
		DB:     sqlDB,
		logger: logger,
	}
}

// Migrate applies the embedded schema
func Migrate(ctx context.Context, db *database.DB, logger *zap.Logger) error {
	return database.NewMigrator(db, logger).RunMigrations(ctx, migrationFS, "migrations")
}

// WithTransaction implements port.TransactionManager. Nested calls join the
// transaction already in ctx.
func (db *DB) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx := extractTx(ctx); tx != nil {
		return fn(ctx)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		db.logger.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txCtx := context.WithValue(ctx, txKey, tx)

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			db.logger.Error("Transaction panicked, rolled back", zap.Any("panic", p))
			panic(p)
		}
	}()

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			db.logger.Error("Failed to rollback transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		db.logger.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func extractTx(ctx context.Context) *sql.Tx {
	if tx, ok := ctx.Value(txKey).(*sql.Tx); ok {
		return tx
	}
	return nil
}

// exec returns the transaction in ctx or the database
func (db *DB) exec(ctx context.Context) executor {
	if tx := extractTx(ctx); tx != nil {
		return tx
	}
	return db.DB
}

// executor interface covers both *sql.DB and *sql.Tx
type executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Store bundles the sqlite repositories
type Store struct {
	db     *DB
	logger *zap.Logger
}

// NewStore creates the repositories over an opened, migrated database
func NewStore(sqlDB *sql.DB, logger *zap.Logger) *Store {
	return &Store{db: NewDB(sqlDB, logger), logger: logger}
}

// Port exposes the store through the repository interfaces
func (s *Store) Port() port.Store {
	return port.Store{
		Expenses:  NewExpenseRepository(s.db, s.logger),
		Reports:   NewReportRepository(s.db, s.logger),
		Receipts:  NewReceiptRepository(s.db, s.logger),
		Cards:     NewCardRepository(s.db, s.logger),
		Decisions: NewDecisionRepository(s.db, s.logger),
		Comments:  NewCommentRepository(s.db, s.logger),
		Tx:        s.db,
	}
}

// placeholders returns "?, ?, ?" for n arguments
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, 0, n*3)
	for i := 0; i < n; i++ {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = append(b, '?')
	}
	return string(b)
}

func stringArgs(ids []string) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// Verify interface compliance
var _ port.TransactionManager = (*DB)(nil)
