// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/crmbase/crmdesk/internal/model"
	"github.com/crmbase/crmdesk/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateLead(ctx context.Context, lead *model.Lead) error {
	return queryCreateLead(ctx, s.db, lead)
}

func (s *PostgresStore) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	return queryGetLead(ctx, s.db, id)
}

func (s *PostgresStore) ListLeads(ctx context.Context) ([]*model.Lead, error) {
	return queryListLeads(ctx, s.db)
}

func (s *PostgresStore) UpdateLead(ctx context.Context, lead *model.Lead) error {
	return queryUpdateLead(ctx, s.db, lead)
}

func (s *PostgresStore) DeleteLead(ctx context.Context, id string) error {
	return queryDeleteLead(ctx, s.db, id)
}

func (s *PostgresStore) CreatePaymentRequest(ctx context.Context, pr *model.PaymentRequest) error {
	return queryCreatePaymentRequest(ctx, s.db, pr)
}

func (s *PostgresStore) GetPaymentRequest(ctx context.Context, id string) (*model.PaymentRequest, error) {
	return queryGetPaymentRequest(ctx, s.db, id)
}

func (s *PostgresStore) ListPaymentRequests(ctx context.Context) ([]*model.PaymentRequest, error) {
	return queryListPaymentRequests(ctx, s.db)
}

func (s *PostgresStore) UpdatePaymentRequest(ctx context.Context, pr *model.PaymentRequest) error {
	return queryUpdatePaymentRequest(ctx, s.db, pr)
}

func (s *PostgresStore) DeletePaymentRequest(ctx context.Context, id string) error {
	return queryDeletePaymentRequest(ctx, s.db, id)
}

func (s *PostgresStore) LookupIdempotencyKey(ctx context.Context, key string) (string, error) {
	return queryLookupIdempotencyKey(ctx, s.db, key)
}

func (s *PostgresStore) SaveIdempotencyKey(ctx context.Context, key, recordID string) error {
	return querySaveIdempotencyKey(ctx, s.db, key, recordID)
}

func (s *PostgresStore) RecordAudit(ctx context.Context, event *model.AuditEvent) error {
	return queryRecordAudit(ctx, s.db, event)
}

func (s *PostgresStore) ListAudit(ctx context.Context, entityID string) ([]*model.AuditEvent, error) {
	return queryListAudit(ctx, s.db, entityID)
}
