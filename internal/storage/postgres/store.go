// Package postgres is the customer store used when FLYER_DATABASE_URL is set.
package postgres

import (
	"context"
	"embed"
	"fmt"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
	"github.com/StackOverflowed512/flyer-agent/pkg/log"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{pool: pool}, nil
}

func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	// goose needs database/sql; the adapter borrows connections from the pool.
	db := stdlib.OpenDBFromPool(pool)

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(log.NewGooseLoggerFromCtx(ctx))

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, "migrations")
}

func (s *Store) Close() {
	s.pool.Close()
}

// SaveCustomer appends a row. Records are never updated or deduplicated.
func (s *Store) SaveCustomer(ctx context.Context, data core.CustomerData) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO customers
			(name, location, email, whatsapp, business_requirement, suggested_product, flyer_preference)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		nullable(data.Name),
		nullable(data.Location),
		nullable(data.Email),
		nullable(data.WhatsApp),
		nullable(data.BusinessRequirement),
		nullable(data.SuggestedProduct),
		nullable(data.FlyerPreference),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert customer: %w", err)
	}

	log.FromCtx(ctx).Debug().Int64("customer_id", id).Msg("customer data saved")
	return id, nil
}

// ListCustomers returns the newest records first.
func (s *Store) ListCustomers(ctx context.Context, limit int) ([]core.StoredCustomer, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id,
			COALESCE(name, ''), COALESCE(location, ''), COALESCE(email, ''), COALESCE(whatsapp, ''),
			COALESCE(business_requirement, ''), COALESCE(suggested_product, ''), COALESCE(flyer_preference, ''),
			created_at
		FROM customers ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (core.StoredCustomer, error) {
		var c core.StoredCustomer
		err := row.Scan(&c.ID, &c.Name, &c.Location, &c.Email, &c.WhatsApp,
			&c.BusinessRequirement, &c.SuggestedProduct, &c.FlyerPreference, &c.CreatedAt)
		return c, err
	})
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
