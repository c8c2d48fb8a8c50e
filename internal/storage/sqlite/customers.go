package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/StackOverflowed512/flyer-agent/internal/core"
	"github.com/StackOverflowed512/flyer-agent/pkg/log"
)

type CustomersRepo struct {
	db *sql.DB
}

func NewCustomersRepo(db *sql.DB) *CustomersRepo {
	return &CustomersRepo{db: db}
}

// SaveCustomer appends a row. Records are never updated or deduplicated.
func (r *CustomersRepo) SaveCustomer(ctx context.Context, data core.CustomerData) (int64, error) {
	query := `INSERT INTO customers
		(name, location, email, whatsapp, business_requirement, suggested_product, flyer_preference)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		nullString(data.Name),
		nullString(data.Location),
		nullString(data.Email),
		nullString(data.WhatsApp),
		nullString(data.BusinessRequirement),
		nullString(data.SuggestedProduct),
		nullString(data.FlyerPreference),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert customer: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	log.FromCtx(ctx).Debug().Int64("customer_id", id).Msg("customer data saved")
	return id, nil
}

// ListCustomers returns the newest records first.
func (r *CustomersRepo) ListCustomers(ctx context.Context, limit int) ([]core.StoredCustomer, error) {
	query := `SELECT id, name, location, email, whatsapp, business_requirement,
		suggested_product, flyer_preference, created_at
		FROM customers ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []core.StoredCustomer
	for rows.Next() {
		var c core.StoredCustomer
		var name, location, email, whatsapp, requirement, product, preference sql.NullString

		if err := rows.Scan(&c.ID, &name, &location, &email, &whatsapp,
			&requirement, &product, &preference, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}

		c.Name = name.String
		c.Location = location.String
		c.Email = email.String
		c.WhatsApp = whatsapp.String
		c.BusinessRequirement = requirement.String
		c.SuggestedProduct = product.String
		c.FlyerPreference = preference.String

		customers = append(customers, c)
	}

	return customers, rows.Err()
}
