package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// QueryRower is satisfied by *sql.DB and *sql.Tx.
type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CheckoutTables are required by the local checkout backend.
var CheckoutTables = []string{"public_orders", "reservations", "payment_sessions"}

// HasTable checks the table exists in the active schema (DATABASE()).
func HasTable(ctx context.Context, q QueryRower, table string) (bool, error) {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return name.Valid && name.String != "", nil
}

// RequireTables returns an error naming every missing table.
func RequireTables(ctx context.Context, q QueryRower, tables ...string) error {
	var missing []string
	for _, t := range tables {
		ok, err := HasTable(ctx, q, t)
		if err != nil {
			return fmt.Errorf("check table %s: %w", t, err)
		}
		if !ok {
			missing = append(missing, t)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing tables: %s", strings.Join(missing, ", "))
	}
	return nil
}
