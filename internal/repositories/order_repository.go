package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	intconfig "publicweb/internal/config"
	"publicweb/internal/domain"
	"publicweb/internal/domain/models"
)

// OrderRepository reads public checkout orders and records payment sessions.
type OrderRepository struct {
	DB *sql.DB
}

func (r OrderRepository) db() (*sql.DB, error) {
	if r.DB != nil {
		return r.DB, nil
	}
	if intconfig.DB != nil {
		return intconfig.DB, nil
	}
	return nil, domain.InternalError{Msg: "database not connected"}
}

// GetOrder fetches one public order with its trip summary fields.
func (r OrderRepository) GetOrder(ctx context.Context, id int64) (models.PublicOrder, error) {
	if id <= 0 {
		return models.PublicOrder{}, domain.ValidationError{Field: "order_id", Msg: "id invalid"}
	}
	db, err := r.db()
	if err != nil {
		return models.PublicOrder{}, err
	}

	query := `
		SELECT o.id,
		       COALESCE(o.status,'pending'),
		       COALESCE(o.trip_date,''),
		       COALESCE(o.departure_time,''),
		       COALESCE(rt.name,''),
		       COALESCE(o.board_at,''),
		       COALESCE(o.exit_at,''),
		       COALESCE(o.seat_count,0),
		       COALESCE(o.discount_total,0),
		       COALESCE(o.promo_total,0),
		       COALESCE(o.total,0),
		       COALESCE(o.paid_amount,0),
		       COALESCE(o.currency,'RON'),
		       o.expires_at,
		       o.created_at
		FROM public_orders o
		LEFT JOIN routes rt ON rt.id = o.route_id
		WHERE o.id=? LIMIT 1`

	var (
		o         models.PublicOrder
		expiresAt sql.NullTime
	)
	if err := db.QueryRowContext(ctx, query, id).Scan(
		&o.ID,
		&o.Status,
		&o.TripDate,
		&o.DepartureTime,
		&o.RouteName,
		&o.BoardAt,
		&o.ExitAt,
		&o.SeatCount,
		&o.DiscountTotal,
		&o.PromoTotal,
		&o.Total,
		&o.PaidAmount,
		&o.Currency,
		&expiresAt,
		&o.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PublicOrder{}, domain.NotFoundError{Resource: "order", Msg: msgOrderNotFound, Err: err}
		}
		return models.PublicOrder{}, domain.InternalError{Msg: "failed to load order", Err: err}
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		o.ExpiresAt = &t
	}
	return o, nil
}

const (
	msgOrderNotFound   = "Comanda nu a fost găsită."
	msgOrderNotPending = "Comanda nu mai așteaptă plata."
)

// ListReservationIDs returns the reservations created for a paid order.
func (r OrderRepository) ListReservationIDs(ctx context.Context, orderID int64) ([]int64, error) {
	db, err := r.db()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `SELECT id FROM reservations WHERE order_id=? ORDER BY id`, orderID)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list reservations", Err: err}
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, domain.InternalError{Msg: "failed to scan reservation", Err: err}
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "failed to list reservations", Err: err}
	}
	return ids, nil
}

// SavePaymentSession stores a new payment attempt and extends the order hold
// to the session expiry, inside one transaction.
func (r OrderRepository) SavePaymentSession(ctx context.Context, s models.PaymentSession) error {
	db, err := r.db()
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return domain.InternalError{Msg: "failed to start transaction", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO payment_sessions (id, order_id, amount, currency, form_url, expires_at, created_at)
		VALUES (?,?,?,?,?,?,?)`,
		s.ID, s.OrderID, s.Amount, s.Currency, s.FormURL, s.ExpiresAt, s.CreatedAt,
	); err != nil {
		return domain.InternalError{Msg: "failed to save payment session", Err: err}
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE public_orders SET expires_at=?, updated_at=? WHERE id=? AND status='pending'`,
		s.ExpiresAt, s.CreatedAt, s.OrderID,
	)
	if err != nil {
		return domain.InternalError{Msg: "failed to extend order", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ConflictError{Resource: "order", Msg: msgOrderNotPending}
	}

	if err := tx.Commit(); err != nil {
		return domain.InternalError{Msg: "failed to commit payment session", Err: err}
	}
	return nil
}

// ExpireStale marks pending orders whose hold ended before now as expired.
func (r OrderRepository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	db, err := r.db()
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx,
		`UPDATE public_orders SET status='expired', updated_at=? WHERE status='pending' AND expires_at IS NOT NULL AND expires_at < ?`,
		now, now,
	)
	if err != nil {
		return 0, domain.InternalError{Msg: "failed to expire orders", Err: err}
	}
	n, _ := res.RowsAffected()
	return n, nil
}
