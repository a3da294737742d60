package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates an order repository backed by Postgres.
// Order items are stored as a JSONB snapshot on the order row.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const orderColumns = `id, user_id, items, total_amount, customer_name, customer_phone,
	customer_email, delivery_address, delivery_method, payment_method, status,
	admin_notes, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, o *Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}
	return r.db.QueryRowContext(ctx, `
		INSERT INTO orders
		  (id, user_id, items, total_amount, customer_name, customer_phone,
		   customer_email, delivery_address, delivery_method, payment_method, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING created_at, updated_at`,
		o.ID, o.UserID, items, o.TotalAmount, o.CustomerName, o.CustomerPhone,
		nullable(o.CustomerEmail), o.DeliveryAddress, o.DeliveryMethod,
		o.PaymentMethod, o.Status,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
}

func scanOrder(scan func(...interface{}) error) (*Order, error) {
	o := &Order{}
	var items []byte
	var email, notes sql.NullString
	err := scan(&o.ID, &o.UserID, &items, &o.TotalAmount, &o.CustomerName,
		&o.CustomerPhone, &email, &o.DeliveryAddress, &o.DeliveryMethod,
		&o.PaymentMethod, &o.Status, &notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.CustomerEmail = email.String
	o.AdminNotes = notes.String
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("invalid items for order %s: %w", o.ID, err)
	}
	return o, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1`, uid)
	return scanOrder(row.Scan)
}

func (r *postgresRepo) List(ctx context.Context, status string) ([]*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status=$1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`
	return r.queryOrders(ctx, query, args...)
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID int64) ([]*Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`,
		userID)
}

func (r *postgresRepo) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *postgresRepo) UpdateNotes(ctx context.Context, id string, notes string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET admin_notes=$1, updated_at=NOW() WHERE id=$2`, notes, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *postgresRepo) Stats(ctx context.Context, from, to time.Time) (*Stats, error) {
	stats := &Stats{OrdersByStatus: make(map[string]int)}

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2 AND status <> 'cancelled'`,
		from, to,
	).Scan(&stats.TotalOrders, &stats.TotalRevenue)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY status`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.OrdersByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Item snapshots live in JSONB, so per-product sales come from
	// unnesting the items array.
	productRows, err := r.db.QueryContext(ctx, `
		SELECT item->>'product_id',
		       MAX(item->>'product_name'),
		       SUM((item->>'quantity')::int),
		       COUNT(DISTINCT o.id)
		FROM orders o, jsonb_array_elements(o.items) AS item
		WHERE o.created_at >= $1 AND o.created_at < $2 AND o.status <> 'cancelled'
		GROUP BY item->>'product_id'
		ORDER BY SUM((item->>'quantity')::int) DESC
		LIMIT 10`, from, to)
	if err != nil {
		return nil, err
	}
	defer productRows.Close()
	for productRows.Next() {
		var ps ProductSales
		if err := productRows.Scan(&ps.ProductID, &ps.ProductName, &ps.UnitsSold, &ps.OrderCount); err != nil {
			return nil, err
		}
		stats.TopProducts = append(stats.TopProducts, ps)
	}
	return stats, productRows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
