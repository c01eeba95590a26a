package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/savdohub/savdo-backend/internal/apperr"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a PostgreSQL-backed order repository. Line
// items live in a jsonb column: they are immutable snapshots, never queried
// relationally.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const orderColumns = `id, phone, address, items, total, status, created_at, updated_at`

func (r *postgresRepository) List(ctx context.Context) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "list orders", err)
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, apperr.Wrap(apperr.Storage, "scan order", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, apperr.New(apperr.NotFound, "order not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "get order", err)
	}
	return o, nil
}

func (r *postgresRepository) Create(ctx context.Context, o *Order) error {
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	items, err := json.Marshal(o.Items)
	if err != nil {
		return apperr.Wrap(apperr.Storage, "encode order items", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO orders (id, phone, address, items, total, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		o.ID, o.Phone, o.Address, items, o.Total, o.Status, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return apperr.Wrap(apperr.Storage, "insert order", err)
	}
	return nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status=$1, updated_at=$2 WHERE id=$3`,
		status, time.Now(), id)
	if err != nil {
		return apperr.Wrap(apperr.Storage, "update order status", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.NotFound, "order not found")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*Order, error) {
	o := &Order{}
	var items []byte
	err := row.Scan(&o.ID, &o.Phone, &o.Address, &items, &o.Total, &o.Status,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, err
	}
	return o, nil
}
