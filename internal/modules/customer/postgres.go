package customer

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/savdohub/savdo-backend/internal/apperr"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a PostgreSQL-backed customer repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const customerColumns = `id, phone, name, email, address, password_hash, created_at, updated_at`

func (r *postgresRepository) List(ctx context.Context) ([]*Customer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+customerColumns+` FROM customers ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "list customers", err)
	}
	defer rows.Close()

	var customers []*Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, apperr.Wrap(apperr.Storage, "scan customer", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
}

func (r *postgresRepository) GetByPhone(ctx context.Context, phone string) (*Customer, error) {
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE phone = $1`, phone)
}

func (r *postgresRepository) getOne(ctx context.Context, query string, arg interface{}) (*Customer, error) {
	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, apperr.New(apperr.NotFound, "customer not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "get customer", err)
	}
	return c, nil
}

func (r *postgresRepository) Create(ctx context.Context, c *Customer) error {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (id, phone, name, email, address, password_hash, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		c.ID, c.Phone, nullString(c.Name), nullString(c.Email), nullString(c.Address),
		nullString(c.PasswordHash), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return apperr.Wrap(apperr.Storage, "insert customer", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, c *Customer) error {
	c.UpdatedAt = time.Now()
	res, err := r.db.ExecContext(ctx, `
		UPDATE customers SET phone=$1, name=$2, email=$3, address=$4, password_hash=$5, updated_at=$6
		WHERE id=$7`,
		c.Phone, nullString(c.Name), nullString(c.Email), nullString(c.Address),
		nullString(c.PasswordHash), c.UpdatedAt, c.ID)
	if err != nil {
		return apperr.Wrap(apperr.Storage, "update customer", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.NotFound, "customer not found")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCustomer(row rowScanner) (*Customer, error) {
	c := &Customer{}
	var name, email, address, hash sql.NullString
	err := row.Scan(&c.ID, &c.Phone, &name, &email, &address, &hash, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Name = name.String
	c.Email = email.String
	c.Address = address.String
	c.PasswordHash = hash.String
	return c, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
