package product

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

// NewPostgresRepository creates a PostgreSQL-backed product repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const productColumns = `id, store_id, name, description, price, unit, stock, category, image_url, created_at, updated_at`

func (r *postgresRepository) List(ctx context.Context) ([]*Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
}

func (r *postgresRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*Product, error) {
	return r.query(ctx,
		`SELECT `+productColumns+` FROM products WHERE store_id = $1 ORDER BY created_at DESC`,
		storeID)
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, apperr.New(apperr.NotFound, "product not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "get product", err)
	}
	return p, nil
}

func (r *postgresRepository) Create(ctx context.Context, p *Product) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, store_id, name, description, price, unit, stock, category, image_url, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		p.ID, nullUUID(p.StoreID), p.Name, nullString(p.Description), p.Price, p.Unit,
		p.Stock, nullString(p.Category), nullString(p.ImageURL), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return apperr.Wrap(apperr.Storage, "insert product", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, p *Product) error {
	p.UpdatedAt = time.Now()
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET store_id=$1, name=$2, description=$3, price=$4, unit=$5,
		  stock=$6, category=$7, image_url=$8, updated_at=$9
		WHERE id=$10`,
		nullUUID(p.StoreID), p.Name, nullString(p.Description), p.Price, p.Unit,
		p.Stock, nullString(p.Category), nullString(p.ImageURL), p.UpdatedAt, p.ID)
	if err != nil {
		return apperr.Wrap(apperr.Storage, "update product", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.NotFound, "product not found")
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return apperr.Wrap(apperr.Storage, "delete product", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.NotFound, "product not found")
	}
	return nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (r *postgresRepository) query(ctx context.Context, q string, args ...interface{}) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "list products", err)
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, apperr.Wrap(apperr.Storage, "scan product", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*Product, error) {
	p := &Product{}
	var storeID, description, category, imageURL sql.NullString
	err := row.Scan(&p.ID, &storeID, &p.Name, &description, &p.Price, &p.Unit,
		&p.Stock, &category, &imageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if storeID.Valid {
		id, err := uuid.Parse(storeID.String)
		if err == nil {
			p.StoreID = &id
		}
	}
	p.Description = description.String
	p.Category = category.String
	p.ImageURL = imageURL.String
	return p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullUUID(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return *id
}
