package user

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/savdohub/savdo-backend/internal/apperr"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a PostgreSQL-backed account repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const userColumns = `id, username, password_hash, role, store_name,
	subscription_price, subscription_balance, subscription_started_at,
	telegram_chat_id, created_at, updated_at`

func (r *postgresRepository) List(ctx context.Context) ([]*User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "list users", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, apperr.Wrap(apperr.Storage, "scan user", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *postgresRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *postgresRepository) getOne(ctx context.Context, query string, arg interface{}) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "get user", err)
	}
	return u, nil
}

func (r *postgresRepository) Create(ctx context.Context, u *User) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users
		  (id, username, password_hash, role, store_name,
		   subscription_price, subscription_balance, subscription_started_at,
		   telegram_chat_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		u.ID, u.Username, u.PasswordHash, u.Role, nullString(u.StoreName),
		nullDecimal(u.SubscriptionPrice), u.SubscriptionBalance, u.SubscriptionStartedAt,
		nullInt64(u.TelegramChatID), u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return apperr.Wrap(apperr.Storage, "insert user", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, u *User) error {
	u.UpdatedAt = time.Now()
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET
		  username=$1, password_hash=$2, role=$3, store_name=$4,
		  subscription_price=$5, subscription_balance=$6, subscription_started_at=$7,
		  telegram_chat_id=$8, updated_at=$9
		WHERE id=$10`,
		u.Username, u.PasswordHash, u.Role, nullString(u.StoreName),
		nullDecimal(u.SubscriptionPrice), u.SubscriptionBalance, u.SubscriptionStartedAt,
		nullInt64(u.TelegramChatID), u.UpdatedAt, u.ID)
	if err != nil {
		return apperr.Wrap(apperr.Storage, "update user", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.NotFound, "user not found")
	}
	return nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*User, error) {
	u := &User{}
	var storeName sql.NullString
	var price decimal.NullDecimal
	var startedAt sql.NullTime
	var chatID sql.NullInt64
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Role, &storeName,
		&price, &u.SubscriptionBalance, &startedAt,
		&chatID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.StoreName = storeName.String
	if price.Valid {
		u.SubscriptionPrice = &price.Decimal
	}
	if startedAt.Valid {
		t := startedAt.Time
		u.SubscriptionStartedAt = &t
	}
	if chatID.Valid {
		u.TelegramChatID = &chatID.Int64
	}
	return u, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
