package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// PostgresSlot stores slot payloads in a two-column table, one row per key.
type PostgresSlot struct {
	db *sqlx.DB
}

// NewPostgresSlot constructs a PostgresSlot with an existing connection.
func NewPostgresSlot(db *sqlx.DB) *PostgresSlot {
	return &PostgresSlot{db: db}
}

// EnsureTable ensures the slots table exists (idempotent).
// Fields:
// - key varchar(64) PRIMARY KEY
// - payload text
// - updated_at timestamptz
func (r *PostgresSlot) EnsureTable(ctx context.Context) error {
	// Check if table exists using to_regclass (Postgres). If it exists, skip creation.
	var tblName sql.NullString
	if err := r.db.QueryRowxContext(ctx, "SELECT to_regclass('public.slots')").Scan(&tblName); err != nil {
		return err
	}
	if !tblName.Valid {
		const createTable = `CREATE TABLE slots (
			key varchar(64) PRIMARY KEY,
			payload text NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT NOW()
		)`
		if _, err := r.db.ExecContext(ctx, createTable); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresSlot) Load(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	const q = `SELECT payload FROM slots WHERE key = $1`
	if err := r.db.QueryRowxContext(ctx, q, key).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotEmpty
		}
		return nil, err
	}
	return payload, nil
}

func (r *PostgresSlot) Save(ctx context.Context, key string, payload []byte) error {
	const q = `INSERT INTO slots (key, payload, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()`
	_, err := r.db.ExecContext(ctx, q, key, payload)
	return err
}

func (r *PostgresSlot) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM slots WHERE key = $1`, key)
	return err
}
