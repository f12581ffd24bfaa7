package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// New opens a pgx pool for the given DSN and wraps it in a sqlx handle.
func New(ctx context.Context, dsn string) (*sqlx.DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	db := sqlx.NewDb(stdlib.OpenDBFromPool(pool), "pgx")
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS books (
	id           uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	title        text NOT NULL UNIQUE,
	author       text NOT NULL,
	genre        text NOT NULL,
	isbn         text NOT NULL UNIQUE,
	description  text NOT NULL DEFAULT 'No description provided',
	copies       int NOT NULL CHECK (copies >= 0),
	availability boolean NOT NULL DEFAULT false,
	created_at   timestamptz NOT NULL DEFAULT now(),
	updated_at   timestamptz NOT NULL DEFAULT now()
);

-- No foreign key on book_id: books are deletable independently of their
-- outstanding borrow records; the join in the summary query skips orphans.
CREATE TABLE IF NOT EXISTS borrows (
	id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	book_id    uuid NOT NULL,
	quantity   int NOT NULL CHECK (quantity >= 1),
	due_date   timestamptz NOT NULL,
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_borrows_book_id ON borrows (book_id);
`

// Migrate creates the two tables on boot.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
