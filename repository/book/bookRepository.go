package bookrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/sumu9897/LibraryNext/apperr"
	"github.com/sumu9897/LibraryNext/model"
)

const bookCols = `id, title, author, genre, isbn, description, copies, availability, created_at, updated_at`

// ListQuery is the caller-shaped list request after the service has
// normalized it: Genre empty means no filter, SortBy is a stored column.
type ListQuery struct {
	Genre  string
	SortBy string
	Desc   bool
	Limit  int
}

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	List(ctx context.Context, q ListQuery) ([]model.Book, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Book, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// AdjustCopies applies delta to copies and refreshes availability in one
	// guarded UPDATE. applied is false when the row is missing or the guard
	// (copies + delta >= 0) failed; the caller distinguishes the two.
	AdjustCopies(ctx context.Context, id uuid.UUID, delta int) (b *model.Book, applied bool, err error)
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db} }

var dialect = goqu.Dialect("postgres")

func (r *repo) Create(ctx context.Context, b *model.Book) error {
	const q = `
INSERT INTO books (title, author, genre, isbn, description, copies, availability)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, q,
		b.Title, b.Author, b.Genre, b.ISBN, b.Description, b.Copies, b.Availability,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	return mapUnique(err)
}

func (r *repo) List(ctx context.Context, q ListQuery) ([]model.Book, error) {
	ds := dialect.From("books").
		Select(
			goqu.C("id"), goqu.C("title"), goqu.C("author"), goqu.C("genre"),
			goqu.C("isbn"), goqu.C("description"), goqu.C("copies"),
			goqu.C("availability"), goqu.C("created_at"), goqu.C("updated_at"),
		).
		Prepared(true)

	if q.Genre != "" {
		ds = ds.Where(goqu.C("genre").Eq(q.Genre))
	}
	order := goqu.C(q.SortBy).Asc()
	if q.Desc {
		order = goqu.C(q.SortBy).Desc()
	}
	ds = ds.Order(order).Limit(uint(q.Limit))

	sqlStr, args, err := ds.ToSQL()
	if err != nil {
		return nil, err
	}

	var out []model.Book
	if err := r.db.SelectContext(ctx, &out, sqlStr, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) Get(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	const q = `SELECT ` + bookCols + ` FROM books WHERE id = $1`
	var b model.Book
	if err := r.db.GetContext(ctx, &b, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.Book, error) {
	rec := goqu.Record{"updated_at": goqu.L("now()")}
	for k, v := range fields {
		rec[k] = v
	}

	ds := dialect.Update("books").
		Prepared(true).
		Set(rec).
		Where(goqu.C("id").Eq(id)).
		Returning(
			goqu.C("id"), goqu.C("title"), goqu.C("author"), goqu.C("genre"),
			goqu.C("isbn"), goqu.C("description"), goqu.C("copies"),
			goqu.C("availability"), goqu.C("created_at"), goqu.C("updated_at"),
		)

	sqlStr, args, err := ds.ToSQL()
	if err != nil {
		return nil, err
	}

	var b model.Book
	if err := r.db.GetContext(ctx, &b, sqlStr, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, mapUnique(err)
	}
	return &b, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) AdjustCopies(ctx context.Context, id uuid.UUID, delta int) (*model.Book, bool, error) {
	// Guard: condition and mutation are one statement, so concurrent
	// adjustments against the same row serialize inside Postgres and no
	// interleaving can drive copies negative.
	const q = `
UPDATE books
SET copies = copies + $2,
    availability = copies + $2 > 0,
    updated_at = now()
WHERE id = $1
  AND copies + $2 >= 0
RETURNING ` + bookCols
	var b model.Book
	if err := r.db.GetContext(ctx, &b, q, id, delta); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &b, true, nil
}

// mapUnique converts a unique-index violation into a Conflict, leaving other
// errors untouched.
func mapUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperr.Wrap(apperr.ErrConflict, "title and isbn must be unique", err)
	}
	return err
}
