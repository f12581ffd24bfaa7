// repository/borrow/repo.go
package borrowrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sumu9897/LibraryNext/model"
)

type Repo interface {
	Insert(ctx context.Context, rec *model.BorrowRecord) error

	// DeleteReturning removes a borrow record and returns what it was, or
	// (nil, nil) when no record with that id exists.
	DeleteReturning(ctx context.Context, id uuid.UUID) (*model.BorrowRecord, error)

	// Summary groups outstanding borrows by book, summing quantities and
	// joining book identity. Books that no longer resolve are skipped by the
	// inner join. No ordering guarantee.
	Summary(ctx context.Context) ([]model.BorrowSummaryRow, error)
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, rec *model.BorrowRecord) error {
	const q = `
INSERT INTO borrows (book_id, quantity, due_date)
VALUES ($1, $2, $3)
RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, q, rec.BookID, rec.Quantity, rec.DueDate).
		Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
}

func (r *repo) DeleteReturning(ctx context.Context, id uuid.UUID) (*model.BorrowRecord, error) {
	const q = `
DELETE FROM borrows
WHERE id = $1
RETURNING id, book_id, quantity, due_date, created_at, updated_at`
	var rec model.BorrowRecord
	if err := r.db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

type summaryRow struct {
	Title         string `db:"title"`
	ISBN          string `db:"isbn"`
	TotalQuantity int64  `db:"total_quantity"`
}

func (r *repo) Summary(ctx context.Context) ([]model.BorrowSummaryRow, error) {
	const q = `
SELECT b.title, b.isbn, SUM(br.quantity)::BIGINT AS total_quantity
FROM borrows br
JOIN books b ON b.id = br.book_id
GROUP BY b.id, b.title, b.isbn`
	var rows []summaryRow
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}

	out := make([]model.BorrowSummaryRow, len(rows))
	for i, row := range rows {
		out[i] = model.BorrowSummaryRow{
			Book:          model.SummaryBook{Title: row.Title, ISBN: row.ISBN},
			TotalQuantity: row.TotalQuantity,
		}
	}
	return out, nil
}
