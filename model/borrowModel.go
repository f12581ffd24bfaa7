// model/borrow.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// BorrowRecord is one outstanding borrow transaction. Book reference and
// quantity are immutable once created; deleting the record returns the
// reserved quantity to the book.
type BorrowRecord struct {
	ID        uuid.UUID `db:"id" json:"id"`
	BookID    uuid.UUID `db:"book_id" json:"book"`
	Quantity  int       `db:"quantity" json:"quantity"`
	DueDate   time.Time `db:"due_date" json:"dueDate"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type SummaryBook struct {
	Title string `json:"title"`
	ISBN  string `json:"isbn"`
}

// BorrowSummaryRow is one group of the borrow summary report: total borrowed
// quantity per book, joined with the book's identity fields.
type BorrowSummaryRow struct {
	Book          SummaryBook `json:"book"`
	TotalQuantity int64       `json:"totalQuantity"`
}
