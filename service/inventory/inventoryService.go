// Package inventorysvc keeps a book's copy count and availability flag
// consistent under concurrent reservations and releases. All atomicity lives
// in the store's guarded adjustment; this service maps guard misses to the
// caller-facing outcomes.
package inventorysvc

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sumu9897/LibraryNext/apperr"
	"github.com/sumu9897/LibraryNext/model"
)

// BookStore is the slice of the book repository the inventory engine needs.
type BookStore interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Book, error)
	AdjustCopies(ctx context.Context, id uuid.UUID, delta int) (b *model.Book, applied bool, err error)
}

type Service interface {
	// Reserve decrements copies by quantity, or fails with NotFound /
	// InsufficientStock without mutating anything.
	Reserve(ctx context.Context, bookID uuid.UUID, quantity int) (*model.Book, error)

	// Release increments copies by quantity. A missing book is a designed
	// no-op: (nil, nil).
	Release(ctx context.Context, bookID uuid.UUID, quantity int) (*model.Book, error)
}

type service struct {
	books BookStore
	log   *slog.Logger
}

func New(books BookStore, log *slog.Logger) Service {
	return &service{books: books, log: log}
}

func (s *service) Reserve(ctx context.Context, bookID uuid.UUID, quantity int) (*model.Book, error) {
	if quantity < 1 {
		return nil, apperr.New(apperr.ErrValidationFailed, "quantity must be at least 1")
	}

	b, applied, err := s.books.AdjustCopies(ctx, bookID, -quantity)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrStorageFailure, "reserve copies", err)
	}
	if applied {
		return b, nil
	}

	// Guard miss: either the book is gone or the stock ran short. One
	// follow-up read decides which; it never mutates.
	cur, err := s.books.Get(ctx, bookID)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrStorageFailure, "reserve copies", err)
	}
	if cur == nil {
		return nil, apperr.New(apperr.ErrNotFound, "book not found")
	}
	return nil, apperr.New(apperr.ErrInsufficientStock, "not enough copies available")
}

func (s *service) Release(ctx context.Context, bookID uuid.UUID, quantity int) (*model.Book, error) {
	if quantity < 1 {
		return nil, apperr.New(apperr.ErrValidationFailed, "quantity must be at least 1")
	}

	b, applied, err := s.books.AdjustCopies(ctx, bookID, quantity)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrStorageFailure, "release copies", err)
	}
	if !applied {
		// A positive delta always satisfies the guard, so a miss means the
		// book was deleted independently. Not an error.
		s.log.Info("release skipped, book no longer exists", "book_id", bookID)
		return nil, nil
	}
	return b, nil
}
