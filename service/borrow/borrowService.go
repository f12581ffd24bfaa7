// Package borrowsvc owns the borrow lifecycle: a reservation against the
// inventory engine followed by record persistence, with a compensating
// release when the second step fails, plus the read-only summary report.
package borrowsvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/sumu9897/LibraryNext/apperr"
	"github.com/sumu9897/LibraryNext/model"
	eventsrepo "github.com/sumu9897/LibraryNext/repository/events"
)

// Inventory is the reservation engine the coordinator drives.
type Inventory interface {
	Reserve(ctx context.Context, bookID uuid.UUID, quantity int) (*model.Book, error)
	Release(ctx context.Context, bookID uuid.UUID, quantity int) (*model.Book, error)
}

type Repo interface {
	Insert(ctx context.Context, rec *model.BorrowRecord) error
	DeleteReturning(ctx context.Context, id uuid.UUID) (*model.BorrowRecord, error)
	Summary(ctx context.Context) ([]model.BorrowSummaryRow, error)
}

// Cache backs the summary report; may be nil (caching disabled).
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type Service interface {
	// Create validates the request, reserves copies and records the borrow.
	// Reservation failure blocks record creation.
	Create(ctx context.Context, bookID uuid.UUID, quantity int, dueDate time.Time) (*model.BorrowRecord, error)

	// Delete returns a borrow: the record is removed and its quantity is
	// released back to the book.
	Delete(ctx context.Context, borrowID uuid.UUID) error

	Summary(ctx context.Context) ([]model.BorrowSummaryRow, error)
}

const (
	summaryCacheKey = "borrow:summary"
	summaryCacheTTL = 30 * time.Second
)

type service struct {
	inv   Inventory
	r     Repo
	cache Cache
	pub   eventsrepo.Publisher
	log   *slog.Logger
	group singleflight.Group
}

// New wires the coordinator. cache and pub are optional; pass nil to disable.
func New(inv Inventory, r Repo, cache Cache, pub eventsrepo.Publisher, log *slog.Logger) Service {
	return &service{inv: inv, r: r, cache: cache, pub: pub, log: log}
}

func (s *service) Create(ctx context.Context, bookID uuid.UUID, quantity int, dueDate time.Time) (*model.BorrowRecord, error) {
	if quantity < 1 {
		return nil, apperr.New(apperr.ErrValidationFailed, "quantity must be at least 1")
	}
	if !dueDate.After(time.Now()) {
		return nil, apperr.New(apperr.ErrValidationFailed, "due date must be in the future")
	}

	if _, err := s.inv.Reserve(ctx, bookID, quantity); err != nil {
		return nil, err
	}

	rec := &model.BorrowRecord{
		BookID:   bookID,
		Quantity: quantity,
		DueDate:  dueDate,
	}
	if err := s.r.Insert(ctx, rec); err != nil {
		// The reservation already happened; give the copies back so they
		// are not permanently lost. Best effort.
		if _, rerr := s.inv.Release(ctx, bookID, quantity); rerr != nil {
			s.log.Error("compensating release failed after borrow insert error",
				"book_id", bookID, "quantity", quantity, "insert_err", err, "release_err", rerr)
			return nil, apperr.Wrap(apperr.ErrStorageFailure,
				"create borrow record (compensating release also failed)", err)
		}
		return nil, apperr.Wrap(apperr.ErrStorageFailure, "create borrow record", err)
	}

	s.invalidateSummary(ctx)
	s.publish(ctx, eventsrepo.EventBorrowCreated, rec)
	return rec, nil
}

func (s *service) Delete(ctx context.Context, borrowID uuid.UUID) error {
	rec, err := s.r.DeleteReturning(ctx, borrowID)
	if err != nil {
		return apperr.Wrap(apperr.ErrStorageFailure, "delete borrow record", err)
	}
	if rec == nil {
		return apperr.New(apperr.ErrNotFound, "borrow record not found")
	}

	// No-op when the book was deleted independently.
	if _, err := s.inv.Release(ctx, rec.BookID, rec.Quantity); err != nil {
		s.log.Error("release failed after borrow delete",
			"borrow_id", borrowID, "book_id", rec.BookID, "quantity", rec.Quantity, "err", err)
		return apperr.Wrap(apperr.ErrStorageFailure, "release copies after return", err)
	}

	s.invalidateSummary(ctx)
	s.publish(ctx, eventsrepo.EventBorrowReturned, rec)
	return nil
}

func (s *service) Summary(ctx context.Context) ([]model.BorrowSummaryRow, error) {
	rows, err := s.loadSummary(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrStorageFailure, "borrow summary", err)
	}
	if len(rows) == 0 {
		return nil, apperr.New(apperr.ErrEmptyResult, "no borrow records found")
	}
	return rows, nil
}

func (s *service) loadSummary(ctx context.Context) ([]model.BorrowSummaryRow, error) {
	if s.cache == nil {
		return s.r.Summary(ctx)
	}

	var cached []model.BorrowSummaryRow
	hit, err := s.cache.Get(ctx, summaryCacheKey, &cached)
	if err != nil {
		s.log.Warn("summary cache read failed", "err", err)
	} else if hit {
		return cached, nil
	}

	// singleflight collapses concurrent misses into one aggregation query.
	v, err, _ := s.group.Do(summaryCacheKey, func() (any, error) {
		rows, err := s.r.Summary(ctx)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			if err := s.cache.Set(ctx, summaryCacheKey, rows, summaryCacheTTL); err != nil {
				s.log.Warn("summary cache write failed", "err", err)
			}
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.BorrowSummaryRow), nil
}

func (s *service) invalidateSummary(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, summaryCacheKey); err != nil {
		s.log.Warn("summary cache invalidation failed", "err", err)
	}
}

func (s *service) publish(ctx context.Context, event string, rec *model.BorrowRecord) {
	if s.pub == nil {
		return
	}
	err := s.pub.Publish(ctx, eventsrepo.Activity{
		Event:      event,
		BorrowID:   rec.ID,
		BookID:     rec.BookID,
		Quantity:   rec.Quantity,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.log.Warn("activity publish failed", "event", event, "borrow_id", rec.ID, "err", err)
	}
}
