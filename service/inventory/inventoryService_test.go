// service/inventory/inventory_service_test.go
package inventorysvc_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sumu9897/LibraryNext/apperr"
	"github.com/sumu9897/LibraryNext/model"
	inventorysvc "github.com/sumu9897/LibraryNext/service/inventory"
)

// fakeStore mirrors the store's guarded-update contract: the condition and
// the mutation happen under one lock, like the single UPDATE statement.
type fakeStore struct {
	mu    sync.Mutex
	books map[uuid.UUID]*model.Book
}

func newFakeStore(books ...*model.Book) *fakeStore {
	f := &fakeStore{books: make(map[uuid.UUID]*model.Book)}
	for _, b := range books {
		f.books[b.ID] = b
	}
	return f
}

func (f *fakeStore) Get(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.books[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeStore) AdjustCopies(ctx context.Context, id uuid.UUID, delta int) (*model.Book, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.books[id]
	if !ok || b.Copies+delta < 0 {
		return nil, false, nil
	}
	b.Copies += delta
	b.Availability = model.AvailabilityFor(b.Copies)
	cp := *b
	return &cp, true, nil
}

func (f *fakeStore) copies(id uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.books[id].Copies
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testBook(copies int) *model.Book {
	return &model.Book{
		ID:           uuid.New(),
		Title:        "Dune",
		Genre:        model.GenreFantasy,
		ISBN:         "9780441172719",
		Copies:       copies,
		Availability: model.AvailabilityFor(copies),
	}
}

func TestReserve_Success(t *testing.T) {
	b := testBook(5)
	store := newFakeStore(b)
	svc := inventorysvc.New(store, testLogger())

	got, err := svc.Reserve(context.Background(), b.ID, 2)
	require.NoError(t, err)
	require.Equal(t, 3, got.Copies)
	require.True(t, got.Availability)
}

func TestReserve_QuantityValidation(t *testing.T) {
	b := testBook(5)
	svc := inventorysvc.New(newFakeStore(b), testLogger())

	_, err := svc.Reserve(context.Background(), b.ID, 0)
	require.Equal(t, apperr.ErrValidationFailed, apperr.Code(err))

	_, err = svc.Reserve(context.Background(), b.ID, -3)
	require.Equal(t, apperr.ErrValidationFailed, apperr.Code(err))
}

func TestReserve_NotFound(t *testing.T) {
	svc := inventorysvc.New(newFakeStore(), testLogger())

	_, err := svc.Reserve(context.Background(), uuid.New(), 1)
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
}

func TestReserve_InsufficientStock(t *testing.T) {
	b := testBook(1)
	store := newFakeStore(b)
	svc := inventorysvc.New(store, testLogger())

	_, err := svc.Reserve(context.Background(), b.ID, 2)
	require.Equal(t, apperr.ErrInsufficientStock, apperr.Code(err))
	require.Equal(t, 1, store.copies(b.ID), "a failed reserve must not decrement")
}

func TestReserve_DrainsToZero(t *testing.T) {
	b := testBook(5)
	store := newFakeStore(b)
	svc := inventorysvc.New(store, testLogger())

	got, err := svc.Reserve(context.Background(), b.ID, 5)
	require.NoError(t, err)
	require.Equal(t, 0, got.Copies)
	require.False(t, got.Availability)

	_, err = svc.Reserve(context.Background(), b.ID, 1)
	require.Equal(t, apperr.ErrInsufficientStock, apperr.Code(err))
}

func TestRelease_RestoresAvailability(t *testing.T) {
	b := testBook(0)
	store := newFakeStore(b)
	svc := inventorysvc.New(store, testLogger())

	got, err := svc.Release(context.Background(), b.ID, 3)
	require.NoError(t, err)
	require.Equal(t, 3, got.Copies)
	require.True(t, got.Availability)
}

func TestRelease_MissingBookIsNoop(t *testing.T) {
	svc := inventorysvc.New(newFakeStore(), testLogger())

	got, err := svc.Release(context.Background(), uuid.New(), 2)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestRelease_QuantityValidation(t *testing.T) {
	b := testBook(1)
	svc := inventorysvc.New(newFakeStore(b), testLogger())

	_, err := svc.Release(context.Background(), b.ID, 0)
	require.Equal(t, apperr.ErrValidationFailed, apperr.Code(err))
}

func TestConcurrentReserves_ExactlyOneWins(t *testing.T) {
	b := testBook(5)
	store := newFakeStore(b)
	svc := inventorysvc.New(store, testLogger())

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Reserve(context.Background(), b.ID, 3)
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch apperr.Code(err) {
		case apperr.ErrCode(""):
			ok++
		case apperr.ErrInsufficientStock:
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, 1, insufficient)
	require.Equal(t, 2, store.copies(b.ID))
}

func TestInterleavedAdjustments_NoLostUpdates(t *testing.T) {
	const initial = 50
	b := testBook(initial)
	store := newFakeStore(b)
	svc := inventorysvc.New(store, testLogger())

	var wg sync.WaitGroup
	var mu sync.Mutex
	reserved, released := 0, 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Reserve(context.Background(), b.ID, 1); err == nil {
				mu.Lock()
				reserved++
				mu.Unlock()
			}
		}()
	}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Release(context.Background(), b.ID, 1); err == nil {
				mu.Lock()
				released++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, initial-reserved+released, store.copies(b.ID))
}
