// service/book/book_service_test.go
package booksvc_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sumu9897/LibraryNext/apperr"
	"github.com/sumu9897/LibraryNext/model"
	bookrepo "github.com/sumu9897/LibraryNext/repository/book"
	booksvc "github.com/sumu9897/LibraryNext/service/book"
)

type repoMock struct {
	createFn func(ctx context.Context, b *model.Book) error
	listFn   func(ctx context.Context, q bookrepo.ListQuery) ([]model.Book, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*model.Book, error)
	updateFn func(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.Book, error)
	deleteFn func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *repoMock) Create(ctx context.Context, b *model.Book) error { return m.createFn(ctx, b) }
func (m *repoMock) List(ctx context.Context, q bookrepo.ListQuery) ([]model.Book, error) {
	return m.listFn(ctx, q)
}
func (m *repoMock) Get(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	return m.getFn(ctx, id)
}
func (m *repoMock) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.Book, error) {
	return m.updateFn(ctx, id, fields)
}
func (m *repoMock) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.deleteFn(ctx, id)
}

func validCreate() booksvc.CreateInput {
	return booksvc.CreateInput{
		Title:  "Dune",
		Author: "Frank Herbert",
		Genre:  "FANTASY",
		ISBN:   "9780441172719",
		Copies: 3,
	}
}

func TestCreate_Validation(t *testing.T) {
	s := booksvc.New(&repoMock{})
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*booksvc.CreateInput)
	}{
		{"empty title", func(in *booksvc.CreateInput) { in.Title = "" }},
		{"title too long", func(in *booksvc.CreateInput) { in.Title = strings.Repeat("x", 21) }},
		{"empty author", func(in *booksvc.CreateInput) { in.Author = "" }},
		{"unknown genre", func(in *booksvc.CreateInput) { in.Genre = "ROMANCE" }},
		{"empty isbn", func(in *booksvc.CreateInput) { in.ISBN = "" }},
		{"negative copies", func(in *booksvc.CreateInput) { in.Copies = -1 }},
		{"short description", func(in *booksvc.CreateInput) { in.Description = "tiny" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validCreate()
			tc.mutate(&in)
			_, err := s.Create(ctx, in)
			require.Equal(t, apperr.ErrValidationFailed, apperr.Code(err))
		})
	}
}

func TestCreate_DerivesAndDefaults(t *testing.T) {
	var captured *model.Book
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book) error {
			b.ID = uuid.New()
			captured = b
			return nil
		},
	}
	s := booksvc.New(m)

	in := validCreate()
	in.Genre = "fantasy" // lower case in, normalized out
	b, err := s.Create(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, model.GenreFantasy, captured.Genre)
	require.Equal(t, model.DefaultDescription, captured.Description)
	require.True(t, captured.Availability)
	require.Equal(t, b, captured)
}

func TestCreate_ZeroCopiesIsUnavailable(t *testing.T) {
	m := &repoMock{createFn: func(ctx context.Context, b *model.Book) error { return nil }}
	s := booksvc.New(m)

	in := validCreate()
	in.Copies = 0
	b, err := s.Create(context.Background(), in)
	require.NoError(t, err)
	require.False(t, b.Availability)
}

func TestCreate_ConflictPassthrough(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book) error {
			return apperr.Wrap(apperr.ErrConflict, "title and isbn must be unique", errors.New("23505"))
		},
	}
	s := booksvc.New(m)

	_, err := s.Create(context.Background(), validCreate())
	require.Equal(t, apperr.ErrConflict, apperr.Code(err))
}

func TestList_NormalizesQuery(t *testing.T) {
	var captured bookrepo.ListQuery
	m := &repoMock{
		listFn: func(ctx context.Context, q bookrepo.ListQuery) ([]model.Book, error) {
			captured = q
			return []model.Book{{Title: "Dune"}}, nil
		},
	}
	s := booksvc.New(m)

	_, err := s.List(context.Background(), booksvc.ListInput{
		Genre:   "fantasy",
		SortBy:  "createdAt",
		SortDir: "desc",
	})
	require.NoError(t, err)
	require.Equal(t, "FANTASY", captured.Genre)
	require.Equal(t, "created_at", captured.SortBy)
	require.True(t, captured.Desc)
	require.Equal(t, 10, captured.Limit)
}

func TestList_UnknownSortField(t *testing.T) {
	s := booksvc.New(&repoMock{})

	_, err := s.List(context.Background(), booksvc.ListInput{SortBy: "price"})
	require.Equal(t, apperr.ErrValidationFailed, apperr.Code(err))
}

func TestList_Empty(t *testing.T) {
	m := &repoMock{
		listFn: func(ctx context.Context, q bookrepo.ListQuery) ([]model.Book, error) {
			return nil, nil
		},
	}
	s := booksvc.New(m)

	_, err := s.List(context.Background(), booksvc.ListInput{})
	require.Equal(t, apperr.ErrEmptyResult, apperr.Code(err))
}

func TestGet_NotFound(t *testing.T) {
	m := &repoMock{
		getFn: func(ctx context.Context, id uuid.UUID) (*model.Book, error) { return nil, nil },
	}
	s := booksvc.New(m)

	_, err := s.Get(context.Background(), uuid.New())
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
}

func TestUpdate_CopiesRefreshesAvailability(t *testing.T) {
	var captured map[string]any
	m := &repoMock{
		updateFn: func(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.Book, error) {
			captured = fields
			return &model.Book{ID: id}, nil
		},
	}
	s := booksvc.New(m)

	zero := 0
	_, err := s.Update(context.Background(), uuid.New(), booksvc.UpdateInput{Copies: &zero})
	require.NoError(t, err)
	require.Equal(t, 0, captured["copies"])
	require.Equal(t, false, captured["availability"])

	five := 5
	_, err = s.Update(context.Background(), uuid.New(), booksvc.UpdateInput{Copies: &five})
	require.NoError(t, err)
	require.Equal(t, true, captured["availability"])
}

func TestUpdate_WithoutCopiesLeavesAvailabilityAlone(t *testing.T) {
	var captured map[string]any
	m := &repoMock{
		updateFn: func(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.Book, error) {
			captured = fields
			return &model.Book{ID: id}, nil
		},
	}
	s := booksvc.New(m)

	title := "Children of Dune"
	_, err := s.Update(context.Background(), uuid.New(), booksvc.UpdateInput{Title: &title})
	require.NoError(t, err)
	require.NotContains(t, captured, "availability")
}

func TestUpdate_NotFound(t *testing.T) {
	m := &repoMock{
		updateFn: func(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.Book, error) {
			return nil, nil
		},
	}
	s := booksvc.New(m)

	title := "Dune"
	_, err := s.Update(context.Background(), uuid.New(), booksvc.UpdateInput{Title: &title})
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
}

func TestUpdate_NoFields(t *testing.T) {
	s := booksvc.New(&repoMock{})

	_, err := s.Update(context.Background(), uuid.New(), booksvc.UpdateInput{})
	require.Equal(t, apperr.ErrValidationFailed, apperr.Code(err))
}

func TestDelete(t *testing.T) {
	m := &repoMock{
		deleteFn: func(ctx context.Context, id uuid.UUID) (bool, error) { return true, nil },
	}
	s := booksvc.New(m)
	require.NoError(t, s.Delete(context.Background(), uuid.New()))

	m.deleteFn = func(ctx context.Context, id uuid.UUID) (bool, error) { return false, nil }
	err := s.Delete(context.Background(), uuid.New())
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
}
