package booksvc

import (
	"context"

	"github.com/google/uuid"

	"github.com/sumu9897/LibraryNext/apperr"
	"github.com/sumu9897/LibraryNext/model"
	bookrepo "github.com/sumu9897/LibraryNext/repository/book"
)

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	List(ctx context.Context, q bookrepo.ListQuery) ([]model.Book, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Book, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type CreateInput struct {
	Title       string
	Author      string
	Genre       string
	ISBN        string
	Description string
	Copies      int
}

type UpdateInput struct {
	Title       *string
	Author      *string
	Genre       *string
	ISBN        *string
	Description *string
	Copies      *int
}

type ListInput struct {
	Genre   string
	SortBy  string
	SortDir string
	Limit   int
}

type Service interface {
	Create(ctx context.Context, in CreateInput) (*model.Book, error)
	List(ctx context.Context, in ListInput) ([]model.Book, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Book, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, in CreateInput) (*model.Book, error) {
	if err := checkTitle(in.Title); err != nil {
		return nil, err
	}
	if err := checkAuthor(in.Author); err != nil {
		return nil, err
	}
	if in.ISBN == "" {
		return nil, apperr.New(apperr.ErrValidationFailed, "isbn is required")
	}
	genre, ok := model.ParseGenre(in.Genre)
	if !ok {
		return nil, apperr.New(apperr.ErrValidationFailed,
			"genre must be one of: FICTION, NON_FICTION, SCIENCE, HISTORY, BIOGRAPHY, FANTASY")
	}
	if in.Copies < 0 {
		return nil, apperr.New(apperr.ErrValidationFailed, "copies must be a non-negative number")
	}

	desc := in.Description
	if desc == "" {
		desc = model.DefaultDescription
	} else if err := checkDescription(desc); err != nil {
		return nil, err
	}

	b := &model.Book{
		Title:        in.Title,
		Author:       in.Author,
		Genre:        genre,
		ISBN:         in.ISBN,
		Description:  desc,
		Copies:       in.Copies,
		Availability: model.AvailabilityFor(in.Copies),
	}
	if err := s.r.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// sortColumns whitelists the stored fields a caller may sort by; the JSON
// field spellings from the API are accepted as aliases.
var sortColumns = map[string]string{
	"title":        "title",
	"author":       "author",
	"genre":        "genre",
	"isbn":         "isbn",
	"description":  "description",
	"copies":       "copies",
	"availability": "availability",
	"available":    "availability",
	"created_at":   "created_at",
	"createdAt":    "created_at",
	"updated_at":   "updated_at",
	"updatedAt":    "updated_at",
}

const defaultListLimit = 10

func (s *service) List(ctx context.Context, in ListInput) ([]model.Book, error) {
	q := bookrepo.ListQuery{Limit: in.Limit}
	if q.Limit < 1 {
		q.Limit = defaultListLimit
	}

	if in.Genre != "" {
		// Filter is case-normalized; a value outside the enumeration can
		// match nothing, which the empty-result path reports below.
		g, _ := model.ParseGenre(in.Genre)
		q.Genre = string(g)
	}

	sortBy := in.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	col, ok := sortColumns[sortBy]
	if !ok {
		return nil, apperr.New(apperr.ErrValidationFailed, "unknown sort field: "+sortBy)
	}
	q.SortBy = col
	q.Desc = in.SortDir == "desc"

	books, err := s.r.List(ctx, q)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrStorageFailure, "list books", err)
	}
	if len(books) == 0 {
		return nil, apperr.New(apperr.ErrEmptyResult, "no books found")
	}
	return books, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	b, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrStorageFailure, "get book", err)
	}
	if b == nil {
		return nil, apperr.New(apperr.ErrNotFound, "book not found")
	}
	return b, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*model.Book, error) {
	fields := map[string]any{}

	if in.Title != nil {
		if err := checkTitle(*in.Title); err != nil {
			return nil, err
		}
		fields["title"] = *in.Title
	}
	if in.Author != nil {
		if err := checkAuthor(*in.Author); err != nil {
			return nil, err
		}
		fields["author"] = *in.Author
	}
	if in.Genre != nil {
		genre, ok := model.ParseGenre(*in.Genre)
		if !ok {
			return nil, apperr.New(apperr.ErrValidationFailed,
				"genre must be one of: FICTION, NON_FICTION, SCIENCE, HISTORY, BIOGRAPHY, FANTASY")
		}
		fields["genre"] = string(genre)
	}
	if in.ISBN != nil {
		if *in.ISBN == "" {
			return nil, apperr.New(apperr.ErrValidationFailed, "isbn must not be empty")
		}
		fields["isbn"] = *in.ISBN
	}
	if in.Description != nil {
		if err := checkDescription(*in.Description); err != nil {
			return nil, err
		}
		fields["description"] = *in.Description
	}
	if in.Copies != nil {
		if *in.Copies < 0 {
			return nil, apperr.New(apperr.ErrValidationFailed, "copies must be a non-negative number")
		}
		// Availability is derived in the same statement; there is no path
		// that changes copies without refreshing it.
		fields["copies"] = *in.Copies
		fields["availability"] = model.AvailabilityFor(*in.Copies)
	}

	if len(fields) == 0 {
		return nil, apperr.New(apperr.ErrValidationFailed, "no fields to update")
	}

	b, err := s.r.Update(ctx, id, fields)
	if err != nil {
		if apperr.Code(err) == apperr.ErrConflict {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.ErrStorageFailure, "update book", err)
	}
	if b == nil {
		return nil, apperr.New(apperr.ErrNotFound, "book not found")
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	ok, err := s.r.Delete(ctx, id)
	if err != nil {
		return apperr.Wrap(apperr.ErrStorageFailure, "delete book", err)
	}
	if !ok {
		return apperr.New(apperr.ErrNotFound, "book not found")
	}
	return nil
}

func checkTitle(t string) error {
	if len(t) < 1 || len(t) > 20 {
		return apperr.New(apperr.ErrValidationFailed, "title must be between 1 and 20 characters")
	}
	return nil
}

func checkAuthor(a string) error {
	if len(a) < 1 || len(a) > 20 {
		return apperr.New(apperr.ErrValidationFailed, "author must be between 1 and 20 characters")
	}
	return nil
}

func checkDescription(d string) error {
	if len(d) < 8 || len(d) > 120 {
		return apperr.New(apperr.ErrValidationFailed, "description must be between 8 and 120 characters")
	}
	return nil
}
