// model/book.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Genre is the closed set of shelving categories.
type Genre string

const (
	GenreFiction    Genre = "FICTION"
	GenreNonFiction Genre = "NON_FICTION"
	GenreScience    Genre = "SCIENCE"
	GenreHistory    Genre = "HISTORY"
	GenreBiography  Genre = "BIOGRAPHY"
	GenreFantasy    Genre = "FANTASY"
)

var genres = map[Genre]struct{}{
	GenreFiction:    {},
	GenreNonFiction: {},
	GenreScience:    {},
	GenreHistory:    {},
	GenreBiography:  {},
	GenreFantasy:    {},
}

// ParseGenre normalizes input to upper case and checks it against the
// enumeration.
func ParseGenre(s string) (Genre, bool) {
	g := Genre(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := genres[g]
	return g, ok
}

// DefaultDescription is applied when a book is created without one.
const DefaultDescription = "No description provided"

type Book struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Author       string    `db:"author" json:"author"`
	Genre        Genre     `db:"genre" json:"genre"`
	ISBN         string    `db:"isbn" json:"isbn"`
	Description  string    `db:"description" json:"description"`
	Copies       int       `db:"copies" json:"copies"`
	Availability bool      `db:"availability" json:"available"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// AvailabilityFor derives the availability flag from a copy count. Every
// write path that touches copies persists this in the same statement.
func AvailabilityFor(copies int) bool { return copies > 0 }
