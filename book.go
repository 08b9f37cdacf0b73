package shelves

import (
	"fmt"
	"strings"
	"time"
)

// Genre is the literary genre of a book.
type Genre string

// The genres a book may be filed under.
const (
	Fiction    Genre = "Fiction"
	NonFiction Genre = "Non-Fiction"
	Science    Genre = "Science"
	History    Genre = "History"
	Romance    Genre = "Romance"
	Mystery    Genre = "Mystery"
	Fantasy    Genre = "Fantasy"
	Biography  Genre = "Biography"
)

var allGenres = []Genre{Fiction, NonFiction, Science, History, Romance, Mystery, Fantasy, Biography}

// Genres returns all known genres in display order.
func Genres() []Genre {
	return append([]Genre(nil), allGenres...)
}

// ParseGenre returns the genre named s, ignoring case and surrounding white space.
func ParseGenre(s string) (Genre, error) {
	s = strings.TrimSpace(s)
	for _, g := range allGenres {
		if strings.EqualFold(string(g), s) {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: unknown genre %q", ErrInvalidBook, s)
}

// Valid reports whether g is a known genre.
func (g Genre) Valid() bool {
	for _, known := range allGenres {
		if g == known {
			return true
		}
	}
	return false
}

func (g Genre) String() string {
	return string(g)
}

// Book is a catalog record.
//
// ID and Title identify a book and must not change while the book is part of
// a catalog. Available is the only field the catalog modifies.
type Book struct {
	ID        int
	Title     string
	Author    string
	Genre     Genre
	Year      int // year of publication
	Available bool
}

// Validate checks a book before it enters a catalog. Errors wrap ErrInvalidBook.
func (b Book) Validate() error {
	switch {
	case b.ID <= 0:
		return fmt.Errorf("%w: book ID must be positive, is %d", ErrInvalidBook, b.ID)
	case strings.TrimSpace(b.Title) == "":
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidBook)
	case strings.TrimSpace(b.Author) == "":
		return fmt.Errorf("%w: author cannot be empty", ErrInvalidBook)
	case !b.Genre.Valid():
		return fmt.Errorf("%w: unknown genre %q", ErrInvalidBook, b.Genre)
	}
	latest := time.Now().Year() + 1
	if b.Year < 0 || b.Year > latest {
		return fmt.Errorf("%w: publication year %d not in [0…%d]", ErrInvalidBook, b.Year, latest)
	}
	return nil
}

func (b Book) String() string {
	return fmt.Sprintf("Book(ID=%d, Title=%q, Available=%v)", b.ID, b.Title, b.Available)
}
