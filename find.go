package shelves

import (
	"fmt"
	"strconv"
	"strings"
)

// Field selects the book attribute a search looks at.
type Field int

// Searchable book attributes.
const (
	FieldTitle Field = iota
	FieldAuthor
	FieldGenre
	FieldID
)

var fieldNames = []string{"title", "author", "genre", "id"}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// ParseField returns the search field named s (case-insensitive).
func ParseField(s string) (Field, error) {
	for i, name := range fieldNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return Field(i), nil
		}
	}
	return FieldTitle, fmt.Errorf("%w: unknown search field %q", ErrIllegalArguments, s)
}

// Match selects how a search term is compared to an attribute.
// Comparison ignores case.
type Match int

// Match types of a search.
const (
	Contains Match = iota
	Exact
	StartsWith
)

var matchNames = []string{"contains", "exact", "starts"}

func (m Match) String() string {
	if m < 0 || int(m) >= len(matchNames) {
		return fmt.Sprintf("Match(%d)", int(m))
	}
	return matchNames[m]
}

// ParseMatch returns the match type named s (case-insensitive). Unknown
// names select Contains.
func ParseMatch(s string) Match {
	for i, name := range matchNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return Match(i)
		}
	}
	return Contains
}

func (m Match) matches(value, term string) bool {
	value, term = strings.ToLower(value), strings.ToLower(term)
	switch m {
	case Exact:
		return value == term
	case StartsWith:
		return strings.HasPrefix(value, term)
	}
	return strings.Contains(value, term)
}

// Find returns the books whose field matches term, ordered by title.
// An empty term matches every book. Searching by ID looks for the single
// book with the numeric ID term, disregarding m.
func (c *Catalog) Find(field Field, term string, m Match) ([]Book, error) {
	term = strings.TrimSpace(term)
	if field == FieldID {
		id, err := strconv.Atoi(term)
		if err != nil {
			return nil, fmt.Errorf("%w: book ID %q is not a number", ErrIllegalArguments, term)
		}
		if b, ok := c.ByID(id); ok {
			return []Book{b}, nil
		}
		return nil, nil
	}
	var attr func(*Book) string
	switch field {
	case FieldTitle:
		attr = func(b *Book) string { return b.Title }
	case FieldAuthor:
		attr = func(b *Book) string { return b.Author }
	case FieldGenre:
		attr = func(b *Book) string { return string(b.Genre) }
	default:
		return nil, fmt.Errorf("%w: search field %v", ErrIllegalArguments, field)
	}
	c.mx.Lock()
	defer c.mx.Unlock()
	var found []Book
	c.titles.ForEach(func(b *Book) bool {
		if term == "" || m.matches(attr(b), term) {
			found = append(found, *b)
		}
		return true
	})
	return found, nil
}
