package shelves

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/guiguan/caster"
	"github.com/npillmayer/shelves/btree"
)

// Catalog is the collection of books of a library together with its users.
type Catalog struct {
	mx     sync.Mutex
	degree int
	titles *btree.Tree[string, *Book] // owns the *Book values, shared with ids
	ids    map[int]*Book
	genres map[Genre]int
	users  map[string]*User
	cast   *caster.Caster // broadcaster for catalog events
	seq    uint64         // sequence number of the latest event
}

func bookTitle(b *Book) string {
	return b.Title
}

// NewCatalog creates an empty catalog. degree is the minimum degree of the
// title index; 0 selects btree.DefaultDegree.
func NewCatalog(degree int) (*Catalog, error) {
	titles, err := btree.New(btree.Ordered(degree, bookTitle))
	if err != nil {
		return nil, err
	}
	c := &Catalog{
		degree: titles.Degree(),
		titles: titles,
		ids:    make(map[int]*Book),
		genres: make(map[Genre]int),
		users:  make(map[string]*User),
		cast:   caster.New(nil),
	}
	tracer().Debugf("catalog: created with title index of degree %d", c.degree)
	return c, nil
}

// Add validates a book and adds a copy of it to the catalog.
func (c *Catalog) Add(b Book) error {
	if err := b.Validate(); err != nil {
		return err
	}
	c.mx.Lock()
	if _, exists := c.ids[b.ID]; exists {
		c.mx.Unlock()
		return fmt.Errorf("%w: %d", ErrDuplicateID, b.ID)
	}
	stored := b
	c.titles.Insert(&stored)
	c.ids[b.ID] = &stored
	c.genres[b.Genre]++
	ev := c.event(BookAdded, b)
	c.mx.Unlock()
	tracer().Infof("catalog: added book %q (ID %d)", b.Title, b.ID)
	c.publish(ev)
	return nil
}

// Remove deletes the book with ID id from the catalog and returns it.
func (c *Catalog) Remove(id int) (Book, bool) {
	c.mx.Lock()
	b, ok := c.ids[id]
	if !ok {
		c.mx.Unlock()
		return Book{}, false
	}
	c.removeFromTitles(b)
	delete(c.ids, id)
	if c.genres[b.Genre]--; c.genres[b.Genre] <= 0 {
		delete(c.genres, b.Genre)
	}
	removed := *b
	ev := c.event(BookRemoved, removed)
	c.mx.Unlock()
	tracer().Infof("catalog: removed book %q (ID %d)", removed.Title, removed.ID)
	c.publish(ev)
	return removed, true
}

// removeFromTitles deletes exactly b from the title index. Other books
// sharing b's title keep their order.
func (c *Catalog) removeFromTitles(b *Book) {
	if _, ok := c.titles.DeleteFunc(b.Title, func(r *Book) bool { return r == b }); !ok {
		panic(fmt.Sprintf("catalog: title index lost book %d", b.ID))
	}
}

// ByID returns the book with ID id.
func (c *Catalog) ByID(id int) (Book, bool) {
	c.mx.Lock()
	defer c.mx.Unlock()
	if b, ok := c.ids[id]; ok {
		return *b, true
	}
	return Book{}, false
}

// ByTitle returns the earliest added book with the given title.
func (c *Catalog) ByTitle(title string) (Book, bool) {
	c.mx.Lock()
	defer c.mx.Unlock()
	if b, ok := c.titles.Search(title); ok {
		return *b, true
	}
	return Book{}, false
}

// UpdateAvailability sets the availability of the earliest added book with
// the given title. It reports whether such a book exists.
func (c *Catalog) UpdateAvailability(title string, available bool) bool {
	c.mx.Lock()
	var ev Event
	ok := c.titles.Update(title, func(b **Book) {
		(*b).Available = available
		ev = c.event(AvailabilityChanged, **b)
	})
	c.mx.Unlock()
	if ok {
		c.publish(ev)
	}
	return ok
}

// Borrow marks the book with ID id as borrowed by a user. The user is
// created if necessary. Borrowing raises the user's preference for the
// book's genre.
func (c *Catalog) Borrow(userID string, id int) (Book, error) {
	if userID == "" {
		return Book{}, fmt.Errorf("%w: user ID is empty", ErrIllegalArguments)
	}
	c.mx.Lock()
	b, ok := c.ids[id]
	if !ok {
		c.mx.Unlock()
		return Book{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if !b.Available {
		c.mx.Unlock()
		return *b, fmt.Errorf("%w: %d", ErrUnavailable, id)
	}
	b.Available = false
	c.user(userID).recordBorrow(b)
	borrowed := *b
	ev := c.event(AvailabilityChanged, borrowed)
	c.mx.Unlock()
	tracer().Infof("catalog: user %q borrowed book %d", userID, id)
	c.publish(ev)
	return borrowed, nil
}

// Return marks the book with ID id as available again.
func (c *Catalog) Return(id int) (Book, error) {
	c.mx.Lock()
	b, ok := c.ids[id]
	if !ok {
		c.mx.Unlock()
		return Book{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if b.Available {
		c.mx.Unlock()
		return *b, fmt.Errorf("%w: %d", ErrNotBorrowed, id)
	}
	b.Available = true
	returned := *b
	ev := c.event(AvailabilityChanged, returned)
	c.mx.Unlock()
	tracer().Infof("catalog: book %d returned", id)
	c.publish(ev)
	return returned, nil
}

// User returns a snapshot of the user with ID id, creating the user if it
// does not exist yet.
func (c *Catalog) User(id string) User {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.user(id).snapshot()
}

func (c *Catalog) user(id string) *User {
	u, ok := c.users[id]
	if !ok {
		u = newUser(id)
		c.users[id] = u
		tracer().Debugf("catalog: new user %q", id)
	}
	return u
}

// Books returns all books ordered by title. Books sharing a title are
// listed in the order they have been added.
func (c *Catalog) Books() []Book {
	c.mx.Lock()
	defer c.mx.Unlock()
	books := make([]Book, 0, c.titles.Len())
	c.titles.ForEach(func(b *Book) bool {
		books = append(books, *b)
		return true
	})
	return books
}

// Len returns the number of books in the catalog.
func (c *Catalog) Len() int {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.titles.Len()
}

// GenreCount is an entry of the genre statistics.
type GenreCount struct {
	Genre Genre
	Count int
}

// GenreStats returns the number of books per genre, for genres with at
// least one book, most frequent first.
func (c *Catalog) GenreStats() []GenreCount {
	c.mx.Lock()
	stats := make([]GenreCount, 0, len(c.genres))
	for _, g := range allGenres {
		if n := c.genres[g]; n > 0 {
			stats = append(stats, GenreCount{Genre: g, Count: n})
		}
	}
	c.mx.Unlock()
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	return stats
}

// Reset removes all books from the catalog. Users and their histories are
// kept.
func (c *Catalog) Reset() {
	c.mx.Lock()
	titles, err := btree.New(btree.Ordered(c.degree, bookTitle))
	if err != nil { // degree has been validated by NewCatalog
		panic(err)
	}
	c.titles = titles
	c.ids = make(map[int]*Book)
	c.genres = make(map[Genre]int)
	ev := c.event(CatalogReset, Book{})
	c.mx.Unlock()
	tracer().Infof("catalog: reset")
	c.publish(ev)
}

// --- Debugging -------------------------------------------------------------

// Degree returns the minimum degree of the title index.
func (c *Catalog) Degree() int {
	return c.degree
}

// Visualize returns a dump of the title index, one node per line.
func (c *Catalog) Visualize() string {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.titles.Visualize()
}

// WriteDot writes the title index in Graphviz DOT format.
func (c *Catalog) WriteDot(w io.Writer) error {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.titles.WriteDot(w)
}

// Check validates the title index and its consistency with the ID index.
func (c *Catalog) Check() error {
	c.mx.Lock()
	defer c.mx.Unlock()
	if err := c.titles.Check(); err != nil {
		return err
	}
	if c.titles.Len() != len(c.ids) {
		return fmt.Errorf("%w: title index holds %d books, ID index %d",
			btree.ErrInvariant, c.titles.Len(), len(c.ids))
	}
	var err error
	c.titles.ForEach(func(b *Book) bool {
		if c.ids[b.ID] != b {
			err = fmt.Errorf("%w: book %d of title index missing from ID index",
				btree.ErrInvariant, b.ID)
		}
		return err == nil
	})
	return err
}
