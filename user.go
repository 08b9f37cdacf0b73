package shelves

// User is a library user with a borrow history and genre preferences.
//
// Values of type User returned by a catalog are snapshots; modifying them
// does not alter the catalog.
type User struct {
	ID          string
	Name        string
	History     []int         // IDs of borrowed books, in borrow order
	Preferences map[Genre]int // genre preference scores
}

// preferenceBoost is added to a genre's preference score for every borrow.
const preferenceBoost = 2

func newUser(id string) *User {
	return &User{
		ID:          id,
		Name:        "New User",
		Preferences: make(map[Genre]int),
	}
}

func (u *User) recordBorrow(b *Book) {
	u.History = append(u.History, b.ID)
	u.Preferences[b.Genre] += preferenceBoost
}

// HasBorrowed reports whether the user has ever borrowed the book with ID id.
func (u User) HasBorrowed(id int) bool {
	for _, h := range u.History {
		if h == id {
			return true
		}
	}
	return false
}

// TotalBorrowed is the number of borrows of a user.
func (u User) TotalBorrowed() int {
	return len(u.History)
}

// FavoriteGenre returns the genre with the highest preference score.
// Ties are resolved in favour of the genre listed first by Genres.
func (u User) FavoriteGenre() (Genre, bool) {
	var fav Genre
	best := 0
	for _, g := range allGenres {
		if score := u.Preferences[g]; score > best {
			fav, best = g, score
		}
	}
	return fav, best > 0
}

func (u *User) snapshot() User {
	c := *u
	c.History = append([]int(nil), u.History...)
	c.Preferences = make(map[Genre]int, len(u.Preferences))
	for g, score := range u.Preferences {
		c.Preferences[g] = score
	}
	return c
}
