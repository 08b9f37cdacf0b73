/*
Package recommend suggests books to library users.

Suggestions are drawn from the books a user has not borrowed yet and which
are currently available. For users without a borrow history, the
recommender picks books of as many different genres as possible. Otherwise
books are scored by the user's preferences:

    score = 0.6 × (number of borrowed books by the same author)
          + 0.4 × (preference score of the book's genre)

and the best scoring books are chosen such that every suggestion adds a new
author or a new genre to the list.
*/
package recommend

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/shelves"
)

// tracer traces with key 'shelves.recommend'.
func tracer() tracing.Trace {
	return tracing.Select("shelves.recommend")
}

// Weights of the scoring function.
const (
	AuthorWeight = 0.6
	GenreWeight  = 0.4
)

// DefaultCount is the number of suggestions made if not told otherwise.
const DefaultCount = 5

// Source is where a recommender gets its data from; *shelves.Catalog
// implements it.
type Source interface {
	User(id string) shelves.User
	Books() []shelves.Book
}

// Recommender makes book suggestions. It is safe for concurrent use.
type Recommender struct {
	mx  sync.Mutex // guards rnd
	rnd *rand.Rand
}

// New creates a recommender. seed initializes the random choices made for
// users without a history, making suggestions reproducible.
func New(seed int64) *Recommender {
	return &Recommender{rnd: rand.New(rand.NewSource(seed))}
}

// Recommend returns up to n book suggestions for a user. n ≤ 0 selects
// DefaultCount.
func (r *Recommender) Recommend(src Source, userID string, n int) []shelves.Book {
	if n <= 0 {
		n = DefaultCount
	}
	user := src.User(userID)
	books := src.Books()
	byID := make(map[int]shelves.Book, len(books))
	var candidates []shelves.Book
	for _, b := range books {
		byID[b.ID] = b
		if b.Available && !user.HasBorrowed(b.ID) {
			candidates = append(candidates, b)
		}
	}
	if len(candidates) == 0 {
		tracer().Debugf("recommend: no candidates for user %q", userID)
		return nil
	}
	authors := make(map[string]int)
	for _, id := range user.History {
		if b, ok := byID[id]; ok {
			authors[b.Author]++
		}
	}
	if len(authors) == 0 {
		tracer().Debugf("recommend: user %q has no history, choosing by genre", userID)
		return r.byGenreDiversity(candidates, n)
	}
	return byPreference(user, authors, candidates, n)
}

// byGenreDiversity picks one random book per genre, visiting genres in the
// order of their first appearance in books.
func (r *Recommender) byGenreDiversity(books []shelves.Book, n int) []shelves.Book {
	var genres []shelves.Genre
	groups := make(map[shelves.Genre][]shelves.Book)
	for _, b := range books {
		if _, seen := groups[b.Genre]; !seen {
			genres = append(genres, b.Genre)
		}
		groups[b.Genre] = append(groups[b.Genre], b)
	}
	r.mx.Lock()
	defer r.mx.Unlock()
	var picks []shelves.Book
	for _, g := range genres {
		if len(picks) >= n {
			break
		}
		group := groups[g]
		picks = append(picks, group[r.rnd.Intn(len(group))])
	}
	return picks
}

// Score is the preference score of a book for a user, given the number of
// the user's borrows per author.
func Score(user shelves.User, authors map[string]int, b shelves.Book) float64 {
	return AuthorWeight*float64(authors[b.Author]) + GenreWeight*float64(user.Preferences[b.Genre])
}

func byPreference(user shelves.User, authors map[string]int, books []shelves.Book, n int) []shelves.Book {
	scores := make(map[int]float64, len(books))
	for _, b := range books {
		scores[b.ID] = Score(user, authors, b)
	}
	// books arrive in title order, which breaks ties
	sort.SliceStable(books, func(i, j int) bool {
		return scores[books[i].ID] > scores[books[j].ID]
	})
	var picks []shelves.Book
	pickedAuthors := make(map[string]bool)
	pickedGenres := make(map[shelves.Genre]bool)
	for _, b := range books {
		if len(picks) >= n {
			break
		}
		if !pickedAuthors[b.Author] || !pickedGenres[b.Genre] {
			picks = append(picks, b)
			pickedAuthors[b.Author] = true
			pickedGenres[b.Genre] = true
		}
	}
	return picks
}
