package main

import (
	"math/rand"
	"strings"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/npillmayer/shelves"
)

// seedCatalog adds n generated books to cat. IDs continue after the largest
// ID present. Generation is deterministic for a given seed. Returns the
// number of books added.
func seedCatalog(cat *shelves.Catalog, n int, seed int64) int {
	rnd := rand.New(rand.NewSource(seed))
	faker.SetRandomSource(faker.NewSafeSource(rand.NewSource(seed)))
	id := 0
	for _, b := range cat.Books() {
		if b.ID > id {
			id = b.ID
		}
	}
	genres := shelves.Genres()
	thisYear := time.Now().Year()
	added := 0
	for i := 0; i < n; i++ {
		id++
		b := shelves.Book{
			ID:        id,
			Title:     seedTitle(rnd),
			Author:    faker.FirstName() + " " + faker.LastName(),
			Genre:     genres[rnd.Intn(len(genres))],
			Year:      thisYear - rnd.Intn(200),
			Available: rnd.Intn(4) != 0,
		}
		if err := cat.Add(b); err != nil {
			tracer().Errorf("seed: %v", err)
			continue
		}
		added++
	}
	return added
}

func seedTitle(rnd *rand.Rand) string {
	words := make([]string, 1+rnd.Intn(3))
	for i := range words {
		w := faker.Word()
		if w == "" {
			w = "untitled"
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	if rnd.Intn(3) == 0 {
		return "The " + strings.Join(words, " ")
	}
	return strings.Join(words, " ")
}
