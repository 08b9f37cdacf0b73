package btree

import (
	"math/rand"
	"strconv"
	"testing"
)

// How to run:
//   - Deterministic randomized property test:
//     go test ./btree -run TestRandomizedProperty -count=1
//   - Fuzz test for this file:
//     go test ./btree -run '^$' -fuzz FuzzRandomizedProperty -fuzztime=10s
//   - Replay a specific saved failing input:
//     go test ./btree -run 'FuzzRandomizedProperty/<id>'

// modelInsert places e behind all entries with an equal key, which is where
// the tree puts duplicates.
func modelInsert(model []entry, e entry) []entry {
	pos := len(model)
	for i, m := range model {
		if m.key > e.key {
			pos = i
			break
		}
	}
	model = append(model, entry{})
	copy(model[pos+1:], model[pos:])
	model[pos] = e
	return model
}

// modelDuplicates returns the indices of all entries with key.
func modelDuplicates(model []entry, key int) []int {
	var dups []int
	for i, m := range model {
		if m.key == key {
			dups = append(dups, i)
		}
	}
	return dups
}

// modelFind returns the index of the leftmost entry with key, or -1.
func modelFind(model []entry, key int) int {
	for i, m := range model {
		if m.key == key {
			return i
		}
	}
	return -1
}

func assertTreeMatchesModel(t *testing.T, tree *Tree[int, entry], model []entry) {
	t.Helper()
	mustCheck(t, tree)
	got := tree.Traverse()
	if len(got) != len(model) || tree.Len() != len(model) {
		t.Fatalf("model length mismatch: got=%d/%d want=%d", len(got), tree.Len(), len(model))
	}
	for i := range model {
		if got[i] != model[i] {
			t.Fatalf("model mismatch at %d: got=%+v want=%+v", i, got[i], model[i])
		}
	}
}

func runRandomSequence(t *testing.T, seed uint64, degree int, steps int) {
	t.Helper()
	r := rand.New(rand.NewSource(int64(seed)))
	tree := newIntTree(t, degree)
	model := make([]entry, 0, 64)
	keyRange := 40 + r.Intn(200) // small ranges produce many duplicates
	nextID := 0

	for i := 0; i < steps; i++ {
		key := r.Intn(keyRange)
		switch r.Intn(7) {
		case 0, 1, 2:
			e := entry{key: key, id: nextID}
			nextID++
			tree.Insert(e)
			model = modelInsert(model, e)
		case 3, 4:
			e, ok := tree.Delete(key)
			pos := modelFind(model, key)
			if ok != (pos >= 0) {
				t.Fatalf("delete %d: tree reports %v, model has index %d", key, ok, pos)
			}
			if ok {
				if e != model[pos] {
					t.Fatalf("delete %d removed %+v, want %+v", key, e, model[pos])
				}
				model = append(model[:pos], model[pos+1:]...)
			}
		case 5:
			ok := tree.Update(key, func(e *entry) { e.avail = !e.avail })
			pos := modelFind(model, key)
			if ok != (pos >= 0) {
				t.Fatalf("update %d: tree reports %v, model has index %d", key, ok, pos)
			}
			if ok {
				model[pos].avail = !model[pos].avail
			}
		case 6:
			// remove a specific duplicate, or a missing one
			dups := modelDuplicates(model, key)
			pos, id := -1, -1
			if n := len(dups); n > 0 && r.Intn(8) != 0 {
				pos = dups[r.Intn(n)]
				id = model[pos].id
			}
			e, ok := tree.DeleteFunc(key, func(e entry) bool { return e.id == id })
			if ok != (pos >= 0) {
				t.Fatalf("delete %d/id %d: tree reports %v, model has index %d", key, id, ok, pos)
			}
			if ok {
				if e != model[pos] {
					t.Fatalf("delete %d/id %d removed %+v, want %+v", key, id, e, model[pos])
				}
				model = append(model[:pos], model[pos+1:]...)
			}
		}
		e, ok := tree.Search(key)
		if pos := modelFind(model, key); ok != (pos >= 0) || (ok && e != model[pos]) {
			t.Fatalf("search %d: got %+v/%v, model index %d", key, e, ok, pos)
		}
		assertTreeMatchesModel(t, tree, model)
	}
}

func TestRandomizedProperty(t *testing.T) {
	seeds := []uint64{1, 2, 3, 7, 42, 99, 31337, 123456789}
	for _, degree := range []int{2, 3, 4} {
		for _, seed := range seeds {
			name := "t" + strconv.Itoa(degree) + "_seed_" + strconv.FormatUint(seed, 10)
			t.Run(name, func(t *testing.T) {
				runRandomSequence(t, seed, degree, 400)
			})
		}
	}
}

func FuzzRandomizedProperty(f *testing.F) {
	f.Add(uint64(1), uint8(2), uint16(200))
	f.Add(uint64(7), uint8(3), uint16(500))
	f.Add(uint64(42), uint8(5), uint16(900))
	f.Fuzz(func(t *testing.T, seed uint64, degree uint8, steps uint16) {
		runRandomSequence(t, seed, int(degree%6)+2, int(steps%1000)+1)
	})
}
