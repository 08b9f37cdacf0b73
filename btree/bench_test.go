package btree

import (
	"math/rand"
	"testing"
)

func benchTree(b *testing.B, n int) (*Tree[int, entry], []int) {
	b.Helper()
	tree, err := New(Ordered(DefaultDegree, entryKey))
	if err != nil {
		b.Fatalf("setup failed: %v", err)
	}
	keys := rand.New(rand.NewSource(1)).Perm(n)
	for _, k := range keys {
		tree.Insert(entry{key: k})
	}
	return tree, keys
}

func BenchmarkInsert(b *testing.B) {
	keys := rand.New(rand.NewSource(1)).Perm(b.N)
	tree, err := New(Ordered(DefaultDegree, entryKey))
	if err != nil {
		b.Fatalf("setup failed: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Insert(entry{key: keys[i]})
	}
}

func BenchmarkSearch(b *testing.B) {
	tree, keys := benchTree(b, 10000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Search(keys[i%len(keys)])
	}
}

func BenchmarkInsertDelete(b *testing.B) {
	tree, keys := benchTree(b, 10000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := keys[i%len(keys)]
		tree.Delete(k)
		tree.Insert(entry{key: k})
	}
}
