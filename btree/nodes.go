package btree

// treeNode is either a *leafNode or an *innerNode.
//
// Both kinds carry an ordered run of records; inner nodes additionally own
// len(records)+1 children. A node has exactly one parent, there are no back
// links.
type treeNode[R any] interface {
	isLeaf() bool
	items() *slots[R]
}

type leafNode[R any] struct {
	// records are ordered by key, duplicates in insertion order.
	records slots[R]
}

func (l *leafNode[R]) isLeaf() bool      { return true }
func (l *leafNode[R]) items() *slots[R] { return &l.records }

type innerNode[R any] struct {
	records slots[R]
	// children must satisfy len(children) == len(records)+1.
	// Keys in children[i] are <= records[i] <= keys in children[i+1].
	children slots[treeNode[R]]
}

func (n *innerNode[R]) isLeaf() bool      { return false }
func (n *innerNode[R]) items() *slots[R] { return &n.records }

// slots is an ordered run of node entries, used for records and for child
// links alike.
type slots[T any] []T

// insertAt inserts value at index i, shifting subsequent entries right.
func (s *slots[T]) insertAt(i int, value T) {
	assert(i >= 0 && i <= len(*s), "insertAt index out of range")
	var zero T
	*s = append(*s, zero)
	if i < len(*s)-1 {
		copy((*s)[i+1:], (*s)[i:])
	}
	(*s)[i] = value
}

// removeAt removes and returns the entry at index i.
func (s *slots[T]) removeAt(i int) T {
	assert(i >= 0 && i < len(*s), "removeAt index out of range")
	out := (*s)[i]
	copy((*s)[i:], (*s)[i+1:])
	var zero T
	(*s)[len(*s)-1] = zero
	*s = (*s)[:len(*s)-1]
	return out
}

// pop removes and returns the last entry.
func (s *slots[T]) pop() T {
	assert(len(*s) > 0, "pop on empty slots")
	return s.removeAt(len(*s) - 1)
}

// truncate drops all entries from index i on.
func (s *slots[T]) truncate(i int) {
	assert(i >= 0 && i <= len(*s), "truncate index out of range")
	var zero T
	for j := i; j < len(*s); j++ {
		(*s)[j] = zero
	}
	*s = (*s)[:i]
}
