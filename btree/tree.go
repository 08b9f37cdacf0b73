package btree

// Tree is an in-memory B-tree of minimum degree t.
//
// K is the key type, R is the record type. Records are ordered by the key
// extracted with Config.Key. The tree owns its nodes exclusively; records
// are stored as given (clients usually store pointers) and never altered
// by the tree itself.
type Tree[K, R any] struct {
	cfg    Config[K, R]
	root   treeNode[R] // nil for an empty tree
	height int         // 0 means empty tree
	size   int
}

// New creates an empty tree with validated configuration.
//
// An empty tree has no root node; the first insertion creates a leaf root.
func New[K, R any](cfg Config[K, R]) (*Tree[K, R], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	return &Tree[K, R]{cfg: cfg}, nil
}

// Config returns a copy of the effective tree configuration.
func (t *Tree[K, R]) Config() Config[K, R] {
	return t.cfg
}

// Degree returns the minimum degree t.
func (t *Tree[K, R]) Degree() int {
	return t.cfg.Degree
}

// IsEmpty reports whether the tree has no records.
func (t *Tree[K, R]) IsEmpty() bool {
	return t == nil || t.root == nil
}

// Len returns the number of records in the tree.
func (t *Tree[K, R]) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}

// Height returns the tree height, where 0 means empty and 1 means a leaf root.
func (t *Tree[K, R]) Height() int {
	if t == nil {
		return 0
	}
	return t.height
}

// Insert adds a record to the tree.
//
// Insert never rejects a record: records with a key already present are
// placed behind all records with an equal key. Uniqueness, if required, has
// to be enforced by the client.
//
// Insertion is single-pass and top-down. A full root is split before
// descending, which is the only way the tree grows in height. Every full
// child on the way down is split before it is entered, so the final leaf
// is guaranteed to have room.
func (t *Tree[K, R]) Insert(r R) {
	if t.root == nil {
		t.root = t.makeLeaf([]R{r})
		t.height = 1
		t.size = 1
		return
	}
	if t.full(t.root) {
		t.growRoot()
	}
	t.insertNonFull(t.root, r)
	t.size++
}

// growRoot wraps the full root into a new root and splits it.
func (t *Tree[K, R]) growRoot() {
	oldRoot := t.root
	newRoot := t.makeInner(nil, oldRoot)
	t.splitChild(newRoot, 0)
	t.root = newRoot
	t.height++
	tracer().Debugf("btree: root split, height is now %d", t.height)
}

// insertNonFull inserts r into the subtree rooted at n, which must not be
// full.
func (t *Tree[K, R]) insertNonFull(n treeNode[R], r R) {
	key := t.keyOf(r)
	for {
		assert(!t.full(n), "insertNonFull entered a full node")
		records := n.items()
		i := t.upperBound(*records, key)
		if n.isLeaf() {
			records.insertAt(i, r)
			return
		}
		inner := n.(*innerNode[R])
		if t.full(inner.children[i]) {
			t.splitChild(inner, i)
			// The promoted median now sits at records[i]; duplicates of
			// the median go right.
			if t.compare(key, t.keyOf(inner.records[i])) >= 0 {
				i++
			}
		}
		n = inner.children[i]
	}
}

// splitChild splits the full child at index i of parent into two nodes of
// t-1 records each and promotes the median record into parent at index i.
// The new right sibling is linked at children[i+1].
func (t *Tree[K, R]) splitChild(parent *innerNode[R], i int) {
	assert(!t.full(parent), "splitChild called with full parent")
	child := parent.children[i]
	assert(t.full(child), "splitChild called for non-full child")
	mid := t.cfg.Degree - 1
	records := child.items()
	median := (*records)[mid]
	var right treeNode[R]
	if child.isLeaf() {
		right = t.makeLeaf((*records)[mid+1:])
	} else {
		inner := child.(*innerNode[R])
		right = t.makeInner((*records)[mid+1:], inner.children[mid+1:]...)
		inner.children.truncate(mid + 1)
	}
	records.truncate(mid)
	parent.records.insertAt(i, median)
	parent.children.insertAt(i+1, right)
}
