package btree

// makeLeaf materializes a new leaf holding records.
func (t *Tree[K, R]) makeLeaf(records []R) *leafNode[R] {
	assert(len(records) <= t.maxRecords(), "makeLeaf exceeds node capacity")
	leaf := &leafNode[R]{
		records: make(slots[R], len(records), t.maxRecords()),
	}
	copy(leaf.records, records)
	return leaf
}

// makeInner materializes a new inner node. The number of children has to
// be exactly one more than the number of records.
func (t *Tree[K, R]) makeInner(records []R, children ...treeNode[R]) *innerNode[R] {
	assert(len(records) <= t.maxRecords(), "makeInner exceeds node capacity")
	assert(len(children) == len(records)+1, "makeInner requires len(children) == len(records)+1")
	inner := &innerNode[R]{
		records:  make(slots[R], len(records), t.maxRecords()),
		children: make(slots[treeNode[R]], len(children), t.maxRecords()+1),
	}
	copy(inner.records, records)
	copy(inner.children, children)
	return inner
}

func (t *Tree[K, R]) maxRecords() int {
	return 2*t.cfg.Degree - 1
}

func (t *Tree[K, R]) minRecords() int {
	return t.cfg.Degree - 1
}

// full reports whether n holds the maximum of 2t-1 records.
func (t *Tree[K, R]) full(n treeNode[R]) bool {
	return len(*n.items()) >= t.maxRecords()
}

// sparse reports whether n holds fewer than t records, i.e. could not give
// one away without underflowing.
func (t *Tree[K, R]) sparse(n treeNode[R]) bool {
	return len(*n.items()) < t.cfg.Degree
}

func (t *Tree[K, R]) compare(a, b K) int {
	return t.cfg.Compare(a, b)
}

func (t *Tree[K, R]) keyOf(r R) K {
	return t.cfg.Key(r)
}

// lowerBound returns the index of the first record with key >= key, and
// whether that record's key equals key.
func (t *Tree[K, R]) lowerBound(records []R, key K) (int, bool) {
	low, high := 0, len(records)
	for low < high {
		mid := int(uint(low+high) >> 1)
		if t.compare(t.keyOf(records[mid]), key) < 0 {
			low = mid + 1
		} else {
			high = mid
		}
	}
	found := low < len(records) && t.compare(t.keyOf(records[low]), key) == 0
	return low, found
}

// upperBound returns the index of the first record with key > key.
func (t *Tree[K, R]) upperBound(records []R, key K) int {
	low, high := 0, len(records)
	for low < high {
		mid := int(uint(low+high) >> 1)
		if t.compare(t.keyOf(records[mid]), key) <= 0 {
			low = mid + 1
		} else {
			high = mid
		}
	}
	return low
}

// lastRecord returns the maximum record of the subtree rooted at n.
func lastRecord[R any](n treeNode[R]) R {
	for !n.isLeaf() {
		inner := n.(*innerNode[R])
		n = inner.children[len(inner.children)-1]
	}
	records := *n.items()
	assert(len(records) > 0, "lastRecord called on empty leaf")
	return records[len(records)-1]
}

// firstRecord returns the minimum record of the subtree rooted at n.
func firstRecord[R any](n treeNode[R]) R {
	for !n.isLeaf() {
		n = n.(*innerNode[R]).children[0]
	}
	records := *n.items()
	assert(len(records) > 0, "firstRecord called on empty leaf")
	return records[0]
}
