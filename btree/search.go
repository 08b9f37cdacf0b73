package btree

// Search returns the leftmost record with a key equal to key.
//
// Not finding a key is a regular outcome and is reported by ok == false.
func (t *Tree[K, R]) Search(key K) (record R, ok bool) {
	if p := t.locate(key); p != nil {
		return *p, true
	}
	return record, false
}

// Contains reports whether a record with key is present.
func (t *Tree[K, R]) Contains(key K) bool {
	return t.locate(key) != nil
}

// Update calls fn on the leftmost record with a key equal to key, allowing
// fn to modify the stored record in place. It reports whether a record has
// been found.
//
// fn must not change the record's key; doing so corrupts the ordering.
func (t *Tree[K, R]) Update(key K, fn func(*R)) bool {
	p := t.locate(key)
	if p == nil {
		return false
	}
	if fn != nil {
		fn(p)
		assert(t.compare(t.keyOf(*p), key) == 0, "Update must not change a record's key")
	}
	return true
}

// locate returns a reference to the slot of the leftmost record with key,
// or nil.
//
// The descent follows the lower bound of key. Every equal record met on
// the way becomes the candidate; a deeper match is always further left in
// key order, since equal keys of the left child are <= the separator.
func (t *Tree[K, R]) locate(key K) *R {
	if t == nil {
		return nil
	}
	var candidate *R
	for n := t.root; n != nil; {
		records := *n.items()
		i, found := t.lowerBound(records, key)
		if found {
			candidate = &records[i]
		}
		if n.isLeaf() {
			break
		}
		n = n.(*innerNode[R]).children[i]
	}
	return candidate
}

// Min returns the record with the smallest key.
func (t *Tree[K, R]) Min() (record R, ok bool) {
	if t.IsEmpty() {
		return record, false
	}
	return firstRecord(t.root), true
}

// Max returns the record with the largest key.
func (t *Tree[K, R]) Max() (record R, ok bool) {
	if t.IsEmpty() {
		return record, false
	}
	return lastRecord(t.root), true
}
