package btree

// toRemove selects which record a removal descent is after.
type toRemove int

const (
	removeKey toRemove = iota // leftmost record with a given key
	removeMin                 // smallest record of a subtree
	removeMax                 // largest record of a subtree
)

// Delete removes the leftmost record with a key equal to key and returns it.
//
// Deleting an absent key is a no-op and reports ok == false; the tree is
// not touched in this case.
//
// Deletion is single-pass and top-down: before the descent enters a child,
// the child is guaranteed to hold at least t records, either by borrowing
// from a sibling or by merging with one. A record found in an inner node is
// replaced by its predecessor or successor, which is then removed from the
// leaf level.
func (t *Tree[K, R]) Delete(key K) (record R, ok bool) {
	if t.IsEmpty() || !t.Contains(key) {
		return record, false
	}
	return t.delete(key, nil)
}

// DeleteFunc removes the leftmost record with a key equal to key for which
// match returns true, and returns it. Records with an equal key keep their
// relative order.
//
// As with Delete, a missing record leaves the tree untouched. match must not
// modify the tree.
func (t *Tree[K, R]) DeleteFunc(key K, match func(R) bool) (record R, ok bool) {
	if match == nil {
		return t.Delete(key)
	}
	if t.IsEmpty() || !t.containsMatch(t.root, key, match) {
		return record, false
	}
	return t.delete(key, match)
}

func (t *Tree[K, R]) delete(key K, match func(R) bool) (R, bool) {
	record, ok := t.remove(t.root, key, removeKey, match)
	assert(ok, "delete lost track of a present record")
	t.size--
	t.collapseRoot()
	return record, true
}

// collapseRoot shrinks the tree after a delete emptied the root.
func (t *Tree[K, R]) collapseRoot() {
	if len(*t.root.items()) > 0 {
		return
	}
	if t.root.isLeaf() {
		t.root = nil
		t.height = 0
		return
	}
	inner := t.root.(*innerNode[R])
	assert(len(inner.children) == 1, "empty inner root must have exactly one child")
	t.root = inner.children[0]
	t.height--
	tracer().Debugf("btree: root collapsed, height is now %d", t.height)
}

// remove deletes one record from the subtree rooted at n. n is either the
// root or has been filled to at least t records by its parent. For typ
// removeKey, a non-nil match narrows the records with key to the ones it
// accepts.
func (t *Tree[K, R]) remove(n treeNode[R], key K, typ toRemove, match func(R) bool) (record R, ok bool) {
	records := n.items()
	if n.isLeaf() {
		switch typ {
		case removeMin:
			return records.removeAt(0), true
		case removeMax:
			return records.pop(), true
		}
		i, found := t.lowerBound(*records, key)
		for found && match != nil && !match((*records)[i]) {
			i++
			found = i < len(*records) && t.compare(t.keyOf((*records)[i]), key) == 0
		}
		if !found {
			return record, false
		}
		return records.removeAt(i), true
	}
	inner := n.(*innerNode[R])
	var i int
	var found bool
	switch typ {
	case removeMin:
		i = 0
	case removeMax:
		i = len(inner.records)
	default:
		if match != nil {
			if i, found = t.locateMatch(inner, key, match); i < 0 {
				return record, false
			}
			break
		}
		i, found = t.lowerBound(inner.records, key)
		// If the left child ends with key, the leftmost match lives below.
		if found && t.compare(t.keyOf(lastRecord(inner.children[i])), key) == 0 {
			found = false
		}
	}
	if found {
		return t.removeFromInner(inner, i, key, match)
	}
	if t.sparse(inner.children[i]) {
		// Borrowing and merging keep the wanted record within the child
		// covering the former child's key range.
		i = t.fill(inner, i)
	}
	return t.remove(inner.children[i], key, typ, match)
}

// locateMatch finds the leftmost record with key accepted by match, in
// in-order position within the subtree of inner. It returns the index of the
// record in inner and found == true, or the index of the child holding it.
// i is -1 if there is no such record.
func (t *Tree[K, R]) locateMatch(inner *innerNode[R], key K, match func(R) bool) (i int, found bool) {
	lo, _ := t.lowerBound(inner.records, key)
	hi := t.upperBound(inner.records, key)
	for i = lo; i <= hi; i++ {
		if t.containsMatch(inner.children[i], key, match) {
			return i, false
		}
		if i < hi && match(inner.records[i]) {
			return i, true
		}
	}
	return -1, false
}

// containsMatch reports whether the subtree at n holds a record with key
// accepted by match.
func (t *Tree[K, R]) containsMatch(n treeNode[R], key K, match func(R) bool) bool {
	if n.isLeaf() {
		records := *n.items()
		for i, _ := t.lowerBound(records, key); i < len(records); i++ {
			if t.compare(t.keyOf(records[i]), key) != 0 {
				return false
			}
			if match(records[i]) {
				return true
			}
		}
		return false
	}
	i, _ := t.locateMatch(n.(*innerNode[R]), key, match)
	return i >= 0
}

// removeFromInner deletes records[i] of an inner node.
func (t *Tree[K, R]) removeFromInner(inner *innerNode[R], i int, key K, match func(R) bool) (record R, ok bool) {
	left, right := inner.children[i], inner.children[i+1]
	switch {
	case !t.sparse(left):
		record = inner.records[i]
		inner.records[i], _ = t.remove(left, key, removeMax, nil)
		return record, true
	case !t.sparse(right):
		record = inner.records[i]
		inner.records[i], _ = t.remove(right, key, removeMin, nil)
		return record, true
	}
	// Both neighbours are minimal: pull records[i] down into a merged
	// node of 2t-1 records and delete it from there. No record before it
	// qualifies, so it is the leftmost candidate of the merged node.
	t.merge(inner, i)
	return t.remove(inner.children[i], key, removeKey, match)
}

// fill makes sure child i of parent holds at least t records. It returns
// the index of the child which now covers the former child's key range;
// this differs from i only after merging the last child with its left
// sibling.
//
// Policy: borrow-left, borrow-right, merge-right, merge-left.
func (t *Tree[K, R]) fill(parent *innerNode[R], i int) int {
	hasLeft := i > 0
	hasRight := i < len(parent.records)
	switch {
	case hasLeft && !t.sparse(parent.children[i-1]):
		t.borrowLeft(parent, i)
		return i
	case hasRight && !t.sparse(parent.children[i+1]):
		t.borrowRight(parent, i)
		return i
	case hasRight:
		t.merge(parent, i)
		return i
	}
	assert(hasLeft, "fill called for an only child")
	t.merge(parent, i-1)
	return i - 1
}

// borrowLeft rotates one record from the left sibling of child i through
// the parent into child i.
func (t *Tree[K, R]) borrowLeft(parent *innerNode[R], i int) {
	child, sibling := parent.children[i], parent.children[i-1]
	child.items().insertAt(0, parent.records[i-1])
	parent.records[i-1] = sibling.items().pop()
	if !child.isLeaf() {
		c, s := child.(*innerNode[R]), sibling.(*innerNode[R])
		c.children.insertAt(0, s.children.pop())
	}
}

// borrowRight rotates one record from the right sibling of child i through
// the parent into child i.
func (t *Tree[K, R]) borrowRight(parent *innerNode[R], i int) {
	child, sibling := parent.children[i], parent.children[i+1]
	records := child.items()
	records.insertAt(len(*records), parent.records[i])
	parent.records[i] = sibling.items().removeAt(0)
	if !child.isLeaf() {
		c, s := child.(*innerNode[R]), sibling.(*innerNode[R])
		c.children.insertAt(len(c.children), s.children.removeAt(0))
	}
}

// merge combines child i, separator records[i] and child i+1 into child i.
// The right sibling is dropped from the parent.
func (t *Tree[K, R]) merge(parent *innerNode[R], i int) {
	left, right := parent.children[i], parent.children[i+1]
	separator := parent.records.removeAt(i)
	parent.children.removeAt(i + 1)
	records := left.items()
	*records = append(*records, separator)
	*records = append(*records, *right.items()...)
	if !left.isLeaf() {
		l, r := left.(*innerNode[R]), right.(*innerNode[R])
		l.children = append(l.children, r.children...)
	}
	assert(len(*records) <= t.maxRecords(), "merge overflows node capacity")
}
