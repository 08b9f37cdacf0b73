package btree

import "fmt"

// Check validates structural tree invariants:
//
//   - records of a node are ordered by key,
//   - keys of child i are bracketed by records i-1 and i of the parent,
//   - every non-root node holds between t-1 and 2t-1 records,
//   - inner nodes hold exactly one more child than records,
//   - all leaves have the same depth, which equals Height,
//   - the number of records equals Len.
//
// Check is meant to be used in tests.
func (t *Tree[K, R]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvariant)
	}
	if t.root == nil {
		if t.height != 0 || t.size != 0 {
			return fmt.Errorf("%w: empty tree must have height=0 and len=0, has %d/%d",
				ErrInvariant, t.height, t.size)
		}
		return nil
	}
	if len(*t.root.items()) == 0 {
		return fmt.Errorf("%w: root of a non-empty tree has no records", ErrInvariant)
	}
	count, height, err := t.checkNode(t.root, true, nil, nil)
	if err != nil {
		return err
	}
	if height != t.height {
		return fmt.Errorf("%w: height mismatch (%d != %d)", ErrInvariant, height, t.height)
	}
	if count != t.size {
		return fmt.Errorf("%w: size mismatch (%d != %d)", ErrInvariant, count, t.size)
	}
	return nil
}

// checkNode verifies the subtree at n, whose keys have to lie within
// [lo, hi]; nil bounds are open.
func (t *Tree[K, R]) checkNode(n treeNode[R], isRoot bool, lo, hi *K) (count int, height int, err error) {
	if n == nil {
		return 0, 0, fmt.Errorf("%w: nil node", ErrInvariant)
	}
	records := *n.items()
	if len(records) > t.maxRecords() {
		return 0, 0, fmt.Errorf("%w: node holds %d records, maximum is %d",
			ErrInvariant, len(records), t.maxRecords())
	}
	if !isRoot && len(records) < t.minRecords() {
		return 0, 0, fmt.Errorf("%w: node holds %d records, minimum is %d",
			ErrInvariant, len(records), t.minRecords())
	}
	for i, r := range records {
		k := t.keyOf(r)
		if i > 0 && t.compare(t.keyOf(records[i-1]), k) > 0 {
			return 0, 0, fmt.Errorf("%w: records out of order at index %d", ErrInvariant, i)
		}
		if lo != nil && t.compare(*lo, k) > 0 {
			return 0, 0, fmt.Errorf("%w: key %v below lower bound %v", ErrInvariant, k, *lo)
		}
		if hi != nil && t.compare(k, *hi) > 0 {
			return 0, 0, fmt.Errorf("%w: key %v above upper bound %v", ErrInvariant, k, *hi)
		}
	}
	if n.isLeaf() {
		return len(records), 1, nil
	}
	inner := n.(*innerNode[R])
	if len(inner.children) != len(records)+1 {
		return 0, 0, fmt.Errorf("%w: inner node has %d records but %d children",
			ErrInvariant, len(records), len(inner.children))
	}
	count = len(records)
	var childHeight int
	for i, child := range inner.children {
		cLo, cHi := lo, hi
		if i > 0 {
			k := t.keyOf(records[i-1])
			cLo = &k
		}
		if i < len(records) {
			k := t.keyOf(records[i])
			cHi = &k
		}
		cCount, cHeight, cErr := t.checkNode(child, false, cLo, cHi)
		if cErr != nil {
			return 0, 0, cErr
		}
		count += cCount
		if i == 0 {
			childHeight = cHeight
		} else if cHeight != childHeight {
			return 0, 0, fmt.Errorf("%w: non-uniform subtree heights", ErrInvariant)
		}
	}
	return count, childHeight + 1, nil
}
