package btree

// ForEach walks all records in ascending key order.
//
// Iteration stops early if fn returns false. fn is called synchronously and
// must not modify the tree.
func (t *Tree[K, R]) ForEach(fn func(record R) bool) {
	if t == nil || t.root == nil || fn == nil {
		return
	}
	t.forEachNode(t.root, fn)
}

func (t *Tree[K, R]) forEachNode(n treeNode[R], fn func(record R) bool) bool {
	assert(n != nil, "forEachNode called with nil node")
	if n.isLeaf() {
		for _, r := range *n.items() {
			if !fn(r) {
				return false
			}
		}
		return true
	}
	inner := n.(*innerNode[R])
	for i, r := range inner.records {
		if !t.forEachNode(inner.children[i], fn) {
			return false
		}
		if !fn(r) {
			return false
		}
	}
	return t.forEachNode(inner.children[len(inner.children)-1], fn)
}

// Traverse returns all records in ascending key order.
func (t *Tree[K, R]) Traverse() []R {
	out := make([]R, 0, t.Len())
	t.ForEach(func(r R) bool {
		out = append(out, r)
		return true
	})
	return out
}
