/*
Package btree provides an in-memory, order-preserving B-tree for catalog
records.

The tree is the classic disk-index style B-tree of minimum degree t: records
live in leaves and inner nodes alike, every non-root node holds between t-1
and 2t-1 records, and inner nodes hold one more child link than records.
Records are ordered by a key which is extracted from a record by a
client-supplied function, fixed at construction time.

The tree is not a map. Duplicate keys are permitted and are kept in
insertion order; point operations (Search, Update, Delete) always address
the leftmost record with a given key.

Current status:
  - distinct `leafNode` and `innerNode` representations,
  - top-down insertion with proactive splitting of full nodes,
  - leftmost-duplicate point search and in-place update,
  - top-down deletion with borrow-left, borrow-right and merge fill,
    predecessor/successor promotion for inner-node records,
  - root growth and root collapse,
  - in-order traversal (slice and callback form),
  - structural invariant checker (`Check`),
  - textual and Graphviz DOT dumps for debugging.

A tree is not safe for concurrent use. Clients sharing a tree between
goroutines have to serialize access, usually with one mutex per tree.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package btree

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'shelves.btree'.
func tracer() tracing.Trace {
	return tracing.Select("shelves.btree")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
