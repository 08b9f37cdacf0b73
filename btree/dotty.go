package btree

import (
	"fmt"
	"io"
	"strings"
)

// Visualize returns a depth-indented dump of the tree, one node per line,
// listing the keys of each node:
//
//	[c|f]
//	  [a|b]
//	  [d|e]
//	  [g|h]
//
// Visualize is a debugging aid; it does not write anywhere.
func (t *Tree[K, R]) Visualize() string {
	if t.IsEmpty() {
		return "[]"
	}
	var b strings.Builder
	t.visualizeNode(&b, t.root, 0)
	return strings.TrimSuffix(b.String(), "\n")
}

func (t *Tree[K, R]) visualizeNode(b *strings.Builder, n treeNode[R], depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(t.nodeLabel(n, "|"))
	b.WriteByte('\n')
	if n.isLeaf() {
		return
	}
	for _, child := range n.(*innerNode[R]).children {
		t.visualizeNode(b, child, depth+1)
	}
}

func (t *Tree[K, R]) nodeLabel(n treeNode[R], sep string) string {
	records := *n.items()
	keys := make([]string, len(records))
	for i, r := range records {
		keys[i] = fmt.Sprint(t.keyOf(r))
	}
	return "[" + strings.Join(keys, sep) + "]"
}

// WriteDot outputs the internal structure of the tree in Graphviz DOT format
// (for debugging purposes).
func (t *Tree[K, R]) WriteDot(w io.Writer) error {
	var b strings.Builder
	b.WriteString("strict digraph {\n")
	b.WriteString("\tnode [fontname=Arial,fontsize=12,shape=box];\n")
	if !t.IsEmpty() {
		ids := make(map[treeNode[R]]int)
		var nodelist, edgelist strings.Builder
		var walk func(n treeNode[R])
		walk = func(n treeNode[R]) {
			id := len(ids) + 1
			ids[n] = id
			label := strings.ReplaceAll(t.nodeLabel(n, " | "), `"`, `\"`)
			fmt.Fprintf(&nodelist, "\t\"%d\" [label=\"%s\"%s];\n", id, label, nodeDotStyles(n.isLeaf()))
			if n.isLeaf() {
				return
			}
			for _, child := range n.(*innerNode[R]).children {
				walk(child)
				fmt.Fprintf(&edgelist, "\t\"%d\" -> \"%d\";\n", id, ids[child])
			}
		}
		walk(t.root)
		b.WriteString(nodelist.String())
		b.WriteString(edgelist.String())
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nodeDotStyles(isleaf bool) string {
	s := ",style=filled"
	if isleaf {
		s += ",fillcolor=white"
	} else {
		s += ",color=black,fillcolor=\"#a3d7e4\""
	}
	return s
}
