// FILE: lixenwraith/taskrc/tree.go
package taskrc

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// SubtreeMarker is appended to a key segment that holds children rather than a value.
const SubtreeMarker = "."

// Node is a single tree entry: either a leaf string or a nested Tree.
type Node struct {
	value string
	tree  *Tree
}

// LeafNode returns a leaf node holding value.
func LeafNode(value string) Node {
	return Node{value: value}
}

// IsLeaf reports whether the node holds a value rather than a subtree.
func (n Node) IsLeaf() bool {
	return n.tree == nil
}

// Value returns the leaf value. The second result is false for subtrees.
func (n Node) Value() (string, bool) {
	if n.tree != nil {
		return "", false
	}
	return n.value, true
}

// Tree returns the nested tree. The second result is false for leaves.
func (n Node) Tree() (*Tree, bool) {
	return n.tree, n.tree != nil
}

// Tree is a sealed, read-only mapping parsed from a taskrc file.
// Subtree keys carry a trailing "." so a leaf and a subtree may share a base name.
// A Tree is safe for concurrent readers; every mutator returns ErrImmutable.
type Tree struct {
	entries map[string]Node
}

var emptyTree = &Tree{entries: map[string]Node{}}

// EmptyTree returns a tree with no entries.
func EmptyTree() *Tree {
	return emptyTree
}

// Len returns the number of root entries.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Get returns the node stored under key exactly as written, including any trailing marker.
func (t *Tree) Get(key string) (Node, bool) {
	if t == nil {
		return Node{}, false
	}
	n, ok := t.entries[key]
	return n, ok
}

// Has reports whether key is present.
func (t *Tree) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Leaf returns the leaf value stored under key.
func (t *Tree) Leaf(key string) (string, bool) {
	n, ok := t.Get(key)
	if !ok {
		return "", false
	}
	return n.Value()
}

// GetOr returns the leaf value under key, or def when absent or not a leaf.
func (t *Tree) GetOr(key, def string) string {
	if v, ok := t.Leaf(key); ok {
		return v
	}
	return def
}

// Sub returns the subtree for name. Both "uda" and "uda." address the same subtree.
func (t *Tree) Sub(name string) (*Tree, bool) {
	if !strings.HasSuffix(name, SubtreeMarker) {
		name += SubtreeMarker
	}
	n, ok := t.Get(name)
	if !ok {
		return nil, false
	}
	return n.Tree()
}

// SubOrEmpty returns the subtree for name, or an empty tree when absent.
func (t *Tree) SubOrEmpty(name string) *Tree {
	if sub, ok := t.Sub(name); ok {
		return sub
	}
	return emptyTree
}

// Lookup resolves a dotted path such as "alpha.one" to a leaf value.
func (t *Tree) Lookup(path string) (string, bool) {
	segments := strings.Split(path, ".")
	cursor := t
	for _, segment := range segments[:len(segments)-1] {
		next, ok := cursor.Sub(segment + SubtreeMarker)
		if !ok {
			return "", false
		}
		cursor = next
	}
	return cursor.Leaf(segments[len(segments)-1])
}

// Keys returns the root keys in sorted order.
func (t *Tree) Keys() []string {
	if t == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(t.entries))
}

// All iterates root entries in sorted key order.
func (t *Tree) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		for _, k := range t.Keys() {
			if !yield(k, t.entries[k]) {
				return
			}
		}
	}
}

// Set always fails; the tree is sealed.
func (t *Tree) Set(key, value string) error {
	return ErrImmutable
}

// Delete always fails; the tree is sealed.
func (t *Tree) Delete(key string) error {
	return ErrImmutable
}

// Update always fails; the tree is sealed.
func (t *Tree) Update(values map[string]string) error {
	return ErrImmutable
}

// ToMap returns a deep copy as nested map[string]any, keeping the trailing-marker keys.
func (t *Tree) ToMap() map[string]any {
	out := make(map[string]any, t.Len())
	if t == nil {
		return out
	}
	for k, n := range t.entries {
		if n.tree != nil {
			out[k] = n.tree.ToMap()
		} else {
			out[k] = n.value
		}
	}
	return out
}

// Flatten returns every leaf keyed by its full dotted path.
func (t *Tree) Flatten() map[string]string {
	flat := make(map[string]string)
	t.flattenInto(flat, "")
	return flat
}

func (t *Tree) flattenInto(flat map[string]string, prefix string) {
	if t == nil {
		return
	}
	for k, n := range t.entries {
		if n.tree != nil {
			n.tree.flattenInto(flat, prefix+k)
			continue
		}
		flat[prefix+k] = n.value
	}
}

// treeBuilder is the mutable stage used while parsing. It is sealed exactly once.
type treeBuilder struct {
	root map[string]any
}

func newTreeBuilder() *treeBuilder {
	return &treeBuilder{root: make(map[string]any)}
}

// insert stores value under the dotted key, creating intermediate subtrees.
// Later inserts of the same key overwrite earlier ones.
func (b *treeBuilder) insert(key, value string) {
	parts := strings.Split(key, ".")
	cursor := b.root
	for _, part := range parts[:len(parts)-1] {
		subKey := part + SubtreeMarker
		next, ok := cursor[subKey].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cursor[subKey] = next
		}
		cursor = next
	}
	cursor[parts[len(parts)-1]] = value
}

// seal converts the mutable stage into a read-only Tree.
func (b *treeBuilder) seal() *Tree {
	t := sealMap(b.root)
	b.root = nil
	return t
}

func sealMap(raw map[string]any) *Tree {
	t := &Tree{entries: make(map[string]Node, len(raw))}
	for k, v := range raw {
		switch val := v.(type) {
		case map[string]any:
			t.entries[k] = Node{tree: sealMap(val)}
		case string:
			t.entries[k] = Node{value: val}
		}
	}
	return t
}
