// FILE: lixenwraith/taskrc/taskrc.go
package taskrc

import (
	"fmt"
	"io"
	"iter"
	"maps"
	"os"
	"slices"
)

// TaskRc gives read-only access to a parsed taskrc file.
// Overrides are kept beside the tree and consulted by Setting; they never alter the tree.
type TaskRc struct {
	tree      *Tree
	path      string
	overrides map[string]string
	malformed []*MalformedLineError
}

// Parse reads a taskrc from r. path is used only in diagnostics and may be empty.
func Parse(r io.Reader, path string) (*TaskRc, error) {
	return NewBuilder().WithReader(r, path).Build()
}

// Load parses the taskrc file at path.
// A missing file yields an empty TaskRc together with ErrConfigNotFound.
func Load(path string) (*TaskRc, error) {
	return NewBuilder().WithFile(path).Build()
}

// Tree returns the sealed configuration tree.
func (rc *TaskRc) Tree() *Tree {
	if rc == nil || rc.tree == nil {
		return emptyTree
	}
	return rc.tree
}

// Path returns the source path, empty when parsed from an anonymous reader.
func (rc *TaskRc) Path() string {
	return rc.path
}

// Get returns the root node stored under key, trailing marker included.
func (rc *TaskRc) Get(key string) (Node, bool) {
	return rc.Tree().Get(key)
}

// GetOr returns the root leaf under key, or def.
func (rc *TaskRc) GetOr(key, def string) string {
	return rc.Tree().GetOr(key, def)
}

// Has reports whether a root key is present.
func (rc *TaskRc) Has(key string) bool {
	return rc.Tree().Has(key)
}

// Lookup resolves a dotted path against the parsed tree, ignoring overrides.
func (rc *TaskRc) Lookup(path string) (string, bool) {
	return rc.Tree().Lookup(path)
}

// All iterates the root entries in sorted key order.
func (rc *TaskRc) All() iter.Seq2[string, Node] {
	return rc.Tree().All()
}

// Set always fails with ErrImmutable.
func (rc *TaskRc) Set(key, value string) error {
	return rc.Tree().Set(key, value)
}

// Delete always fails with ErrImmutable.
func (rc *TaskRc) Delete(key string) error {
	return rc.Tree().Delete(key)
}

// Update always fails with ErrImmutable.
func (rc *TaskRc) Update(values map[string]string) error {
	return rc.Tree().Update(values)
}

// Setting returns the value for a dotted path, preferring overrides over the file.
func (rc *TaskRc) Setting(path string) (string, bool) {
	if v, ok := rc.overrides[path]; ok {
		return v, true
	}
	return rc.Lookup(path)
}

// Overrides returns a copy of the override layer.
func (rc *TaskRc) Overrides() map[string]string {
	return maps.Clone(rc.overrides)
}

// Malformed returns the lines skipped during parsing.
func (rc *TaskRc) Malformed() []*MalformedLineError {
	return slices.Clone(rc.malformed)
}

// TypedFields resolves the user-defined attributes declared under uda.
func (rc *TaskRc) TypedFields() map[string]FieldDescriptor {
	return ResolveTypedFields(rc.Tree())
}

// String implements fmt.Stringer.
func (rc *TaskRc) String() string {
	return fmt.Sprintf("TaskRc file at %s", rc.path)
}

// openTaskrc opens path, mapping a missing file to ErrConfigNotFound.
func openTaskrc(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to open taskrc '%s': %w", path, err)
	}
	return f, nil
}
