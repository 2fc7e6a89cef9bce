package taskrc

import (
	"slices"
	"strings"
)

// FieldKind enumerates the value types a user-defined attribute can declare.
type FieldKind int

const (
	KindString FieldKind = iota
	KindDate
	KindDuration
	KindNumeric
	KindChoice
)

var kindNames = map[FieldKind]string{
	KindString:   "string",
	KindDate:     "date",
	KindDuration: "duration",
	KindNumeric:  "numeric",
	KindChoice:   "choice",
}

// declaredKinds maps a uda.<name>.type value to its kind. Choice is never declared directly.
var declaredKinds = map[string]FieldKind{
	"date":     KindDate,
	"duration": KindDuration,
	"numeric":  KindNumeric,
	"string":   KindString,
}

// String returns the taskrc spelling of the kind.
func (k FieldKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseFieldKind maps a declared type to a kind. Unknown or empty input yields KindString.
func ParseFieldKind(s string) FieldKind {
	if k, ok := declaredKinds[s]; ok {
		return k
	}
	return KindString
}

// FieldDescriptor is an immutable description of a user-defined attribute.
// Two descriptors are equal when kind, label and choices match.
type FieldDescriptor struct {
	kind     FieldKind
	label    string
	hasLabel bool
	choices  []string
}

// FieldOption configures a FieldDescriptor at construction time.
type FieldOption func(*FieldDescriptor)

// WithLabel attaches a display label.
func WithLabel(label string) FieldOption {
	return func(f *FieldDescriptor) {
		f.label = label
		f.hasLabel = true
	}
}

// NewField builds a descriptor of the given kind. Use NewChoiceField for choices.
func NewField(kind FieldKind, opts ...FieldOption) FieldDescriptor {
	f := FieldDescriptor{kind: kind}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// NewChoiceField builds a choice descriptor with the given ordered choices.
func NewChoiceField(choices []string, opts ...FieldOption) FieldDescriptor {
	f := NewField(KindChoice, opts...)
	f.choices = slices.Clone(choices)
	return f
}

// Kind returns the field kind.
func (f FieldDescriptor) Kind() FieldKind { return f.kind }

// Label returns the label and whether one was declared.
func (f FieldDescriptor) Label() (string, bool) { return f.label, f.hasLabel }

// Choices returns a copy of the allowed values; nil unless the kind is KindChoice.
func (f FieldDescriptor) Choices() []string { return slices.Clone(f.choices) }

// Equal reports value equality.
func (f FieldDescriptor) Equal(other FieldDescriptor) bool {
	return f.kind == other.kind &&
		f.hasLabel == other.hasLabel &&
		f.label == other.label &&
		slices.Equal(f.choices, other.choices)
}

// String renders the descriptor for diagnostics, e.g. choice(label="Beta", choices=[H M L]).
func (f FieldDescriptor) String() string {
	var b strings.Builder
	b.WriteString(f.kind.String())
	b.WriteByte('(')
	if f.hasLabel {
		b.WriteString("label=")
		b.WriteString(quote(f.label))
	}
	if f.kind == KindChoice {
		if f.hasLabel {
			b.WriteString(", ")
		}
		b.WriteString("choices=[")
		for i, c := range f.choices {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(quote(c))
		}
		b.WriteByte(']')
	}
	b.WriteByte(')')
	return b.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// ResolveTypedFields derives field descriptors from the uda. subtree of t.
// Entries under uda. that are leaves rather than subtrees are ignored.
func ResolveTypedFields(t *Tree) map[string]FieldDescriptor {
	udas := t.SubOrEmpty("uda")
	fields := make(map[string]FieldDescriptor, udas.Len())

	for key, node := range udas.All() {
		entry, ok := node.Tree()
		if !ok {
			continue
		}
		name := strings.TrimSuffix(key, SubtreeMarker)

		var opts []FieldOption
		if label, ok := entry.Leaf("label"); ok && label != "" {
			opts = append(opts, WithLabel(label))
		}

		if values := entry.GetOr("values", ""); values != "" {
			fields[name] = NewChoiceField(strings.Split(values, ","), opts...)
			continue
		}
		fields[name] = NewField(ParseFieldKind(entry.GetOr("type", "")), opts...)
	}

	return fields
}
