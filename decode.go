// FILE: lixenwraith/taskrc/decode.go
package taskrc

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// TagName is the struct tag consulted by Scan.
const TagName = "taskrc"

// Scan decodes the subtree at basePath into target, a non-nil pointer to a struct or map.
// An empty basePath decodes the whole tree; a missing subtree decodes as empty.
// Subtree keys lose their trailing marker, and a subtree shadows a leaf with the same name.
func (t *Tree) Scan(basePath string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be non-nil pointer, got %T", target)
	}

	section := t
	basePath = strings.TrimSuffix(basePath, SubtreeMarker)
	if basePath != "" {
		for _, segment := range strings.Split(basePath, ".") {
			if section.Has(segment) && !section.Has(segment+SubtreeMarker) {
				return fmt.Errorf("%w: %q", ErrNotSubtree, basePath)
			}
			section = section.SubOrEmpty(segment)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          TagName,
		WeaklyTypedInput: true,
		DecodeHook:       decodeHook(),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(section.decodeView()); err != nil {
		return fmt.Errorf("decode failed for path %q: %w", basePath, err)
	}
	return nil
}

// Scan decodes the subtree at basePath of the parsed file, ignoring overrides.
func (rc *TaskRc) Scan(basePath string, target any) error {
	return rc.Tree().Scan(basePath, target)
}

// decodeView builds the map handed to mapstructure.
// All yields "alpha" before "alpha.", so the subtree overwrites the leaf.
func (t *Tree) decodeView() map[string]any {
	view := make(map[string]any, t.Len())
	for k, n := range t.All() {
		if sub, ok := n.Tree(); ok {
			view[strings.TrimSuffix(k, SubtreeMarker)] = sub.decodeView()
			continue
		}
		v, _ := n.Value()
		view[k] = v
	}
	return view
}

// decodeHook returns the composite decode hook for taskrc string values
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		stringToTaskBoolHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// stringToTaskBoolHookFunc accepts the boolean spellings taskwarrior understands.
func stringToTaskBoolHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Bool {
			return data, nil
		}

		s := data.(string)
		if s == "" {
			return false, nil
		}
		b, ok := parseTaskBool(s)
		if !ok {
			return nil, fmt.Errorf("invalid boolean value %q", s)
		}
		return b, nil
	}
}
