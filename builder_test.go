// FILE: lixenwraith/taskrc/builder_test.go
package taskrc

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "testdata/default.taskrc"

// TestBuilder tests the builder pattern
func TestBuilder(t *testing.T) {
	t.Run("LoadFixture", func(t *testing.T) {
		rc, err := NewBuilder().
			WithFile(fixture).
			WithLogger(zerolog.Nop()).
			WithArgs(nil).
			Build()
		require.NoError(t, err)

		assert.Equal(t, map[string]any{
			"data.":  map[string]any{"location": "~/.task"},
			"alpha":  "12",
			"alpha.": map[string]any{"one": "yes", "two": "2"},
			"beta.":  map[string]any{"one": "FALSE"},
			"gamma.": map[string]any{"one": "TRUE"},
			"omega.": map[string]any{"one": "X=X=X="},
			"uda.": map[string]any{
				"a.": map[string]any{"type": "numeric", "label": "Alpha"},
				"b.": map[string]any{"type": "string", "label": "Beta", "values": "Strontium-90,Hydrogen-3"},
			},
		}, rc.Tree().ToMap())

		assert.Equal(t, fixture, rc.Path())
		assert.Equal(t, "TaskRc file at "+fixture, rc.String())

		malformed := rc.Malformed()
		require.Len(t, malformed, 1)
		assert.Equal(t, "this line has no separator", malformed[0].Content)
		assert.Equal(t, fixture, malformed[0].Path)
	})

	t.Run("MissingFile", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "nope.taskrc")
		rc, err := NewBuilder().WithFile(missing).WithArgs(nil).Build()
		assert.ErrorIs(t, err, ErrConfigNotFound)
		require.NotNil(t, rc)
		assert.Equal(t, 0, rc.Tree().Len())
		assert.Empty(t, rc.TypedFields())
	})

	t.Run("NoSource", func(t *testing.T) {
		rc, err := NewBuilder().WithArgs(nil).Build()
		require.NoError(t, err)
		assert.Equal(t, 0, rc.Tree().Len())
	})

	t.Run("NilReader", func(t *testing.T) {
		_, err := NewBuilder().WithReader(nil, "x").Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reader cannot be nil")
	})

	t.Run("ReaderPathInDiagnostics", func(t *testing.T) {
		var buf bytes.Buffer
		rc, err := NewBuilder().
			WithReader(strings.NewReader("broken\n"), "/etc/taskrc").
			WithLogger(zerolog.New(&buf)).
			WithArgs(nil).
			Build()
		require.NoError(t, err)
		assert.Equal(t, "/etc/taskrc", rc.Path())
		assert.Contains(t, buf.String(), `"path":"/etc/taskrc"`)
	})

	t.Run("UnreadableFile", func(t *testing.T) {
		dir := t.TempDir()
		_, err := NewBuilder().WithFile(dir).WithArgs(nil).Build()
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrConfigNotFound))
	})
}

// TestBuilderValidation tests validators run after parsing
func TestBuilderValidation(t *testing.T) {
	requireLocation := func(rc *TaskRc) error {
		if _, ok := rc.Lookup("data.location"); !ok {
			return errors.New("data.location is required")
		}
		return nil
	}

	t.Run("Passes", func(t *testing.T) {
		_, err := NewBuilder().
			WithReader(strings.NewReader("data.location=~/.task"), "").
			WithValidator(requireLocation).
			WithValidator(nil).
			WithArgs(nil).
			Build()
		assert.NoError(t, err)
	})

	t.Run("Fails", func(t *testing.T) {
		_, err := NewBuilder().
			WithReader(strings.NewReader("alpha=1"), "").
			WithValidator(requireLocation).
			WithArgs(nil).
			Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
		assert.Contains(t, err.Error(), "data.location is required")
	})

	t.Run("MustBuildPanics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewBuilder().
				WithReader(strings.NewReader("alpha=1"), "").
				WithValidator(requireLocation).
				WithArgs(nil).
				MustBuild()
		})
	})

	t.Run("MustBuildToleratesMissingFile", func(t *testing.T) {
		assert.NotPanics(t, func() {
			rc := NewBuilder().WithFile(filepath.Join(t.TempDir(), "x")).WithArgs(nil).MustBuild()
			assert.NotNil(t, rc)
		})
	})
}

// TestTaskRcImmutability tests that the wrapper rejects mutation like its tree
func TestTaskRcImmutability(t *testing.T) {
	rc, err := Parse(strings.NewReader("alpha=12\nalpha.one=yes\n"), "")
	require.NoError(t, err)
	before := rc.Tree().ToMap()

	assert.ErrorIs(t, rc.Set("alpha", "0"), ErrImmutable)
	assert.ErrorIs(t, rc.Delete("alpha."), ErrImmutable)
	assert.ErrorIs(t, rc.Update(map[string]string{"beta": "1"}), ErrImmutable)
	assert.Equal(t, before, rc.Tree().ToMap())

	assert.True(t, rc.Has("alpha"))
	assert.Equal(t, "12", rc.GetOr("alpha", ""))
	assert.Equal(t, "none", rc.GetOr("beta", "none"))
	node, ok := rc.Get("alpha.")
	require.True(t, ok)
	assert.False(t, node.IsLeaf())

	var keys []string
	for k := range rc.All() {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"alpha", "alpha."}, keys)
}

// TestBuilderOverrides tests layering of overrides over the parsed tree
func TestBuilderOverrides(t *testing.T) {
	rc, err := NewBuilder().
		WithFile(fixture).
		WithLogger(zerolog.Nop()).
		WithOverridesFile("testdata/overrides.toml").
		WithOverrides(map[string]string{"alpha.one": "no", "verbose": "on"}).
		WithArgs([]string{"list", "rc.alpha.two=3", "rc.verbose:nothing"}).
		Build()
	require.NoError(t, err)

	t.Run("Precedence", func(t *testing.T) {
		v, _ := rc.Setting("data.location")
		assert.Equal(t, "/srv/task", v, "file overrides beat the taskrc")
		v, _ = rc.Setting("alpha.one")
		assert.Equal(t, "no", v, "explicit overrides beat the taskrc")
		v, _ = rc.Setting("alpha.two")
		assert.Equal(t, "3", v, "rc.* args beat the taskrc")
		v, _ = rc.Setting("verbose")
		assert.Equal(t, "nothing", v, "rc.* args beat explicit and file overrides")
		v, _ = rc.Setting("omega.one")
		assert.Equal(t, "X=X=X=", v)
		_, ok := rc.Setting("missing")
		assert.False(t, ok)
	})

	t.Run("TreeUntouched", func(t *testing.T) {
		v, _ := rc.Lookup("data.location")
		assert.Equal(t, "~/.task", v)
		label, _ := rc.TypedFields()["b"].Label()
		assert.Equal(t, "Beta", label)
	})

	t.Run("OverridesCopy", func(t *testing.T) {
		o := rc.Overrides()
		o["alpha.one"] = "mutated"
		v, _ := rc.Setting("alpha.one")
		assert.Equal(t, "no", v)
	})

	t.Run("MissingOverridesFile", func(t *testing.T) {
		_, err := NewBuilder().
			WithOverridesFile(filepath.Join(t.TempDir(), "absent.toml")).
			WithArgs(nil).
			Build()
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})
}

func TestLoadHelper(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskrc")
	require.NoError(t, os.WriteFile(path, []byte("uda.p.values=H,M,L,\n"), 0644))

	rc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"H", "M", "L", ""}, rc.TypedFields()["p"].Choices())
}
