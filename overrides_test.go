// FILE: lixenwraith/taskrc/overrides_test.go
package taskrc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverrideArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected map[string]string
	}{
		{"Equals", []string{"rc.verbose=off"}, map[string]string{"verbose": "off"}},
		{"Colon", []string{"rc.confirmation:no"}, map[string]string{"confirmation": "no"}},
		{"Nested", []string{"rc.report.next.filter=status:pending"}, map[string]string{"report.next.filter": "status:pending"}},
		{"EmptyValue", []string{"rc.color="}, map[string]string{"color": ""}},
		{"NonOverrideIgnored", []string{"list", "+home", "--taskrc", "x"}, map[string]string{}},
		{"MissingSeparator", []string{"rc.verbose"}, map[string]string{}},
		{"EmptyKey", []string{"rc.=x"}, map[string]string{}},
		{"LastWins", []string{"rc.a=1", "rc.a=2"}, map[string]string{"a": "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseOverrideArgs(tt.args))
		})
	}
}

func TestLoadOverridesFile(t *testing.T) {
	t.Run("TOML", func(t *testing.T) {
		got, err := LoadOverridesFile("testdata/overrides.toml")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"verbose":       "off",
			"data.location": "/srv/task",
			"uda.b.label":   "Isotope",
		}, got)
	})

	t.Run("YAML", func(t *testing.T) {
		got, err := LoadOverridesFile("testdata/overrides.yaml")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"verbose":             "off",
			"data.location":       "/srv/task",
			"report.next.columns": "id,description,urgency",
		}, got)
	})

	t.Run("JSONByContent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "overrides.conf")
		require.NoError(t, os.WriteFile(path, []byte(`{"urgency": {"due": {"coefficient": 12.5}}, "nice": 3}`), 0644))

		got, err := LoadOverridesFile(path)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"urgency.due.coefficient": "12.5",
			"nice":                    "3",
		}, got)
	})

	t.Run("Unknown", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "overrides.conf")
		require.NoError(t, os.WriteFile(path, []byte("{{{ not anything"), 0644))

		_, err := LoadOverridesFile(path)
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})

	t.Run("InvalidTOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "overrides.toml")
		require.NoError(t, os.WriteFile(path, []byte("verbose = "), 0644))

		_, err := LoadOverridesFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse TOML")
	})
}
