// FILE: lixenwraith/taskrc/settings.go
package taskrc

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Source identifies where a resolved setting came from
type Source string

const (
	// SourceFile represents values parsed from the taskrc file
	SourceFile Source = "file"
	// SourceOverride represents values from the override layer
	SourceOverride Source = "override"
)

// SettingSource returns the value for path and the layer that supplied it.
func (rc *TaskRc) SettingSource(path string) (string, Source, bool) {
	if v, ok := rc.overrides[path]; ok {
		return v, SourceOverride, true
	}
	if v, ok := rc.Lookup(path); ok {
		return v, SourceFile, true
	}
	return "", "", false
}

// StringSetting retrieves a string setting, overrides first.
func (rc *TaskRc) StringSetting(path string) (string, error) {
	v, ok := rc.Setting(path)
	if !ok {
		return "", fmt.Errorf("setting not found: %s", path)
	}
	return v, nil
}

// Int64 retrieves an integer setting. Base prefixes such as 0x are accepted.
func (rc *TaskRc) Int64(path string) (int64, error) {
	v, err := rc.StringSetting(path)
	if err != nil {
		return 0, err
	}
	i, err := strconv.ParseInt(v, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot convert string %q to int64 for path %s: %w", v, path, err)
	}
	return i, nil
}

// Float64 retrieves a floating point setting.
func (rc *TaskRc) Float64(path string) (float64, error) {
	v, err := rc.StringSetting(path)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot convert string %q to float64 for path %s: %w", v, path, err)
	}
	return f, nil
}

// Bool retrieves a boolean setting using taskwarrior's spellings (on/off, yes/no, 1/0...).
func (rc *TaskRc) Bool(path string) (bool, error) {
	v, err := rc.StringSetting(path)
	if err != nil {
		return false, err
	}
	b, ok := parseTaskBool(v)
	if !ok {
		return false, fmt.Errorf("cannot convert string %q to bool for path %s", v, path)
	}
	return b, nil
}

// parseTaskBool recognises the boolean spellings taskwarrior accepts.
func parseTaskBool(s string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes", "y", "true", "t", "1":
		return true, true
	case "off", "no", "n", "false", "f", "0":
		return false, true
	}
	return false, false
}

// Duration retrieves a Go-style duration setting such as "90s".
func (rc *TaskRc) Duration(path string) (time.Duration, error) {
	v, err := rc.StringSetting(path)
	if err != nil {
		return 0, err
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("cannot convert string %q to duration for path %s: %w", v, path, err)
	}
	return d, nil
}

// Debug returns a formatted listing of every resolved setting and its source
func (rc *TaskRc) Debug() string {
	resolved := rc.Tree().Flatten()
	for k, v := range rc.overrides {
		resolved[k] = v
	}

	paths := make([]string, 0, len(resolved))
	for k := range resolved {
		paths = append(paths, k)
	}
	slices.Sort(paths)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", rc)
	for _, path := range paths {
		_, src, _ := rc.SettingSource(path)
		fmt.Fprintf(&b, "  %s = %s (%s)\n", path, resolved[path], src)
	}
	if len(rc.malformed) > 0 {
		fmt.Fprintf(&b, "Skipped lines: %d\n", len(rc.malformed))
	}
	return b.String()
}
