// FILE: lixenwraith/taskrc/discovery.go
package taskrc

import (
	"os"
	"path/filepath"
	"strings"
)

// FileDiscoveryOptions configures automatic taskrc discovery
type FileDiscoveryOptions struct {
	// CLI flag holding an explicit path (e.g., "--taskrc")
	CLIFlag string

	// Environment variable holding an explicit path
	EnvVar string

	// Custom search paths, checked before the defaults
	Paths []string

	// Whether to check ~/.taskrc
	UseHome bool

	// Whether to check $XDG_CONFIG_HOME/task/taskrc
	UseXDG bool
}

// DefaultDiscoveryOptions returns the locations taskwarrior itself consults
func DefaultDiscoveryOptions() FileDiscoveryOptions {
	return FileDiscoveryOptions{
		CLIFlag: "--taskrc",
		EnvVar:  "TASKRC",
		UseHome: true,
		UseXDG:  true,
	}
}

// WithFileDiscovery locates the taskrc file and sets it as the builder's file.
// Not finding a file is not an error; the builder then yields an empty tree.
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	if path := DiscoverFile(opts, b.args); path != "" {
		b.file = path
	}
	return b
}

// DiscoverFile returns the first taskrc path found, or "" when none exists.
// Explicit paths from args or the environment are returned even if missing,
// so that the caller reports the missing file instead of silently falling back.
func DiscoverFile(opts FileDiscoveryOptions, args []string) string {
	if opts.CLIFlag != "" {
		for i, arg := range args {
			if arg == opts.CLIFlag && i+1 < len(args) {
				return expandHome(args[i+1])
			}
			if strings.HasPrefix(arg, opts.CLIFlag+"=") {
				return expandHome(strings.TrimPrefix(arg, opts.CLIFlag+"="))
			}
		}
	}

	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			return expandHome(path)
		}
	}

	candidates := make([]string, 0, len(opts.Paths)+2)
	for _, p := range opts.Paths {
		candidates = append(candidates, expandHome(p))
	}
	if opts.UseHome {
		if home, err := os.UserHomeDir(); err == nil {
			candidates = append(candidates, filepath.Join(home, ".taskrc"))
		}
	}
	if opts.UseXDG {
		if dir := xdgConfigHome(); dir != "" {
			candidates = append(candidates, filepath.Join(dir, "task", "taskrc"))
		}
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// xdgConfigHome returns $XDG_CONFIG_HOME or its ~/.config default.
func xdgConfigHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config")
	}
	return ""
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
