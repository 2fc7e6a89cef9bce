// FILE: lixenwraith/taskrc/builder.go
package taskrc

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ValidatorFunc inspects a fully built TaskRc and returns an error if it is unacceptable.
type ValidatorFunc func(rc *TaskRc) error

// Builder provides a fluent interface for loading a taskrc
type Builder struct {
	logger       zerolog.Logger
	file         string
	reader       io.Reader
	readerPath   string
	args         []string
	overrides    map[string]string
	overrideFile string
	err          error
	validators   []ValidatorFunc
}

// NewBuilder creates a new taskrc builder
func NewBuilder() *Builder {
	return &Builder{
		logger:     log.Logger,
		args:       os.Args[1:],
		overrides:  make(map[string]string),
		validators: make([]ValidatorFunc, 0),
	}
}

// WithFile sets the taskrc file path
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithReader parses r instead of a file. path is only used in diagnostics.
func (b *Builder) WithReader(r io.Reader, path string) *Builder {
	if r == nil {
		b.err = errors.New("taskrc reader cannot be nil")
		return b
	}
	b.reader = r
	b.readerPath = path
	return b
}

// WithLogger sets the logger used for parse diagnostics
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithArgs sets the command-line arguments scanned for rc.<key>=<value> overrides
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithOverrides adds override settings keyed by dotted path
func (b *Builder) WithOverrides(overrides map[string]string) *Builder {
	maps.Copy(b.overrides, overrides)
	return b
}

// WithOverridesFile reads override settings from a TOML, YAML or JSON file
func (b *Builder) WithOverridesFile(path string) *Builder {
	b.overrideFile = path
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build parses the configured source and seals the result.
// A missing file is not fatal: an empty TaskRc is returned together with ErrConfigNotFound.
func (b *Builder) Build() (*TaskRc, error) {
	if b.err != nil {
		return nil, b.err
	}

	rc := &TaskRc{tree: emptyTree, path: b.file}

	var loadErr error
	var res *parseResult
	switch {
	case b.reader != nil:
		rc.path = b.readerPath
		r, err := parseTaskrc(b.reader, b.readerPath, b.logger)
		if err != nil {
			return nil, err
		}
		res = r
	case b.file != "":
		r, err := b.loadFile(b.file)
		if err != nil && !errors.Is(err, ErrConfigNotFound) {
			return nil, err
		}
		res, loadErr = r, err
	}

	if res != nil {
		rc.tree = res.tree
		rc.malformed = res.malformed
	}

	overrides, err := b.collectOverrides()
	if err != nil {
		return nil, err
	}
	rc.overrides = overrides

	for _, validator := range b.validators {
		if err := validator(rc); err != nil {
			return nil, fmt.Errorf("taskrc validation failed: %w", err)
		}
	}

	// ErrConfigNotFound or nil
	return rc, loadErr
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *TaskRc {
	rc, err := b.Build()
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		panic(fmt.Sprintf("taskrc build failed: %v", err))
	}
	return rc
}

// loadFile opens and parses path.
func (b *Builder) loadFile(path string) (*parseResult, error) {
	f, err := openTaskrc(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b.logger.Debug().Str("path", path).Msg("Loading taskrc")
	return parseTaskrc(f, path, b.logger)
}

// collectOverrides layers file overrides, explicit overrides and rc.* args, last wins.
func (b *Builder) collectOverrides() (map[string]string, error) {
	merged := make(map[string]string)

	if b.overrideFile != "" {
		fromFile, err := LoadOverridesFile(b.overrideFile)
		if err != nil {
			return nil, err
		}
		maps.Copy(merged, fromFile)
	}

	maps.Copy(merged, b.overrides)
	maps.Copy(merged, ParseOverrideArgs(b.args))

	return merged, nil
}
