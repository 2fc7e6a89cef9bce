// FILE: lixenwraith/taskrc/watch.go
package taskrc

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchOptions configures reload watching
type WatchOptions struct {
	// Debounce coalesces bursts of file events into one reload
	Debounce time.Duration

	// EmitInitial sends a snapshot of the current file before any change
	EmitInitial bool
}

// DefaultWatchOptions returns sensible defaults for reload watching
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		Debounce:    DefaultDebounce,
		EmitInitial: true,
	}
}

// Watch rebuilds the taskrc whenever its file is written or replaced and sends each
// new snapshot on the returned channel. Snapshots are independent sealed values.
// The channel is closed when ctx is done. The builder must not be modified afterwards.
func (b *Builder) Watch(ctx context.Context, opts WatchOptions) (<-chan *TaskRc, error) {
	if b.file == "" {
		return nil, errors.New("watch requires a taskrc file path")
	}
	if opts.Debounce < MinDebounce {
		opts.Debounce = MinDebounce
	}

	path, err := filepath.Abs(b.file)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve taskrc path '%s': %w", b.file, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	// Watch the directory so that editors replacing the file by rename are seen.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch '%s': %w", filepath.Dir(path), err)
	}

	out := make(chan *TaskRc, 1)
	go b.watchLoop(ctx, fsw, path, opts, out)
	return out, nil
}

func (b *Builder) watchLoop(ctx context.Context, fsw *fsnotify.Watcher, path string, opts WatchOptions, out chan<- *TaskRc) {
	defer close(out)
	defer fsw.Close()

	if opts.EmitInitial && !b.reload(ctx, out) {
		return
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(opts.Debounce)
			} else {
				timer.Reset(opts.Debounce)
			}
			fire = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			b.logger.Warn().Err(err).Str("path", path).Msg("File watcher error")

		case <-fire:
			fire = nil
			if !b.reload(ctx, out) {
				return
			}
		}
	}
}

// reload builds a fresh snapshot and delivers it. It returns false once ctx is done.
func (b *Builder) reload(ctx context.Context, out chan<- *TaskRc) bool {
	rc, err := b.Build()
	if err != nil {
		b.logger.Warn().Err(err).Str("path", b.file).Msg("Taskrc reload failed")
		return ctx.Err() == nil
	}

	b.logger.Info().Str("path", b.file).Int("entries", rc.Tree().Len()).Msg("Taskrc reloaded")
	select {
	case out <- rc:
		return true
	case <-ctx.Done():
		return false
	}
}
