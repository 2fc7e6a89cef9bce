// FILE: lixenwraith/taskrc/timing.go
package taskrc

import "time"

// Timing constants for reload watching.
const (
	MinDebounce     = 10 * time.Millisecond  // Hard floor for change coalescence
	DefaultDebounce = 200 * time.Millisecond // File change coalescence period
)
