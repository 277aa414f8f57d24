// FILE: lixenwraith/emuconfig/timing.go
package emuconfig

import "time"

// Core timing constants for production use.
const (
	SpinWaitInterval     = 5 * time.Millisecond   // CPU-friendly busy-wait quantum
	ShutdownTimeout      = 100 * time.Millisecond // Graceful watcher termination window
	DefaultDebounce      = 500 * time.Millisecond // File change coalescence period
	DefaultReloadTimeout = 5 * time.Second        // Maximum duration for reload operations
)

// debounceSettleMultiplier gives a debounced reload time to complete
const debounceSettleMultiplier = 3
