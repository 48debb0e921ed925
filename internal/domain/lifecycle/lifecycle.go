// Package lifecycle holds shared limits for fx start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds the work done inside a single OnStart or OnStop hook.
const DefaultTimeout = 10 * time.Second
