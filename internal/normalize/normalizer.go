// File: internal/normalize/normalizer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Unified normalization routines for pool configuration. Ensures all
// pool constructors validate capacities the same way instead of each
// call site improvising bounds checks.
//
// Example usage:
//
//	initial, max, err := normalize.Capacity(cfg.InitialBlockCapacity, cfg.MaxBlockCapacity)

package normalize

import (
	"fmt"

	"github.com/momentics/slabpool/api"
)

// For logging normalization events (can be replaced with structured logger).
var logNormalize = func(msg string, args ...any) {
	fmt.Printf("[normalize] "+msg+"\n", args...)
}

// Capacity validates a block-capacity pair.
//   - Non-positive values are rejected with api.ErrInvalidCapacity.
//   - initial > max is clamped down to max and logged.
func Capacity(initial, max int) (int, int, error) {
	if initial <= 0 || max <= 0 {
		return 0, 0, api.ErrInvalidCapacity
	}
	if initial > max {
		logNormalize("initial block capacity %d exceeds max %d, clamping", initial, max)
		initial = max
	}
	return initial, max, nil
}
