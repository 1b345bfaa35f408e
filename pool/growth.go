// File: pool/growth.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

// nextBlockCapacity doubles the previous tail capacity and saturates at
// max. Once saturated, every further block is exactly max slots.
func nextBlockCapacity(prev, max int) int {
	next := prev * 2
	if next > max || next <= 0 {
		next = max
	}
	return next
}
