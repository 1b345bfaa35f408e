// File: pool/block.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Raw slot storage. A block owns one contiguous buffer of
// capacity*slotSize bytes and is the only place the pool reasons about
// uninitialized memory directly.

package pool

import "unsafe"

// block is a contiguous run of fixed-size slots. Blocks never move or
// shrink once allocated; their buffers go back to the Storage backend
// only when the owning pool is closed.
type block struct {
	buf      []byte
	base     unsafe.Pointer
	capacity int
	slotSize uintptr
}

func newBlock(capacity int, slotSize uintptr, st Storage) (*block, error) {
	buf, err := st.Alloc(capacity * int(slotSize))
	if err != nil {
		return nil, err
	}
	return &block{
		buf:      buf,
		base:     unsafe.Pointer(&buf[0]),
		capacity: capacity,
		slotSize: slotSize,
	}, nil
}

// slot returns the address of the i-th slot. i must be within
// [0, capacity).
func (b *block) slot(i int) unsafe.Pointer {
	return unsafe.Add(b.base, uintptr(i)*b.slotSize)
}

// owns reports whether p lies on a slot boundary inside this block.
func (b *block) owns(p unsafe.Pointer) bool {
	if uintptr(p) < uintptr(b.base) {
		return false
	}
	off := uintptr(p) - uintptr(b.base)
	return off < uintptr(b.capacity)*b.slotSize && off%b.slotSize == 0
}

// free returns the buffer to storage. The block must not be used after.
func (b *block) free(st Storage) error {
	buf := b.buf
	b.buf = nil
	b.base = nil
	return st.Free(buf)
}
