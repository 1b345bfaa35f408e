// fixedpool_test.go — white-box tests for the block chain, free list, and
// growth policy of FixedPool.
package pool

import (
	"errors"
	"fmt"
	"testing"
	"unsafe"

	"github.com/momentics/slabpool/api"
)

// failStorage fails every Alloc after the first failAfter calls.
type failStorage struct {
	calls     int
	failAfter int
}

func (f *failStorage) Alloc(n int) ([]byte, error) {
	f.calls++
	if f.calls > f.failAfter {
		return nil, fmt.Errorf("alloc denied")
	}
	return make([]byte, n), nil
}

func (f *failStorage) Free([]byte) error { return nil }

func TestAcquireUniqueAddresses(t *testing.T) {
	p, err := NewFixedPool(16, DefaultConfig())
	if err != nil {
		t.Fatalf("NewFixedPool: %v", err)
	}
	seen := make(map[unsafe.Pointer]struct{})
	for i := 0; i < 50; i++ {
		slot, err := p.Acquire()
		if err != nil {
			t.Fatalf("Acquire %d: %v", i, err)
		}
		if _, dup := seen[slot]; dup {
			t.Fatalf("Acquire %d returned duplicate address %p", i, slot)
		}
		seen[slot] = struct{}{}
	}
}

func TestLIFOReuse(t *testing.T) {
	p, err := NewFixedPool(16, DefaultConfig())
	if err != nil {
		t.Fatalf("NewFixedPool: %v", err)
	}
	first := p.blocks[0]

	p1, _ := p.Acquire()
	p2, _ := p.Acquire()
	if p1 == p2 {
		t.Fatal("expected distinct slots")
	}
	if p1 != first.slot(0) || p2 != first.slot(1) {
		t.Error("first two slots should come from the head of the first block")
	}

	p.Release(p1)
	p.Release(p2)
	if p.freeHead != p2 {
		t.Error("free list head should be the most recently released slot")
	}

	r1, _ := p.Acquire()
	if r1 != p2 {
		t.Errorf("expected LIFO reuse of %p, got %p", p2, r1)
	}
	r2, _ := p.Acquire()
	if r2 != p1 {
		t.Errorf("expected %p next, got %p", p1, r2)
	}
	r3, _ := p.Acquire()
	if r3 != first.slot(2) {
		t.Error("empty free list should carve the third tail slot")
	}
}

func TestGrowthToNewBlock(t *testing.T) {
	p, err := NewFixedPool(8, Config{InitialBlockCapacity: 2, MaxBlockCapacity: 4})
	if err != nil {
		t.Fatalf("NewFixedPool: %v", err)
	}
	a, _ := p.Acquire()
	b, _ := p.Acquire()
	if !p.blocks[0].owns(a) || !p.blocks[0].owns(b) {
		t.Error("first two slots should come from the initial block")
	}
	c, err := p.Acquire()
	if err != nil {
		t.Fatalf("growth Acquire: %v", err)
	}
	if len(p.blocks) != 2 {
		t.Fatalf("expected 2 blocks after growth, got %d", len(p.blocks))
	}
	if p.blocks[1].capacity != 4 {
		t.Errorf("grown block capacity: expected 4, got %d", p.blocks[1].capacity)
	}
	if c != p.blocks[1].slot(0) {
		t.Error("third slot should be the first slot of the grown block")
	}
}

func TestGrowthSequence(t *testing.T) {
	p, err := NewFixedPool(8, Config{InitialBlockCapacity: 2, MaxBlockCapacity: 16})
	if err != nil {
		t.Fatalf("NewFixedPool: %v", err)
	}
	// Exhaust 2+4+8+16 slots, then one more block at saturation.
	for i := 0; i < 2+4+8+16+1; i++ {
		if _, err := p.Acquire(); err != nil {
			t.Fatalf("Acquire %d: %v", i, err)
		}
	}
	want := []int{2, 4, 8, 16, 16}
	if len(p.blocks) != len(want) {
		t.Fatalf("expected %d blocks, got %d", len(want), len(p.blocks))
	}
	for i, w := range want {
		if p.blocks[i].capacity != w {
			t.Errorf("block %d capacity: expected %d, got %d", i, w, p.blocks[i].capacity)
		}
	}
	if s := p.Stats(); s.Grows != 4 {
		t.Errorf("expected 4 growth events, got %d", s.Grows)
	}
}

func TestSlotSizeMinimumIsPointer(t *testing.T) {
	p, err := NewFixedPool(1, DefaultConfig())
	if err != nil {
		t.Fatalf("NewFixedPool: %v", err)
	}
	if p.SlotSize() != ptrSize {
		t.Errorf("expected slot size %d, got %d", ptrSize, p.SlotSize())
	}
	wide, err := NewFixedPool(24, DefaultConfig())
	if err != nil {
		t.Fatalf("NewFixedPool: %v", err)
	}
	if wide.SlotSize() != 24 {
		t.Errorf("expected slot size 24, got %d", wide.SlotSize())
	}
}

func TestInvalidConfiguration(t *testing.T) {
	if _, err := NewFixedPool(0, DefaultConfig()); !errors.Is(err, api.ErrInvalidSlotSize) {
		t.Errorf("zero slot size: expected ErrInvalidSlotSize, got %v", err)
	}
	if _, err := NewFixedPool(8, Config{InitialBlockCapacity: 0, MaxBlockCapacity: 4}); !errors.Is(err, api.ErrInvalidCapacity) {
		t.Errorf("zero initial capacity: expected ErrInvalidCapacity, got %v", err)
	}
	if _, err := NewFixedPool(8, Config{InitialBlockCapacity: 4, MaxBlockCapacity: -1}); !errors.Is(err, api.ErrInvalidCapacity) {
		t.Errorf("negative max capacity: expected ErrInvalidCapacity, got %v", err)
	}
	// initial > max clamps down instead of failing.
	p, err := NewFixedPool(8, Config{InitialBlockCapacity: 8, MaxBlockCapacity: 4})
	if err != nil {
		t.Fatalf("clamped config: %v", err)
	}
	if p.blocks[0].capacity != 4 {
		t.Errorf("expected initial capacity clamped to 4, got %d", p.blocks[0].capacity)
	}
}

func TestReleaseNilIsNoop(t *testing.T) {
	p, err := NewFixedPool(8, DefaultConfig())
	if err != nil {
		t.Fatalf("NewFixedPool: %v", err)
	}
	p.Release(nil)
	s := p.Stats()
	if s.TotalRelease != 0 || s.FreeListLen != 0 {
		t.Error("Release(nil) must not touch the free list")
	}
}

func TestGrowthFailureLeavesPoolUsable(t *testing.T) {
	st := &failStorage{failAfter: 1}
	p, err := NewFixedPool(8, Config{InitialBlockCapacity: 1, MaxBlockCapacity: 4, Storage: st})
	if err != nil {
		t.Fatalf("NewFixedPool: %v", err)
	}
	slot, err := p.Acquire()
	if err != nil {
		t.Fatalf("first Acquire: %v", err)
	}
	if _, err := p.Acquire(); !errors.Is(err, api.ErrStorageExhausted) {
		t.Fatalf("expected ErrStorageExhausted, got %v", err)
	}
	if len(p.blocks) != 1 || p.tailUsed != 1 {
		t.Error("failed block must not be linked into the chain")
	}
	// The free-list path stays usable.
	p.Release(slot)
	again, err := p.Acquire()
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	if again != slot {
		t.Error("expected the released slot back")
	}
}

func TestConstructionFailurePropagates(t *testing.T) {
	st := &failStorage{failAfter: 0}
	if _, err := NewFixedPool(8, Config{InitialBlockCapacity: 1, MaxBlockCapacity: 4, Storage: st}); !errors.Is(err, api.ErrStorageExhausted) {
		t.Fatalf("expected ErrStorageExhausted, got %v", err)
	}
}

func TestCloseInvalidatesPool(t *testing.T) {
	p, err := NewFixedPool(8, DefaultConfig())
	if err != nil {
		t.Fatalf("NewFixedPool: %v", err)
	}
	if _, err := p.Acquire(); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := p.Acquire(); !errors.Is(err, api.ErrPoolClosed) {
		t.Errorf("expected ErrPoolClosed, got %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close must be idempotent, got %v", err)
	}
}

func TestStatsAccounting(t *testing.T) {
	p, err := NewFixedPool(8, Config{InitialBlockCapacity: 2, MaxBlockCapacity: 4})
	if err != nil {
		t.Fatalf("NewFixedPool: %v", err)
	}
	a, _ := p.Acquire()
	b, _ := p.Acquire()
	p.Release(a)
	s := p.Stats()
	if s.TotalAcquire != 2 || s.TotalRelease != 1 || s.InUse != 1 {
		t.Errorf("unexpected counters: %+v", s)
	}
	if s.FreeListLen != 1 || s.TailUsed != 2 || s.Blocks != 1 {
		t.Errorf("unexpected shape: %+v", s)
	}
	p.Release(b)
}
