package pool_test

import (
	"testing"

	"github.com/momentics/slabpool/pool"
)

func TestManagerRoutesByClass(t *testing.T) {
	m := pool.NewManager(pool.DefaultConfig())
	p20, err := m.GetPool(20)
	if err != nil {
		t.Fatalf("GetPool(20): %v", err)
	}
	p32, err := m.GetPool(32)
	if err != nil {
		t.Fatalf("GetPool(32): %v", err)
	}
	if p20 != p32 {
		t.Error("sizes 20 and 32 belong to the same class")
	}
	if p20.SlotSize() != 32 {
		t.Errorf("class pool slot size: expected 32, got %d", p20.SlotSize())
	}
	p33, err := m.GetPool(33)
	if err != nil {
		t.Fatalf("GetPool(33): %v", err)
	}
	if p33 == p32 {
		t.Error("size 33 must route to the 64-byte class")
	}
	if p33.SlotSize() != 64 {
		t.Errorf("expected 64-byte class, got %d", p33.SlotSize())
	}
}

func TestManagerOversizedClass(t *testing.T) {
	m := pool.NewManager(pool.DefaultConfig())
	p, err := m.GetPool(5000)
	if err != nil {
		t.Fatalf("GetPool(5000): %v", err)
	}
	if p.SlotSize() != 5000 {
		t.Errorf("oversized class: expected 5000, got %d", p.SlotSize())
	}
	q, err := m.GetPool(5000)
	if err != nil {
		t.Fatalf("GetPool(5000): %v", err)
	}
	if p != q {
		t.Error("repeated oversized requests must share one pool")
	}
}

func TestManagerRangeAndClose(t *testing.T) {
	m := pool.NewManager(pool.DefaultConfig())
	if _, err := m.GetPool(8); err != nil {
		t.Fatalf("GetPool(8): %v", err)
	}
	if _, err := m.GetPool(128); err != nil {
		t.Fatalf("GetPool(128): %v", err)
	}
	count := 0
	m.Range(func(class uintptr, p *pool.FixedPool) {
		count++
		if p.SlotSize() != class {
			t.Errorf("class %d pool reports slot size %d", class, p.SlotSize())
		}
	})
	if count != 2 {
		t.Errorf("expected 2 materialized classes, got %d", count)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	count = 0
	m.Range(func(uintptr, *pool.FixedPool) { count++ })
	if count != 0 {
		t.Error("Close must drop all class pools")
	}
}
