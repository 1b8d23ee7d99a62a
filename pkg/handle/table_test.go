package handle

import (
	"errors"
	"testing"
)

func TestRegisterLookupRemove(t *testing.T) {
	tbl := NewTable[uint64, string]()

	if err := tbl.Register(1, "one"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if v, err := tbl.Lookup(1); err != nil || v != "one" {
		t.Fatalf("Lookup = %q, %v", v, err)
	}
	if v, err := tbl.Remove(1); err != nil || v != "one" {
		t.Fatalf("Remove = %q, %v", v, err)
	}
	if _, err := tbl.Lookup(1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Lookup after remove: %v, want ErrNotFound", err)
	}
}

func TestDuplicateRegistration(t *testing.T) {
	tbl := NewTable[uint64, int]()

	if err := tbl.Register(7, 1); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := tbl.Register(7, 2); !errors.Is(err, ErrDuplicateHandle) {
		t.Fatalf("second Register: %v, want ErrDuplicateHandle", err)
	}
	// First value is intact.
	if v, _ := tbl.Lookup(7); v != 1 {
		t.Errorf("Lookup after duplicate register = %d, want 1", v)
	}
}

func TestRemoveMissing(t *testing.T) {
	tbl := NewTable[uint64, int]()
	if _, err := tbl.Remove(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Remove missing: %v, want ErrNotFound", err)
	}
}

func TestLenAndRange(t *testing.T) {
	tbl := NewTable[uint64, int]()
	for i := uint64(1); i <= 100; i++ {
		if err := tbl.Register(i, int(i)); err != nil {
			t.Fatalf("Register %d: %v", i, err)
		}
	}
	if got := tbl.Len(); got != 100 {
		t.Fatalf("Len = %d, want 100", got)
	}

	seen := make(map[uint64]bool)
	tbl.Range(func(h uint64, v int) bool {
		if seen[h] {
			t.Errorf("Range visited handle %d twice", h)
		}
		seen[h] = true
		if int(h) != v {
			t.Errorf("Range entry %d = %d", h, v)
		}
		return true
	})
	if len(seen) != 100 {
		t.Errorf("Range visited %d entries, want 100", len(seen))
	}

	// Early stop.
	visits := 0
	tbl.Range(func(uint64, int) bool {
		visits++
		return false
	})
	if visits != 1 {
		t.Errorf("Range with early stop visited %d entries, want 1", visits)
	}
}
