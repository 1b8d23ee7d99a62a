package godactions

import (
	"errors"
	"testing"

	"github.com/unibind/unibind-go/pkg/xr"
)

func TestRestState(t *testing.T) {
	for _, kind := range []xr.ActionType{
		xr.ActionTypeBooleanInput,
		xr.ActionTypeFloatInput,
		xr.ActionTypeVector2fInput,
		xr.ActionTypePoseInput,
	} {
		s, err := RestState(kind)
		if err != nil {
			t.Fatalf("RestState(%v): %v", kind, err)
		}
		if s.Kind != kind {
			t.Errorf("Kind = %v, want %v", s.Kind, kind)
		}
		if s.Active() {
			t.Errorf("RestState(%v) is active", kind)
		}
	}

	if _, err := RestState(xr.ActionTypeVibrationOutput); !errors.Is(err, ErrNotAnInput) {
		t.Errorf("RestState(vibration): %v, want ErrNotAnInput", err)
	}
	if _, err := RestState(xr.ActionTypeUnknown); !errors.Is(err, ErrNotAnInput) {
		t.Errorf("RestState(unknown): %v, want ErrNotAnInput", err)
	}
}

func TestStateWithActive(t *testing.T) {
	s, _ := RestState(xr.ActionTypeBooleanInput)
	if s.withActive(true).Boolean.IsActive != true {
		t.Error("withActive(true) did not set the boolean flag")
	}
	v, _ := RestState(xr.ActionTypeVector2fInput)
	if !v.withActive(true).Active() {
		t.Error("withActive(true) did not set the vector flag")
	}
}

func TestCollectionExactAndMissing(t *testing.T) {
	c := NewSubactionCollection(xr.ActionTypeBooleanInput)
	left, right := xr.Path(1), xr.Path(2)

	st, _ := RestState(xr.ActionTypeBooleanInput)
	st.Boolean.CurrentState = true
	st.Boolean.IsActive = true
	c.Put(left, st)

	got, ok := c.Get(left)
	if !ok || !got.Boolean.CurrentState {
		t.Fatalf("Get(left) = %+v, %v", got, ok)
	}
	if _, ok := c.Get(right); ok {
		t.Error("Get(right) found an entry that was never put")
	}
}

func TestCollectionNullPathFolds(t *testing.T) {
	left, right := xr.Path(1), xr.Path(2)

	bools := NewSubactionCollection(xr.ActionTypeBooleanInput)
	off, _ := RestState(xr.ActionTypeBooleanInput)
	on := off
	on.Boolean.CurrentState = true
	on.Boolean.IsActive = true
	on.Boolean.LastChangeTime = 10
	bools.Put(left, off)
	bools.Put(right, on)

	folded, ok := bools.Get(xr.NullPath)
	if !ok {
		t.Fatal("Get(NullPath) found nothing")
	}
	if !folded.Boolean.CurrentState || !folded.Boolean.IsActive {
		t.Errorf("boolean fold = %+v, want OR of entries", folded.Boolean)
	}
	if folded.Boolean.LastChangeTime != 10 {
		t.Errorf("LastChangeTime = %d, want 10", folded.Boolean.LastChangeTime)
	}

	floats := NewSubactionCollection(xr.ActionTypeFloatInput)
	lo, _ := RestState(xr.ActionTypeFloatInput)
	lo.Float.CurrentState = 0.2
	hi := lo
	hi.Float.CurrentState = 0.9
	floats.Put(left, lo)
	floats.Put(right, hi)
	if folded, _ := floats.Get(xr.NullPath); folded.Float.CurrentState != 0.9 {
		t.Errorf("float fold = %v, want 0.9", folded.Float.CurrentState)
	}

	empty := NewSubactionCollection(xr.ActionTypeBooleanInput)
	if _, ok := empty.Get(xr.NullPath); ok {
		t.Error("empty collection folded to a value")
	}
}

func TestCellAtomicLoadStore(t *testing.T) {
	cell := &Cell{}
	st, _ := RestState(xr.ActionTypeFloatInput)
	st.Float.CurrentState = 0.5
	st.Float.IsActive = true
	cell.Store(st)

	got := cell.Load()
	if got.Float.CurrentState != 0.5 || !got.Float.IsActive {
		t.Errorf("Load = %+v", got.Float)
	}
}
