package fade

import (
	"testing"
	"time"

	"github.com/llehouerou/reelbg/internal/ease"
)

func testOp(dir Direction) *Operation {
	return newOperation(trackA, dir, 0, time.Now(), time.Second, ease.Linear, false)
}

func TestRegistry_BeginEvictsPrevious(t *testing.T) {
	r := NewRegistry()
	first := testOp(In)
	second := testOp(Out)

	if prev := r.Begin(first); prev != nil {
		t.Fatalf("Begin() on empty surface evicted %v", prev)
	}
	if prev := r.Begin(second); prev != first {
		t.Fatal("Begin() did not return the evicted operation")
	}
	if !first.Token().Cancelled() {
		t.Error("evicted operation token not cancelled")
	}
	if first.Result() != ResultSuperseded {
		t.Errorf("evicted Result() = %v, want superseded", first.Result())
	}
	if r.Get(trackA) != second || r.Len() != 1 {
		t.Error("registry does not hold exactly the newest operation")
	}
}

func TestRegistry_AbortSeesNewOwner(t *testing.T) {
	r := NewRegistry()
	first := testOp(In)
	second := testOp(Out)
	r.Begin(first)

	var ownerDuringAbort *Operation
	first.OnSettled(func(Result) { ownerDuringAbort = r.Get(trackA) })
	r.Begin(second)

	if ownerDuringAbort != second {
		t.Error("abort callback ran before the new owner was registered")
	}
}

func TestRegistry_EndOnlyRemovesOwner(t *testing.T) {
	r := NewRegistry()
	first := testOp(In)
	second := testOp(Out)
	r.Begin(first)
	r.Begin(second)

	if r.End(first) {
		t.Error("End() removed an operation that no longer owns the surface")
	}
	if !r.End(second) {
		t.Error("End() did not remove the owner")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestRegistry_Evict(t *testing.T) {
	r := NewRegistry()
	if r.Evict(trackA) != nil {
		t.Error("Evict() on empty surface returned an operation")
	}
	op := testOp(In)
	r.Begin(op)
	if r.Evict(trackA) != op || op.Result() != ResultSuperseded {
		t.Error("Evict() did not abort the owner")
	}
}

func TestToken_CancelOnce(t *testing.T) {
	var tok Token
	if !tok.Cancel() {
		t.Error("first Cancel() = false")
	}
	if tok.Cancel() {
		t.Error("second Cancel() = true")
	}
	if !tok.Cancelled() {
		t.Error("Cancelled() = false after Cancel()")
	}
}
