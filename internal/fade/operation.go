package fade

import (
	"time"

	"github.com/llehouerou/reelbg/internal/ease"
	"github.com/llehouerou/reelbg/internal/loop"
	"github.com/llehouerou/reelbg/internal/surface"
)

// Operation is one in-flight blend weight transition of a surface.
type Operation struct {
	surface   surface.ID
	dir       Direction
	start     float64
	target    float64
	startTime time.Time
	duration  time.Duration
	curve     ease.Func
	cleanup   bool
	token     *Token

	frame  *loop.Timer
	finish *loop.Timer

	result  Result
	done    chan struct{}
	settled []func(Result)
}

func newOperation(id surface.ID, dir Direction, start float64, now time.Time, d time.Duration, curve ease.Func, cleanup bool) *Operation {
	return &Operation{
		surface:   id,
		dir:       dir,
		start:     start,
		target:    dir.target(),
		startTime: now,
		duration:  d,
		curve:     curve,
		cleanup:   cleanup,
		token:     &Token{},
		done:      make(chan struct{}),
	}
}

// Surface returns the surface this operation drives.
func (op *Operation) Surface() surface.ID { return op.surface }

// Direction returns the fade direction.
func (op *Operation) Direction() Direction { return op.dir }

// Duration returns the animation length.
func (op *Operation) Duration() time.Duration { return op.duration }

// StartWeight returns the weight the animation began at.
func (op *Operation) StartWeight() float64 { return op.start }

// Cleanup reports whether the surface is released when a fade-out completes.
func (op *Operation) Cleanup() bool { return op.cleanup }

// Token returns the cancellation token.
func (op *Operation) Token() *Token { return op.token }

// Done is closed when the operation resolves.
func (op *Operation) Done() <-chan struct{} { return op.done }

// Result returns the outcome, ResultPending until Done is closed.
// Must be read on the loop or after Done.
func (op *Operation) Result() Result { return op.result }

// OnSettled registers fn to run on the loop when the operation resolves.
// If it already has, fn runs immediately.
func (op *Operation) OnSettled(fn func(Result)) {
	if op.result != ResultPending {
		fn(op.result)
		return
	}
	op.settled = append(op.settled, fn)
}

// WeightAt samples the animation.
func (op *Operation) WeightAt(now time.Time) float64 {
	if op.duration <= 0 {
		return op.target
	}
	p := ease.Clamp01(float64(now.Sub(op.startTime)) / float64(op.duration))
	return op.start + (op.target-op.start)*op.curve(p)
}

func (op *Operation) stopTimers() {
	op.frame.Stop()
	op.finish.Stop()
}

// abort cancels the operation without touching the surface: whoever
// evicted it now owns what happens to the media.
func (op *Operation) abort() {
	if !op.token.Cancel() {
		return
	}
	op.stopTimers()
	op.resolve(ResultSuperseded)
}

// resolve settles the operation exactly once.
func (op *Operation) resolve(r Result) {
	if op.result != ResultPending {
		return
	}
	op.result = r
	close(op.done)
	callbacks := op.settled
	op.settled = nil
	for _, fn := range callbacks {
		fn(r)
	}
}
