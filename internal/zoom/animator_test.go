package zoom

import (
	"math"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/reelbg/internal/ease"
	"github.com/llehouerou/reelbg/internal/loop"
	"github.com/llehouerou/reelbg/internal/surface"
)

var (
	mainA  = surface.ID{Kind: surface.KindMain, Layer: surface.LayerA}
	trackB = surface.ID{Kind: surface.KindTrack, Layer: surface.LayerB}
)

type recorder struct {
	mu      sync.Mutex
	history map[surface.ID][]float64
}

func (r *recorder) SetScale(id surface.ID, scale float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.history == nil {
		r.history = map[surface.ID][]float64{}
	}
	r.history[id] = append(r.history[id], scale)
}

func (r *recorder) samples(id surface.ID) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]float64(nil), r.history[id]...)
}

var testConfig = Config{
	Min:    1.0,
	Max:    1.1,
	Period: 4 * time.Second,
	Ease:   ease.Linear,
	Ramp:   time.Second,
}

func newAnimator(t *testing.T) (*loop.Loop, *Animator, *recorder) {
	t.Helper()
	l := loop.New()
	t.Cleanup(l.Close)
	rec := &recorder{}
	var a *Animator
	l.Do(func() { a = New(l, rec, testConfig, nil) })
	return l, a, rec
}

func wait(d time.Duration) {
	time.Sleep(d)
	synctest.Wait()
}

func TestAnimator_StartRampsRateUp(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		l, a, _ := newAnimator(t)
		l.Do(func() {
			a.Start(mainA)
			assert.True(t, a.Running(mainA))
			assert.Zero(t, a.Rate(mainA))
		})

		wait(500 * time.Millisecond)
		l.Do(func() { assert.InDelta(t, 0.5, a.Rate(mainA), 0.01) })

		wait(time.Second)
		l.Do(func() { assert.Equal(t, 1.0, a.Rate(mainA)) })
	})
}

func TestAnimator_OscillatesWithinBoundsWithoutJumps(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		l, a, rec := newAnimator(t)
		l.Do(func() { a.Start(mainA) })
		wait(3 * testConfig.Period)

		samples := rec.samples(mainA)
		assert.NotEmpty(t, samples)
		seenHigh := false
		// Full speed covers 2*(max-min) per period.
		maxStep := 2 * (testConfig.Max - testConfig.Min) * float64(DefaultFrameInterval) / float64(testConfig.Period)
		for i, s := range samples {
			assert.GreaterOrEqual(t, s, testConfig.Min-1e-9)
			assert.LessOrEqual(t, s, testConfig.Max+1e-9)
			if s > 1.09 {
				seenHigh = true
			}
			if i > 0 {
				assert.LessOrEqual(t, math.Abs(s-samples[i-1]), maxStep+1e-9, "scale jumped at sample %d", i)
			}
		}
		assert.True(t, seenHigh, "never reached the maximum zoom")
	})
}

func TestAnimator_StopRampsDownThenPauses(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		l, a, rec := newAnimator(t)
		l.Do(func() { a.Start(mainA) })
		wait(2 * time.Second)

		l.Do(func() { a.Stop(mainA) })
		wait(500 * time.Millisecond)
		l.Do(func() {
			assert.True(t, a.Running(mainA))
			assert.InDelta(t, 0.5, a.Rate(mainA), 0.01)
		})

		wait(time.Second)
		l.Do(func() {
			assert.False(t, a.Running(mainA))
			assert.Zero(t, a.Rate(mainA))
		})
		n := len(rec.samples(mainA))
		wait(5 * time.Second)
		assert.Len(t, rec.samples(mainA), n, "paused surface kept scaling")
		l.Do(func() {
			assert.Greater(t, a.Scale(mainA), testConfig.Min, "pause keeps the current zoom")
		})
	})
}

func TestAnimator_RestartMidRampDoesNotJump(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		l, a, _ := newAnimator(t)
		l.Do(func() { a.Start(mainA) })
		wait(2 * time.Second)
		l.Do(func() { a.Stop(mainA) })
		wait(250 * time.Millisecond)

		l.Do(func() {
			before := a.Rate(mainA)
			a.Start(mainA)
			assert.InDelta(t, before, a.Rate(mainA), 1e-9)
		})
		wait(250 * time.Millisecond)
		l.Do(func() { assert.Equal(t, 1.0, a.Rate(mainA)) })
	})
}

func TestAnimator_SurfacesAreIndependent(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		l, a, rec := newAnimator(t)
		l.Do(func() { a.Start(trackB) })
		wait(2 * time.Second)

		assert.Empty(t, rec.samples(mainA))
		assert.NotEmpty(t, rec.samples(trackB))
		l.Do(func() {
			assert.False(t, a.Running(mainA))
			assert.Equal(t, testConfig.Min, a.Scale(mainA))
		})
	})
}

func TestAnimator_HaltResetsImmediately(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		l, a, _ := newAnimator(t)
		l.Do(func() { a.Start(trackB) })
		wait(2 * time.Second)

		l.Do(func() {
			a.Halt(trackB)
			assert.False(t, a.Running(trackB))
			assert.Equal(t, testConfig.Min, a.Scale(trackB))
		})
	})
}
