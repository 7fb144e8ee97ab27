// Package fade drives surface blend weights through interruptible
// transitions.
//
// At most one operation owns a surface at a time. A new request evicts the
// owner and starts from the weight actually on screen, so an interruption
// never makes the background jump.
package fade

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/reelbg/internal/ease"
	"github.com/llehouerou/reelbg/internal/loop"
	"github.com/llehouerou/reelbg/internal/surface"
)

const (
	DefaultDuration      = 800 * time.Millisecond
	DefaultFrameInterval = 16 * time.Millisecond
)

// Config tunes the scheduler.
type Config struct {
	Duration      time.Duration // default fade length
	FrameInterval time.Duration // how often weights are pushed to the media
	Ease          ease.Func
}

func (c Config) withDefaults() Config {
	if c.Duration <= 0 {
		c.Duration = DefaultDuration
	}
	if c.FrameInterval <= 0 {
		c.FrameInterval = DefaultFrameInterval
	}
	if c.Ease == nil {
		c.Ease = ease.Linear
	}
	return c
}

// Settlement reports how an operation ended.
type Settlement struct {
	Surface   surface.ID
	Direction Direction
	Result    Result
	Err       error
}

// Scheduler runs fades on the surfaces of a pool. All methods must be
// called on the loop.
type Scheduler struct {
	loop     *loop.Loop
	pool     *surface.Pool
	registry *Registry
	states   map[surface.ID]State
	cfg      Config
	logger   *zap.Logger
	observer func(Settlement)
	starter  func(surface.ID, Direction)
}

// New creates a scheduler for pool.
func New(l *loop.Loop, pool *surface.Pool, cfg Config, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		loop:     l,
		pool:     pool,
		registry: NewRegistry(),
		states:   make(map[surface.ID]State),
		cfg:      cfg.withDefaults(),
		logger:   logger,
	}
}

// Observe sets a callback invoked on the loop whenever an operation
// resolves.
func (s *Scheduler) Observe(fn func(Settlement)) {
	s.observer = fn
}

// OnStart sets a callback invoked on the loop whenever a surface starts
// moving, or is shown at once.
func (s *Scheduler) OnStart(fn func(surface.ID, Direction)) {
	s.starter = fn
}

// Duration returns the default fade length.
func (s *Scheduler) Duration() time.Duration { return s.cfg.Duration }

// State returns the fade state of a surface.
func (s *Scheduler) State(id surface.ID) State { return s.states[id] }

// Live returns the operation owning a surface, or nil.
func (s *Scheduler) Live(id surface.ID) *Operation { return s.registry.Get(id) }

// LiveCount returns the number of running operations.
func (s *Scheduler) LiveCount() int { return s.registry.Len() }

// Weight returns the weight on screen right now.
func (s *Scheduler) Weight(id surface.ID) float64 {
	if op := s.registry.Get(id); op != nil {
		return op.WeightAt(time.Now())
	}
	return s.pool.Weight(id)
}

// Foreground reports whether a surface is visible or becoming visible.
func (s *Scheduler) Foreground(id surface.ID) bool {
	st := s.states[id]
	return st == FadingIn || st == Visible || s.Weight(id) > 0
}

// Free reports whether a surface can take a new media without being seen:
// nothing owns it and it is fully hidden.
func (s *Scheduler) Free(id surface.ID) bool {
	return s.registry.Get(id) == nil && s.states[id] == Hidden && s.pool.Weight(id) == 0
}

// FadeIn starts the surface media and raises its weight to 1 over d
// (the default duration when d is zero).
func (s *Scheduler) FadeIn(id surface.ID, d time.Duration) *Operation {
	return s.request(id, In, d, false)
}

// FadeOut lowers the surface weight to 0 over d, then pauses it. With
// cleanup, the surface is also released once hidden.
func (s *Scheduler) FadeOut(id surface.ID, d time.Duration, cleanup bool) *Operation {
	return s.request(id, Out, d, cleanup)
}

// Release aborts any operation on the surface and releases it
// immediately, without animation.
func (s *Scheduler) Release(id surface.ID) bool {
	evicted := s.registry.Evict(id) != nil
	cleaned := s.pool.Cleanup(id)
	s.states[id] = Hidden
	return evicted || cleaned
}

func (s *Scheduler) request(id surface.ID, dir Direction, d time.Duration, cleanup bool) *Operation {
	if d <= 0 {
		d = s.cfg.Duration
	}
	now := time.Now()

	switch transitions[s.states[id]][dir] {
	case actJoin:
		op := s.registry.Get(id)
		if cleanup {
			op.cleanup = true
		}
		return op

	case actSettle:
		op := newOperation(id, dir, dir.target(), now, 0, s.cfg.Ease, cleanup)
		if dir == In {
			if err := s.pool.Play(id); err != nil {
				s.fail(op, err)
				return op
			}
			s.started(id, dir)
		} else {
			s.pool.Pause(id)
			if cleanup {
				s.pool.Cleanup(id)
			}
		}
		op.resolve(ResultCompleted)
		s.notify(op, nil)
		return op

	case actStart, actInterrupt:
	}

	current := s.Weight(id)
	if prev := s.registry.Get(id); prev != nil && current != prev.start {
		// Keep the visual speed: only the remaining distance is animated.
		d = time.Duration(float64(d) * math.Abs(dir.target()-current))
	}

	op := newOperation(id, dir, current, now, d, s.cfg.Ease, cleanup)
	if dir == In {
		s.states[id] = FadingIn
	} else {
		s.states[id] = FadingOut
	}
	s.registry.Begin(op)
	if op.token.Cancelled() {
		// Something reacting to the eviction already replaced op.
		return op
	}

	s.pool.SetWeight(id, current)
	if dir == In {
		if err := s.pool.Play(id); err != nil {
			s.registry.End(op)
			s.fail(op, err)
			return op
		}
	}

	s.started(id, dir)
	if d <= 0 || current == op.target {
		s.complete(op)
		return op
	}

	op.finish = s.loop.AfterFunc(d, func() { s.complete(op) })
	s.scheduleFrame(op)
	return op
}

func (s *Scheduler) scheduleFrame(op *Operation) {
	op.frame = s.loop.AfterFunc(s.cfg.FrameInterval, func() {
		if op.token.Cancelled() || op.result != ResultPending {
			return
		}
		s.pool.SetWeight(op.surface, op.WeightAt(time.Now()))
		s.scheduleFrame(op)
	})
}

func (s *Scheduler) complete(op *Operation) {
	if op.token.Cancelled() || op.result != ResultPending {
		return
	}
	op.stopTimers()
	s.registry.End(op)

	id := op.surface
	s.pool.SetWeight(id, op.target)
	if op.dir == Out {
		s.states[id] = Hidden
		s.pool.Pause(id)
		if op.cleanup {
			s.pool.Cleanup(id)
		}
	} else {
		s.states[id] = Visible
	}

	op.resolve(ResultCompleted)
	s.notify(op, nil)
}

// fail leaves the surface hidden and paused after a rejected play. The
// error stops here: a background that cannot play must never interrupt
// the audio.
func (s *Scheduler) fail(op *Operation, err error) {
	id := op.surface
	s.logger.Warn("background playback rejected",
		zap.Stringer("surface", id),
		zap.String("url", s.pool.URL(id)),
		zap.Error(err))
	op.token.Cancel()
	s.pool.Pause(id)
	s.pool.SetWeight(id, 0)
	s.states[id] = Hidden
	op.resolve(ResultFailed)
	s.notify(op, err)
}

func (s *Scheduler) started(id surface.ID, dir Direction) {
	if s.starter != nil {
		s.starter(id, dir)
	}
}

func (s *Scheduler) notify(op *Operation, err error) {
	if s.observer == nil {
		return
	}
	s.observer(Settlement{
		Surface:   op.surface,
		Direction: op.dir,
		Result:    op.result,
		Err:       err,
	})
}
