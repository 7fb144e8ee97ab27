// Package zoom slowly scales the background surfaces back and forth while
// the widget is idle.
//
// Every surface owns its own oscillation. Its speed is a rate in [0, 1]
// that ramps up on Start and down on Stop; the phase integrates that rate,
// so neither the scale nor its speed ever jumps.
package zoom

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/reelbg/internal/ease"
	"github.com/llehouerou/reelbg/internal/loop"
	"github.com/llehouerou/reelbg/internal/surface"
)

const (
	DefaultMin           = 1.0
	DefaultMax           = 1.08
	DefaultPeriod        = 20 * time.Second
	DefaultRamp          = 1500 * time.Millisecond
	DefaultFrameInterval = 16 * time.Millisecond
)

// Config tunes the animation.
type Config struct {
	Min, Max      float64
	Period        time.Duration // one min→max→min cycle
	Ease          ease.Func
	Ramp          time.Duration // rate ramp between paused and full speed
	FrameInterval time.Duration
}

func (c Config) withDefaults() Config {
	if c.Min <= 0 {
		c.Min = DefaultMin
	}
	if c.Max < c.Min {
		c.Max = max(DefaultMax, c.Min)
	}
	if c.Period <= 0 {
		c.Period = DefaultPeriod
	}
	if c.Ease == nil {
		c.Ease = ease.SineInOut
	}
	if c.Ramp <= 0 {
		c.Ramp = DefaultRamp
	}
	if c.FrameInterval <= 0 {
		c.FrameInterval = DefaultFrameInterval
	}
	return c
}

// Scaler applies a zoom factor to a surface.
type Scaler interface {
	SetScale(id surface.ID, scale float64)
}

type anim struct {
	active bool

	phase    float64 // in cycles
	lastTick time.Time

	rampFrom  float64
	rampTo    float64
	rampStart time.Time
	rampLen   time.Duration
}

func (a *anim) rate(now time.Time) float64 {
	if a.rampLen <= 0 {
		return a.rampTo
	}
	p := ease.Clamp01(float64(now.Sub(a.rampStart)) / float64(a.rampLen))
	return a.rampFrom + (a.rampTo-a.rampFrom)*p
}

func (a *anim) rampDone(now time.Time) bool {
	return now.Sub(a.rampStart) >= a.rampLen
}

// Animator drives the four surface oscillations. All methods must be
// called on the loop.
type Animator struct {
	loop   *loop.Loop
	out    Scaler
	cfg    Config
	logger *zap.Logger

	anims  [4]anim
	scales [4]float64
	ticker *loop.Timer
}

// New creates an animator with every surface paused at the minimum scale.
func New(l *loop.Loop, out Scaler, cfg Config, logger *zap.Logger) *Animator {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Animator{
		loop:   l,
		out:    out,
		cfg:    cfg.withDefaults(),
		logger: logger,
	}
	for i := range a.scales {
		a.scales[i] = a.cfg.Min
	}
	return a
}

func index(id surface.ID) int {
	return int(id.Kind)*2 + int(id.Layer)
}

// Running reports whether the surface is animating, ramps included.
func (a *Animator) Running(id surface.ID) bool {
	return a.anims[index(id)].active
}

// Rate returns the current speed of a surface, 0 when paused.
func (a *Animator) Rate(id surface.ID) float64 {
	an := &a.anims[index(id)]
	if !an.active {
		return 0
	}
	return an.rate(time.Now())
}

// Scale returns the last applied scale of a surface.
func (a *Animator) Scale(id surface.ID) float64 {
	return a.scales[index(id)]
}

// Start ramps the surface up to full speed from wherever it is.
func (a *Animator) Start(id surface.ID) {
	an := &a.anims[index(id)]
	if an.active && an.rampTo == 1 {
		return
	}
	now := time.Now()
	if !an.active {
		an.lastTick = now
		an.rampFrom = 0
	} else {
		a.advance(id, an, now)
		an.rampFrom = an.rate(now)
	}
	an.active = true
	an.rampTo = 1
	an.rampStart = now
	an.rampLen = time.Duration(float64(a.cfg.Ramp) * (1 - an.rampFrom))
	a.logger.Debug("zoom started", zap.Stringer("surface", id))
	a.ensureTicker()
}

// Stop ramps the surface down and pauses it, keeping its current scale.
func (a *Animator) Stop(id surface.ID) {
	an := &a.anims[index(id)]
	if !an.active || an.rampTo == 0 {
		return
	}
	now := time.Now()
	a.advance(id, an, now)
	an.rampFrom = an.rate(now)
	an.rampTo = 0
	an.rampStart = now
	an.rampLen = time.Duration(float64(a.cfg.Ramp) * an.rampFrom)
	a.logger.Debug("zoom stopping", zap.Stringer("surface", id))
}

// Halt pauses the surface at once and returns it to the minimum scale. It
// is meant for surfaces that are no longer visible.
func (a *Animator) Halt(id surface.ID) {
	i := index(id)
	a.anims[i] = anim{}
	a.apply(id, a.cfg.Min)
}

// StopAll ramps every surface down.
func (a *Animator) StopAll() {
	for _, id := range surface.All {
		a.Stop(id)
	}
}

// Close halts the ticker without touching the scales.
func (a *Animator) Close() {
	a.ticker.Stop()
	a.ticker = nil
	for i := range a.anims {
		a.anims[i].active = false
	}
}

func (a *Animator) ensureTicker() {
	if a.ticker.Pending() {
		return
	}
	a.ticker = a.loop.AfterFunc(a.cfg.FrameInterval, a.tick)
}

func (a *Animator) tick() {
	a.ticker = nil
	now := time.Now()
	running := false
	for _, id := range surface.All {
		an := &a.anims[index(id)]
		if !an.active {
			continue
		}
		a.advance(id, an, now)
		if an.rampTo == 0 && an.rampDone(now) {
			an.active = false
			continue
		}
		running = true
	}
	if running {
		a.ensureTicker()
	}
}

// advance integrates the phase up to now and applies the resulting scale.
func (a *Animator) advance(id surface.ID, an *anim, now time.Time) {
	dt := now.Sub(an.lastTick)
	if dt <= 0 {
		return
	}
	avg := (an.rate(an.lastTick) + an.rate(now)) / 2
	an.phase += avg * float64(dt) / float64(a.cfg.Period)
	an.phase -= math.Floor(an.phase)
	an.lastTick = now
	a.apply(id, a.scaleAt(an.phase))
}

func (a *Animator) scaleAt(phase float64) float64 {
	tri := 1 - math.Abs(2*phase-1)
	return a.cfg.Min + (a.cfg.Max-a.cfg.Min)*a.cfg.Ease(tri)
}

func (a *Animator) apply(id surface.ID, scale float64) {
	a.scales[index(id)] = scale
	a.out.SetScale(id, scale)
}
