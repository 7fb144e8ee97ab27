// Package rotation decides which background video is foregrounded and
// sequences the fades that get it there.
//
// Each kind has two layers. The cursor names the layer holding the last
// committed media; a new media is loaded on a free layer and crossfaded
// in while the old one fades out, and the cursor moves once the fade-in
// completes.
package rotation

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/reelbg/internal/errmsg"
	"github.com/llehouerou/reelbg/internal/fade"
	"github.com/llehouerou/reelbg/internal/loop"
	"github.com/llehouerou/reelbg/internal/playlist"
	"github.com/llehouerou/reelbg/internal/surface"
)

const DefaultTrackSwitchDuration = 300 * time.Millisecond

// Config tunes the controller.
type Config struct {
	// TrackSwitchDuration is the fade-out length used when the track
	// changes during playback.
	TrackSwitchDuration time.Duration
	// TrackSwitchGuard is how long pause events are ignored after a track
	// switch, unless playback resumes first.
	TrackSwitchGuard time.Duration
}

func (c Config) withDefaults() Config {
	if c.TrackSwitchDuration <= 0 {
		c.TrackSwitchDuration = DefaultTrackSwitchDuration
	}
	if c.TrackSwitchGuard <= 0 {
		c.TrackSwitchGuard = c.TrackSwitchDuration
	}
	return c
}

// Failure is a contained error: reported, never returned.
type Failure struct {
	Op      errmsg.Op
	Surface surface.ID
	URL     string
	Err     error
}

// Hooks are optional callbacks, all invoked on the loop.
type Hooks struct {
	SelectionChanged func(prev, next Selection)
	StaticChanged    func(visible bool)
	Failed           func(Failure)
}

// Controller owns the layer cursors. All methods must be called on the loop.
type Controller struct {
	loop   *loop.Loop
	pool   *surface.Pool
	sched  *fade.Scheduler
	cfg    Config
	hooks  Hooks
	logger *zap.Logger

	cursors [2]surface.Layer
	track   *playlist.Track
	reel    playlist.Reel

	selection Selection
	// gen is bumped by every request; asynchronous continuations of older
	// requests check it and stop.
	gen uint64

	switching  bool
	guardTimer *loop.Timer
	// pausePending records a pause deferred by the guard. A Play cancels it;
	// otherwise it is applied when the guard expires.
	pausePending bool

	collapsed     bool
	idleVideo     bool
	staticVisible bool
}

// New creates a controller driving sched.
func New(l *loop.Loop, pool *surface.Pool, sched *fade.Scheduler, cfg Config, hooks Hooks, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		loop:          l,
		pool:          pool,
		sched:         sched,
		cfg:           cfg.withDefaults(),
		hooks:         hooks,
		logger:        logger,
		staticVisible: true,
	}
}

// Cursor returns the current layer of a kind.
func (c *Controller) Cursor(k surface.Kind) surface.Layer {
	return c.cursors[k]
}

// Current returns the surface holding the committed media of a kind.
func (c *Controller) Current(k surface.Kind) surface.ID {
	return surface.ID{Kind: k, Layer: c.cursors[k]}
}

// Selection returns the last selection the controller worked toward.
func (c *Controller) Selection() Selection { return c.selection }

// Track returns the current track, or nil.
func (c *Controller) Track() *playlist.Track { return c.track }

// Switching reports whether a track switch holds the pause guard.
func (c *Controller) Switching() bool { return c.switching }

// StaticVisible reports whether the still background image is shown.
func (c *Controller) StaticVisible() bool { return c.staticVisible }

// StaticImage returns the still image for the current track.
func (c *Controller) StaticImage() string {
	return StaticImage(c.track, c.reel)
}

// SetTrack changes the current track without any transition.
func (c *Controller) SetTrack(t *playlist.Track) {
	c.track = copyTrack(t)
}

// SetReel changes the reel configuration. It takes effect on the next
// transition.
func (c *Controller) SetReel(r playlist.Reel) {
	c.reel = r
}

// SetCollapsed marks the widget as shown in its compact banner form. While
// collapsed, videos only appear through ActivateIdleVideo.
func (c *Controller) SetCollapsed(collapsed bool) {
	c.collapsed = collapsed
}

// Select computes the selection for the current track, honoring the
// collapsed presentation.
func (c *Controller) Select() Selection {
	if c.collapsed && !c.idleVideo {
		return None
	}
	return Select(c.track, c.reel)
}

// Play brings the background in line with the current track once audio
// starts.
func (c *Controller) Play() {
	c.endSwitch()
	c.gen++
	c.show(c.Select(), c.gen)
}

// Pause fades every foregrounded surface out and releases it. A pause that
// arrives while a track switch is sequencing its own fades is deferred until
// the guard expires, and forgotten if a Play comes first.
func (c *Controller) Pause() {
	if c.switching {
		c.logger.Debug("pause deferred during track switch")
		c.pausePending = true
		return
	}
	c.gen++
	c.setSelection(None)
	c.hideAll(0)
}

// SwitchTrack changes the current track. While playing, the old media
// fades out at the switch duration without waiting and the new one is
// preloaded on a free layer; the next Play shows it. Otherwise every
// surface is released immediately.
func (c *Controller) SwitchTrack(t *playlist.Track, playing bool) {
	c.track = copyTrack(t)
	c.gen++

	if !playing {
		c.endSwitch()
		for _, id := range surface.All {
			c.sched.Release(id)
		}
		c.setSelection(None)
		return
	}

	c.beginSwitch()
	c.hideAll(c.cfg.TrackSwitchDuration)

	sel := c.Select()
	if sel.IsNone() {
		return
	}
	target, ok := c.freeLayer(sel.Kind)
	if !ok || c.pool.Holds(target, sel.URL) {
		return
	}
	gen := c.gen
	c.pool.Load(target, sel.URL, func(res surface.LoadResult) {
		if errors.Is(res.Err, surface.ErrLoadCanceled) {
			return
		}
		if gen != c.gen {
			c.releaseStale(target, res)
			return
		}
		if !res.Usable {
			c.reportLoad(res)
		}
	})
}

// ActivateIdleVideo shows the selected video over the hidden still image,
// for the collapsed idle state.
func (c *Controller) ActivateIdleVideo() {
	c.idleVideo = true
	c.gen++
	sel := c.Select()
	if !sel.IsNone() {
		c.setStatic(false)
	}
	c.show(sel, c.gen)
}

// DeactivateIdleVideo restores the still image and, when the video only
// existed for the idle state, fades it out.
func (c *Controller) DeactivateIdleVideo(playing bool) {
	if !c.idleVideo {
		return
	}
	c.idleVideo = false
	c.setStatic(true)
	c.gen++
	if playing {
		c.show(c.Select(), c.gen)
		return
	}
	c.setSelection(None)
	c.hideAll(0)
}

// Refresh re-applies the selection while playing, after a presentation
// change.
func (c *Controller) Refresh(playing bool) {
	if !playing {
		return
	}
	c.gen++
	c.show(c.Select(), c.gen)
}

func (c *Controller) show(sel Selection, gen uint64) {
	c.setSelection(sel)
	if sel.IsNone() {
		c.hideAll(0)
		return
	}

	// Main and track backgrounds are mutually exclusive.
	c.hideKind(sel.Kind.Other(), 0)

	cur := c.Current(sel.Kind)
	if c.pool.Holds(cur, sel.URL) {
		c.sched.FadeIn(cur, 0)
		if c.sched.Foreground(cur.Sibling()) {
			c.sched.FadeOut(cur.Sibling(), 0, true)
		}
		return
	}

	target, ok := c.incomingLayer(sel)
	if !ok {
		c.waitForLayer(sel, gen)
		return
	}
	c.pool.Load(target, sel.URL, func(res surface.LoadResult) {
		if errors.Is(res.Err, surface.ErrLoadCanceled) {
			return
		}
		if gen != c.gen {
			c.releaseStale(target, res)
			return
		}
		if !res.Usable {
			c.reportLoad(res)
			c.hideKind(sel.Kind, 0)
			return
		}
		if res.Err != nil {
			c.logger.Debug("showing partially loaded media",
				zap.Stringer("surface", target), zap.Error(res.Err))
		}
		c.crossfade(target)
	})
}

// crossfade fades target in and every other layer of its kind out at the
// same time.
func (c *Controller) crossfade(target surface.ID) {
	in := c.sched.FadeIn(target, 0)
	other := target.Sibling()
	if c.sched.Foreground(other) {
		c.sched.FadeOut(other, 0, true)
	}
	in.OnSettled(func(r fade.Result) {
		if r == fade.ResultCompleted {
			c.cursors[target.Kind] = target.Layer
		}
	})
}

// incomingLayer picks the layer to load sel on: a layer that already has
// it, else a free layer, preferring the one after the cursor.
func (c *Controller) incomingLayer(sel Selection) (surface.ID, bool) {
	cur := c.Current(sel.Kind)
	for _, id := range []surface.ID{cur.Sibling(), cur} {
		if c.pool.URL(id) == sel.URL {
			return id, true
		}
	}
	return c.freeLayer(sel.Kind)
}

func (c *Controller) freeLayer(k surface.Kind) (surface.ID, bool) {
	next := c.Current(k).Sibling()
	if c.sched.Free(next) {
		return next, true
	}
	if cur := c.Current(k); c.sched.Free(cur) {
		return cur, true
	}
	return surface.ID{}, false
}

// waitForLayer fades both layers of the kind out and retries once the
// less visible one is hidden.
func (c *Controller) waitForLayer(sel Selection, gen uint64) {
	layers := surface.Layers(sel.Kind)
	low := layers[0]
	if c.sched.Weight(layers[1]) < c.sched.Weight(low) {
		low = layers[1]
	}
	var lowOp *fade.Operation
	for _, id := range layers {
		op := c.sched.FadeOut(id, 0, true)
		if id == low {
			lowOp = op
		}
	}
	lowOp.OnSettled(func(fade.Result) {
		if gen != c.gen {
			return
		}
		c.show(sel, gen)
	})
}

// releaseStale unloads media whose request was superseded, unless a newer
// request wants the same source or the surface is in use again.
func (c *Controller) releaseStale(id surface.ID, res surface.LoadResult) {
	if !res.Usable || c.pool.URL(id) != res.URL || !c.sched.Free(id) {
		return
	}
	if c.selection.Kind == id.Kind && c.selection.URL == res.URL {
		return
	}
	c.logger.Debug("releasing superseded media",
		zap.Stringer("surface", id), zap.String("url", res.URL))
	c.pool.Cleanup(id)
}

func (c *Controller) hideAll(d time.Duration) {
	c.hideKind(surface.KindMain, d)
	c.hideKind(surface.KindTrack, d)
}

func (c *Controller) hideKind(k surface.Kind, d time.Duration) {
	for _, id := range surface.Layers(k) {
		if c.sched.Foreground(id) {
			c.sched.FadeOut(id, d, true)
		}
	}
}

func (c *Controller) beginSwitch() {
	c.guardTimer.Stop()
	c.switching = true
	c.pausePending = false
	c.guardTimer = c.loop.AfterFunc(c.cfg.TrackSwitchGuard, c.guardExpired)
}

func (c *Controller) endSwitch() {
	c.guardTimer.Stop()
	c.guardTimer = nil
	c.switching = false
	c.pausePending = false
}

func (c *Controller) guardExpired() {
	pending := c.pausePending
	c.endSwitch()
	if !pending {
		return
	}
	c.logger.Debug("applying pause deferred by track switch")
	c.Pause()
	// Nothing will show the preloaded media now.
	for _, id := range surface.All {
		if c.sched.Free(id) {
			c.pool.Cleanup(id)
		}
	}
}

func (c *Controller) setSelection(sel Selection) {
	if sel == c.selection {
		return
	}
	prev := c.selection
	c.selection = sel
	if c.hooks.SelectionChanged != nil {
		c.hooks.SelectionChanged(prev, sel)
	}
}

func (c *Controller) setStatic(visible bool) {
	if visible == c.staticVisible {
		return
	}
	c.staticVisible = visible
	if c.hooks.StaticChanged != nil {
		c.hooks.StaticChanged(visible)
	}
}

func (c *Controller) reportLoad(res surface.LoadResult) {
	c.logger.Warn("background media unavailable",
		zap.Stringer("surface", res.Surface),
		zap.String("url", res.URL),
		zap.Error(res.Err))
	if c.hooks.Failed != nil {
		c.hooks.Failed(Failure{
			Op:      errmsg.OpMediaLoad,
			Surface: res.Surface,
			URL:     res.URL,
			Err:     res.Err,
		})
	}
}

func copyTrack(t *playlist.Track) *playlist.Track {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}
