// internal/engine/service_impl.go
package engine

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/reelbg/internal/errmsg"
	"github.com/llehouerou/reelbg/internal/fade"
	"github.com/llehouerou/reelbg/internal/idle"
	"github.com/llehouerou/reelbg/internal/loop"
	"github.com/llehouerou/reelbg/internal/player"
	"github.com/llehouerou/reelbg/internal/playlist"
	"github.com/llehouerou/reelbg/internal/rotation"
	"github.com/llehouerou/reelbg/internal/surface"
	"github.com/llehouerou/reelbg/internal/zoom"
)

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

// Config gathers the tunables of every part of the engine.
type Config struct {
	Fade                fade.Config
	TrackSwitchDuration time.Duration
	TrackSwitchGuard    time.Duration
	IdleDelay           time.Duration
	Zoom                zoom.Config
	LoadTimeout         time.Duration
	Reel                playlist.Reel
	Expandable          bool
}

type serviceImpl struct {
	loop   *loop.Loop
	pool   *surface.Pool
	sched  *fade.Scheduler
	ctrl   *rotation.Controller
	idle   *idle.Machine
	zoom   *zoom.Animator
	logger *zap.Logger

	// Loop-owned.
	playing bool

	subs   []*Subscription
	subsMu sync.RWMutex

	closeOnce sync.Once
}

// New creates an engine whose surfaces are backed by newMedia.
func New(cfg Config, newMedia func(surface.ID) surface.Media, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &serviceImpl{
		loop:   loop.New(),
		logger: logger,
	}
	s.loop.Do(func() {
		s.pool = surface.NewPool(s.loop, newMedia,
			surface.WithLoadTimeout(cfg.LoadTimeout),
			surface.WithLogger(logger.Named("surface")))
		s.sched = fade.New(s.loop, s.pool, cfg.Fade, logger.Named("fade"))
		s.ctrl = rotation.New(s.loop, s.pool, s.sched, rotation.Config{
			TrackSwitchDuration: cfg.TrackSwitchDuration,
			TrackSwitchGuard:    cfg.TrackSwitchGuard,
		}, rotation.Hooks{
			SelectionChanged: s.onSelection,
			StaticChanged:    s.onStatic,
			Failed:           s.onFailure,
		}, logger.Named("rotation"))
		s.idle = idle.New(s.loop, cfg.IdleDelay, logger.Named("idle"))
		s.zoom = zoom.New(s.loop, s.pool, cfg.Zoom, logger.Named("zoom"))

		s.sched.Observe(s.onSettled)
		s.sched.OnStart(s.onFadeStart)
		s.idle.OnChange(s.onIdle)

		s.ctrl.SetReel(cfg.Reel)
		if cfg.Expandable {
			s.idle.SetExpandable(true)
			s.ctrl.SetCollapsed(s.idle.Collapsed())
		}
	})
	return s
}

// HandleAudioEvent applies an audio engine event.
func (s *serviceImpl) HandleAudioEvent(ev player.Event) {
	s.loop.Do(func() { s.handleAudio(ev) })
}

// Attach subscribes to the events of p. Events are queued without waiting
// so the audio side never blocks on the engine.
func (s *serviceImpl) Attach(p player.Interface) {
	p.OnEvent(func(ev player.Event) {
		s.loop.Post(func() { s.handleAudio(ev) })
	})
	playing := p.IsPlaying()
	s.loop.Do(func() {
		if playing && !s.playing {
			s.handleAudio(player.EventPlay)
		}
	})
}

func (s *serviceImpl) handleAudio(ev player.Event) {
	s.logger.Debug("audio event", zap.Stringer("event", ev))
	switch ev {
	case player.EventReady:
		// Loading audio says nothing about what should be on screen.
	case player.EventPlay:
		s.playing = true
		s.ctrl.Play()
		s.idle.SetPlaying(true)
	case player.EventPause, player.EventFinish:
		// During a track switch the controller defers its part.
		s.playing = false
		s.ctrl.Pause()
		s.idle.SetPlaying(false)
	}
}

// SwitchTrack makes t the current track.
func (s *serviceImpl) SwitchTrack(t *playlist.Track) {
	s.loop.Do(func() {
		s.ctrl.SwitchTrack(t, s.playing)
		s.publishStatic()
	})
}

// SetReel replaces the reel configuration and, while playing, applies it
// right away.
func (s *serviceImpl) SetReel(r playlist.Reel) {
	s.loop.Do(func() {
		s.ctrl.SetReel(r)
		s.ctrl.Refresh(s.playing)
		s.publishStatic()
	})
}

func (s *serviceImpl) NotifyActivity() {
	s.loop.Do(s.idle.Activity)
}

func (s *serviceImpl) EnterIdleCandidate() {
	s.loop.Do(s.idle.EnterIdleCandidate)
}

func (s *serviceImpl) ExitIdle() {
	s.loop.Do(s.idle.ExitIdle)
}

func (s *serviceImpl) SetExpandable(enabled bool) {
	s.loop.Do(func() {
		s.idle.SetExpandable(enabled)
		s.applyPresentation()
	})
}

func (s *serviceImpl) SetExpanded(expanded bool) {
	s.loop.Do(func() {
		s.idle.SetExpanded(expanded)
		s.applyPresentation()
	})
}

func (s *serviceImpl) applyPresentation() {
	collapsed := s.idle.Collapsed()
	s.ctrl.SetCollapsed(collapsed)
	s.ctrl.Refresh(s.playing)
}

// Snapshot returns the current engine state.
func (s *serviceImpl) Snapshot() Snapshot {
	var snap Snapshot
	s.loop.Do(func() {
		pooled := s.pool.Snapshots()
		for i, id := range surface.All {
			ps := pooled[i]
			snap.Surfaces[i] = SurfaceState{
				ID:      id,
				URL:     ps.URL,
				Weight:  s.sched.Weight(id),
				Scale:   s.zoom.Scale(id),
				Playing: ps.Playing,
				Ready:   ps.Ready,
				Fade:    s.sched.State(id),
				Zooming: s.zoom.Running(id),
				Current: s.ctrl.Current(id.Kind) == id,
			}
		}
		snap.Selection = s.ctrl.Selection()
		snap.StaticImage = s.ctrl.StaticImage()
		snap.StaticVisible = s.ctrl.StaticVisible()
		snap.Playing = s.playing
		snap.Switching = s.ctrl.Switching()
		snap.Idle = s.idle.State()
		snap.IdleSince = s.idle.Since()
		snap.IdleArmed = s.idle.Armed()
		snap.Expandable = s.idle.Expandable()
		snap.Expanded = s.idle.Expanded()
		snap.LiveFades = s.sched.LiveCount()
	})
	return snap
}

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Close releases every surface and stops the engine.
func (s *serviceImpl) Close() error {
	s.closeOnce.Do(func() {
		s.loop.Do(func() {
			s.idle.SetPlaying(false)
			s.zoom.Close()
			for _, id := range surface.All {
				s.sched.Release(id)
			}
		})
		s.loop.Close()

		s.subsMu.Lock()
		for _, sub := range s.subs {
			sub.close()
		}
		s.subs = nil
		s.subsMu.Unlock()
	})
	return nil
}

func (s *serviceImpl) onIdle(prev, next idle.State) {
	s.publish(func(sub *Subscription) {
		sub.sendIdle(IdleChange{Previous: prev, Current: next})
	})

	if next.IsIdle() {
		if next == idle.CollapsedIdle {
			s.ctrl.ActivateIdleVideo()
		}
		// Outgoing layers are still visible while they fade out, so they
		// zoom too.
		for _, id := range surface.All {
			if s.sched.Foreground(id) {
				s.zoom.Start(id)
			}
		}
		return
	}

	if prev == idle.CollapsedIdle {
		s.ctrl.DeactivateIdleVideo(s.playing)
	}
	s.zoom.StopAll()
}

func (s *serviceImpl) onFadeStart(id surface.ID, dir fade.Direction) {
	if dir == fade.In && s.idle.State().IsIdle() {
		s.zoom.Start(id)
	}
}

func (s *serviceImpl) onSettled(st fade.Settlement) {
	hidden := st.Direction == fade.Out && st.Result == fade.ResultCompleted
	if hidden || st.Result == fade.ResultFailed {
		s.zoom.Halt(st.Surface)
	}
	s.publish(func(sub *Subscription) {
		sub.sendFade(FadeSettled{Surface: st.Surface, Direction: st.Direction, Result: st.Result})
	})
	if st.Err != nil {
		s.onFailure(rotation.Failure{
			Op:      errmsg.OpMediaPlay,
			Surface: st.Surface,
			URL:     s.pool.URL(st.Surface),
			Err:     st.Err,
		})
	}
}

func (s *serviceImpl) onSelection(prev, next rotation.Selection) {
	s.publish(func(sub *Subscription) {
		sub.sendSelection(SelectionChange{Previous: prev, Current: next})
	})
}

func (s *serviceImpl) onStatic(bool) {
	s.publishStatic()
}

func (s *serviceImpl) publishStatic() {
	e := StaticChange{Visible: s.ctrl.StaticVisible(), Image: s.ctrl.StaticImage()}
	s.publish(func(sub *Subscription) { sub.sendStatic(e) })
}

func (s *serviceImpl) onFailure(f rotation.Failure) {
	s.publish(func(sub *Subscription) {
		sub.sendError(ErrorEvent{Operation: f.Op, Surface: f.Surface, URL: f.URL, Err: f.Err})
	})
}

func (s *serviceImpl) publish(fn func(*Subscription)) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		fn(sub)
	}
}
