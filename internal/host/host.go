// Package host drives one widget: its queue, the audio player and the
// background engine. It is what media keys and the demo UI talk to.
package host

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/llehouerou/reelbg/internal/engine"
	"github.com/llehouerou/reelbg/internal/notify"
	"github.com/llehouerou/reelbg/internal/player"
	"github.com/llehouerou/reelbg/internal/playlist"
	"github.com/llehouerou/reelbg/internal/state"
)

var (
	ErrEmptyQueue = errors.New("queue is empty")
	ErrNoNext     = errors.New("no next track")
	ErrNoPrevious = errors.New("no previous track")
	ErrNoTrack    = errors.New("no such track")
)

type Host struct {
	mu     sync.Mutex
	queue  *playlist.PlayingQueue
	player player.Interface
	engine engine.Service
	state  state.Interface
	logger *zap.Logger

	notifier notify.Notifier
	noteID   uint32
}

// New wires p to eng and advances the queue when a track finishes.
func New(p player.Interface, eng engine.Service, st state.Interface, logger *zap.Logger) *Host {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Host{
		queue:  playlist.NewQueue(),
		player: p,
		engine: eng,
		state:  st,
		logger: logger,
	}
	eng.Attach(p)
	p.OnEvent(func(ev player.Event) {
		if ev == player.EventFinish {
			h.advance()
		}
	})
	return h
}

// Load replaces the queue and restores the saved position and volume.
// Nothing starts playing.
func (h *Host) Load(tracks []playlist.Track) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.queue.Replace(tracks...)
	if s, err := h.state.GetSession(); err != nil {
		h.logger.Warn("restore session", zap.Error(err))
	} else {
		h.player.SetVolume(s.Volume)
		h.player.SetMuted(s.Muted)
		if !h.queue.Restore(s.TrackIndex, s.TrackPath) && s.TrackPath != "" {
			h.logger.Debug("saved track no longer in playlist", zap.String("path", s.TrackPath))
		}
	}
	h.engine.SwitchTrack(h.queue.Current())
}

// Play resumes a paused track or starts the current one.
func (h *Host) Play() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch h.player.State() {
	case player.Playing:
		return nil
	case player.Paused:
		h.player.Resume()
		return nil
	case player.Stopped:
	}
	t := h.queue.Current()
	if t == nil {
		return ErrEmptyQueue
	}
	return h.playTrack(t)
}

func (h *Host) Pause() {
	h.player.Pause()
}

func (h *Host) Toggle() error {
	if h.player.State() == player.Stopped {
		return h.Play()
	}
	h.player.Toggle()
	return nil
}

func (h *Host) Stop() {
	h.player.Stop()
}

func (h *Host) Next() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	t := h.queue.Next()
	if t == nil {
		return ErrNoNext
	}
	return h.playTrack(t)
}

func (h *Host) Previous() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	t := h.queue.Previous()
	if t == nil {
		return ErrNoPrevious
	}
	return h.playTrack(t)
}

// JumpTo plays the track at index.
func (h *Host) JumpTo(index int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	t := h.queue.JumpTo(index)
	if t == nil {
		return fmt.Errorf("track %d: %w", index, ErrNoTrack)
	}
	return h.playTrack(t)
}

// playTrack announces t to the engine before the audio starts, so the
// pause emitted by stopping the previous track is recognized as part of
// the switch.
func (h *Host) playTrack(t *playlist.Track) error {
	h.engine.SwitchTrack(t)
	if err := h.player.Play(t.Path); err != nil {
		return fmt.Errorf("%s: %w", t.Path, err)
	}
	h.saveSession()
	h.announce(t)
	return nil
}

// SetNotifier enables "now playing" notifications. Each one replaces the
// previous so a busy queue leaves a single notification on screen.
func (h *Host) SetNotifier(n notify.Notifier) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.notifier = n
}

func (h *Host) announce(t *playlist.Track) {
	if h.notifier == nil {
		return
	}
	n := notify.ForTrack(t)
	n.ReplacesID = h.noteID
	id, err := h.notifier.Notify(n)
	if err != nil {
		h.logger.Debug("track notification", zap.Error(err))
		return
	}
	h.noteID = id
}

func (h *Host) advance() {
	h.mu.Lock()
	defer h.mu.Unlock()

	t := h.queue.Next()
	if t == nil {
		h.logger.Debug("end of queue")
		return
	}
	if err := h.playTrack(t); err != nil {
		h.logger.Warn("advance to next track", zap.Error(err))
	}
}

func (h *Host) CurrentTrack() *playlist.Track {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.queue.Current()
}

func (h *Host) CurrentIndex() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.queue.CurrentIndex()
}

func (h *Host) HasNext() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.queue.HasNext()
}

func (h *Host) IsEmpty() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.queue.IsEmpty()
}

func (h *Host) Tracks() []playlist.Track {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.queue.Tracks()
}

func (h *Host) State() player.State {
	return h.player.State()
}

func (h *Host) Volume() float64 {
	return h.player.Volume()
}

// SetVolume changes the audio volume and saves it.
func (h *Host) SetVolume(level float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.player.SetVolume(level)
	h.saveSession()
}

// ToggleMute flips the mute flag and saves it.
func (h *Host) ToggleMute() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.player.SetMuted(!h.player.Muted())
	h.saveSession()
}

func (h *Host) Muted() bool {
	return h.player.Muted()
}

func (h *Host) saveSession() {
	s := state.Session{
		Volume:     h.player.Volume(),
		Muted:      h.player.Muted(),
		TrackIndex: h.queue.CurrentIndex(),
	}
	if t := h.queue.Current(); t != nil {
		s.TrackPath = t.Path
	}
	if err := h.state.SaveSession(s); err != nil {
		h.logger.Warn("save session", zap.Error(err))
	}
}
