package surface

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/reelbg/internal/loop"
)

// DefaultLoadTimeout bounds how long a load may take before the surface is
// judged on whatever readiness it reached.
const DefaultLoadTimeout = 10 * time.Second

// Pool owns the four surfaces of one widget. All methods must be called on
// the loop.
type Pool struct {
	loop        *loop.Loop
	surfaces    [4]*Surface
	loadTimeout time.Duration
	logger      *zap.Logger
}

// Option configures a Pool.
type Option func(*Pool)

// WithLoadTimeout overrides DefaultLoadTimeout.
func WithLoadTimeout(d time.Duration) Option {
	return func(p *Pool) {
		if d > 0 {
			p.loadTimeout = d
		}
	}
}

// WithLogger sets the pool logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPool creates the four surfaces, asking newMedia for each backing
// resource.
func NewPool(l *loop.Loop, newMedia func(ID) Media, opts ...Option) *Pool {
	p := &Pool{
		loop:        l,
		loadTimeout: DefaultLoadTimeout,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	for _, id := range All {
		p.surfaces[id.index()] = &Surface{
			id:    id,
			media: newMedia(id),
			scale: 1,
		}
	}
	return p
}

func (p *Pool) get(id ID) *Surface {
	return p.surfaces[id.index()]
}

// Snapshot returns the state of one surface.
func (p *Pool) Snapshot(id ID) Snapshot {
	return p.get(id).snapshot()
}

// Snapshots returns the state of every surface in All order.
func (p *Pool) Snapshots() [4]Snapshot {
	var out [4]Snapshot
	for i, id := range All {
		out[i] = p.get(id).snapshot()
	}
	return out
}

// URL returns the source bound to a surface, empty if unloaded.
func (p *Pool) URL(id ID) string { return p.get(id).url }

// Weight returns the last applied blend weight.
func (p *Pool) Weight(id ID) float64 { return p.get(id).weight }

// Playing reports whether the surface media is playing.
func (p *Pool) Playing(id ID) bool { return p.get(id).playing }

// Ready returns the surface ready state.
func (p *Pool) Ready(id ID) ReadyState { return p.get(id).ready }

// Holds reports whether the surface is bound to url and usable.
func (p *Pool) Holds(id ID, url string) bool {
	s := p.get(id)
	return url != "" && s.url == url && s.ready.Usable()
}

// Load binds url to a surface and calls done on the loop once it settles.
// A load of the URL already bound to the surface is shared rather than
// restarted; done may then run before Load returns.
func (p *Pool) Load(id ID, url string, done func(LoadResult)) {
	s := p.get(id)
	if url == "" {
		done(LoadResult{Surface: id, Err: &LoadError{Surface: id, Err: ErrEmptyURL}})
		return
	}

	if s.url == url {
		switch {
		case s.ready.Usable():
			done(LoadResult{Surface: id, URL: url, Usable: true})
			return
		case s.ready == ReadyLoading:
			s.waiters = append(s.waiters, done)
			return
		}
	}

	p.abortLoad(s)
	if s.playing {
		s.media.Pause()
		s.playing = false
	}

	s.url = url
	s.ready = ReadyLoading
	s.loadSeq++
	seq := s.loadSeq
	ctx, cancel := context.WithTimeout(context.Background(), p.loadTimeout)
	s.cancelLoad = cancel
	s.waiters = []func(LoadResult){done}

	media := s.media
	go func() {
		err := media.Load(ctx, url)
		state := media.ReadyState()
		timedOut := errors.Is(ctx.Err(), context.DeadlineExceeded)
		cancel()
		p.loop.Post(func() {
			p.finishLoad(s, seq, err, timedOut, state)
		})
	}()
}

func (p *Pool) finishLoad(s *Surface, seq uint64, err error, timedOut bool, state ReadyState) {
	if s.loadSeq != seq {
		return
	}
	s.cancelLoad = nil

	res := LoadResult{Surface: s.id, URL: s.url}
	switch {
	case err == nil:
		s.ready = ReadyFull
		res.Usable = true
	case timedOut:
		lerr := &LoadError{Surface: s.id, URL: s.url, Usable: state.Usable(), Err: ErrLoadTimeout}
		res.Err = lerr
		res.Usable = lerr.Usable
		p.logger.Warn("media load timed out",
			zap.Stringer("surface", s.id),
			zap.String("url", s.url),
			zap.Stringer("ready", state),
			zap.Bool("usable", lerr.Usable))
		if lerr.Usable {
			s.ready = ReadyMetadata
		}
	default:
		res.Err = &LoadError{Surface: s.id, URL: s.url, Err: err}
		p.logger.Warn("media load failed",
			zap.Stringer("surface", s.id),
			zap.String("url", s.url),
			zap.Error(err))
	}

	if !res.Usable {
		// Forget the source so a later request reloads it.
		s.media.Reset()
		s.url = ""
		s.ready = ReadyUnloaded
	}

	waiters := s.waiters
	s.waiters = nil
	for _, w := range waiters {
		w(res)
	}
}

// abortLoad cancels an in-flight load and fails its waiters.
func (p *Pool) abortLoad(s *Surface) {
	if s.cancelLoad == nil {
		return
	}
	s.cancelLoad()
	s.cancelLoad = nil
	s.loadSeq++
	url := s.url
	waiters := s.waiters
	s.waiters = nil
	for _, w := range waiters {
		w(LoadResult{
			Surface: s.id,
			URL:     url,
			Err:     &LoadError{Surface: s.id, URL: url, Err: ErrLoadCanceled},
		})
	}
}

// Play starts the surface media. It is a no-op if already playing.
func (p *Pool) Play(id ID) error {
	s := p.get(id)
	if s.playing {
		return nil
	}
	if s.url == "" || !s.ready.Usable() {
		return &PlaybackError{Surface: id, URL: s.url, Err: ErrNoSource}
	}
	if err := s.media.Play(); err != nil {
		return &PlaybackError{
			Surface: id,
			URL:     s.url,
			Err:     fmt.Errorf("%w: %w", ErrPlaybackRejected, err),
		}
	}
	s.playing = true
	return nil
}

// Pause pauses the surface media. It is a no-op if not playing.
func (p *Pool) Pause(id ID) {
	s := p.get(id)
	if !s.playing {
		return
	}
	s.media.Pause()
	s.playing = false
}

// Cleanup releases the surface: it cancels any load, pauses, clears the
// source and its bookkeeping, and hides the surface. It reports whether
// there was anything to release.
func (p *Pool) Cleanup(id ID) bool {
	s := p.get(id)
	if s.idle() {
		return false
	}
	p.abortLoad(s)
	if s.playing {
		s.media.Pause()
		s.playing = false
	}
	s.media.Reset()
	s.url = ""
	s.ready = ReadyUnloaded
	s.weight = 0
	s.media.SetOpacity(0)
	s.cleanups++
	return true
}

// SetWeight applies a blend weight, clamped to [0, 1].
func (p *Pool) SetWeight(id ID, w float64) {
	s := p.get(id)
	w = min(max(w, 0), 1)
	if s.weight == w {
		return
	}
	s.weight = w
	s.media.SetOpacity(w)
}

// SetScale applies a zoom scale.
func (p *Pool) SetScale(id ID, scale float64) {
	s := p.get(id)
	if s.scale == scale {
		return
	}
	s.scale = scale
	s.media.SetScale(scale)
}
