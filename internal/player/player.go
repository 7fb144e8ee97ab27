package player

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
)

var (
	speakerMu          sync.Mutex
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// Player plays local audio files through the system speaker. It is safe
// for concurrent use; events are delivered outside its lock.
type Player struct {
	mu sync.Mutex

	state    State
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	streamer beep.StreamSeekCloser
	format   beep.Format
	file     *os.File
	path     string
	// seq identifies the current track so a finish callback of a replaced
	// track is ignored.
	seq uint64

	volumeLevel float64
	muted       bool

	listeners []func(Event)
	logger    *zap.Logger
}

// New creates a stopped player at full volume.
func New(logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Player{
		state:       Stopped,
		volumeLevel: 1,
		logger:      logger,
	}
}

// OnEvent registers a listener for audio events.
func (p *Player) OnEvent(fn func(Event)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// Play decodes path and starts it, replacing the current track.
func (p *Player) Play(path string) error {
	p.Stop()

	ext := strings.ToLower(filepath.Ext(path))
	if ext != extMP3 && ext != extFLAC {
		return fmt.Errorf("unsupported format: %s", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch ext {
	case extMP3:
		streamer, format, err = decodeMP3(f)
	case extFLAC:
		// Some taggers prepend an ID3v2 tag the FLAC decoder rejects.
		if err := skipID3v2(f); err != nil {
			f.Close()
			return err
		}
		streamer, format, err = flac.Decode(f)
	}
	if err != nil {
		f.Close()
		return err
	}

	if err := initSpeaker(format.SampleRate); err != nil {
		streamer.Close()
		f.Close()
		return err
	}

	var out beep.Streamer = streamer
	if format.SampleRate != speakerSampleRate {
		out = beep.Resample(4, format.SampleRate, speakerSampleRate, streamer)
	}

	p.mu.Lock()
	p.file = f
	p.streamer = streamer
	p.format = format
	p.path = path
	p.ctrl = &beep.Ctrl{Streamer: out}
	p.volume = &effects.Volume{
		Streamer: p.ctrl,
		Base:     2,
		Volume:   levelToVolume(p.volumeLevel),
		Silent:   p.muted,
	}
	p.seq++
	seq := p.seq
	playEv, _ := p.setState(Playing)
	vol := p.volume
	p.mu.Unlock()

	p.logger.Debug("track started",
		zap.String("path", path),
		zap.Duration("duration", format.SampleRate.D(streamer.Len())))

	p.emit(EventReady)
	speaker.Play(beep.Seq(vol, beep.Callback(func() {
		// Runs on the speaker goroutine with the speaker locked.
		go p.finished(seq)
	})))
	p.emit(playEv)
	return nil
}

func initSpeaker(rate beep.SampleRate) error {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerInitialized {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return err
	}
	speakerSampleRate = rate
	speakerInitialized = true
	return nil
}

func (p *Player) finished(seq uint64) {
	p.mu.Lock()
	if seq != p.seq || p.state == Stopped {
		p.mu.Unlock()
		return
	}
	p.release()
	p.state = Stopped
	p.mu.Unlock()

	p.emit(EventFinish)
}

// Stop stops playback and releases the track.
func (p *Player) Stop() {
	p.mu.Lock()
	if p.state == Stopped {
		p.mu.Unlock()
		return
	}
	speaker.Clear()
	p.release()
	ev, changed := p.setState(Stopped)
	p.seq++
	p.mu.Unlock()

	if changed {
		p.emit(ev)
	}
}

// setState moves to next and returns the event it implies. Callers hold
// p.mu and emit after unlocking.
func (p *Player) setState(next State) (Event, bool) {
	ev, ok := p.state.transitionEvent(next)
	p.state = next
	return ev, ok
}

// release closes the current track. Callers hold p.mu.
func (p *Player) release() {
	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		p.file.Close()
		p.file = nil
	}
	p.ctrl = nil
	p.volume = nil
	p.path = ""
}

// Pause pauses playback.
func (p *Player) Pause() {
	p.mu.Lock()
	if p.state != Playing || p.ctrl == nil {
		p.mu.Unlock()
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	ev, _ := p.setState(Paused)
	p.mu.Unlock()

	p.emit(ev)
}

// Resume resumes paused playback.
func (p *Player) Resume() {
	p.mu.Lock()
	if p.state != Paused || p.ctrl == nil {
		p.mu.Unlock()
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	ev, _ := p.setState(Playing)
	p.mu.Unlock()

	p.emit(ev)
}

// Toggle toggles between playing and paused states.
func (p *Player) Toggle() {
	switch p.State() {
	case Playing:
		p.Pause()
	case Paused:
		p.Resume()
	case Stopped:
		// Nothing to toggle when stopped
	}
}

func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Player) IsPlaying() bool {
	return p.State() == Playing
}

// Path returns the file being played, empty when stopped.
func (p *Player) Path() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.format.SampleRate.D(p.streamer.Position())
	speaker.Unlock()
	return pos
}

func (p *Player) emit(ev Event) {
	p.mu.Lock()
	listeners := slices.Clone(p.listeners)
	p.mu.Unlock()
	for _, fn := range listeners {
		fn(ev)
	}
}

// skipID3v2 skips an ID3v2 tag if present at the beginning of the file.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := r.Read(header)
	if err != nil {
		return err
	}
	if n < 10 || string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// The size is a syncsafe integer: 7 bits per byte.
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
