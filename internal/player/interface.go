// internal/player/interface.go
package player

// Interface is the audio engine contract the background engine reacts to.
// Events may arrive in any order: a pause can follow another pause, and a
// finish may replace the pause entirely.
type Interface interface {
	Play(path string) error
	Stop()
	Pause()
	Resume()
	Toggle()
	State() State
	IsPlaying() bool
	Volume() float64
	SetVolume(level float64)
	Muted() bool
	SetMuted(muted bool)
	OnEvent(fn func(Event))
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
