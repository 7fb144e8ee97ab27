package player

import (
	"math"

	"github.com/gopxl/beep/v2/speaker"
)

// silentVolume is the beep volume used for level 0. beep's scale is base 2,
// so -10 is about 1/1000 of full scale.
const silentVolume = -10

// SetVolume stores level, clamped to [0, 1], and applies it to the current
// track unless muted.
func (p *Player) SetVolume(level float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volumeLevel = min(max(level, 0), 1)
	p.applyVolume()
}

func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volumeLevel
}

// SetMuted silences the output without losing the level.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	p.applyVolume()
}

func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// applyVolume pushes the level and mute flag to the playing track. Callers
// hold p.mu.
func (p *Player) applyVolume() {
	if p.volume == nil {
		return
	}
	speaker.Lock()
	p.volume.Silent = p.muted
	p.volume.Volume = levelToVolume(p.volumeLevel)
	speaker.Unlock()
}

// levelToVolume maps a linear level to beep's base-2 Volume:
// 1.0 -> 0, 0.5 -> -1, 0.25 -> -2, 0 -> silentVolume.
func levelToVolume(level float64) float64 {
	switch {
	case level <= 0:
		return silentVolume
	case level >= 1:
		return 0
	default:
		return max(math.Log2(level), silentVolume)
	}
}
