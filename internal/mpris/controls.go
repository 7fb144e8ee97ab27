// Package mpris lets desktop media keys control the widget host.
package mpris

import (
	"github.com/llehouerou/reelbg/internal/player"
	"github.com/llehouerou/reelbg/internal/playlist"
)

// Controls is what the desktop media keys act on.
type Controls interface {
	Play() error
	Pause()
	Toggle() error
	Stop()
	Next() error
	Previous() error
	State() player.State
	CurrentTrack() *playlist.Track
	CurrentIndex() int
	HasNext() bool
	IsEmpty() bool
	Volume() float64
	SetVolume(level float64)
}
