package engine

import (
	"github.com/llehouerou/reelbg/internal/errmsg"
	"github.com/llehouerou/reelbg/internal/fade"
	"github.com/llehouerou/reelbg/internal/idle"
	"github.com/llehouerou/reelbg/internal/rotation"
	"github.com/llehouerou/reelbg/internal/surface"
)

// IdleChange is emitted when the idle state changes.
type IdleChange struct {
	Previous idle.State
	Current  idle.State
}

// SelectionChange is emitted when the background video the engine works
// toward changes.
//
// Emitted by:
//   - audio play: when the current track selects a different video
//   - audio pause or finish: the selection becomes none
//   - collapsed idle: entering shows a video, leaving hides it again
//
// NOT emitted by:
//   - SwitchTrack while playing: the next play event emits it
//   - resuming the same video after a quick pause (selection unchanged)
type SelectionChange struct {
	Previous rotation.Selection
	Current  rotation.Selection
}

// FadeSettled is emitted when a fade operation resolves, including
// superseded and failed ones.
type FadeSettled struct {
	Surface   surface.ID
	Direction fade.Direction
	Result    fade.Result
}

// StaticChange is emitted when the still background image is shown or
// hidden.
type StaticChange struct {
	Visible bool
	Image   string
}

// ErrorEvent is emitted when background media fails. It never affects the
// audio.
type ErrorEvent struct {
	Operation errmsg.Op
	Surface   surface.ID
	URL       string
	Err       error
}

// Message returns the user-facing text for the error.
func (e ErrorEvent) Message() string {
	return errmsg.FormatWith(e.Operation, e.URL, e.Err)
}
