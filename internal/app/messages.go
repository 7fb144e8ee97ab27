// internal/app/messages.go
package app

import (
	"time"

	"github.com/llehouerou/reelbg/internal/engine"
)

// TickMsg redraws the engine panels.
type TickMsg time.Time

// EngineErrorMsg carries a background media failure.
type EngineErrorMsg engine.ErrorEvent

// IdleChangedMsg is sent when the widget enters or leaves idle.
type IdleChangedMsg engine.IdleChange

// EngineEventMsg is any other engine event; it only triggers a redraw.
type EngineEventMsg struct{}

// EngineClosedMsg is sent once the engine subscription ends.
type EngineClosedMsg struct{}
