// internal/app/commands.go
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/reelbg/internal/engine"
)

// frameInterval paces redraws. Fades run at their own rate; the view only
// samples them.
const frameInterval = 50 * time.Millisecond

// TickCmd returns a command that sends TickMsg after one frame.
func TickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// WatchEngine returns a command that waits for the next engine event.
func WatchEngine(sub *engine.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.Error:
			return EngineErrorMsg(e)
		case e := <-sub.IdleChanged:
			return IdleChangedMsg(e)
		case <-sub.SelectionChanged:
			return EngineEventMsg{}
		case <-sub.StaticChanged:
			return EngineEventMsg{}
		case <-sub.FadeSettled:
			return EngineEventMsg{}
		case <-sub.Done:
			return EngineClosedMsg{}
		}
	}
}
