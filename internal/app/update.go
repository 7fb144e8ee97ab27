// internal/app/update.go
package app

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/reelbg/internal/engine"
	"github.com/llehouerou/reelbg/internal/errmsg"
	"github.com/llehouerou/reelbg/internal/host"
	"github.com/llehouerou/reelbg/internal/keymap"
	"github.com/llehouerou/reelbg/internal/state"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion || msg.Action == tea.MouseActionPress {
			m.Engine.NotifyActivity()
		}
		return m, nil

	case TickMsg:
		m.Now = time.Time(msg)
		return m, TickCmd()

	case EngineErrorMsg:
		m.ErrorMsg = engine.ErrorEvent(msg).Message()
		m.logger.Warn("background media failed",
			zap.String("op", string(msg.Operation)),
			zap.Stringer("surface", msg.Surface),
			zap.String("url", msg.URL),
			zap.Error(msg.Err))
		return m, WatchEngine(m.Sub)

	case IdleChangedMsg:
		m.logger.Debug("idle changed",
			zap.Stringer("from", msg.Previous),
			zap.Stringer("to", msg.Current))
		return m, WatchEngine(m.Sub)

	case EngineEventMsg:
		return m, WatchEngine(m.Sub)

	case EngineClosedMsg:
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.Keys.Resolve(msg.String())
	if action == "" {
		return m, nil
	}
	if action != keymap.ActionPointerLeave {
		m.Engine.NotifyActivity()
	}

	switch action {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.ShowHelp = !m.ShowHelp

	case keymap.ActionPlayPause:
		m.report(errmsg.OpAudioPlay, m.Host.Toggle())
	case keymap.ActionStop:
		m.Host.Stop()
	case keymap.ActionNextTrack:
		m.report(errmsg.OpAudioPlay, m.Host.Next())
	case keymap.ActionPrevTrack:
		m.report(errmsg.OpAudioPlay, m.Host.Previous())
	case keymap.ActionVolumeUp:
		m.Host.SetVolume(min(1, m.Host.Volume()+volumeStep))
	case keymap.ActionVolumeDown:
		m.Host.SetVolume(max(0, m.Host.Volume()-volumeStep))
	case keymap.ActionMute:
		m.Host.ToggleMute()

	case keymap.ActionPointerMove:
		// Counted as activity above.
	case keymap.ActionPointerLeave:
		m.Engine.EnterIdleCandidate()
	case keymap.ActionExitIdle:
		m.Engine.ExitIdle()
	case keymap.ActionToggleExpandable:
		m.Engine.SetExpandable(!m.Engine.Snapshot().Expandable)
		m.savePresentation()
	case keymap.ActionToggleExpanded:
		m.Engine.SetExpanded(!m.Engine.Snapshot().Expanded)
		m.savePresentation()
	case keymap.ActionToggleReel:
		m.Reel.BackgroundVideoEnabled = !m.Reel.BackgroundVideoEnabled
		m.Engine.SetReel(m.Reel)
	}
	return m, nil
}

// report shows err unless it only means the queue has no track that way.
func (m *Model) report(op errmsg.Op, err error) {
	if err == nil || errors.Is(err, host.ErrNoNext) || errors.Is(err, host.ErrNoPrevious) {
		return
	}
	m.ErrorMsg = errmsg.Format(op, err)
}

func (m Model) savePresentation() {
	snap := m.Engine.Snapshot()
	m.StateMgr.SavePresentation(state.Presentation{
		Expandable: snap.Expandable,
		Expanded:   snap.Expanded,
	})
}
