// internal/app/app_test.go
package app

import (
	"errors"
	"strings"
	"testing"
	"testing/synctest"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/reelbg/internal/engine"
	"github.com/llehouerou/reelbg/internal/errmsg"
	"github.com/llehouerou/reelbg/internal/host"
	"github.com/llehouerou/reelbg/internal/player"
	"github.com/llehouerou/reelbg/internal/playlist"
	"github.com/llehouerou/reelbg/internal/state"
	"github.com/llehouerou/reelbg/internal/surface"
)

type fixture struct {
	model Model
	audio *player.Mock
	state *state.Mock
}

func newTestModel(t *testing.T, st *state.Mock) *fixture {
	t.Helper()
	if st == nil {
		st = state.NewMock()
	}
	audio := player.NewMock()
	eng := engine.New(engine.Config{}, surface.NewMockSet().Factory(), nil)
	t.Cleanup(func() { _ = eng.Close() })
	h := host.New(audio, eng, st, nil)
	h.Load([]playlist.Track{
		{Path: "/music/one.mp3", Title: "One", Artist: "Band", BackgroundVideo: "one.mp4"},
		{Path: "/music/two.mp3"},
	})
	return &fixture{
		model: New(eng, h, st, playlist.Reel{BackgroundVideo: "reel.mp4"}, nil),
		audio: audio,
		state: st,
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	result, ok := next.(Model)
	require.True(t, ok, "Update should return Model")
	return result, cmd
}

func press(t *testing.T, m Model, k string) Model {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	m, _ = update(t, m, msg)
	return m
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newTestModel(t, nil)

		m, cmd := update(t, f.model, tea.WindowSizeMsg{Width: 100, Height: 30})

		assert.Nil(t, cmd)
		assert.Equal(t, 100, m.Width)
		assert.Equal(t, 30, m.Height)
		assert.Equal(t, 100, m.Help.Width)
	})
}

func TestUpdate_PlayPauseKey(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newTestModel(t, nil)

		m := press(t, f.model, " ")
		synctest.Wait()

		assert.Equal(t, []string{"/music/one.mp3"}, f.audio.PlayCalls())
		snap := m.Engine.Snapshot()
		assert.True(t, snap.Playing)
		assert.Equal(t, "one.mp4", snap.Selection.URL)

		press(t, m, " ")
		synctest.Wait()
		assert.Equal(t, player.Paused, m.Host.State())
	})
}

func TestUpdate_NextAtEndIsSilent(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newTestModel(t, nil)

		m := press(t, f.model, "n")
		m = press(t, m, "n")

		assert.Equal(t, 1, m.Host.CurrentIndex())
		assert.Empty(t, m.ErrorMsg)
	})
}

func TestUpdate_PlayErrorIsShown(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newTestModel(t, nil)
		f.audio.SetPlayError(errors.New("no device"))

		m := press(t, f.model, " ")

		assert.Equal(t, "Failed to play track: /music/one.mp3: no device", m.ErrorMsg)
	})
}

func TestUpdate_VolumeKeys(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newTestModel(t, nil)
		f.model.Host.SetVolume(0.5)

		m := press(t, f.model, "+")
		assert.InDelta(t, 0.55, m.Host.Volume(), 1e-9)

		m.Host.SetVolume(0.02)
		m = press(t, m, "-")
		assert.Zero(t, m.Host.Volume())
	})
}

func TestUpdate_TogglePresentationSaves(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newTestModel(t, nil)

		m := press(t, f.model, "b")
		m = press(t, m, "e")

		snap := m.Engine.Snapshot()
		assert.True(t, snap.Expandable)
		assert.True(t, snap.Expanded)

		p, err := f.state.GetPresentation()
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, state.Presentation{Expandable: true, Expanded: true}, *p)
	})
}

func TestNew_RestoresPresentation(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		st := state.NewMock()
		st.SavePresentation(state.Presentation{Expandable: true})

		f := newTestModel(t, st)

		snap := f.model.Engine.Snapshot()
		assert.True(t, snap.Expandable)
		assert.False(t, snap.Expanded)
	})
}

func TestUpdate_ToggleReel(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newTestModel(t, nil)

		m := press(t, f.model, "r")
		assert.True(t, m.Reel.BackgroundVideoEnabled)

		m = press(t, m, "r")
		assert.False(t, m.Reel.BackgroundVideoEnabled)
	})
}

func TestUpdate_QuitKey(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newTestModel(t, nil)

		_, cmd := update(t, f.model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	})
}

func TestUpdate_HelpKey(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newTestModel(t, nil)

		m := press(t, f.model, "?")
		assert.True(t, m.ShowHelp)

		m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
		assert.Contains(t, m.View(), "Reel video on/off")
	})
}

func TestUpdate_UnboundKeyIgnored(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newTestModel(t, nil)

		m := press(t, f.model, "z")

		assert.Empty(t, f.audio.PlayCalls())
		assert.False(t, m.ShowHelp)
	})
}

func TestUpdate_EngineErrorMsg(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newTestModel(t, nil)
		ev := engine.ErrorEvent{
			Operation: errmsg.OpMediaLoad,
			Surface:   surface.ID{Kind: surface.KindTrack, Layer: surface.LayerA},
			URL:       "one.mp4",
			Err:       surface.ErrLoadTimeout,
		}

		m, cmd := update(t, f.model, EngineErrorMsg(ev))

		assert.Equal(t, ev.Message(), m.ErrorMsg)
		assert.NotNil(t, cmd, "keeps watching the engine")
	})
}

func TestView(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newTestModel(t, nil)

		assert.Empty(t, f.model.View(), "nothing before the first size")

		m, _ := update(t, f.model, tea.WindowSizeMsg{Width: 100, Height: 30})
		view := m.View()
		assert.Contains(t, view, "Band - One")
		assert.Contains(t, view, "[1/2]")
		assert.True(t, strings.Contains(view, "?"), "short help is shown")
	})
}

func TestView_HelpListsRecentTracks(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newTestModel(t, nil)

		m := press(t, f.model, " ")
		m = press(t, m, "n")
		m = press(t, m, "?")
		m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

		assert.Contains(t, m.View(), "recent: two, one")
	})
}
