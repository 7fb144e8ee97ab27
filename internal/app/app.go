// internal/app/app.go
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/reelbg/internal/engine"
	"github.com/llehouerou/reelbg/internal/errmsg"
	"github.com/llehouerou/reelbg/internal/host"
	"github.com/llehouerou/reelbg/internal/keymap"
	"github.com/llehouerou/reelbg/internal/playlist"
	"github.com/llehouerou/reelbg/internal/state"
)

// volumeStep is the change applied by the volume keys.
const volumeStep = 0.05

// Model is the root demo model: the engine panels, the current track and
// the key help.
type Model struct {
	Engine   engine.Service
	Host     *host.Host
	StateMgr state.Interface
	Keys     *keymap.Resolver
	Help     help.Model
	Sub      *engine.Subscription
	Reel     playlist.Reel
	ErrorMsg string
	ShowHelp bool
	Now      time.Time
	Width    int
	Height   int

	logger *zap.Logger
}

// New creates the demo model and restores the saved presentation flags.
func New(eng engine.Service, h *host.Host, st state.Interface, reel playlist.Reel, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := Model{
		Engine:   eng,
		Host:     h,
		StateMgr: st,
		Keys:     keymap.NewResolver(keymap.Bindings),
		Help:     help.New(),
		Sub:      eng.Subscribe(),
		Reel:     reel,
		Now:      time.Now(),
		logger:   logger,
	}

	p, err := st.GetPresentation()
	switch {
	case err != nil:
		m.ErrorMsg = errmsg.Format(errmsg.OpSettingsLoad, err)
	case p != nil:
		eng.SetExpandable(p.Expandable)
		eng.SetExpanded(p.Expanded)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(TickCmd(), WatchEngine(m.Sub))
}
