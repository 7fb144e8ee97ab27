package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/reelbg/internal/app"
	"github.com/llehouerou/reelbg/internal/config"
	"github.com/llehouerou/reelbg/internal/engine"
	"github.com/llehouerou/reelbg/internal/errmsg"
	"github.com/llehouerou/reelbg/internal/host"
	"github.com/llehouerou/reelbg/internal/logging"
	"github.com/llehouerou/reelbg/internal/mpris"
	"github.com/llehouerou/reelbg/internal/notify"
	"github.com/llehouerou/reelbg/internal/player"
	"github.com/llehouerou/reelbg/internal/playlist"
	"github.com/llehouerou/reelbg/internal/state"
	"github.com/llehouerou/reelbg/internal/stderr"
	"github.com/llehouerou/reelbg/internal/surface"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "read this config file instead of the default locations")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}
	engCfg, err := cfg.EngineConfig()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	logCfg := cfg.GetLogConfig()
	logger, closeLog, err := logging.New(logging.Options{Level: logCfg.Level, File: logCfg.File})
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	defer func() { _ = closeLog() }()

	// Audio backends write to fd 2; keep that out of the UI.
	capture, err := stderr.Start(logger.Named("stderr"))
	if err != nil {
		logger.Warn("stderr capture unavailable", zap.Error(err))
	} else {
		defer capture.Stop()
	}

	stateMgr, err := state.Open(logger.Named("state"))
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpSettingsLoad, err))
	}
	defer stateMgr.Close()

	eng := engine.New(engCfg, surface.FileFactory(nil), logger.Named("engine"))
	defer eng.Close()

	audio := player.New(logger.Named("player"))
	defer audio.Stop()

	h := host.New(audio, eng, stateMgr, logger.Named("host"))
	if notifier, err := notify.New("reelbg"); err == nil {
		h.SetNotifier(notifier)
	}
	tracks := cfg.Playlist()
	for i := range tracks {
		tracks[i] = playlist.FillMetadata(tracks[i])
	}
	h.Load(tracks)

	media, err := mpris.New(h, eng.NotifyActivity)
	if err != nil {
		logger.Warn("media keys unavailable", zap.Error(err))
	} else {
		defer media.Close()
	}

	logger.Info("starting",
		zap.Int("tracks", len(tracks)),
		zap.Bool("expandable", engCfg.Expandable))

	m := app.New(eng, h, stateMgr, cfg.ReelSettings(), logger.Named("app"))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}
