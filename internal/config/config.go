package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/reelbg/internal/ease"
	"github.com/llehouerou/reelbg/internal/engine"
	"github.com/llehouerou/reelbg/internal/fade"
	"github.com/llehouerou/reelbg/internal/idle"
	"github.com/llehouerou/reelbg/internal/playlist"
	"github.com/llehouerou/reelbg/internal/rotation"
	"github.com/llehouerou/reelbg/internal/surface"
	"github.com/llehouerou/reelbg/internal/zoom"
)

type Config struct {
	Fade         FadeConfig         `koanf:"fade"`
	Idle         IdleConfig         `koanf:"idle"`
	Zoom         ZoomConfig         `koanf:"zoom"`
	Media        MediaConfig        `koanf:"media"`
	Presentation PresentationConfig `koanf:"presentation"`
	Log          LogConfig          `koanf:"log"`

	// Widget content
	Reel   ReelConfig    `koanf:"reel"`
	Tracks []TrackConfig `koanf:"tracks"`
}

// FadeConfig holds crossfade timing.
type FadeConfig struct {
	Duration            time.Duration `koanf:"duration"`              // default: 800ms
	TrackSwitchDuration time.Duration `koanf:"track_switch_duration"` // default: 300ms
	TrackSwitchGuard    time.Duration `koanf:"track_switch_guard"`    // default: track_switch_duration
	FrameInterval       time.Duration `koanf:"frame_interval"`        // default: 16ms
	Ease                string        `koanf:"ease"`                  // "linear", "sine", "quad", "cubic" (default: "sine")
}

// IdleConfig holds the inactivity detection settings.
type IdleConfig struct {
	Delay time.Duration `koanf:"delay"` // default: 5s
}

// ZoomConfig holds the idle zoom oscillation.
type ZoomConfig struct {
	Min    float64       `koanf:"min"`    // default: 1.0
	Max    float64       `koanf:"max"`    // default: 1.08
	Period time.Duration `koanf:"period"` // default: 20s
	Ramp   time.Duration `koanf:"ramp"`   // default: 1.5s
	Ease   string        `koanf:"ease"`   // default: "sine"
}

// MediaConfig holds background media loading settings.
type MediaConfig struct {
	LoadTimeout time.Duration `koanf:"load_timeout"` // default: 10s
}

// PresentationConfig holds the widget layout flags.
type PresentationConfig struct {
	Expandable bool `koanf:"expandable"` // collapsed banner until expanded
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level string `koanf:"level"` // "debug", "info", "warn", "error" (default: "info")
	File  string `koanf:"file"`  // default: $XDG_STATE_HOME/reelbg/reelbg.log
}

// ReelConfig is the widget-wide background.
type ReelConfig struct {
	BackgroundVideo        string `koanf:"background_video"`
	BackgroundVideoEnabled bool   `koanf:"background_video_enabled"`
	BackgroundImage        string `koanf:"background_image"`
}

// TrackConfig is one playlist entry.
type TrackConfig struct {
	Path            string `koanf:"path"`
	Title           string `koanf:"title"`
	Artist          string `koanf:"artist"`
	BackgroundVideo string `koanf:"background_video"`
	BackgroundImage string `koanf:"background_image"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.expandPaths()
	return cfg, nil
}

// LoadFile reads a single configuration file.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.expandPaths()
	return cfg, nil
}

func (c *Config) expandPaths() {
	c.Log.File = expandPath(c.Log.File)
	c.Reel.BackgroundVideo = expandPath(c.Reel.BackgroundVideo)
	c.Reel.BackgroundImage = expandPath(c.Reel.BackgroundImage)
	for i := range c.Tracks {
		t := &c.Tracks[i]
		t.Path = expandPath(t.Path)
		t.BackgroundVideo = expandPath(t.BackgroundVideo)
		t.BackgroundImage = expandPath(t.BackgroundImage)
	}
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/reelbg/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "reelbg", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetFadeConfig returns the fade configuration with defaults applied.
func (c *Config) GetFadeConfig() FadeConfig {
	cfg := c.Fade
	if cfg.Duration <= 0 {
		cfg.Duration = fade.DefaultDuration
	}
	if cfg.TrackSwitchDuration <= 0 {
		cfg.TrackSwitchDuration = rotation.DefaultTrackSwitchDuration
	}
	if cfg.TrackSwitchGuard <= 0 {
		cfg.TrackSwitchGuard = cfg.TrackSwitchDuration
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = fade.DefaultFrameInterval
	}
	if cfg.Ease == "" {
		cfg.Ease = "sine"
	}
	return cfg
}

// GetIdleConfig returns the idle configuration with defaults applied.
func (c *Config) GetIdleConfig() IdleConfig {
	cfg := c.Idle
	if cfg.Delay <= 0 {
		cfg.Delay = idle.DefaultDelay
	}
	return cfg
}

// GetZoomConfig returns the zoom configuration with defaults applied.
func (c *Config) GetZoomConfig() ZoomConfig {
	cfg := c.Zoom
	if cfg.Min <= 0 {
		cfg.Min = zoom.DefaultMin
	}
	if cfg.Max < cfg.Min {
		cfg.Max = max(zoom.DefaultMax, cfg.Min)
	}
	if cfg.Period <= 0 {
		cfg.Period = zoom.DefaultPeriod
	}
	if cfg.Ramp <= 0 {
		cfg.Ramp = zoom.DefaultRamp
	}
	if cfg.Ease == "" {
		cfg.Ease = "sine"
	}
	return cfg
}

// GetMediaConfig returns the media configuration with defaults applied.
func (c *Config) GetMediaConfig() MediaConfig {
	cfg := c.Media
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = surface.DefaultLoadTimeout
	}
	return cfg
}

// GetLogConfig returns the log configuration with defaults applied. An
// empty File is left for the logging package to resolve.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	return cfg
}

// ReelSettings converts the reel section.
func (c *Config) ReelSettings() playlist.Reel {
	return playlist.Reel{
		BackgroundVideo:        c.Reel.BackgroundVideo,
		BackgroundVideoEnabled: c.Reel.BackgroundVideoEnabled,
		BackgroundImage:        c.Reel.BackgroundImage,
	}
}

// Playlist converts the configured tracks.
func (c *Config) Playlist() []playlist.Track {
	tracks := make([]playlist.Track, 0, len(c.Tracks))
	for _, t := range c.Tracks {
		if t.Path == "" {
			continue
		}
		tracks = append(tracks, playlist.Track{
			Path:            t.Path,
			Title:           t.Title,
			Artist:          t.Artist,
			BackgroundVideo: t.BackgroundVideo,
			BackgroundImage: t.BackgroundImage,
		})
	}
	return tracks
}

// EngineConfig builds the engine settings. It fails on an unknown easing
// curve name.
func (c *Config) EngineConfig() (engine.Config, error) {
	fc := c.GetFadeConfig()
	fadeEase, err := ease.Parse(fc.Ease)
	if err != nil {
		return engine.Config{}, fmt.Errorf("fade: %w", err)
	}
	zc := c.GetZoomConfig()
	zoomEase, err := ease.Parse(zc.Ease)
	if err != nil {
		return engine.Config{}, fmt.Errorf("zoom: %w", err)
	}

	return engine.Config{
		Fade: fade.Config{
			Duration:      fc.Duration,
			FrameInterval: fc.FrameInterval,
			Ease:          fadeEase,
		},
		TrackSwitchDuration: fc.TrackSwitchDuration,
		TrackSwitchGuard:    fc.TrackSwitchGuard,
		IdleDelay:           c.GetIdleConfig().Delay,
		Zoom: zoom.Config{
			Min:    zc.Min,
			Max:    zc.Max,
			Period: zc.Period,
			Ramp:   zc.Ramp,
			Ease:   zoomEase,
		},
		LoadTimeout: c.GetMediaConfig().LoadTimeout,
		Reel:        c.ReelSettings(),
		Expandable:  c.Presentation.Expandable,
	}, nil
}
