package playlist

import "time"

// Track represents a single track of a widget playlist.
type Track struct {
	Path     string // audio file path or URL for playback
	Title    string
	Artist   string
	Duration time.Duration

	// BackgroundVideo overrides the reel background while this track is
	// foregrounded. Empty means no override.
	BackgroundVideo string
	// BackgroundImage is the static image shown behind the track.
	BackgroundImage string
}

// HasBackgroundVideo reports whether the track declares its own video.
func (t *Track) HasBackgroundVideo() bool {
	return t != nil && t.BackgroundVideo != ""
}

// Reel is the widget-wide background configuration.
type Reel struct {
	BackgroundVideo        string
	BackgroundVideoEnabled bool
	BackgroundImage        string
}

// HasBackgroundVideo reports whether the reel video should be shown.
func (r Reel) HasBackgroundVideo() bool {
	return r.BackgroundVideoEnabled && r.BackgroundVideo != ""
}
