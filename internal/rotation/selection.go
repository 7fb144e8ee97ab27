package rotation

import (
	"github.com/llehouerou/reelbg/internal/playlist"
	"github.com/llehouerou/reelbg/internal/surface"
)

// Selection is the background video that should be foregrounded.
type Selection struct {
	URL  string
	Kind surface.Kind
}

// None is the empty selection: no video background.
var None = Selection{}

// IsNone reports whether no video should be shown.
func (s Selection) IsNone() bool {
	return s.URL == ""
}

// String returns e.g. "track:clip.mp4" or "none".
func (s Selection) String() string {
	if s.IsNone() {
		return "none"
	}
	return s.Kind.String() + ":" + s.URL
}

// Select applies the fixed priority: the track's own video, else the
// enabled reel video, else nothing.
func Select(track *playlist.Track, reel playlist.Reel) Selection {
	if track.HasBackgroundVideo() {
		return Selection{URL: track.BackgroundVideo, Kind: surface.KindTrack}
	}
	if reel.HasBackgroundVideo() {
		return Selection{URL: reel.BackgroundVideo, Kind: surface.KindMain}
	}
	return None
}

// StaticImage returns the still image behind the videos, with the same
// track-over-reel priority.
func StaticImage(track *playlist.Track, reel playlist.Reel) string {
	if track != nil && track.BackgroundImage != "" {
		return track.BackgroundImage
	}
	return reel.BackgroundImage
}
