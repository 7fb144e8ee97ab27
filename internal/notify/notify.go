// Package notify sends "now playing" desktop notifications via D-Bus.
package notify

import (
	"strings"

	"github.com/llehouerou/reelbg/internal/playlist"
)

// Urgency represents freedesktop notification priority levels.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// defaultIcon is the freedesktop icon name used when a track has no still.
const defaultIcon = "audio-x-generic"

// trackTimeout keeps track notifications short; a widget switches often.
const trackTimeout int32 = 4000

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// ForTrack builds the notification announcing t. The track's background
// still doubles as the icon when it is a local file.
func ForTrack(t *playlist.Track) Notification {
	title := t.Title
	if title == "" {
		title = trackName(t.Path)
	}
	icon := defaultIcon
	if img := t.BackgroundImage; img != "" && !strings.Contains(img, "://") {
		icon = img
	}
	return Notification{
		Title:   title,
		Body:    t.Artist,
		Icon:    icon,
		Timeout: trackTimeout,
		Urgency: UrgencyLow,
	}
}

func trackName(path string) string {
	name := path[strings.LastIndexAny(path, `/\`)+1:]
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	return name
}
