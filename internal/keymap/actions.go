// Package keymap defines key bindings and action dispatch for the demo host.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback actions
	ActionPlayPause  Action = "play_pause"
	ActionStop       Action = "stop"
	ActionNextTrack  Action = "next_track"
	ActionPrevTrack  Action = "prev_track"
	ActionVolumeUp   Action = "volume_up"
	ActionVolumeDown Action = "volume_down"
	ActionMute       Action = "mute"

	// Background actions
	ActionPointerMove      Action = "pointer_move"      // simulated pointer activity
	ActionPointerLeave     Action = "pointer_leave"     // pointer left the widget
	ActionExitIdle         Action = "exit_idle"         // explicit wake
	ActionToggleExpandable Action = "toggle_expandable" // collapsed banner layout
	ActionToggleExpanded   Action = "toggle_expanded"   // expand/collapse the banner
	ActionToggleReel       Action = "toggle_reel"       // reel video on/off
)
