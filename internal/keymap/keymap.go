package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "background"
}

// Bindings contains all key bindings.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionStop, []string{"s"}, "Stop", "playback"},
	{ActionNextTrack, []string{"n", "pgdown"}, "Next track", "playback"},
	{ActionPrevTrack, []string{"p", "pgup"}, "Previous track", "playback"},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "playback"},
	{ActionMute, []string{"x"}, "Mute", "playback"},

	// Background
	{ActionPointerMove, []string{"m"}, "Pointer activity", "background"},
	{ActionPointerLeave, []string{"l"}, "Pointer leaves", "background"},
	{ActionExitIdle, []string{"esc"}, "Wake from idle", "background"},
	{ActionToggleExpandable, []string{"b"}, "Banner layout", "background"},
	{ActionToggleExpanded, []string{"e"}, "Expand/collapse", "background"},
	{ActionToggleReel, []string{"r"}, "Reel video on/off", "background"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
