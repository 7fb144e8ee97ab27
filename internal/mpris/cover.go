//go:build linux

package mpris

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/llehouerou/reelbg/internal/playlist"
)

var (
	coverBases = []string{"cover", "folder", "album", "front"}
	coverExts  = []string{".jpg", ".png", ".jpeg"}
)

// coverArt returns a local image for track, or "". The track's background
// still wins, then an image named after the track file, then a folder
// cover.
func coverArt(track *playlist.Track) string {
	if img := track.BackgroundImage; img != "" && !isRemote(img) {
		if abs, err := filepath.Abs(img); err == nil {
			return abs
		}
	}
	if track.Path == "" || isRemote(track.Path) {
		return ""
	}
	for _, c := range coverCandidates(track.Path) {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// coverCandidates lists the files tried next to trackPath, in priority order.
func coverCandidates(trackPath string) []string {
	dir := filepath.Dir(trackPath)
	stem := strings.TrimSuffix(filepath.Base(trackPath), filepath.Ext(trackPath))

	out := make([]string, 0, (len(coverBases)+1)*len(coverExts))
	for _, base := range append([]string{stem}, coverBases...) {
		for _, ext := range coverExts {
			out = append(out, filepath.Join(dir, base+ext))
		}
	}
	return out
}

func isRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
