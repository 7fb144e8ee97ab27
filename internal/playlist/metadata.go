package playlist

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// FillMetadata completes missing title and artist from the audio file tags.
// Remote tracks and unreadable files keep what they have, with the file
// name as a last-resort title.
func FillMetadata(t Track) Track {
	if t.Title != "" && t.Artist != "" {
		return t
	}
	if !isRemote(t.Path) {
		if m, err := readTags(t.Path); err == nil {
			if t.Title == "" {
				t.Title = m.Title()
			}
			if t.Artist == "" {
				t.Artist = m.Artist()
			}
		}
	}
	if t.Title == "" {
		t.Title = strings.TrimSuffix(filepath.Base(t.Path), filepath.Ext(t.Path))
	}
	return t
}

func readTags(path string) (tag.Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tag.ReadFrom(f)
}

func isRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
