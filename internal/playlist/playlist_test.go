package playlist

import (
	"path/filepath"
	"testing"
)

func TestTrack_HasBackgroundVideo(t *testing.T) {
	var nilTrack *Track
	if nilTrack.HasBackgroundVideo() {
		t.Error("nil track reports a background video")
	}
	if (&Track{}).HasBackgroundVideo() {
		t.Error("empty track reports a background video")
	}
	if !(&Track{BackgroundVideo: "v.mp4"}).HasBackgroundVideo() {
		t.Error("track with video reports none")
	}
}

func TestReel_HasBackgroundVideo(t *testing.T) {
	tests := []struct {
		name string
		reel Reel
		want bool
	}{
		{"enabled with url", Reel{BackgroundVideo: "r.mp4", BackgroundVideoEnabled: true}, true},
		{"disabled", Reel{BackgroundVideo: "r.mp4"}, false},
		{"enabled without url", Reel{BackgroundVideoEnabled: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.reel.HasBackgroundVideo(); got != tt.want {
				t.Errorf("HasBackgroundVideo() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQueue_TracksIsCopy(t *testing.T) {
	q := NewQueue()
	q.Replace(Track{Path: "/a.mp3"})
	tracks := q.Tracks()
	tracks[0].Path = "/changed.mp3"
	if q.Current().Path != "/a.mp3" {
		t.Error("Tracks() exposed internal storage")
	}
}

func TestQueue_ReplaceKeepsOldPointers(t *testing.T) {
	q := NewQueue()
	old := q.Replace(Track{Path: "/a.mp3"})
	q.Replace(Track{Path: "/b.mp3"})
	if old.Path != "/a.mp3" {
		t.Errorf("previous current track changed to %q", old.Path)
	}
}

func TestQueue_Restore(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		path      string
		want      bool
		wantIndex int
	}{
		{"matching", 1, "/b.mp3", true, 1},
		{"path moved", 1, "/c.mp3", false, 0},
		{"out of range", 7, "/b.mp3", false, 0},
		{"nothing saved", -1, "", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQueue()
			q.Replace(Track{Path: "/a.mp3"}, Track{Path: "/b.mp3"}, Track{Path: "/c.mp3"})
			if got := q.Restore(tt.index, tt.path); got != tt.want {
				t.Errorf("Restore() = %v, want %v", got, tt.want)
			}
			if q.CurrentIndex() != tt.wantIndex {
				t.Errorf("CurrentIndex() = %d, want %d", q.CurrentIndex(), tt.wantIndex)
			}
		})
	}
}

func TestQueue_Navigation(t *testing.T) {
	q := NewQueue()
	if q.Current() != nil || q.CurrentIndex() != -1 {
		t.Fatal("new queue should have no current track")
	}

	first := q.Replace(Track{Path: "/a.mp3"}, Track{Path: "/b.mp3"}, Track{Path: "/c.mp3"})
	if first == nil || first.Path != "/a.mp3" {
		t.Fatalf("Replace() = %v, want /a.mp3", first)
	}
	if q.Previous() != nil {
		t.Error("Previous() at first track should return nil")
	}
	if next := q.Next(); next == nil || next.Path != "/b.mp3" {
		t.Errorf("Next() = %v, want /b.mp3", next)
	}
	if q.JumpTo(2) == nil || q.HasNext() {
		t.Error("JumpTo(2) should land on the last track")
	}
	if q.Next() != nil {
		t.Error("Next() past the end should return nil")
	}
	if prev := q.Previous(); prev == nil || prev.Path != "/b.mp3" {
		t.Errorf("Previous() = %v, want /b.mp3", prev)
	}
	if q.JumpTo(5) != nil {
		t.Error("JumpTo() out of bounds should return nil")
	}
}

func TestQueue_ReplaceEmpty(t *testing.T) {
	q := NewQueue()
	q.Replace(Track{Path: "/a.mp3"})
	if q.Replace() != nil || !q.IsEmpty() || q.CurrentIndex() != -1 {
		t.Error("Replace() with no tracks should empty the queue")
	}
}

func TestFillMetadata(t *testing.T) {
	tests := []struct {
		name  string
		track Track
		want  string
	}{
		{"keeps existing", Track{Path: "/x/song.mp3", Title: "Song", Artist: "Band"}, "Song"},
		{"missing file falls back to name", Track{Path: filepath.Join(t.TempDir(), "intro.flac")}, "intro"},
		{"remote falls back to name", Track{Path: "https://cdn.example.com/a/outro.mp3"}, "outro"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FillMetadata(tt.track).Title; got != tt.want {
				t.Errorf("FillMetadata().Title = %q, want %q", got, tt.want)
			}
		})
	}
}
