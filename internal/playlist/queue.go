package playlist

// PlayingQueue is the ordered track list of a widget with a cursor on the
// current track.
type PlayingQueue struct {
	tracks []Track
	index  int // -1 when empty
}

func NewQueue() *PlayingQueue {
	return &PlayingQueue{index: -1}
}

// Current returns the track under the cursor, or nil.
func (q *PlayingQueue) Current() *Track {
	return q.at(q.index)
}

func (q *PlayingQueue) at(i int) *Track {
	if i < 0 || i >= len(q.tracks) {
		return nil
	}
	return &q.tracks[i]
}

func (q *PlayingQueue) CurrentIndex() int {
	return q.index
}

// Next moves the cursor forward. It returns nil, without moving, at the
// last track.
func (q *PlayingQueue) Next() *Track {
	if !q.HasNext() {
		return nil
	}
	q.index++
	return q.Current()
}

// Previous moves the cursor back. It returns nil, without moving, at the
// first track.
func (q *PlayingQueue) Previous() *Track {
	if q.index <= 0 {
		return nil
	}
	q.index--
	return q.Current()
}

func (q *PlayingQueue) HasNext() bool {
	return q.index < len(q.tracks)-1
}

// JumpTo moves the cursor to index. Out of range it returns nil and leaves
// the cursor alone.
func (q *PlayingQueue) JumpTo(index int) *Track {
	t := q.at(index)
	if t != nil {
		q.index = index
	}
	return t
}

// Replace swaps in tracks and puts the cursor on the first one. Pointers
// to the previous tracks stay valid.
func (q *PlayingQueue) Replace(tracks ...Track) *Track {
	q.tracks = append([]Track(nil), tracks...)
	q.index = -1
	if len(tracks) > 0 {
		q.index = 0
	}
	return q.Current()
}

// Restore puts the cursor back on a saved position. The saved path must
// still be at index; otherwise the playlist changed and the cursor stays
// where it is.
func (q *PlayingQueue) Restore(index int, path string) bool {
	t := q.at(index)
	if t == nil || t.Path != path {
		return false
	}
	q.index = index
	return true
}

// Tracks returns a copy of the queue.
func (q *PlayingQueue) Tracks() []Track {
	return append([]Track(nil), q.tracks...)
}

func (q *PlayingQueue) Len() int {
	return len(q.tracks)
}

func (q *PlayingQueue) IsEmpty() bool {
	return len(q.tracks) == 0
}
