// Package surface owns the four background media slots of a widget.
//
// A widget background is made of two kinds of media (the reel-wide "main"
// background and the per-track override), each with two physical layers so
// that a new media can be loaded on one layer while the other is visible.
package surface

import "fmt"

// Kind is the role of a background surface.
type Kind int

const (
	KindMain Kind = iota
	KindTrack
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindMain:
		return "main"
	case KindTrack:
		return "track"
	default:
		return "unknown"
	}
}

// Other returns the opposite kind. Main and track backgrounds are mutually
// exclusive.
func (k Kind) Other() Kind {
	if k == KindMain {
		return KindTrack
	}
	return KindMain
}

// Layer is one of the two physical layers of a kind.
type Layer int

const (
	LayerA Layer = iota
	LayerB
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerA:
		return "A"
	case LayerB:
		return "B"
	default:
		return "?"
	}
}

// Other returns the opposite layer.
func (l Layer) Other() Layer {
	if l == LayerA {
		return LayerB
	}
	return LayerA
}

// ID addresses one surface.
type ID struct {
	Kind  Kind
	Layer Layer
}

// String returns e.g. "track/B".
func (id ID) String() string {
	return fmt.Sprintf("%s/%s", id.Kind, id.Layer)
}

// Sibling returns the other layer of the same kind.
func (id ID) Sibling() ID {
	return ID{Kind: id.Kind, Layer: id.Layer.Other()}
}

func (id ID) index() int {
	return int(id.Kind)*2 + int(id.Layer)
}

// All lists every surface in a stable order.
var All = [4]ID{
	{KindMain, LayerA},
	{KindMain, LayerB},
	{KindTrack, LayerA},
	{KindTrack, LayerB},
}

// Layers returns both surfaces of a kind.
func Layers(k Kind) [2]ID {
	return [2]ID{{k, LayerA}, {k, LayerB}}
}

// ReadyState is how far a media resource has loaded.
type ReadyState int

const (
	ReadyUnloaded ReadyState = iota
	ReadyLoading
	ReadyMetadata // dimensions and duration known; can be shown
	ReadyFull     // can play through
)

// String returns the ready state name.
func (r ReadyState) String() string {
	switch r {
	case ReadyUnloaded:
		return "unloaded"
	case ReadyLoading:
		return "loading"
	case ReadyMetadata:
		return "metadata"
	case ReadyFull:
		return "ready"
	default:
		return "unknown"
	}
}

// Usable reports whether a surface in this state may be foregrounded.
func (r ReadyState) Usable() bool {
	return r >= ReadyMetadata
}

// Surface is the bookkeeping for one slot.
type Surface struct {
	id      ID
	media   Media
	url     string
	weight  float64
	scale   float64
	playing bool
	ready   ReadyState

	loadSeq    uint64
	cancelLoad func()
	waiters    []func(LoadResult)

	cleanups int
}

// Snapshot is a read-only copy of a surface's state.
type Snapshot struct {
	ID       ID
	URL      string
	Weight   float64
	Scale    float64
	Playing  bool
	Ready    ReadyState
	Cleanups int
}

func (s *Surface) snapshot() Snapshot {
	return Snapshot{
		ID:       s.id,
		URL:      s.url,
		Weight:   s.weight,
		Scale:    s.scale,
		Playing:  s.playing,
		Ready:    s.ready,
		Cleanups: s.cleanups,
	}
}

func (s *Surface) idle() bool {
	return s.url == "" && !s.playing && s.weight == 0 &&
		s.ready == ReadyUnloaded && s.cancelLoad == nil
}
