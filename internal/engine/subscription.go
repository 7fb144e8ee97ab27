package engine

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	IdleChanged      <-chan IdleChange
	SelectionChanged <-chan SelectionChange
	FadeSettled      <-chan FadeSettled
	StaticChanged    <-chan StaticChange
	Error            <-chan ErrorEvent
	Done             <-chan struct{}

	// Internal write channels
	idleCh      chan IdleChange
	selectionCh chan SelectionChange
	fadeCh      chan FadeSettled
	staticCh    chan StaticChange
	errorCh     chan ErrorEvent
	doneCh      chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		idleCh:      make(chan IdleChange, eventBufferSize),
		selectionCh: make(chan SelectionChange, eventBufferSize),
		fadeCh:      make(chan FadeSettled, eventBufferSize),
		staticCh:    make(chan StaticChange, eventBufferSize),
		errorCh:     make(chan ErrorEvent, eventBufferSize),
		doneCh:      make(chan struct{}),
	}
	s.IdleChanged = s.idleCh
	s.SelectionChanged = s.selectionCh
	s.FadeSettled = s.fadeCh
	s.StaticChanged = s.staticCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// send delivers e without blocking, dropping it if the buffer is full.
func send[E any](ch chan E, e E) {
	select {
	case ch <- e:
	default:
	}
}

func (s *Subscription) sendIdle(e IdleChange)           { send(s.idleCh, e) }
func (s *Subscription) sendSelection(e SelectionChange) { send(s.selectionCh, e) }
func (s *Subscription) sendFade(e FadeSettled)          { send(s.fadeCh, e) }
func (s *Subscription) sendStatic(e StaticChange)       { send(s.staticCh, e) }
func (s *Subscription) sendError(e ErrorEvent)          { send(s.errorCh, e) }
