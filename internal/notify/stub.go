//go:build !linux

package notify

type stubNotifier struct{}

// New returns a no-op notifier outside Linux.
func New(string) (Notifier, error) {
	return stubNotifier{}, nil
}

func (stubNotifier) Notify(Notification) (uint32, error) { return 0, nil }
func (stubNotifier) Close(uint32) error                  { return nil }
