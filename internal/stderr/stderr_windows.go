//go:build windows

// Package stderr provides a no-op capture for Windows, whose audio
// libraries don't write to stderr the way ALSA does.
package stderr

import "go.uber.org/zap"

// Capture is a no-op on Windows.
type Capture struct{}

// Start is a no-op on Windows.
func Start(*zap.Logger) (*Capture, error) {
	return &Capture{}, nil
}

// Stop is a no-op on Windows.
func (*Capture) Stop() {}
