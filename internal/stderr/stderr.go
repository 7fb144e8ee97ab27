//go:build !windows

// Package stderr captures output that C libraries (ALSA, audio decoders)
// write directly to file descriptor 2, bypassing os.Stderr, and sends it
// to the log so it cannot corrupt the terminal UI.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"syscall"

	"go.uber.org/zap"
)

// Capture holds a redirected stderr.
type Capture struct {
	orig   int
	r, w   *os.File
	logger *zap.Logger
	done   chan struct{}
}

// Start redirects stderr and logs each non-empty line at warn level. It
// must run before any C library initialization. On error the program can
// carry on with the original stderr.
func Start(logger *zap.Logger) (*Capture, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		_ = syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{orig: orig, r: r, w: w, logger: logger, done: make(chan struct{})}
	go c.forward()
	return c, nil
}

func (c *Capture) forward() {
	defer close(c.done)
	scanner := bufio.NewScanner(c.r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			c.logger.Warn("stderr", zap.String("line", line))
		}
	}
}

// Stop restores the original stderr once every captured line is logged.
func (c *Capture) Stop() {
	_ = syscall.Dup2(c.orig, int(os.Stderr.Fd()))
	_ = syscall.Close(c.orig)
	// fd 2 no longer refers to the pipe, so closing w ends the reader.
	c.w.Close()
	<-c.done
	c.r.Close()
}
