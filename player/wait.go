package player

import (
	"context"

	"github.com/mediactl/mediactl/listener"
	"github.com/mediactl/mediactl/native"
)

// startLatch resolves once with the first playing or error outcome.
type startLatch struct {
	listener.Adapter
	result chan bool
}

func newStartLatch() *startLatch {
	return &startLatch{result: make(chan bool, 1)}
}

func (l *startLatch) resolve(ok bool) {
	select {
	case l.result <- ok:
	default:
	}
}

func (l *startLatch) Playing() { l.resolve(true) }
func (l *startLatch) Error()   { l.resolve(false) }

func (l *startLatch) MediaStateChanged(s native.State) {
	if s == native.StateError {
		l.resolve(false)
	}
}

// PlayAndWait plays the current media and blocks until it is playing, fails, or ctx is done.
// It reports true once playback started. An engine error yields false with a nil error.
//
// It must not be called from a listener: the outcome is delivered on the same worker.
func (c *Controller) PlayAndWait(ctx context.Context) (bool, error) {
	latch := newStartLatch()
	if err := c.AddListener(latch); err != nil {
		return false, err
	}
	defer func() { _ = c.RemoveListener(latch) }()

	if err := c.Play(); err != nil {
		return false, err
	}

	select {
	case ok := <-latch.result:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	case <-c.ctx.Done():
		return false, ErrReleased
	}
}

// StartMedia binds locator and waits for it to start, as PlayAndWait.
func (c *Controller) StartMedia(ctx context.Context, locator string, opts ...string) (bool, error) {
	if _, err := c.PrepareMedia(locator, opts...); err != nil {
		return false, err
	}
	return c.PlayAndWait(ctx)
}
