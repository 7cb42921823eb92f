package player

import (
	"errors"

	"github.com/mediactl/mediactl/listener"
	"github.com/mediactl/mediactl/metrics"
)

// autoRepeat replays the bound media when it finishes. Media with sub-items is left
// to the chainer.
type autoRepeat struct {
	listener.Adapter
	c *Controller
}

func (r *autoRepeat) Finished() {
	c := r.c
	if !c.repeat.Load() {
		return
	}

	locator, ok := c.repeatLocator()
	if !ok {
		return
	}

	c.logger.WithField("locator", locator).Debug("repeating media")
	if err := c.PlayMedia(locator); err != nil {
		if !errors.Is(err, ErrReleased) {
			c.logger.WithError(err).Warn("repeat failed")
		}
		return
	}
	metrics.Repeats.Inc()
}

// repeatLocator returns the locator to replay, if the bound media has no sub-items.
func (c *Controller) repeatLocator() (string, bool) {
	if err := c.lock(); err != nil {
		return "", false
	}
	defer c.mu.Unlock()

	if c.media == 0 || c.subItemCountLocked() != 0 {
		return "", false
	}
	return c.engine.MediaLocator(c.media), true
}
