package player

import (
	"fmt"

	"github.com/mediactl/mediactl/metrics"
	"github.com/mediactl/mediactl/native"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
)

// PrepareMedia binds locator to the player without starting it. Any previously bound
// media is released first. Standard options are applied before opts.
//
// It returns false and an error wrapping ErrInvalidLocator when the engine refuses the
// locator; nothing is bound afterwards in that case.
func (c *Controller) PrepareMedia(locator string, opts ...string) (bool, error) {
	if err := c.lock(); err != nil {
		return false, err
	}
	defer c.mu.Unlock()
	return c.bindLocked(locator, opts)
}

func (c *Controller) bindLocked(locator string, opts []string) (bool, error) {
	c.unbindLocked()
	c.subItemIndex = -1

	logger := c.logger.WithField("locator", locator)

	m, err := c.engine.NewMedia(c.instance, locator)
	if err != nil || m == 0 {
		metrics.MediaBinds.WithLabelValues("invalid").Inc()
		logger.WithError(err).Warn("media not created")
		return false, fmt.Errorf("%w: %q: %v", ErrInvalidLocator, locator, err)
	}

	c.applyOptionsLocked(m, opts)

	em := c.engine.MediaEventManager(m)
	for _, t := range native.MediaEventTypes() {
		if err := c.engine.EventAttach(em, t, c.onMediaEvent, c.mediaToken); err != nil {
			logger.WithError(err).WithField("type", t.String()).Warn("media event not attached")
		}
	}

	c.engine.SetMedia(c.player, m)
	c.media, c.mediaEvents = m, em

	metrics.MediaBinds.WithLabelValues("ok").Inc()
	logger.Debug("media bound")
	return true, nil
}

func (c *Controller) applyOptionsLocked(m native.Media, opts []string) {
	for _, opt := range c.standard {
		c.engine.AddMediaOption(m, opt)
	}
	for _, opt := range opts {
		c.engine.AddMediaOption(m, opt)
	}
}

// unbindLocked detaches from and releases the bound media, if any.
func (c *Controller) unbindLocked() {
	if c.media == 0 {
		return
	}
	for _, t := range native.MediaEventTypes() {
		c.engine.EventDetach(c.mediaEvents, t, c.mediaToken)
	}
	c.engine.ReleaseMedia(c.media)
	c.media, c.mediaEvents = 0, 0
}

// Play starts the player's current media. The result of playback arrives as events.
func (c *Controller) Play() error {
	if err := c.lock(); err != nil {
		return err
	}
	bound := c.media != 0
	c.mu.Unlock()
	if !bound {
		return ErrNoMedia
	}

	// The hook may call back into the controller, so mu is not held here.
	if c.beforePlay != nil {
		c.beforePlay(c)
	}

	if err := c.lock(); err != nil {
		return err
	}
	defer c.mu.Unlock()

	if c.media == 0 {
		return ErrNoMedia
	}
	if err := c.engine.Play(c.player); err != nil {
		return fmt.Errorf("%w: %v", ErrPlayFailed, err)
	}
	return nil
}

// PlayMedia binds locator and plays it.
func (c *Controller) PlayMedia(locator string, opts ...string) error {
	if _, err := c.PrepareMedia(locator, opts...); err != nil {
		return err
	}
	return c.Play()
}

// withMedia runs fn with mu held and media bound.
func (c *Controller) withMedia(fn func(m native.Media)) error {
	if err := c.lock(); err != nil {
		return err
	}
	defer c.mu.Unlock()
	if c.media == 0 {
		return ErrNoMedia
	}
	fn(c.media)
	return nil
}

// Locator returns the locator of the bound media as reported by the engine.
func (c *Controller) Locator() (string, error) {
	var locator string
	err := c.withMedia(func(m native.Media) {
		locator = c.engine.MediaLocator(m)
	})
	return locator, err
}

// AddMediaOptions adds options to the bound media.
func (c *Controller) AddMediaOptions(opts ...string) error {
	return c.withMedia(func(m native.Media) {
		for _, opt := range opts {
			c.engine.AddMediaOption(m, opt)
		}
	})
}

// ParseMedia parses the bound media synchronously.
func (c *Controller) ParseMedia() error {
	return c.withMedia(func(m native.Media) {
		c.engine.MediaParse(m)
	})
}

// RequestParseMedia starts an asynchronous parse. Completion is reported with a
// MediaParsedChanged event.
func (c *Controller) RequestParseMedia() error {
	var perr error
	err := c.withMedia(func(m native.Media) {
		perr = c.engine.MediaParseAsync(m)
	})
	if err != nil {
		return err
	}
	return perr
}

// MediaState returns the engine state of the bound media.
func (c *Controller) MediaState() (native.State, error) {
	var state native.State
	err := c.withMedia(func(m native.Media) {
		state = c.engine.MediaState(m)
	})
	return state, err
}

// TrackInfo lists the elementary streams of the bound media. The media must have been
// parsed or played for the list to be populated.
func (c *Controller) TrackInfo() ([]native.TrackInfo, error) {
	var tracks []native.TrackInfo
	err := c.withMedia(func(m native.Media) {
		tracks = c.engine.MediaTracks(m)
	})
	return tracks, err
}

// MediaStatistics returns playback counters, which exist only while the media plays.
func (c *Controller) MediaStatistics() (mo.Option[native.Stats], error) {
	var stats mo.Option[native.Stats]
	err := c.withMedia(func(m native.Media) {
		if s, ok := c.engine.MediaStats(m); ok {
			stats = mo.Some(s)
		}
	})
	return stats, err
}

// MediaMeta reads every metadata field of the bound media.
func (c *Controller) MediaMeta() (MediaMeta, error) {
	var meta MediaMeta
	err := c.withMedia(func(m native.Media) {
		meta = c.readMetaLocked(m)
	})
	return meta, err
}

// MetaField reads a single metadata field of the bound media.
func (c *Controller) MetaField(field native.Meta) (string, error) {
	var value string
	err := c.withMedia(func(m native.Media) {
		value = c.engine.MediaMeta(m, field)
	})
	return value, err
}

func (c *Controller) readMetaLocked(m native.Media) MediaMeta {
	meta := MediaMeta{Locator: c.engine.MediaLocator(m)}
	for _, field := range native.MetaFields() {
		meta.set(field, c.engine.MediaMeta(m, field))
	}
	c.logger.WithFields(logrus.Fields{
		"locator": meta.Locator,
		"title":   meta.Title,
	}).Trace("read media meta")
	return meta
}
