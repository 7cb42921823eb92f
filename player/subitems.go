package player

import (
	"errors"

	"github.com/mediactl/mediactl/listener"
	"github.com/mediactl/mediactl/metrics"
	"github.com/mediactl/mediactl/native"
)

// withSubItemsLocked runs fn on the locked sub-item list of the bound media.
// It reports false when there is no media or no list.
func (c *Controller) withSubItemsLocked(fn func(l native.MediaList, count int)) bool {
	if c.media == 0 {
		return false
	}
	l := c.engine.MediaSubItems(c.media)
	if l == 0 {
		return false
	}
	c.engine.ListLock(l)
	defer func() {
		c.engine.ListUnlock(l)
		c.engine.ListRelease(l)
	}()
	fn(l, c.engine.ListCount(l))
	return true
}

// SubItemCount returns the number of sub-items of the bound media, zero when nothing is bound.
func (c *Controller) SubItemCount() (int, error) {
	if err := c.lock(); err != nil {
		return 0, err
	}
	defer c.mu.Unlock()
	return c.subItemCountLocked(), nil
}

func (c *Controller) subItemCountLocked() int {
	n := 0
	c.withSubItemsLocked(func(_ native.MediaList, count int) {
		n = count
	})
	return n
}

// SubItemIndex returns the index of the sub-item last started, or -1.
func (c *Controller) SubItemIndex() (int, error) {
	if err := c.lock(); err != nil {
		return -1, err
	}
	defer c.mu.Unlock()
	return c.subItemIndex, nil
}

// SubItems returns the locators of the sub-items of the bound media.
func (c *Controller) SubItems() ([]string, error) {
	if err := c.lock(); err != nil {
		return nil, err
	}
	defer c.mu.Unlock()

	var locators []string
	c.eachSubItemLocked(func(item native.Media) {
		locators = append(locators, c.engine.MediaLocator(item))
	})
	return locators, nil
}

// SubItemMediaMeta reads the metadata of every sub-item of the bound media.
func (c *Controller) SubItemMediaMeta() ([]MediaMeta, error) {
	if err := c.lock(); err != nil {
		return nil, err
	}
	defer c.mu.Unlock()

	var metas []MediaMeta
	c.eachSubItemLocked(func(item native.Media) {
		metas = append(metas, c.readMetaLocked(item))
	})
	return metas, nil
}

func (c *Controller) eachSubItemLocked(fn func(item native.Media)) {
	c.withSubItemsLocked(func(l native.MediaList, count int) {
		for i := 0; i < count; i++ {
			item := c.engine.ListItemAt(l, i)
			if item == 0 {
				continue
			}
			fn(item)
			c.engine.ReleaseMedia(item)
		}
	})
}

// PlayNextSubItem plays the sub-item after the one last started.
func (c *Controller) PlayNextSubItem(opts ...string) (bool, error) {
	return c.playSubItem(-1, true, opts)
}

// PlaySubItem plays the sub-item at index. Past the end it wraps to the first sub-item
// when repeat is on and stops otherwise. The bound media stays the parent of the list.
// It reports whether a sub-item was started.
func (c *Controller) PlaySubItem(index int, opts ...string) (bool, error) {
	return c.playSubItem(index, false, opts)
}

func (c *Controller) playSubItem(index int, next bool, opts []string) (bool, error) {
	if err := c.lock(); err != nil {
		return false, err
	}

	if next {
		index = c.subItemIndex + 1
	}

	bound := false
	c.withSubItemsLocked(func(l native.MediaList, count int) {
		switch {
		case index < 0:
			index = -1
		case index >= count && c.repeat.Load() && count > 0:
			index = 0
		case index >= count:
			index = -1
		}
		c.subItemIndex = index
		if index == -1 {
			return
		}

		item := c.engine.ListItemAt(l, index)
		if item == 0 {
			return
		}
		c.applyOptionsLocked(item, opts)
		c.engine.SetMedia(c.player, item)
		c.engine.ReleaseMedia(item)
		bound = true
	})
	c.mu.Unlock()

	if !bound {
		return false, nil
	}

	c.logger.WithField("index", index).Debug("playing sub-item")
	if err := c.Play(); err != nil {
		return false, err
	}
	metrics.SubItemsPlayed.Inc()
	return true, nil
}

// subItemChainer plays the next sub-item when the current one finishes.
type subItemChainer struct {
	listener.Adapter
	c *Controller
}

func (s *subItemChainer) Finished() {
	if !s.c.playSubItems.Load() {
		return
	}
	if _, err := s.c.PlayNextSubItem(); err != nil && !errors.Is(err, ErrReleased) {
		s.c.logger.WithError(err).Warn("next sub-item not played")
	}
}
