// Package history remembers what the CLI has played.
package history

import (
	"sort"
	"time"

	"github.com/mediactl/mediactl/filesystem"
	"github.com/mediactl/mediactl/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
)

var cacher = gache.New[map[string]*Entry](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every entry keyed by locator.
func Get() (map[string]*Entry, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Entry), nil
	}
	return cached, nil
}

// Recent returns the entries, most recently played first.
func Recent() ([]*Entry, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	entries := lo.Values(saved)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LastPlayed.After(entries[j].LastPlayed)
	})
	return entries, nil
}

// Save counts one more play of locator. The furthest position reached is kept.
func Save(locator, title string, position float32) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	entry, ok := saved[locator]
	if !ok {
		entry = &Entry{Locator: locator}
		saved[locator] = entry
	}
	if title != "" {
		entry.Title = title
	}
	entry.Plays++
	entry.Position = max(entry.Position, position)
	entry.LastPlayed = time.Now()

	return cacher.Set(saved)
}

// Remove forgets locator.
func Remove(locator string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, locator)
	return cacher.Set(saved)
}

// Clear forgets everything.
func Clear() error {
	return cacher.Set(make(map[string]*Entry))
}
