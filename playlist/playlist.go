// Package playlist reads and writes the YAML playlists accepted by "mediactl play --playlist".
//
//	repeat: true
//	options: [":no-audio"]
//	items:
//	  - locator: /videos/intro.mkv
//	  - locator: https://example.com/stream.m3u8
//	    options: [":network-caching=1000"]
//	    sub_items: true
package playlist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mediactl/mediactl/filesystem"
	"github.com/mediactl/mediactl/where"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

var ErrEmpty = errors.New("playlist has no items")

// Item is one media to play.
type Item struct {
	Locator  string   `yaml:"locator"`
	Options  []string `yaml:"options,omitempty"`
	SubItems bool     `yaml:"sub_items,omitempty"`
}

// Playlist is an ordered list of media with options shared by every item.
type Playlist struct {
	Repeat  bool     `yaml:"repeat,omitempty"`
	Options []string `yaml:"options,omitempty"`
	Items   []Item   `yaml:"items"`
}

// OptionsFor returns the shared options followed by the item's own.
func (p *Playlist) OptionsFor(item Item) []string {
	return append(append([]string{}, p.Options...), item.Options...)
}

// Locators lists the item locators in order.
func (p *Playlist) Locators() []string {
	return lo.Map(p.Items, func(item Item, _ int) string {
		return item.Locator
	})
}

// FromLocators builds a playlist that plays each locator once.
func FromLocators(locators ...string) *Playlist {
	return &Playlist{
		Items: lo.Map(locators, func(l string, _ int) Item {
			return Item{Locator: l}
		}),
	}
}

// Resolve maps a bare playlist name to a file in the playlists directory.
// Paths and names with an extension are returned as they are.
func Resolve(name string) string {
	if strings.ContainsRune(name, os.PathSeparator) || filepath.Ext(name) != "" {
		return name
	}
	return filepath.Join(where.Playlists(), name+".yaml")
}

// Load reads and validates the playlist at path.
func Load(path string) (*Playlist, error) {
	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read playlist: %w", err)
	}

	var p Playlist
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse playlist %s: %w", path, err)
	}

	p.Items = lo.Filter(p.Items, func(item Item, _ int) bool {
		return strings.TrimSpace(item.Locator) != ""
	})
	if len(p.Items) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	return &p, nil
}

// Save writes p to path, creating parent directories.
func Save(path string, p *Playlist) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode playlist: %w", err)
	}
	if err := filesystem.API().MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return filesystem.API().WriteFile(path, data, 0o644)
}
