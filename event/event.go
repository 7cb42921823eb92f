// Package event turns raw engine notifications into immutable application events.
package event

import (
	"strings"

	"github.com/mediactl/mediactl/native"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Kind identifies a semantic application event.
type Kind int

// Player events.
const (
	MediaChanged Kind = iota
	Opening
	Buffering
	Playing
	Paused
	Stopped
	Forward
	Backward
	Finished
	Error
	TimeChanged
	PositionChanged
	SeekableChanged
	PausableChanged
	TitleChanged
	SnapshotTaken
	LengthChanged
	VideoOutput
)

// Media events.
const (
	MediaMetaChanged Kind = iota + 32
	MediaSubItemAdded
	MediaDurationChanged
	MediaParsedChanged
	MediaFreed
	MediaStateChanged
)

var kindNames = map[Kind]string{
	MediaChanged:         "media-changed",
	Opening:              "opening",
	Buffering:            "buffering",
	Playing:              "playing",
	Paused:               "paused",
	Stopped:              "stopped",
	Forward:              "forward",
	Backward:             "backward",
	Finished:             "finished",
	Error:                "error",
	TimeChanged:          "time-changed",
	PositionChanged:      "position-changed",
	SeekableChanged:      "seekable-changed",
	PausableChanged:      "pausable-changed",
	TitleChanged:         "title-changed",
	SnapshotTaken:        "snapshot-taken",
	LengthChanged:        "length-changed",
	VideoOutput:          "video-output",
	MediaMetaChanged:     "media-meta-changed",
	MediaSubItemAdded:    "media-sub-item-added",
	MediaDurationChanged: "media-duration-changed",
	MediaParsedChanged:   "media-parsed-changed",
	MediaFreed:           "media-freed",
	MediaStateChanged:    "media-state-changed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Kinds lists every known kind, player events first.
func Kinds() []Kind {
	kinds := lo.Keys(kindNames)
	slices.Sort(kinds)
	return kinds
}

// ParseKind resolves a kind from its name, case-insensitively.
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Mask is a set of kinds a subscriber wants delivered.
type Mask uint64

// MaskAll subscribes to every kind.
const MaskAll Mask = ^Mask(0)

// MaskOf builds a mask from the given kinds.
func MaskOf(kinds ...Kind) Mask {
	var m Mask
	for _, k := range kinds {
		m |= 1 << uint(k)
	}
	return m
}

// Has reports whether k is part of the mask.
func (m Mask) Has(k Kind) bool {
	return m&(1<<uint(k)) != 0
}

// Event is a self-contained copy of an engine notification.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind Kind

	Time         int64
	Length       int64
	Position     float32
	Buffering    float32
	Seekable     bool
	Pausable     bool
	Title        int
	VideoOutputs int
	Filename     string

	Meta     native.Meta
	State    native.State
	Duration int64
	Parse    native.ParseStatus
}

// Failed reports whether e signals a playback failure.
func (e Event) Failed() bool {
	return e.Kind == Error || (e.Kind == MediaStateChanged && e.State == native.StateError)
}
