package native

import "fmt"

// EventType is the numeric discriminant of a raw engine event.
// Media events and player events occupy two separate contiguous ranges.
type EventType int

// Media event range.
const (
	MediaMetaChanged EventType = iota
	MediaSubItemAdded
	MediaDurationChanged
	MediaParsedChanged
	MediaFreed
	MediaStateChanged
)

// Player event range.
const (
	PlayerMediaChanged EventType = 0x100 + iota
	PlayerNothingSpecial
	PlayerOpening
	PlayerBuffering
	PlayerPlaying
	PlayerPaused
	PlayerStopped
	PlayerForward
	PlayerBackward
	PlayerEndReached
	PlayerEncounteredError
	PlayerTimeChanged
	PlayerPositionChanged
	PlayerSeekableChanged
	PlayerPausableChanged
	PlayerTitleChanged
	PlayerSnapshotTaken
	PlayerLengthChanged
	PlayerVout
)

const (
	firstMediaEvent  = MediaMetaChanged
	lastMediaEvent   = MediaStateChanged
	firstPlayerEvent = PlayerMediaChanged
	lastPlayerEvent  = PlayerVout
)

// IsPlayerEvent reports whether t belongs to the player range.
func (t EventType) IsPlayerEvent() bool {
	return t >= firstPlayerEvent && t <= lastPlayerEvent
}

// IsMediaEvent reports whether t belongs to the media range.
func (t EventType) IsMediaEvent() bool {
	return t >= firstMediaEvent && t <= lastMediaEvent
}

func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EventType(%#x)", int(t))
}

var eventNames = map[EventType]string{
	MediaMetaChanged:       "MediaMetaChanged",
	MediaSubItemAdded:      "MediaSubItemAdded",
	MediaDurationChanged:   "MediaDurationChanged",
	MediaParsedChanged:     "MediaParsedChanged",
	MediaFreed:             "MediaFreed",
	MediaStateChanged:      "MediaStateChanged",
	PlayerMediaChanged:     "PlayerMediaChanged",
	PlayerNothingSpecial:   "PlayerNothingSpecial",
	PlayerOpening:          "PlayerOpening",
	PlayerBuffering:        "PlayerBuffering",
	PlayerPlaying:          "PlayerPlaying",
	PlayerPaused:           "PlayerPaused",
	PlayerStopped:          "PlayerStopped",
	PlayerForward:          "PlayerForward",
	PlayerBackward:         "PlayerBackward",
	PlayerEndReached:       "PlayerEndReached",
	PlayerEncounteredError: "PlayerEncounteredError",
	PlayerTimeChanged:      "PlayerTimeChanged",
	PlayerPositionChanged:  "PlayerPositionChanged",
	PlayerSeekableChanged:  "PlayerSeekableChanged",
	PlayerPausableChanged:  "PlayerPausableChanged",
	PlayerTitleChanged:     "PlayerTitleChanged",
	PlayerSnapshotTaken:    "PlayerSnapshotTaken",
	PlayerLengthChanged:    "PlayerLengthChanged",
	PlayerVout:             "PlayerVout",
}

// PlayerEventTypes lists every event type of the player range in numeric order.
func PlayerEventTypes() []EventType {
	return typeRange(firstPlayerEvent, lastPlayerEvent)
}

// MediaEventTypes lists every event type of the media range in numeric order.
func MediaEventTypes() []EventType {
	return typeRange(firstMediaEvent, lastMediaEvent)
}

func typeRange(from, to EventType) []EventType {
	types := make([]EventType, 0, to-from+1)
	for t := from; t <= to; t++ {
		types = append(types, t)
	}
	return types
}

// RawEvent is the tagged union delivered by the engine.
//
// Which payload field is meaningful depends on Type:
//
//	Int   time, length, duration, title, vout count, meta field, state, parse status
//	Float buffering cache percentage, position
//	Bool  seekable, pausable
//	Text  snapshot file name
//
// Text may alias engine-owned memory. None of the fields may be retained after the callback returns.
type RawEvent struct {
	Type  EventType
	Int   int64
	Float float32
	Bool  bool
	Text  []byte
}
