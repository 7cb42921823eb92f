package event

import "github.com/mediactl/mediactl/native"

var playerKinds = map[native.EventType]Kind{
	native.PlayerMediaChanged:     MediaChanged,
	native.PlayerOpening:          Opening,
	native.PlayerBuffering:        Buffering,
	native.PlayerPlaying:          Playing,
	native.PlayerPaused:           Paused,
	native.PlayerStopped:          Stopped,
	native.PlayerForward:          Forward,
	native.PlayerBackward:         Backward,
	native.PlayerEndReached:       Finished,
	native.PlayerEncounteredError: Error,
	native.PlayerTimeChanged:      TimeChanged,
	native.PlayerPositionChanged:  PositionChanged,
	native.PlayerSeekableChanged:  SeekableChanged,
	native.PlayerPausableChanged:  PausableChanged,
	native.PlayerTitleChanged:     TitleChanged,
	native.PlayerSnapshotTaken:    SnapshotTaken,
	native.PlayerLengthChanged:    LengthChanged,
	native.PlayerVout:             VideoOutput,
}

var mediaKinds = map[native.EventType]Kind{
	native.MediaMetaChanged:     MediaMetaChanged,
	native.MediaSubItemAdded:    MediaSubItemAdded,
	native.MediaDurationChanged: MediaDurationChanged,
	native.MediaParsedChanged:   MediaParsedChanged,
	native.MediaFreed:           MediaFreed,
	native.MediaStateChanged:    MediaStateChanged,
}

// Source selects which native event range a translator accepts.
type Source int

const (
	FromPlayer Source = iota
	FromMedia
)

// Translator converts raw events of one native range into Events.
//
// Translate runs on the engine thread: it never blocks, never calls back into the
// engine and copies everything it needs out of the raw record before returning.
type Translator struct {
	source Source
}

// NewTranslator returns a translator accepting events from the given range only.
func NewTranslator(source Source) Translator {
	return Translator{source: source}
}

// Translate returns the copied event and true, or false when the raw event belongs to the
// other range, is unknown, carries no information or is excluded by mask.
func (t Translator) Translate(raw *native.RawEvent, mask Mask) (Event, bool) {
	if raw == nil {
		return Event{}, false
	}

	var (
		kind Kind
		ok   bool
	)
	switch t.source {
	case FromPlayer:
		if !raw.Type.IsPlayerEvent() {
			return Event{}, false
		}
		kind, ok = playerKinds[raw.Type]
	case FromMedia:
		if !raw.Type.IsMediaEvent() {
			return Event{}, false
		}
		kind, ok = mediaKinds[raw.Type]
	}
	if !ok || !mask.Has(kind) {
		return Event{}, false
	}

	e := Event{Kind: kind}
	switch kind {
	case Buffering:
		e.Buffering = raw.Float
	case TimeChanged:
		e.Time = raw.Int
	case PositionChanged:
		e.Position = raw.Float
	case SeekableChanged:
		e.Seekable = raw.Bool
	case PausableChanged:
		e.Pausable = raw.Bool
	case TitleChanged:
		e.Title = int(raw.Int)
	case SnapshotTaken:
		// string conversion copies out of engine memory
		e.Filename = string(raw.Text)
	case LengthChanged:
		e.Length = raw.Int
	case VideoOutput:
		e.VideoOutputs = int(raw.Int)
	case MediaMetaChanged:
		e.Meta = native.Meta(raw.Int)
	case MediaDurationChanged:
		e.Duration = raw.Int
	case MediaParsedChanged:
		e.Parse = native.ParseStatus(raw.Int)
	case MediaStateChanged:
		e.State = native.State(raw.Int)
	}
	return e, true
}
