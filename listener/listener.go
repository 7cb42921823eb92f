// Package listener defines the hook-per-event listener shape and the registry that broadcasts to it.
package listener

import (
	"github.com/mediactl/mediactl/event"
	"github.com/mediactl/mediactl/native"
)

// Listener receives one call per delivered event. All hooks run on the dispatch worker,
// never on an engine thread. Embed Adapter to implement only the hooks you need.
type Listener interface {
	MediaChanged()
	Opening()
	Buffering(cache float32)
	Playing()
	Paused()
	Stopped()
	Forward()
	Backward()
	Finished()
	Error()
	TimeChanged(ms int64)
	PositionChanged(pos float32)
	SeekableChanged(seekable bool)
	PausableChanged(pausable bool)
	TitleChanged(title int)
	SnapshotTaken(filename string)
	LengthChanged(ms int64)
	VideoOutput(count int)

	MediaMetaChanged(field native.Meta)
	MediaSubItemAdded()
	MediaDurationChanged(ms int64)
	MediaParsedChanged(status native.ParseStatus)
	MediaFreed()
	MediaStateChanged(state native.State)
}

// VideoOutputListener is told once per playback whether a video output appeared in time.
type VideoOutputListener interface {
	VideoOutputAvailable(ok bool)
}

// Adapter implements every Listener hook as a no-op.
type Adapter struct{}

func (Adapter) MediaChanged()                         {}
func (Adapter) Opening()                              {}
func (Adapter) Buffering(float32)                     {}
func (Adapter) Playing()                              {}
func (Adapter) Paused()                               {}
func (Adapter) Stopped()                              {}
func (Adapter) Forward()                              {}
func (Adapter) Backward()                             {}
func (Adapter) Finished()                             {}
func (Adapter) Error()                                {}
func (Adapter) TimeChanged(int64)                     {}
func (Adapter) PositionChanged(float32)               {}
func (Adapter) SeekableChanged(bool)                  {}
func (Adapter) PausableChanged(bool)                  {}
func (Adapter) TitleChanged(int)                      {}
func (Adapter) SnapshotTaken(string)                  {}
func (Adapter) LengthChanged(int64)                   {}
func (Adapter) VideoOutput(int)                       {}
func (Adapter) MediaMetaChanged(native.Meta)          {}
func (Adapter) MediaSubItemAdded()                    {}
func (Adapter) MediaDurationChanged(int64)            {}
func (Adapter) MediaParsedChanged(native.ParseStatus) {}
func (Adapter) MediaFreed()                           {}
func (Adapter) MediaStateChanged(native.State)        {}

// Notify routes e to the matching hook of l.
func Notify(l Listener, e event.Event) {
	switch e.Kind {
	case event.MediaChanged:
		l.MediaChanged()
	case event.Opening:
		l.Opening()
	case event.Buffering:
		l.Buffering(e.Buffering)
	case event.Playing:
		l.Playing()
	case event.Paused:
		l.Paused()
	case event.Stopped:
		l.Stopped()
	case event.Forward:
		l.Forward()
	case event.Backward:
		l.Backward()
	case event.Finished:
		l.Finished()
	case event.Error:
		l.Error()
	case event.TimeChanged:
		l.TimeChanged(e.Time)
	case event.PositionChanged:
		l.PositionChanged(e.Position)
	case event.SeekableChanged:
		l.SeekableChanged(e.Seekable)
	case event.PausableChanged:
		l.PausableChanged(e.Pausable)
	case event.TitleChanged:
		l.TitleChanged(e.Title)
	case event.SnapshotTaken:
		l.SnapshotTaken(e.Filename)
	case event.LengthChanged:
		l.LengthChanged(e.Length)
	case event.VideoOutput:
		l.VideoOutput(e.VideoOutputs)
	case event.MediaMetaChanged:
		l.MediaMetaChanged(e.Meta)
	case event.MediaSubItemAdded:
		l.MediaSubItemAdded()
	case event.MediaDurationChanged:
		l.MediaDurationChanged(e.Duration)
	case event.MediaParsedChanged:
		l.MediaParsedChanged(e.Parse)
	case event.MediaFreed:
		l.MediaFreed()
	case event.MediaStateChanged:
		l.MediaStateChanged(e.State)
	}
}
