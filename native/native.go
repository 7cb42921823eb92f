// Package native describes the capability set consumed from a handle-based media engine.
//
// Every engine object is referenced through an opaque handle whose lifetime is managed
// manually by the caller. The zero value of every handle type means "no handle".
package native

import "errors"

// ErrEngineUnavailable is returned when the engine library cannot be loaded or refuses to create an instance.
var ErrEngineUnavailable = errors.New("media engine unavailable")

// Opaque handle types. They are never dereferenced outside of the engine implementation.
type (
	Instance     uintptr
	Player       uintptr
	Media        uintptr
	MediaList    uintptr
	EventManager uintptr
)

// Callback receives raw events on an engine-owned goroutine or thread.
// The event and everything it references are only valid until the callback returns.
type Callback func(ev *RawEvent)

// Engine is the full set of native operations the controller relies on.
type Engine interface {
	NewInstance(args []string) (Instance, error)
	ReleaseInstance(Instance)

	NewPlayer(Instance) (Player, error)
	ReleasePlayer(Player)
	PlayerEventManager(Player) EventManager

	NewMedia(inst Instance, locator string) (Media, error)
	ReleaseMedia(Media)
	MediaEventManager(Media) EventManager
	AddMediaOption(m Media, option string)
	MediaLocator(Media) string
	MediaMeta(m Media, field Meta) string
	MediaState(Media) State
	MediaParse(Media)
	MediaParseAsync(Media) error
	MediaTracks(Media) []TrackInfo
	MediaStats(Media) (Stats, bool)

	// MediaSubItems returns a retained list which must be released with ListRelease.
	// Counting and item access are only valid between ListLock and ListUnlock.
	MediaSubItems(Media) MediaList
	ListLock(MediaList)
	ListUnlock(MediaList)
	ListCount(MediaList) int
	// ListItemAt returns a retained media handle, or zero when out of range.
	ListItemAt(l MediaList, index int) Media
	ListRelease(MediaList)

	EventAttach(em EventManager, t EventType, cb Callback, token uintptr) error
	EventDetach(em EventManager, t EventType, token uintptr)

	SetMedia(Player, Media)
	Play(Player) error
	Stop(Player)
	Pause(Player)
	SetPause(p Player, paused bool)
	NextFrame(Player)
	Navigate(p Player, mode NavigateMode)
	NextChapter(Player)
	PreviousChapter(Player)

	SetTime(p Player, ms int64)
	SetPosition(p Player, pos float32)
	SetRate(p Player, rate float32) error
	Time(Player) int64
	Position(Player) float32
	Length(Player) int64
	Rate(Player) float32
	Fps(Player) float32
	State(Player) State
	WillPlay(Player) bool
	IsPlaying(Player) bool
	IsSeekable(Player) bool
	CanPause(Player) bool

	VideoOutputCount(Player) int
	VideoSize(p Player, num int) (width, height int, ok bool)

	Int(p Player, param Param) int
	SetInt(p Player, param Param, v int) error
	Float(p Player, param Param) float32
	SetFloat(p Player, param Param, v float32) error
	String(p Player, param Param) string
	SetString(p Player, param Param, v string) error

	// Descriptions walks a native description list, copies it and releases the list head.
	// title is only used by DescriptionChapters.
	Descriptions(p Player, kind DescriptionKind, title int) []Description

	TakeSnapshot(p Player, path string, width, height int) error
}
