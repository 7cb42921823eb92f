// Package fake provides an in-process media engine that records every native call.
//
// It behaves like the real engine where the controller can observe it: events are raised
// on the emitting goroutine, the raw event buffer is reused between callbacks, sub-item
// lists must be locked before use and every handle has a manual lifetime.
package fake

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mediactl/mediactl/native"
	"github.com/spf13/afero"
)

// ErrPlayFailed is returned by Play when the engine was configured to refuse playback.
var ErrPlayFailed = errors.New("fake: play refused")

type kind string

const (
	kindInstance kind = "instance"
	kindPlayer   kind = "player"
	kindMedia    kind = "media"
	kindList     kind = "list"
)

type media struct {
	refs    int
	locator string
	options []string
	state   native.State
	parsed  bool
}

type player struct {
	media  native.Media
	state  native.State
	time   int64
	pos    float32
	rate   float32
	params map[native.Param]any
	stop   chan struct{}
}

type list struct {
	items  []string
	locked bool
}

// Engine is a native.Engine that keeps all state in memory.
type Engine struct {
	mu sync.Mutex

	next     uintptr
	live     map[uintptr]kind
	created  map[kind]int
	released map[kind]int
	calls    map[string]int
	total    int

	doubleFrees  int
	unlockedUses int

	media   map[native.Media]*media
	players map[native.Player]*player
	lists   map[native.MediaList]*list
	subs    map[native.EventManager]map[native.EventType]map[uintptr]native.Callback

	subItems map[string][]string
	meta     map[string]map[native.Meta]string
	tracks   map[string][]native.TrackInfo
	played   []string

	failInstance bool
	failPlay     bool
	invalid      map[string]bool

	videoOutputs atomic.Int32
	timeline     time.Duration
	fs           afero.Fs

	emitMu  sync.Mutex
	raw     native.RawEvent
	textBuf []byte
}

// Option configures a fake Engine.
type Option func(*Engine)

// WithSubItems makes locator expand to the given child locators.
func WithSubItems(locator string, children ...string) Option {
	return func(e *Engine) {
		e.subItems[locator] = children
	}
}

// WithMeta sets a metadata value returned for media created from locator.
func WithMeta(locator string, field native.Meta, value string) Option {
	return func(e *Engine) {
		if e.meta[locator] == nil {
			e.meta[locator] = make(map[native.Meta]string)
		}
		e.meta[locator][field] = value
	}
}

// WithTracks sets the track list reported for locator.
func WithTracks(locator string, tracks ...native.TrackInfo) Option {
	return func(e *Engine) {
		e.tracks[locator] = tracks
	}
}

// WithInvalidLocator makes NewMedia fail for locator.
func WithInvalidLocator(locator string) Option {
	return func(e *Engine) {
		e.invalid[locator] = true
	}
}

// WithInstanceFailure makes NewInstance fail.
func WithInstanceFailure() Option {
	return func(e *Engine) {
		e.failInstance = true
	}
}

// WithPlayFailure makes Play return an error.
func WithPlayFailure() Option {
	return func(e *Engine) {
		e.failPlay = true
	}
}

// WithTimeline makes Play simulate a playback of the given length, raising the
// usual opening, playing, progress and end-reached events.
func WithTimeline(length time.Duration) Option {
	return func(e *Engine) {
		e.timeline = length
	}
}

// WithFs sets the filesystem snapshots are written to.
func WithFs(fs afero.Fs) Option {
	return func(e *Engine) {
		e.fs = fs
	}
}

// New returns an empty fake engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		live:     make(map[uintptr]kind),
		created:  make(map[kind]int),
		released: make(map[kind]int),
		calls:    make(map[string]int),
		media:    make(map[native.Media]*media),
		players:  make(map[native.Player]*player),
		lists:    make(map[native.MediaList]*list),
		subs:     make(map[native.EventManager]map[native.EventType]map[uintptr]native.Callback),
		subItems: make(map[string][]string),
		meta:     make(map[string]map[native.Meta]string),
		tracks:   make(map[string][]native.TrackInfo),
		invalid:  make(map[string]bool),
		fs:       afero.NewOsFs(),
		textBuf:  make([]byte, 0, 512),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// record must be called with mu held.
func (e *Engine) record(op string) {
	e.calls[op]++
	e.total++
}

func (e *Engine) alloc(k kind) uintptr {
	e.next++
	h := e.next
	e.live[h] = k
	e.created[k]++
	return h
}

func (e *Engine) free(h uintptr, k kind) bool {
	if got, ok := e.live[h]; !ok || got != k {
		e.doubleFrees++
		return false
	}
	delete(e.live, h)
	delete(e.subs, native.EventManager(h))
	e.released[k]++
	return true
}

// unref drops one reference to m and frees it with the last one. mu must be held.
func (e *Engine) unref(m native.Media) {
	md, ok := e.media[m]
	if !ok {
		e.doubleFrees++
		return
	}
	if md.refs--; md.refs > 0 {
		return
	}
	delete(e.media, m)
	e.free(uintptr(m), kindMedia)
}

// Calls reports how many times op was invoked.
func (e *Engine) Calls(op string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls[op]
}

// TotalCalls reports the number of native calls made so far.
func (e *Engine) TotalCalls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.total
}

// Created reports how many handles of the given kind ("instance", "player", "media", "list") were created.
func (e *Engine) Created(k string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.created[kind(k)]
}

// Released reports how many handles of the given kind were released.
func (e *Engine) Released(k string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.released[kind(k)]
}

// LiveMedia reports the number of media handles that are still allocated.
func (e *Engine) LiveMedia() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.created[kindMedia] - e.released[kindMedia]
}

// DoubleFrees reports how many releases targeted an unknown or already released handle.
func (e *Engine) DoubleFrees() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doubleFrees
}

// UnlockedListAccesses reports list reads made without holding the list lock.
func (e *Engine) UnlockedListAccesses() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.unlockedUses
}

// Played lists the locators of every media passed to a successful Play, in order.
func (e *Engine) Played() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.played...)
}

// Subscribers reports how many callbacks are attached to em.
func (e *Engine) Subscribers(em native.EventManager) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, byToken := range e.subs[em] {
		n += len(byToken)
	}
	return n
}

// SetVideoOutputs sets the value returned by VideoOutputCount for every player.
func (e *Engine) SetVideoOutputs(n int) {
	e.videoOutputs.Store(int32(n))
}

// Emit raises an event on em from the calling goroutine, which plays the role of the engine thread.
// fill populates the payload of the shared raw event buffer. The buffer is scribbled over once
// every callback has returned.
func (e *Engine) Emit(em native.EventManager, t native.EventType, fill func(ev *native.RawEvent)) {
	e.mu.Lock()
	var callbacks []native.Callback
	for _, cb := range e.subs[em][t] {
		callbacks = append(callbacks, cb)
	}
	e.mu.Unlock()

	e.emitMu.Lock()
	defer e.emitMu.Unlock()

	e.raw = native.RawEvent{Type: t}
	if fill != nil {
		fill(&e.raw)
	}
	for _, cb := range callbacks {
		cb(&e.raw)
	}

	// The engine owns this memory; anything still pointing at it sees garbage from now on.
	buf := e.textBuf[:cap(e.textBuf)]
	for i := range buf {
		buf[i] = '#'
	}
	e.raw.Type, e.raw.Int, e.raw.Float, e.raw.Bool = -1, -1, -1, !e.raw.Bool
}

// Text copies s into the engine-owned text buffer and returns a view of it.
// It is meant to be called from inside an Emit fill function.
func (e *Engine) Text(s string) []byte {
	e.textBuf = append(e.textBuf[:0], s...)
	return e.textBuf
}

// EmitPlayer raises a player-range event.
func (e *Engine) EmitPlayer(p native.Player, t native.EventType, fill func(ev *native.RawEvent)) {
	e.Emit(native.EventManager(p), t, fill)
}

// EmitMedia raises a media-range event.
func (e *Engine) EmitMedia(m native.Media, t native.EventType, fill func(ev *native.RawEvent)) {
	e.Emit(native.EventManager(m), t, fill)
}

// PlayerMedia returns the media currently set on p.
func (e *Engine) PlayerMedia(p native.Player) native.Media {
	e.mu.Lock()
	defer e.mu.Unlock()
	if pl, ok := e.players[p]; ok {
		return pl.media
	}
	return 0
}

// MediaOptions returns the options added to m, in order.
func (e *Engine) MediaOptions(m native.Media) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if md, ok := e.media[m]; ok {
		return append([]string(nil), md.options...)
	}
	return nil
}

// Players lists the live player handles.
func (e *Engine) Players() []native.Player {
	e.mu.Lock()
	defer e.mu.Unlock()
	players := make([]native.Player, 0, len(e.players))
	for p := range e.players {
		players = append(players, p)
	}
	return players
}
