// Package player implements the media player lifecycle controller.
//
// A Controller owns one engine instance and one player, binds media to it, translates
// native events and delivers them to listeners on a single dispatch worker. A few
// listeners are installed by the controller itself: video output detection, auto-repeat
// and sub-item chaining.
package player

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/mediactl/mediactl/dispatch"
	"github.com/mediactl/mediactl/event"
	"github.com/mediactl/mediactl/listener"
	"github.com/mediactl/mediactl/log"
	"github.com/mediactl/mediactl/metrics"
	"github.com/mediactl/mediactl/native"
	"github.com/sirupsen/logrus"
)

// Status is the lifecycle state of a Controller.
type Status int

const (
	StatusReady Status = iota
	StatusMediaBound
	StatusPlaying
	StatusPaused
	StatusReleased
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusMediaBound:
		return "media-bound"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusReleased:
		return "released"
	default:
		return "unknown"
	}
}

// tokens identify callback registrations across every controller in the process.
var tokens atomic.Uintptr

// Controller drives one native player.
type Controller struct {
	id     uuid.UUID
	engine native.Engine
	logger *logrus.Entry

	instance native.Instance
	player   native.Player
	events   native.EventManager

	playerToken uintptr
	mediaToken  uintptr

	playerTranslator event.Translator
	mediaTranslator  event.Translator
	mask             atomic.Uint64

	// mu guards the handles below and serializes every native call.
	mu           sync.Mutex
	media        native.Media
	mediaEvents  native.EventManager
	subItemIndex int
	standard     []string
	snapshotDir  string
	userData     any

	repeat       atomic.Bool
	playSubItems atomic.Bool
	videoPoll    atomic.Int64
	videoTimeout atomic.Int64

	listeners      *listener.Registry[listener.Listener]
	videoListeners *listener.Registry[listener.VideoOutputListener]
	dispatcher     *dispatch.Queue
	videoQueue     *dispatch.Queue

	ctx      context.Context
	cancel   context.CancelFunc
	released atomic.Bool

	beforePlay   Hook
	afterRelease Hook
}

// New creates an engine instance and a player and starts event delivery.
func New(engine native.Engine, opts ...Option) (*Controller, error) {
	s := defaults()
	for _, opt := range opts {
		opt(&s)
	}

	id := uuid.New()
	logger := s.logger
	if logger == nil {
		logger = log.Component("player")
	}
	logger = logger.WithField("controller", id.String())

	inst, err := engine.NewInstance(s.engineArgs)
	if err != nil {
		return nil, wrapUnavailable("create instance", err)
	}

	p, err := engine.NewPlayer(inst)
	if err != nil {
		engine.ReleaseInstance(inst)
		return nil, wrapUnavailable("create player", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		id:               id,
		engine:           engine,
		logger:           logger,
		instance:         inst,
		player:           p,
		events:           engine.PlayerEventManager(p),
		playerToken:      tokens.Add(1),
		mediaToken:       tokens.Add(1),
		playerTranslator: event.NewTranslator(event.FromPlayer),
		mediaTranslator:  event.NewTranslator(event.FromMedia),
		subItemIndex:     -1,
		standard:         s.standardOptions,
		snapshotDir:      s.snapshotDir,
		listeners:        listener.NewRegistry[listener.Listener](logger),
		videoListeners:   listener.NewRegistry[listener.VideoOutputListener](logger),
		dispatcher:       dispatch.New("events", logger),
		videoQueue:       dispatch.New("video", logger),
		ctx:              ctx,
		cancel:           cancel,
		beforePlay:       s.beforePlay,
		afterRelease:     s.afterRelease,
	}
	c.mask.Store(uint64(s.mask))
	c.repeat.Store(s.repeat)
	c.playSubItems.Store(s.playSubItems)
	c.videoPoll.Store(int64(s.videoPoll))
	c.videoTimeout.Store(int64(s.videoTimeout))

	_ = c.listeners.Add(&videoOutputDetector{c: c})
	_ = c.listeners.Add(&autoRepeat{c: c})
	_ = c.listeners.Add(&subItemChainer{c: c})

	for _, t := range native.PlayerEventTypes() {
		if err := engine.EventAttach(c.events, t, c.onPlayerEvent, c.playerToken); err != nil {
			c.abort()
			return nil, fmt.Errorf("attach %s: %w", t, err)
		}
	}

	metrics.ControllersActive.Inc()
	logger.Debug("controller created")
	return c, nil
}

func wrapUnavailable(step string, err error) error {
	if errors.Is(err, native.ErrEngineUnavailable) {
		return fmt.Errorf("%s: %w", step, err)
	}
	return fmt.Errorf("%s: %w: %v", step, native.ErrEngineUnavailable, err)
}

// abort undoes a partially constructed controller.
func (c *Controller) abort() {
	c.released.Store(true)
	c.cancel()
	for _, t := range native.PlayerEventTypes() {
		c.engine.EventDetach(c.events, t, c.playerToken)
	}
	c.engine.ReleasePlayer(c.player)
	c.engine.ReleaseInstance(c.instance)
	c.dispatcher.Shutdown()
	c.videoQueue.Shutdown()
}

// ID identifies the controller in logs.
func (c *Controller) ID() uuid.UUID {
	return c.id
}

// Status reports the lifecycle state.
func (c *Controller) Status() Status {
	if err := c.lock(); err != nil {
		return StatusReleased
	}
	defer c.mu.Unlock()

	if c.media == 0 {
		return StatusReady
	}
	switch c.engine.State(c.player) {
	case native.StatePlaying:
		return StatusPlaying
	case native.StatePaused:
		return StatusPaused
	default:
		return StatusMediaBound
	}
}

// Released reports whether Release has been called.
func (c *Controller) Released() bool {
	return c.released.Load()
}

// Release tears the controller down. Only the first call does anything; later and
// concurrent calls return immediately.
func (c *Controller) Release() {
	if !c.released.CompareAndSwap(false, true) {
		return
	}
	c.logger.Debug("releasing controller")

	c.cancel()

	c.mu.Lock()
	c.unbindLocked()
	for _, t := range native.PlayerEventTypes() {
		c.engine.EventDetach(c.events, t, c.playerToken)
	}
	c.listeners.Clear()
	c.videoListeners.Clear()
	c.engine.ReleasePlayer(c.player)
	c.engine.ReleaseInstance(c.instance)
	c.player, c.instance, c.events = 0, 0, 0
	c.mu.Unlock()

	c.dispatcher.Shutdown()
	c.videoQueue.Shutdown()
	metrics.ControllersActive.Dec()

	if c.afterRelease != nil {
		c.afterRelease(c)
	}
	c.logger.Debug("controller released")
}

// lock takes mu unless the controller is released.
func (c *Controller) lock() error {
	c.mu.Lock()
	if c.released.Load() {
		c.mu.Unlock()
		return ErrReleased
	}
	return nil
}

func (c *Controller) onPlayerEvent(raw *native.RawEvent) {
	c.deliver(c.playerTranslator, raw)
}

func (c *Controller) onMediaEvent(raw *native.RawEvent) {
	c.deliver(c.mediaTranslator, raw)
}

// deliver runs on the engine's thread. It must not block or take mu.
func (c *Controller) deliver(t event.Translator, raw *native.RawEvent) {
	e, ok := t.Translate(raw, event.Mask(c.mask.Load()))
	if !ok {
		metrics.EventsDropped.WithLabelValues("filtered").Inc()
		return
	}
	metrics.EventsTranslated.WithLabelValues(e.Kind.String()).Inc()

	if !c.dispatcher.Submit(func() {
		c.logger.WithField("event", e.Kind.String()).Trace("dispatching")
		listener.Broadcast(c.listeners, e)
	}) {
		metrics.EventsDropped.WithLabelValues("shutdown").Inc()
	}
}

// AddListener registers l. Listeners are notified newest first.
func (c *Controller) AddListener(l listener.Listener) error {
	if c.released.Load() {
		return ErrReleased
	}
	return c.listeners.Add(l)
}

// RemoveListener unregisters l.
func (c *Controller) RemoveListener(l listener.Listener) error {
	if c.released.Load() {
		return ErrReleased
	}
	c.listeners.Remove(l)
	return nil
}

// AddVideoOutputListener registers l for video output detection results.
// Detection only runs while at least one such listener is registered.
func (c *Controller) AddVideoOutputListener(l listener.VideoOutputListener) error {
	if c.released.Load() {
		return ErrReleased
	}
	return c.videoListeners.Add(l)
}

// RemoveVideoOutputListener unregisters l.
func (c *Controller) RemoveVideoOutputListener(l listener.VideoOutputListener) error {
	if c.released.Load() {
		return ErrReleased
	}
	c.videoListeners.Remove(l)
	return nil
}

// EnableEvents sets which event kinds are delivered. Events outside the mask are
// dropped before they reach any listener, including the built-in ones.
func (c *Controller) EnableEvents(mask event.Mask) error {
	if c.released.Load() {
		return ErrReleased
	}
	c.mask.Store(uint64(mask))
	return nil
}

// SetStandardMediaOptions replaces the options applied to every subsequently bound media.
func (c *Controller) SetStandardMediaOptions(opts ...string) error {
	if err := c.lock(); err != nil {
		return err
	}
	defer c.mu.Unlock()
	c.standard = append([]string(nil), opts...)
	return nil
}

// SetRepeat toggles auto-repeat.
func (c *Controller) SetRepeat(on bool) error {
	if c.released.Load() {
		return ErrReleased
	}
	c.repeat.Store(on)
	return nil
}

// Repeat reports whether auto-repeat is on.
func (c *Controller) Repeat() bool {
	return c.repeat.Load()
}

// SetPlaySubItems toggles sub-item chaining.
func (c *Controller) SetPlaySubItems(on bool) error {
	if c.released.Load() {
		return ErrReleased
	}
	c.playSubItems.Store(on)
	return nil
}

// PlaySubItems reports whether sub-item chaining is on.
func (c *Controller) PlaySubItems() bool {
	return c.playSubItems.Load()
}

// SetVideoOutputWait changes the video output poll period and timeout for later detections.
func (c *Controller) SetVideoOutputWait(period, timeout time.Duration) error {
	if c.released.Load() {
		return ErrReleased
	}
	if period <= 0 || timeout <= 0 {
		return fmt.Errorf("%w: period %s, timeout %s", ErrOutOfRange, period, timeout)
	}
	c.videoPoll.Store(int64(period))
	c.videoTimeout.Store(int64(timeout))
	return nil
}

// SetUserData attaches an arbitrary value to the controller.
func (c *Controller) SetUserData(v any) error {
	if err := c.lock(); err != nil {
		return err
	}
	defer c.mu.Unlock()
	c.userData = v
	return nil
}

// UserData returns the value set with SetUserData.
func (c *Controller) UserData() (any, error) {
	if err := c.lock(); err != nil {
		return nil, err
	}
	defer c.mu.Unlock()
	return c.userData, nil
}
