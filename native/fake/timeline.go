package fake

import (
	"time"

	"github.com/mediactl/mediactl/native"
)

const tick = 250 * time.Millisecond

// halt stops a running timeline. Must be called with the engine mutex held.
func (pl *player) halt() {
	if pl.stop != nil {
		close(pl.stop)
		pl.stop = nil
	}
}

// run simulates one playback of p lasting length.
func (e *Engine) run(p native.Player, length time.Duration, stop <-chan struct{}) {
	emit := func(t native.EventType, fill func(ev *native.RawEvent)) bool {
		select {
		case <-stop:
			return false
		default:
		}
		e.EmitPlayer(p, t, fill)
		return true
	}

	if !emit(native.PlayerOpening, nil) ||
		!emit(native.PlayerBuffering, func(ev *native.RawEvent) { ev.Float = 100 }) ||
		!emit(native.PlayerPlaying, nil) ||
		!emit(native.PlayerLengthChanged, func(ev *native.RawEvent) { ev.Int = length.Milliseconds() }) ||
		!emit(native.PlayerSeekableChanged, func(ev *native.RawEvent) { ev.Bool = true }) ||
		!emit(native.PlayerPausableChanged, func(ev *native.RawEvent) { ev.Bool = true }) {
		return
	}

	e.videoOutputs.Store(1)
	if !emit(native.PlayerVout, func(ev *native.RawEvent) { ev.Int = 1 }) {
		return
	}

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	var elapsed time.Duration
	for elapsed < length {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		e.mu.Lock()
		pl, ok := e.players[p]
		paused := ok && pl.state == native.StatePaused
		if ok && !paused {
			elapsed += time.Duration(float32(tick) * pl.rate)
			if elapsed > length {
				elapsed = length
			}
			pl.time = elapsed.Milliseconds()
			pl.pos = float32(elapsed) / float32(length)
		}
		e.mu.Unlock()

		if !ok {
			return
		}
		if paused {
			continue
		}

		ms, pos := elapsed.Milliseconds(), float32(elapsed)/float32(length)
		if !emit(native.PlayerTimeChanged, func(ev *native.RawEvent) { ev.Int = ms }) ||
			!emit(native.PlayerPositionChanged, func(ev *native.RawEvent) { ev.Float = pos }) {
			return
		}
	}

	e.mu.Lock()
	if pl, ok := e.players[p]; ok {
		pl.state = native.StateEnded
		if md, ok := e.media[pl.media]; ok {
			md.state = native.StateEnded
		}
	}
	e.mu.Unlock()
	emit(native.PlayerEndReached, nil)
}
