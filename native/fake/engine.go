package fake

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/mediactl/mediactl/native"
	"github.com/spf13/afero"
)

var _ native.Engine = (*Engine)(nil)

func (e *Engine) NewInstance(args []string) (native.Instance, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("NewInstance")
	if e.failInstance {
		return 0, native.ErrEngineUnavailable
	}
	return native.Instance(e.alloc(kindInstance)), nil
}

func (e *Engine) ReleaseInstance(i native.Instance) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("ReleaseInstance")
	e.free(uintptr(i), kindInstance)
}

func (e *Engine) NewPlayer(i native.Instance) (native.Player, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("NewPlayer")
	if e.live[uintptr(i)] != kindInstance {
		return 0, errors.New("fake: unknown instance")
	}
	p := native.Player(e.alloc(kindPlayer))
	e.players[p] = &player{rate: 1, params: make(map[native.Param]any)}
	return p, nil
}

func (e *Engine) ReleasePlayer(p native.Player) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("ReleasePlayer")
	if pl, ok := e.players[p]; ok {
		pl.halt()
		if pl.media != 0 {
			e.unref(pl.media)
		}
		delete(e.players, p)
	}
	e.free(uintptr(p), kindPlayer)
}

func (e *Engine) PlayerEventManager(p native.Player) native.EventManager {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("PlayerEventManager")
	return native.EventManager(p)
}

func (e *Engine) NewMedia(_ native.Instance, locator string) (native.Media, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("NewMedia")
	if e.invalid[locator] || locator == "" {
		return 0, fmt.Errorf("fake: cannot open %q", locator)
	}
	return e.newMedia(locator), nil
}

func (e *Engine) newMedia(locator string) native.Media {
	m := native.Media(e.alloc(kindMedia))
	e.media[m] = &media{refs: 1, locator: locator}
	return m
}

func (e *Engine) ReleaseMedia(m native.Media) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("ReleaseMedia")
	e.unref(m)
}

func (e *Engine) MediaEventManager(m native.Media) native.EventManager {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("MediaEventManager")
	return native.EventManager(m)
}

func (e *Engine) AddMediaOption(m native.Media, option string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("AddMediaOption")
	if md, ok := e.media[m]; ok {
		md.options = append(md.options, option)
	}
}

func (e *Engine) MediaLocator(m native.Media) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("MediaLocator")
	if md, ok := e.media[m]; ok {
		return md.locator
	}
	return ""
}

func (e *Engine) MediaMeta(m native.Media, field native.Meta) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("MediaMeta")
	md, ok := e.media[m]
	if !ok {
		return ""
	}
	if v, ok := e.meta[md.locator][field]; ok {
		return v
	}
	if field == native.MetaTitle {
		return filepath.Base(md.locator)
	}
	return ""
}

func (e *Engine) MediaState(m native.Media) native.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("MediaState")
	if md, ok := e.media[m]; ok {
		return md.state
	}
	return native.StateError
}

func (e *Engine) MediaParse(m native.Media) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("MediaParse")
	if md, ok := e.media[m]; ok {
		md.parsed = true
	}
}

func (e *Engine) MediaParseAsync(m native.Media) error {
	e.mu.Lock()
	md, ok := e.media[m]
	e.record("MediaParseAsync")
	if ok {
		md.parsed = true
	}
	e.mu.Unlock()

	if !ok {
		return errors.New("fake: unknown media")
	}
	e.EmitMedia(m, native.MediaParsedChanged, func(ev *native.RawEvent) {
		ev.Int = int64(native.ParseDone)
	})
	return nil
}

func (e *Engine) MediaTracks(m native.Media) []native.TrackInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("MediaTracks")
	if md, ok := e.media[m]; ok && md.parsed {
		return append([]native.TrackInfo(nil), e.tracks[md.locator]...)
	}
	return nil
}

func (e *Engine) MediaStats(m native.Media) (native.Stats, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("MediaStats")
	md, ok := e.media[m]
	if !ok || md.state != native.StatePlaying {
		return native.Stats{}, false
	}
	return native.Stats{ReadBytes: 1 << 20, DecodedVideo: 25, DisplayedPictures: 25}, true
}

func (e *Engine) MediaSubItems(m native.Media) native.MediaList {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("MediaSubItems")
	md, ok := e.media[m]
	if !ok {
		return 0
	}
	l := native.MediaList(e.alloc(kindList))
	e.lists[l] = &list{items: e.subItems[md.locator]}
	return l
}

func (e *Engine) ListLock(l native.MediaList) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("ListLock")
	if ls, ok := e.lists[l]; ok {
		ls.locked = true
	}
}

func (e *Engine) ListUnlock(l native.MediaList) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("ListUnlock")
	if ls, ok := e.lists[l]; ok {
		ls.locked = false
	}
}

func (e *Engine) ListCount(l native.MediaList) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("ListCount")
	ls, ok := e.lists[l]
	if !ok {
		return 0
	}
	if !ls.locked {
		e.unlockedUses++
	}
	return len(ls.items)
}

func (e *Engine) ListItemAt(l native.MediaList, index int) native.Media {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("ListItemAt")
	ls, ok := e.lists[l]
	if !ok || index < 0 || index >= len(ls.items) {
		return 0
	}
	if !ls.locked {
		e.unlockedUses++
	}
	return e.newMedia(ls.items[index])
}

func (e *Engine) ListRelease(l native.MediaList) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("ListRelease")
	if e.free(uintptr(l), kindList) {
		delete(e.lists, l)
	}
}

func (e *Engine) EventAttach(em native.EventManager, t native.EventType, cb native.Callback, token uintptr) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("EventAttach")
	if _, ok := e.live[uintptr(em)]; !ok {
		return fmt.Errorf("fake: unknown event manager %d", em)
	}
	if e.subs[em] == nil {
		e.subs[em] = make(map[native.EventType]map[uintptr]native.Callback)
	}
	if e.subs[em][t] == nil {
		e.subs[em][t] = make(map[uintptr]native.Callback)
	}
	e.subs[em][t][token] = cb
	return nil
}

func (e *Engine) EventDetach(em native.EventManager, t native.EventType, token uintptr) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("EventDetach")
	delete(e.subs[em][t], token)
}

func (e *Engine) SetMedia(p native.Player, m native.Media) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("SetMedia")
	pl, ok := e.players[p]
	if !ok {
		return
	}
	pl.halt()
	// The player holds its own reference, so callers may release m right away.
	if md, ok := e.media[m]; ok {
		md.refs++
	}
	if pl.media != 0 {
		e.unref(pl.media)
	}
	pl.media = m
	pl.state = native.StateNothingSpecial
}

func (e *Engine) Play(p native.Player) error {
	e.mu.Lock()
	e.record("Play")
	pl, ok := e.players[p]
	if !ok {
		e.mu.Unlock()
		return errors.New("fake: unknown player")
	}
	md, ok := e.media[pl.media]
	if e.failPlay || !ok {
		e.mu.Unlock()
		return ErrPlayFailed
	}
	pl.state = native.StatePlaying
	md.state = native.StatePlaying
	e.played = append(e.played, md.locator)

	var stop chan struct{}
	if e.timeline > 0 {
		pl.halt()
		stop = make(chan struct{})
		pl.stop = stop
	}
	e.mu.Unlock()

	if stop != nil {
		go e.run(p, e.timeline, stop)
	}
	return nil
}

func (e *Engine) Stop(p native.Player) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("Stop")
	if pl, ok := e.players[p]; ok {
		pl.halt()
		pl.state = native.StateStopped
	}
}

func (e *Engine) Pause(p native.Player) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("Pause")
	if pl, ok := e.players[p]; ok {
		switch pl.state {
		case native.StatePlaying:
			pl.state = native.StatePaused
		case native.StatePaused:
			pl.state = native.StatePlaying
		}
	}
}

func (e *Engine) SetPause(p native.Player, paused bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("SetPause")
	if pl, ok := e.players[p]; ok {
		if paused {
			pl.state = native.StatePaused
		} else {
			pl.state = native.StatePlaying
		}
	}
}

func (e *Engine) NextFrame(native.Player) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("NextFrame")
}

func (e *Engine) Navigate(native.Player, native.NavigateMode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("Navigate")
}

func (e *Engine) NextChapter(p native.Player) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("NextChapter")
	if pl, ok := e.players[p]; ok {
		c, _ := pl.params[native.ParamChapter].(int)
		pl.params[native.ParamChapter] = c + 1
	}
}

func (e *Engine) PreviousChapter(p native.Player) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("PreviousChapter")
	if pl, ok := e.players[p]; ok {
		if c, _ := pl.params[native.ParamChapter].(int); c > 0 {
			pl.params[native.ParamChapter] = c - 1
		}
	}
}

func (e *Engine) SetTime(p native.Player, ms int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("SetTime")
	if pl, ok := e.players[p]; ok {
		pl.time = ms
	}
}

func (e *Engine) SetPosition(p native.Player, pos float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("SetPosition")
	if pl, ok := e.players[p]; ok {
		pl.pos = pos
	}
}

func (e *Engine) SetRate(p native.Player, rate float32) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("SetRate")
	pl, ok := e.players[p]
	if !ok || rate <= 0 {
		return fmt.Errorf("fake: invalid rate %v", rate)
	}
	pl.rate = rate
	return nil
}

func (e *Engine) Time(p native.Player) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("Time")
	if pl, ok := e.players[p]; ok {
		return pl.time
	}
	return -1
}

func (e *Engine) Position(p native.Player) float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("Position")
	if pl, ok := e.players[p]; ok {
		return pl.pos
	}
	return -1
}

func (e *Engine) Length(native.Player) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("Length")
	return e.timeline.Milliseconds()
}

func (e *Engine) Rate(p native.Player) float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("Rate")
	if pl, ok := e.players[p]; ok {
		return pl.rate
	}
	return 0
}

func (e *Engine) Fps(native.Player) float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("Fps")
	return 25
}

func (e *Engine) State(p native.Player) native.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("State")
	if pl, ok := e.players[p]; ok {
		return pl.state
	}
	return native.StateError
}

func (e *Engine) WillPlay(p native.Player) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("WillPlay")
	pl, ok := e.players[p]
	return ok && pl.media != 0
}

func (e *Engine) IsPlaying(p native.Player) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("IsPlaying")
	pl, ok := e.players[p]
	return ok && pl.state == native.StatePlaying
}

func (e *Engine) IsSeekable(p native.Player) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("IsSeekable")
	pl, ok := e.players[p]
	return ok && pl.media != 0
}

func (e *Engine) CanPause(p native.Player) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("CanPause")
	pl, ok := e.players[p]
	return ok && pl.media != 0
}

func (e *Engine) VideoOutputCount(native.Player) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("VideoOutputCount")
	return int(e.videoOutputs.Load())
}

func (e *Engine) VideoSize(_ native.Player, num int) (int, int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("VideoSize")
	if num >= int(e.videoOutputs.Load()) {
		return 0, 0, false
	}
	return 640, 360, true
}

func (e *Engine) Int(p native.Player, param native.Param) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("Int")
	if pl, ok := e.players[p]; ok {
		v, _ := pl.params[param].(int)
		return v
	}
	return -1
}

func (e *Engine) SetInt(p native.Player, param native.Param, v int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("SetInt")
	pl, ok := e.players[p]
	if !ok {
		return errors.New("fake: unknown player")
	}
	pl.params[param] = v
	return nil
}

func (e *Engine) Float(p native.Player, param native.Param) float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("Float")
	if pl, ok := e.players[p]; ok {
		v, _ := pl.params[param].(float32)
		return v
	}
	return -1
}

func (e *Engine) SetFloat(p native.Player, param native.Param, v float32) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("SetFloat")
	pl, ok := e.players[p]
	if !ok {
		return errors.New("fake: unknown player")
	}
	pl.params[param] = v
	return nil
}

func (e *Engine) String(p native.Player, param native.Param) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("String")
	if pl, ok := e.players[p]; ok {
		v, _ := pl.params[param].(string)
		return v
	}
	return ""
}

func (e *Engine) SetString(p native.Player, param native.Param, v string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("SetString")
	pl, ok := e.players[p]
	if !ok {
		return errors.New("fake: unknown player")
	}
	pl.params[param] = v
	return nil
}

func (e *Engine) Descriptions(p native.Player, kind native.DescriptionKind, _ int) []native.Description {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("Descriptions")
	if _, ok := e.players[p]; !ok {
		return nil
	}
	switch kind {
	case native.DescriptionSpuTracks, native.DescriptionAudioTracks, native.DescriptionVideoTracks:
		return []native.Description{{ID: -1, Name: "Disable"}, {ID: 1, Name: "Track 1"}}
	default:
		return nil
	}
}

// TakeSnapshot writes a small solid PNG to path and raises SnapshotTaken with the file name.
func (e *Engine) TakeSnapshot(p native.Player, path string, width, height int) error {
	e.mu.Lock()
	e.record("TakeSnapshot")
	_, ok := e.players[p]
	fs := e.fs
	e.mu.Unlock()

	if !ok {
		return errors.New("fake: unknown player")
	}
	if width <= 0 {
		width = 64
	}
	if height <= 0 {
		height = 36
	}

	img := imaging.New(width, height, color.NRGBA{R: 0x20, G: 0x40, B: 0x80, A: 0xff})
	if err := writePNG(fs, path, img); err != nil {
		return err
	}

	e.EmitPlayer(p, native.PlayerSnapshotTaken, func(ev *native.RawEvent) {
		ev.Text = e.Text(path)
	})
	return nil
}

func writePNG(fs afero.Fs, path string, img image.Image) error {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("fake: create snapshot: %w", err)
	}
	defer f.Close()
	return imaging.Encode(f, img, imaging.PNG)
}
