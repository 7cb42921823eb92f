//go:build libvlc && cgo

// Package libvlc binds native.Engine to libVLC 3 through cgo.
//
// Build with -tags libvlc. Without the tag the package only reports that the engine is unavailable.
package libvlc

/*
#cgo pkg-config: libvlc
#include <stdlib.h>
#include <stdint.h>
#include <string.h>
#include <vlc/vlc.h>

extern void goEventCallback(libvlc_event_t *ev, uintptr_t token);

static void trampoline(const libvlc_event_t *ev, void *data) {
	goEventCallback((libvlc_event_t *)ev, (uintptr_t)data);
}

static int attach(libvlc_event_manager_t *em, int type, uintptr_t token) {
	return libvlc_event_attach(em, type, trampoline, (void *)token);
}

static void detach(libvlc_event_manager_t *em, int type, uintptr_t token) {
	libvlc_event_detach(em, type, trampoline, (void *)token);
}

int64_t event_int(const libvlc_event_t *e) {
	switch (e->type) {
	case libvlc_MediaPlayerTimeChanged:   return e->u.media_player_time_changed.new_time;
	case libvlc_MediaPlayerLengthChanged: return e->u.media_player_length_changed.new_length;
	case libvlc_MediaPlayerTitleChanged:  return e->u.media_player_title_changed.new_title;
	case libvlc_MediaPlayerVout:          return e->u.media_player_vout.new_count;
	case libvlc_MediaMetaChanged:         return e->u.media_meta_changed.meta_type;
	case libvlc_MediaDurationChanged:     return e->u.media_duration_changed.new_duration;
	case libvlc_MediaParsedChanged:       return e->u.media_parsed_changed.new_status;
	case libvlc_MediaStateChanged:        return e->u.media_state_changed.new_state;
	default:                              return 0;
	}
}

float event_float(const libvlc_event_t *e) {
	switch (e->type) {
	case libvlc_MediaPlayerBuffering:       return e->u.media_player_buffering.new_cache;
	case libvlc_MediaPlayerPositionChanged: return e->u.media_player_position_changed.new_position;
	default:                                return 0;
	}
}

int event_bool(const libvlc_event_t *e) {
	switch (e->type) {
	case libvlc_MediaPlayerSeekableChanged: return e->u.media_player_seekable_changed.new_seekable;
	case libvlc_MediaPlayerPausableChanged: return e->u.media_player_pausable_changed.new_pausable;
	default:                                return 0;
	}
}

const char *event_text(const libvlc_event_t *e) {
	if (e->type == libvlc_MediaPlayerSnapshotTaken) {
		return e->u.media_player_snapshot_taken.psz_filename;
	}
	return NULL;
}

static libvlc_instance_t *new_instance(int argc, char **argv) {
	return libvlc_new(argc, (const char *const *)argv);
}

static libvlc_audio_track_t *track_audio(libvlc_media_track_t *t) { return t->audio; }
static libvlc_video_track_t *track_video(libvlc_media_track_t *t) { return t->video; }
static libvlc_subtitle_track_t *track_subtitle(libvlc_media_track_t *t) { return t->subtitle; }

static libvlc_media_track_t *track_at(libvlc_media_track_t **tracks, unsigned i) { return tracks[i]; }
*/
import "C"

import (
	"fmt"
	"strings"
	"sync"
	"unsafe"

	"github.com/mediactl/mediactl/native"
)

// Engine implements native.Engine on top of libVLC.
type Engine struct{}

var _ native.Engine = (*Engine)(nil)

// New returns the libVLC engine.
func New() (native.Engine, error) {
	return &Engine{}, nil
}

// Available reports whether the binary was built with libVLC support.
func Available() bool {
	return true
}

func inst(i native.Instance) *C.libvlc_instance_t {
	return (*C.libvlc_instance_t)(unsafe.Pointer(i))
}

func mp(p native.Player) *C.libvlc_media_player_t {
	return (*C.libvlc_media_player_t)(unsafe.Pointer(p))
}

func md(m native.Media) *C.libvlc_media_t {
	return (*C.libvlc_media_t)(unsafe.Pointer(m))
}

func ml(l native.MediaList) *C.libvlc_media_list_t {
	return (*C.libvlc_media_list_t)(unsafe.Pointer(l))
}

func evm(em native.EventManager) *C.libvlc_event_manager_t {
	return (*C.libvlc_event_manager_t)(unsafe.Pointer(em))
}

// takeString converts a string owned by the caller of a libVLC getter and frees it.
func takeString(s *C.char) string {
	if s == nil {
		return ""
	}
	defer C.libvlc_free(unsafe.Pointer(s))
	return C.GoString(s)
}

func lastError(op string) error {
	if msg := C.libvlc_errmsg(); msg != nil {
		return fmt.Errorf("libvlc: %s: %s", op, C.GoString(msg))
	}
	return fmt.Errorf("libvlc: %s failed", op)
}

func (e *Engine) NewInstance(args []string) (native.Instance, error) {
	argv := make([]*C.char, len(args)+1)
	for i, a := range args {
		argv[i] = C.CString(a)
	}
	defer func() {
		for _, a := range argv {
			if a != nil {
				C.free(unsafe.Pointer(a))
			}
		}
	}()

	var argp **C.char
	if len(args) > 0 {
		argp = &argv[0]
	}
	i := C.new_instance(C.int(len(args)), argp)
	if i == nil {
		return 0, fmt.Errorf("%w: %v", native.ErrEngineUnavailable, lastError("libvlc_new"))
	}
	return native.Instance(unsafe.Pointer(i)), nil
}

func (e *Engine) ReleaseInstance(i native.Instance) {
	C.libvlc_release(inst(i))
}

func (e *Engine) NewPlayer(i native.Instance) (native.Player, error) {
	p := C.libvlc_media_player_new(inst(i))
	if p == nil {
		return 0, lastError("libvlc_media_player_new")
	}
	return native.Player(unsafe.Pointer(p)), nil
}

func (e *Engine) ReleasePlayer(p native.Player) {
	C.libvlc_media_player_release(mp(p))
}

func (e *Engine) PlayerEventManager(p native.Player) native.EventManager {
	return native.EventManager(unsafe.Pointer(C.libvlc_media_player_event_manager(mp(p))))
}

func (e *Engine) NewMedia(i native.Instance, locator string) (native.Media, error) {
	cs := C.CString(locator)
	defer C.free(unsafe.Pointer(cs))

	var m *C.libvlc_media_t
	if strings.Contains(locator, "://") {
		m = C.libvlc_media_new_location(inst(i), cs)
	} else {
		m = C.libvlc_media_new_path(inst(i), cs)
	}
	if m == nil {
		return 0, lastError("libvlc_media_new")
	}
	return native.Media(unsafe.Pointer(m)), nil
}

func (e *Engine) ReleaseMedia(m native.Media) {
	C.libvlc_media_release(md(m))
}

func (e *Engine) MediaEventManager(m native.Media) native.EventManager {
	return native.EventManager(unsafe.Pointer(C.libvlc_media_event_manager(md(m))))
}

func (e *Engine) AddMediaOption(m native.Media, option string) {
	cs := C.CString(option)
	defer C.free(unsafe.Pointer(cs))
	C.libvlc_media_add_option(md(m), cs)
}

func (e *Engine) MediaLocator(m native.Media) string {
	return takeString(C.libvlc_media_get_mrl(md(m)))
}

func (e *Engine) MediaMeta(m native.Media, field native.Meta) string {
	return takeString(C.libvlc_media_get_meta(md(m), C.libvlc_meta_t(field)))
}

func (e *Engine) MediaState(m native.Media) native.State {
	return native.State(C.libvlc_media_get_state(md(m)))
}

func (e *Engine) MediaParse(m native.Media) {
	C.libvlc_media_parse(md(m))
}

func (e *Engine) MediaParseAsync(m native.Media) error {
	if C.libvlc_media_parse_with_options(md(m), C.libvlc_media_parse_local, -1) != 0 {
		return lastError("libvlc_media_parse_with_options")
	}
	return nil
}

func (e *Engine) MediaTracks(m native.Media) []native.TrackInfo {
	var tracks **C.libvlc_media_track_t
	n := C.libvlc_media_tracks_get(md(m), &tracks)
	if n == 0 || tracks == nil {
		return nil
	}
	defer C.libvlc_media_tracks_release(tracks, n)

	infos := make([]native.TrackInfo, 0, int(n))
	for i := C.uint(0); i < n; i++ {
		t := C.track_at(tracks, C.uint(i))
		info := native.TrackInfo{
			ID:          int(t.i_id),
			Type:        native.TrackType(t.i_type),
			Codec:       uint32(t.i_codec),
			Profile:     int(t.i_profile),
			Level:       int(t.i_level),
			Bitrate:     uint32(t.i_bitrate),
			Language:    C.GoString(t.psz_language),
			Description: C.GoString(t.psz_description),
		}
		switch info.Type {
		case native.TrackAudio:
			if a := C.track_audio(t); a != nil {
				info.Channels, info.Rate = uint32(a.i_channels), uint32(a.i_rate)
			}
		case native.TrackVideo:
			if v := C.track_video(t); v != nil {
				info.Width, info.Height = uint32(v.i_width), uint32(v.i_height)
				info.FrameRateNum, info.FrameRateDen = uint32(v.i_frame_rate_num), uint32(v.i_frame_rate_den)
			}
		case native.TrackText:
			if s := C.track_subtitle(t); s != nil {
				info.Encoding = C.GoString(s.psz_encoding)
			}
		}
		infos = append(infos, info)
	}
	return infos
}

func (e *Engine) MediaStats(m native.Media) (native.Stats, bool) {
	var s C.libvlc_media_stats_t
	if C.libvlc_media_get_stats(md(m), &s) == 0 {
		return native.Stats{}, false
	}
	return native.Stats{
		ReadBytes:          int64(s.i_read_bytes),
		InputBitrate:       float32(s.f_input_bitrate),
		DemuxReadBytes:     int64(s.i_demux_read_bytes),
		DemuxBitrate:       float32(s.f_demux_bitrate),
		DemuxCorrupted:     int64(s.i_demux_corrupted),
		DemuxDiscontinuity: int64(s.i_demux_discontinuity),
		DecodedVideo:       int64(s.i_decoded_video),
		DecodedAudio:       int64(s.i_decoded_audio),
		DisplayedPictures:  int64(s.i_displayed_pictures),
		LostPictures:       int64(s.i_lost_pictures),
		PlayedAudioBuffers: int64(s.i_played_abuffers),
		LostAudioBuffers:   int64(s.i_lost_abuffers),
	}, true
}

func (e *Engine) MediaSubItems(m native.Media) native.MediaList {
	return native.MediaList(unsafe.Pointer(C.libvlc_media_subitems(md(m))))
}

func (e *Engine) ListLock(l native.MediaList)   { C.libvlc_media_list_lock(ml(l)) }
func (e *Engine) ListUnlock(l native.MediaList) { C.libvlc_media_list_unlock(ml(l)) }

func (e *Engine) ListCount(l native.MediaList) int {
	return int(C.libvlc_media_list_count(ml(l)))
}

func (e *Engine) ListItemAt(l native.MediaList, index int) native.Media {
	return native.Media(unsafe.Pointer(C.libvlc_media_list_item_at_index(ml(l), C.int(index))))
}

func (e *Engine) ListRelease(l native.MediaList) {
	C.libvlc_media_list_release(ml(l))
}

func (e *Engine) EventAttach(em native.EventManager, t native.EventType, cb native.Callback, token uintptr) error {
	callbacks.add(token, cb)
	if C.attach(evm(em), C.int(t), C.uintptr_t(token)) != 0 {
		callbacks.remove(token)
		return fmt.Errorf("libvlc: attach %s: out of memory", t)
	}
	return nil
}

func (e *Engine) EventDetach(em native.EventManager, t native.EventType, token uintptr) {
	C.detach(evm(em), C.int(t), C.uintptr_t(token))
	callbacks.remove(token)
}

func (e *Engine) SetMedia(p native.Player, m native.Media) {
	C.libvlc_media_player_set_media(mp(p), md(m))
}

func (e *Engine) Play(p native.Player) error {
	if C.libvlc_media_player_play(mp(p)) != 0 {
		return lastError("libvlc_media_player_play")
	}
	return nil
}

func (e *Engine) Stop(p native.Player)  { C.libvlc_media_player_stop(mp(p)) }
func (e *Engine) Pause(p native.Player) { C.libvlc_media_player_pause(mp(p)) }

func (e *Engine) SetPause(p native.Player, paused bool) {
	C.libvlc_media_player_set_pause(mp(p), cbool(paused))
}

func (e *Engine) NextFrame(p native.Player) { C.libvlc_media_player_next_frame(mp(p)) }

func (e *Engine) Navigate(p native.Player, mode native.NavigateMode) {
	C.libvlc_media_player_navigate(mp(p), C.uint(mode))
}

func (e *Engine) NextChapter(p native.Player)     { C.libvlc_media_player_next_chapter(mp(p)) }
func (e *Engine) PreviousChapter(p native.Player) { C.libvlc_media_player_previous_chapter(mp(p)) }

func (e *Engine) SetTime(p native.Player, ms int64) {
	C.libvlc_media_player_set_time(mp(p), C.libvlc_time_t(ms))
}

func (e *Engine) SetPosition(p native.Player, pos float32) {
	C.libvlc_media_player_set_position(mp(p), C.float(pos))
}

func (e *Engine) SetRate(p native.Player, rate float32) error {
	if C.libvlc_media_player_set_rate(mp(p), C.float(rate)) != 0 {
		return lastError("libvlc_media_player_set_rate")
	}
	return nil
}

func (e *Engine) Time(p native.Player) int64     { return int64(C.libvlc_media_player_get_time(mp(p))) }
func (e *Engine) Position(p native.Player) float32 { return float32(C.libvlc_media_player_get_position(mp(p))) }
func (e *Engine) Length(p native.Player) int64   { return int64(C.libvlc_media_player_get_length(mp(p))) }
func (e *Engine) Rate(p native.Player) float32   { return float32(C.libvlc_media_player_get_rate(mp(p))) }
func (e *Engine) Fps(p native.Player) float32    { return float32(C.libvlc_media_player_get_fps(mp(p))) }

func (e *Engine) State(p native.Player) native.State {
	return native.State(C.libvlc_media_player_get_state(mp(p)))
}

func (e *Engine) WillPlay(p native.Player) bool   { return C.libvlc_media_player_will_play(mp(p)) != 0 }
func (e *Engine) IsPlaying(p native.Player) bool  { return C.libvlc_media_player_is_playing(mp(p)) != 0 }
func (e *Engine) IsSeekable(p native.Player) bool { return C.libvlc_media_player_is_seekable(mp(p)) != 0 }
func (e *Engine) CanPause(p native.Player) bool   { return C.libvlc_media_player_can_pause(mp(p)) != 0 }

func (e *Engine) VideoOutputCount(p native.Player) int {
	return int(C.libvlc_media_player_has_vout(mp(p)))
}

func (e *Engine) VideoSize(p native.Player, num int) (int, int, bool) {
	var w, h C.uint
	if C.libvlc_video_get_size(mp(p), C.uint(num), &w, &h) != 0 {
		return 0, 0, false
	}
	return int(w), int(h), true
}

func (e *Engine) TakeSnapshot(p native.Player, path string, width, height int) error {
	cs := C.CString(path)
	defer C.free(unsafe.Pointer(cs))
	if C.libvlc_video_take_snapshot(mp(p), 0, cs, C.uint(width), C.uint(height)) != 0 {
		return lastError("libvlc_video_take_snapshot")
	}
	return nil
}

func cbool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

// registry maps attachment tokens to Go callbacks. A token can be attached for several event types.
type registry struct {
	mu    sync.RWMutex
	funcs map[uintptr]native.Callback
	refs  map[uintptr]int
}

var callbacks = &registry{
	funcs: make(map[uintptr]native.Callback),
	refs:  make(map[uintptr]int),
}

func (r *registry) add(token uintptr, cb native.Callback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[token] = cb
	r.refs[token]++
}

func (r *registry) remove(token uintptr) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.refs[token]--; r.refs[token] <= 0 {
		delete(r.refs, token)
		delete(r.funcs, token)
	}
}

func (r *registry) get(token uintptr) native.Callback {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.funcs[token]
}
