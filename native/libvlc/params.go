//go:build libvlc && cgo

package libvlc

/*
#include <stdlib.h>
#include <vlc/vlc.h>

static libvlc_title_description_t *title_at(libvlc_title_description_t **titles, int i) { return titles[i]; }
static libvlc_chapter_description_t *chapter_at(libvlc_chapter_description_t **chapters, int i) { return chapters[i]; }
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/mediactl/mediactl/native"
)

func unsupported(param native.Param) error {
	return fmt.Errorf("libvlc: parameter %d not supported for this type", param)
}

func (e *Engine) Int(p native.Player, param native.Param) int {
	m := mp(p)
	switch {
	case param >= native.ParamLogoEnable && param <= native.ParamLogoPosition:
		return int(C.libvlc_video_get_logo_int(m, C.uint(param-native.ParamLogoEnable)))
	case param >= native.ParamMarqueeEnable && param <= native.ParamMarqueeY:
		return int(C.libvlc_video_get_marquee_int(m, C.uint(param-native.ParamMarqueeEnable)))
	case param == native.ParamAdjustEnable:
		return int(C.libvlc_video_get_adjust_int(m, C.libvlc_adjust_Enable))
	}

	switch param {
	case native.ParamVolume:
		return int(C.libvlc_audio_get_volume(m))
	case native.ParamMute:
		return int(C.libvlc_audio_get_mute(m))
	case native.ParamAudioTrack:
		return int(C.libvlc_audio_get_track(m))
	case native.ParamAudioTrackCount:
		return int(C.libvlc_audio_get_track_count(m))
	case native.ParamAudioChannel:
		return int(C.libvlc_audio_get_channel(m))
	case native.ParamAudioDelay:
		return int(C.libvlc_audio_get_delay(m))
	case native.ParamVideoTrack:
		return int(C.libvlc_video_get_track(m))
	case native.ParamVideoTrackCount:
		return int(C.libvlc_video_get_track_count(m))
	case native.ParamSpu:
		return int(C.libvlc_video_get_spu(m))
	case native.ParamSpuCount:
		return int(C.libvlc_video_get_spu_count(m))
	case native.ParamSpuDelay:
		return int(C.libvlc_video_get_spu_delay(m))
	case native.ParamTitle:
		return int(C.libvlc_media_player_get_title(m))
	case native.ParamTitleCount:
		return int(C.libvlc_media_player_get_title_count(m))
	case native.ParamChapter:
		return int(C.libvlc_media_player_get_chapter(m))
	case native.ParamChapterCount:
		return int(C.libvlc_media_player_get_chapter_count(m))
	case native.ParamAudioOutputDeviceType:
		return int(C.libvlc_audio_output_get_device_type(m))
	}
	return -1
}

func (e *Engine) SetInt(p native.Player, param native.Param, v int) error {
	m := mp(p)
	switch {
	case param >= native.ParamLogoEnable && param <= native.ParamLogoPosition:
		C.libvlc_video_set_logo_int(m, C.uint(param-native.ParamLogoEnable), C.int(v))
		return nil
	case param >= native.ParamMarqueeEnable && param <= native.ParamMarqueeY:
		C.libvlc_video_set_marquee_int(m, C.uint(param-native.ParamMarqueeEnable), C.int(v))
		return nil
	case param == native.ParamAdjustEnable:
		C.libvlc_video_set_adjust_int(m, C.libvlc_adjust_Enable, C.int(v))
		return nil
	}

	var rc C.int
	switch param {
	case native.ParamVolume:
		rc = C.libvlc_audio_set_volume(m, C.int(v))
	case native.ParamMute:
		C.libvlc_audio_set_mute(m, C.int(v))
	case native.ParamAudioTrack:
		rc = C.libvlc_audio_set_track(m, C.int(v))
	case native.ParamAudioChannel:
		rc = C.libvlc_audio_set_channel(m, C.int(v))
	case native.ParamAudioDelay:
		rc = C.libvlc_audio_set_delay(m, C.int64_t(v))
	case native.ParamVideoTrack:
		rc = C.libvlc_video_set_track(m, C.int(v))
	case native.ParamSpu:
		rc = C.libvlc_video_set_spu(m, C.int(v))
	case native.ParamSpuDelay:
		rc = C.libvlc_video_set_spu_delay(m, C.int64_t(v))
	case native.ParamTitle:
		C.libvlc_media_player_set_title(m, C.int(v))
	case native.ParamChapter:
		C.libvlc_media_player_set_chapter(m, C.int(v))
	case native.ParamAudioOutputDeviceType:
		C.libvlc_audio_output_set_device_type(m, C.int(v))
	default:
		return unsupported(param)
	}
	if rc != 0 {
		return lastError(fmt.Sprintf("set parameter %d", param))
	}
	return nil
}

func (e *Engine) Float(p native.Player, param native.Param) float32 {
	m := mp(p)
	switch {
	case param > native.ParamAdjustEnable && param <= native.ParamAdjustGamma:
		return float32(C.libvlc_video_get_adjust_float(m, C.uint(param-native.ParamAdjustEnable)))
	case param == native.ParamScale:
		return float32(C.libvlc_video_get_scale(m))
	}
	return -1
}

func (e *Engine) SetFloat(p native.Player, param native.Param, v float32) error {
	m := mp(p)
	switch {
	case param > native.ParamAdjustEnable && param <= native.ParamAdjustGamma:
		C.libvlc_video_set_adjust_float(m, C.uint(param-native.ParamAdjustEnable), C.float(v))
		return nil
	case param == native.ParamScale:
		C.libvlc_video_set_scale(m, C.float(v))
		return nil
	}
	return unsupported(param)
}

func (e *Engine) String(p native.Player, param native.Param) string {
	m := mp(p)
	switch param {
	case native.ParamAspectRatio:
		return takeString(C.libvlc_video_get_aspect_ratio(m))
	case native.ParamCropGeometry:
		return takeString(C.libvlc_video_get_crop_geometry(m))
	case native.ParamMarqueeText:
		return takeString(C.libvlc_video_get_marquee_string(m, C.libvlc_marquee_Text))
	case native.ParamAudioOutputDevice:
		return takeString(C.libvlc_audio_output_device_get(m))
	}
	return ""
}

func (e *Engine) SetString(p native.Player, param native.Param, v string) error {
	m := mp(p)
	var cs *C.char
	if v != "" {
		cs = C.CString(v)
		defer C.free(unsafe.Pointer(cs))
	}

	switch param {
	case native.ParamAspectRatio:
		C.libvlc_video_set_aspect_ratio(m, cs)
	case native.ParamCropGeometry:
		C.libvlc_video_set_crop_geometry(m, cs)
	case native.ParamDeinterlace:
		C.libvlc_video_set_deinterlace(m, cs)
	case native.ParamLogoFile:
		C.libvlc_video_set_logo_string(m, C.libvlc_logo_file, cs)
	case native.ParamMarqueeText:
		C.libvlc_video_set_marquee_string(m, C.libvlc_marquee_Text, cs)
	case native.ParamAudioOutput:
		if C.libvlc_audio_output_set(m, cs) != 0 {
			return lastError("set audio output " + v)
		}
	case native.ParamAudioOutputDevice:
		// A nil module selects the device on the current output.
		C.libvlc_audio_output_device_set(m, nil, cs)
	default:
		return unsupported(param)
	}
	return nil
}

func (e *Engine) Descriptions(p native.Player, kind native.DescriptionKind, title int) []native.Description {
	m := mp(p)
	switch kind {
	case native.DescriptionTitles:
		var titles **C.libvlc_title_description_t
		n := C.libvlc_media_player_get_full_title_descriptions(m, &titles)
		if n <= 0 {
			return nil
		}
		defer C.libvlc_title_descriptions_release(titles, C.uint(n))

		out := make([]native.Description, 0, int(n))
		for i := 0; i < int(n); i++ {
			out = append(out, native.Description{ID: i, Name: C.GoString(C.title_at(titles, C.int(i)).psz_name)})
		}
		return out

	case native.DescriptionChapters:
		var chapters **C.libvlc_chapter_description_t
		n := C.libvlc_media_player_get_full_chapter_descriptions(m, C.int(title), &chapters)
		if n <= 0 {
			return nil
		}
		defer C.libvlc_chapter_descriptions_release(chapters, C.uint(n))

		out := make([]native.Description, 0, int(n))
		for i := 0; i < int(n); i++ {
			out = append(out, native.Description{ID: i, Name: C.GoString(C.chapter_at(chapters, C.int(i)).psz_name)})
		}
		return out
	}

	var head *C.libvlc_track_description_t
	switch kind {
	case native.DescriptionAudioTracks:
		head = C.libvlc_audio_get_track_description(m)
	case native.DescriptionVideoTracks:
		head = C.libvlc_video_get_track_description(m)
	case native.DescriptionSpuTracks:
		head = C.libvlc_video_get_spu_description(m)
	}
	if head == nil {
		return nil
	}
	defer C.libvlc_track_description_list_release(head)

	var out []native.Description
	for d := head; d != nil; d = d.p_next {
		out = append(out, native.Description{ID: int(d.i_id), Name: C.GoString(d.psz_name)})
	}
	return out
}
