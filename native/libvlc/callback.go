//go:build libvlc && cgo

package libvlc

/*
#include <stdint.h>
#include <string.h>
#include <vlc/vlc.h>

// Defined in the libvlc.go preamble.
int64_t event_int(const libvlc_event_t *e);
float event_float(const libvlc_event_t *e);
int event_bool(const libvlc_event_t *e);
const char *event_text(const libvlc_event_t *e);
*/
import "C"

import (
	"unsafe"

	"github.com/mediactl/mediactl/native"
)

// goEventCallback runs on a libVLC thread. The text payload is a view of libVLC memory
// and is only valid until this function returns.
//
//export goEventCallback
func goEventCallback(ev *C.libvlc_event_t, token C.uintptr_t) {
	cb := callbacks.get(uintptr(token))
	if cb == nil {
		return
	}

	raw := native.RawEvent{
		Type:  native.EventType(ev._type),
		Int:   int64(C.event_int(ev)),
		Float: float32(C.event_float(ev)),
		Bool:  C.event_bool(ev) != 0,
	}
	if s := C.event_text(ev); s != nil {
		raw.Text = unsafe.Slice((*byte)(unsafe.Pointer(s)), int(C.strlen(s)))
	}
	cb(&raw)
}
